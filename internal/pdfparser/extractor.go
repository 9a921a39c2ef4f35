package pdfparser

// PDFExtractor defines the interface for extracting page text from PDF files.
// This interface allows for dependency injection and keeps the statement
// parser independent from the binary document format.
type PDFExtractor interface {
	// ExtractPages returns the plain text of every page, in document order.
	// A page without readable text is returned as an empty string so page
	// numbers stay aligned with the document.
	ExtractPages(pdfPath string) ([]string, error)
}

// RealPDFExtractor implements PDFExtractor using the ledongthuc/pdf library.
type RealPDFExtractor struct{}

// NewRealPDFExtractor creates a new RealPDFExtractor instance.
func NewRealPDFExtractor() *RealPDFExtractor {
	return &RealPDFExtractor{}
}

// ExtractPages validates the file header and extracts page text.
func (e *RealPDFExtractor) ExtractPages(pdfPath string) ([]string, error) {
	if err := ValidateFormat(pdfPath); err != nil {
		return nil, err
	}
	return extractPages(pdfPath)
}

// MockPDFExtractor implements PDFExtractor for testing purposes.
// It returns predefined pages instead of reading PDF files.
type MockPDFExtractor struct {
	MockPages []string
	MockErr   error
	Calls     []string
}

// NewMockPDFExtractor creates a new MockPDFExtractor with the given mock data.
func NewMockPDFExtractor(mockPages []string, mockErr error) *MockPDFExtractor {
	return &MockPDFExtractor{
		MockPages: mockPages,
		MockErr:   mockErr,
	}
}

// ExtractPages returns the predefined pages or error.
func (e *MockPDFExtractor) ExtractPages(pdfPath string) ([]string, error) {
	e.Calls = append(e.Calls, pdfPath)
	if e.MockErr != nil {
		return nil, e.MockErr
	}
	return e.MockPages, nil
}
