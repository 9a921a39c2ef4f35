// Package pdfparser turns PDF statement documents into per-page plain text.
package pdfparser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/fintrack/internal/parsererror"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF-")

// ValidateFormat checks that path exists and starts with a PDF header.
func ValidateFormat(path string) error {
	file, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return fmt.Errorf("error opening input file: %w", err)
	}
	defer func() { _ = file.Close() }()

	header := make([]byte, len(pdfMagic))
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("error reading input file: %w", err)
	}
	if !bytes.Equal(header[:n], pdfMagic) {
		return &parsererror.InvalidFormatError{
			FilePath:             path,
			ExpectedFormat:       "PDF",
			ActualContentSnippet: strings.TrimSpace(string(header[:n])),
			Msg:                  "missing PDF header",
		}
	}
	return nil
}

// extractPages reads every page with GetTextByRow, falling back to the
// font-mapped plain text of a page when row extraction yields nothing.
// The library panics on some malformed streams; that is reported as an error.
func extractPages(path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &parsererror.DataExtractionError{
				FilePath: path,
				Reason:   "PDF library crashed",
				Err:      fmt.Errorf("%v", r),
			}
		}
	}()

	f, r, openErr := pdf.Open(path)
	if openErr != nil {
		return nil, &parsererror.DataExtractionError{FilePath: path, Reason: "open", Err: openErr}
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, &parsererror.DataExtractionError{FilePath: path, Reason: "page count", Err: parsererror.ErrNoPages}
	}

	pages = make([]string, 0, numPages)
	readable := false
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text := pageTextByRow(page)
		if text == "" {
			text = pagePlainText(page)
		}
		if text != "" {
			readable = true
		}
		pages = append(pages, text)
	}

	if !readable {
		return nil, &parsererror.DataExtractionError{FilePath: path, Reason: "no text layer", Err: parsererror.ErrNoPages}
	}
	return pages, nil
}

func pageTextByRow(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		parts := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func pagePlainText(page pdf.Page) string {
	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		font := page.Font(name)
		fonts[name] = &font
	}
	text, err := page.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
