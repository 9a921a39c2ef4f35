package statementparser

import (
	"regexp"
	"strings"

	"fjacquet/fintrack/internal/currencyutils"
	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// TrailingCategoryLabels are spend categories that credit-card statements
// print at the end of a description. They are removed from stored text.
var TrailingCategoryLabels = []string{
	"Health and Education",
	"Restaurants",
	"Retail and Grocery",
	"Professional and Financial Services",
	"Gas and Groceries",
	"Gas Stations",
}

var (
	bankRow = regexp.MustCompile(`^([A-Z][a-z]{2}\s+\d{1,2})\s+(.+?)\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})$`)
	cardRow = regexp.MustCompile(`^([A-Z][a-z]{2}\s+\d{2})\s+([A-Z][a-z]{2}\s+\d{2})\s+(.+?)\s+(-?[\d,]+\.\d{2})$`)

	pageNumberLine = regexp.MustCompile(`\bPage\s+\d+\s+of\s+\d+\b`)
	trailingLabel  = regexp.MustCompile(`\s+(` + labelAlternation() + `)$`)
)

func labelAlternation() string {
	quoted := make([]string, len(TrailingCategoryLabels))
	for i, label := range TrailingCategoryLabels {
		quoted[i] = regexp.QuoteMeta(label)
	}
	return strings.Join(quoted, "|")
}

// grammar describes how one layout marks its transaction sections and rows.
type grammar struct {
	layout models.Layout
	// pageGate, when set, lists phrases of which a page must contain at
	// least one to be examined at all.
	pageGate []string
	headers  []string
	// ignored lines are skipped in any state.
	ignored []string
	footers []string
	// noise lines are skipped inside a section.
	noise      []string
	noiseExact []string
	row        *regexp.Regexp
	build      func(m []string, year int) (models.Transaction, error)
}

var bankGrammar = grammar{
	layout:  models.LayoutBankAccount,
	headers: []string{"Date Description Withdrawals", "Transaction details"},
	footers: []string{"Closing balance"},
	noise:   []string{"Opening balance"},
	row:     bankRow,
	build:   buildBankTransaction,
}

var cardGrammar = grammar{
	layout:     models.LayoutCreditCard,
	pageGate:   []string{"Your new charges and credits", "Transactions"},
	headers:    []string{"Trans Post", "date date Description", "Spend Categories"},
	ignored:    []string{"Card number"},
	footers:    []string{"Information about your"},
	noise:      []string{"PAYMENT THANK YOU", "Total payments"},
	noiseExact: []string{"Ý"},
	row:        cardRow,
	build:      buildCardTransaction,
}

func grammarFor(layout models.Layout) *grammar {
	switch layout {
	case models.LayoutBankAccount:
		return &bankGrammar
	case models.LayoutCreditCard:
		return &cardGrammar
	default:
		return nil
	}
}

func (g *grammar) examines(page string) bool {
	return len(g.pageGate) == 0 || containsAny(page, g.pageGate)
}

func (g *grammar) isHeader(line string) bool {
	return containsAny(line, g.headers)
}

func (g *grammar) isIgnored(line string) bool {
	return containsAny(line, g.ignored)
}

func (g *grammar) isFooter(line string) bool {
	return pageNumberLine.MatchString(line) || containsAny(line, g.footers)
}

func (g *grammar) isNoise(line string) bool {
	if containsAny(line, g.noise) {
		return true
	}
	for _, exact := range g.noiseExact {
		if line == exact {
			return true
		}
	}
	return false
}

// buildBankTransaction negates the printed magnitude and keeps the balance.
func buildBankTransaction(m []string, year int) (models.Transaction, error) {
	amount, err := currencyutils.ParseAmount(m[3])
	if err != nil {
		return models.Transaction{}, err
	}
	balance, err := currencyutils.ParseAmount(m[4])
	if err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{
		Date:        dateutils.ParseStatementDate(m[1], year),
		Description: strings.TrimSpace(m[2]),
		Amount:      amount.Neg(),
		Balance:     decimal.NewNullDecimal(balance),
	}, nil
}

// buildCardTransaction keeps the transaction date, drops the posting date
// and stores the amount with its printed sign.
func buildCardTransaction(m []string, year int) (models.Transaction, error) {
	amount, err := currencyutils.ParseAmount(m[4])
	if err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{
		Date:        dateutils.ParseStatementDate(m[1], year),
		Description: StripTrailingLabel(strings.TrimSpace(m[3])),
		Amount:      amount,
	}, nil
}

// StripTrailingLabel removes one known spend-category label from the end of
// a card description.
func StripTrailingLabel(description string) string {
	return strings.TrimSpace(trailingLabel.ReplaceAllString(description, ""))
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
