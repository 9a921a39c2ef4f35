package statementparser

import (
	"regexp"
	"strings"

	"fjacquet/fintrack/internal/models"
)

// Marker phrases looked up on the first page of a statement.
const (
	markerBankStatement = "Account Statement"
	markerBranchTransit = "Branch transit number"
	markerVisa          = "Visa"
	markerCreditCard    = "Credit Card"
	markerDividend      = "Dividend"
	markerAventura      = "Aventura"
)

var (
	bankAccountNumber      = regexp.MustCompile(`Account number\s*(\d{2}-\d{5})`)
	cardAccountNumber      = regexp.MustCompile(`Account number\s*(\d{4}\s+X+\s+X+\s+\d{4})`)
	cardAccountNumberLoose = regexp.MustCompile(`(\d{4}\s+X+\s+X+\s+\d{4})`)
	whitespaceInAccountNum = regexp.MustCompile(`\s+`)
)

// DetectLayout classifies a statement from the text of its first page.
// Bank markers are checked before card markers.
func DetectLayout(firstPage string) models.Layout {
	switch {
	case strings.Contains(firstPage, markerBankStatement) && strings.Contains(firstPage, markerBranchTransit):
		return models.LayoutBankAccount
	case strings.Contains(firstPage, markerVisa) || strings.Contains(firstPage, markerCreditCard):
		return models.LayoutCreditCard
	default:
		return models.LayoutUnknown
	}
}

// ExtractAccountInfo reads the account number and kind from the first page.
// It never fails: an unmatched number becomes models.UnknownAccountNumber.
func ExtractAccountInfo(firstPage string, layout models.Layout) models.AccountInfo {
	info := models.AccountInfo{Number: models.UnknownAccountNumber}

	switch layout {
	case models.LayoutBankAccount:
		info.Type = models.AccountTypeBank
		if m := bankAccountNumber.FindStringSubmatch(firstPage); m != nil {
			info.Number = m[1]
		}

	case models.LayoutCreditCard:
		info.Type = cardType(firstPage)
		m := cardAccountNumber.FindStringSubmatch(firstPage)
		if m == nil {
			m = cardAccountNumberLoose.FindStringSubmatch(firstPage)
		}
		if m != nil {
			info.Number = whitespaceInAccountNum.ReplaceAllString(m[1], "")
		}

	default:
		info.Type = models.AccountTypeUnrecognized
	}

	return info
}

func cardType(firstPage string) string {
	switch {
	case strings.Contains(firstPage, markerDividend):
		return models.AccountTypeDividendVisa
	case strings.Contains(firstPage, markerAventura):
		return models.AccountTypeAventura
	default:
		return models.AccountTypeCreditCard
	}
}
