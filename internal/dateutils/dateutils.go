// Package dateutils provides the date handling shared by the statement parser
// and the ledger.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts used throughout the application
const (
	DateLayoutISO = "2006-01-02"
	// DateLayoutStatement is the year-less "Sep 2" form printed on statements,
	// once a year has been appended.
	DateLayoutStatement = "Jan 2 2006"
)

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims a date string and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseStatementDate converts a statement date such as "Sep 2" or "Sep 02"
// into YYYY-MM-DD using year. When the text cannot be parsed it is returned
// unchanged so the row is still stored.
func ParseStatementDate(raw string, year int) string {
	if t, ok := ParseStatementTime(raw, year); ok {
		return t.Format(DateLayoutISO)
	}
	return raw
}

// ParseStatementTime is ParseStatementDate without the raw-text fallback.
func ParseStatementTime(raw string, year int) (time.Time, bool) {
	cleaned := CleanDateString(raw)
	if cleaned == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayoutStatement, fmt.Sprintf("%s %04d", cleaned, year))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ResolveYear returns year, or the year of now when year is zero.
func ResolveYear(year int, now time.Time) int {
	if year > 0 {
		return year
	}
	return now.Year()
}

// IsISODate reports whether s is a valid YYYY-MM-DD date.
func IsISODate(s string) bool {
	_, err := time.Parse(DateLayoutISO, s)
	return err == nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
