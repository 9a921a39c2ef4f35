package categorizer

import (
	"strings"

	"fjacquet/fintrack/internal/models"
)

// Match is the outcome of a successful keyword lookup.
type Match struct {
	Category models.Category
	Keyword  string
}

// matchKeywords scans categories in order and returns the first one owning a
// keyword that occurs in the lowercased description.
func matchKeywords(categories []models.Category, description string) (Match, bool) {
	text := strings.ToLower(description)
	if strings.TrimSpace(text) == "" {
		return Match{}, false
	}

	for _, category := range categories {
		for _, keyword := range category.Keywords {
			k := strings.ToLower(keyword)
			if k == "" {
				continue
			}
			if strings.Contains(text, k) {
				return Match{Category: category, Keyword: keyword}, true
			}
		}
	}
	return Match{}, false
}
