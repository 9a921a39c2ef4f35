package models

import (
	"fjacquet/fintrack/internal/logging"
)

// CategorizationStats tracks how many transactions received a category.
type CategorizationStats struct {
	Total         int
	Categorized   int
	Uncategorized int
}

// Record counts one categorization attempt.
func (cs *CategorizationStats) Record(found bool) {
	cs.Total++
	if found {
		cs.Categorized++
	} else {
		cs.Uncategorized++
	}
}

// GetSuccessRate calculates the categorized share as a percentage
func (cs CategorizationStats) GetSuccessRate() float64 {
	if cs.Total == 0 {
		return 0.0
	}
	return float64(cs.Categorized) / float64(cs.Total) * 100.0
}

// LogSummary logs a summary of categorization statistics
func (cs CategorizationStats) LogSummary(logger logging.Logger, source string) {
	if logger == nil {
		return
	}

	logger.Info("Categorization summary",
		logging.Field{Key: logging.FieldSource, Value: source},
		logging.Field{Key: "total_transactions", Value: cs.Total},
		logging.Field{Key: "categorized", Value: cs.Categorized},
		logging.Field{Key: "uncategorized", Value: cs.Uncategorized},
		logging.Field{Key: "success_rate", Value: cs.GetSuccessRate()},
	)
}
