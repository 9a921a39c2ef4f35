package models

// LineOutcome records what the extractor did with one input line.
type LineOutcome string

const (
	// LineMatched means the line produced a transaction.
	LineMatched LineOutcome = "matched"
	// LineSkipped means the line was outside a transaction section or a
	// known header, footer or noise line.
	LineSkipped LineOutcome = "skipped"
	// LineMalformed means the line sat inside a transaction section but did
	// not match the active row grammar.
	LineMalformed LineOutcome = "malformed"
)

// LineResult captures the outcome for one line of one page.
type LineResult struct {
	Page    int         `json:"page"`
	LineNum int         `json:"line"`
	Text    string      `json:"text"`
	Outcome LineOutcome `json:"outcome"`
}

// PageCoverage summarizes line outcomes for a page.
type PageCoverage struct {
	Page      int `json:"page"`
	Matched   int `json:"matched"`
	Skipped   int `json:"skipped"`
	Malformed int `json:"malformed"`
}

// InsertOutcome distinguishes a new row from an idempotency hit.
type InsertOutcome int

const (
	// Inserted means a new row was written.
	Inserted InsertOutcome = iota
	// Duplicate means a row with the same identity already existed.
	Duplicate
)

func (o InsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Duplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// InsertResult is returned by idempotent writes. ID is the identity of the
// new or pre-existing row; for duplicate transactions it is zero.
type InsertResult struct {
	ID      int64
	Outcome InsertOutcome
}

// IsNew reports whether the write created a row.
func (r InsertResult) IsNew() bool {
	return r.Outcome == Inserted
}
