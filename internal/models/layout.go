package models

// Layout identifies which extraction grammar applies to a statement.
type Layout string

func (l Layout) String() string {
	return string(l)
}

// IsKnown reports whether the layout has an extraction grammar.
func (l Layout) IsKnown() bool {
	return l == LayoutBankAccount || l == LayoutCreditCard
}

// AccountInfo is the header metadata read from the first page of a statement.
type AccountInfo struct {
	Number string
	Name   *string
	Type   string
}
