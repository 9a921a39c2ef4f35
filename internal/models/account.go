package models

import "time"

// Account is a statement account keyed by its normalized account number.
type Account struct {
	ID        int64     `json:"id"`
	Number    string    `json:"account_number"`
	Name      *string   `json:"account_name"`
	Type      *string   `json:"account_type"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName returns the operator-assigned name, falling back to the number.
func (a Account) DisplayName() string {
	if a.Name != nil && *a.Name != "" {
		return *a.Name
	}
	return a.Number
}
