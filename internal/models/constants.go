package models

// Layout tags
const (
	LayoutBankAccount Layout = "bank_account"
	LayoutCreditCard  Layout = "credit_card"
	LayoutUnknown     Layout = "unknown"
)

// UnknownAccountNumber is stored when no account number pattern matches.
const UnknownAccountNumber = "UNKNOWN"

// Account kinds
const (
	AccountTypeBank         = "CIBC Bank Account"
	AccountTypeCreditCard   = "CIBC Credit Card"
	AccountTypeDividendVisa = "CIBC Dividend Visa"
	AccountTypeAventura     = "CIBC Aventura"
	AccountTypeUnrecognized = "Unknown"
)

// Date layouts
const (
	DateLayoutISO = "2006-01-02"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
