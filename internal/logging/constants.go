package logging

// Standardized field names for structured logging.
const (
	FieldFile          = "file_path"
	FieldSource        = "source"
	FieldRunID         = "run_id"
	FieldLayout        = "layout"
	FieldAccountNumber = "account_number"
	FieldAccountType   = "account_type"
	FieldPage          = "page"
	FieldLine          = "line"
	FieldTransactionID = "transaction_id"
	FieldCategory      = "category"
	FieldCategoryID    = "category_id"
	FieldKeyword       = "keyword"
	FieldOperation     = "operation"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
	FieldInserted      = "inserted"
	FieldDuplicates    = "duplicates"
	FieldMatched       = "matched"
	FieldSkipped       = "skipped"
	FieldMalformed     = "malformed"
	FieldSheet         = "sheet"
	FieldOutputFile    = "output_file"
)
