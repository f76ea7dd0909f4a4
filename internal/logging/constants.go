package logging

// Standardized field names for structured logging.
const (
	FieldFile          = "file_path"
	FieldReportID      = "report_id"
	FieldReportNumber  = "report_number"
	FieldSection       = "section"
	FieldCreditScore   = "credit_score"
	FieldAccounts      = "accounts"
	FieldAddresses     = "addresses"
	FieldOperation     = "operation"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
	FieldBytes         = "bytes"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldRemoteAddr    = "remote_addr"
	FieldWorkers       = "workers"
	FieldStoreDriver   = "store_driver"
	FieldListenAddress = "addr"
	FieldImported      = "imported"
	FieldFailed        = "failed"
)
