package importer

import "errors"

// File-level failures abort the import before any row is written.
var (
	ErrMalformedFile = errors.New("malformed import file")
	ErrFileTooLarge  = errors.New("import file exceeds row limit")
)

// Row-level rejection reasons. These never abort the batch; they are
// reported per row.
const (
	ReasonMissingField       = "missing_field"
	ReasonInvalidDate        = "invalid_date"
	ReasonInvalidAmount      = "invalid_amount"
	ReasonInvalidType        = "invalid_type"
	ReasonStorageWriteFailed = "storage_write_failed"
)
