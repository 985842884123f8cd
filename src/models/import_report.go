package models

// ImportReport summarizes one CSV import. Partial success is the normal
// outcome: bad rows land in Rejections, good rows are committed.
type ImportReport struct {
	Accepted   int            `json:"accepted"`
	Rejected   int            `json:"rejected"`
	Rejections []RowRejection `json:"rejections"`
}

// RowRejection records why one data row was not imported. Row is 1-indexed
// over data rows, header excluded, in original file order.
type RowRejection struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}
