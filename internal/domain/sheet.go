package domain

import "context"

// Status values written back to the status column of a sign-up sheet row.
const (
	SheetStatusProcessed = "Processed"
	SheetStatusDuplicate = "Duplicate"
	SheetStatusError     = "Error"
	SheetStatusDeleted   = "Deleted"
	SheetStatusSkipped   = "Skipped"
)

// SheetSource is an opened external sign-up sheet. Row numbers are 1-based sheet rows;
// the header is row 1 and the first data row is 2.
type SheetSource interface {
	Header(ctx context.Context) ([]string, error)
	Rows(ctx context.Context) ([]map[string]string, error)
	WriteCell(ctx context.Context, rowNumber int, column, value string) error
}

// SheetOpener opens a sign-up sheet by spreadsheet ID.
type SheetOpener interface {
	Open(ctx context.Context, sheetID string) (SheetSource, error)
}
