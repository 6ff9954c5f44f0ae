package services

import (
	"context"
	"fmt"
	"log/slog"

	"collegeevents/internal/domain"
	"collegeevents/internal/signup"
)

// openedSheet is a sign-up sheet with its header and rows already read.
type openedSheet struct {
	id        string
	source    domain.SheetSource
	header    []string
	rows      []map[string]string
	statusCol string
	hasStatus bool
}

// openSheet resolves raw (a sheet URL or bare ID), opens it and reads the header and rows.
func openSheet(ctx context.Context, opener domain.SheetOpener, raw string) (*openedSheet, error) {
	id, ok := signup.ExtractSheetID(raw)
	if !ok {
		return nil, domain.ErrSourceUnresolved
	}
	src, err := opener.Open(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrSourceAccess, id, err)
	}
	header, err := src.Header(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", domain.ErrSourceAccess, err)
	}
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %w", domain.ErrSourceAccess, err)
	}
	s := &openedSheet{id: id, source: src, header: header, rows: rows}
	s.statusCol, s.hasStatus = signup.StatusColumn(header)
	return s, nil
}

// rowNumber maps a 0-based data row index to its sheet row number.
func rowNumber(idx int) int {
	return idx + 2
}

// writeStatus marks a row with status. Failures are logged and reported, never returned.
func (s *openedSheet) writeStatus(ctx context.Context, logger *slog.Logger, row int, status string) domain.WriteBackResult {
	if !s.hasStatus {
		logger.DebugContext(ctx, "sheet has no status column", "sheet_id", s.id, "row", row, "status", status)
		return domain.WriteBackSkipped
	}
	if err := s.source.WriteCell(ctx, row, s.statusCol, status); err != nil {
		logger.WarnContext(ctx, "sheet status write-back failed", "sheet_id", s.id, "row", row, "status", status, "err", err)
		return domain.WriteBackFailed
	}
	return domain.WriteBackWritten
}
