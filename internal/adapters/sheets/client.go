package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"collegeevents/internal/domain"
)

type opener struct {
	srv *sheetsv4.Service
}

// NewOpener returns a SheetOpener backed by the Google Sheets API. Any client options
// (credentials, endpoint, HTTP client) are passed through to the service.
func NewOpener(ctx context.Context, opts ...option.ClientOption) (domain.SheetOpener, error) {
	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &opener{srv: srv}, nil
}

// NewServiceAccountOpener returns a SheetOpener authenticated with a service account JSON key.
// endpoint is optional and overrides the API base URL.
func NewServiceAccountOpener(ctx context.Context, serviceAccountJSONPath, endpoint string) (domain.SheetOpener, error) {
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	opts := []option.ClientOption{
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return NewOpener(ctx, opts...)
}

// Open resolves the first worksheet of the spreadsheet. Values are read lazily on the
// first Header or Rows call.
func (o *opener) Open(ctx context.Context, sheetID string) (domain.SheetSource, error) {
	ss, err := o.srv.Spreadsheets.Get(sheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", sheetID, err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return nil, fmt.Errorf("spreadsheet %s has no worksheets", sheetID)
	}
	return &worksheet{
		srv:           o.srv,
		spreadsheetID: sheetID,
		title:         ss.Sheets[0].Properties.Title,
	}, nil
}

type worksheet struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	title         string

	loaded bool
	header []string
	rows   []map[string]string
}

func (w *worksheet) load(ctx context.Context) error {
	if w.loaded {
		return nil
	}
	resp, err := w.srv.Spreadsheets.Values.Get(w.spreadsheetID, quoteTitle(w.title)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read worksheet %q: %w", w.title, err)
	}
	values := resp.Values
	w.header = []string{}
	w.rows = []map[string]string{}
	if len(values) > 0 {
		for i := range values[0] {
			w.header = append(w.header, cell(values[0], i))
		}
		// header row at index 0
		for _, raw := range values[1:] {
			row := make(map[string]string, len(w.header))
			for i, h := range w.header {
				if h == "" {
					continue
				}
				row[h] = cell(raw, i)
			}
			w.rows = append(w.rows, row)
		}
	}
	w.loaded = true
	return nil
}

func (w *worksheet) Header(ctx context.Context) ([]string, error) {
	if err := w.load(ctx); err != nil {
		return nil, err
	}
	return w.header, nil
}

func (w *worksheet) Rows(ctx context.Context) ([]map[string]string, error) {
	if err := w.load(ctx); err != nil {
		return nil, err
	}
	return w.rows, nil
}

// WriteCell writes value into the given column of a 1-based sheet row.
func (w *worksheet) WriteCell(ctx context.Context, rowNumber int, column, value string) error {
	if err := w.load(ctx); err != nil {
		return err
	}
	idx := w.columnIndex(column)
	if idx < 0 {
		return fmt.Errorf("column %q not found", column)
	}
	a1 := fmt.Sprintf("%s!%s%d", quoteTitle(w.title), ColumnLetters(idx+1), rowNumber)
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{{value}}}
	_, err := w.srv.Spreadsheets.Values.Update(w.spreadsheetID, a1, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", a1, err)
	}
	return nil
}

func (w *worksheet) columnIndex(column string) int {
	for i, h := range w.header {
		if h == column {
			return i
		}
	}
	want := strings.ToLower(strings.TrimSpace(column))
	for i, h := range w.header {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i
		}
	}
	return -1
}

// ColumnLetters converts a 1-based column number to A1 letters (1 -> A, 27 -> AA).
func ColumnLetters(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func cell(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}

// ErrNotConfigured is returned by the opener from Unconfigured.
var ErrNotConfigured = errors.New("google sheets credentials not configured")

type unconfiguredOpener struct{}

// Unconfigured returns a SheetOpener whose Open always fails with ErrNotConfigured.
func Unconfigured() domain.SheetOpener { return unconfiguredOpener{} }

func (unconfiguredOpener) Open(context.Context, string) (domain.SheetSource, error) {
	return nil, ErrNotConfigured
}
