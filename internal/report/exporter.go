package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/honeycarbs/recruit-dash/internal/domain"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

const csvContentType = "text/csv; charset=utf-8"

var (
	ErrNoData         = errors.New("report: no data to export")
	ErrSheetsDisabled = errors.New("report: google sheets export is not configured")
)

// SheetWriter replaces the contents of a spreadsheet tab
type SheetWriter interface {
	ReplaceTab(ctx context.Context, spreadsheetID, tab string, rows [][]interface{}) (int, error)
}

// Archiver stores a finished report remotely
type Archiver interface {
	Put(ctx context.Context, name, contentType string, body []byte) (string, error)
}

// Result describes one CSV export
type Result struct {
	Path  string
	Key   string
	Count int
}

// Exporter writes the filtered view as CSV and optionally to Sheets and an
// object store
type Exporter struct {
	dir     string
	sheets  SheetWriter
	archive Archiver
	clock   func() time.Time
	logger  *logging.Logger
}

type Option func(*Exporter)

// WithDir sets the directory CSV files are written to
func WithDir(dir string) Option {
	return func(e *Exporter) {
		e.dir = dir
	}
}

func WithSheets(w SheetWriter) Option {
	return func(e *Exporter) {
		e.sheets = w
	}
}

// WithArchive uploads every CSV export after it is written locally
func WithArchive(a Archiver) Option {
	return func(e *Exporter) {
		e.archive = a
	}
}

// WithClock sets a custom clock; its location is used for Applied Date
func WithClock(clock func() time.Time) Option {
	return func(e *Exporter) {
		e.clock = clock
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		dir:    ".",
		clock:  time.Now,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportCSV writes records to <dir>/recruitment-report-<date>.csv. When an
// archive is configured the same bytes are uploaded; a failed upload is
// returned together with the local path.
func (e *Exporter) ExportCSV(ctx context.Context, records []domain.Applicant) (Result, error) {
	if len(records) == 0 {
		e.logger.Warn("csv export skipped, no records")
		return Result{}, ErrNoData
	}

	now := e.clock()
	name := Filename(now)
	data := EncodeCSV(records, now.Location())

	res := Result{Path: filepath.Join(e.dir, name), Count: len(records)}
	if err := os.WriteFile(res.Path, data, 0o644); err != nil {
		return Result{}, fmt.Errorf("report: write %s: %w", res.Path, err)
	}
	e.logger.Info("csv report written", "path", res.Path, "records", res.Count)

	if e.archive == nil {
		return res, nil
	}

	key, err := e.archive.Put(ctx, name, csvContentType, data)
	if err != nil {
		e.logger.Warn("csv report upload failed", "path", res.Path, "err", err)
		return res, fmt.Errorf("report: archive upload: %w", err)
	}
	res.Key = key
	e.logger.Info("csv report archived", "key", key)

	return res, nil
}

// ExportSheet replaces tab of spreadsheetID with the report and returns the
// number of records written
func (e *Exporter) ExportSheet(ctx context.Context, spreadsheetID, tab string, records []domain.Applicant) (int, error) {
	if e.sheets == nil {
		return 0, ErrSheetsDisabled
	}
	if len(records) == 0 {
		e.logger.Warn("sheet export skipped, no records")
		return 0, ErrNoData
	}

	rows := SheetRows(records, e.clock().Location())
	written, err := e.sheets.ReplaceTab(ctx, spreadsheetID, tab, rows)
	if err != nil {
		return 0, fmt.Errorf("report: sheet export: %w", err)
	}

	count := max(written-1, 0)
	e.logger.Info("sheet report written", "spreadsheet", spreadsheetID, "tab", tab, "records", count)
	return count, nil
}
