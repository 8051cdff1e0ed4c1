// Package loader reads the institution spreadsheet into a dataset.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
	"github.com/mohammed-shakir/pt-dashboard/internal/dataset"
)

var (
	ErrLoad              = errors.New("load dataset")
	ErrMissingColumn     = errors.New("missing required column")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoRows            = errors.New("no data rows")
)

type Options struct {
	// Sheet defaults to the first sheet of the workbook.
	Sheet  string
	Logger *slog.Logger
}

// Stats describes what the loader had to coerce or skip.
type Stats struct {
	Rows         int           `json:"rows"`
	SkippedEmpty int           `json:"skipped_empty"`
	CoercedCells int           `json:"coerced_cells"`
	Elapsed      time.Duration `json:"elapsed"`
}

// Load opens path (.xlsx or .csv) and builds the immutable dataset.
// Every failure is wrapped with ErrLoad.
func Load(ctx context.Context, path string, opts Options) (*dataset.Dataset, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()
	return Read(ctx, f, path, opts)
}

// Read parses an already opened spreadsheet; name selects the format by extension.
func Read(ctx context.Context, r io.Reader, name string, opts Options) (*dataset.Dataset, Stats, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	start := time.Now()

	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(r, opts.Sheet)
	case ".csv":
		rows, err = readCSV(r)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %s: %w", ErrLoad, name, err)
	}

	records, st, err := decode(ctx, rows)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %s: %w", ErrLoad, name, err)
	}
	st.Elapsed = time.Since(start)

	log.Info("dataset loaded",
		"source", name,
		"rows", st.Rows,
		"skipped_empty", st.SkippedEmpty,
		"coerced_cells", st.CoercedCells,
		"elapsed_ms", st.Elapsed.Milliseconds())

	return dataset.New(name, records), st, nil
}

func readWorkbook(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func decode(ctx context.Context, rows [][]string) ([]model.Record, Stats, error) {
	var st Stats
	if len(rows) == 0 {
		return nil, st, errors.New("empty sheet: header row required")
	}
	cols, err := indexHeader(rows[0])
	if err != nil {
		return nil, st, err
	}

	c := newCoercer()
	records := make([]model.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, st, err
			}
		}
		if blank(row) {
			st.SkippedEmpty++
			continue
		}
		records = append(records, c.record(cols, row))
	}
	if len(records) == 0 {
		return nil, st, ErrNoRows
	}
	st.Rows = len(records)
	st.CoercedCells = c.coerced
	return records, st, nil
}

// column name -> position
type header map[string]int

func indexHeader(row []string) (header, error) {
	h := make(header, len(row))
	for i, name := range row {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	var missing []string
	for _, col := range model.RequiredColumns {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return h, nil
}

func (h header) cell(row []string, col string) string {
	i := h[col]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
