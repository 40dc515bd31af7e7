package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXOptions holds options for workbook loading.
type XLSXOptions struct {
	Sheet     string // Sheet name (default: first sheet)
	HasHeader bool   // Whether the first row after SkipRows is a header (default: true)
	SkipRows  int    // Number of rows to skip at start
}

// DefaultXLSXOptions returns default options for workbook loading.
func DefaultXLSXOptions() *XLSXOptions {
	return &XLSXOptions{HasHeader: true}
}

// ReadXLSX loads a table from one sheet of an Excel workbook. Cells are
// read as their formatted text.
func ReadXLSX(filename string, opts *XLSXOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultXLSXOptions()
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", filename)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	if opts.SkipRows >= len(rows) {
		return &Table{}, nil
	}
	rows = rows[opts.SkipRows:]

	t := &Table{}
	if opts.HasHeader && len(rows) > 0 {
		t.Header, rows = rows[0], rows[1:]
	}
	t.Rows = rows
	return t, nil
}
