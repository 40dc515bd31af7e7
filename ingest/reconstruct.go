package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/sartorproj/tsfreq/dates"
	"github.com/sartorproj/tsfreq/freq"
	"github.com/sartorproj/tsfreq/guess"
	"github.com/sartorproj/tsfreq/timeseries"
)

// ErrColumnCount is returned when the date columns do not fit the parser
// or the rows.
var ErrColumnCount = errors.New("date column count mismatch")

// maxFieldColumns is the number of integer calendar fields a row may carry.
const maxFieldColumns = 6

// fieldFreqs maps a number of integer date columns to the frequency they
// describe when none is declared.
var fieldFreqs = map[int]freq.Frequency{
	2: freq.Month,
	3: freq.Day,
	4: freq.Hour,
	5: freq.Minute,
	6: freq.Second,
}

// Table holds raw text rows, optionally with a header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// Parser builds a date from the raw fields of the date columns, in the
// order of Options.DateCols.
type Parser struct {
	Arity int // Expected number of fields, 0 for any
	Parse func(fields []string) (dates.Date, error)
}

// Options holds options for Reconstruct.
type Options struct {
	DateCols       []int          // Date column indices, negative from the end (default: {0})
	Freq           freq.Frequency // Frequency of the dates (default: guessed)
	Parser         *Parser        // Custom date parser (optional)
	UseCols        []int          // Value columns to keep (default: every non-date column)
	Names          []string       // Value column names (default: header or "f<index>")
	MissingValues  []string       // Tokens read as missing
	Converters     map[int]func(string) (float64, error)
	KeepDuplicates bool // Keep rows sharing a date instead of keeping the last
}

// DefaultOptions returns default options for Reconstruct.
func DefaultOptions() *Options {
	return &Options{
		DateCols:      []int{0},
		Freq:          freq.Undefined,
		MissingValues: []string{"", "NA", "NaN", "nan", "null", "N/A"},
	}
}

// Result holds reconstructed dates with row-aligned value columns.
type Result struct {
	Dates   *dates.Array
	Names   []string
	Columns []*timeseries.Column
	// Duplicates is the number of rows dropped because a later row had the
	// same date.
	Duplicates int
}

// Series returns the named column as a series.
func (r *Result) Series(name string) (*timeseries.Series, error) {
	i := slices.Index(r.Names, name)
	if i < 0 {
		return nil, fmt.Errorf("no column %q", name)
	}
	s, err := timeseries.New(r.Dates, r.Columns[i])
	if err != nil {
		return nil, err
	}
	s.Name = name
	return s, nil
}

// Reconstruct parses the date columns of t into one date per row, parses
// the other columns as values, resolves duplicate dates and sorts the rows
// by date. Rows with only blank fields are ignored.
func Reconstruct(t *Table, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	var rows [][]string
	width := len(t.Header)
	for _, row := range t.Rows {
		if blank(row) {
			continue
		}
		rows = append(rows, row)
		width = max(width, len(row))
	}
	if len(rows) == 0 {
		return nil, errors.New("no data rows")
	}

	dateCols, err := resolveColumns(opts.DateCols, []int{0}, width)
	if err != nil {
		return nil, err
	}
	if opts.Parser != nil && opts.Parser.Arity != 0 && opts.Parser.Arity != len(dateCols) {
		return nil, fmt.Errorf("%w: parser takes %d fields, got %d date columns",
			ErrColumnCount, opts.Parser.Arity, len(dateCols))
	}
	if opts.Parser == nil && len(dateCols) > maxFieldColumns {
		return nil, fmt.Errorf("%w: at most %d date columns, got %d",
			ErrColumnCount, maxFieldColumns, len(dateCols))
	}

	valueCols, err := resolveColumns(opts.UseCols, nil, width)
	if err != nil {
		return nil, err
	}
	if opts.UseCols == nil {
		for c := 0; c < width; c++ {
			valueCols = append(valueCols, c)
		}
	}
	valueCols = slices.DeleteFunc(valueCols, func(c int) bool { return slices.Contains(dateCols, c) })

	d, err := parseDates(rows, dateCols, opts)
	if err != nil {
		return nil, err
	}

	columns := make([]*timeseries.Column, len(valueCols))
	for j, c := range valueCols {
		conv := converter(opts, c, width)
		col := timeseries.MissingColumn(0)
		for _, row := range rows {
			var raw string
			if c < len(row) {
				raw = row[c]
			}
			v, ok := conv(raw)
			col.Append(v, ok)
		}
		columns[j] = col
	}

	res := &Result{Names: columnNames(valueCols, t.Header, opts.Names)}
	sorted, perm := d.Sorted()
	if !opts.KeepDuplicates {
		perm = lastOfRuns(sorted, perm)
		res.Duplicates = d.Len() - len(perm)
		ords := make([]int64, len(perm))
		for i, p := range perm {
			ords[i] = d.Ordinal(p)
		}
		if sorted, err = dates.FromOrdinals(d.Freq(), ords); err != nil {
			return nil, err
		}
	}
	res.Dates = sorted
	res.Columns = make([]*timeseries.Column, len(columns))
	for j, col := range columns {
		res.Columns[j] = col.Take(perm)
	}

	log.Debug().
		Str("freq", d.Freq().Code()).
		Int("rows", len(rows)).
		Int("columns", len(columns)).
		Int("duplicates", res.Duplicates).
		Msg("reconstructed date columns")

	return res, nil
}

// lastOfRuns keeps, for every run of equal dates in sorted, the position
// of the row that came last in the input. perm maps sorted positions to
// input rows.
func lastOfRuns(sorted *dates.Array, perm []int) []int {
	var keep []int
	for i := 0; i < sorted.Len(); i++ {
		if i+1 < sorted.Len() && sorted.Ordinal(i+1) == sorted.Ordinal(i) {
			continue
		}
		keep = append(keep, perm[i])
	}
	return keep
}

func blank(row []string) bool {
	for _, f := range row {
		if trimField(f) != "" {
			return false
		}
	}
	return true
}

// resolveColumns turns possibly negative indices into positions in a row
// of the given width.
func resolveColumns(cols, def []int, width int) ([]int, error) {
	if len(cols) == 0 {
		cols = def
	}
	out := make([]int, 0, len(cols))
	for _, c := range cols {
		if c < 0 {
			c += width
		}
		if c < 0 || c >= width {
			return nil, fmt.Errorf("%w: column %d outside rows of width %d", ErrColumnCount, c, width)
		}
		out = append(out, c)
	}
	return out, nil
}

func parseDates(rows [][]string, cols []int, opts *Options) (*dates.Array, error) {
	fields := make([][]string, len(rows))
	for i, row := range rows {
		fields[i] = make([]string, len(cols))
		for j, c := range cols {
			if c < len(row) {
				fields[i][j] = trimField(row[c])
			}
		}
	}

	parse, f, err := dateParser(fields, len(cols), opts)
	if err != nil {
		return nil, err
	}

	out := make([]dates.Date, len(rows))
	for i, fl := range fields {
		d, err := parse(fl)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if f.Valid() && d.Freq() != f {
			if d, err = d.Convert(f, false); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		if i > 0 && d.Freq() != out[0].Freq() {
			return nil, fmt.Errorf("row %d: %w: %s and %s", i+1, dates.ErrFrequencyMismatch, d.Freq(), out[0].Freq())
		}
		out[i] = d
	}
	return dates.FromDates(out[0].Freq(), out)
}

// dateParser picks the parser for the date fields and the frequency every
// date is brought to.
func dateParser(fields [][]string, n int, opts *Options) (func([]string) (dates.Date, error), freq.Frequency, error) {
	f := opts.Freq
	if opts.Parser != nil {
		return opts.Parser.Parse, f, nil
	}

	if n == 1 {
		if !f.Valid() {
			texts := make([]string, len(fields))
			for i, fl := range fields {
				texts[i] = fl[0]
			}
			guessed, err := guess.Guess(texts)
			switch {
			case errors.Is(err, guess.ErrAmbiguousFrequency):
				// A single distinct date: read the frequency from its text.
				guessed = freq.Undefined
			case err != nil:
				return nil, f, err
			}
			f = guessed
		}
		return func(fl []string) (dates.Date, error) {
			return dates.FromString(f, fl[0])
		}, f, nil
	}

	// Fields are read at the frequency their count describes and brought
	// to a coarser declared frequency afterwards.
	natural := fieldFreqs[n]
	if !f.Valid() {
		f = natural
	}
	at := f
	if f.Coarser(natural) && !(f == freq.Quarter && n == 2) {
		at = natural
	}
	return func(fl []string) (dates.Date, error) {
		var v [maxFieldColumns]int
		for i, s := range fl {
			x, err := strconv.Atoi(s)
			if err != nil {
				return dates.Date{}, fmt.Errorf("%w: date field %q", dates.ErrParse, s)
			}
			v[i] = x
		}
		return dates.FromFields(at, dates.Fields{
			Year: v[0], Period: v[1], Day: v[2],
			Hour: v[3], Minute: v[4], Second: v[5],
		})
	}, f, nil
}

// converter returns the value parser of column c.
func converter(opts *Options, c, width int) func(string) (float64, bool) {
	var custom func(string) (float64, error)
	for k, fn := range opts.Converters {
		if k == c || (k < 0 && k+width == c) {
			custom = fn
		}
	}
	return func(raw string) (float64, bool) {
		s := trimField(raw)
		if slices.Contains(opts.MissingValues, s) {
			return 0, false
		}
		if custom != nil {
			v, err := custom(s)
			return v, err == nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return v, err == nil
	}
}
