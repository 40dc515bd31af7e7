package resample

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sartorproj/tsfreq/dates"
	"github.com/sartorproj/tsfreq/freq"
	"github.com/sartorproj/tsfreq/timeseries"
)

// leapDayColumn is the 0-based day-of-year column reserved for February 29.
const leapDayColumn = 59

// Matrix lays a series out with one row per year and one column per
// period of the year.
type Matrix struct {
	Freq  freq.Frequency
	Years []int // year of each row
	Cols  int
	rows  []*timeseries.Column
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return len(m.rows) }

// At returns the cell at row r and column c.
func (m *Matrix) At(r, c int) (float64, bool) { return m.rows[r].At(c) }

// Row returns row r.
func (m *Matrix) Row(r int) *timeseries.Column { return m.rows[r] }

// AnnualColumn returns the matrix column of d. Columns are aligned on the
// leap-year calendar: in other years February 29 is skipped, so a given
// calendar day always lands in the same column.
func AnnualColumn(d dates.Date) (int, error) {
	f := d.Freq()
	if !f.IsFixed() {
		return 0, fmt.Errorf("%w: annual layout needs a fixed frequency, got %s", dates.ErrFrequencyMismatch, f)
	}
	day := d.DayOfYear() - 1
	if !d.IsLeapYear() && day >= leapDayColumn {
		day++
	}
	offset := int64(d.Hour()*3600+d.Minute()*60+d.Second()) / f.Seconds()
	return day*int(f.PeriodsPerDay()) + int(offset), nil
}

// AnnualMatrix reshapes a daily or intraday series into a Matrix. Rows cover
// every year from the first to the last date; a year gets an extra row only
// when an entry would overwrite a filled cell of its current row. Cells
// without an entry are missing.
func AnnualMatrix(s *timeseries.Series) (*Matrix, error) {
	f := s.Freq()
	if !f.IsFixed() {
		return nil, fmt.Errorf("%w: annual layout needs a fixed frequency, got %s", dates.ErrFrequencyMismatch, f)
	}
	m := &Matrix{Freq: f, Cols: int(f.PeriodsPerYear())}
	if s.Len() == 0 {
		return m, nil
	}

	first, last := s.Dates.Start().Year(), s.Dates.End().Year()
	perYear := make([][]*timeseries.Column, last-first+1)
	filled := 0
	for i := 0; i < s.Len(); i++ {
		d, v, ok := s.At(i)
		if !ok {
			continue
		}
		col, err := AnnualColumn(d)
		if err != nil {
			return nil, err
		}

		rows := perYear[d.Year()-first]
		if len(rows) == 0 || rows[len(rows)-1].Valid(col) {
			rows = append(rows, timeseries.MissingColumn(m.Cols))
			perYear[d.Year()-first] = rows
		}
		rows[len(rows)-1].Set(col, v)
		filled++
	}

	for y, rows := range perYear {
		if len(rows) == 0 {
			rows = append(rows, timeseries.MissingColumn(m.Cols))
		}
		for _, r := range rows {
			m.Years = append(m.Years, first+y)
			m.rows = append(m.rows, r)
		}
	}

	log.Debug().
		Str("freq", f.Code()).
		Int("rows", len(m.rows)).
		Int("cols", m.Cols).
		Int("filled", filled).
		Msg("reshaped series by year")

	return m, nil
}
