// Package timeseries provides date-indexed series with missing-value tracking.
package timeseries

import (
	"errors"

	"github.com/sartorproj/tsfreq/dates"
	"github.com/sartorproj/tsfreq/freq"
)

// Series pairs a date array with row-aligned values.
type Series struct {
	Dates *dates.Array
	Data  Sequence
	Name  string
}

// New creates a series from dates and a Sequence of the same length.
func New(d *dates.Array, data Sequence) (*Series, error) {
	if d == nil || data == nil {
		return nil, errors.New("dates and data are required")
	}
	if d.Len() != data.Len() {
		return nil, errors.New("dates and data must have the same length")
	}
	return &Series{Dates: d, Data: data}, nil
}

// FromValues creates a fully valid series.
func FromValues(d *dates.Array, values []float64) (*Series, error) {
	return New(d, NewColumn(values))
}

// FromStart creates a fully valid series on a dense range beginning at start.
func FromStart(start dates.Date, values []float64) (*Series, error) {
	if len(values) == 0 {
		return nil, errors.New("no values")
	}
	d, err := dates.Range(start, start.Add(int64(len(values)-1)))
	if err != nil {
		return nil, err
	}
	return FromValues(d, values)
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return s.Dates.Len()
}

// Freq returns the frequency of the dates.
func (s *Series) Freq() freq.Frequency {
	return s.Dates.Freq()
}

// At returns the i-th date, value and validity.
func (s *Series) At(i int) (dates.Date, float64, bool) {
	v, ok := s.Data.At(i)
	return s.Dates.At(i), v, ok
}

// Column returns the data as a Column, copying when the data is not one.
func (s *Series) Column() *Column {
	if c, ok := s.Data.(*Column); ok {
		return c
	}
	return Collect(s.Data)
}

// CountMissing returns the number of missing entries.
func (s *Series) CountMissing() int {
	n := 0
	for i := 0; i < s.Data.Len(); i++ {
		if _, ok := s.Data.At(i); !ok {
			n++
		}
	}
	return n
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	return &Series{
		Dates: s.Dates.Copy(),
		Data:  Collect(s.Data),
		Name:  s.Name,
	}
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > s.Len() {
		end = s.Len()
	}
	if start > end {
		start = end
	}

	idx := make([]int, end-start)
	for i := range idx {
		idx[i] = start + i
	}

	return &Series{
		Dates: s.Dates.Slice(start, end),
		Data:  s.Column().Take(idx),
		Name:  s.Name,
	}
}

// Sorted returns a copy ordered by date. Entries sharing a date keep their
// relative order.
func (s *Series) Sorted() *Series {
	if s.Dates.IsSorted() {
		return s.Copy()
	}
	d, perm := s.Dates.Sorted()
	return &Series{
		Dates: d,
		Data:  s.Column().Take(perm),
		Name:  s.Name,
	}
}

// Invalidate returns a copy with the entries where drop returns true marked
// missing.
func (s *Series) Invalidate(drop func(d dates.Date, v float64) bool) *Series {
	out := s.Copy()
	c := out.Data.(*Column)
	for i := 0; i < out.Len(); i++ {
		d, v, ok := out.At(i)
		if ok && drop(d, v) {
			c.Invalidate(i)
		}
	}
	return out
}
