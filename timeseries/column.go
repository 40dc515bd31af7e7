package timeseries

import (
	"errors"

	"github.com/bits-and-blooms/bitset"
)

// Sequence is a fixed-length run of values with a parallel validity flag.
// Any container can take part in conversions by implementing it.
type Sequence interface {
	Len() int
	At(i int) (value float64, valid bool)
}

// Column stores values next to a validity bitset. A set bit marks a
// genuine observation; a clear bit marks a missing one.
type Column struct {
	values []float64
	valid  *bitset.BitSet
}

// NewColumn creates a column in which every value is valid.
func NewColumn(values []float64) *Column {
	c := &Column{
		values: make([]float64, len(values)),
		valid:  bitset.New(uint(len(values))),
	}
	copy(c.values, values)
	c.valid.FlipRange(0, uint(len(values)))
	return c
}

// NewMaskedColumn creates a column with explicit validity flags.
func NewMaskedColumn(values []float64, valid []bool) (*Column, error) {
	if len(values) != len(valid) {
		return nil, errors.New("values and validity must have the same length")
	}
	c := &Column{
		values: make([]float64, len(values)),
		valid:  bitset.New(uint(len(values))),
	}
	copy(c.values, values)
	for i, ok := range valid {
		c.valid.SetTo(uint(i), ok)
	}
	return c, nil
}

// MissingColumn creates n entries that are all missing.
func MissingColumn(n int) *Column {
	return &Column{
		values: make([]float64, n),
		valid:  bitset.New(uint(n)),
	}
}

// Collect copies any Sequence into a Column.
func Collect(seq Sequence) *Column {
	if c, ok := seq.(*Column); ok {
		return c.Copy()
	}
	c := MissingColumn(seq.Len())
	for i := 0; i < seq.Len(); i++ {
		if v, ok := seq.At(i); ok {
			c.Set(i, v)
		}
	}
	return c
}

// Len returns the number of entries.
func (c *Column) Len() int { return len(c.values) }

// At returns the value at i and whether it is valid.
func (c *Column) At(i int) (float64, bool) {
	return c.values[i], c.valid.Test(uint(i))
}

// Valid reports whether entry i holds an observation.
func (c *Column) Valid(i int) bool { return c.valid.Test(uint(i)) }

// Set stores v at i and marks it valid.
func (c *Column) Set(i int, v float64) {
	c.values[i] = v
	c.valid.Set(uint(i))
}

// Invalidate marks entry i as missing. The stored value is kept.
func (c *Column) Invalidate(i int) {
	c.valid.Clear(uint(i))
}

// Append adds one entry at the end.
func (c *Column) Append(v float64, valid bool) {
	c.values = append(c.values, v)
	c.valid.SetTo(uint(len(c.values)-1), valid)
}

// CountValid returns the number of observations.
func (c *Column) CountValid() int {
	return int(c.valid.Count())
}

// CountMissing returns the number of missing entries.
func (c *Column) CountMissing() int {
	return len(c.values) - c.CountValid()
}

// Values returns a copy of the stored values, missing ones included.
func (c *Column) Values() []float64 {
	out := make([]float64, len(c.values))
	copy(out, c.values)
	return out
}

// Mask returns the validity flags as a bool slice.
func (c *Column) Mask() []bool {
	out := make([]bool, len(c.values))
	for i := range out {
		out[i] = c.valid.Test(uint(i))
	}
	return out
}

// Copy creates a deep copy of the column.
func (c *Column) Copy() *Column {
	values := make([]float64, len(c.values))
	copy(values, c.values)
	return &Column{values: values, valid: c.valid.Clone()}
}

// Take returns the entries at the given positions, in that order.
func (c *Column) Take(idx []int) *Column {
	out := MissingColumn(len(idx))
	for i, j := range idx {
		out.values[i] = c.values[j]
		out.valid.SetTo(uint(i), c.valid.Test(uint(j)))
	}
	return out
}
