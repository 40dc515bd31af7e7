package dates

import (
	"golang.org/x/exp/slices"

	"github.com/sartorproj/tsfreq/freq"
)

// Array is an ordered sequence of same-frequency dates, stored as ordinals.
type Array struct {
	freq freq.Frequency
	ords []int64
}

// Range returns every period from start to end inclusive.
func Range(start, end Date) (*Array, error) {
	if start.freq != end.freq {
		return nil, mismatchf("range from %s to %s", start.freq, end.freq)
	}
	if !start.freq.Valid() {
		return nil, mismatchf("frequency %s cannot index dates", start.freq)
	}
	if end.ord < start.ord {
		return nil, &Error{Kind: ErrEmptyRange, Msg: start.String() + " > " + end.String()}
	}
	ords := make([]int64, end.ord-start.ord+1)
	for i := range ords {
		ords[i] = start.ord + int64(i)
	}
	return &Array{freq: start.freq, ords: ords}, nil
}

// FromOrdinals wraps a copy of ords without sorting or deduplicating.
func FromOrdinals(f freq.Frequency, ords []int64) (*Array, error) {
	if !f.Valid() {
		return nil, mismatchf("frequency %s cannot index dates", f)
	}
	return &Array{freq: f, ords: slices.Clone(ords)}, nil
}

// FromDates collects dates that must all be at frequency f.
func FromDates(f freq.Frequency, ds []Date) (*Array, error) {
	if !f.Valid() {
		return nil, mismatchf("frequency %s cannot index dates", f)
	}
	ords := make([]int64, len(ds))
	for i, d := range ds {
		if d.freq != f {
			return nil, mismatchf("date %d is %s, array is %s", i, d.freq, f)
		}
		ords[i] = d.ord
	}
	return &Array{freq: f, ords: ords}, nil
}

// FromStrings parses every text at frequency f.
func FromStrings(f freq.Frequency, texts []string) (*Array, error) {
	if !f.Valid() {
		return nil, mismatchf("frequency %s cannot index dates", f)
	}
	ords := make([]int64, len(texts))
	for i, s := range texts {
		d, err := FromString(f, s)
		if err != nil {
			return nil, err
		}
		ords[i] = d.ord
	}
	return &Array{freq: f, ords: ords}, nil
}

// Freq returns the frequency shared by every element.
func (a *Array) Freq() freq.Frequency { return a.freq }

// Len returns the number of dates.
func (a *Array) Len() int { return len(a.ords) }

// At returns the i-th date.
func (a *Array) At(i int) Date { return Date{freq: a.freq, ord: a.ords[i]} }

// Ordinal returns the i-th ordinal.
func (a *Array) Ordinal(i int) int64 { return a.ords[i] }

// Ordinals returns a copy of the ordinals.
func (a *Array) Ordinals() []int64 { return slices.Clone(a.ords) }

// Dates returns the elements as Date values.
func (a *Array) Dates() []Date {
	out := make([]Date, len(a.ords))
	for i, o := range a.ords {
		out[i] = Date{freq: a.freq, ord: o}
	}
	return out
}

// Strings formats every element.
func (a *Array) Strings() []string {
	out := make([]string, len(a.ords))
	for i := range a.ords {
		out[i] = a.At(i).String()
	}
	return out
}

// Copy returns an independent copy of a.
func (a *Array) Copy() *Array {
	return &Array{freq: a.freq, ords: slices.Clone(a.ords)}
}

// Slice returns the elements from start to end (exclusive).
func (a *Array) Slice(start, end int) *Array {
	if start < 0 {
		start = 0
	}
	if end > len(a.ords) {
		end = len(a.ords)
	}
	if start >= end {
		return &Array{freq: a.freq}
	}
	return &Array{freq: a.freq, ords: slices.Clone(a.ords[start:end])}
}

// Convert projects every element onto target.
func (a *Array) Convert(target freq.Frequency, endOfPeriod bool) (*Array, error) {
	if !target.Valid() {
		return nil, mismatchf("cannot convert %s to %s", a.freq, target)
	}
	ords := make([]int64, len(a.ords))
	for i := range a.ords {
		d, err := a.At(i).Convert(target, endOfPeriod)
		if err != nil {
			return nil, err
		}
		ords[i] = d.ord
	}
	return &Array{freq: target, ords: ords}, nil
}

// ConvertInPlace replaces the ordinals and frequency of a with their
// projection onto target. a is left untouched on error.
func (a *Array) ConvertInPlace(target freq.Frequency, endOfPeriod bool) error {
	c, err := a.Convert(target, endOfPeriod)
	if err != nil {
		return err
	}
	a.freq, a.ords = c.freq, c.ords
	return nil
}

// IsSorted reports whether the ordinals are non-decreasing.
func (a *Array) IsSorted() bool {
	return slices.IsSorted(a.ords)
}

// HasDuplicates reports whether any ordinal appears more than once.
func (a *Array) HasDuplicates() bool {
	if a.IsSorted() {
		for i := 1; i < len(a.ords); i++ {
			if a.ords[i] == a.ords[i-1] {
				return true
			}
		}
		return false
	}
	seen := make(map[int64]struct{}, len(a.ords))
	for _, o := range a.ords {
		if _, ok := seen[o]; ok {
			return true
		}
		seen[o] = struct{}{}
	}
	return false
}

// HasMissingDates reports whether the distinct ordinals leave a gap
// between the earliest and latest date.
func (a *Array) HasMissingDates() bool {
	if len(a.ords) < 2 {
		return false
	}
	lo, hi := slices.Min(a.ords), slices.Max(a.ords)
	distinct := make(map[int64]struct{}, len(a.ords))
	for _, o := range a.ords {
		distinct[o] = struct{}{}
	}
	return hi-lo+1 > int64(len(distinct))
}

// IsFull reports whether a is a dense ascending range without repeats.
func (a *Array) IsFull() bool {
	for i := 1; i < len(a.ords); i++ {
		if a.ords[i] != a.ords[i-1]+1 {
			return false
		}
	}
	return true
}

// Sorted returns a stably sorted copy of a and the permutation applied:
// element i of the result is element perm[i] of a.
func (a *Array) Sorted() (*Array, []int) {
	perm := make([]int, len(a.ords))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(x, y int) int {
		switch {
		case a.ords[x] < a.ords[y]:
			return -1
		case a.ords[x] > a.ords[y]:
			return 1
		default:
			return 0
		}
	})
	ords := make([]int64, len(perm))
	for i, p := range perm {
		ords[i] = a.ords[p]
	}
	return &Array{freq: a.freq, ords: ords}, perm
}

// Find returns the position of the first element equal to d, or -1.
func (a *Array) Find(d Date) int {
	if d.freq != a.freq {
		return -1
	}
	if a.IsSorted() {
		if i, ok := slices.BinarySearch(a.ords, d.ord); ok {
			return i
		}
		return -1
	}
	return slices.Index(a.ords, d.ord)
}

// Start returns the earliest date. It panics on an empty array.
func (a *Array) Start() Date {
	return Date{freq: a.freq, ord: slices.Min(a.ords)}
}

// End returns the latest date. It panics on an empty array.
func (a *Array) End() Date {
	return Date{freq: a.freq, ord: slices.Max(a.ords)}
}
