package missing

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/sartorproj/tsfreq/dates"
	"github.com/sartorproj/tsfreq/freq"
	"github.com/sartorproj/tsfreq/resample"
	"github.com/sartorproj/tsfreq/timeseries"
)

// ErrInvalidThreshold is returned for negative, NaN or out-of-range limits.
var ErrInvalidThreshold = errors.New("invalid threshold")

// Counts holds the missing count of every bucket of a series.
type Counts struct {
	Buckets *dates.Array
	Missing []int
	// Sizes is the calendar number of source periods in each bucket.
	Sizes []int64

	members [][]int
}

// Len returns the number of buckets.
func (c *Counts) Len() int { return len(c.Missing) }

// Total returns the sum of the bucket counts.
func (c *Counts) Total() int {
	n := 0
	for _, m := range c.Missing {
		n += m
	}
	return n
}

// Count returns the number of invalid entries of s.
func Count(s *timeseries.Series) int {
	return s.CountMissing()
}

// CountBy counts the invalid entries of s per bucket of the given frequency.
// Dates absent from s are not counted.
func CountBy(s *timeseries.Series, bucket freq.Frequency) (*Counts, error) {
	g, err := resample.Group(s.Dates, bucket, false)
	if err != nil {
		return nil, err
	}

	c := &Counts{
		Buckets: g.Buckets,
		Missing: make([]int, g.Len()),
		Sizes:   g.Sizes,
		members: g.Members,
	}
	for b, members := range g.Members {
		for _, i := range members {
			if _, ok := s.Data.At(i); !ok {
				c.Missing[b]++
			}
		}
	}
	return c, nil
}

// Threshold decides whether a bucket has too many missing entries.
type Threshold struct {
	Limit float64
	// Fraction compares Missing/Sizes instead of the raw count.
	Fraction bool
	// Inclusive also rejects buckets that reach the limit exactly.
	Inclusive bool
}

// Validate checks the limit.
func (t Threshold) Validate() error {
	switch {
	case math.IsNaN(t.Limit) || t.Limit < 0:
		return fmt.Errorf("%w: limit %v", ErrInvalidThreshold, t.Limit)
	case t.Fraction && t.Limit > 1:
		return fmt.Errorf("%w: fraction %v above 1", ErrInvalidThreshold, t.Limit)
	}
	return nil
}

func (t Threshold) exceeded(missing int, size int64) bool {
	x := float64(missing)
	if t.Fraction {
		if size <= 0 {
			return false
		}
		x /= float64(size)
	}
	if t.Inclusive {
		return x >= t.Limit
	}
	return x > t.Limit
}

// Reject reports, per bucket, whether c exceeds t.
func Reject(c *Counts, t Threshold) ([]bool, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	out := make([]bool, c.Len())
	for i, m := range c.Missing {
		out[i] = t.exceeded(m, c.Sizes[i])
	}
	return out, nil
}

// AcceptAtMostMissing returns a copy of s in which every entry of a
// rejected bucket is invalid. s is not modified.
func AcceptAtMostMissing(s *timeseries.Series, bucket freq.Frequency, t Threshold) (*timeseries.Series, error) {
	c, err := CountBy(s, bucket)
	if err != nil {
		return nil, err
	}
	rejected, err := Reject(c, t)
	if err != nil {
		return nil, err
	}

	out := s.Copy()
	col := out.Column()
	n := 0
	for b, members := range c.members {
		if !rejected[b] {
			continue
		}
		n++
		for _, i := range members {
			col.Invalidate(i)
		}
	}

	log.Debug().
		Str("bucket", bucket.Code()).
		Float64("limit", t.Limit).
		Bool("fraction", t.Fraction).
		Int("rejected", n).
		Int("buckets", c.Len()).
		Msg("applied missing-value threshold")

	return out, nil
}
