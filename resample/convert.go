package resample

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sartorproj/tsfreq/dates"
	"github.com/sartorproj/tsfreq/freq"
	"github.com/sartorproj/tsfreq/timeseries"
)

// Options holds conversion settings.
type Options struct {
	Broadcast   bool // Copy each value to every finer period (default: true)
	EndOfPeriod bool // Anchor on the last instant of each period instead of the first
}

// DefaultOptions returns the default conversion options.
func DefaultOptions() *Options {
	return &Options{
		Broadcast: true,
	}
}

// Convert maps s onto target, choosing the direction from the frequencies.
func Convert(s *timeseries.Series, target freq.Frequency, opts *Options) (*timeseries.Series, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: cannot convert %s to %s", dates.ErrFrequencyMismatch, s.Freq(), target)
	}

	switch {
	case target == s.Freq():
		return s.Copy(), nil
	case target.Finer(s.Freq()):
		return Up(s, target, opts)
	default:
		return Down(s, target, opts)
	}
}

// Down aggregates s into one entry per target period. Within a bucket the
// last valid entry by original position wins; a bucket without valid
// entries is missing.
func Down(s *timeseries.Series, target freq.Frequency, opts *Options) (*timeseries.Series, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	g, err := Group(s.Dates, target, opts.EndOfPeriod)
	if err != nil {
		return nil, err
	}

	out := timeseries.MissingColumn(g.Len())
	for b, members := range g.Members {
		for i := len(members) - 1; i >= 0; i-- {
			if v, ok := s.Data.At(members[i]); ok {
				out.Set(b, v)
				break
			}
		}
	}

	log.Debug().
		Str("from", s.Freq().Code()).
		Str("to", target.Code()).
		Int("entries", s.Len()).
		Int("buckets", g.Len()).
		Msg("down-converted series")

	return &timeseries.Series{Dates: g.Buckets, Data: out, Name: s.Name}, nil
}

// Up expands every entry of s into all target periods it covers. Without
// Broadcast only the anchor period (first, or last with EndOfPeriod) keeps
// the value and the others are missing.
func Up(s *timeseries.Series, target freq.Frequency, opts *Options) (*timeseries.Series, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if !target.Valid() || target.Coarser(s.Freq()) {
		return nil, fmt.Errorf("%w: cannot expand %s into %s", dates.ErrFrequencyMismatch, s.Freq(), target)
	}

	var ords []int64
	out := timeseries.MissingColumn(0)
	for i := 0; i < s.Len(); i++ {
		d, v, ok := s.At(i)
		lo, hi, err := d.Span(target)
		if err != nil {
			return nil, err
		}
		anchor := lo
		if opts.EndOfPeriod {
			anchor = hi
		}
		for o := lo; o <= hi; o++ {
			ords = append(ords, o)
			out.Append(v, ok && (opts.Broadcast || o == anchor))
		}
	}

	d, err := dates.FromOrdinals(target, ords)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("from", s.Freq().Code()).
		Str("to", target.Code()).
		Int("entries", s.Len()).
		Int("expanded", d.Len()).
		Bool("broadcast", opts.Broadcast).
		Msg("up-converted series")

	return &timeseries.Series{Dates: d, Data: out, Name: s.Name}, nil
}
