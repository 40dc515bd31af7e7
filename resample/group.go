package resample

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/sartorproj/tsfreq/dates"
	"github.com/sartorproj/tsfreq/freq"
)

// Grouping maps every entry of a date array to the coarser bucket holding it.
type Grouping struct {
	Source freq.Frequency
	// Buckets holds one ascending date per distinct bucket.
	Buckets *dates.Array
	// Members lists, per bucket, the source positions in original order.
	Members [][]int
	// Sizes is the calendar count of source periods in each bucket, which
	// may exceed len(Members[i]) when dates are absent.
	Sizes []int64
}

// Group buckets the dates of d by their projection onto target. Entries do
// not need to be sorted or contiguous.
func Group(d *dates.Array, target freq.Frequency, endOfPeriod bool) (*Grouping, error) {
	src := d.Freq()
	if !target.Valid() || target.Finer(src) {
		return nil, fmt.Errorf("%w: cannot group %s into %s", dates.ErrFrequencyMismatch, src, target)
	}

	projected, err := d.Convert(target, endOfPeriod)
	if err != nil {
		return nil, err
	}

	index := make(map[int64]int)
	var keys []int64
	var members [][]int
	for i := 0; i < projected.Len(); i++ {
		k := projected.Ordinal(i)
		g, ok := index[k]
		if !ok {
			g = len(keys)
			index[k] = g
			keys = append(keys, k)
			members = append(members, nil)
		}
		members[g] = append(members[g], i)
	}

	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		switch {
		case keys[a] < keys[b]:
			return -1
		case keys[a] > keys[b]:
			return 1
		default:
			return 0
		}
	})

	g := &Grouping{
		Source:  src,
		Members: make([][]int, len(order)),
		Sizes:   make([]int64, len(order)),
	}
	sortedKeys := make([]int64, len(order))
	for i, o := range order {
		sortedKeys[i] = keys[o]
		g.Members[i] = members[o]

		bucket, err := dates.New(target, keys[o])
		if err != nil {
			return nil, err
		}
		lo, _, err := bucket.Span(src)
		if err != nil {
			return nil, err
		}
		// Weekend days fold into Friday, so a business bucket covers every
		// source period up to the next bucket's first one.
		next, _, err := bucket.Add(1).Span(src)
		if err != nil {
			return nil, err
		}
		g.Sizes[i] = next - lo
	}
	g.Buckets, err = dates.FromOrdinals(target, sortedKeys)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Len returns the number of buckets.
func (g *Grouping) Len() int { return len(g.Members) }
