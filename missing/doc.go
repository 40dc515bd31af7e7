// Package missing counts missing observations per coarse period and rejects
// periods with too many of them.
//
// A series keyed by daily dates can be summarised per month:
//
//	b, err := missing.CountBy(series, freq.Month)
//	for i := 0; i < b.Len(); i++ {
//	    fmt.Println(b.Buckets.At(i), b.Missing[i], "of", b.Sizes[i])
//	}
//
// AcceptAtMostMissing invalidates every entry of the months that exceed a
// threshold, given as an absolute count or as a fraction of the month's
// calendar length:
//
//	t := missing.Threshold{Limit: 0.1, Fraction: true}
//	cleaned, err := missing.AcceptAtMostMissing(series, freq.Month, t)
package missing
