// Package timeseries provides date-indexed series data structures.
//
// This package includes the Series type, which pairs a dates.Array with
// row-aligned values, and the Column type, which stores values next to a
// validity bitset so that missing observations travel with the data.
//
// # Creating a Series
//
// Create a series from a start date and a slice:
//
//	start := dates.MustParse(freq.Day, "2003-01-01")
//	series, err := timeseries.FromStart(start, []float64{1, 2, 3})
//
// Or from explicit dates and a masked column:
//
//	col, _ := timeseries.NewMaskedColumn(values, valid)
//	series, err := timeseries.New(days, col)
//
// # Bringing Your Own Container
//
// Conversions read values through the Sequence interface, so any fixed-length
// container with per-element validity can be wrapped:
//
//	type Sequence interface {
//	    Len() int
//	    At(i int) (value float64, valid bool)
//	}
//
// # Missing Values
//
// Missing values are never errors. They are carried in the validity channel:
//
//	col.Invalidate(3)
//	n := col.CountMissing()
//
//	// Mark every tenth day missing
//	masked := series.Invalidate(func(d dates.Date, _ float64) bool {
//	    return d.Day()%10 == 0
//	})
//
// # Ordering
//
// Sorted returns a copy ordered by date, keeping the relative order of
// entries that share a date:
//
//	ordered := series.Sorted()
package timeseries
