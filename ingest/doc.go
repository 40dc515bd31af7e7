// Package ingest rebuilds date-indexed columns from raw tabular text.
//
// Rows are read from CSV or XLSX into a Table, then Reconstruct turns one
// or more date columns into a single date per row and parses the remaining
// columns as values:
//
//	table, err := ingest.ReadCSVFile("prices.csv", nil)
//	opts := ingest.DefaultOptions()
//	opts.Freq = freq.Hour
//	res, err := ingest.Reconstruct(table, opts)
//	close, err := res.Series("close")
//
// Rows come back in ascending date order. When several rows share a date
// the last one wins, unless KeepDuplicates is set, in which case every row
// is kept in a stable sort.
//
// # Date Columns
//
// Without a Parser a single date column holds date text, read at the
// declared frequency or at the one guessed from the column. Two to six
// date columns hold integer calendar fields (year, period, day, hour,
// minute, second); without a declared frequency their number selects
// MONTH, DAY, HOUR, MINUTE or SECOND. Negative column indices count from
// the end of the row.
//
// A custom Parser combines the raw fields itself. Its Arity, when set,
// must match the number of date columns:
//
//	opts.DateCols = []int{0, 1}
//	opts.Parser = &ingest.Parser{
//	    Arity: 2,
//	    Parse: func(fields []string) (dates.Date, error) {
//	        return dates.FromString(freq.Month, fields[0]+"-"+fields[1])
//	    },
//	}
package ingest
