package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sartorproj/tsfreq/dates"
	"github.com/sartorproj/tsfreq/freq"
	"github.com/sartorproj/tsfreq/guess"
	"github.com/sartorproj/tsfreq/ingest"
	"github.com/sartorproj/tsfreq/missing"
	"github.com/sartorproj/tsfreq/resample"
	"github.com/sartorproj/tsfreq/timeseries"
)

func newGuessCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "guess [DATE...]",
		Short: "Guess the frequency of a list of dates",
		Example: `  tsfreq guess 2004-01-01 2004-04-01 2005-01-01
  tsfreq guess --file prices.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := args
			if file != "" {
				table, err := ingest.ReadCSVFile(file, a.cfg.Ingest.CSVOptions())
				if err != nil {
					return err
				}
				texts = append(texts, table.ColumnTexts(a.cfg.Ingest.DateCols[0])...)
			}
			f, err := guess.Guess(texts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.Code())
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Read the dates from the first date column of a CSV file")
	return cmd
}

func newRangeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "range FREQ START END",
		Short:   "List every period between two dates",
		Example: `  tsfreq range M 2004-01 2004-12`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := freq.Parse(args[0])
			if err != nil {
				return err
			}
			start, err := dates.FromString(f, args[1])
			if err != nil {
				return err
			}
			end, err := dates.FromString(f, args[2])
			if err != nil {
				return err
			}
			d, err := dates.Range(start, end)
			if err != nil {
				return err
			}
			for _, s := range d.Strings() {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

func newConvertCmd(a *app) *cobra.Command {
	var to string
	var broadcast, endOfPeriod bool
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert every value column of a CSV file to another frequency",
		Example: `  tsfreq convert daily.csv --to M
  tsfreq convert monthly.csv --to D --broadcast=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := target(to)
			if err != nil {
				return err
			}
			opts := a.cfg.Convert.Options()
			if cmd.Flags().Changed("broadcast") {
				opts.Broadcast = broadcast
			}
			if cmd.Flags().Changed("end-of-period") {
				opts.EndOfPeriod = endOfPeriod
			}

			res, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := mapColumns(res, func(s *timeseries.Series) (*timeseries.Series, error) {
				return resample.Convert(s, f, opts)
			})
			if err != nil {
				return err
			}
			return ingest.WriteCSV(cmd.OutOrStdout(), out)
		},
	}
	a.addIngestFlags(cmd)
	cmd.Flags().StringVar(&to, "to", "", "Target frequency")
	cmd.Flags().BoolVar(&broadcast, "broadcast", true, "Copy values to every finer period")
	cmd.Flags().BoolVar(&endOfPeriod, "end-of-period", false, "Anchor on the end of each period")
	return cmd
}

func newAnnualCmd(a *app) *cobra.Command {
	var column string
	cmd := &cobra.Command{
		Use:   "annual FILE",
		Short: "Lay a daily or intraday column out as one row per year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			s, err := pick(res, column)
			if err != nil {
				return err
			}
			m, err := resample.AnnualMatrix(s)
			if err != nil {
				return err
			}

			w := csv.NewWriter(cmd.OutOrStdout())
			header := make([]string, m.Cols+1)
			header[0] = "year"
			for c := 0; c < m.Cols; c++ {
				header[c+1] = strconv.Itoa(c)
			}
			if err := w.Write(header); err != nil {
				return err
			}
			for r := 0; r < m.Rows(); r++ {
				record := make([]string, m.Cols+1)
				record[0] = strconv.Itoa(m.Years[r])
				for c := 0; c < m.Cols; c++ {
					if v, ok := m.At(r, c); ok {
						record[c+1] = strconv.FormatFloat(v, 'f', -1, 64)
					}
				}
				if err := w.Write(record); err != nil {
					return err
				}
			}
			w.Flush()
			return w.Error()
		},
	}
	a.addIngestFlags(cmd)
	cmd.Flags().StringVar(&column, "column", "", "Value column (default: first)")
	return cmd
}

// bucketReport is one line of the missing-value report.
type bucketReport struct {
	Column   string `json:"column"`
	Bucket   string `json:"bucket"`
	Missing  int    `json:"missing"`
	Size     int64  `json:"size"`
	Rejected bool   `json:"rejected"`
}

func newMissingCmd(a *app) *cobra.Command {
	var by, format string
	var limit float64
	var fraction, inclusive, apply bool
	cmd := &cobra.Command{
		Use:   "missing FILE",
		Short: "Count missing values per period and apply a threshold",
		Example: `  tsfreq missing daily.csv --by M
  tsfreq missing daily.csv --by M --threshold 0.1 --fraction --apply`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, err := target(by)
			if err != nil {
				return err
			}
			th := a.cfg.Missing.Threshold()
			if cmd.Flags().Changed("threshold") {
				th.Limit = limit
			}
			if cmd.Flags().Changed("fraction") {
				th.Fraction = fraction
			}
			if cmd.Flags().Changed("inclusive") {
				th.Inclusive = inclusive
			}

			res, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}

			if apply {
				out, err := mapColumns(res, func(s *timeseries.Series) (*timeseries.Series, error) {
					return missing.AcceptAtMostMissing(s, bucket, th)
				})
				if err != nil {
					return err
				}
				return ingest.WriteCSV(cmd.OutOrStdout(), out)
			}

			var report []bucketReport
			for _, name := range res.Names {
				s, err := res.Series(name)
				if err != nil {
					return err
				}
				c, err := missing.CountBy(s, bucket)
				if err != nil {
					return err
				}
				rejected, err := missing.Reject(c, th)
				if err != nil {
					return err
				}
				for i := 0; i < c.Len(); i++ {
					report = append(report, bucketReport{
						Column:   name,
						Bucket:   c.Buckets.At(i).String(),
						Missing:  c.Missing[i],
						Size:     c.Sizes[i],
						Rejected: rejected[i],
					})
				}
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			case "table":
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "COLUMN\tBUCKET\tMISSING\tSIZE\tREJECTED")
				for _, r := range report {
					fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%v\n", r.Column, r.Bucket, r.Missing, r.Size, r.Rejected)
				}
				return w.Flush()
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	a.addIngestFlags(cmd)
	cmd.Flags().StringVar(&by, "by", "", "Bucket frequency")
	cmd.Flags().Float64Var(&limit, "threshold", 0, "Maximum missing count, or fraction with --fraction")
	cmd.Flags().BoolVar(&fraction, "fraction", false, "Treat the threshold as a fraction of the bucket size")
	cmd.Flags().BoolVar(&inclusive, "inclusive", false, "Also reject buckets that reach the threshold")
	cmd.Flags().BoolVar(&apply, "apply", false, "Write the data with rejected buckets blanked instead of a report")
	cmd.Flags().StringVar(&format, "format", "table", "Report format: table, json")
	return cmd
}

func newSortCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort FILE",
		Short: "Rebuild the date index, resolve duplicates and sort by date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			if res.Duplicates > 0 {
				log.Info().Int("duplicates", res.Duplicates).Msg("dropped rows with repeated dates")
			}
			return ingest.WriteCSV(cmd.OutOrStdout(), res)
		},
	}
	a.addIngestFlags(cmd)
	return cmd
}

// pick returns the named column, or the first one when name is empty.
func pick(res *ingest.Result, name string) (*timeseries.Series, error) {
	if name == "" {
		if len(res.Names) == 0 {
			return nil, errors.New("no value columns")
		}
		name = res.Names[0]
	}
	return res.Series(name)
}

// mapColumns applies fn to every column of res. Every output must share
// its dates with the first one.
func mapColumns(res *ingest.Result, fn func(*timeseries.Series) (*timeseries.Series, error)) (*ingest.Result, error) {
	if len(res.Names) == 0 {
		return nil, errors.New("no value columns")
	}
	out := &ingest.Result{Names: res.Names}
	for _, name := range res.Names {
		s, err := res.Series(name)
		if err != nil {
			return nil, err
		}
		conv, err := fn(s)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		if out.Dates == nil {
			out.Dates = conv.Dates
		}
		out.Columns = append(out.Columns, conv.Column())
	}
	return out, nil
}
