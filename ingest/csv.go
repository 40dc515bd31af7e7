package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	HasHeader bool // Whether the first row after SkipRows is a header (default: true)
	Delimiter rune // Field delimiter (default: ',')
	Comment   rune // Lines starting with this rune are ignored (default: '#')
	SkipRows  int  // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		HasHeader: true,
		Delimiter: ',',
		Comment:   '#',
	}
}

// ReadCSVFile loads a table from a CSV file.
func ReadCSVFile(filename string, opts *CSVOptions) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file, opts)
}

// ReadCSV loads a table from an io.Reader. Rows may have different lengths.
func ReadCSV(r io.Reader, opts *CSVOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.Comment = opts.Comment
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Skip rows if needed
	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	t := &Table{}
	if opts.HasHeader {
		header, err := reader.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, err
		}
		t.Header = header
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

// WriteCSV writes the dates and columns of r with a header row. Missing
// values are left empty.
func WriteCSV(w io.Writer, r *Result) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(r.Header()); err != nil {
		return err
	}

	record := make([]string, len(r.Columns)+1)
	for i := 0; i < r.Dates.Len(); i++ {
		record[0] = r.Dates.At(i).String()
		for j, col := range r.Columns {
			record[j+1] = ""
			if v, ok := col.At(i); ok {
				record[j+1] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCSV writes r to a CSV file.
func SaveCSV(r *Result, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteCSV(file, r); err != nil {
		return err
	}
	return file.Close()
}

// Header returns the column names of r prefixed with the date column, in
// the order WriteCSV uses.
func (r *Result) Header() []string {
	return append([]string{"date"}, r.Names...)
}
