package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/tsfreq/dates"
	"github.com/sartorproj/tsfreq/freq"
	"github.com/sartorproj/tsfreq/timeseries"
)

func concat(parts ...[]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func cell(m *Matrix, r, c int) any {
	v, ok := m.At(r, c)
	if !ok {
		return nil
	}
	return v
}

func TestAnnualColumn(t *testing.T) {
	tests := []struct {
		f    freq.Frequency
		text string
		want int
	}{
		{freq.Day, "2004-01-01", 0},
		{freq.Day, "2004-02-29", 59},
		{freq.Day, "2004-03-01", 60},
		{freq.Day, "2003-02-28", 58},
		{freq.Day, "2003-03-01", 60},
		{freq.Day, "2003-12-31", 365},
		{freq.Day, "2004-12-31", 365},
		{freq.Hour, "2003-03-01 05:00", 60*24 + 5},
		{freq.Minute, "2004-01-02 00:10", 1440 + 10},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			col, err := AnnualColumn(dates.MustParse(tt.f, tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.want, col)
		})
	}

	_, err := AnnualColumn(dates.MustParse(freq.Month, "2004-01"))
	assert.ErrorIs(t, err, dates.ErrFrequencyMismatch)
}

func TestAnnualMatrixDaily(t *testing.T) {
	values := concat(seq(0, 365), seq(0, 365), seq(0, 365), seq(0, 366))
	s := mustSeries(t, freq.Day, "2001-01-01", values)

	m, err := AnnualMatrix(s)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Rows())
	assert.Equal(t, 366, m.Cols)
	assert.Equal(t, []int{2001, 2002, 2003, 2004}, m.Years)

	for r := 0; r < 3; r++ {
		assert.Equal(t, 365, m.Row(r).CountValid())
		assert.Nil(t, cell(m, r, 59))
		assert.Equal(t, 58.0, cell(m, r, 58))
		assert.Equal(t, 59.0, cell(m, r, 60))
		assert.Equal(t, 364.0, cell(m, r, 365))
	}
	assert.Equal(t, 366, m.Row(3).CountValid())
	for c := 0; c < 366; c++ {
		assert.Equal(t, float64(c), cell(m, 3, c))
	}
}

func TestAnnualMatrixHourly(t *testing.T) {
	values := concat(seq(0, 365*24), seq(0, 365*24), seq(0, 365*24), seq(0, 366*24))
	s := mustSeries(t, freq.Hour, "2001-01-01 00:00", values)

	m, err := AnnualMatrix(s)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Rows())
	assert.Equal(t, 366*24, m.Cols)

	for r := 0; r < 3; r++ {
		assert.Equal(t, 365*24, m.Row(r).CountValid())
		for h := 0; h < 24; h++ {
			assert.Nil(t, cell(m, r, 59*24+h))
			assert.Equal(t, float64(58*24+h), cell(m, r, 58*24+h))
			assert.Equal(t, float64(59*24+h), cell(m, r, 60*24+h))
		}
	}
	for c := 0; c < 366*24; c += 97 {
		assert.Equal(t, float64(c), cell(m, 3, c))
	}
}

func TestAnnualMatrixPartialYears(t *testing.T) {
	values := concat(seq(59, 365-59), seq(0, 366), seq(0, 365))
	s := mustSeries(t, freq.Day, "2003-03-01", values)

	m, err := AnnualMatrix(s)
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
	assert.Equal(t, []int{2003, 2004, 2005}, m.Years)

	want := [][]any{
		{nil, 59.0, 60.0},
		{59.0, 60.0, 61.0},
		{nil, 59.0, 60.0},
	}
	for r, row := range want {
		for i, v := range row {
			assert.Equal(t, v, cell(m, r, 59+i), "row %d col %d", r, 59+i)
		}
	}
	assert.Nil(t, cell(m, 0, 0))
}

func TestAnnualMatrixCollisionsOpenRows(t *testing.T) {
	d, err := dates.FromStrings(freq.Day, []string{
		"2001-01-01", "2001-01-02", "2001-01-01", "2003-01-05", "2001-01-02", "2001-01-03",
	})
	require.NoError(t, err)
	s, err := timeseries.FromValues(d, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	m, err := AnnualMatrix(s)
	require.NoError(t, err)
	assert.Equal(t, []int{2001, 2001, 2002, 2003}, m.Years)
	assert.Equal(t, 1.0, cell(m, 0, 0))
	assert.Equal(t, 2.0, cell(m, 0, 1))
	assert.Equal(t, 3.0, cell(m, 1, 0))
	assert.Equal(t, 5.0, cell(m, 1, 1))
	assert.Equal(t, 6.0, cell(m, 1, 2))
	assert.Equal(t, 0, m.Row(2).CountValid())
	assert.Equal(t, 4.0, cell(m, 3, 4))
}

func TestAnnualMatrixRejectsCalendarFrequencies(t *testing.T) {
	for _, f := range []freq.Frequency{freq.Month, freq.Business, freq.Week} {
		s := mustSeries(t, f, "2004-01-02", seq(0, 3))
		_, err := AnnualMatrix(s)
		assert.ErrorIs(t, err, dates.ErrFrequencyMismatch, f.Code())
	}
}
