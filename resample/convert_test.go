package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/tsfreq/dates"
	"github.com/sartorproj/tsfreq/freq"
	"github.com/sartorproj/tsfreq/timeseries"
)

func seq(from, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(from + i)
	}
	return out
}

func mustSeries(t *testing.T, f freq.Frequency, start string, values []float64) *timeseries.Series {
	t.Helper()
	s, err := timeseries.FromStart(dates.MustParse(f, start), values)
	require.NoError(t, err)
	return s
}

func TestGroupUnsorted(t *testing.T) {
	d, err := dates.FromStrings(freq.Month, []string{"2004-03", "2004-01", "2005-02", "2004-02"})
	require.NoError(t, err)

	g, err := Group(d, freq.Annual, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"2004", "2005"}, g.Buckets.Strings())
	assert.Equal(t, [][]int{{0, 1, 3}, {2}}, g.Members)
	assert.Equal(t, []int64{12, 12}, g.Sizes)
	assert.Equal(t, freq.Month, g.Source)
}

func TestGroupSizes(t *testing.T) {
	s := mustSeries(t, freq.Day, "2004-01-15", seq(0, 60))
	g, err := Group(s.Dates, freq.Month, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"2004-01", "2004-02", "2004-03"}, g.Buckets.Strings())
	assert.Equal(t, []int64{31, 29, 31}, g.Sizes)
	assert.Len(t, g.Members[0], 17)
	assert.Len(t, g.Members[1], 29)
	assert.Len(t, g.Members[2], 14)
}

func TestGroupSizesBusiness(t *testing.T) {
	// Monday 2004-01-05 through Sunday 2004-01-11
	s := mustSeries(t, freq.Day, "2004-01-05", seq(0, 7))
	g, err := Group(s.Dates, freq.Business, false)
	require.NoError(t, err)

	assert.Equal(t, 5, g.Len())
	assert.Equal(t, []int64{1, 1, 1, 1, 3}, g.Sizes)
	assert.Equal(t, []int{4, 5, 6}, g.Members[4])
	for i := range g.Members {
		assert.LessOrEqual(t, int64(len(g.Members[i])), g.Sizes[i])
	}
}

func TestGroupSizesWeekly(t *testing.T) {
	s := mustSeries(t, freq.Day, "2004-01-05", seq(0, 14))
	g, err := Group(s.Dates, freq.MustParse("W-SUN"), false)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 7}, g.Sizes)
}

func TestGroupRejectsFinerTarget(t *testing.T) {
	s := mustSeries(t, freq.Month, "2004-01", seq(0, 3))
	_, err := Group(s.Dates, freq.Day, false)
	assert.ErrorIs(t, err, dates.ErrFrequencyMismatch)
}

func TestDownLastValidWins(t *testing.T) {
	s := mustSeries(t, freq.Month, "2004-01", seq(1, 24))
	s.Column().Invalidate(23)

	out, err := Convert(s, freq.Annual, nil)
	require.NoError(t, err)

	assert.Equal(t, freq.Annual, out.Freq())
	assert.Equal(t, []string{"2004", "2005"}, out.Dates.Strings())
	assert.Equal(t, []float64{12, 23}, out.Column().Values())
	assert.Equal(t, 0, out.CountMissing())
}

func TestDownAllMissingBucket(t *testing.T) {
	s := mustSeries(t, freq.Month, "2004-10", seq(0, 6))
	for i := 0; i < 3; i++ {
		s.Column().Invalidate(i)
	}

	out, err := Down(s, freq.Quarter, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2004Q4", "2005Q1"}, out.Dates.Strings())
	assert.Equal(t, []bool{false, true}, out.Column().Mask())
	v, _ := out.Column().At(1)
	assert.Equal(t, 5.0, v)
}

func TestDownWeekendToBusiness(t *testing.T) {
	// Friday, Saturday, Sunday, Monday
	s := mustSeries(t, freq.Day, "2004-01-02", []float64{1, 2, 3, 4})

	out, err := Convert(s, freq.Business, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2004-01-02", "2004-01-05"}, out.Dates.Strings())
	assert.Equal(t, []float64{3, 4}, out.Column().Values())
}

func TestUpBroadcast(t *testing.T) {
	s := mustSeries(t, freq.Annual, "2004", []float64{7})

	out, err := Convert(s, freq.Quarter, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2004Q1", "2004Q2", "2004Q3", "2004Q4"}, out.Dates.Strings())
	assert.Equal(t, []float64{7, 7, 7, 7}, out.Column().Values())
	assert.Equal(t, 0, out.CountMissing())
}

func TestUpWithoutBroadcast(t *testing.T) {
	s := mustSeries(t, freq.Annual, "2004", []float64{7})

	opts := DefaultOptions()
	opts.Broadcast = false
	out, err := Up(s, freq.Quarter, opts)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, false}, out.Column().Mask())

	opts.EndOfPeriod = true
	out, err = Up(s, freq.Quarter, opts)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, false, true}, out.Column().Mask())
}

func TestUpKeepsMissing(t *testing.T) {
	s := mustSeries(t, freq.Month, "2004-02", []float64{1, 2})
	s.Column().Invalidate(0)

	out, err := Up(s, freq.Day, nil)
	require.NoError(t, err)
	assert.Equal(t, 29+31, out.Len())
	assert.Equal(t, 29, out.CountMissing())
	assert.Equal(t, "2004-03-01", out.Dates.At(29).String())
}

func TestUpRejectsCoarserTarget(t *testing.T) {
	s := mustSeries(t, freq.Day, "2004-01-01", seq(0, 3))
	_, err := Up(s, freq.Month, nil)
	assert.ErrorIs(t, err, dates.ErrFrequencyMismatch)

	_, err = Convert(s, freq.Undefined, nil)
	assert.ErrorIs(t, err, dates.ErrFrequencyMismatch)
}

func TestConvertSameFrequencyCopies(t *testing.T) {
	s := mustSeries(t, freq.Day, "2004-01-01", seq(0, 3))
	out, err := Convert(s, freq.Day, nil)
	require.NoError(t, err)

	out.Column().Set(0, 100)
	v, _ := s.Column().At(0)
	assert.Equal(t, 0.0, v)
}

func TestUpThenDownRoundTrip(t *testing.T) {
	for _, f := range []freq.Frequency{freq.Quarter, freq.Month, freq.Week, freq.Business} {
		t.Run(f.Code(), func(t *testing.T) {
			s := mustSeries(t, freq.Annual, "2003", []float64{1, 2, 3})
			up, err := Convert(s, f, nil)
			require.NoError(t, err)

			down, err := Convert(up, freq.Annual, nil)
			require.NoError(t, err)
			assert.Equal(t, s.Dates.Strings(), down.Dates.Strings())
			assert.Equal(t, []float64{1, 2, 3}, down.Column().Values())
		})
	}
}
