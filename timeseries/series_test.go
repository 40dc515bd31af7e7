package timeseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/tsfreq/dates"
	"github.com/sartorproj/tsfreq/freq"
)

func TestNewColumn(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	c := NewColumn(values)

	assert.Equal(t, 5, c.Len())
	assert.Equal(t, 0, c.CountMissing())
	for i, v := range values {
		got, ok := c.At(i)
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}

	values[0] = 100
	got, _ := c.At(0)
	assert.Equal(t, 1.0, got)
}

func TestMaskedColumn(t *testing.T) {
	c, err := NewMaskedColumn([]float64{1, 2, 3}, []bool{true, false, true})
	require.NoError(t, err)
	assert.Equal(t, 1, c.CountMissing())
	assert.Equal(t, 2, c.CountValid())
	assert.Equal(t, []bool{true, false, true}, c.Mask())

	c.Set(1, 7)
	assert.Equal(t, 0, c.CountMissing())
	c.Invalidate(0)
	v, ok := c.At(0)
	assert.False(t, ok)
	assert.Equal(t, 1.0, v)

	_, err = NewMaskedColumn([]float64{1}, []bool{true, false})
	assert.Error(t, err)
}

func TestColumnAppendAndTake(t *testing.T) {
	c := MissingColumn(0)
	c.Append(1, true)
	c.Append(2, false)
	c.Append(3, true)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []bool{true, false, true}, c.Mask())

	taken := c.Take([]int{2, 1, 2})
	assert.Equal(t, []float64{3, 2, 3}, taken.Values())
	assert.Equal(t, []bool{true, false, true}, taken.Mask())
}

type pairs [][2]float64

func (p pairs) Len() int { return len(p) }

func (p pairs) At(i int) (float64, bool) { return p[i][0], p[i][1] != 0 }

func TestCollectForeignSequence(t *testing.T) {
	c := Collect(pairs{{1, 1}, {2, 0}, {3, 1}})
	assert.Equal(t, []bool{true, false, true}, c.Mask())
	v, _ := c.At(2)
	assert.Equal(t, 3.0, v)
}

func TestNewSeries(t *testing.T) {
	d, err := dates.FromStrings(freq.Month, []string{"2007-01", "2007-02"})
	require.NoError(t, err)

	_, err = New(d, NewColumn([]float64{1}))
	assert.Error(t, err)

	s, err := New(d, pairs{{1, 1}, {2, 0}})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, freq.Month, s.Freq())
	assert.Equal(t, 1, s.CountMissing())

	date, v, ok := s.At(1)
	assert.Equal(t, "2007-02", date.String())
	assert.Equal(t, 2.0, v)
	assert.False(t, ok)
}

func TestFromStart(t *testing.T) {
	s, err := FromStart(dates.MustParse(freq.Day, "2003-01-01"), make([]float64, 731))
	require.NoError(t, err)
	assert.Equal(t, "2004-12-31", s.Dates.At(730).String())

	_, err = FromStart(dates.MustParse(freq.Day, "2003-01-01"), nil)
	assert.Error(t, err)
}

func TestSlice(t *testing.T) {
	s, err := FromStart(dates.MustParse(freq.Month, "2004-01"), []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	tests := []struct {
		name     string
		start    int
		end      int
		expected []float64
	}{
		{"middle", 1, 3, []float64{2, 3}},
		{"clamped", -2, 10, []float64{1, 2, 3, 4, 5}},
		{"empty", 3, 1, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := s.Slice(tt.start, tt.end)
			assert.Equal(t, tt.expected, sub.Column().Values())
			assert.Equal(t, len(tt.expected), sub.Dates.Len())
		})
	}
}

func TestSorted(t *testing.T) {
	d, err := dates.FromOrdinals(freq.Hour, []int64{3, 1, 2, 1})
	require.NoError(t, err)
	col, err := NewMaskedColumn([]float64{30, 10, 20, 11}, []bool{true, true, false, true})
	require.NoError(t, err)
	s, err := New(d, col)
	require.NoError(t, err)

	sorted := s.Sorted()
	assert.Equal(t, []int64{1, 1, 2, 3}, sorted.Dates.Ordinals())
	assert.Equal(t, []float64{10, 11, 20, 30}, sorted.Column().Values())
	assert.Equal(t, []bool{true, true, false, true}, sorted.Column().Mask())
	assert.Equal(t, []int64{3, 1, 2, 1}, s.Dates.Ordinals())
}

func TestInvalidate(t *testing.T) {
	s, err := FromStart(dates.MustParse(freq.Day, "2003-01-01"), make([]float64, 365))
	require.NoError(t, err)

	masked := s.Invalidate(func(d dates.Date, _ float64) bool { return d.Day()%10 == 0 })
	assert.Equal(t, 35, masked.CountMissing())
	assert.Equal(t, 0, s.CountMissing())
}

func TestCopyIsDeep(t *testing.T) {
	s, err := FromStart(dates.MustParse(freq.Day, "2003-01-01"), []float64{1, 2})
	require.NoError(t, err)

	c := s.Copy()
	c.Column().Invalidate(0)
	assert.Equal(t, 0, s.CountMissing())
	assert.Equal(t, 1, c.CountMissing())
}
