package timeseries

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	assert.Equal(t, 5, s.Len())
	assert.Equal(t, values, s.Values)
	require.NoError(t, s.Validate())
}

func TestNewWithTimestamps(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewWithTimestamps([]time.Time{base}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = NewWithTimestamps([]time.Time{base, base}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrUnordered)

	s, err := NewWithTimestamps([]time.Time{base, base.Add(time.Hour)}, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"mixed", []float64{-1, 0, 1}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, New(tt.values).Mean(), 1e-10)
		})
	}
}

func TestVarianceAndStd(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := 4.571428571428571

	assert.InDelta(t, expected, s.Variance(), 1e-10)
	assert.InDelta(t, math.Sqrt(expected), s.Std(), 1e-10)
	assert.Zero(t, New([]float64{3}).Variance())
}

func TestMinMax(t *testing.T) {
	s := New([]float64{5, 2, 8, 1, 9, 3})

	assert.Equal(t, 1.0, s.Min())
	assert.Equal(t, 9.0, s.Max())
	assert.True(t, math.IsNaN(New(nil).Min()))
	assert.True(t, math.IsNaN(New(nil).Max()))
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"odd", []float64{1, 3, 5}, 3.0},
		{"even", []float64{1, 2, 3, 4}, 2.5},
		{"single", []float64{5}, 5.0},
		{"unsorted", []float64{5, 1, 3}, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			assert.InDelta(t, tt.expected, s.Median(), 1e-10)
		})
	}
}

func TestSortedDoesNotMutate(t *testing.T) {
	s := New([]float64{3, 1, 2})

	assert.Equal(t, []float64{1, 2, 3}, s.Sorted())
	assert.Equal(t, []float64{3, 1, 2}, s.Values)
}

func TestDiff(t *testing.T) {
	s := New([]float64{1, 3, 6, 10, 15})
	diff := s.Diff()

	assert.InDeltaSlice(t, []float64{2, 3, 4, 5}, diff.Values, 1e-10)
	require.Len(t, diff.Timestamps, 4)
	assert.Equal(t, s.Timestamps[1], diff.Timestamps[0])
}

func TestDiffN(t *testing.T) {
	s := New([]float64{1, 3, 6, 10, 15, 21})
	diff2 := s.DiffN(2)

	assert.InDeltaSlice(t, []float64{5, 7, 9, 11}, diff2.Values, 1e-10)
	assert.Empty(t, s.DiffN(0).Values)
	assert.Empty(t, s.DiffN(6).Values)
}

func TestCopy(t *testing.T) {
	s := New([]float64{1, 2, 3})
	s.Name = "original"

	c := s.Copy()
	c.Values[0] = 100

	assert.Equal(t, 1.0, s.Values[0])
	assert.Equal(t, "original", c.Name)
	assert.Equal(t, s.Timestamps, c.Timestamps)
}
