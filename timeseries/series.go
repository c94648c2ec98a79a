// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptySequence is returned when a series would have no observations.
	ErrEmptySequence = errors.New("empty sequence")
	// ErrLengthMismatch is returned when timestamps and values differ in length.
	ErrLengthMismatch = errors.New("timestamps and values must have the same length")
	// ErrUnordered is returned when timestamps are not strictly increasing.
	ErrUnordered = errors.New("timestamps must be strictly increasing")
)

// Series represents a time series with timestamps and values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
	Freq       Frequency // zero when the index has no regular period
}

// New creates a daily-indexed series from values, starting at the Unix epoch.
// Use Label to attach a meaningful calendar index.
func New(values []float64) *Series {
	base := time.Unix(0, 0).UTC()
	timestamps := make([]time.Time, len(values))
	for i := range timestamps {
		timestamps[i] = base.AddDate(0, 0, i)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Freq:       Daily,
	}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, fmt.Errorf("%w: %d timestamps, %d values", ErrLengthMismatch, len(timestamps), len(values))
	}
	s := &Series{
		Timestamps: timestamps,
		Values:     values,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the index is one-to-one with the values and strictly increasing.
func (s *Series) Validate() error {
	if len(s.Timestamps) != len(s.Values) {
		return fmt.Errorf("%w: %d timestamps, %d values", ErrLengthMismatch, len(s.Timestamps), len(s.Values))
	}
	for i := 1; i < len(s.Timestamps); i++ {
		if !s.Timestamps[i].After(s.Timestamps[i-1]) {
			return fmt.Errorf("%w: index %d (%s) does not follow %s", ErrUnordered, i,
				s.Timestamps[i].Format(time.RFC3339), s.Timestamps[i-1].Format(time.RFC3339))
		}
	}
	return nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance calculates the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Std calculates the sample standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series, NaN when empty.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the maximum value in the series, NaN when empty.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// Median returns the median value of the series.
func (s *Series) Median() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	sorted := s.Sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Sorted returns the values in ascending order without touching the series.
func (s *Series) Sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Diff calculates the first difference of the series (d=1).
func (s *Series) Diff() *Series {
	return s.DiffN(1)
}

// DiffN calculates the lag-n difference of the series.
// The result keeps the timestamps of the later observation of each pair.
func (s *Series) DiffN(n int) *Series {
	if n <= 0 || len(s.Values) <= n {
		return &Series{Values: []float64{}, Name: s.Name + "_diff", Freq: s.Freq}
	}

	result := make([]float64, len(s.Values)-n)
	for i := n; i < len(s.Values); i++ {
		result[i-n] = s.Values[i] - s.Values[i-n]
	}

	timestamps := make([]time.Time, len(result))
	if len(s.Timestamps) > n {
		copy(timestamps, s.Timestamps[n:])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_diff",
		Freq:       s.Freq,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
		Freq:       s.Freq,
	}
}
