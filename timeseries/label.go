package timeseries

import (
	"fmt"
	"time"
)

// Label attaches a regular calendar index to values.
//
// The index starts at the period containing start and advances one period of
// freq per observation, so the timestamps are strictly increasing with no gaps.
// Values are copied.
func Label(values []float64, start time.Time, freq Frequency) (*Series, error) {
	if len(values) == 0 {
		return nil, ErrEmptySequence
	}
	if !freq.Valid() {
		return nil, fmt.Errorf("label: invalid frequency %s", freq)
	}

	origin := freq.Truncate(start)
	timestamps := make([]time.Time, len(values))
	for i := range timestamps {
		timestamps[i] = freq.Step(origin, i)
	}

	data := make([]float64, len(values))
	copy(data, values)

	return &Series{
		Timestamps: timestamps,
		Values:     data,
		Freq:       freq,
	}, nil
}
