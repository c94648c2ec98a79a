package timeseries

import (
	"fmt"
	"strings"
	"time"
)

// Frequency is the spacing between consecutive observations of a labeled series.
type Frequency int

const (
	Annual Frequency = iota + 1
	Monthly
	Daily
)

// ParseFrequency accepts long names and pandas-style aliases ("Y", "A", "M", "D").
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "annual", "yearly", "year", "y", "a":
		return Annual, nil
	case "monthly", "month", "m":
		return Monthly, nil
	case "daily", "day", "d":
		return Daily, nil
	}
	return 0, fmt.Errorf("unknown frequency %q", s)
}

// String returns the long name of the frequency.
func (f Frequency) String() string {
	switch f {
	case Annual:
		return "annual"
	case Monthly:
		return "monthly"
	case Daily:
		return "daily"
	}
	return fmt.Sprintf("Frequency(%d)", int(f))
}

// Valid reports whether f is one of the defined frequencies.
func (f Frequency) Valid() bool {
	return f >= Annual && f <= Daily
}

// Layout returns the time layout that renders one period of f.
func (f Frequency) Layout() string {
	switch f {
	case Annual:
		return "2006"
	case Monthly:
		return "2006-01"
	}
	return "2006-01-02"
}

// Truncate moves t back to the start of the period that contains it.
func (f Frequency) Truncate(t time.Time) time.Time {
	switch f {
	case Annual:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Step returns the start of the period k periods after start.
// start must already be truncated to a period boundary.
func (f Frequency) Step(start time.Time, k int) time.Time {
	switch f {
	case Annual:
		return start.AddDate(k, 0, 0)
	case Monthly:
		return start.AddDate(0, k, 0)
	}
	return start.AddDate(0, 0, k)
}

// ParsePeriod parses "2000", "2015-01" or "2000-01-01" as a UTC timestamp.
func ParsePeriod(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006", "2006-01", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse period %q", s)
}
