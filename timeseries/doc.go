// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for representing labeled time series
// data, the Frequency type for regular calendar indexes, and helpers for
// summary statistics and differencing.
//
// # Labeling a Series
//
// Attach an annual index to a slice of values:
//
//	start, _ := timeseries.ParsePeriod("2000")
//	series, err := timeseries.Label(values, start, timeseries.Annual)
//	// series.Timestamps: 2000-01-01, 2001-01-01, ...
//
// Monthly and daily indexes work the same way:
//
//	freq, _ := timeseries.ParseFrequency("M")
//	start, _ := timeseries.ParsePeriod("2015-01")
//	series, err := timeseries.Label(values, start, freq)
//
// Labeling an empty slice fails with ErrEmptySequence.
//
// # Basic Statistics
//
// Calculate summary statistics:
//
//	mean := series.Mean()
//	std := series.Std()
//	min := series.Min()
//	max := series.Max()
//	median := series.Median()
//
// # Differencing
//
//	diff := series.Diff()    // First difference
//	diff2 := series.DiffN(2) // Lag-2 difference
package timeseries
