package stats

import (
	"github.com/sartorproj/tsdiag/timeseries"
)

// NDiffs determines the number of first differences required for stationarity.
// testType is "kpss" (default) or "adf"; maxD defaults to 2.
// Differencing stops early when a test cannot run on the shortened series.
func NDiffs(series *timeseries.Series, maxD int, testType string) int {
	if maxD <= 0 {
		maxD = 2
	}

	current := series
	for d := 0; d < maxD; d++ {
		stationary, ok := isStationary(current, testType)
		if !ok || stationary {
			return d
		}
		current = current.Diff()
	}
	return maxD
}

// isStationary reports the verdict of the chosen test; ok is false when the
// test could not be computed.
func isStationary(series *timeseries.Series, testType string) (stationary, ok bool) {
	if testType == "adf" {
		r, err := ADF(series, 0)
		if err != nil {
			return false, false
		}
		return r.Reject, true
	}

	r, err := KPSS(series, "c", 0)
	if err != nil {
		return false, false
	}
	return !r.Reject, true
}
