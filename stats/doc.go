// Package stats provides statistical tests and analysis functions for time series.
//
// Every test is a pure function of its input series and returns a
// *TestResult carrying the statistic, p-value, critical values where the
// test defines them, and the reject/fail-to-reject decision at Alpha.
//
// # Normality
//
//	// Shapiro-Wilk test
//	// H0: values are normally distributed (reject when p <= 0.05)
//	sw, err := stats.ShapiroWilk(series)
//
//	// Normal probability (QQ) plot data
//	qq, err := stats.QQ(series)
//
// # Stationarity Tests
//
//	// KPSS test
//	// H0: series is stationary (reject when statistic >= 5% critical value)
//	kpss, err := stats.KPSS(series, "c", 0)
//
//	// Augmented Dickey-Fuller test
//	// H0: series has a unit root (reject when statistic < 5% critical value)
//	adf, err := stats.ADF(series, 0)
//
//	// Phillips-Perron test
//	// H0: series has a unit root (reject when p <= 0.05)
//	pp, err := stats.PhillipsPerron(series, 0)
//
//	// Number of first differences needed
//	d := stats.NDiffs(series, 2, "kpss")
//
// # Autocorrelation
//
//	// Ljung-Box test
//	// H0: values are not autocorrelated (reject when p <= 0.05)
//	lb, err := stats.LjungBox(series, 0, 0)
//
//	// ACF and PACF with 95% bounds
//	cg, err := stats.NewCorrelogram(series, 10)
//	significant := stats.SignificantLags(cg.ACF, cg.ConfBounds)
package stats
