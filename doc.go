// Package tsdiag is an introductory time series workbench.
//
// It synthesizes a seeded random series, attaches a calendar index, renders
// it and runs a battery of textbook diagnostics against it: normality,
// stationarity and autocorrelation.
//
// # Packages
//
//   - generator: seeded normal draws and random walks
//   - timeseries: the labeled Series type and calendar frequencies
//   - chart: line and QQ charts rendered with gonum/plot
//   - stats: Shapiro-Wilk, QQ, KPSS, ADF, Phillips-Perron, Ljung-Box,
//     Box-Pierce, Durbin-Watson, ACF/PACF and differencing order
//   - config: defaults, YAML file and environment overrides
//   - logger: zerolog setup
//   - pipeline: runs every stage and builds the report
//
// # Quick Start
//
// Reproduce the reference run, 31 standard normal draws with seed 10
// labeled annually from 2000:
//
//	values, _ := generator.Generate(generator.Config{Seed: 10, StdDev: 1, Length: 31})
//	start, _ := timeseries.ParsePeriod("2000")
//	series, _ := timeseries.Label(values, start, timeseries.Annual)
//
//	_ = chart.SaveLine(series, chart.DefaultConfig(), "charts/series.png")
//
//	sw, _ := stats.ShapiroWilk(series)
//	fmt.Println(sw.Conclusion)
//
// Or run everything at once:
//
//	cfg := config.Default()
//	report, err := pipeline.Run(cfg, logger.New(cfg.Log))
//	report.Print(os.Stdout)
//
// The demo program (demo/main.go) does exactly that.
package tsdiag
