// Package chart renders time series line charts and normal QQ plots with gonum/plot.
//
// Charts are written to any io.Writer or saved to a file:
//
//	cfg := chart.DefaultConfig() // 15x6 inches, PNG
//	cfg.Title = "Random series"
//	err := chart.SaveLine(series, cfg, "charts/series.png")
//
//	qq, _ := stats.QQ(series)
//	err = chart.QQ(qq, cfg, os.Stdout)
//
// Every failure wraps ErrRenderingFailure together with its cause, so
// errors.Is also matches timeseries.ErrEmptySequence and friends. Inputs are
// never modified.
package chart
