// Package pipeline runs the generate, label, chart and diagnose stages in order
// and collects their output in a Report.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sartorproj/tsdiag/chart"
	"github.com/sartorproj/tsdiag/config"
	"github.com/sartorproj/tsdiag/generator"
	"github.com/sartorproj/tsdiag/stats"
	"github.com/sartorproj/tsdiag/timeseries"
)

// Run executes one full pass over cfg.
//
// Stationarity and autocorrelation tests that need more observations than
// the series has are logged and recorded in Report.Skipped. Any other
// failure stops the run and is returned.
func Run(cfg config.Config, log zerolog.Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := &Report{RunID: uuid.NewString(), Config: cfg}
	log = log.With().Str("run_id", report.RunID).Logger()

	series, err := generate(cfg, log.With().Str("component", "generator").Logger())
	if err != nil {
		return nil, err
	}
	report.Series = series
	report.Summary = summarize(series)

	if err := draw(report, cfg, log.With().Str("component", "chart").Logger()); err != nil {
		return nil, err
	}

	if err := diagnose(report, cfg, log.With().Str("component", "diagnostics").Logger()); err != nil {
		return nil, err
	}

	log.Info().
		Int("results", len(report.Results)).
		Int("skipped", len(report.Skipped)).
		Msg("run complete")
	return report, nil
}

func generate(cfg config.Config, log zerolog.Logger) (*timeseries.Series, error) {
	values, err := generator.Series(cfg.Series)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	log.Info().
		Int64("seed", cfg.Series.Seed).
		Int("length", len(values)).
		Bool("walk", cfg.Series.Walk).
		Msg("series generated")

	start, freq, err := cfg.Label.Period()
	if err != nil {
		return nil, fmt.Errorf("label: %w", err)
	}
	series, err := timeseries.Label(values, start, freq)
	if err != nil {
		return nil, fmt.Errorf("label: %w", err)
	}
	series.Name = "random"
	if cfg.Series.Walk {
		series.Name = "random walk"
	}
	log.Debug().
		Time("start", series.Timestamps[0]).
		Time("end", series.Timestamps[series.Len()-1]).
		Stringer("frequency", freq).
		Msg("series labeled")
	return series, nil
}

func draw(report *Report, cfg config.Config, log zerolog.Logger) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("chart: %w: %v", chart.ErrRenderingFailure, err)
	}

	lineCfg := cfg.Chart
	if lineCfg.Title == "" {
		lineCfg.Title = fmt.Sprintf("%s series (seed %d)", report.Series.Name, cfg.Series.Seed)
	}
	path := filepath.Join(cfg.Output.Dir, "series."+cfg.Chart.Format)
	if err := chart.SaveLine(report.Series, lineCfg, path); err != nil {
		return fmt.Errorf("line chart: %w", err)
	}
	report.addChart("line", path)
	log.Info().Str("path", path).Msg("line chart saved")
	return nil
}

func diagnose(report *Report, cfg config.Config, log zerolog.Logger) error {
	series := report.Series
	d := cfg.Diagnostics

	if n := series.Len(); n > stats.ShapiroWilkMaxN {
		log.Warn().Int("n", n).Int("max", stats.ShapiroWilkMaxN).
			Msg("shapiro-wilk p-value may be inaccurate for large samples")
	}
	sw, err := stats.ShapiroWilk(series)
	if err != nil {
		return fmt.Errorf("normality: %w", err)
	}
	report.record(sw, log)

	qq, err := stats.QQ(series)
	if err != nil {
		return fmt.Errorf("qq: %w", err)
	}
	report.QQ = qq
	path := filepath.Join(cfg.Output.Dir, "qq."+cfg.Chart.Format)
	qqCfg := cfg.Chart
	qqCfg.Title = ""
	if err := chart.SaveQQ(qq, qqCfg, path); err != nil {
		return fmt.Errorf("qq chart: %w", err)
	}
	report.addChart("qq", path)
	log.Info().Str("path", path).Float64("r", qq.R).Msg("qq chart saved")

	tests := []struct {
		name string
		run  func() (*stats.TestResult, error)
	}{
		{"KPSS", func() (*stats.TestResult, error) { return stats.KPSS(series, d.KPSSRegression, d.Lags) }},
		{"Augmented Dickey-Fuller", func() (*stats.TestResult, error) { return stats.ADF(series, d.Lags) }},
		{"Phillips-Perron", func() (*stats.TestResult, error) { return stats.PhillipsPerron(series, d.Lags) }},
		{"Ljung-Box", func() (*stats.TestResult, error) { return stats.LjungBox(series, d.Lags, 0) }},
		{"Box-Pierce", func() (*stats.TestResult, error) { return stats.BoxPierce(series, d.Lags, 0) }},
	}
	for _, tt := range tests {
		r, err := tt.run()
		if err != nil {
			if report.skip(tt.name, err, log) {
				continue
			}
			return fmt.Errorf("%s: %w", tt.name, err)
		}
		report.record(r, log)
	}

	residuals := make([]float64, series.Len())
	mean := series.Mean()
	for i, v := range series.Values {
		residuals[i] = v - mean
	}
	if dw, err := stats.DurbinWatson(residuals); err == nil {
		report.DurbinWatson = dw
	} else if !report.skip("Durbin-Watson", err, log) {
		return fmt.Errorf("durbin-watson: %w", err)
	}

	maxLag := d.Lags
	if maxLag <= 0 {
		maxLag = stats.DefaultLags(series.Len())
	}
	cg, err := stats.NewCorrelogram(series, maxLag)
	if err != nil {
		if !report.skip("ACF/PACF", err, log) {
			return fmt.Errorf("correlogram: %w", err)
		}
	} else {
		report.Correlogram = cg
		log.Debug().
			Ints("acf_significant", stats.SignificantLags(cg.ACF, cg.ConfBounds)).
			Ints("pacf_significant", stats.SignificantLags(cg.PACF, cg.ConfBounds)).
			Msg("correlogram computed")
	}

	report.NDiffs = stats.NDiffs(series, d.MaxDiff, d.DiffTest)
	log.Info().Int("ndiffs", report.NDiffs).Str("test", d.DiffTest).Msg("differencing order suggested")
	return nil
}

// skip records a test that could not run on a short series and reports
// whether err was of that kind.
func (r *Report) skip(test string, err error, log zerolog.Logger) bool {
	if !errors.Is(err, stats.ErrInsufficientData) {
		return false
	}
	r.Skipped = append(r.Skipped, Skipped{Test: test, Reason: err.Error()})
	log.Warn().Err(err).Str("test", test).Msg("test skipped")
	return true
}

func (r *Report) record(res *stats.TestResult, log zerolog.Logger) {
	r.Results = append(r.Results, res)
	log.Info().
		Str("test", res.Test).
		Float64("statistic", res.Statistic).
		Float64("p_value", res.PValue).
		Bool("reject", res.Reject).
		Str("conclusion", res.Conclusion).
		Msg("test completed")
}
