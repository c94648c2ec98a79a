package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/sartorproj/tsdiag/stats"
	"github.com/sartorproj/tsdiag/timeseries"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrRenderingFailure wraps every error raised while drawing or encoding a chart.
var ErrRenderingFailure = errors.New("rendering failure")

var validate = validator.New()

// Config controls the canvas of a chart.
type Config struct {
	Width  float64 `yaml:"width" default:"15" validate:"gt=0"` // inches
	Height float64 `yaml:"height" default:"6" validate:"gt=0"` // inches
	Title  string  `yaml:"title"`
	Format string  `yaml:"format" default:"png" validate:"oneof=png svg pdf"`
}

// DefaultConfig returns a 15x6 inch PNG configuration.
func DefaultConfig() Config {
	var c Config
	_ = defaults.Set(&c)
	return c
}

// Validate reports an unusable canvas size or format.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrRenderingFailure, err)
	}
	return nil
}

var (
	seriesColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	fitColor    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// Line renders series as a line chart with a time axis and writes it to w.
func Line(series *timeseries.Series, cfg Config, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	p, err := linePlot(series, cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRenderingFailure, err)
	}
	return render(p, cfg, w)
}

// SaveLine renders series to path. A known file extension overrides cfg.Format.
func SaveLine(series *timeseries.Series, cfg Config, path string) error {
	return save(path, cfg, func(cfg Config, w io.Writer) error {
		return Line(series, cfg, w)
	})
}

// QQ renders a normal QQ plot: ordered values against theoretical quantiles
// with the least-squares reference line.
func QQ(qq *stats.QQResult, cfg Config, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Title == "" {
		cfg.Title = "Normal QQ plot"
	}
	p, err := qqPlot(qq, cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRenderingFailure, err)
	}
	return render(p, cfg, w)
}

// SaveQQ renders qq to path. A known file extension overrides cfg.Format.
func SaveQQ(qq *stats.QQResult, cfg Config, path string) error {
	return save(path, cfg, func(cfg Config, w io.Writer) error {
		return QQ(qq, cfg, w)
	})
}

func linePlot(series *timeseries.Series, cfg Config) (*plot.Plot, error) {
	if series == nil || series.Len() == 0 {
		return nil, timeseries.ErrEmptySequence
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, series.Len())
	for i, ts := range series.Timestamps {
		pts[i].X = float64(ts.Unix())
		pts[i].Y = series.Values[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = seriesColor
	line.LineStyle.Width = vg.Points(1.5)

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "Period"
	p.Y.Label.Text = "Value"
	p.X.Tick.Marker = plot.TimeTicks{Format: series.Freq.Layout()}
	p.Add(plotter.NewGrid(), line)
	return p, nil
}

func qqPlot(qq *stats.QQResult, cfg Config) (*plot.Plot, error) {
	if qq == nil || len(qq.Theoretical) == 0 {
		return nil, timeseries.ErrEmptySequence
	}
	if len(qq.Theoretical) != len(qq.Ordered) {
		return nil, timeseries.ErrLengthMismatch
	}

	pts := make(plotter.XYs, len(qq.Theoretical))
	for i := range pts {
		pts[i].X = qq.Theoretical[i]
		pts[i].Y = qq.Ordered[i]
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = seriesColor
	scatter.GlyphStyle.Radius = vg.Points(2.5)

	fit := plotter.NewFunction(func(x float64) float64 {
		return qq.Intercept + qq.Slope*x
	})
	fit.XMin = qq.Theoretical[0]
	fit.XMax = qq.Theoretical[len(qq.Theoretical)-1]
	fit.LineStyle.Color = fitColor
	fit.LineStyle.Width = vg.Points(1)

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "Theoretical quantiles"
	p.Y.Label.Text = "Ordered values"
	p.Add(plotter.NewGrid(), scatter, fit)
	return p, nil
}

func render(p *plot.Plot, cfg Config, w io.Writer) error {
	wt, err := p.WriterTo(vg.Length(cfg.Width)*vg.Inch, vg.Length(cfg.Height)*vg.Inch, cfg.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRenderingFailure, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrRenderingFailure, err)
	}
	return nil
}

func save(path string, cfg Config, draw func(Config, io.Writer) error) (err error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "png", "svg", "pdf":
		cfg.Format = ext
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRenderingFailure, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrRenderingFailure, cerr)
		}
	}()
	return draw(cfg, f)
}
