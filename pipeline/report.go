package pipeline

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/sartorproj/tsdiag/config"
	"github.com/sartorproj/tsdiag/stats"
	"github.com/sartorproj/tsdiag/timeseries"
)

// Report is the outcome of one Run.
type Report struct {
	RunID        string
	Config       config.Config
	Series       *timeseries.Series
	Summary      Summary
	Results      []*stats.TestResult
	Skipped      []Skipped
	QQ           *stats.QQResult
	Correlogram  *stats.Correlogram
	DurbinWatson float64
	NDiffs       int
	Charts       []ChartFile
}

// Summary describes the generated series.
type Summary struct {
	N                int
	Start, End       time.Time
	Mean, Std        float64
	Min, Median, Max float64
}

// Skipped names a test that needed more observations than the series had.
type Skipped struct {
	Test   string
	Reason string
}

// ChartFile is a rendered chart on disk.
type ChartFile struct {
	Kind string
	Path string
	Size int64
}

// Result returns the result of the named test, or nil.
func (r *Report) Result(test string) *stats.TestResult {
	for _, res := range r.Results {
		if res.Test == test {
			return res
		}
	}
	return nil
}

func summarize(s *timeseries.Series) Summary {
	sum := Summary{
		N:      s.Len(),
		Start:  s.Timestamps[0],
		End:    s.Timestamps[s.Len()-1],
		Mean:   s.Mean(),
		Min:    s.Min(),
		Median: s.Median(),
		Max:    s.Max(),
	}
	if s.Len() > 1 {
		sum.Std = s.Std()
	}
	return sum
}

func (r *Report) addChart(kind, path string) {
	cf := ChartFile{Kind: kind, Path: path}
	if fi, err := os.Stat(path); err == nil {
		cf.Size = fi.Size()
	}
	r.Charts = append(r.Charts, cf)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// Print writes a human readable report to w.
func (r *Report) Print(w io.Writer) error {
	var b strings.Builder
	layout := r.Series.Freq.Layout()

	fmt.Fprintln(&b, titleStyle.Render("Run "+r.RunID))
	fmt.Fprintf(&b, "%s: %d %s observations, %s to %s\n\n",
		r.Series.Name, r.Summary.N, r.Series.Freq,
		r.Summary.Start.Format(layout), r.Summary.End.Format(layout))

	fmt.Fprintln(&b, newTable("mean", "std", "min", "median", "max").
		Row(num(r.Summary.Mean), num(r.Summary.Std), num(r.Summary.Min), num(r.Summary.Median), num(r.Summary.Max)).
		Render())
	fmt.Fprintln(&b)

	results := newTable("test", "statistic", "p-value", "5% critical", "lags", "decision")
	for _, res := range r.Results {
		crit := "-"
		if cv, ok := res.CriticalValues["5%"]; ok {
			crit = num(cv)
		}
		lags := "-"
		if res.Lags > 0 {
			lags = strconv.Itoa(res.Lags)
		}
		results.Row(res.Test, num(res.Statistic), num(res.PValue), crit, lags, res.Conclusion)
	}
	fmt.Fprintln(&b, results.Render())

	for _, s := range r.Skipped {
		fmt.Fprintf(&b, "skipped %s: %s\n", s.Test, s.Reason)
	}

	if r.QQ != nil {
		fmt.Fprintf(&b, "QQ fit: slope %s, intercept %s, r %s\n", num(r.QQ.Slope), num(r.QQ.Intercept), num(r.QQ.R))
	}
	if r.DurbinWatson > 0 {
		fmt.Fprintf(&b, "Durbin-Watson: %s\n", num(r.DurbinWatson))
	}
	if r.Correlogram != nil {
		fmt.Fprintf(&b, "Significant ACF lags: %v\n", stats.SignificantLags(r.Correlogram.ACF, r.Correlogram.ConfBounds))
		fmt.Fprintf(&b, "Significant PACF lags: %v\n", stats.SignificantLags(r.Correlogram.PACF, r.Correlogram.ConfBounds))
	}
	fmt.Fprintf(&b, "Suggested differencing order: %d\n", r.NDiffs)

	if len(r.Charts) > 0 {
		fmt.Fprintln(&b)
		charts := newTable("chart", "path", "size")
		for _, c := range r.Charts {
			charts.Row(c.Kind, c.Path, humanize.Bytes(uint64(c.Size)))
		}
		fmt.Fprintln(&b, charts.Render())
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
