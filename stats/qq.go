package stats

import (
	"fmt"
	"math"

	"github.com/sartorproj/tsdiag/timeseries"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// QQResult pairs the ordered observations with theoretical normal quantiles.
type QQResult struct {
	Theoretical []float64 // standard normal quantiles of the plotting positions
	Ordered     []float64 // observations in ascending order
	Slope       float64   // least-squares fit of Ordered on Theoretical
	Intercept   float64
	R           float64 // correlation between Theoretical and Ordered
}

// QQ computes normal probability plot data for the series.
// Plotting positions follow Filliben's order statistic medians.
func QQ(series *timeseries.Series) (*QQResult, error) {
	n := series.Len()
	if n < 3 {
		return nil, fmt.Errorf("qq: %w: need at least 3 observations, got %d", ErrInsufficientData, n)
	}
	if err := checkFinite(series.Values); err != nil {
		return nil, fmt.Errorf("qq: %w", err)
	}
	if series.Variance() == 0 {
		return nil, fmt.Errorf("qq: %w", ErrZeroVariance)
	}

	theoretical := make([]float64, n)
	for i, p := range fillibenPositions(n) {
		theoretical[i] = distuv.UnitNormal.Quantile(p)
	}
	ordered := series.Sorted()

	intercept, slope := stat.LinearRegression(theoretical, ordered, nil, false)

	return &QQResult{
		Theoretical: theoretical,
		Ordered:     ordered,
		Slope:       slope,
		Intercept:   intercept,
		R:           stat.Correlation(theoretical, ordered, nil),
	}, nil
}

func fillibenPositions(n int) []float64 {
	p := make([]float64, n)
	last := math.Pow(0.5, 1/float64(n))
	p[n-1] = last
	p[0] = 1 - last
	for i := 1; i < n-1; i++ {
		p[i] = (float64(i+1) - 0.3175) / (float64(n) + 0.365)
	}
	return p
}
