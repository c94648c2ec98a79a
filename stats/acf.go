package stats

import (
	"fmt"
	"math"

	"github.com/sartorproj/tsdiag/timeseries"
	"gonum.org/v1/gonum/stat"
)

// ACF calculates the sample autocorrelation function for lags 0 to maxLag.
// maxLag is capped at n-1.
func ACF(series *timeseries.Series, maxLag int) ([]float64, error) {
	n := series.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 || n == 0 {
		return nil, fmt.Errorf("acf: %w", ErrInsufficientData)
	}

	mean := stat.Mean(series.Values, nil)
	denom := 0.0
	for _, v := range series.Values {
		d := v - mean
		denom += d * d
	}
	if denom == 0 {
		return nil, fmt.Errorf("acf: %w", ErrZeroVariance)
	}

	acf := make([]float64, maxLag+1)
	for k := range acf {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (series.Values[i] - mean) * (series.Values[i-k] - mean)
		}
		acf[k] = sum / denom
	}
	return acf, nil
}

// PACF calculates the partial autocorrelation function with the
// Durbin-Levinson recursion. Index 0 holds 1 and index k the lag-k value.
func PACF(series *timeseries.Series, maxLag int) ([]float64, error) {
	if maxLag >= series.Len() {
		maxLag = series.Len() - 1
	}
	if maxLag < 1 {
		return nil, fmt.Errorf("pacf: %w", ErrInsufficientData)
	}

	acf, err := ACF(series, maxLag)
	if err != nil {
		return nil, fmt.Errorf("pacf: %w", err)
	}

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1
	pacf[1] = acf[1]

	prev := []float64{acf[1]} // phi_{k-1,1..k-1}
	for k := 2; k <= maxLag; k++ {
		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= prev[j-1] * acf[k-j]
			den -= prev[j-1] * acf[j]
		}
		if den == 0 {
			break
		}

		phiKK := num / den
		next := make([]float64, k)
		for j := 1; j < k; j++ {
			next[j-1] = prev[j-1] - phiKK*prev[k-j-1]
		}
		next[k-1] = phiKK
		pacf[k] = phiKK
		prev = next
	}
	return pacf, nil
}

// Correlogram bundles ACF and PACF values with their 95% confidence bound.
type Correlogram struct {
	Lags       []int
	ACF        []float64
	PACF       []float64
	ConfBounds float64 // +/-1.96/sqrt(n)
}

// NewCorrelogram computes ACF and PACF up to maxLag.
func NewCorrelogram(series *timeseries.Series, maxLag int) (*Correlogram, error) {
	acf, err := ACF(series, maxLag)
	if err != nil {
		return nil, err
	}
	pacf, err := PACF(series, len(acf)-1)
	if err != nil {
		return nil, err
	}

	lags := make([]int, len(acf))
	for i := range lags {
		lags[i] = i
	}
	return &Correlogram{
		Lags:       lags,
		ACF:        acf,
		PACF:       pacf,
		ConfBounds: 1.96 / math.Sqrt(float64(series.Len())),
	}, nil
}

// SignificantLags returns the lags (excluding 0) whose values exceed the confidence bound.
func SignificantLags(values []float64, confBound float64) []int {
	var significant []int
	for i := 1; i < len(values); i++ {
		if math.Abs(values[i]) > confBound {
			significant = append(significant, i)
		}
	}
	return significant
}
