package stats

import (
	"fmt"
	"math"

	"github.com/sartorproj/tsdiag/timeseries"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultLags is the portmanteau lag count: min(10, n/5), at least 1.
func DefaultLags(n int) int {
	return max(min(10, n/5), 1)
}

// LjungBox performs the Ljung-Box test for autocorrelation.
// The null hypothesis is that there is no autocorrelation up to lag h.
// If p-value <= 0.05, we reject the null and conclude there is significant autocorrelation.
// fitdf is the number of parameters estimated by a model whose residuals are tested;
// pass 0 for a raw series. lags <= 0 selects DefaultLags.
func LjungBox(series *timeseries.Series, lags, fitdf int) (*TestResult, error) {
	return portmanteau(series, lags, fitdf, "Ljung-Box", func(acf []float64, n, h int) float64 {
		q := 0.0
		for k := 1; k <= h; k++ {
			q += acf[k] * acf[k] / float64(n-k)
		}
		return q * float64(n) * float64(n+2)
	})
}

// BoxPierce performs the Box-Pierce test for autocorrelation.
// Same hypotheses as LjungBox with the unweighted Q = n * sum(r_k^2).
func BoxPierce(series *timeseries.Series, lags, fitdf int) (*TestResult, error) {
	return portmanteau(series, lags, fitdf, "Box-Pierce", func(acf []float64, n, h int) float64 {
		q := 0.0
		for k := 1; k <= h; k++ {
			q += acf[k] * acf[k]
		}
		return q * float64(n)
	})
}

func portmanteau(series *timeseries.Series, lags, fitdf int, name string,
	qstat func(acf []float64, n, h int) float64) (*TestResult, error) {
	n := series.Len()
	if n < 3 {
		return nil, fmt.Errorf("%s: %w: need at least 3 observations, got %d", name, ErrInsufficientData, n)
	}
	if err := checkFinite(series.Values); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if lags <= 0 {
		lags = DefaultLags(n)
	}
	if lags >= n {
		lags = n - 1
	}

	acf, err := ACF(series, lags)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	q := qstat(acf, n, lags)
	dof := max(lags-fitdf, 1)

	r := &TestResult{
		Test:           name,
		NullHypothesis: "values are not autocorrelated",
		Statistic:      q,
		PValue:         clamp01(distuv.ChiSquared{K: float64(dof)}.Survival(q)),
		Lags:           lags,
		NObs:           n,
	}
	r.Reject = r.PValue <= Alpha
	return conclude(r, "autocorrelated", "not autocorrelated")
}

// DurbinWatson calculates the Durbin-Watson statistic for first-order autocorrelation.
// d near 2 means no autocorrelation, d < 2 positive and d > 2 negative autocorrelation.
func DurbinWatson(residuals []float64) (float64, error) {
	if len(residuals) < 2 {
		return math.NaN(), fmt.Errorf("durbin-watson: %w", ErrInsufficientData)
	}

	numerator := 0.0
	for i := 1; i < len(residuals); i++ {
		diff := residuals[i] - residuals[i-1]
		numerator += diff * diff
	}
	denominator := 0.0
	for _, r := range residuals {
		denominator += r * r
	}
	if denominator == 0 {
		return math.NaN(), fmt.Errorf("durbin-watson: %w", ErrZeroVariance)
	}
	return numerator / denominator, nil
}
