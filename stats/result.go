package stats

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Alpha is the significance level used for every reject/fail-to-reject decision.
const Alpha = 0.05

var (
	// ErrInsufficientData is returned when a series is too short for a test.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrZeroVariance is returned when a test needs a non-constant series.
	ErrZeroVariance = errors.New("series has zero variance")
	// ErrNonFinite is returned when a series contains NaN or infinite values,
	// or when a test statistic or p-value comes out NaN.
	ErrNonFinite = errors.New("non-finite value")
	// ErrSingular is returned when a regression design matrix cannot be inverted.
	ErrSingular = errors.New("singular regression matrix")
)

// TestResult is the outcome of a single hypothesis test.
//
// Tests decided by p-value leave CriticalValues nil. Tests decided against a
// critical value fill CriticalValues keyed by level ("1%", "5%", "10%") and
// still report an approximate PValue.
type TestResult struct {
	Test           string
	NullHypothesis string
	Statistic      float64
	PValue         float64
	CriticalValues map[string]float64
	Lags           int
	NObs           int
	Reject         bool   // true when the null hypothesis is rejected at Alpha
	Conclusion     string // plain-language reading of Reject
}

// conclude fills Conclusion, or fails with ErrNonFinite when the statistic
// or p-value broke down numerically.
func conclude(r *TestResult, rejected, accepted string) (*TestResult, error) {
	if math.IsNaN(r.Statistic) || math.IsNaN(r.PValue) || math.IsInf(r.PValue, 0) {
		return nil, fmt.Errorf("%s: %w: statistic %v, p-value %v",
			strings.ToLower(r.Test), ErrNonFinite, r.Statistic, r.PValue)
	}
	r.Conclusion = accepted
	if r.Reject {
		r.Conclusion = rejected
	}
	return r, nil
}

func checkFinite(values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	return nil
}

// clamp01 bounds p to [0, 1]. NaN passes through for conclude to reject.
func clamp01(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// poly evaluates c[0] + c[1]*x + c[2]*x^2 + ...
func poly(c []float64, x float64) float64 {
	result := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		result = result*x + c[i]
	}
	return result
}
