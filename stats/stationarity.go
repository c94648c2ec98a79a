package stats

import (
	"fmt"
	"math"

	"github.com/sartorproj/tsdiag/timeseries"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ADF performs the Augmented Dickey-Fuller test for unit root.
// The null hypothesis is that the series has a unit root (is non-stationary).
// The null is rejected when the statistic is below the 5% critical value.
// maxLag <= 0 selects floor((n-1)^(1/3)) lagged differences.
func ADF(series *timeseries.Series, maxLag int) (*TestResult, error) {
	n := series.Len()
	if n < 10 {
		return nil, fmt.Errorf("adf: %w: need at least 10 observations, got %d", ErrInsufficientData, n)
	}
	if err := checkFinite(series.Values); err != nil {
		return nil, fmt.Errorf("adf: %w", err)
	}

	if maxLag <= 0 {
		maxLag = int(math.Floor(math.Pow(float64(n-1), 1.0/3.0)))
	}
	if maxLag >= n-1 {
		maxLag = n - 2
	}

	nObs := n - maxLag - 1
	if nObs < 2+maxLag+1 {
		return nil, fmt.Errorf("adf: %w: %d usable observations for %d lags", ErrInsufficientData, nObs, maxLag)
	}

	diff := series.Diff()

	// delta_y_t = alpha + beta*y_{t-1} + sum(gamma_i * delta_y_{t-i}) + e_t
	y := make([]float64, nObs)
	x := mat.NewDense(nObs, 2+maxLag, nil)
	for i := 0; i < nObs; i++ {
		t := i + maxLag
		y[i] = diff.Values[t]
		x.Set(i, 0, 1)
		x.Set(i, 1, series.Values[t])
		for j := 1; j <= maxLag; j++ {
			x.Set(i, 1+j, diff.Values[t-j])
		}
	}

	coeffs, se, err := olsRegression(x, y)
	if err != nil {
		return nil, fmt.Errorf("adf: %w", err)
	}

	tStat := coeffs[1] / se[1]
	crit := mackinnonCritical(nObs)

	r := &TestResult{
		Test:           "Augmented Dickey-Fuller",
		NullHypothesis: "series has a unit root (non-stationary)",
		Statistic:      tStat,
		PValue:         mackinnonPValue(tStat),
		CriticalValues: crit,
		Lags:           maxLag,
		NObs:           nObs,
		Reject:         tStat < crit["5%"],
	}
	return conclude(r, "stationary", "non-stationary")
}

// KPSS performs the Kwiatkowski-Phillips-Schmidt-Shin test for stationarity.
// The null hypothesis is that the series is stationary around a level
// (regression "c") or a linear trend (regression "ct").
// The null is rejected when the statistic reaches the 5% critical value.
func KPSS(series *timeseries.Series, regression string, nlags int) (*TestResult, error) {
	n := series.Len()
	if n < 10 {
		return nil, fmt.Errorf("kpss: %w: need at least 10 observations, got %d", ErrInsufficientData, n)
	}
	if err := checkFinite(series.Values); err != nil {
		return nil, fmt.Errorf("kpss: %w", err)
	}
	if regression != "ct" {
		regression = "c"
	}

	if nlags <= 0 {
		nlags = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}
	if nlags >= n {
		nlags = n - 1
	}

	residuals := make([]float64, n)
	if regression == "ct" {
		// y = a + b*t + residual
		sumT, sumY, sumTY, sumT2 := 0.0, 0.0, 0.0, 0.0
		for i, v := range series.Values {
			t := float64(i)
			sumT += t
			sumY += v
			sumTY += t * v
			sumT2 += t * t
		}
		nf := float64(n)
		b := (nf*sumTY - sumT*sumY) / (nf*sumT2 - sumT*sumT)
		a := (sumY - b*sumT) / nf

		for i, v := range series.Values {
			residuals[i] = v - a - b*float64(i)
		}
	} else {
		mean := series.Mean()
		for i, v := range series.Values {
			residuals[i] = v - mean
		}
	}

	cumSum := make([]float64, n)
	cumSum[0] = residuals[0]
	for i := 1; i < n; i++ {
		cumSum[i] = cumSum[i-1] + residuals[i]
	}

	s2 := neweyWest(residuals, nlags)
	if s2 <= 0 {
		return nil, fmt.Errorf("kpss: %w", ErrZeroVariance)
	}

	etaSq := 0.0
	for _, cs := range cumSum {
		etaSq += cs * cs
	}
	stat := etaSq / (float64(n) * float64(n) * s2)

	crit := kpssCritical[regression]
	r := &TestResult{
		Test:           "KPSS",
		NullHypothesis: "series is stationary",
		Statistic:      stat,
		PValue:         kpssPValue(stat, regression),
		CriticalValues: map[string]float64{"10%": crit[0], "5%": crit[1], "2.5%": crit[2], "1%": crit[3]},
		Lags:           nlags,
		NObs:           n,
	}
	r.Reject = stat >= r.CriticalValues["5%"]
	return conclude(r, "non-stationary", "stationary")
}

// PhillipsPerron performs the Phillips-Perron test for unit root.
// Like ADF, but corrects the Dickey-Fuller t-statistic for serial correlation
// with a Newey-West long-run variance instead of adding lagged differences.
// The null is rejected when p-value <= 0.05.
func PhillipsPerron(series *timeseries.Series, nlags int) (*TestResult, error) {
	n := series.Len()
	if n < 10 {
		return nil, fmt.Errorf("phillips-perron: %w: need at least 10 observations, got %d", ErrInsufficientData, n)
	}
	if err := checkFinite(series.Values); err != nil {
		return nil, fmt.Errorf("phillips-perron: %w", err)
	}

	if nlags <= 0 {
		nlags = int(math.Floor(4 * math.Pow(float64(n)/100, 0.25)))
	}

	// delta_y_t = alpha + beta * y_{t-1} + e_t
	diff := series.Diff()
	nObs := n - 1
	if nlags >= nObs {
		nlags = nObs - 1
	}
	y := diff.Values
	x := mat.NewDense(nObs, 2, nil)
	for i := 0; i < nObs; i++ {
		x.Set(i, 0, 1)
		x.Set(i, 1, series.Values[i])
	}

	coeffs, se, err := olsRegression(x, y)
	if err != nil {
		return nil, fmt.Errorf("phillips-perron: %w", err)
	}

	residuals := make([]float64, nObs)
	sse := 0.0
	for i := 0; i < nObs; i++ {
		residuals[i] = y[i] - coeffs[0] - coeffs[1]*series.Values[i]
		sse += residuals[i] * residuals[i]
	}
	s := math.Sqrt(sse / float64(nObs-2))
	gamma0 := sse / float64(nObs)
	lambda2 := neweyWest(residuals, nlags)
	if lambda2 <= 0 || gamma0 == 0 {
		return nil, fmt.Errorf("phillips-perron: %w", ErrZeroVariance)
	}

	tStat := coeffs[1] / se[1]
	lambda := math.Sqrt(lambda2)
	correction := (lambda2 - gamma0) / (2 * lambda) * (float64(nObs) * se[1] / s)
	ppStat := math.Sqrt(gamma0/lambda2)*tStat - correction

	r := &TestResult{
		Test:           "Phillips-Perron",
		NullHypothesis: "series has a unit root (non-stationary)",
		Statistic:      ppStat,
		PValue:         mackinnonPValue(ppStat),
		CriticalValues: mackinnonCritical(nObs),
		Lags:           nlags,
		NObs:           nObs,
	}
	r.Reject = r.PValue <= Alpha
	return conclude(r, "stationary", "non-stationary")
}

// neweyWest estimates the long-run variance of residuals with Bartlett weights.
func neweyWest(residuals []float64, nlags int) float64 {
	n := len(residuals)
	s2 := 0.0
	for _, r := range residuals {
		s2 += r * r
	}
	s2 /= float64(n)

	for l := 1; l <= nlags && l < n; l++ {
		cov := 0.0
		for i := l; i < n; i++ {
			cov += residuals[i] * residuals[i-l]
		}
		cov /= float64(n)
		weight := 1.0 - float64(l)/float64(nlags+1)
		s2 += 2 * weight * cov
	}
	return s2
}

// olsRegression performs ordinary least squares regression.
// Returns coefficients and their standard errors.
func olsRegression(x *mat.Dense, y []float64) (coeffs, stdErrors []float64, err error) {
	n, k := x.Dims()
	if n != len(y) {
		return nil, nil, fmt.Errorf("ols: %d rows but %d responses", n, len(y))
	}
	if n <= k {
		return nil, nil, fmt.Errorf("ols: %w: %d rows for %d regressors", ErrInsufficientData, n, k)
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, nil, fmt.Errorf("ols: %w: %v", ErrSingular, err)
	}

	yv := mat.NewVecDense(n, y)
	var xty, beta, fitted, resid mat.VecDense
	xty.MulVec(x.T(), yv)
	beta.MulVec(&xtxInv, &xty)
	fitted.MulVec(x, &beta)
	resid.SubVec(yv, &fitted)

	s2 := mat.Dot(&resid, &resid) / float64(n-k)
	coeffs = make([]float64, k)
	stdErrors = make([]float64, k)
	for i := 0; i < k; i++ {
		coeffs[i] = beta.AtVec(i)
		stdErrors[i] = math.Sqrt(s2 * xtxInv.At(i, i))
	}
	if stdErrors[1] == 0 {
		return nil, nil, fmt.Errorf("ols: %w", ErrZeroVariance)
	}
	return coeffs, stdErrors, nil
}

// MacKinnon (1994) response surface for the constant-only Dickey-Fuller
// distribution with one variable.
var (
	dfTauMax     = 2.74
	dfTauMin     = -18.83
	dfTauStar    = -1.61
	dfSmallP     = []float64{2.1659, 1.4412, 0.038269}
	dfLargeP     = []float64{1.7339, 0.93202, -0.12745, -0.010368}
	dfCritical1  = []float64{-3.43035, -6.5393, -16.786, -79.433}
	dfCritical5  = []float64{-2.86154, -2.8903, -4.234, -40.040}
	dfCritical10 = []float64{-2.56677, -1.5384, -2.809, 0}
)

// mackinnonPValue approximates the p-value of a Dickey-Fuller statistic.
func mackinnonPValue(stat float64) float64 {
	switch {
	case stat > dfTauMax:
		return 1
	case stat < dfTauMin:
		return 0
	}
	coef := dfLargeP
	if stat <= dfTauStar {
		coef = dfSmallP
	}
	return clamp01(distuv.UnitNormal.CDF(poly(coef, stat)))
}

// mackinnonCritical returns finite-sample critical values (MacKinnon 2010) for nobs observations.
func mackinnonCritical(nobs int) map[string]float64 {
	inv := 1 / float64(nobs)
	return map[string]float64{
		"1%":  poly(dfCritical1, inv),
		"5%":  poly(dfCritical5, inv),
		"10%": poly(dfCritical10, inv),
	}
}

// KPSS critical values at 10%, 5%, 2.5% and 1%.
var (
	kpssLevels   = []float64{0.10, 0.05, 0.025, 0.01}
	kpssCritical = map[string][]float64{
		"c":  {0.347, 0.463, 0.574, 0.739},
		"ct": {0.119, 0.146, 0.176, 0.216},
	}
)

// kpssPValue interpolates the KPSS p-value from the critical value table.
// Results are limited to the tabulated range [0.01, 0.10].
func kpssPValue(stat float64, regression string) float64 {
	crit := kpssCritical[regression]
	switch {
	case stat <= crit[0]:
		return kpssLevels[0]
	case stat >= crit[len(crit)-1]:
		return kpssLevels[len(kpssLevels)-1]
	}
	for i := 1; i < len(crit); i++ {
		if stat <= crit[i] {
			frac := (stat - crit[i-1]) / (crit[i] - crit[i-1])
			return kpssLevels[i-1] + frac*(kpssLevels[i]-kpssLevels[i-1])
		}
	}
	return kpssLevels[len(kpssLevels)-1]
}
