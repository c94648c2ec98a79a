package stats

import (
	"fmt"
	"math"

	"github.com/sartorproj/tsdiag/timeseries"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Polynomial coefficients from Royston (1995), algorithm AS R94.
var (
	swC1 = []float64{0, 0.221157, -0.147981, -2.07119, 4.434685, -2.706056}
	swC2 = []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swC3 = []float64{0.544, -0.39978, 0.025054, -6.714e-4}
	swC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swC6 = []float64{-0.4803, -0.082676, 0.0030302}
	swG  = []float64{-2.273, 0.459}
)

const swMinN = 3

// ShapiroWilkMaxN is the largest sample the p-value approximation is
// calibrated for. Larger samples are still tested but the p-value is less
// accurate.
const ShapiroWilkMaxN = 5000

// ShapiroWilk performs the Shapiro-Wilk test for normality.
// The null hypothesis is that the values are drawn from a normal distribution.
// If p-value <= 0.05, normality is rejected.
func ShapiroWilk(series *timeseries.Series) (*TestResult, error) {
	n := series.Len()
	if n < swMinN {
		return nil, fmt.Errorf("shapiro-wilk: %w: need at least %d observations, got %d",
			ErrInsufficientData, swMinN, n)
	}
	if err := checkFinite(series.Values); err != nil {
		return nil, fmt.Errorf("shapiro-wilk: %w", err)
	}

	x := series.Sorted()
	mean := stat.Mean(x, nil)
	ssq := 0.0
	for _, v := range x {
		d := v - mean
		ssq += d * d
	}
	if ssq == 0 || x[n-1]-x[0] < 1e-19 {
		return nil, fmt.Errorf("shapiro-wilk: %w", ErrZeroVariance)
	}

	a := shapiroWilkCoefficients(n)
	num := 0.0
	for i, ai := range a {
		num += ai * (x[n-1-i] - x[i])
	}
	w := math.Min(num*num/ssq, 1)

	r := &TestResult{
		Test:           "Shapiro-Wilk",
		NullHypothesis: "values are normally distributed",
		Statistic:      w,
		PValue:         shapiroWilkPValue(w, n),
		NObs:           n,
	}
	r.Reject = r.PValue <= Alpha
	return conclude(r, "not normally distributed", "normally distributed")
}

// shapiroWilkCoefficients returns the antisymmetric weights a_1..a_{n/2}
// applied to x_(n+1-i) - x_(i).
func shapiroWilkCoefficients(n int) []float64 {
	half := n / 2
	a := make([]float64, half)
	if n == 3 {
		a[0] = math.Sqrt2 / 2
		return a
	}

	an := float64(n)
	m := make([]float64, half)
	summ2 := 0.0
	for i := range m {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (an + 0.25))
		summ2 += m[i] * m[i]
	}
	summ2 *= 2
	ssumm2 := math.Sqrt(summ2)
	rsn := 1 / math.Sqrt(an)
	a1 := poly(swC1, rsn) - m[0]/ssumm2

	first := 1
	var fac float64
	if n > 5 {
		first = 2
		a2 := -m[1]/ssumm2 + poly(swC2, rsn)
		fac = math.Sqrt((summ2 - 2*m[0]*m[0] - 2*m[1]*m[1]) / (1 - 2*a1*a1 - 2*a2*a2))
		a[1] = a2
	} else {
		fac = math.Sqrt((summ2 - 2*m[0]*m[0]) / (1 - 2*a1*a1))
	}
	a[0] = a1
	for i := first; i < half; i++ {
		a[i] = -m[i] / fac
	}
	return a
}

func shapiroWilkPValue(w float64, n int) float64 {
	if n == 3 {
		// exact for n = 3
		return clamp01(6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Pi/3))
	}

	an := float64(n)
	y := math.Log(1 - w)
	var mu, sigma float64
	if n <= 11 {
		gamma := poly(swG, an)
		if y >= gamma {
			return 0
		}
		y = -math.Log(gamma - y)
		mu = poly(swC3, an)
		sigma = math.Exp(poly(swC4, an))
	} else {
		ln := math.Log(an)
		mu = poly(swC5, ln)
		sigma = math.Exp(poly(swC6, ln))
	}
	return clamp01(distuv.Normal{Mu: mu, Sigma: sigma}.Survival(y))
}
