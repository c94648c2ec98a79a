package stats

import (
	"math"
	"testing"

	"github.com/sartorproj/tsdiag/generator"
	"github.com/sartorproj/tsdiag/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalSeries(t *testing.T, seed int64, n int) *timeseries.Series {
	t.Helper()
	values, err := generator.Generate(generator.Config{Seed: seed, StdDev: 1, Length: n})
	require.NoError(t, err)
	return timeseries.New(values)
}

func TestShapiroWilkCoefficientsNormalized(t *testing.T) {
	for _, n := range []int{3, 4, 5, 6, 11, 12, 31, 100, 1000} {
		a := shapiroWilkCoefficients(n)
		require.Len(t, a, n/2)

		sum := 0.0
		for _, v := range a {
			assert.Greater(t, v, 0.0, "n=%d", n)
			sum += 2 * v * v
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "n=%d", n)

		for i := 1; i < len(a); i++ {
			assert.Less(t, a[i], a[i-1], "n=%d: weights must decrease toward the median", n)
		}
	}
}

func TestShapiroWilkThreePoints(t *testing.T) {
	r, err := ShapiroWilk(timeseries.New([]float64{1, 2, 3}))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r.Statistic, 1e-12)
	assert.InDelta(t, 1.0, r.PValue, 1e-9)
	assert.False(t, r.Reject)

	r, err = ShapiroWilk(timeseries.New([]float64{4, 1, 2}))
	require.NoError(t, err)
	assert.InDelta(t, 0.964286, r.Statistic, 1e-5)
	assert.InDelta(t, 0.6368, r.PValue, 1e-3)
}

func TestShapiroWilkPValueRange(t *testing.T) {
	for _, n := range []int{3, 4, 7, 11, 12, 31, 250} {
		for seed := int64(0); seed < 20; seed++ {
			r, err := ShapiroWilk(normalSeries(t, seed, n))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, r.PValue, 0.0)
			assert.LessOrEqual(t, r.PValue, 1.0)
			assert.Greater(t, r.Statistic, 0.0)
			assert.LessOrEqual(t, r.Statistic, 1.0)
			assert.Equal(t, r.PValue <= Alpha, r.Reject)
		}
	}
}

func TestShapiroWilkNormalDrawsUsuallyPass(t *testing.T) {
	const trials = 200
	passed := 0
	for seed := int64(0); seed < trials; seed++ {
		r, err := ShapiroWilk(normalSeries(t, seed, 31))
		require.NoError(t, err)
		if !r.Reject {
			passed++
		}
	}
	t.Logf("normality not rejected in %d/%d trials", passed, trials)
	assert.Greater(t, passed, trials/2)
}

func TestShapiroWilkRejectsSkewedData(t *testing.T) {
	values := make([]float64, 50)
	for i := range values {
		values[i] = math.Exp(float64(i) / 5)
	}

	r, err := ShapiroWilk(timeseries.New(values))
	require.NoError(t, err)
	assert.True(t, r.Reject)
	assert.Less(t, r.PValue, 0.001)
	assert.Equal(t, "not normally distributed", r.Conclusion)
}

func TestShapiroWilkErrors(t *testing.T) {
	_, err := ShapiroWilk(timeseries.New([]float64{1, 2}))
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = ShapiroWilk(timeseries.New([]float64{2, 2, 2, 2}))
	assert.ErrorIs(t, err, ErrZeroVariance)

	_, err = ShapiroWilk(timeseries.New([]float64{1, math.NaN(), 3}))
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestShapiroWilkLargeSample(t *testing.T) {
	for _, n := range []int{ShapiroWilkMaxN, ShapiroWilkMaxN + 1, 8000} {
		r, err := ShapiroWilk(normalSeries(t, 10, n))
		require.NoError(t, err, "n=%d", n)
		t.Logf("Shapiro-Wilk n=%d - W: %f, P-Value: %f", n, r.Statistic, r.PValue)

		assert.Equal(t, n, r.NObs)
		assert.GreaterOrEqual(t, r.PValue, 0.0)
		assert.LessOrEqual(t, r.PValue, 1.0)
		assert.Greater(t, r.Statistic, 0.99)
		assert.LessOrEqual(t, r.Statistic, 1.0)
		assert.Equal(t, r.PValue <= Alpha, r.Reject)
	}
}

func TestQQ(t *testing.T) {
	series := normalSeries(t, 10, 500)

	qq, err := QQ(series)
	require.NoError(t, err)

	require.Len(t, qq.Theoretical, 500)
	require.Len(t, qq.Ordered, 500)
	for i := 1; i < 500; i++ {
		assert.Greater(t, qq.Theoretical[i], qq.Theoretical[i-1])
		assert.GreaterOrEqual(t, qq.Ordered[i], qq.Ordered[i-1])
	}
	assert.InDelta(t, 0, qq.Theoretical[0]+qq.Theoretical[499], 1e-9)
	assert.Greater(t, qq.R, 0.98)
	assert.InDelta(t, 1.0, qq.Slope, 0.15)
	assert.InDelta(t, 0.0, qq.Intercept, 0.15)
}

func TestQQErrors(t *testing.T) {
	_, err := QQ(timeseries.New([]float64{1, 2}))
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = QQ(timeseries.New([]float64{1, 1, 1}))
	assert.ErrorIs(t, err, ErrZeroVariance)
}

func TestPoly(t *testing.T) {
	assert.InDelta(t, 1+2*3+3*9, poly([]float64{1, 2, 3}, 3), 1e-12)
	assert.Zero(t, poly(nil, 5))
}
