// Package generator synthesizes seeded random series for experiments.
package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidConfiguration is returned for generator parameters that cannot produce a series.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// pcgStream is the fixed second word of the PCG state; the seed supplies the first.
const pcgStream = 0x9e3779b97f4a7c15

var validate = validator.New()

// Config fully determines a generated sequence.
type Config struct {
	Seed   int64   `yaml:"seed" default:"10"`
	Mean   float64 `yaml:"mean" default:"0"`
	StdDev float64 `yaml:"std_dev" default:"1" validate:"gt=0"`
	Length int     `yaml:"length" default:"31" validate:"min=1"`
	Walk   bool    `yaml:"walk"` // emit the cumulative sum of the draws
}

// Validate checks the parameters and wraps any failure in ErrInvalidConfiguration.
func (c Config) Validate() error {
	if math.IsNaN(c.Mean) || math.IsInf(c.Mean, 0) {
		return fmt.Errorf("%w: mean must be finite, got %v", ErrInvalidConfiguration, c.Mean)
	}
	if math.IsInf(c.StdDev, 0) {
		return fmt.Errorf("%w: std_dev must be finite", ErrInvalidConfiguration)
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %s=%s (got %v)",
				ErrInvalidConfiguration, fe.Field(), fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return nil
}

// Generate draws cfg.Length independent samples from Normal(cfg.Mean, cfg.StdDev).
// The same Config always yields the same sequence on a given platform.
func Generate(cfg Config) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	normal := distuv.Normal{
		Mu:    cfg.Mean,
		Sigma: cfg.StdDev,
		Src:   rand.NewPCG(uint64(cfg.Seed), pcgStream),
	}

	values := make([]float64, cfg.Length)
	for i := range values {
		values[i] = normal.Rand()
	}
	return values, nil
}

// RandomWalk returns the running sum of the draws Generate would produce.
func RandomWalk(cfg Config) ([]float64, error) {
	steps, err := Generate(cfg)
	if err != nil {
		return nil, err
	}
	walk := make([]float64, len(steps))
	floats.CumSum(walk, steps)
	return walk, nil
}

// Series dispatches to RandomWalk or Generate depending on cfg.Walk.
func Series(cfg Config) ([]float64, error) {
	if cfg.Walk {
		return RandomWalk(cfg)
	}
	return Generate(cfg)
}
