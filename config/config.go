// Package config loads the workbench configuration from defaults, an optional
// YAML file and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sartorproj/tsdiag/chart"
	"github.com/sartorproj/tsdiag/generator"
	"github.com/sartorproj/tsdiag/logger"
	"github.com/sartorproj/tsdiag/timeseries"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when the merged configuration cannot drive a run.
var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New()

// Config holds application configuration
type Config struct {
	Series      generator.Config `yaml:"series"`
	Label       LabelConfig      `yaml:"label"`
	Chart       chart.Config     `yaml:"chart"`
	Diagnostics Diagnostics      `yaml:"diagnostics"`
	Output      Output           `yaml:"output"`
	Log         logger.Config    `yaml:"log"`
}

// LabelConfig places the generated values on a calendar.
type LabelConfig struct {
	Start     string `yaml:"start" default:"2000" validate:"required"`
	Frequency string `yaml:"frequency" default:"annual" validate:"required"`
}

// Diagnostics tunes the stationarity and autocorrelation stages.
// Zero lag counts select each test's automatic rule.
type Diagnostics struct {
	Lags           int    `yaml:"lags" validate:"min=0"`
	KPSSRegression string `yaml:"kpss_regression" default:"c" validate:"oneof=c ct"`
	MaxDiff        int    `yaml:"max_diff" default:"2" validate:"min=1"`
	DiffTest       string `yaml:"diff_test" default:"kpss" validate:"oneof=kpss adf"`
}

// Output names the directory charts are written to.
type Output struct {
	Dir string `yaml:"dir" default:"charts" validate:"required"`
}

// Default returns the configuration that reproduces the reference run:
// 31 standard normal draws seeded with 10, labeled annually from 2000.
func Default() Config {
	var c Config
	_ = defaults.Set(&c)
	return c
}

// Load builds the configuration. Defaults come first, then the YAML file at
// path (or $TSDIAG_CONFIG when path is empty), then environment overrides.
// A .env file in the working directory is loaded if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	c := Default()

	if path == "" {
		path = os.Getenv("TSDIAG_CONFIG")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w: %v", ErrInvalidConfig, err)
		}
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyEnv() {
	c.Series.Seed = getEnvAsInt64("TSDIAG_SEED", c.Series.Seed)
	c.Series.Length = getEnvAsInt("TSDIAG_LENGTH", c.Series.Length)
	c.Output.Dir = getEnv("TSDIAG_OUTPUT_DIR", c.Output.Dir)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Pretty = getEnvAsBool("LOG_PRETTY", c.Log.Pretty)
}

// Validate checks every section and wraps the first failure in ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %s=%s (got %v)", ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Series.Validate(); err != nil {
		return fmt.Errorf("%w: series: %v", ErrInvalidConfig, err)
	}
	if _, _, err := c.Label.Period(); err != nil {
		return fmt.Errorf("%w: label: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Period parses the label start and frequency.
func (l LabelConfig) Period() (time.Time, timeseries.Frequency, error) {
	freq, err := timeseries.ParseFrequency(l.Frequency)
	if err != nil {
		return time.Time{}, 0, err
	}
	start, err := timeseries.ParsePeriod(l.Start)
	if err != nil {
		return time.Time{}, 0, err
	}
	return start, freq, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
