// Package experiment provides the harness that compares
// feature-selection strategies by downstream classification accuracy:
// dataset loading, k-fold splitting, baseline selectors, a kNN scorer,
// a results store, and the sweep runner.
package experiment

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/featmap/featmap/distance"
	"github.com/featmap/featmap/embed"
	"github.com/featmap/featmap/selector"
)

// Config is the experiment sweep configuration, loaded from YAML.
type Config struct {
	// Dataset is the path to the input CSV file.
	Dataset string `yaml:"dataset"`

	// LabelColumn names the CSV column holding class labels.
	LabelColumn string `yaml:"labelColumn"`

	// KFolds is the cross-validation fold count.
	KFolds int `yaml:"kfolds"`

	// Percentages are the feature-subset sizes to sweep, as fractions
	// of the total feature count in (0, 1).
	Percentages []float64 `yaml:"featurePercentages"`

	// Dims are the embedding dimensions to sweep.
	Dims []int `yaml:"embeddingDims"`

	// Metrics are the distance metric names to sweep.
	Metrics []string `yaml:"metrics"`

	// Strategies are the selection strategy names to run per combination.
	Strategies []string `yaml:"strategies"`

	// Alpha is the kernel normalization exponent in [0, 1].
	Alpha float64 `yaml:"alpha"`

	// EpsType is the bandwidth strategy: "maxmin" or "fixed".
	EpsType string `yaml:"epsType"`

	// EpsFactors are the bandwidth factors to sweep.
	EpsFactors []float64 `yaml:"epsFactors"`

	// Seed drives k-fold shuffling, the random baseline, and the
	// clustering strategies.
	Seed int64 `yaml:"seed"`

	// Neighbors is the k of the downstream kNN scorer.
	Neighbors int `yaml:"neighbors"`

	// ResultsDB is the path of the SQLite results database. Empty
	// disables persistence.
	ResultsDB string `yaml:"resultsDB"`

	// Workers caps sweep parallelism; 0 means one worker per CPU.
	Workers int `yaml:"workers"`
}

// DefaultConfig mirrors the usual sweep settings.
func DefaultConfig() Config {
	return Config{
		LabelColumn: "label",
		KFolds:      5,
		Percentages: []float64{0.02, 0.05, 0.1, 0.2, 0.3, 0.5},
		Dims:        []int{2},
		Metrics:     distance.Names(),
		Strategies:  selector.Names(),
		Alpha:       1,
		EpsType:     "maxmin",
		EpsFactors:  []float64{10, 100},
		Seed:        0,
		Neighbors:   5,
	}
}

// LoadConfig reads and validates a YAML experiment configuration.
// Missing fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects invalid configurations before any work starts.
func (c Config) Validate() error {
	if c.Dataset == "" {
		return errors.New("experiment: dataset path is required")
	}
	if c.LabelColumn == "" {
		return errors.New("experiment: label column is required")
	}
	if c.KFolds < 2 {
		return fmt.Errorf("experiment: kfolds %d must be at least 2", c.KFolds)
	}
	if c.Neighbors < 1 {
		return fmt.Errorf("experiment: neighbors %d must be at least 1", c.Neighbors)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("experiment: alpha %v outside [0,1]", c.Alpha)
	}
	if len(c.Percentages) == 0 {
		return errors.New("experiment: at least one feature percentage is required")
	}
	for _, p := range c.Percentages {
		if p <= 0 || p >= 1 {
			return fmt.Errorf("experiment: feature percentage %v outside (0,1)", p)
		}
	}
	for _, d := range c.Dims {
		if d < 1 {
			return fmt.Errorf("experiment: embedding dim %d must be at least 1", d)
		}
	}
	for _, f := range c.EpsFactors {
		if f <= 0 {
			return fmt.Errorf("experiment: eps factor %v must be positive", f)
		}
	}
	if _, err := embed.ParseEpsStrategy(c.EpsType); err != nil {
		return err
	}
	for _, name := range c.Metrics {
		if _, err := distance.ParseMetric(name); err != nil {
			return err
		}
	}
	for _, name := range c.Strategies {
		if _, err := selector.ParseStrategy(name); err != nil {
			return err
		}
	}
	return nil
}
