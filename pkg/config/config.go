// Package config loads the run configuration from a YAML file and
// validates it eagerly, so a bad value fails before any work starts.
package config

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// NBConfig configures the naive Bayes model.
type NBConfig struct {
	Alpha    float64 `yaml:"alpha"`
	FitPrior bool    `yaml:"fit_prior"`
}

// SVMConfig configures the linear SVM.
type SVMConfig struct {
	Alpha  float64 `yaml:"alpha"`
	Eta0   float64 `yaml:"eta0"`
	Epochs int     `yaml:"epochs"`
}

// NNConfig configures the neural network.
type NNConfig struct {
	Hidden    int     `yaml:"hidden_layer_sizes"`
	LearnRate float64 `yaml:"learning_rate_init"`
	Epochs    int     `yaml:"epochs"`
}

// Config is the full run configuration.
type Config struct {
	RawData       string  `yaml:"raw_data"`
	CleanData     string  `yaml:"clean_data"`
	ModelDir      string  `yaml:"model_dir"`
	StopwordCache string  `yaml:"stopword_cache"`
	StopwordURL   string  `yaml:"stopword_url"`
	Workers       int     `yaml:"workers"`
	Folds         int     `yaml:"folds"`
	TestFraction  float64 `yaml:"test_fraction"`
	Seed          uint64  `yaml:"seed"`

	NB  NBConfig  `yaml:"naive_bayes"`
	SVM SVMConfig `yaml:"svm"`
	NN  NNConfig  `yaml:"neural_network"`
}

// Default mirrors the reference analysis settings.
func Default() *Config {
	return &Config{
		RawData:      "data/mbti_1.csv",
		CleanData:    "data/mbti_2.csv",
		ModelDir:     "models",
		Workers:      runtime.NumCPU(),
		Folds:        5,
		TestFraction: 0.33,
		Seed:         42,
		NB:           NBConfig{Alpha: 1.0, FitPrior: true},
		SVM:          SVMConfig{Alpha: 1e-3, Eta0: 0.1, Epochs: 5},
		NN:           NNConfig{Hidden: 50, LearnRate: 0.1, Epochs: 50},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Validate checks every value domain.
func (c *Config) Validate() error {
	if c.RawData == "" {
		return errors.New("raw_data must be set")
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Folds < 2 {
		return errors.Errorf("folds must be at least 2, got %d", c.Folds)
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return errors.Errorf("test_fraction must be in (0, 1), got %v", c.TestFraction)
	}
	if c.NB.Alpha < 0 {
		return errors.Errorf("naive_bayes.alpha must be nonnegative, got %v", c.NB.Alpha)
	}
	if c.SVM.Epochs < 1 {
		return errors.Errorf("svm.epochs must be positive, got %d", c.SVM.Epochs)
	}
	if c.NN.Hidden < 1 {
		return errors.Errorf("neural_network.hidden_layer_sizes must be positive, got %d", c.NN.Hidden)
	}
	if c.NN.Epochs < 1 {
		return errors.Errorf("neural_network.epochs must be positive, got %d", c.NN.Epochs)
	}
	return nil
}
