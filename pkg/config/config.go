// Package config loads and validates application configuration from YAML
// files with environment-variable overrides. It provides typed structs for
// every subsystem (Corpus, Run, Logging, Metrics).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Corpus  CorpusConfig  `yaml:"corpus"`
	Run     RunConfig     `yaml:"run"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// CorpusConfig locates the document list and its fallback directory.
type CorpusConfig struct {
	ListPath    string `yaml:"listPath"`
	BooksSubdir string `yaml:"booksSubdir"`
}

// RunConfig controls the worker group and the trial loop.
type RunConfig struct {
	Workers         int    `yaml:"workers"`
	Trials          int    `yaml:"trials"`
	OutputDir       string `yaml:"outputDir"`
	BaselineFile    string `yaml:"baselineFile"`
	DistributedFile string `yaml:"distributedFile"`
}

// BaselinePath returns the full path of the baseline CSV.
func (r RunConfig) BaselinePath() string {
	return filepath.Join(r.OutputDir, r.BaselineFile)
}

// DistributedPath returns the full path of the distributed CSV.
func (r RunConfig) DistributedPath() string {
	return filepath.Join(r.OutputDir, r.DistributedFile)
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads the YAML file at path (when non-empty), applies environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the run loop cannot execute.
func (c *Config) Validate() error {
	if c.Run.Workers < 1 {
		return fmt.Errorf("run.workers must be >= 1, got %d", c.Run.Workers)
	}
	if c.Run.Trials < 1 {
		return fmt.Errorf("run.trials must be >= 1, got %d", c.Run.Trials)
	}
	if c.Run.BaselineFile == c.Run.DistributedFile {
		return fmt.Errorf("baseline and distributed output files must differ, both are %q", c.Run.BaselineFile)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			BooksSubdir: "books",
		},
		Run: RunConfig{
			Workers:         4,
			Trials:          3,
			OutputDir:       "results",
			BaselineFile:    "bow_serial.csv",
			DistributedFile: "bow_mpi.csv",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

// applyEnvOverrides reads BB_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BB_CORPUS_LIST"); v != "" {
		cfg.Corpus.ListPath = v
	}
	if v := os.Getenv("BB_CORPUS_BOOKS_SUBDIR"); v != "" {
		cfg.Corpus.BooksSubdir = v
	}
	if v := os.Getenv("BB_RUN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Run.Workers = n
		}
	}
	if v := os.Getenv("BB_RUN_TRIALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Run.Trials = n
		}
	}
	if v := os.Getenv("BB_RUN_OUTPUT_DIR"); v != "" {
		cfg.Run.OutputDir = v
	}
	if v := os.Getenv("BB_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("BB_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("BB_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("BB_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
}
