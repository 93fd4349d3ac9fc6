// Package config holds the analysis settings: input and output paths,
// split seeds, cross-validation shape, and the penalty grid.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// Config drives one full analysis run.
type Config struct {
	// DataPath is the CSV with one row per player-season.
	DataPath string `yaml:"data_path"`
	// OutDir receives figures and the text report.
	OutDir string `yaml:"out_dir"`
	// DBPath is the SQLite file recording run history. Empty disables it.
	DBPath string `yaml:"db_path"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// TrainFraction is the share of rows in each training split.
	TrainFraction float64 `yaml:"train_fraction"`
	// SubsetSeed shuffles the split used by subset selection.
	SubsetSeed uint64 `yaml:"subset_seed"`
	// ShrinkageSeed shuffles the split shared by the penalized and
	// projection models.
	ShrinkageSeed uint64 `yaml:"shrinkage_seed"`
	// CVSeed shuffles the cross-validation folds.
	CVSeed uint64 `yaml:"cv_seed"`

	// Folds is k for all cross-validated tuning.
	Folds int `yaml:"folds"`

	// SubsetMethod is exhaustive, forward, or backward.
	SubsetMethod string `yaml:"subset_method"`
	// MaxSubsetSize caps the searched model sizes. Zero means all sizes.
	MaxSubsetSize int `yaml:"max_subset_size"`

	// Grid shapes the penalty grid: Count points spaced evenly in
	// log10 from MaxExp down to MinExp.
	Grid GridConfig `yaml:"grid"`

	// MaxComponents caps the candidate counts for the projection models.
	// Zero means up to the full predictor count.
	MaxComponents int `yaml:"max_components"`

	// Plots toggles figure output.
	Plots bool `yaml:"plots"`
}

// GridConfig shapes the geometric penalty grid.
type GridConfig struct {
	MaxExp float64 `yaml:"max_exp"`
	MinExp float64 `yaml:"min_exp"`
	Count  int     `yaml:"count"`
}

// Default returns the settings the analysis was designed around.
func Default() Config {
	return Config{
		DataPath:      "Hitters.csv",
		OutDir:        "out",
		DBPath:        "runs.db",
		LogLevel:      "info",
		TrainFraction: 0.5,
		SubsetSeed:    1,
		ShrinkageSeed: 2,
		CVSeed:        3,
		Folds:         10,
		SubsetMethod:  "exhaustive",
		Grid:          GridConfig{MaxExp: 10, MinExp: -2, Count: 100},
		Plots:         true,
	}
}

// Load reads a YAML config file over the defaults. A missing file is
// an error; pass an empty path to get pure defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	if c.DataPath == "" {
		return errors.NewValueError("config.Validate", "data_path must be set")
	}
	if c.TrainFraction <= 0 || c.TrainFraction >= 1 {
		return errors.NewValueError("config.Validate", "train_fraction must be in (0, 1)")
	}
	if c.Folds < 2 {
		return errors.NewValueError("config.Validate", "folds must be at least 2")
	}
	if c.Grid.Count < 2 {
		return errors.NewValueError("config.Validate", "grid count must be at least 2")
	}
	if c.Grid.MaxExp <= c.Grid.MinExp {
		return errors.NewValueError("config.Validate", "grid max_exp must exceed min_exp")
	}
	switch c.SubsetMethod {
	case "exhaustive", "forward", "backward":
	default:
		return errors.NewValueError("config.Validate", "subset_method must be exhaustive, forward, or backward")
	}
	return nil
}
