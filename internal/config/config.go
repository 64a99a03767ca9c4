// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns a Config holding defaults; Load layers file and env on top.
// - External errors are wrapped with this package's sentinel errors.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// HistoryPath points at the historical sessions workbook (.xlsx).
	// Empty means no history is shown.
	HistoryPath string `koanf:"history_path"`

	// HistorySheet names the worksheet to read; empty selects the first one.
	HistorySheet string `koanf:"history_sheet"`

	// RandomSeed seeds the score noise. Zero seeds from the clock.
	RandomSeed uint64 `koanf:"random_seed"`

	// MinWeightLbs and MaxWeightLbs bound accepted meat weights.
	MinWeightLbs float64 `koanf:"min_weight_lbs"`
	MaxWeightLbs float64 `koanf:"max_weight_lbs"`

	// MinOutsideTempF and MaxOutsideTempF bound accepted outside temperatures.
	MinOutsideTempF int `koanf:"min_outside_temp_f"`
	MaxOutsideTempF int `koanf:"max_outside_temp_f"`

	// DefaultZipCode and DefaultStartTime fill requests that omit them.
	DefaultZipCode   string `koanf:"default_zip_code"`
	DefaultStartTime string `koanf:"default_start_time"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		MinWeightLbs:     3.0,
		MaxWeightLbs:     16.0,
		MinOutsideTempF:  40,
		MaxOutsideTempF:  100,
		DefaultZipCode:   "90210",
		DefaultStartTime: "06:00",
	}
}
