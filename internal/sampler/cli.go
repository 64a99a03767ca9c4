package sampler

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/smokehouse/pkg/logger"
)

// SetupLogging initializes the global logger on stdout and, when logFile is
// set, on that file as well. The returned func closes the file.
func SetupLogging(logFile string, verbose bool) (func(), error) {
	var w io.Writer = os.Stdout
	closeFn := func() {}
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermission)
		if err != nil {
			return closeFn, fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
		closeFn = func() { _ = file.Close() }
	}

	if err := logger.Init(logger.WithWriter(w)); err != nil {
		closeFn()
		return func() {}, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return closeFn, nil
}

// ShowHelp prints usage information for the sampler.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Smokehouse Score Sampler
========================

Posts predictions for every (weather, smoker temp) combination to a running
server, checks every score lies in [1, 10] and reports mean/min/max per
combination.

Usage:
  go run ./cmd/sampler [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -meat string
        Meat type to sample (default "Brisket")
  -weight float
        Meat weight in pounds (default 10)
  -samples int
        Predictions per combination (default 200)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -output string
        Write the JSON summary to this file
  -log string
        Also write logs to this file
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  go run ./cmd/sampler -samples 1000
  go run ./cmd/sampler -meat "Pork Shoulder" -weight 8 -output summary.json
`)
}
