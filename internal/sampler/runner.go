package sampler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/okian/smokehouse/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run samples every (weather, smoker temp) combination against a running
// server and returns one summary per combination.
func Run(ctx context.Context, config *Config) ([]Summary, error) {
	config.applyDefaults()
	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("sampler")

	log.Info(ctx, "starting sampler",
		logger.String("baseURL", config.BaseURL),
		logger.String("meatType", config.MeatType),
		logger.Float64("weightLbs", config.WeightLbs),
		logger.Int("samples", config.Samples),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	if err := checkServiceHealth(ctx, config); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	combos := Combos()
	results := submitPredictions(ctx, config, buildRequests(config, combos), stats)
	summaries := summarize(combos, results)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displaySummaries(ctx, config, summaries, stats)

	if config.OutputFile != "" {
		if err := saveSummaries(config.OutputFile, summaries); err != nil {
			log.Warn(ctx, "failed to save summaries", logger.Error(err))
		}
	}

	if err := verifySummaries(summaries); err != nil {
		return summaries, err
	}
	log.Info(ctx, "sampling completed successfully")
	return summaries, nil
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.MeatType == "" {
		c.MeatType = DefaultMeatType
	}
	if c.WeightLbs <= 0 {
		c.WeightLbs = DefaultWeightLbs
	}
	if c.Samples <= 0 {
		c.Samples = DefaultSamples
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU() * WorkerChannelMultiplier
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// The service answers /healthz with Prometheus metrics.
	if resp.StatusCode != 200 {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

func saveSummaries(filename string, summaries []Summary) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summaries: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write summaries: %w", err)
	}
	return nil
}

func displaySummaries(ctx context.Context, config *Config, summaries []Summary, stats *Stats) {
	log := logger.Named("sampler")
	for _, s := range summaries {
		fields := []logger.Field{
			logger.String("weather", s.Weather),
			logger.Int("smokerTempF", s.SmokerTempF),
			logger.Int("count", s.Count),
			logger.Float64("mean", s.Mean),
			logger.Float64("min", s.Min),
			logger.Float64("max", s.Max),
		}
		if config.Verbose {
			fields = append(fields, logger.Float64("stdDev", s.StdDev), logger.Int("failed", s.Failed))
		}
		log.Info(ctx, "combination summary", fields...)
	}

	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}
	log.Info(ctx, "final statistics",
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("requestsPerSecond", perSecond))
}
