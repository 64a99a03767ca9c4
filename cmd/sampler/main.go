package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/smokehouse/internal/sampler"
	"github.com/okian/smokehouse/pkg/logger"
)

// Default configuration constants.
const (
	defaultWorkers   = 2 // multiplier for runtime.NumCPU()
	defaultRunTimout = 5 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", sampler.DefaultBaseURL, "Base URL of the service")
		meatType   = flag.String("meat", sampler.DefaultMeatType, "Meat type to sample")
		weight     = flag.Float64("weight", sampler.DefaultWeightLbs, "Meat weight in pounds")
		samples    = flag.Int("samples", sampler.DefaultSamples, "Predictions per (weather, smoker temp) combination")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", sampler.DefaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Write the JSON summary to this file")
		logFile    = flag.String("log", "", "Also write logs to this file")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sampler.ShowHelp()
		return
	}

	closeLog, err := sampler.SetupLogging(*logFile, *verbose)
	if err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimout)

	config := &sampler.Config{
		BaseURL:    *baseURL,
		MeatType:   *meatType,
		WeightLbs:  *weight,
		Samples:    *samples,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		Verbose:    *verbose,
	}

	_, err = sampler.Run(ctx, config)
	cancel()
	stop()
	if err != nil {
		logger.Get().Error(context.Background(), "sampling failed", logger.Error(err))
		closeLog()
		os.Exit(1)
	}
	closeLog()
}
