package main

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/spf13/pflag"

	"github.com/okian/aura/internal/loadtest"
	"github.com/okian/aura/pkg/logger"
)

// Default configuration constants.
const (
	defaultRequests    = 10000
	defaultBatchSize   = 50
	defaultVerify      = 100
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL   = pflag.String("url", "http://localhost:9080", "base URL of the service")
		requests  = pflag.IntP("requests", "n", defaultRequests, "number of render requests to generate")
		batchSize = pflag.IntP("batch", "b", defaultBatchSize, "items per batch request")
		workers   = pflag.IntP("workers", "w", runtime.NumCPU()*defaultWorkers, "number of concurrent submitters")
		verify    = pflag.Int("verify", defaultVerify, "number of renderings to replay")
		seed      = pflag.Int64("seed", time.Now().UnixNano(), "seed for generated weather")
		timeout   = pflag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFormat = pflag.String("log-format", "text", "log format (text, json)")
		verbose   = pflag.BoolP("verbose", "v", false, "log every batch")
	)
	pflag.Parse()

	if err := logger.Init(logger.Options{Format: *logFormat}); err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &loadtest.Config{
		BaseURL:   *baseURL,
		Requests:  *requests,
		BatchSize: *batchSize,
		Workers:   *workers,
		Verify:    *verify,
		Seed:      *seed,
		Timeout:   *timeout,
		Verbose:   *verbose,
	}

	if _, err := loadtest.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "load test failed", logger.Error(err))
		cancel()
		os.Exit(1) //nolint:gocritic // cancel called explicitly above
	}
}
