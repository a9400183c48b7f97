package loadtest

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/pkg/logger"
)

// Worker configuration constants.
const (
	workerChannelMultiplier = 2
	percentageMultiplier    = 100
)

type batchResponse struct {
	Count int               `json:"count"`
	Items []model.Rendering `json:"items"`
}

// Run executes the complete load test.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	log := logger.Named("loadtest")
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(config.BaseURL, config.Timeout)

	log.Info(ctx, "starting aura load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.Requests),
		logger.Int("batchSize", config.BatchSize),
		logger.Int("workers", config.Workers),
		logger.Int("verify", config.Verify),
	)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, err
	}

	// Step 2: Generate requests
	reqs, err := generateRequests(ctx, config.Requests, config.Seed)
	if err != nil {
		return stats, err
	}
	stats.Generated = len(reqs)

	// Step 3: Submit batches concurrently
	sample := submitBatches(ctx, client, config, chunk(reqs, config.BatchSize), stats, log)
	if stats.Rendered == 0 {
		return stats, ErrNoResults
	}

	// Step 4: Replay a sample
	verifyRenderings(ctx, client, sample, stats, log)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.Mismatched > 0 {
		return stats, fmt.Errorf("%w: %d of %d replays", ErrMismatch, stats.Mismatched, stats.Verified+stats.Mismatched)
	}
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *httpClient) error {
	status, err := client.get(ctx, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}

// submitBatches posts every batch from a worker pool and returns up to
// config.Verify renderings for replay.
func submitBatches(ctx context.Context, client *httpClient, config *Config, batches [][]model.RenderRequest, stats *Stats, log logger.Logger) []model.Rendering {
	var (
		mu     sync.Mutex
		sample []model.Rendering
		wg     sync.WaitGroup
	)
	workers := max(config.Workers, 1)
	batchChan := make(chan []model.RenderRequest, workers*workerChannelMultiplier)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range batchChan {
				var resp batchResponse
				status, err := client.post(ctx, "/aura/batch", map[string]any{"items": batch}, &resp)

				mu.Lock()
				stats.Batches++
				switch {
				case err != nil:
					stats.Failed += len(batch)
					log.Warn(ctx, "batch failed", logger.Error(err))
				case status == http.StatusTooManyRequests:
					stats.Backpressure += len(batch)
				case status != http.StatusOK:
					stats.Failed += len(batch)
					log.Warn(ctx, "batch rejected", logger.Int("status", status))
				default:
					stats.Rendered += resp.Count
					for _, r := range resp.Items {
						if len(sample) >= config.Verify {
							break
						}
						sample = append(sample, r)
					}
					if config.Verbose {
						log.Info(ctx, "batch rendered", logger.Int("items", resp.Count), logger.Int("total", stats.Rendered))
					}
				}
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(batchChan)
		for _, batch := range batches {
			select {
			case <-ctx.Done():
				return
			case batchChan <- batch:
			}
		}
	}()

	wg.Wait()
	return sample
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate float64
	if stats.Generated > 0 {
		successRate = float64(stats.Rendered) / float64(stats.Generated) * percentageMultiplier
	}

	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("batches", stats.Batches),
		logger.Int("rendered", stats.Rendered),
		logger.Int("backpressure", stats.Backpressure),
		logger.Int("failed", stats.Failed),
		logger.Int("verified", stats.Verified),
		logger.Int("mismatched", stats.Mismatched),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("aurasPerSecond", stats.AurasPerSecond()),
	)
}
