// Package loadtest drives a running aura service with generated weather:
// it submits batches concurrently, then replays a sample through POST /aura
// to check that every rendering is reproducible from its seed.
package loadtest

import (
	"errors"
	"time"
)

// Sentinel errors for a run.
var (
	ErrUnhealthy = errors.New("service unhealthy")
	ErrMismatch  = errors.New("replayed aura differs")
	ErrNoResults = errors.New("no batch succeeded")
)

// Config holds configuration for a load test.
type Config struct {
	BaseURL   string        // Base URL of the service
	Requests  int           // Number of render requests to generate
	BatchSize int           // Items per POST /aura/batch
	Workers   int           // Number of concurrent submitters
	Verify    int           // Number of renderings to replay
	Seed      int64         // Seed for weather, modes and render seeds
	Timeout   time.Duration // HTTP request timeout
	Verbose   bool          // Log every batch
}

// Stats holds run statistics.
type Stats struct {
	Generated    int
	Batches      int
	Rendered     int
	Backpressure int
	Failed       int
	Verified     int
	Mismatched   int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// AurasPerSecond is the rendered throughput of the run.
func (s *Stats) AurasPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Rendered) / s.Duration.Seconds()
}
