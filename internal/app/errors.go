package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrBackpressure    = errors.New("render queue is full")
	ErrEmptyBatch      = errors.New("batch is empty")
	ErrBatchTooLarge   = errors.New("batch too large")
	ErrNoSource        = errors.New("no weather source configured")
	ErrInvalidLocation = errors.New("location needs a query or both latitude and longitude")
)
