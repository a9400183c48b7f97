package repository

import "errors"

// Sentinel kinds for peak board errors.
var (
	ErrNotFound     = errors.New("place not found")
	ErrInvalidLimit = errors.New("invalid peaks limit")
	ErrInvalidPeak  = errors.New("invalid peak")
)
