// Package repository keeps the most severe weather observed per place.
package repository

import (
	"context"
	"time"
)

// Peak is the most severe live rendering seen for one place.
type Peak struct {
	Rank        int       `json:"rank"`
	Place       string    `json:"place"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Score       float64   `json:"score"`
	WeatherType string    `json:"weather_type"`
	Label       string    `json:"label"`
	Mode        string    `json:"mode"`
	RenderingID string    `json:"rendering_id"`
	ObservedAt  time.Time `json:"observed_at"`
}

// Store ranks places by their peak severity. Ordering is score descending,
// then place ascending.
type Store interface {
	// UpdatePeak records p if it beats the place's current peak and
	// reports whether the board changed.
	UpdatePeak(ctx context.Context, p Peak) (bool, error)

	// Rank returns the peak and 1-based rank of a place.
	Rank(ctx context.Context, place string) (Peak, error)

	// TopN returns up to n peaks, most severe first.
	TopN(ctx context.Context, n int) ([]Peak, error)

	// Count returns the number of places on the board.
	Count(ctx context.Context) int
}
