package repository_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/aura/internal/adapters/repository"
)

func peak(place string, score float64) repository.Peak {
	return repository.Peak{Place: place, Score: score, WeatherType: "normal"}
}

func TestMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	s := repository.NewMemoryStore()

	assert.Equal(t, 0, s.Count(ctx))

	updated, err := s.UpdatePeak(ctx, peak("Oslo", 0.42))
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, 1, s.Count(ctx))

	p, err := s.Rank(ctx, "Oslo")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Rank)
	assert.InDelta(t, 0.42, p.Score, 1e-12)

	top, err := s.TopN(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Oslo", top[0].Place)
}

func TestMemoryStore_KeepsOnlyThePeak(t *testing.T) {
	ctx := context.Background()
	s := repository.NewMemoryStore()

	_, err := s.UpdatePeak(ctx, peak("Bergen", 0.6))
	require.NoError(t, err)

	updated, err := s.UpdatePeak(ctx, peak("Bergen", 0.3))
	require.NoError(t, err)
	assert.False(t, updated, "a calmer reading must not replace the peak")

	updated, err = s.UpdatePeak(ctx, peak("Bergen", 0.6))
	require.NoError(t, err)
	assert.False(t, updated, "an equal reading is not an improvement")

	updated, err = s.UpdatePeak(ctx, peak("Bergen", 0.9))
	require.NoError(t, err)
	assert.True(t, updated)

	p, err := s.Rank(ctx, "Bergen")
	require.NoError(t, err)
	assert.InDelta(t, 0.9, p.Score, 1e-12)
	assert.Equal(t, 1, s.Count(ctx))
}

func TestMemoryStore_Ordering(t *testing.T) {
	ctx := context.Background()
	s := repository.NewMemoryStore()

	for _, p := range []repository.Peak{
		peak("Cairo", 0.1),
		peak("Manila", 0.8),
		peak("Tromsø", 0.5),
		peak("Dhaka", 0.8),
		peak("Lima", 0.3),
	} {
		_, err := s.UpdatePeak(ctx, p)
		require.NoError(t, err)
	}

	top, err := s.TopN(ctx, 5)
	require.NoError(t, err)

	var places []string
	for i, p := range top {
		assert.Equal(t, i+1, p.Rank)
		places = append(places, p.Place)
	}
	assert.Equal(t, []string{"Dhaka", "Manila", "Tromsø", "Lima", "Cairo"}, places)

	p, err := s.Rank(ctx, "Lima")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Rank)

	// Raising a place moves it up.
	_, err = s.UpdatePeak(ctx, peak("Cairo", 0.95))
	require.NoError(t, err)
	p, err = s.Rank(ctx, "Cairo")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Rank)

	top, err = s.TopN(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Cairo", top[0].Place)
	assert.Equal(t, "Dhaka", top[1].Place)
}

func TestMemoryStore_Capacity(t *testing.T) {
	ctx := context.Background()
	s := repository.NewMemoryStore(repository.WithCapacity(2))

	_, _ = s.UpdatePeak(ctx, peak("A", 0.5))
	_, _ = s.UpdatePeak(ctx, peak("B", 0.7))

	updated, err := s.UpdatePeak(ctx, peak("C", 0.1))
	require.NoError(t, err)
	assert.False(t, updated, "a place calmer than the whole full board is dropped")
	assert.Equal(t, 2, s.Count(ctx))

	updated, err = s.UpdatePeak(ctx, peak("D", 0.9))
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, 2, s.Count(ctx))

	_, err = s.Rank(ctx, "A")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	top, err := s.TopN(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "D", top[0].Place)
	assert.Equal(t, "B", top[1].Place)
}

func TestMemoryStore_Errors(t *testing.T) {
	ctx := context.Background()
	s := repository.NewMemoryStore()

	_, err := s.Rank(ctx, "nowhere")
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	_, err = s.TopN(ctx, 0)
	assert.ErrorIs(t, err, repository.ErrInvalidLimit)

	_, err = s.UpdatePeak(ctx, peak("", 0.5))
	assert.ErrorIs(t, err, repository.ErrInvalidPeak)

	_, err = s.UpdatePeak(ctx, peak("Nowhere", math.NaN()))
	assert.ErrorIs(t, err, repository.ErrInvalidPeak)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.UpdatePeak(cancelled, peak("Oslo", 0.2))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, s.Count(ctx))
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := repository.NewMemoryStore()

	const (
		goroutines = 8
		places     = 50
	)
	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range places {
				_, _ = s.UpdatePeak(ctx, peak(fmt.Sprintf("place-%02d", i), float64(g*places+i)/1000))
				_, _ = s.TopN(ctx, 5)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, places, s.Count(ctx))
	top, err := s.TopN(ctx, places)
	require.NoError(t, err)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Score, top[i].Score)
	}
	// The last goroutine wrote the highest score for every place.
	p, err := s.Rank(ctx, "place-49")
	require.NoError(t, err)
	assert.InDelta(t, float64((goroutines-1)*places+49)/1000, p.Score, 1e-12)
	assert.Equal(t, 1, p.Rank)
}
