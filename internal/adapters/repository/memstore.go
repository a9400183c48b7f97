package repository

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/okian/aura/pkg/metrics"
)

const defaultCapacity = 1000

// MemoryStore is an in-memory Store backed by a map and a sorted slice.
type MemoryStore struct {
	mu       sync.RWMutex
	byPlace  map[string]Peak
	order    []string
	capacity int
}

// NewMemoryStore creates an empty peak board.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byPlace:  make(map[string]Peak),
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ranksBefore reports whether a is listed ahead of b.
func ranksBefore(a, b Peak) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Place < b.Place
}

// UpdatePeak implements Store.
func (s *MemoryStore) UpdatePeak(ctx context.Context, p Peak) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("update peak: %w", err)
	}
	if p.Place == "" {
		return false, fmt.Errorf("%w: empty place", ErrInvalidPeak)
	}
	if math.IsNaN(p.Score) || math.IsInf(p.Score, 0) {
		return false, fmt.Errorf("%w: score %v for %s", ErrInvalidPeak, p.Score, p.Place)
	}
	p.Rank = 0

	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.byPlace[p.Place]; ok {
		if p.Score <= cur.Score {
			return false, nil
		}
		s.remove(cur)
	}

	i := s.search(p)
	s.order = append(s.order, "")
	copy(s.order[i+1:], s.order[i:])
	s.order[i] = p.Place
	s.byPlace[p.Place] = p

	kept := true
	if len(s.order) > s.capacity {
		last := s.order[len(s.order)-1]
		s.order = s.order[:len(s.order)-1]
		delete(s.byPlace, last)
		kept = last != p.Place
	}
	metrics.UpdatePeaksTracked(len(s.order))
	return kept, nil
}

// search returns the slice index at which p belongs.
func (s *MemoryStore) search(p Peak) int {
	return sort.Search(len(s.order), func(i int) bool {
		return !ranksBefore(s.byPlace[s.order[i]], p)
	})
}

func (s *MemoryStore) remove(p Peak) {
	i := s.search(p)
	if i < len(s.order) && s.order[i] == p.Place {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
	delete(s.byPlace, p.Place)
}

// Rank implements Store.
func (s *MemoryStore) Rank(_ context.Context, place string) (Peak, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byPlace[place]
	if !ok {
		return Peak{}, fmt.Errorf("%w: %s", ErrNotFound, place)
	}
	p.Rank = s.search(p) + 1
	return p, nil
}

// TopN implements Store.
func (s *MemoryStore) TopN(_ context.Context, n int) ([]Peak, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n = min(n, len(s.order))
	out := make([]Peak, n)
	for i := range n {
		p := s.byPlace[s.order[i]]
		p.Rank = i + 1
		out[i] = p
	}
	return out, nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
