package loadtest

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/okian/aura/internal/adapters/weathersource/synthetic"
	"github.com/okian/aura/internal/domain/aura"
	"github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/internal/domain/weather"
)

// weatherCodes are the WMO codes requests are drawn from, clear sky included
// so most auras stay calm.
var weatherCodes = []int{0, 0, 0, 1, 2, 3, 45, 51, 55, 61, 63, 65, 71, 75, 80, 82, 95, 99} //nolint:gochecknoglobals // static table

// generateRequests builds n render requests from synthetic weather at random
// places. The same seed always yields the same requests.
func generateRequests(ctx context.Context, n int, seed int64) ([]model.RenderRequest, error) {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // test data, not security
	src := synthetic.New(synthetic.WithSeed(seed))
	modes := aura.Modes()

	reqs := make([]model.RenderRequest, n)
	for i := range reqs {
		alt := rng.Float64() * 4000
		loc := model.Location{
			Latitude:  rng.Float64()*180 - 90,
			Longitude: rng.Float64()*360 - 180,
			Altitude:  &alt,
		}
		obs, err := src.Fetch(ctx, loc)
		if err != nil {
			return nil, fmt.Errorf("generate request %d: %w", i, err)
		}
		obs.WeatherCode = weather.Int(weatherCodes[rng.Intn(len(weatherCodes))])
		obs.Humidity = weather.Float64(float64(rng.Intn(101)))
		obs.IsDay = weather.Bool(rng.Intn(2) == 0)

		renderSeed := rng.Int63()
		reqs[i] = model.RenderRequest{
			Observation: obs,
			Mode:        modes[rng.Intn(len(modes))],
			Seed:        &renderSeed,
		}
	}
	return reqs, nil
}

// chunk splits reqs into batches of at most size items.
func chunk(reqs []model.RenderRequest, size int) [][]model.RenderRequest {
	if size <= 0 {
		size = 1
	}
	out := make([][]model.RenderRequest, 0, (len(reqs)+size-1)/size)
	for start := 0; start < len(reqs); start += size {
		end := min(start+size, len(reqs))
		out = append(out, reqs[start:end])
	}
	return out
}
