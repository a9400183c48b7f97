package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/pkg/logger"
)

// verifyRenderings replays each rendering through POST /aura with its
// weather, requested mode and seed, and compares the descriptors.
func verifyRenderings(ctx context.Context, client *httpClient, sample []model.Rendering, stats *Stats, log logger.Logger) {
	for _, r := range sample {
		seed := r.Seed
		req := model.RenderRequest{
			Observation: r.Weather.Observation(),
			Mode:        r.RequestedMode,
			Seed:        &seed,
		}

		var replay model.Rendering
		status, err := client.post(ctx, "/aura", req, &replay)
		if err != nil || status != http.StatusOK {
			log.Warn(ctx, "replay failed", logger.String("id", r.ID), logger.Int("status", status), logger.Error(err))
			stats.Mismatched++
			continue
		}

		if sameDescriptor(r, replay) {
			stats.Verified++
			continue
		}
		stats.Mismatched++
		log.Warn(ctx, "replay mismatch",
			logger.String("id", r.ID),
			logger.String("mode", r.Mode.String()),
			logger.String("replayMode", replay.Mode.String()),
		)
	}
}

func sameDescriptor(a, b model.Rendering) bool {
	ja, errA := json.Marshal(a.Descriptor)
	jb, errB := json.Marshal(b.Descriptor)
	return errA == nil && errB == nil && bytes.Equal(ja, jb)
}
