// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/aura/internal/domain/aura"
	"github.com/okian/aura/internal/domain/severity"
	"github.com/okian/aura/internal/domain/weather"
)

// RenderRequest asks for one aura. A nil Seed lets the service pick one.
type RenderRequest struct {
	Observation weather.Observation `json:"observation"`
	Mode        aura.Mode           `json:"mode"`
	Seed        *int64              `json:"seed,omitempty"`
}

// LiveRequest asks for an aura from current weather at a place. Query is a
// place name; otherwise Latitude and Longitude must both be set.
type LiveRequest struct {
	Query     string    `json:"query,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Altitude  *float64  `json:"altitude,omitempty"`
	Mode      aura.Mode `json:"mode"`
	Seed      *int64    `json:"seed,omitempty"`
}

// Location is a resolved place on the globe.
type Location struct {
	Name      string   `json:"name,omitempty"`
	Region    string   `json:"region,omitempty"`
	Country   string   `json:"country,omitempty"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"`
}

// Label joins the non-empty name parts, e.g. "Paris, Île-de-France, France".
func (l Location) Label() string {
	out := ""
	for _, p := range []string{l.Name, l.Region, l.Country} {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

// Rendering is a composed aura together with everything that produced it.
// Replaying Weather with Mode and Seed yields the same Descriptor.
type Rendering struct {
	ID            string               `json:"id"`
	Mode          aura.Mode            `json:"mode"`
	RequestedMode aura.Mode            `json:"requested_mode"`
	GeneratedAt   time.Time            `json:"generated_at"`
	Seed          int64                `json:"seed"`
	Location      *Location            `json:"location,omitempty"`
	Weather       weather.Snapshot     `json:"weather"`
	Severity      severity.Explanation `json:"severity"`
	Descriptor    aura.Descriptor      `json:"descriptor"`
	CSS           map[string]string    `json:"css,omitempty"`
}

// Job is a queued render request. Index is the position in its batch and
// Reply receives exactly one JobResult.
type Job struct {
	ID      string
	Index   int
	Request RenderRequest
	Reply   chan<- JobResult
}

// JobResult is the outcome of a Job.
type JobResult struct {
	JobID     string
	Index     int
	Rendering Rendering
	Err       error
}

// Complete delivers r on the reply channel without blocking and reports
// whether it was delivered. JobID and Index are filled from the job.
func (j Job) Complete(r JobResult) bool { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	if j.Reply == nil {
		return false
	}
	r.JobID, r.Index = j.ID, j.Index
	select {
	case j.Reply <- r:
		return true
	default:
		return false
	}
}
