package aura

import (
	"math"

	"github.com/okian/aura/internal/domain/weather"
)

// Breathing period bounds are in seconds.
const (
	calmPeriod   = 2.0
	minPeriod    = 0.8
	baseOpacity  = 0.3
	cloudOpacity = 0.7
)

// Option applies a configuration option to the Composer.
type Option func(*Composer)

// WithStrategy replaces the strategy registered for its mode.
func WithStrategy(s Strategy) Option {
	return func(c *Composer) {
		if s != nil && s.Mode().IsConcrete() {
			c.strategies[s.Mode()] = s
		}
	}
}

// Composer turns snapshots into descriptors. It holds no per-call state and
// is safe for concurrent use.
type Composer struct {
	strategies map[Mode]Strategy
}

// NewComposer returns a composer with the six built-in strategies.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		strategies: map[Mode]Strategy{
			Radial:   radialStrategy{},
			Layered:  layeredStrategy{},
			Swirl:    swirlStrategy{},
			Linear:   linearStrategy{},
			Particle: particleStrategy{},
			Fractal:  fractalStrategy{},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve maps a selector to a concrete mode. Randomizer draws uniformly
// from the concrete modes; anything unknown becomes Radial.
func (c *Composer) Resolve(mode Mode, rng Random) Mode {
	switch {
	case mode == Randomizer:
		return concreteModes[rng.Intn(len(concreteModes))]
	case mode.IsConcrete():
		return mode
	default:
		return Radial
	}
}

// Compose derives every parameter of the snapshot and lays it out in mode.
func (c *Composer) Compose(s weather.Snapshot, mode Mode, rng Random) Descriptor {
	return c.ComposeInputs(Derive(s), mode, rng)
}

// ComposeInputs lays out already derived inputs in mode.
func (c *Composer) ComposeInputs(in Inputs, mode Mode, rng Random) Descriptor {
	resolved := c.Resolve(mode, rng)
	d := c.strategies[resolved].Compose(in, rng)

	d.Mode = resolved
	d.Size = Size
	d.Outline = in.Outline
	d.Opacity *= Opacity(in.Snapshot.CloudCover)
	d.AnimationPeriod = AnimationPeriod(in.Snapshot.WindSpeed)
	return d
}

// Opacity is the cloud-driven base opacity: 0.3 under a clear sky up to 1.0
// under full overcast.
func Opacity(cloudCover float64) float64 {
	return baseOpacity + cloudCover/100*cloudOpacity
}

// AnimationPeriod is the breathing period; stronger wind breathes faster.
func AnimationPeriod(windSpeed float64) float64 {
	return math.Max(calmPeriod-windSpeed/100, minPeriod)
}
