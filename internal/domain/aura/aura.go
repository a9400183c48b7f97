// Package aura composes the visual descriptor for one weather snapshot under
// one render mode.
//
// The pipeline is a chain of pure derivations: severity scoring, outline
// synthesis, palette and effect derivation, then a mode strategy that lays
// out gradient layers. Only the strategies consume randomness, and only
// through an injected Random.
package aura

import (
	"github.com/okian/aura/internal/domain/effects"
	"github.com/okian/aura/internal/domain/palette"
	"github.com/okian/aura/internal/domain/severity"
	"github.com/okian/aura/internal/domain/shape"
	"github.com/okian/aura/internal/domain/weather"
)

// Size is the pixel box every percentage in a descriptor refers to.
const Size = 400

// LayerKind is the gradient geometry of a layer.
type LayerKind string

// Layer kinds.
const (
	RadialGradient LayerKind = "radial"
	LinearGradient LayerKind = "linear"
	ConicGradient  LayerKind = "conic"
)

// Role tags what a layer depicts.
type Role string

// Layer roles.
const (
	RoleBase      Role = "base"
	RoleSpiral    Role = "spiral"
	RoleParticle  Role = "particle"
	RoleCell      Role = "cell"
	RoleStreak    Role = "streak"
	RoleDroplet   Role = "droplet"
	RoleHighlight Role = "highlight"
)

// ColorStop is one stop of a gradient. Position is a percentage, or degrees
// for conic layers.
type ColorStop struct {
	Color    palette.HSLA `json:"color"`
	Position float64      `json:"position"`
}

// Layer is one gradient. Center anchors radial and conic layers; Angle
// orients linear layers and is the start angle of conic ones.
type Layer struct {
	Kind    LayerKind   `json:"kind"`
	Role    Role        `json:"role"`
	Ellipse bool        `json:"ellipse,omitempty"`
	Center  shape.Point `json:"center"`
	Angle   float64     `json:"angle"`
	Stops   []ColorStop `json:"stops"`
}

// FilterName identifies a filter in the chain.
type FilterName string

// Filters.
const (
	Brightness FilterName = "brightness"
	Blur       FilterName = "blur"
	Saturate   FilterName = "saturate"
	Contrast   FilterName = "contrast"
)

// Filter is one step of the order-preserving filter chain.
type Filter struct {
	Name  FilterName `json:"name"`
	Value float64    `json:"value"`
}

// Unit returns the CSS unit of the filter's value.
func (f Filter) Unit() string {
	switch f.Name {
	case Blur:
		return "px"
	case Saturate:
		return "%"
	default:
		return ""
	}
}

// Shadow is a drop shadow in pixels.
type Shadow struct {
	DX    float64      `json:"dx"`
	DY    float64      `json:"dy"`
	Blur  float64      `json:"blur"`
	Color palette.HSLA `json:"color"`
}

// Descriptor is the finished, renderer-agnostic aura. Layers are ordered
// top-most first.
type Descriptor struct {
	Mode            Mode             `json:"mode"`
	Size            int              `json:"size"`
	Layers          []Layer          `json:"layers"`
	Outline         shape.Descriptor `json:"outline"`
	Filters         []Filter         `json:"filters"`
	Shadow          Shadow           `json:"shadow"`
	Opacity         float64          `json:"opacity"`
	Rotation        float64          `json:"rotation"`
	AnimationPeriod float64          `json:"animation_period"`
}

// Filter returns the first filter with the given name.
func (d Descriptor) Filter(name FilterName) (Filter, bool) {
	for _, f := range d.Filters {
		if f.Name == name {
			return f, true
		}
	}
	return Filter{}, false
}

// CountRole returns how many layers carry the role.
func (d Descriptor) CountRole(role Role) int {
	n := 0
	for _, l := range d.Layers {
		if l.Role == role {
			n++
		}
	}
	return n
}

// Inputs are the derived parameters every strategy works from.
type Inputs struct {
	Snapshot weather.Snapshot `json:"snapshot"`
	Severity severity.Result  `json:"severity"`
	Palette  palette.Params   `json:"palette"`
	Effects  effects.Params   `json:"effects"`
	Outline  shape.Descriptor `json:"outline"`
}

// Derive runs the pure derivation chain for a snapshot.
func Derive(s weather.Snapshot) Inputs {
	s = s.Normalize()
	sev := severity.Score(s)
	return Inputs{
		Snapshot: s,
		Severity: sev,
		Palette:  palette.Derive(s),
		Effects:  effects.Derive(s),
		Outline:  shape.Synthesize(s.CloudCover, sev),
	}
}

// Strategy lays out the gradient layers, filters and shadow for one mode.
// Implementations must be stateless and draw randomness only from rng.
type Strategy interface {
	Mode() Mode
	Compose(in Inputs, rng Random) Descriptor
}
