package aura

import (
	"strings"
)

// Mode selects the geometric layout of an aura.
type Mode int

// Render modes. Randomizer resolves to one of the concrete modes per call.
const (
	Radial Mode = iota
	Layered
	Swirl
	Linear
	Particle
	Fractal
	Randomizer
)

var modeNames = [...]string{ //nolint:gochecknoglobals // static lookup table
	Radial:     "radial",
	Layered:    "layered",
	Swirl:      "swirl",
	Linear:     "linear",
	Particle:   "particle",
	Fractal:    "fractal",
	Randomizer: "randomizer",
}

// concreteModes is the randomizer's pool, in selection order.
var concreteModes = [...]Mode{Radial, Layered, Swirl, Linear, Particle, Fractal} //nolint:gochecknoglobals // static

// ConcreteModes returns the six layout modes.
func ConcreteModes() []Mode {
	out := make([]Mode, len(concreteModes))
	copy(out, concreteModes[:])
	return out
}

// Modes returns every selectable mode, randomizer last.
func Modes() []Mode {
	return append(ConcreteModes(), Randomizer)
}

// String returns the mode's selector name.
func (m Mode) String() string {
	if m < Radial || m > Randomizer {
		return modeNames[Radial]
	}
	return modeNames[m]
}

// IsConcrete reports whether the mode lays out layers itself.
func (m Mode) IsConcrete() bool {
	return m >= Radial && m < Randomizer
}

// ParseMode resolves a selector name. Unknown selectors fall back to Radial
// and report false.
func ParseMode(s string) (Mode, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range modeNames {
		if n == name {
			return Mode(m), true
		}
	}
	return Radial, false
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails: unknown
// names become Radial.
func (m *Mode) UnmarshalText(text []byte) error {
	*m, _ = ParseMode(string(text))
	return nil
}
