// Package css renders an aura descriptor as CSS declarations for a square
// element of descriptor.Size pixels.
package css

import (
	"fmt"
	"strings"

	"github.com/okian/aura/internal/domain/aura"
	"github.com/okian/aura/internal/domain/palette"
	"github.com/okian/aura/internal/domain/shape"
)

// Animation timing shared by every aura.
const (
	AnimationName   = "pulse"
	AnimationTiming = "cubic-bezier(0.4, 0, 0.6, 1)"
)

// CSS property names, in render order.
const (
	PropWidth        = "width"
	PropHeight       = "height"
	PropBackground   = "background"
	PropBackColor    = "background-color"
	PropClipPath     = "clip-path"
	PropBorderRadius = "border-radius"
	PropFilter       = "filter"
	PropBoxShadow    = "box-shadow"
	PropTransform    = "transform"
	PropOpacity      = "opacity"
	PropAnimation    = "animation"
)

// Keyframes is the breathing animation the animation declaration refers to.
// It drives the standalone scale property so the transform rotation holds.
const Keyframes = `@keyframes pulse {
  0%, 100% { scale: 1; }
  50% { scale: 1.05; }
}`

// Declaration is one CSS property.
type Declaration struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// Declarations keeps properties in render order.
type Declarations []Declaration

// Get returns the value of a property.
func (ds Declarations) Get(property string) (string, bool) {
	for _, d := range ds {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// Map returns the declarations keyed by property.
func (ds Declarations) Map() map[string]string {
	out := make(map[string]string, len(ds))
	for _, d := range ds {
		out[d.Property] = d.Value
	}
	return out
}

// String formats the declarations as a style block body.
func (ds Declarations) String() string {
	var b strings.Builder
	for _, d := range ds {
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
		b.WriteString(";\n")
	}
	return b.String()
}

// Rule wraps the declarations in a selector block.
func (ds Declarations) Rule(selector string) string {
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, d := range ds {
		fmt.Fprintf(&b, "  %s: %s;\n", d.Property, d.Value)
	}
	b.WriteString("}")
	return b.String()
}

// Render maps a descriptor to CSS.
func Render(d aura.Descriptor) Declarations {
	px := n(float64(d.Size)) + "px"
	return Declarations{
		{PropWidth, px},
		{PropHeight, px},
		{PropBackground, Background(d.Layers)},
		{PropBackColor, BaseColor(d.Layers)},
		{PropClipPath, ClipPath(d.Outline)},
		{PropBorderRadius, n(d.Outline.CornerSmoothing) + "%"},
		{PropFilter, Filter(d.Filters)},
		{PropBoxShadow, BoxShadow(d.Shadow)},
		{PropTransform, Transform(d.Rotation)},
		{PropOpacity, n(d.Opacity)},
		{PropAnimation, Animation(d.AnimationPeriod)},
	}
}

// BaseColor is the hex colour of the first visible stop of the bottom-most
// layer. The background shorthand resets background-color, so it must follow.
func BaseColor(layers []aura.Layer) string {
	if len(layers) == 0 {
		return "transparent"
	}
	for _, s := range layers[len(layers)-1].Stops {
		if !s.Color.IsTransparent() {
			return s.Color.Hex()
		}
	}
	return "transparent"
}

// Background joins every layer, top-most first.
func Background(layers []aura.Layer) string {
	if len(layers) == 0 {
		return "none"
	}
	parts := make([]string, len(layers))
	for i, l := range layers {
		parts[i] = Gradient(l)
	}
	return strings.Join(parts, ", ")
}

// Gradient formats one layer.
func Gradient(l aura.Layer) string {
	switch l.Kind {
	case aura.LinearGradient:
		return fmt.Sprintf("linear-gradient(%sdeg, %s)", n(l.Angle), stops(l.Stops, "%"))
	case aura.ConicGradient:
		return fmt.Sprintf("conic-gradient(from %sdeg at %s%% %s%%, %s)",
			n(l.Angle), n(l.Center.X), n(l.Center.Y), stops(l.Stops, "deg"))
	default:
		shapeName := "circle"
		if l.Ellipse {
			shapeName = "ellipse"
		}
		return fmt.Sprintf("radial-gradient(%s at %s%% %s%%, %s)",
			shapeName, n(l.Center.X), n(l.Center.Y), stops(l.Stops, "%"))
	}
}

func stops(ss []aura.ColorStop, unit string) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.Color.CSS() + " " + n(s.Position) + unit
	}
	return strings.Join(parts, ", ")
}

// ClipPath formats the outline.
func ClipPath(o shape.Descriptor) string {
	if o.Kind == shape.Circle || len(o.Vertices) == 0 {
		return "circle(50%)"
	}
	pts := make([]string, len(o.Vertices))
	for i, p := range o.Vertices {
		pts[i] = n(p.X) + "% " + n(p.Y) + "%"
	}
	return "polygon(" + strings.Join(pts, ", ") + ")"
}

// Filter formats the filter chain in order.
func Filter(fs []aura.Filter) string {
	if len(fs) == 0 {
		return "none"
	}
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = fmt.Sprintf("%s(%s%s)", f.Name, n(f.Value), f.Unit())
	}
	return strings.Join(parts, " ")
}

// BoxShadow formats the drop shadow.
func BoxShadow(s aura.Shadow) string {
	if s.Color.IsTransparent() && s.Blur == 0 {
		return "none"
	}
	return fmt.Sprintf("%spx %spx %spx %s", n(s.DX), n(s.DY), n(s.Blur), s.Color.CSS())
}

// Transform formats the rotation.
func Transform(rotation float64) string {
	if rotation == 0 {
		return "none"
	}
	return "rotate(" + n(rotation) + "deg)"
}

// Animation formats the breathing animation for a period in seconds.
func Animation(period float64) string {
	return fmt.Sprintf("%s %ss %s infinite", AnimationName, n(period), AnimationTiming)
}

func n(v float64) string {
	return palette.FormatNumber(v)
}
