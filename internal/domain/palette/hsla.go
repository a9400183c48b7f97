package palette

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// HSLA is a colour in CSS terms: hue in degrees, saturation and lightness in
// percent, alpha in [0,1].
type HSLA struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
	A float64 `json:"a"`
}

// Transparent is the fully transparent stop.
var Transparent = HSLA{} //nolint:gochecknoglobals // immutable sentinel

// HSL returns an opaque colour.
func HSL(h, s, l float64) HSLA {
	return HSLA{H: h, S: s, L: l, A: 1}
}

// NewHSLA returns a colour with alpha.
func NewHSLA(h, s, l, a float64) HSLA {
	return HSLA{H: h, S: s, L: l, A: a}
}

// IsTransparent reports whether the colour has no alpha.
func (c HSLA) IsTransparent() bool {
	return c.A <= 0
}

// CSS formats the colour for a stylesheet.
func (c HSLA) CSS() string {
	if c.IsTransparent() {
		return "transparent"
	}
	if c.A >= 1 {
		return fmt.Sprintf("hsl(%s, %s%%, %s%%)", num(c.H), num(c.S), num(c.L))
	}
	return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", num(c.H), num(c.S), num(c.L), num(c.A))
}

// Colorful converts to a go-colorful colour, ignoring alpha.
func (c HSLA) Colorful() colorful.Color {
	return colorful.Hsl(Wrap(c.H), clamp01(c.S/100), clamp01(c.L/100)).Clamped()
}

// Hex returns the #rrggbb form, ignoring alpha.
func (c HSLA) Hex() string {
	return c.Colorful().Hex()
}

// NRGBA returns the colour with non-premultiplied alpha.
func (c HSLA) NRGBA() color.NRGBA {
	r, g, b := c.Colorful().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(c.A) * 255))}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// num formats a float without trailing zeros, to four decimals at most.
func num(v float64) string {
	r := math.Round(v*10000) / 10000
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// FormatNumber is the number formatting used for CSS output.
func FormatNumber(v float64) string {
	return num(v)
}
