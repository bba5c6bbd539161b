package surface

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha RGBA color with channels in [0, 1].
//
// Color also implements Paint as a solid fill.
type Color struct {
	R, G, B, A float64
}

// RGBA builds a Color from 8-bit channels and a [0, 1] alpha,
// matching the CSS rgba() notation.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: clamp01(a),
	}
}

// HSL builds an opaque Color from hue in degrees and saturation/lightness in [0, 1].
func HSL(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsl(h, s, l).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// ParseHex parses "#rrggbb" (or "#rgb") and applies the given alpha.
func ParseHex(hex string, alpha float64) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: clamp01(alpha)}, nil
}

// ColorAt implements Paint.
func (c Color) ColorAt(x, y float64) Color {
	return c
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(c.A * a)
	return c
}

// Lerp interpolates between c and o in premultiplied space and returns a
// straight-alpha result. t is clamped to [0, 1].
func (c Color) Lerp(o Color, t float64) Color {
	t = clamp01(t)
	a := c.A + (o.A-c.A)*t
	if a <= 0 {
		return Color{}
	}
	r := c.R*c.A + (o.R*o.A-c.R*c.A)*t
	g := c.G*c.A + (o.G*o.A-c.G*c.A)*t
	b := c.B*c.A + (o.B*o.A-c.B*c.A)*t
	return Color{R: r / a, G: g / a, B: b / a, A: a}
}

// NRGBA converts to an 8-bit straight-alpha color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// ApproxEqual reports whether every channel differs by at most eps.
func (c Color) ApproxEqual(o Color, eps float64) bool {
	return math.Abs(c.R-o.R) <= eps &&
		math.Abs(c.G-o.G) <= eps &&
		math.Abs(c.B-o.B) <= eps &&
		math.Abs(c.A-o.A) <= eps
}

func (c Color) String() string {
	n := c.NRGBA()
	return fmt.Sprintf("rgba(%d, %d, %d, %.3f)", n.R, n.G, n.B, c.A)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
