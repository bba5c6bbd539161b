package surface

import (
	"math"
	"sort"
)

// ColorStop is a single gradient stop.
type ColorStop struct {
	Offset float64
	Color  Color
}

// stops keeps color stops sorted by offset. Stops with equal offsets keep
// insertion order, which produces a hard edge at that offset.
type stops []ColorStop

func (s *stops) add(offset float64, c Color) {
	offset = clamp01(offset)
	i := sort.Search(len(*s), func(i int) bool { return (*s)[i].Offset > offset })
	*s = append(*s, ColorStop{})
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = ColorStop{Offset: offset, Color: c}
}

// at evaluates the stop list at t with pad extension.
func (s stops) at(t float64) Color {
	switch {
	case len(s) == 0:
		return Color{}
	case t <= s[0].Offset:
		return s[0].Color
	case t >= s[len(s)-1].Offset:
		return s[len(s)-1].Color
	}
	for i := 0; i < len(s)-1; i++ {
		a, b := s[i], s[i+1]
		if t >= a.Offset && t < b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.Offset)/span)
		}
	}
	return s[len(s)-1].Color
}

// LinearGradient paints along the line (X0,Y0)->(X1,Y1).
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	stops          stops
}

// NewLinearGradient creates a gradient with no stops; add them with AddColorStop.
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// AddColorStop adds a stop at offset in [0, 1].
func (g *LinearGradient) AddColorStop(offset float64, c Color) {
	g.stops.add(offset, c)
}

// Stops returns the sorted stop list.
func (g *LinearGradient) Stops() []ColorStop {
	return append([]ColorStop(nil), g.stops...)
}

// ColorAt implements Paint.
func (g *LinearGradient) ColorAt(x, y float64) Color {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		// Degenerate line paints nothing, as on a canvas.
		return Color{}
	}
	t := ((x-g.X0)*dx + (y-g.Y0)*dy) / l2
	return g.stops.at(t)
}

// RadialGradient is a two-circle gradient from (X0,Y0,R0) to (X1,Y1,R1)
// with canvas semantics: a point takes the color of the largest ω for
// which it lies on the interpolated circle with non-negative radius.
type RadialGradient struct {
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	stops      stops
}

// NewRadialGradient creates a radial gradient with no stops.
func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64) *RadialGradient {
	return &RadialGradient{X0: x0, Y0: y0, R0: r0, X1: x1, Y1: y1, R1: r1}
}

// AddColorStop adds a stop at offset in [0, 1].
func (g *RadialGradient) AddColorStop(offset float64, c Color) {
	g.stops.add(offset, c)
}

// Stops returns the sorted stop list.
func (g *RadialGradient) Stops() []ColorStop {
	return append([]ColorStop(nil), g.stops...)
}

// ColorAt implements Paint.
func (g *RadialGradient) ColorAt(x, y float64) Color {
	w, ok := g.omega(x, y)
	if !ok {
		return Color{}
	}
	return g.stops.at(w)
}

func (g *RadialGradient) omega(x, y float64) (float64, bool) {
	if g.X0 == g.X1 && g.Y0 == g.Y1 && g.R0 == g.R1 {
		return 0, false
	}
	cdx, cdy := g.X1-g.X0, g.Y1-g.Y0
	pdx, pdy := x-g.X0, y-g.Y0
	dr := g.R1 - g.R0

	// |p - c0 - ω·cd| = r0 + ω·dr  →  a·ω² - 2b·ω + c = 0
	a := cdx*cdx + cdy*cdy - dr*dr
	b := pdx*cdx + pdy*cdy + g.R0*dr
	c := pdx*pdx + pdy*pdy - g.R0*g.R0

	valid := func(w float64) bool { return g.R0+w*dr >= 0 }

	if math.Abs(a) < 1e-12 {
		if b == 0 {
			return 0, false
		}
		w := c / (2 * b)
		return w, valid(w)
	}
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	w1, w2 := (b+sq)/a, (b-sq)/a
	if w1 < w2 {
		w1, w2 = w2, w1
	}
	if valid(w1) {
		return w1, true
	}
	if valid(w2) {
		return w2, true
	}
	return 0, false
}
