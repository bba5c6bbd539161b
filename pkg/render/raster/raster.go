// Package raster implements surface.Surface on an in-memory *image.RGBA.
//
// It is the reference backend: the terminal host draws through it, the
// snapshot tool encodes its image to PNG, and tests read pixels back.
// Coverage and compositing are done by a gg.Context; paints are sampled
// through surface.Paint so gradients keep canvas semantics.
package raster

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/gonewx/backdrop/pkg/surface"
)

// Surface fills transformed rectangles with anti-aliased edges and
// source-over blending.
type Surface struct {
	surface.State
	img *image.RGBA
	dc  *gg.Context
}

// New allocates a transparent surface of the given size.
func New(width, height int) *Surface {
	width = max(width, 0)
	height = max(height, 0)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &Surface{
		State: surface.NewState(),
		img:   img,
		dc:    gg.NewContextForRGBA(img),
	}
}

func (s *Surface) Width() int  { return s.img.Rect.Dx() }
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Image exposes the backing image. Pixels are premultiplied, as image.RGBA requires.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Clear makes every pixel transparent and resets the draw state.
func (s *Surface) Clear() {
	s.dc.SetColor(color.Transparent)
	s.dc.Clear()
	s.State.Reset()
}

// At returns the pixel at (x, y) as a straight-alpha color.
func (s *Surface) At(x, y int) surface.Color {
	if !(image.Point{X: x, Y: y}).In(s.img.Rect) {
		return surface.Color{}
	}
	i := s.img.PixOffset(x, y)
	p := s.img.Pix[i : i+4 : i+4]
	a := float64(p[3]) / 255
	if a == 0 {
		return surface.Color{}
	}
	return surface.Color{
		R: float64(p[0]) / 255 / a,
		G: float64(p[1]) / 255 / a,
		B: float64(p[2]) / 255 / a,
		A: a,
	}
}

// FillRect implements surface.Surface.
//
// The rectangle is transformed to device space here and handed to gg as a
// polygon; gg's own matrix stays at identity.
func (s *Surface) FillRect(x, y, w, h float64) {
	if w == 0 || h == 0 || s.Width() == 0 || s.Height() == 0 {
		return
	}

	st := s.Current()
	if st.GlobalAlpha <= 0 {
		return
	}

	switch fill := st.Fill.(type) {
	case surface.Color:
		s.dc.SetColor(fill.WithAlpha(st.GlobalAlpha).NRGBA())
	case nil:
		return
	default:
		inv, ok := st.Transform.Invert()
		if !ok {
			return
		}
		s.dc.SetFillStyle(paintPattern{paint: fill, inv: inv, alpha: st.GlobalAlpha})
	}

	m := st.Transform
	s.dc.NewSubPath()
	s.dc.MoveTo(m.Apply(x, y))
	s.dc.LineTo(m.Apply(x+w, y))
	s.dc.LineTo(m.Apply(x+w, y+h))
	s.dc.LineTo(m.Apply(x, y+h))
	s.dc.ClosePath()
	s.dc.Fill()
}

// paintPattern samples a surface.Paint in user space at device pixel centers.
type paintPattern struct {
	paint surface.Paint
	inv   surface.Matrix
	alpha float64
}

func (p paintPattern) ColorAt(x, y int) color.Color {
	ux, uy := p.inv.Apply(float64(x)+0.5, float64(y)+0.5)
	return p.paint.ColorAt(ux, uy).WithAlpha(p.alpha).NRGBA()
}
