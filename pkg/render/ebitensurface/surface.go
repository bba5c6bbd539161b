// Package ebitensurface implements surface.Surface on top of an *ebiten.Image.
//
// Every FillRect becomes a quad (or a grid of quads for gradients) whose
// corners are transformed on the CPU and submitted with DrawTriangles,
// the same way the particle renderer batches textured quads. Gradients are
// sampled at grid vertices and interpolated by the GPU.
package ebitensurface

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/backdrop/pkg/surface"
)

// DefaultSubdivisions is the gradient grid resolution per axis.
const DefaultSubdivisions = 24

// maxVertices keeps indices within uint16.
const maxVertices = 65535

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	// 取中心像素作为纹理，避免边缘采样
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// Surface draws onto a target image. Call Begin once per frame with the
// frame's target before drawing.
type Surface struct {
	surface.State

	dst          *ebiten.Image
	subdivisions int
	antiAlias    bool

	vertices []ebiten.Vertex
	indices  []uint16
}

// New creates a surface drawing onto dst (which may be nil until Begin).
func New(dst *ebiten.Image) *Surface {
	return &Surface{
		State:        surface.NewState(),
		dst:          dst,
		subdivisions: DefaultSubdivisions,
		antiAlias:    true,
	}
}

// SetSubdivisions sets the gradient grid resolution; values < 1 are ignored.
func (s *Surface) SetSubdivisions(n int) {
	if n >= 1 {
		s.subdivisions = n
	}
}

// Begin retargets the surface and resets the draw state.
func (s *Surface) Begin(dst *ebiten.Image) {
	s.dst = dst
	s.State.Reset()
}

func (s *Surface) Width() int {
	if s.dst == nil {
		return 0
	}
	return s.dst.Bounds().Dx()
}

func (s *Surface) Height() int {
	if s.dst == nil {
		return 0
	}
	return s.dst.Bounds().Dy()
}

// FillRect implements surface.Surface.
func (s *Surface) FillRect(x, y, w, h float64) {
	if s.dst == nil || w == 0 || h == 0 {
		return
	}
	st := s.Current()
	if st.GlobalAlpha <= 0 {
		return
	}

	n := s.subdivisions
	if _, solid := st.Fill.(surface.Color); solid {
		n = 1
	}

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	buildGrid(&s.vertices, &s.indices, st, x, y, w, h, n)
	if len(s.vertices) == 0 {
		return
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = s.antiAlias
	s.dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}

// buildGrid appends an n×n grid of quads covering (x, y, w, h) in local
// space. Vertex colors come from the fill paint, scaled by global alpha.
func buildGrid(vs *[]ebiten.Vertex, is *[]uint16, st surface.DrawState, x, y, w, h float64, n int) {
	cols := n + 1
	if cols*cols > maxVertices {
		n = 254
		cols = n + 1
	}

	base := uint16(len(*vs))
	for j := 0; j <= n; j++ {
		ly := y + h*float64(j)/float64(n)
		for i := 0; i <= n; i++ {
			lx := x + w*float64(i)/float64(n)
			dx, dy := st.Transform.Apply(lx, ly)
			c := st.Fill.ColorAt(lx, ly)
			*vs = append(*vs, ebiten.Vertex{
				DstX:   float32(dx),
				DstY:   float32(dy),
				SrcX:   1,
				SrcY:   1,
				ColorR: float32(c.R),
				ColorG: float32(c.G),
				ColorB: float32(c.B),
				ColorA: float32(c.A * st.GlobalAlpha),
			})
		}
	}

	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			tl := base + uint16(j*cols+i)
			tr := tl + 1
			bl := tl + uint16(cols)
			br := bl + 1
			// 两个三角形：左上-右上-左下，右上-右下-左下
			*is = append(*is, tl, tr, bl, tr, br, bl)
		}
	}
}
