// Package termsurface renders a surface.Surface into a tcell screen.
//
// Drawing happens on a raster twice as tall as the terminal; Present packs
// each vertical pixel pair into one '▀' cell (foreground = upper pixel,
// background = lower pixel).
package termsurface

import (
	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/backdrop/pkg/render/raster"
	"github.com/gonewx/backdrop/pkg/surface"
)

const halfBlock = '▀'

// Surface is a raster sized in half-block pixels.
type Surface struct {
	*raster.Surface
	cols, rows int
}

// New creates a surface for a terminal of cols×rows cells.
func New(cols, rows int) *Surface {
	return &Surface{
		Surface: raster.New(cols, rows*2),
		cols:    cols,
		rows:    rows,
	}
}

// Cells returns the terminal size the surface was built for.
func (s *Surface) Cells() (int, int) {
	return s.cols, s.rows
}

// CellStyle returns the style for the cell at (col, row).
func (s *Surface) CellStyle(col, row int) tcell.Style {
	top := s.At(col, row*2)
	bottom := s.At(col, row*2+1)
	return tcell.StyleDefault.
		Foreground(toTcell(top)).
		Background(toTcell(bottom))
}

// Present copies the raster to the screen and clears it for the next frame.
func (s *Surface) Present(screen tcell.Screen) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			screen.SetContent(col, row, halfBlock, nil, s.CellStyle(col, row))
		}
	}
	screen.Show()
	s.Clear()
}

// toTcell flattens against black; terminals have no alpha.
func toTcell(c surface.Color) tcell.Color {
	n := c.NRGBA()
	a := c.A
	r := int32(float64(n.R) * a)
	g := int32(float64(n.G) * a)
	b := int32(float64(n.B) * a)
	return tcell.NewRGBColor(r, g, b)
}
