// Package surface defines the immediate-mode 2-D drawing contract the
// backdrop renders through, plus the paints (solid colors, linear and
// radial gradients) and the save/restore state shared by every backend.
//
// Backends live under pkg/render: a software raster, an ebiten image and a
// tcell terminal.
package surface

// Paint yields the fill color at a point in the local (untransformed)
// coordinate space of a FillRect call.
type Paint interface {
	ColorAt(x, y float64) Color
}

// Surface is an immediate-mode drawing target with canvas-like state.
type Surface interface {
	Width() int
	Height() int

	// Save pushes the current transform, global alpha and fill style.
	Save()
	// Restore pops the state pushed by the matching Save. Unbalanced
	// calls are ignored.
	Restore()

	Translate(x, y float64)
	Rotate(angle float64)
	SetGlobalAlpha(alpha float64)
	SetFillStyle(p Paint)

	// FillRect fills the rectangle (x, y, w, h) in local space with the
	// current fill style, multiplied by the global alpha.
	FillRect(x, y, w, h float64)
}

// DrawState is one entry of the save/restore stack.
type DrawState struct {
	Transform   Matrix
	GlobalAlpha float64
	Fill        Paint
}

// State implements the stateful half of Surface. Backends embed it and only
// provide Width, Height and FillRect.
type State struct {
	cur   DrawState
	stack []DrawState
}

// NewState returns a state with identity transform, opaque global alpha
// and a black fill.
func NewState() State {
	return State{cur: defaultDrawState()}
}

func defaultDrawState() DrawState {
	return DrawState{
		Transform:   Identity(),
		GlobalAlpha: 1,
		Fill:        Color{A: 1},
	}
}

// Reset drops the stack and restores defaults. Backends call it at the
// start of each frame.
func (s *State) Reset() {
	s.cur = defaultDrawState()
	s.stack = s.stack[:0]
}

func (s *State) Save() {
	s.stack = append(s.stack, s.current())
}

func (s *State) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *State) Translate(x, y float64) {
	st := s.current()
	st.Transform = st.Transform.Translate(x, y)
	s.cur = st
}

func (s *State) Rotate(angle float64) {
	st := s.current()
	st.Transform = st.Transform.Rotate(angle)
	s.cur = st
}

// Scale is not part of Surface; hosts use it to map a logical resolution
// onto a smaller backend before handing the surface to a scene.
func (s *State) Scale(sx, sy float64) {
	st := s.current()
	st.Transform = st.Transform.Scale(sx, sy)
	s.cur = st
}

func (s *State) SetGlobalAlpha(alpha float64) {
	st := s.current()
	st.GlobalAlpha = clamp01(alpha)
	s.cur = st
}

func (s *State) SetFillStyle(p Paint) {
	if p == nil {
		return
	}
	st := s.current()
	st.Fill = p
	s.cur = st
}

// Current returns the active draw state.
func (s *State) Current() DrawState {
	return s.current()
}

// Depth returns the number of saved states.
func (s *State) Depth() int {
	return len(s.stack)
}

// current lazily initializes a zero-value State.
func (s *State) current() DrawState {
	if s.cur.Fill == nil {
		s.cur = defaultDrawState()
	}
	return s.cur
}
