package surface

// Op names recorded by Recorder.
const (
	OpSave           = "save"
	OpRestore        = "restore"
	OpTranslate      = "translate"
	OpRotate         = "rotate"
	OpSetGlobalAlpha = "globalAlpha"
	OpSetFillStyle   = "fillStyle"
	OpFillRect       = "fillRect"
)

// Call is one recorded Surface call.
type Call struct {
	Op    string
	Args  []float64
	Paint Paint
	// State is the draw state in effect when a fillRect was issued.
	State DrawState
}

// Recorder is a Surface that records every call instead of drawing.
type Recorder struct {
	State
	W, H  int
	Calls []Call
}

// NewRecorder creates a recorder reporting the given dimensions.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{State: NewState(), W: w, H: h}
}

func (r *Recorder) Width() int  { return r.W }
func (r *Recorder) Height() int { return r.H }

func (r *Recorder) Save() {
	r.State.Save()
	r.Calls = append(r.Calls, Call{Op: OpSave})
}

func (r *Recorder) Restore() {
	r.State.Restore()
	r.Calls = append(r.Calls, Call{Op: OpRestore})
}

func (r *Recorder) Translate(x, y float64) {
	r.State.Translate(x, y)
	r.Calls = append(r.Calls, Call{Op: OpTranslate, Args: []float64{x, y}})
}

func (r *Recorder) Rotate(angle float64) {
	r.State.Rotate(angle)
	r.Calls = append(r.Calls, Call{Op: OpRotate, Args: []float64{angle}})
}

func (r *Recorder) SetGlobalAlpha(alpha float64) {
	r.State.SetGlobalAlpha(alpha)
	r.Calls = append(r.Calls, Call{Op: OpSetGlobalAlpha, Args: []float64{alpha}})
}

func (r *Recorder) SetFillStyle(p Paint) {
	r.State.SetFillStyle(p)
	r.Calls = append(r.Calls, Call{Op: OpSetFillStyle, Paint: p})
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.Calls = append(r.Calls, Call{
		Op:    OpFillRect,
		Args:  []float64{x, y, w, h},
		State: r.Current(),
	})
}

// Fills returns only the fillRect calls.
func (r *Recorder) Fills() []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == OpFillRect {
			out = append(out, c)
		}
	}
	return out
}

// Clear forgets recorded calls and resets state.
func (r *Recorder) Clear() {
	r.Calls = r.Calls[:0]
	r.State.Reset()
}
