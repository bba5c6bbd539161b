package surface

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6
}

// TestMatrix_TranslateRotate 验证平移后旋转的组合顺序与 canvas 一致
func TestMatrix_TranslateRotate(t *testing.T) {
	m := Identity().Translate(10, 20).Rotate(math.Pi / 2)

	x, y := m.Apply(1, 0)
	if !approx(x, 10) || !approx(y, 21) {
		t.Errorf("Apply(1,0) = (%v,%v), want (10,21)", x, y)
	}

	x, y = m.Apply(0, 1)
	if !approx(x, 9) || !approx(y, 20) {
		t.Errorf("Apply(0,1) = (%v,%v), want (9,20)", x, y)
	}
}

func TestMatrix_Invert(t *testing.T) {
	m := Identity().Translate(-4, 7).Rotate(0.3).Scale(2, 0.5)
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert() reported singular matrix")
	}

	for _, p := range [][2]float64{{0, 0}, {3, -2}, {100, 40}} {
		dx, dy := m.Apply(p[0], p[1])
		x, y := inv.Apply(dx, dy)
		if !approx(x, p[0]) || !approx(y, p[1]) {
			t.Errorf("round trip %v = (%v,%v)", p, x, y)
		}
	}

	if _, ok := (Matrix{}).Invert(); ok {
		t.Error("zero matrix should not be invertible")
	}
}

func TestState_SaveRestore(t *testing.T) {
	var s State

	s.SetGlobalAlpha(0.5)
	s.Save()
	s.Translate(5, 5)
	s.SetGlobalAlpha(0.2)
	s.SetFillStyle(RGBA(255, 0, 0, 1))

	if got := s.Current().GlobalAlpha; got != 0.2 {
		t.Errorf("GlobalAlpha = %v, want 0.2", got)
	}
	if s.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", s.Depth())
	}

	s.Restore()
	cur := s.Current()
	if cur.GlobalAlpha != 0.5 {
		t.Errorf("restored GlobalAlpha = %v, want 0.5", cur.GlobalAlpha)
	}
	if !cur.Transform.IsIdentity() {
		t.Errorf("restored transform = %+v, want identity", cur.Transform)
	}
	if c, ok := cur.Fill.(Color); !ok || c != (Color{A: 1}) {
		t.Errorf("restored fill = %v, want opaque black", cur.Fill)
	}

	// 多余的 Restore 应被忽略
	s.Restore()
	if s.Current().GlobalAlpha != 0.5 {
		t.Error("unbalanced Restore changed state")
	}
}

func TestState_GlobalAlphaClamped(t *testing.T) {
	s := NewState()
	s.SetGlobalAlpha(3)
	if s.Current().GlobalAlpha != 1 {
		t.Errorf("GlobalAlpha = %v, want 1", s.Current().GlobalAlpha)
	}
	s.SetGlobalAlpha(-1)
	if s.Current().GlobalAlpha != 0 {
		t.Errorf("GlobalAlpha = %v, want 0", s.Current().GlobalAlpha)
	}
}

func TestColor_HSL(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		want    Color
	}{
		{"red", 0, 1, 0.5, Color{1, 0, 0, 1}},
		{"green", 120, 1, 0.5, Color{0, 1, 0, 1}},
		{"blue wraps", 240 + 360, 1, 0.5, Color{0, 0, 1, 1}},
		{"gray", 200, 0, 0.5, Color{0.5, 0.5, 0.5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HSL(tt.h, tt.s, tt.l)
			if !got.ApproxEqual(tt.want, 1e-6) {
				t.Errorf("HSL(%v,%v,%v) = %v, want %v", tt.h, tt.s, tt.l, got, tt.want)
			}
		})
	}
}

func TestColor_ParseHex(t *testing.T) {
	c, err := ParseHex("#e74c3c", 0.6)
	if err != nil {
		t.Fatalf("ParseHex error: %v", err)
	}
	want := RGBA(231, 76, 60, 0.6)
	if !c.ApproxEqual(want, 1e-6) {
		t.Errorf("ParseHex = %v, want %v", c, want)
	}

	if _, err := ParseHex("not-a-color", 1); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestColor_LerpPremultiplied(t *testing.T) {
	red := Color{1, 0, 0, 1}
	clear := Color{0, 0, 1, 0}

	mid := red.Lerp(clear, 0.5)
	// 预乘插值：透明端的颜色不会渗入
	if !mid.ApproxEqual(Color{1, 0, 0, 0.5}, eps) {
		t.Errorf("Lerp = %v, want half-transparent red", mid)
	}
	if got := red.Lerp(clear, 1); got.A != 0 {
		t.Errorf("Lerp(…,1).A = %v, want 0", got.A)
	}
}

func TestLinearGradient_Stops(t *testing.T) {
	g := NewLinearGradient(0, 0, 100, 0)
	g.AddColorStop(1, Color{0, 0, 1, 1})
	g.AddColorStop(0, Color{1, 0, 0, 1})
	g.AddColorStop(0.5, Color{0, 1, 0, 1})

	stops := g.Stops()
	for i := 1; i < len(stops); i++ {
		if stops[i].Offset < stops[i-1].Offset {
			t.Fatalf("stops not sorted: %+v", stops)
		}
	}

	tests := []struct {
		x    float64
		want Color
	}{
		{-20, Color{1, 0, 0, 1}},
		{0, Color{1, 0, 0, 1}},
		{25, Color{0.5, 0.5, 0, 1}},
		{50, Color{0, 1, 0, 1}},
		{100, Color{0, 0, 1, 1}},
		{150, Color{0, 0, 1, 1}},
	}
	for _, tt := range tests {
		// y 不影响水平渐变
		got := g.ColorAt(tt.x, 37)
		if !got.ApproxEqual(tt.want, 1e-6) {
			t.Errorf("ColorAt(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestLinearGradient_Degenerate(t *testing.T) {
	g := NewLinearGradient(5, 5, 5, 5)
	g.AddColorStop(0, Color{1, 1, 1, 1})
	if got := g.ColorAt(5, 5); got.A != 0 {
		t.Errorf("degenerate gradient painted %v", got)
	}
}

func TestRadialGradient_Concentric(t *testing.T) {
	g := NewRadialGradient(50, 50, 0, 50, 50, 100)
	g.AddColorStop(0, Color{1, 1, 1, 1})
	g.AddColorStop(1, Color{0, 0, 0, 1})

	if got := g.ColorAt(50, 50); !got.ApproxEqual(Color{1, 1, 1, 1}, 1e-6) {
		t.Errorf("center = %v, want white", got)
	}
	if got := g.ColorAt(100, 50); !got.ApproxEqual(Color{0.5, 0.5, 0.5, 1}, 1e-6) {
		t.Errorf("half radius = %v, want mid gray", got)
	}
	if got := g.ColorAt(400, 50); !got.ApproxEqual(Color{0, 0, 0, 1}, 1e-6) {
		t.Errorf("outside = %v, want padded black", got)
	}
}

func TestRadialGradient_InnerRadius(t *testing.T) {
	g := NewRadialGradient(0, 0, 100, 0, 0, 200)
	g.AddColorStop(0, Color{1, 0, 0, 1})
	g.AddColorStop(1, Color{0, 0, 1, 1})

	// 内圆以内 ω<0，按 pad 取第一个色标
	if got := g.ColorAt(10, 0); !got.ApproxEqual(Color{1, 0, 0, 1}, 1e-6) {
		t.Errorf("inside inner circle = %v, want red", got)
	}
	if got := g.ColorAt(150, 0); !got.ApproxEqual(Color{0.5, 0, 0.5, 1}, 1e-6) {
		t.Errorf("between circles = %v, want purple", got)
	}
}

func TestRadialGradient_OffsetFocus(t *testing.T) {
	g := NewRadialGradient(40, 0, 10, 0, 0, 100)
	g.AddColorStop(0, Color{1, 1, 1, 1})
	g.AddColorStop(1, Color{0, 0, 0, 1})

	// 焦点圆内部取 ω=0 之前的值（第一个色标）
	if got := g.ColorAt(40, 0); !got.ApproxEqual(Color{1, 1, 1, 1}, 1e-6) {
		t.Errorf("focus = %v, want white", got)
	}
	// 外圆边界 ω=1
	if got := g.ColorAt(-100, 0); !got.ApproxEqual(Color{0, 0, 0, 1}, 1e-6) {
		t.Errorf("outer edge = %v, want black", got)
	}
}

func TestRecorder_RecordsState(t *testing.T) {
	r := NewRecorder(320, 200)
	r.Save()
	r.SetGlobalAlpha(0.3)
	r.Translate(10, 10)
	r.FillRect(-1, -1, 2, 2)
	r.Restore()

	fills := r.Fills()
	if len(fills) != 1 {
		t.Fatalf("got %d fills, want 1", len(fills))
	}
	if fills[0].State.GlobalAlpha != 0.3 {
		t.Errorf("fill alpha = %v, want 0.3", fills[0].State.GlobalAlpha)
	}
	if x, y := fills[0].State.Transform.Apply(0, 0); x != 10 || y != 10 {
		t.Errorf("fill origin = (%v,%v), want (10,10)", x, y)
	}
	if r.Depth() != 0 {
		t.Errorf("Depth after restore = %d", r.Depth())
	}
}

func TestState_ScaleThenTranslate(t *testing.T) {
	s := NewState()
	s.Scale(0.25, 0.25)
	s.Translate(400, 200)

	x, y := s.Current().Transform.Apply(4, 0)
	if !approx(x, 101) || !approx(y, 50) {
		t.Errorf("Apply(4,0) = (%v,%v), want (101,50)", x, y)
	}

	s.Reset()
	if !s.Current().Transform.IsIdentity() {
		t.Error("Reset should drop the scale")
	}
}
