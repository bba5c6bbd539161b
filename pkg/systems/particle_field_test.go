package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/backdrop/pkg/config"
	"github.com/gonewx/backdrop/pkg/surface"
)

func newTestField(w, h int, seed int64) *ParticleField {
	return NewParticleField(w, h, config.DefaultEmitterParams(), rand.New(rand.NewSource(seed)))
}

// TestParticleField_EmitRanges Emit 追加的粒子全部落在配置范围内
func TestParticleField_EmitRanges(t *testing.T) {
	f := newTestField(800, 600, 42)
	params := config.DefaultEmitterParams()

	if got := f.Emit(100, 200, 5); got != 5 {
		t.Fatalf("Emit returned %d, want 5", got)
	}
	if f.Len() != 5 {
		t.Fatalf("Len = %d, want 5", f.Len())
	}

	for i, p := range f.Particles() {
		if p.X != 100 || p.Y != 200 {
			t.Errorf("particle %d at (%v, %v), want (100, 200)", i, p.X, p.Y)
		}
		if !params.Size.Contains(p.Size) {
			t.Errorf("particle %d size %v outside %v", i, p.Size, params.Size)
		}
		if !params.Lifetime.Contains(p.MaxLife) || p.Life != p.MaxLife {
			t.Errorf("particle %d life %v/%v outside %v", i, p.Life, p.MaxLife, params.Lifetime)
		}
		if !params.SpinSpeed.Contains(p.AngularVelocity) {
			t.Errorf("particle %d spin %v outside %v", i, p.AngularVelocity, params.SpinSpeed)
		}
		if p.Angle < 0 || p.Angle >= 2*math.Pi {
			t.Errorf("particle %d angle %v outside [0, 2π)", i, p.Angle)
		}

		// 去掉上升偏移后的速度模长应在发射速度范围内
		speed := math.Hypot(p.VX, p.VY+params.Lift)
		if speed < params.LaunchSpeed.Min-1e-9 || speed >= params.LaunchSpeed.Max+1e-9 {
			t.Errorf("particle %d speed %v outside %v", i, speed, params.LaunchSpeed)
		}

		inPalette := false
		for _, c := range params.Palette {
			if c == p.Color {
				inPalette = true
			}
		}
		if !inPalette {
			t.Errorf("particle %d color %v not in palette", i, p.Color)
		}
		if p.Gravity != params.Gravity {
			t.Errorf("particle %d gravity %v, want %v", i, p.Gravity, params.Gravity)
		}
	}
}

func TestParticleField_EmitNonPositive(t *testing.T) {
	f := newTestField(800, 600, 1)
	if got := f.Emit(0, 0, 0); got != 0 {
		t.Errorf("Emit(0) returned %d", got)
	}
	if got := f.Emit(0, 0, -3); got != 0 {
		t.Errorf("Emit(-3) returned %d", got)
	}
	if f.Len() != 0 {
		t.Errorf("Len = %d, want 0", f.Len())
	}
}

func TestParticleField_SeededDeterminism(t *testing.T) {
	a := newTestField(800, 600, 99)
	b := newTestField(800, 600, 99)
	for i := 0; i < 200; i++ {
		a.Update()
		b.Update()
	}
	if a.Len() != b.Len() {
		t.Fatalf("Len differs: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Particles() {
		pa, pb := a.Particles()[i], b.Particles()[i]
		if *pa != *pb {
			t.Fatalf("particle %d differs: %+v vs %+v", i, *pa, *pb)
		}
	}
}

// TestParticleField_EmissionSchedule 每 3 个 tick 两个发射点各发射 2 个粒子
func TestParticleField_EmissionSchedule(t *testing.T) {
	f := newTestField(800, 600, 7)

	f.Update()
	f.Update()
	if f.Len() != 0 {
		t.Fatalf("after 2 ticks Len = %d, want 0", f.Len())
	}

	f.Update()
	if f.Tick() != 3 {
		t.Fatalf("Tick = %d, want 3", f.Tick())
	}
	if f.Len() != 4 {
		t.Fatalf("after 3 ticks Len = %d, want 4", f.Len())
	}

	// 粒子在发射的同一 tick 内已更新一次
	for _, p := range f.Particles() {
		if p.Life != p.MaxLife-1 {
			t.Errorf("Life = %v, want %v", p.Life, p.MaxLife-1)
		}
	}
}

func TestParticleField_EmissionPoints(t *testing.T) {
	f := newTestField(800, 600, 1)

	pts := f.EmissionPoints(0)
	if pts[0] != [2]float64{600, 300} {
		t.Errorf("point 0 at tick 0 = %v, want [600 300]", pts[0])
	}
	if math.Abs(pts[1][0]-200) > 1e-9 || math.Abs(pts[1][1]-300) > 1e-9 {
		t.Errorf("point 1 at tick 0 = %v, want [200 300]", pts[1])
	}

	// 两点始终关于中心对称，距离中心为轨道半径
	for _, tick := range []int{3, 78, 300, 9999} {
		pts := f.EmissionPoints(tick)
		mx := (pts[0][0] + pts[1][0]) / 2
		my := (pts[0][1] + pts[1][1]) / 2
		if math.Abs(mx-400) > 1e-9 || math.Abs(my-300) > 1e-9 {
			t.Errorf("tick %d midpoint = (%v, %v), want (400, 300)", tick, mx, my)
		}
		if r := math.Hypot(pts[0][0]-400, pts[0][1]-300); math.Abs(r-200) > 1e-9 {
			t.Errorf("tick %d radius = %v, want 200", tick, r)
		}
	}
}

// TestParticleField_DeadRemoved Update 之后不存在死亡粒子
func TestParticleField_DeadRemoved(t *testing.T) {
	f := newTestField(800, 600, 3)
	f.Emit(10, 10, 50)

	for i := 0; i < 150; i++ {
		f.Update()
		for _, p := range f.Particles() {
			if p.IsDead() {
				t.Fatalf("tick %d: dead particle survived update", f.Tick())
			}
		}
	}
}

func TestParticleField_AllExpire(t *testing.T) {
	params := config.DefaultEmitterParams()
	params.BurstSize = 0
	f := NewParticleField(800, 600, params, rand.New(rand.NewSource(5)))
	f.Emit(0, 0, 20)

	// 寿命上限为 100 tick
	for i := 0; i < 100; i++ {
		f.Update()
	}
	if f.Len() != 0 {
		t.Errorf("Len = %d after 100 ticks, want 0", f.Len())
	}
}

// TestParticleField_PopulationBound 不设上限时，出生与死亡的平衡也让粒子数保持在 500 以内
func TestParticleField_PopulationBound(t *testing.T) {
	params := config.DefaultEmitterParams()
	params.MaxParticles = 0
	f := NewParticleField(1280, 800, params, rand.New(rand.NewSource(11)))

	peak := 0
	for i := 0; i < 10000; i++ {
		f.Update()
		peak = max(peak, f.Len())
	}
	if peak > 500 {
		t.Errorf("peak population = %d, want <= 500", peak)
	}
	if peak == 0 {
		t.Error("no particles were ever alive")
	}
}

// TestParticleField_DefaultCapNeverReached 默认上限只是保险，正常运行不应丢弃任何粒子
func TestParticleField_DefaultCapNeverReached(t *testing.T) {
	f := newTestField(1280, 800, 11)
	for i := 0; i < 10000; i++ {
		f.Update()
	}
	if f.Dropped() != 0 {
		t.Errorf("Dropped = %d under default cap, want 0", f.Dropped())
	}
}

func TestParticleField_CapacityDrops(t *testing.T) {
	params := config.DefaultEmitterParams()
	params.MaxParticles = 10
	f := NewParticleField(800, 600, params, rand.New(rand.NewSource(2)))

	if got := f.Emit(0, 0, 7); got != 7 {
		t.Fatalf("first Emit returned %d, want 7", got)
	}
	if got := f.Emit(0, 0, 7); got != 3 {
		t.Fatalf("second Emit returned %d, want 3", got)
	}
	if f.Len() != 10 {
		t.Errorf("Len = %d, want 10", f.Len())
	}
	if f.Dropped() != 4 {
		t.Errorf("Dropped = %d, want 4", f.Dropped())
	}
	if got := f.Emit(0, 0, 1); got != 0 {
		t.Errorf("Emit at capacity returned %d, want 0", got)
	}
}

func TestParticleField_Unbounded(t *testing.T) {
	params := config.DefaultEmitterParams()
	params.MaxParticles = 0
	f := NewParticleField(800, 600, params, rand.New(rand.NewSource(2)))

	if got := f.Emit(0, 0, 2000); got != 2000 {
		t.Errorf("Emit returned %d, want 2000", got)
	}
	if f.Dropped() != 0 {
		t.Errorf("Dropped = %d, want 0", f.Dropped())
	}
}

func TestParticleField_Draw(t *testing.T) {
	f := newTestField(800, 600, 4)
	f.Emit(50, 50, 3)

	rec := surface.NewRecorder(800, 600)
	f.Draw(rec)

	if got := len(rec.Fills()); got != 3 {
		t.Errorf("fills = %d, want 3", got)
	}
	if rec.Depth() != 0 {
		t.Errorf("state depth = %d, want 0", rec.Depth())
	}
}

func TestParticleField_NilRand(t *testing.T) {
	f := NewParticleField(100, 100, config.DefaultEmitterParams(), nil)
	if f.Emit(0, 0, 1) != 1 {
		t.Error("Emit with default rng failed")
	}
	if w, h := f.Size(); w != 100 || h != 100 {
		t.Errorf("Size = %dx%d, want 100x100", w, h)
	}
}
