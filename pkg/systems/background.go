package systems

import (
	"log"
	"math"

	"github.com/gonewx/backdrop/pkg/config"
	"github.com/gonewx/backdrop/pkg/surface"
)

// BackgroundPeriod 所有驱动三角函数项的公共周期
//
// 各项频率为 0.5、0.3、0.4 和 1，周期分别是 4π、20π/3、5π 和 2π，
// 最小公倍数为 20π。
const BackgroundPeriod = 20 * math.Pi

// 径向叠加层的固定颜色
var (
	overlayInner = [3]uint8{231, 76, 60}
	overlayOuter = surface.RGBA(15, 20, 25, 0)
)

// Background 随时间缓慢变化的渐变背景
//
// 底层是从左上到右下的三段线性渐变，上面叠加一个圆心漂移的径向渐变。
type Background struct {
	width, height int
	cfg           config.BackgroundConfig
	phase         float64
}

// NewBackground 创建相位为 0 的背景
func NewBackground(width, height int, cfg config.BackgroundConfig) *Background {
	log.Printf("[Background] 创建背景: %dx%d, step=%g, wrap=%v",
		width, height, cfg.PhaseStep, cfg.WrapPhase)

	return &Background{
		width:  width,
		height: height,
		cfg:    cfg,
	}
}

// Update 相位前进一步
func (b *Background) Update() {
	b.phase += b.cfg.PhaseStep
	if b.cfg.WrapPhase && b.phase >= BackgroundPeriod {
		b.phase = math.Mod(b.phase, BackgroundPeriod)
	}
}

// Phase 返回当前相位
func (b *Background) Phase() float64 {
	return b.phase
}

// Size 返回创建时的画面尺寸
func (b *Background) Size() (int, int) {
	return b.width, b.height
}

// Draw 先铺满线性渐变，再叠加径向渐变
func (b *Background) Draw(s surface.Surface) {
	w := float64(b.width)
	h := float64(b.height)

	linear := surface.NewLinearGradient(0, 0, w, h)
	for _, st := range LinearStops(b.phase) {
		linear.AddColorStop(st.Offset, st.Color)
	}
	s.SetFillStyle(linear)
	s.FillRect(0, 0, w, h)

	o := b.Overlay()
	radial := surface.NewRadialGradient(o.X0, o.Y0, o.R0, o.X1, o.Y1, o.R1)
	radial.AddColorStop(0, o.Inner)
	radial.AddColorStop(1, o.Outer)
	s.SetFillStyle(radial)
	s.FillRect(0, 0, w, h)
}

// Overlay 返回当前相位下、按本背景尺寸计算的径向叠加层
func (b *Background) Overlay() Overlay {
	o := radialOverlay(b.phase, b.cfg.Drift)
	w := float64(b.width)
	h := float64(b.height)

	o.X0 += w / 2
	o.Y0 += h / 2
	o.R0 = b.cfg.InnerRadius
	o.X1 = w / 2
	o.Y1 = h / 2
	o.R1 = w
	return o
}

// Hues 返回相位 phase 时的两个色相（度）
func Hues(phase float64) (h1, h2 float64) {
	h1 = math.Mod(math.Sin(phase*0.5)*30+200, 360)
	h2 = math.Mod(math.Cos(phase*0.3)*40+220, 360)
	return h1, h2
}

// LinearStops 返回线性渐变的三个色标
func LinearStops(phase float64) []surface.ColorStop {
	h1, h2 := Hues(phase)
	return []surface.ColorStop{
		{Offset: 0, Color: surface.HSL(h1, 0.60, 0.20)},
		{Offset: 0.5, Color: surface.HSL(math.Mod(h2+60, 360), 0.50, 0.15)},
		{Offset: 1, Color: surface.HSL(h2, 0.70, 0.18)},
	}
}

// Overlay 径向叠加层的几何与颜色
type Overlay struct {
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	Inner      surface.Color
	Outer      surface.Color
}

// RadialOverlay 返回与尺寸无关的叠加层参数
//
// X0/Y0 是内圆心相对画面中心的漂移量（默认幅度 200），其余几何字段为零，
// 由 Background.Overlay 按实际尺寸补全。
func RadialOverlay(phase float64) Overlay {
	return radialOverlay(phase, 200)
}

func radialOverlay(phase, drift float64) Overlay {
	return Overlay{
		X0:    math.Sin(phase*0.4) * drift,
		Y0:    math.Cos(phase*0.3) * drift,
		Inner: surface.RGBA(overlayInner[0], overlayInner[1], overlayInner[2], 0.05+math.Sin(phase)*0.02),
		Outer: overlayOuter,
	}
}
