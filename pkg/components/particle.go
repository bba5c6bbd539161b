package components

import (
	"github.com/gonewx/backdrop/pkg/surface"
)

const (
	// DefaultGravity 每 tick 施加到垂直速度上的加速度
	DefaultGravity = 0.1

	// BaseOpacity 粒子满寿命时的全局透明度
	BaseOpacity = 0.6
)

// Particle 背景中的单个粒子
//
// 坐标单位为像素，时间单位为 tick（每次 Update 一个 tick）。
// Life 从 MaxLife 递减到 0，透明度随之线性衰减。
type Particle struct {
	// 位置与速度（像素, 像素/tick）
	X, Y   float64
	VX, VY float64

	// Size 方块边长，创建后不变
	Size float64

	// Color 从调色板中选取的填充颜色
	Color surface.Color

	// 生命周期（tick）
	Life    float64
	MaxLife float64

	// 旋转（弧度, 弧度/tick）
	Angle           float64
	AngularVelocity float64

	// Gravity 垂直加速度（像素/tick²）
	Gravity float64
}

// NewParticle 创建一个满寿命的粒子
//
// 参数:
//   - x, y: 初始位置
//   - vx, vy: 初始速度
//   - size: 方块边长
//   - life: 寿命（tick），同时作为 MaxLife
//   - angle, angularVelocity: 初始角度与角速度
//   - color: 填充颜色
func NewParticle(x, y, vx, vy, size, life, angle, angularVelocity float64, color surface.Color) *Particle {
	return &Particle{
		X:               x,
		Y:               y,
		VX:              vx,
		VY:              vy,
		Size:            size,
		Color:           color,
		Life:            life,
		MaxLife:         life,
		Angle:           angle,
		AngularVelocity: angularVelocity,
		Gravity:         DefaultGravity,
	}
}

// Update 推进一个 tick
//
// 先用旧速度积分位置，再施加重力，所以一次更新后
// Y == y0 + vy0 且 VY == vy0 + Gravity。
func (p *Particle) Update() {
	p.X += p.VX
	p.Y += p.VY
	p.VY += p.Gravity
	p.Life--
	if p.Life < 0 {
		p.Life = 0
	}
	p.Angle += p.AngularVelocity
}

// IsDead 寿命耗尽时返回 true
func (p *Particle) IsDead() bool {
	return p.Life <= 0
}

// Alpha 返回线性衰减因子 Life/MaxLife（0~1）
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return p.Life / p.MaxLife
}

// Draw 以粒子位置为中心绘制旋转后的方块
//
// 绘制状态在调用前后保持不变（Save/Restore 成对出现）。
func (p *Particle) Draw(s surface.Surface) {
	s.Save()
	s.SetGlobalAlpha(BaseOpacity * p.Alpha())
	s.SetFillStyle(p.Color)
	s.Translate(p.X, p.Y)
	s.Rotate(p.Angle)
	s.FillRect(-p.Size/2, -p.Size/2, p.Size, p.Size)
	s.Restore()
}
