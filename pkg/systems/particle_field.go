package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/backdrop/pkg/components"
	"github.com/gonewx/backdrop/pkg/config"
	"github.com/gonewx/backdrop/pkg/surface"
)

// ParticleField 管理背景中所有存活的粒子
//
// 两个发射点以画面中心为圆心、OrbitRadius 为半径反向旋转，
// 每 EmitInterval 个 tick 各发射 BurstSize 个粒子。
// 粒子顺序不被保证（删除时使用原地过滤）。
type ParticleField struct {
	width, height int
	params        config.EmitterParams
	rng           *rand.Rand

	particles []*components.Particle
	tick      int
	dropped   int
}

// NewParticleField 创建空粒子场
//
// 参数:
//   - width, height: 画面尺寸，决定轨道中心
//   - params: 解析后的发射参数
//   - rng: 随机源；为 nil 时使用固定种子
func NewParticleField(width, height int, params config.EmitterParams, rng *rand.Rand) *ParticleField {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	capacity := params.MaxParticles
	if capacity <= 0 {
		capacity = 64
	}

	log.Printf("[ParticleField] 创建粒子场: %dx%d, max=%d, palette=%d",
		width, height, params.MaxParticles, len(params.Palette))

	return &ParticleField{
		width:     width,
		height:    height,
		params:    params,
		rng:       rng,
		particles: make([]*components.Particle, 0, capacity),
	}
}

// Emit 在 (x, y) 处追加 count 个随机粒子
//
// count <= 0 时不做任何事。达到 MaxParticles 上限后多余的粒子被丢弃并计入 Dropped。
//
// 返回:
//   - int: 实际追加的粒子数
func (f *ParticleField) Emit(x, y float64, count int) int {
	if count <= 0 {
		return 0
	}

	n := count
	if limit := f.params.MaxParticles; limit > 0 {
		room := limit - len(f.particles)
		if room < 0 {
			room = 0
		}
		if n > room {
			f.dropped += n - room
			n = room
		}
	}

	for i := 0; i < n; i++ {
		f.particles = append(f.particles, f.spawn(x, y))
	}
	return n
}

// spawn 按发射参数随机生成一个粒子
func (f *ParticleField) spawn(x, y float64) *components.Particle {
	direction := f.rng.Float64() * 2 * math.Pi
	speed := f.params.LaunchSpeed.Sample(f.rng)
	vx := math.Cos(direction) * speed
	vy := math.Sin(direction)*speed - f.params.Lift

	size := f.params.Size.Sample(f.rng)

	var color surface.Color
	if len(f.params.Palette) > 0 {
		color = f.params.Palette[f.rng.Intn(len(f.params.Palette))]
	}

	life := f.params.Lifetime.Sample(f.rng)
	angle := f.rng.Float64() * 2 * math.Pi
	spin := f.params.SpinSpeed.Sample(f.rng)

	p := components.NewParticle(x, y, vx, vy, size, life, angle, spin, color)
	p.Gravity = f.params.Gravity
	return p
}

// Update 推进一个 tick：按节奏发射，然后更新并移除死亡粒子
func (f *ParticleField) Update() {
	f.tick++

	if f.tick%f.interval() == 0 {
		for _, pt := range f.EmissionPoints(f.tick) {
			f.Emit(pt[0], pt[1], f.params.BurstSize)
		}
	}

	// 原地过滤：每个粒子恰好更新一次，死亡粒子被覆盖
	alive := f.particles[:0]
	for _, p := range f.particles {
		p.Update()
		if !p.IsDead() {
			alive = append(alive, p)
		}
	}
	// 释放尾部引用
	clear(f.particles[len(alive):])
	f.particles = alive
}

// EmissionPoints 返回指定 tick 时两个发射点的坐标
//
// 第一个点位于角度 tick*OrbitSpeed，第二个与之相差 π。
func (f *ParticleField) EmissionPoints(tick int) [2][2]float64 {
	cx := float64(f.width) / 2
	cy := float64(f.height) / 2
	r := f.params.OrbitRadius
	a := float64(tick) * f.params.OrbitSpeed

	return [2][2]float64{
		{cx + math.Cos(a)*r, cy + math.Sin(a)*r},
		{cx + math.Cos(a+math.Pi)*r, cy + math.Sin(a+math.Pi)*r},
	}
}

// Draw 绘制所有存活粒子
func (f *ParticleField) Draw(s surface.Surface) {
	for _, p := range f.particles {
		p.Draw(s)
	}
}

// Len 返回存活粒子数
func (f *ParticleField) Len() int {
	return len(f.particles)
}

// Particles 返回存活粒子（调用方不应修改切片本身）
func (f *ParticleField) Particles() []*components.Particle {
	return f.particles
}

// Tick 返回已经过的 tick 数
func (f *ParticleField) Tick() int {
	return f.tick
}

// Size 返回创建时的画面尺寸
func (f *ParticleField) Size() (int, int) {
	return f.width, f.height
}

// Dropped 返回因容量上限被丢弃的粒子总数
func (f *ParticleField) Dropped() int {
	return f.dropped
}

func (f *ParticleField) interval() int {
	if f.params.EmitInterval <= 0 {
		return 1
	}
	return f.params.EmitInterval
}
