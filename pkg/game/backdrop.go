package game

import (
	"log"
	"math/rand"

	"github.com/gonewx/backdrop/pkg/config"
	"github.com/gonewx/backdrop/pkg/surface"
	"github.com/gonewx/backdrop/pkg/systems"
)

// Backdrop 背景动画的上下文：一个渐变背景加一个粒子场
//
// 每个宿主各持有一个 Backdrop，不存在全局状态。
// 尺寸变化时两个组件都按新尺寸重建，不迁移任何状态。
type Backdrop struct {
	cfg    *config.BackdropConfig
	params config.EmitterParams
	rng    *rand.Rand

	width, height int
	background    *systems.Background
	field         *systems.ParticleField
}

// NewBackdrop 创建指定尺寸的背景动画
//
// 参数:
//   - cfg: 已验证的配置；为 nil 时使用默认配置
//   - rng: 粒子随机源；为 nil 时使用固定种子
//   - width, height: 画面尺寸
func NewBackdrop(cfg *config.BackdropConfig, rng *rand.Rand, width, height int) *Backdrop {
	if cfg == nil {
		cfg = config.DefaultBackdropConfig()
	}
	params, err := cfg.Particles.Resolve()
	if err != nil {
		log.Printf("[Backdrop] Warning: invalid particle config: %v (using defaults)", err)
		params = config.DefaultEmitterParams()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	b := &Backdrop{
		cfg:    cfg,
		params: params,
		rng:    rng,
	}
	b.Resize(width, height)
	return b
}

// Resize 按新尺寸重建背景与粒子场
//
// 重建后相位为 0、粒子数为 0。负尺寸按 0 处理。
func (b *Backdrop) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)

	b.width = width
	b.height = height
	b.background = systems.NewBackground(width, height, b.cfg.Background)
	b.field = systems.NewParticleField(width, height, b.params, b.rng)

	log.Printf("[Backdrop] Resized to %dx%d", width, height)
}

// Update 推进一个 tick（背景在前，粒子在后）
func (b *Backdrop) Update() {
	b.background.Update()
	b.field.Update()
}

// Draw 绘制当前帧（背景在下，粒子在上）
func (b *Backdrop) Draw(s surface.Surface) {
	b.background.Draw(s)
	b.field.Draw(s)
}

// Frame 按固定顺序执行一帧：
// Background.Update, Background.Draw, ParticleField.Update, ParticleField.Draw
func (b *Backdrop) Frame(s surface.Surface) {
	b.background.Update()
	b.background.Draw(s)
	b.field.Update()
	b.field.Draw(s)
}

// Size 返回当前尺寸
func (b *Backdrop) Size() (int, int) {
	return b.width, b.height
}

// Background 返回当前背景组件
func (b *Backdrop) Background() *systems.Background {
	return b.background
}

// Field 返回当前粒子场
func (b *Backdrop) Field() *systems.ParticleField {
	return b.field
}
