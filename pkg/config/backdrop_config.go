package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/backdrop/internal/particle"
	"github.com/gonewx/backdrop/pkg/embedded"
	"github.com/gonewx/backdrop/pkg/surface"
)

// DefaultConfigPath 嵌入的默认配置路径
const DefaultConfigPath = "data/backdrop.yaml"

// BackdropConfig 背景动画配置
//
// 配置文件位置: data/backdrop.yaml
type BackdropConfig struct {
	// Window 窗口与帧率
	Window WindowConfig `yaml:"window"`

	// Particles 粒子发射与物理参数
	Particles ParticleConfig `yaml:"particles"`

	// Background 渐变背景参数
	Background BackgroundConfig `yaml:"background"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	// TPS 每秒 tick 数（粒子物理以 tick 为单位，因此决定动画速度）
	TPS int `yaml:"tps"`
}

// ParticleConfig 粒子场配置
//
// 范围字段使用 "[min max]" 记法，由 internal/particle 解析。
type ParticleConfig struct {
	Gravity      float64        `yaml:"gravity"`
	Lift         float64        `yaml:"lift"`
	EmitInterval int            `yaml:"emitInterval"`
	BurstSize    int            `yaml:"burstSize"`
	OrbitRadius  float64        `yaml:"orbitRadius"`
	OrbitSpeed   float64        `yaml:"orbitSpeed"`
	LaunchSpeed  string         `yaml:"launchSpeed"`
	Size         string         `yaml:"size"`
	Lifetime     string         `yaml:"lifetime"`
	SpinSpeed    string         `yaml:"spinSpeed"`
	MaxParticles int            `yaml:"maxParticles"`
	Palette      []PaletteColor `yaml:"palette"`
}

// PaletteColor 调色板中的一种颜色
type PaletteColor struct {
	Hex   string  `yaml:"hex"`
	Alpha float64 `yaml:"alpha"`
}

// BackgroundConfig 渐变背景配置
type BackgroundConfig struct {
	PhaseStep   float64 `yaml:"phaseStep"`
	WrapPhase   bool    `yaml:"wrapPhase"`
	Drift       float64 `yaml:"drift"`
	InnerRadius float64 `yaml:"innerRadius"`
}

// EmitterParams 解析后的粒子场参数，供 systems.ParticleField 直接使用
type EmitterParams struct {
	Gravity      float64
	Lift         float64
	EmitInterval int
	BurstSize    int
	OrbitRadius  float64
	OrbitSpeed   float64
	LaunchSpeed  particle.Range
	Size         particle.Range
	Lifetime     particle.Range
	SpinSpeed    particle.Range
	MaxParticles int
	Palette      []surface.Color
}

// DefaultBackdropConfig 返回与 data/backdrop.yaml 一致的默认配置
func DefaultBackdropConfig() *BackdropConfig {
	return &BackdropConfig{
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			Title:  "Portfolio Backdrop",
			TPS:    60,
		},
		Particles: ParticleConfig{
			Gravity:      0.1,
			Lift:         2,
			EmitInterval: 3,
			BurstSize:    2,
			OrbitRadius:  200,
			OrbitSpeed:   0.02,
			LaunchSpeed:  "[0.5 2.5]",
			Size:         "[1 4]",
			Lifetime:     "[40 100]",
			SpinSpeed:    "[-0.025 0.025]",
			MaxParticles: 500,
			Palette: []PaletteColor{
				{Hex: "#e74c3c", Alpha: 0.6},
				{Hex: "#3498db", Alpha: 0.6},
				{Hex: "#9b59b6", Alpha: 0.6},
			},
		},
		Background: BackgroundConfig{
			PhaseStep:   0.008,
			WrapPhase:   true,
			Drift:       200,
			InnerRadius: 100,
		},
	}
}

// DefaultEmitterParams 返回默认配置解析后的粒子场参数
func DefaultEmitterParams() EmitterParams {
	params, err := DefaultBackdropConfig().Particles.Resolve()
	if err != nil {
		// 默认值是常量，解析失败说明代码本身有误
		panic(fmt.Sprintf("invalid default particle config: %v", err))
	}
	return params
}

// LoadBackdropConfig 加载背景动画配置
//
// path 为空时使用嵌入的默认配置（未初始化嵌入资源时直接返回 DefaultBackdropConfig）；
// 以 "data/" 开头且存在于嵌入数据中时读取嵌入文件；否则从磁盘读取。
// 文件中未出现的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *BackdropConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadBackdropConfig(path string) (*BackdropConfig, error) {
	if path == "" {
		if !embedded.IsInitialized() {
			return DefaultBackdropConfig(), nil
		}
		path = DefaultConfigPath
	}

	var (
		data []byte
		err  error
	)
	if embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backdrop config: %w", err)
	}

	return ParseBackdropConfig(data)
}

// ParseBackdropConfig 从 YAML 数据解析配置（以默认值为底）
func ParseBackdropConfig(data []byte) (*BackdropConfig, error) {
	cfg := DefaultBackdropConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse backdrop config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backdrop config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 窗口尺寸与 TPS 为正数
//   - 发射间隔为正，单次发射数不为负
//   - 范围字段可解析，尺寸与寿命为正
//   - 调色板非空且颜色可解析
//   - 相位步长为正
func (c *BackdropConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window tps must be positive, got %d", c.Window.TPS)
	}

	if _, err := c.Particles.Resolve(); err != nil {
		return fmt.Errorf("particles: %w", err)
	}

	if err := checkFinite(map[string]float64{
		"phaseStep":   c.Background.PhaseStep,
		"drift":       c.Background.Drift,
		"innerRadius": c.Background.InnerRadius,
	}); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if c.Background.PhaseStep <= 0 {
		return fmt.Errorf("background phaseStep must be positive, got %g", c.Background.PhaseStep)
	}
	if c.Background.InnerRadius < 0 {
		return fmt.Errorf("background innerRadius must be >= 0, got %g", c.Background.InnerRadius)
	}

	return nil
}

// Resolve 解析并校验粒子配置
func (p *ParticleConfig) Resolve() (EmitterParams, error) {
	if p.EmitInterval <= 0 {
		return EmitterParams{}, fmt.Errorf("emitInterval must be positive, got %d", p.EmitInterval)
	}
	if p.BurstSize < 0 {
		return EmitterParams{}, fmt.Errorf("burstSize must be >= 0, got %d", p.BurstSize)
	}
	if p.MaxParticles < 0 {
		return EmitterParams{}, fmt.Errorf("maxParticles must be >= 0, got %d", p.MaxParticles)
	}
	if err := checkFinite(map[string]float64{
		"gravity":     p.Gravity,
		"lift":        p.Lift,
		"orbitRadius": p.OrbitRadius,
		"orbitSpeed":  p.OrbitSpeed,
	}); err != nil {
		return EmitterParams{}, err
	}

	params := EmitterParams{
		Gravity:      p.Gravity,
		Lift:         p.Lift,
		EmitInterval: p.EmitInterval,
		BurstSize:    p.BurstSize,
		OrbitRadius:  p.OrbitRadius,
		OrbitSpeed:   p.OrbitSpeed,
		MaxParticles: p.MaxParticles,
	}

	ranges := []struct {
		name string
		raw  string
		dst  *particle.Range
	}{
		{"launchSpeed", p.LaunchSpeed, &params.LaunchSpeed},
		{"size", p.Size, &params.Size},
		{"lifetime", p.Lifetime, &params.Lifetime},
		{"spinSpeed", p.SpinSpeed, &params.SpinSpeed},
	}

	for _, r := range ranges {
		parsed, err := particle.ParseRange(r.raw)
		if err != nil {
			return EmitterParams{}, fmt.Errorf("%s: %w", r.name, err)
		}
		*r.dst = parsed
	}

	if params.Size.Min <= 0 {
		return EmitterParams{}, fmt.Errorf("size must be positive, got %v", params.Size)
	}
	if params.Lifetime.Min <= 0 {
		return EmitterParams{}, fmt.Errorf("lifetime must be positive, got %v", params.Lifetime)
	}
	if params.LaunchSpeed.Min < 0 {
		return EmitterParams{}, fmt.Errorf("launchSpeed must be >= 0, got %v", params.LaunchSpeed)
	}

	if len(p.Palette) == 0 {
		return EmitterParams{}, fmt.Errorf("palette must not be empty")
	}
	params.Palette = make([]surface.Color, 0, len(p.Palette))
	for i, pc := range p.Palette {
		if !(pc.Alpha >= 0 && pc.Alpha <= 1) {
			return EmitterParams{}, fmt.Errorf("palette[%d] alpha must be in [0,1], got %g", i, pc.Alpha)
		}
		c, err := surface.ParseHex(pc.Hex, pc.Alpha)
		if err != nil {
			return EmitterParams{}, fmt.Errorf("palette[%d]: %w", i, err)
		}
		params.Palette = append(params.Palette, c)
	}

	return params, nil
}

// checkFinite 拒绝 NaN 与 ±Inf（yaml 的 .nan / .inf 会被解析成功）
func checkFinite(fields map[string]float64) error {
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %g", name, v)
		}
	}
	return nil
}
