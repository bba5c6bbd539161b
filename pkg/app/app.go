// Package app 提供背景动画的窗口宿主
//
// 该包把初始化逻辑从 main 包提取出来：main.go 只负责解析参数、
// 初始化嵌入资源并调用 NewApp()，ebiten 循环由 App 驱动。
package app

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/backdrop/pkg/config"
	"github.com/gonewx/backdrop/pkg/game"
	"github.com/gonewx/backdrop/pkg/render/ebitensurface"
	"github.com/gonewx/backdrop/pkg/utils"
)

// SettingsAppName gdata 存储使用的应用名
const SettingsAppName = "portfolio_backdrop"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 配置文件路径，为空则使用嵌入的默认配置
	ConfigPath string
	// Seed 粒子随机种子，0 表示使用当前时间
	Seed int64
	// Width/Height 覆盖初始窗口尺寸，0 表示使用记忆的尺寸或配置文件
	Width  int
	Height int
	// DisableSettings 不读写持久化设置（测试与一次性运行）
	DisableSettings bool
}

// App 是背景动画的窗口宿主，实现 ebiten.Game 接口
type App struct {
	cfg      *config.BackdropConfig
	backdrop *game.Backdrop
	surface  *ebitensurface.Surface
	settings *game.SettingsManager

	windowWidth  int
	windowHeight int

	stopped atomic.Bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	backdropConfig, err := config.LoadBackdropConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载背景配置: %s", displayPath(cfg.ConfigPath))

	var settings *game.SettingsManager
	if cfg.DisableSettings {
		settings, _ = game.NewSettingsManager(nil)
	} else {
		if err := utils.EnsureStorageDir(); err != nil {
			log.Printf("[App] Warning: storage dir unavailable: %v", err)
		}
		settings = game.OpenSettingsManager(SettingsAppName)
	}

	width, height := initialWindowSize(cfg, backdropConfig.Window, settings.GetSettings())

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[App] Seed: %d, window: %dx%d", seed, width, height)

	return &App{
		cfg:          backdropConfig,
		backdrop:     game.NewBackdrop(backdropConfig, rand.New(rand.NewSource(seed)), width, height),
		surface:      ebitensurface.New(nil),
		settings:     settings,
		windowWidth:  width,
		windowHeight: height,
	}, nil
}

// initialWindowSize 命令行参数优先，其次是记忆的窗口尺寸，最后是配置文件
func initialWindowSize(cfg Config, window config.WindowConfig, s *game.DisplaySettings) (int, int) {
	if cfg.Width > 0 && cfg.Height > 0 {
		return cfg.Width, cfg.Height
	}
	if s.WindowWidth > 0 && s.WindowHeight > 0 {
		return s.WindowWidth, s.WindowHeight
	}
	return window.Width, window.Height
}

func displayPath(path string) string {
	if path == "" {
		return config.DefaultConfigPath + " (embedded)"
	}
	return path
}

// ApplyWindowOptions 设置窗口标题、尺寸、TPS 与全屏状态
// 必须在 ebiten.RunGame 之前调用
func (a *App) ApplyWindowOptions() {
	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetWindowSize(a.windowWidth, a.windowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(a.cfg.Window.TPS)
	ebiten.SetFullscreen(a.settings.GetSettings().Fullscreen)
}

// Update 更新动画
// 每个 tick 调用一次（默认每秒 60 次）
func (a *App) Update() error {
	if a.stopped.Load() {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.windowWidth, a.windowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.windowWidth, a.windowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	a.handleKeys()

	a.backdrop.Update()
	return nil
}

// handleKeys 处理快捷键
//   - Escape: 退出
//   - F11: 切换全屏
//   - F3: 切换统计叠加层
func (a *App) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.Stop()
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		s := a.settings.GetSettings()
		a.settings.SetShowStats(!s.ShowStats)
		a.saveSettings()
	}
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
		a.settings.SetFullscreen(true)
	}
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制当前帧
func (a *App) Draw(screen *ebiten.Image) {
	a.surface.Begin(screen)
	a.backdrop.Draw(a.surface)

	if a.settings.GetSettings().ShowStats {
		ebitenutil.DebugPrint(screen, a.statsText())
	}
}

// statsText 统计叠加层文本
func (a *App) statsText() string {
	field := a.backdrop.Field()
	w, h := a.backdrop.Size()
	return fmt.Sprintf("TPS: %0.1f  FPS: %0.1f\nSize: %dx%d\nParticles: %d (dropped %d)\nTick: %d  Phase: %0.3f",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		w, h,
		field.Len(), field.Dropped(),
		field.Tick(), a.backdrop.Background().Phase())
}

// Layout 使用窗口实际尺寸作为逻辑尺寸
// 尺寸变化即为重建信号：背景与粒子场按新尺寸重建
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		w, h := a.backdrop.Size()
		return max(w, 1), max(h, 1)
	}

	if w, h := a.backdrop.Size(); w != outsideWidth || h != outsideHeight {
		log.Printf("[App] Layout changed: %dx%d -> %dx%d", w, h, outsideWidth, outsideHeight)
		a.backdrop.Resize(outsideWidth, outsideHeight)
		if !ebiten.IsFullscreen() {
			a.windowWidth = outsideWidth
			a.windowHeight = outsideHeight
		}
	}
	return outsideWidth, outsideHeight
}

// Stop 请求退出：下一次 Update 返回 ebiten.Termination
// 可在任意协程调用
func (a *App) Stop() {
	if !a.stopped.Swap(true) {
		log.Printf("[App] Stop requested")
	}
}

// Close 在 RunGame 返回后调用，记住窗口尺寸并保存设置
func (a *App) Close() error {
	a.settings.SetWindowSize(a.windowWidth, a.windowHeight)
	if err := a.settings.Save(); err != nil {
		return fmt.Errorf("failed to save settings on exit: %w", err)
	}
	return nil
}

// Backdrop 返回动画上下文
func (a *App) Backdrop() *game.Backdrop {
	return a.backdrop
}
