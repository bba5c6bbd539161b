// Package main 离线渲染背景动画的某一帧并保存为 PNG
//
// Usage:
//
//	go run ./cmd/snapshot [flags]
//
// Flags:
//
//	--out <path>      输出文件（默认 backdrop.png）
//	--frames <n>      渲染前推进的帧数（默认 120）
//	--width/--height  画面尺寸（默认使用配置文件中的窗口尺寸）
//	--seed <n>        粒子随机种子（默认 1，保证输出可复现）
//	--config <path>   配置文件（默认使用内置默认值）
//	--verbose         输出日志
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/gonewx/backdrop/pkg/config"
	"github.com/gonewx/backdrop/pkg/game"
	"github.com/gonewx/backdrop/pkg/render/raster"
	"github.com/gonewx/backdrop/pkg/utils"
)

var (
	outFlag     = flag.String("out", "backdrop.png", "Output PNG path")
	framesFlag  = flag.Int("frames", 120, "Number of frames to advance before capturing")
	widthFlag   = flag.Int("width", 0, "Image width (default: config window width)")
	heightFlag  = flag.Int("height", 0, "Image height (default: config window height)")
	seedFlag    = flag.Int64("seed", 1, "Particle random seed")
	configFlag  = flag.String("config", "", "Backdrop config file (default: built-in)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

// renderFrames 推进 frames 帧并返回最后一帧
//
// 每帧都按完整顺序执行（背景更新、背景绘制、粒子更新、粒子绘制），
// 画布在帧之间清空，与浏览器逐帧重绘一致。
func renderFrames(cfg *config.BackdropConfig, seed int64, width, height, frames int) *image.RGBA {
	backdrop := game.NewBackdrop(cfg, rand.New(rand.NewSource(seed)), width, height)
	canvas := raster.New(width, height)

	for i := 0; i < max(frames, 1); i++ {
		canvas.Clear()
		backdrop.Frame(canvas)
	}

	log.Printf("[Snapshot] Rendered %d frames: %d particles, phase %.3f",
		max(frames, 1), backdrop.Field().Len(), backdrop.Background().Phase())
	return canvas.Image()
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := utils.LoadEnv(); err != nil {
		log.Printf("[Snapshot] Warning: failed to load .env: %v", err)
	}

	path := *configFlag
	if path == "" {
		path = utils.EnvString(utils.EnvConfigPath, "")
	}
	cfg, err := config.LoadBackdropConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	width, height := *widthFlag, *heightFlag
	if width <= 0 || height <= 0 {
		width, height = cfg.Window.Width, cfg.Window.Height
	}

	img := renderFrames(cfg, *seedFlag, width, height, *framesFlag)
	if err := writePNG(*outFlag, img); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%dx%d, %d frames)\n", *outFlag, width, height, *framesFlag)
}
