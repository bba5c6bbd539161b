// Package main 启动背景动画的桌面窗口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>   配置文件（默认使用嵌入的 data/backdrop.yaml）
//	--seed <n>        粒子随机种子（0 表示使用当前时间）
//	--width/--height  初始窗口尺寸
//	--verbose         输出日志
//
// 环境变量 BACKDROP_CONFIG、BACKDROP_SEED、BACKDROP_VERBOSE 提供上述参数的默认值，
// 也可以写在当前目录的 .env 文件中。
//
// Controls:
//
//	F11     - 切换全屏
//	F3      - 显示/隐藏统计信息
//	Escape  - 退出
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/backdrop/pkg/app"
	"github.com/gonewx/backdrop/pkg/embedded"
	"github.com/gonewx/backdrop/pkg/utils"
)

func main() {
	// .env 必须在定义参数前加载，参数默认值来自环境变量
	if err := utils.LoadEnv(); err != nil {
		log.Printf("[Main] Warning: failed to load .env: %v", err)
	}

	var (
		configFlag  = flag.String("config", utils.EnvString(utils.EnvConfigPath, ""), "Backdrop config file (default: embedded)")
		seedFlag    = flag.Int64("seed", utils.EnvInt64(utils.EnvSeed, 0), "Particle random seed (0 = time based)")
		widthFlag   = flag.Int("width", 0, "Initial window width")
		heightFlag  = flag.Int("height", 0, "Initial window height")
		verboseFlag = flag.Bool("verbose", utils.EnvBool(utils.EnvVerbose, false), "Enable verbose logging")
	)
	flag.Parse()

	// 初始化嵌入资源（必须在加载配置之前）
	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
		Width:      *widthFlag,
		Height:     *heightFlag,
	})
	if err != nil {
		// 非 verbose 模式下 log 已被丢弃，致命错误直接写 stderr
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	a.ApplyWindowOptions()

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}

	if err := a.Close(); err != nil {
		log.Printf("[Main] Warning: %v", err)
	}
}
