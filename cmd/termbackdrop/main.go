// Package main 在终端中运行背景动画
//
// 每个字符单元用 '▀' 显示上下两个像素，需要支持真彩色的终端。
//
// Usage:
//
//	go run ./cmd/termbackdrop [flags]
//
// Flags:
//
//	--config <path>   配置文件（默认使用内置默认值）
//	--seed <n>        粒子随机种子（0 表示使用当前时间）
//	--scale <f>       逻辑像素与终端像素之比（默认 4）
//	--verbose         输出日志到 stderr
//
// Controls:
//
//	q/Escape/Ctrl-C - 退出
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/backdrop/pkg/config"
	"github.com/gonewx/backdrop/pkg/utils"
)

func main() {
	if err := utils.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	var (
		configFlag  = flag.String("config", utils.EnvString(utils.EnvConfigPath, ""), "Backdrop config file (default: built-in)")
		seedFlag    = flag.Int64("seed", utils.EnvInt64(utils.EnvSeed, 0), "Particle random seed (0 = time based)")
		scaleFlag   = flag.Float64("scale", 4, "Logical pixels per terminal pixel")
		verboseFlag = flag.Bool("verbose", utils.EnvBool(utils.EnvVerbose, false), "Enable verbose logging to stderr")
	)
	flag.Parse()

	// 终端被 tcell 接管，日志只能写 stderr 并且默认关闭
	if !*verboseFlag {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	cfg, err := config.LoadBackdropConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := newTermHost(screen, cfg, rand.New(rand.NewSource(seed)), *scaleFlag)
	err = host.run(ctx)
	screen.Fini()

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
