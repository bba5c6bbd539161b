// Package main 校验背景动画配置文件并打印解析结果
//
// Usage:
//
//	go run ./cmd/checkconfig [path]
//
// 未指定路径时检查 data/backdrop.yaml。
package main

import (
	"fmt"
	"os"

	"github.com/gonewx/backdrop/pkg/config"
)

func main() {
	path := config.DefaultConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := check(path); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}

func check(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}

	cfg, err := config.ParseBackdropConfig(data)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %s 格式正确\n", path)

	params, err := cfg.Particles.Resolve()
	if err != nil {
		return err
	}

	fmt.Printf("✅ 窗口: %dx%d @ %d TPS (%q)\n", cfg.Window.Width, cfg.Window.Height, cfg.Window.TPS, cfg.Window.Title)
	fmt.Printf("✅ 发射: 每 %d tick, 每点 %d 个, 轨道半径 %g, 角速度 %g\n",
		params.EmitInterval, params.BurstSize, params.OrbitRadius, params.OrbitSpeed)
	fmt.Printf("✅ 粒子: 速度 %v, 尺寸 %v, 寿命 %v, 旋转 %v\n",
		params.LaunchSpeed, params.Size, params.Lifetime, params.SpinSpeed)
	fmt.Printf("✅ 物理: 重力 %g, 上升偏移 %g\n", params.Gravity, params.Lift)

	if params.MaxParticles == 0 {
		fmt.Printf("⚠️  maxParticles 为 0，粒子数量不受限制\n")
	} else {
		fmt.Printf("✅ 上限: %d 个粒子\n", params.MaxParticles)
	}
	for i, c := range params.Palette {
		fmt.Printf("✅ 颜色 %d: %v\n", i, c)
	}

	fmt.Printf("✅ 背景: 相位步长 %g, 循环 %v, 漂移 %g, 内半径 %g\n",
		cfg.Background.PhaseStep, cfg.Background.WrapPhase, cfg.Background.Drift, cfg.Background.InnerRadius)
	return nil
}
