//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于把背景动画打包为 Android (.aar) 或 iOS (.xcframework) 动态壁纸。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
// 移动端没有嵌入 data/ 目录，配置使用代码中的默认值。
//
// 手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.backdrop -o build/android/backdrop.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Backdrop.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/backdrop/pkg/app"
)

func init() {
	backdropApp, err := app.NewApp(app.Config{
		Verbose: true, // 移动端日志输出到 logcat，便于调试
	})
	if err != nil {
		log.Fatalf("背景动画初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(backdropApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
