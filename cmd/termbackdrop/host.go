package main

import (
	"context"
	"log"
	"math/rand"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/backdrop/pkg/app"
	"github.com/gonewx/backdrop/pkg/config"
	"github.com/gonewx/backdrop/pkg/game"
	"github.com/gonewx/backdrop/pkg/render/termsurface"
)

// termHost 把背景动画绘制到终端
//
// 动画在 (cols·scale) × (2·rows·scale) 的逻辑分辨率下运行，
// 绘制时整体缩小到半块字符像素。
type termHost struct {
	screen   tcell.Screen
	scale    float64
	term     *termsurface.Surface
	backdrop *game.Backdrop
	loop     *app.FrameLoop
}

func newTermHost(screen tcell.Screen, cfg *config.BackdropConfig, rng *rand.Rand, scale float64) *termHost {
	if scale <= 0 {
		scale = 1
	}
	h := &termHost{
		screen: screen,
		scale:  scale,
	}
	cols, rows := screen.Size()
	h.term = termsurface.New(cols, rows)
	w, ht := h.logicalSize(cols, rows)
	h.backdrop = game.NewBackdrop(cfg, rng, w, ht)
	h.loop = app.NewFrameLoop(cfg.Window.TPS, h.frame)
	return h
}

func (h *termHost) logicalSize(cols, rows int) (int, int) {
	return int(float64(cols) * h.scale), int(float64(rows*2) * h.scale)
}

// resize 按新的终端尺寸重建画布与动画
func (h *termHost) resize(cols, rows int) {
	if c, r := h.term.Cells(); c == cols && r == rows {
		return
	}
	log.Printf("[Term] Resize to %dx%d cells", cols, rows)
	h.term = termsurface.New(cols, rows)
	h.backdrop.Resize(h.logicalSize(cols, rows))
}

// frame 执行一帧并输出到终端
func (h *termHost) frame() {
	h.term.Scale(1/h.scale, 1/h.scale)
	h.backdrop.Frame(h.term)
	h.term.Present(h.screen)
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (h *termHost) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.loop.Post(func() {
			h.screen.Sync()
			h.resize(cols, rows)
		})
	}
	return true
}

// run 运行帧循环，直到按下退出键或 ctx 被取消
func (h *termHost) run(ctx context.Context) error {
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				// Fini 之后 PollEvent 返回 nil
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	go func() {
		for {
			select {
			case ev, ok := <-eventChan:
				if !ok || !h.handleEvent(ev) {
					h.loop.Stop()
					return
				}
			case <-h.loop.Done():
				return
			}
		}
	}()

	return h.loop.Run(ctx)
}
