package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// ErrLoopStarted Run 只能调用一次
var ErrLoopStarted = errors.New("frame loop already started")

// FrameLoop 固定频率的单协程帧循环
//
// 帧回调与通过 Post 投递的任务都在 Run 所在的协程上执行，
// 因此它们之间不需要加锁。
type FrameLoop struct {
	interval time.Duration
	frame    func()

	tasks    chan func()
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	started  atomic.Bool
}

// NewFrameLoop 创建每秒执行 tps 次 frame 的循环
//
// tps <= 0 时使用 60。
func NewFrameLoop(tps int, frame func()) *FrameLoop {
	if tps <= 0 {
		tps = 60
	}
	return &FrameLoop{
		interval: time.Second / time.Duration(tps),
		frame:    frame,
		tasks:    make(chan func(), 64),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run 运行循环直到 Stop 被调用或 ctx 被取消
//
// 返回:
//   - error: ctx 取消时返回 ctx.Err()，Stop 停止时返回 nil，重复调用返回 ErrLoopStarted
func (l *FrameLoop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrLoopStarted
	}
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	log.Printf("[FrameLoop] Started, interval=%v", l.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[FrameLoop] Context cancelled")
			// 之后的 Post 不再被接受
			l.Stop()
			return ctx.Err()

		case <-l.stop:
			log.Printf("[FrameLoop] Stopped")
			return nil

		case task := <-l.tasks:
			task()

		case <-ticker.C:
			if l.frame != nil {
				l.frame()
			}
		}
	}
}

// Post 把 fn 投递到循环协程执行
//
// 循环已停止（Stop、ctx 取消或 Run 已返回）或队列已满时返回 false。
func (l *FrameLoop) Post(fn func()) bool {
	select {
	case <-l.stop:
		return false
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	default:
		return false
	}
}

// Stop 请求循环退出，可重复调用
func (l *FrameLoop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

// Done 在 Run 返回后关闭
func (l *FrameLoop) Done() <-chan struct{} {
	return l.done
}
