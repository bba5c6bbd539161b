package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestFrameLoop_StopEndsRun(t *testing.T) {
	var frames atomic.Int32
	loop := NewFrameLoop(500, func() { frames.Add(1) })

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(context.Background()) }()

	deadline := time.After(2 * time.Second)
	for frames.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d frames ran", frames.Load())
		default:
			time.Sleep(time.Millisecond)
		}
	}

	loop.Stop()
	loop.Stop() // 重复调用无副作用

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run returned %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	select {
	case <-loop.Done():
	default:
		t.Error("Done not closed after Run returned")
	}
}

func TestFrameLoop_ContextCancel(t *testing.T) {
	loop := NewFrameLoop(60, nil)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// TestFrameLoop_PostRunsOnLoop 投递的任务与帧回调不会并发执行
func TestFrameLoop_PostRunsOnLoop(t *testing.T) {
	var inFrame atomic.Bool
	var overlap atomic.Bool
	counter := 0

	loop := NewFrameLoop(1000, func() {
		inFrame.Store(true)
		counter++
		inFrame.Store(false)
	})
	go loop.Run(context.Background())
	defer loop.Stop()

	ran := make(chan int, 1)
	ok := loop.Post(func() {
		if inFrame.Load() {
			overlap.Store(true)
		}
		ran <- counter
	})
	if !ok {
		t.Fatal("Post returned false on a running loop")
	}

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("posted task never ran")
	}
	if overlap.Load() {
		t.Error("task ran concurrently with a frame")
	}
}

func TestFrameLoop_PostAfterStop(t *testing.T) {
	loop := NewFrameLoop(60, nil)
	loop.Stop()
	if loop.Post(func() {}) {
		t.Error("Post after Stop returned true")
	}
}

// TestFrameLoop_PostAfterCancel ctx 取消后投递的任务会被拒绝，而不是静默丢失
func TestFrameLoop_PostAfterCancel(t *testing.T) {
	loop := NewFrameLoop(60, nil)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()
	cancel()

	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if loop.Post(func() {}) {
		t.Error("Post after context cancel returned true")
	}
}

func TestFrameLoop_RunTwice(t *testing.T) {
	loop := NewFrameLoop(60, nil)
	loop.Stop()

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("first Run returned %v, want nil", err)
	}
	if err := loop.Run(context.Background()); !errors.Is(err, ErrLoopStarted) {
		t.Errorf("second Run returned %v, want ErrLoopStarted", err)
	}
	select {
	case <-loop.Done():
	default:
		t.Error("Done not closed after first Run")
	}
}

func TestFrameLoop_DefaultTPS(t *testing.T) {
	loop := NewFrameLoop(0, nil)
	if want := time.Second / 60; loop.interval != want {
		t.Errorf("interval = %v, want %v", loop.interval, want)
	}
}
