package animation

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"
)

func TestWaveBounces(t *testing.T) {
	wave := NewWave(0.25)
	want := []float64{0.25, 0.5, 0.75, 1, 0.75, 0.5, 0.25, 0, 0.25}
	for i, expected := range want {
		if got := wave.Next(); math.Abs(got-expected) > 1e-9 {
			t.Fatalf("frame %d = %v, want %v", i, got, expected)
		}
	}
}

func TestWaveStaysInRange(t *testing.T) {
	wave := NewWave(DefaultConfig().Step)
	peaks := 0
	for i := 0; i < 200; i++ {
		value := wave.Next()
		if value < 0 || value > 1 {
			t.Fatalf("frame %d out of range: %v", i, value)
		}
		if value == 1 {
			peaks++
		}
	}
	if peaks < 5 {
		t.Errorf("wave reached the top %d times in 200 frames", peaks)
	}
}

func TestEngineStartStop(t *testing.T) {
	var mu sync.Mutex
	frames := 0
	engine := New(Config{Frame: time.Millisecond, Step: 0.1}, func(float64) {
		mu.Lock()
		frames++
		mu.Unlock()
	})

	engine.Start(context.Background())
	if !engine.Running() {
		t.Fatal("engine not running after Start")
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		count := frames
		mu.Unlock()
		if count >= 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("no frames delivered")
		}
		time.Sleep(time.Millisecond)
	}

	engine.Stop()
	if engine.Running() {
		t.Fatal("engine running after Stop")
	}
	mu.Lock()
	stopped := frames
	mu.Unlock()
	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if frames != stopped {
		t.Errorf("frames delivered after Stop: %d -> %d", stopped, frames)
	}
}

func TestEngineStopsWithContext(t *testing.T) {
	engine := New(Config{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	engine.Start(ctx)
	cancel()
	engine.Stop()
	engine.Stop()
}
