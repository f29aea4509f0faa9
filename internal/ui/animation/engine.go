package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains pulse timing values.
type Config struct {
	Frame time.Duration
	Step  float64
}

// Wave is a triangle wave bouncing between 0 and 1.
type Wave struct {
	value     float64
	direction float64
	step      float64
}

// NewWave creates a wave at 0 rising by step per frame.
func NewWave(step float64) *Wave {
	return &Wave{direction: 1, step: step}
}

// Next advances the wave one frame and returns the new value.
func (wave *Wave) Next() float64 {
	wave.value += wave.direction * wave.step
	if wave.value >= 1 {
		wave.value = 1
		wave.direction = -1
	}
	if wave.value <= 0 {
		wave.value = 0
		wave.direction = 1
	}
	return wave.value
}

// Value returns the current value without advancing.
func (wave *Wave) Value() float64 {
	return wave.value
}

// Engine drives a pulse wave on its own goroutine.
type Engine struct {
	mu      sync.Mutex
	config  Config
	onFrame func(float64)
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a new pulse engine. onFrame receives each wave value from the
// engine goroutine.
func New(config Config, onFrame func(float64)) *Engine {
	if config.Frame <= 0 {
		config.Frame = DefaultConfig().Frame
	}
	if config.Step <= 0 {
		config.Step = DefaultConfig().Step
	}
	return &Engine{config: config, onFrame: onFrame}
}

// Start begins pulsing until ctx is cancelled or Stop is called. Starting a
// running engine restarts the wave.
func (engine *Engine) Start(ctx context.Context) {
	engine.Stop()

	engine.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go engine.run(runCtx, done)
}

// Stop terminates the pulse loop and waits for it to exit.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel, done := engine.cancel, engine.done
	engine.cancel = nil
	engine.done = nil
	engine.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Running reports whether the pulse loop is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancel != nil
}

func (engine *Engine) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	wave := NewWave(engine.config.Step)
	for {
		if !sleepWithContext(ctx, engine.config.Frame) {
			return
		}
		if engine.onFrame != nil {
			engine.onFrame(wave.Next())
		}
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
