package app

import (
	"context"
	"sync"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/retrogolib/log"
)

// Headless is a frontend without any output. It consumes the frames of the
// machine and returns when the machine halts or the context is done.
type Headless struct {
	logger *log.Logger
	frames <-chan display.Frame

	once   sync.Once
	halted chan struct{}

	mu     sync.Mutex
	count  int
	latest display.Frame
}

// NewHeadless returns a new headless frontend.
func NewHeadless(logger *log.Logger, frames <-chan display.Frame) *Headless {
	return &Headless{
		logger: logger,
		frames: frames,
		halted: make(chan struct{}),
	}
}

// Run consumes frames until the machine halts or the context is done.
func (h *Headless) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.halted:
			return nil
		case frame := <-h.frames:
			h.mu.Lock()
			h.count++
			h.latest = frame
			h.mu.Unlock()
		}
	}
}

// Halted stops the frontend.
func (h *Headless) Halted(err error) {
	h.once.Do(func() {
		h.logger.Debug("Machine halted", log.Err(err))
		close(h.halted)
	})
}

// Frames returns the number of received frames and the latest one.
func (h *Headless) Frames() (int, display.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count, h.latest
}
