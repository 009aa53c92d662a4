package vm

import (
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/stack"
)

// Config contains the machine parameters.
type Config struct {
	MemorySize int    // size of the address space in bytes
	EntryPoint uint16 // address that programs are loaded to and started at
	StackSize  int    // maximum nesting of subroutine calls

	Width  int // framebuffer width in pixels
	Height int // framebuffer height in pixels

	CyclesPerTick int           // instructions executed per tick
	TickPeriod    time.Duration // duration of a tick, timers decrement once per tick
	FrameQueue    int           // number of frames buffered for the renderer

	Trace bool   // log every instruction and treat invalid instructions as fatal
	Seed  uint64 // seed of the random number generator, 0 picks a random seed
}

// DefaultConfig returns the configuration of a standard machine running at
// 10 instructions per 60 Hz timer tick.
func DefaultConfig() Config {
	return Config{
		MemorySize: memory.DefaultSize,
		EntryPoint: chip8.ProgramStart,
		StackSize:  stack.DefaultCapacity,

		Width:  display.DefaultWidth,
		Height: display.DefaultHeight,

		CyclesPerTick: 10,
		TickPeriod:    time.Second / 60,
		FrameQueue:    4,
	}
}

// validate checks that the configuration describes a usable machine.
func (c Config) validate() error {
	var errs []error
	if c.MemorySize < len(memory.Font) {
		errs = append(errs, fmt.Errorf("memory size %d is smaller than the font", c.MemorySize))
	}
	if int(c.EntryPoint) < len(memory.Font) || int(c.EntryPoint) >= c.MemorySize {
		errs = append(errs, fmt.Errorf("entry point $%04X outside of program memory", c.EntryPoint))
	}
	if c.StackSize <= 0 {
		errs = append(errs, fmt.Errorf("invalid stack size %d", c.StackSize))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid screen size %dx%d", c.Width, c.Height))
	}
	if c.CyclesPerTick <= 0 {
		errs = append(errs, fmt.Errorf("invalid cycles per tick %d", c.CyclesPerTick))
	}
	if c.TickPeriod <= 0 {
		errs = append(errs, fmt.Errorf("invalid tick period %s", c.TickPeriod))
	}
	if c.FrameQueue <= 0 {
		errs = append(errs, fmt.Errorf("invalid frame queue size %d", c.FrameQueue))
	}
	return errors.Join(errs...)
}
