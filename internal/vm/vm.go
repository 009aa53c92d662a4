// Package vm implements the CHIP-8 virtual machine: instruction dispatch,
// the register file and the timed execution loop.
package vm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/stack"
	"github.com/retroenv/retrogolib/log"
)

// Keyboard is the key state source of the machine.
type Keyboard interface {
	// IsPressed returns whether the key is currently held down.
	IsPressed(key keypad.Key) bool
	// WaitForAnyKey blocks until a key is held down and returns it.
	WaitForAnyKey(ctx context.Context) (keypad.Key, error)
}

// State is the execution state of the machine.
type State int

// Execution states.
const (
	Running State = iota
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// VM is a CHIP-8 machine. All methods except Frames must be called from the
// goroutine that executes the machine.
type VM struct {
	cfg      Config
	logger   *log.Logger
	keyboard Keyboard
	rng      *rand.Rand

	memory *memory.Memory
	stack  *stack.Stack
	screen *display.Framebuffer
	regs   Registers

	frames chan display.Frame
	state  State
	fault  *Fault
}

// New returns a new machine with the font loaded and the program counter
// set to the entry point.
func New(cfg Config, logger *log.Logger, keyboard Keyboard) (*VM, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	v := &VM{
		cfg:      cfg,
		logger:   logger,
		keyboard: keyboard,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
		memory:   memory.New(cfg.MemorySize),
		stack:    stack.New(cfg.StackSize),
		screen:   display.New(cfg.Width, cfg.Height),
		frames:   make(chan display.Frame, cfg.FrameQueue),
	}
	v.regs.PC = cfg.EntryPoint

	if err := v.memory.LoadFont(); err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	return v, nil
}

// Load copies a program into memory at the entry point.
func (v *VM) Load(program []byte) error {
	maxSize := v.cfg.MemorySize - int(v.cfg.EntryPoint)
	if len(program) > maxSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), maxSize)
	}
	if err := v.memory.Load(int(v.cfg.EntryPoint), program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return nil
}

// Frames returns the channel that receives a snapshot of the framebuffer
// after every tick that changed it. Frames are delivered in order, if the
// receiver falls behind the oldest pending frames are dropped.
func (v *VM) Frames() <-chan display.Frame {
	return v.frames
}

// Registers returns a copy of the register file.
func (v *VM) Registers() Registers {
	return v.regs
}

// State returns the execution state.
func (v *VM) State() State {
	return v.state
}

// Run executes ticks until the context is cancelled or a fatal error occurs.
// A cancelled context halts the machine and returns nil, a fatal error is
// returned as *Fault.
func (v *VM) Run(ctx context.Context) error {
	ticker := time.NewTicker(v.cfg.TickPeriod)
	defer ticker.Stop()

	for {
		if err := v.Tick(ctx); err != nil {
			if ctx.Err() != nil || errors.Is(err, keypad.ErrClosed) {
				v.stop()
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			v.stop()
			return nil
		case <-ticker.C:
		}
	}
}

// Tick executes the configured number of instruction cycles, decrements the
// timers and publishes a frame if the framebuffer changed.
func (v *VM) Tick(ctx context.Context) error {
	var err error
	for range v.cfg.CyclesPerTick {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = v.Step(ctx); err != nil {
			break
		}
	}
	if err == nil {
		v.regs.decrementTimers()
	}
	v.publishFrame()
	return err
}

// Step fetches, decodes and executes a single instruction.
// Invalid instructions are skipped unless tracing is enabled, in which case
// they halt the machine like any other fatal error. An interrupted key wait
// returns the context error and leaves the machine at the waiting
// instruction so that it can be resumed.
func (v *VM) Step(ctx context.Context) error {
	if v.state == Halted {
		if v.fault != nil {
			return v.fault
		}
		return ErrHalted
	}

	address := v.regs.PC
	word, err := v.memory.ReadWord(int(address))
	if err != nil {
		return v.halt(address, 0, fmt.Errorf("fetching instruction: %w", err))
	}
	op := opcode(word)
	v.regs.PC += 2

	if v.cfg.Trace {
		v.trace(address, word)
	}

	err = families[op.family()](ctx, v, op)
	switch {
	case err == nil:
		return nil

	case errors.Is(err, ErrInvalidInstruction):
		if v.cfg.Trace {
			return v.halt(address, word, err)
		}
		v.logger.Debug("Skipping invalid instruction",
			log.Hex("address", address),
			log.Hex("opcode", word))
		return nil

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, keypad.ErrClosed):
		v.regs.PC = address
		return err

	default:
		return v.halt(address, word, err)
	}
}

// trace logs an instruction before it is executed.
func (v *VM) trace(address, word uint16) {
	ins, _ := chip8.Decode(word)
	v.logger.Debug("Executing instruction",
		log.Hex("address", address),
		log.Hex("opcode", word),
		log.String("code", chip8.Format(word)),
		log.String("kind", ins.Kind()))
}

func (v *VM) halt(address, word uint16, err error) error {
	v.state = Halted
	v.fault = &Fault{
		Address: address,
		Opcode:  word,
		Err:     err,
	}
	return v.fault
}

func (v *VM) stop() {
	v.state = Halted
	v.logger.Debug("Machine stopped", log.Hex("pc", v.regs.PC))
}

// publishFrame sends a snapshot of a changed framebuffer to the renderer,
// dropping the oldest queued frames until the new one fits.
func (v *VM) publishFrame() {
	frame, ok := v.screen.TakeFrame()
	if !ok {
		return
	}

	for {
		select {
		case v.frames <- frame:
			return
		default:
		}

		select {
		case <-v.frames:
		default:
		}
	}
}
