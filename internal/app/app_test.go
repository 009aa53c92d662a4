package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/stack"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestRunDisassemble(t *testing.T) {
	var buf bytes.Buffer
	oldOutput := Output
	t.Cleanup(func() { Output = oldOutput })
	Output = &buf

	opts := testOptions(t, "game.ch8", []byte{0x60, 0x05, 0x12, 0x00})
	opts.Disassemble = true

	err := Run(t.Context(), log.NewTestLogger(t), opts, nil)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Start:")
	assert.Contains(t, buf.String(), "$0202  1200")
}

func TestRunUnsupportedFile(t *testing.T) {
	opts := testOptions(t, "notes.txt", []byte{0x00, 0xE0})

	err := Run(t.Context(), log.NewTestLogger(t), opts, nil)
	assert.True(t, errors.Is(err, detector.ErrUnsupportedFile))
}

func TestRunHeadless(t *testing.T) {
	logger := log.NewTestLogger(t)
	// ld I, $000; drw V0, V0, 5; jp $204
	opts := testOptions(t, "zero.ch8", []byte{0xA0, 0x00, 0xD0, 0x05, 0x12, 0x04})

	var fe *Headless
	factory := func(_ options.Program, _ *keypad.Keypad, frames <-chan display.Frame) (Frontend, error) {
		fe = NewHeadless(logger, frames)
		return fe, nil
	}

	ctx, cancel := context.WithTimeout(t.Context(), 200*time.Millisecond)
	defer cancel()

	err := Run(ctx, logger, opts, factory)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	count, frame := fe.Frames()
	assert.Equal(t, 1, count)
	assert.Len(t, frame.Pixels, 14)
}

func TestRunFault(t *testing.T) {
	logger := log.NewTestLogger(t)
	// ret without a call
	opts := testOptions(t, "fault.ch8", []byte{0x00, 0xEE})

	factory := func(_ options.Program, _ *keypad.Keypad, frames <-chan display.Frame) (Frontend, error) {
		return NewHeadless(logger, frames), nil
	}

	err := Run(t.Context(), logger, opts, factory)
	assert.True(t, errors.Is(err, stack.ErrUnderflow))

	var fault *vm.Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x200), fault.Address)
	assert.Equal(t, uint16(0x00EE), fault.Opcode)
}

func TestTitle(t *testing.T) {
	opts := options.Program{Parameters: options.Parameters{Input: filepath.Join("roms", "pong.ch8")}}
	assert.Equal(t, "chip8vm - pong.ch8", Title(opts))
}

func testOptions(t *testing.T, name string, rom []byte) options.Program {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, rom, 0o600))

	return options.Program{
		Parameters:   options.Parameters{Input: path},
		Flags:        options.Flags{Frontend: options.FrontendHeadless, Quiet: true},
		MachineFlags: options.MachineFlags{Cycles: 10, Rate: 1000, Scale: 1},
	}
}
