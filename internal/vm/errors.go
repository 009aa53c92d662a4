package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInstruction is returned for instruction words that do not
	// match any operation, or that use a malformed operand pattern.
	ErrInvalidInstruction = errors.New("invalid instruction")

	// ErrHalted is returned when stepping a machine that is no longer running.
	ErrHalted = errors.New("machine halted")

	// ErrProgramTooLarge is returned when a program does not fit into memory
	// above the entry point.
	ErrProgramTooLarge = errors.New("program too large")
)

// Fault is a fatal machine error, it records the address and instruction
// word that caused it. The error kind is available through errors.Is on the
// wrapped error, for example stack.ErrOverflow or memory.ErrOutOfBounds.
type Fault struct {
	Address uint16
	Opcode  uint16
	Err     error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at $%04X executing %04X: %v", f.Address, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func invalidInstruction(op opcode) error {
	return fmt.Errorf("%w: %04X", ErrInvalidInstruction, uint16(op))
}
