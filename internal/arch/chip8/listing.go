package chip8

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/set"
)

// labels contains the addresses that are referenced by control flow or
// data reference instructions of a program.
type labels struct {
	functions set.Set[uint16]
	jumps     set.Set[uint16]
	data      set.Set[uint16]
}

func collectLabels(code []byte) labels {
	l := labels{
		functions: set.New[uint16](),
		jumps:     set.New[uint16](),
		data:      set.New[uint16](),
	}

	for i := 0; i+1 < len(code); i += InstructionSize {
		ins, ok := Decode(uint16(code[i])<<8 | uint16(code[i+1]))
		if !ok {
			continue
		}
		target, ok := ins.Target()
		if !ok {
			continue
		}

		switch {
		case ins.IsCall():
			l.functions.Add(target)
		case ins.IsJump():
			l.jumps.Add(target)
		default:
			l.data.Add(target)
		}
	}
	return l
}

// name returns the label of an address, or an empty string if the
// address is not referenced.
func (l labels) name(address, base uint16) string {
	switch {
	case address == base:
		return "Start"
	case l.functions.Contains(address):
		return fmt.Sprintf("func_%03X", address)
	case l.jumps.Contains(address):
		return fmt.Sprintf("label_%03X", address)
	case l.data.Contains(address):
		return fmt.Sprintf("data_%03X", address)
	}
	return ""
}

// WriteListing writes a disassembly listing of the program code, which is
// located at the base address in memory. Every word is decoded as an
// instruction, referenced addresses get a label line.
func WriteListing(w io.Writer, code []byte, base uint16) error {
	l := collectLabels(code)

	for i := 0; i < len(code); i += InstructionSize {
		address := base + uint16(i)
		if name := l.name(address, base); name != "" {
			if _, err := fmt.Fprintf(w, "%s:\n", name); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		var line string
		if i+1 < len(code) {
			opcode := uint16(code[i])<<8 | uint16(code[i+1])
			line = fmt.Sprintf("  $%04X  %04X  %s\n", address, opcode, Format(opcode))
		} else {
			line = fmt.Sprintf("  $%04X  %02X    .byte $%02X\n", address, code[i], code[i])
		}
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("writing instruction: %w", err)
		}
	}
	return nil
}
