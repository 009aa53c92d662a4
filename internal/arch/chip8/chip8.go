// Package chip8 provides instruction lookup and mnemonic formatting for
// CHIP-8 instruction words, used for trace output and ROM listings.
package chip8

import (
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// ProgramStart is the memory address where programs are loaded and begin execution.
const ProgramStart = 0x200

// InstructionSize is the size of every instruction in bytes.
const InstructionSize = 2

// Instruction wraps a retrogolib instruction definition together with the
// instruction word it was decoded from.
type Instruction struct {
	ins    *chip8.Instruction
	opcode uint16
}

// Decode looks up the instruction definition for the given instruction word.
// The second return value is false if the word does not match any instruction.
func Decode(opcode uint16) (Instruction, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value {
			return Instruction{ins: op.Instruction, opcode: opcode}, op.Instruction != nil
		}
	}
	return Instruction{opcode: opcode}, false
}

// Name returns the instruction mnemonic.
func (i Instruction) Name() string {
	if i.ins == nil {
		return ""
	}
	return i.ins.Name
}

// IsCall returns true if the instruction is a subroutine call.
func (i Instruction) IsCall() bool {
	return i.ins == chip8.CallInst
}

// IsJump returns true for absolute jumps. Jumps relative to V0 are excluded
// as their target is not known statically.
func (i Instruction) IsJump() bool {
	return i.ins == chip8.JpInst && i.opcode&0xF000 == 0x1000
}

// IsReturn returns true if the instruction returns from a subroutine.
func (i Instruction) IsReturn() bool {
	return i.ins == chip8.RetInst
}

// IsSkip returns true if the instruction conditionally skips the next instruction.
func (i Instruction) IsSkip() bool {
	if i.ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(i.ins.Name)
}

// IsDataReference returns true for instructions that load an address into I.
func (i Instruction) IsDataReference() bool {
	return i.ins == chip8.LdInst && i.opcode&0xF000 == 0xA000
}

// ReadsMemory returns true if executing the instruction reads from memory.
func (i Instruction) ReadsMemory() bool {
	if i.ins == nil {
		return false
	}
	return chip8.MemoryReadInstructions.Contains(i.ins.Name)
}

// WritesMemory returns true if executing the instruction writes to memory.
func (i Instruction) WritesMemory() bool {
	if i.ins == nil {
		return false
	}
	return chip8.MemoryWriteInstructions.Contains(i.ins.Name)
}

// Kind returns the comma separated control flow and memory access
// properties of the instruction, for example "skip" or "read,write".
func (i Instruction) Kind() string {
	var kinds []string
	switch {
	case i.IsCall():
		kinds = append(kinds, "call")
	case i.IsJump():
		kinds = append(kinds, "jump")
	case i.IsReturn():
		kinds = append(kinds, "return")
	case i.IsSkip():
		kinds = append(kinds, "skip")
	}
	if i.ReadsMemory() {
		kinds = append(kinds, "read")
	}
	if i.WritesMemory() {
		kinds = append(kinds, "write")
	}
	return strings.Join(kinds, ",")
}

// Target returns the 12 bit address operand of jumps, calls and I loads.
func (i Instruction) Target() (uint16, bool) {
	if !i.IsJump() && !i.IsCall() && !i.IsDataReference() {
		return 0, false
	}
	return i.opcode & 0x0FFF, true
}

// extractRegisterX extracts the X register nibble from an instruction word.
func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from an instruction word.
func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
