package chip8

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		want   *chip8.Instruction
	}{
		{name: "cls", opcode: 0x00E0, want: chip8.ClsInst},
		{name: "ret", opcode: 0x00EE, want: chip8.RetInst},
		{name: "jp", opcode: 0x1234, want: chip8.JpInst},
		{name: "call", opcode: 0x2345, want: chip8.CallInst},
		{name: "draw", opcode: 0xD125, want: chip8.DrwInst},
		{name: "random", opcode: 0xC0FF, want: chip8.RndInst},
		{name: "skip key", opcode: 0xE19E, want: chip8.SkpInst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, ok := Decode(tt.opcode)
			assert.True(t, ok)
			assert.Equal(t, tt.want.Name, ins.Name())
		})
	}
}

func TestInstructionClassification(t *testing.T) {
	jump, _ := Decode(0x1208)
	assert.True(t, jump.IsJump())
	target, ok := jump.Target()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x208), target)

	indirect, _ := Decode(0xB208)
	assert.False(t, indirect.IsJump())
	_, ok = indirect.Target()
	assert.False(t, ok)

	call, _ := Decode(0x2300)
	assert.True(t, call.IsCall())

	ret, _ := Decode(0x00EE)
	assert.True(t, ret.IsReturn())

	skip, _ := Decode(0x3A05)
	assert.True(t, skip.IsSkip())

	load, _ := Decode(0xA2F0)
	assert.True(t, load.IsDataReference())
	target, ok = load.Target()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x2F0), target)

	cls, _ := Decode(0x00E0)
	assert.False(t, cls.IsSkip())
	_, ok = cls.Target()
	assert.False(t, ok)
}

func TestInstructionKind(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		want   string
	}{
		{name: "call", opcode: 0x2300, want: "call"},
		{name: "jump", opcode: 0x1208, want: "jump"},
		{name: "return", opcode: 0x00EE, want: "return"},
		{name: "skip", opcode: 0x3A05, want: "skip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, _ := Decode(tt.opcode)
			kinds := strings.Split(ins.Kind(), ",")
			assert.Equal(t, tt.want, kinds[0])
		})
	}

	invalid, _ := Decode(0xFFFF)
	assert.Equal(t, "", invalid.Kind())

	store, _ := Decode(0xF355)
	assert.Equal(t, store.WritesMemory(), strings.Contains(store.Kind(), "write"))
	load, _ := Decode(0xF365)
	assert.Equal(t, load.ReadsMemory(), strings.Contains(load.Kind(), "read"))
}

func TestOperands(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   string
	}{
		{opcode: 0x00E0, want: ""},
		{opcode: 0x00EE, want: ""},
		{opcode: 0x1208, want: "$208"},
		{opcode: 0x2ABC, want: "$ABC"},
		{opcode: 0x3A05, want: "VA, $05"},
		{opcode: 0x5120, want: "V1, V2"},
		{opcode: 0x6005, want: "V0, $05"},
		{opcode: 0x8124, want: "V1, V2"},
		{opcode: 0x8106, want: "V1"},
		{opcode: 0x810E, want: "V1"},
		{opcode: 0x9AB0, want: "VA, VB"},
		{opcode: 0xA2F0, want: "I, $2F0"},
		{opcode: 0xB300, want: "V0, $300"},
		{opcode: 0xC3F0, want: "V3, $F0"},
		{opcode: 0xD125, want: "V1, V2, $5"},
		{opcode: 0xE5A1, want: "V5"},
		{opcode: 0xF307, want: "V3, DT"},
		{opcode: 0xF30A, want: "V3, K"},
		{opcode: 0xF315, want: "DT, V3"},
		{opcode: 0xF318, want: "ST, V3"},
		{opcode: 0xF31E, want: "I, V3"},
		{opcode: 0xF329, want: "F, V3"},
		{opcode: 0xF333, want: "B, V3"},
		{opcode: 0xF355, want: "[I], V3"},
		{opcode: 0xF365, want: "V3, [I]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Operands(tt.opcode))
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, chip8.ClsName, Format(0x00E0))
	assert.Equal(t, chip8.CallName+" $300", Format(0x2300))
	assert.Equal(t, chip8.DrwName+" V1, V2, $5", Format(0xD125))
	assert.Equal(t, ".word $FFFF", Format(0xFFFF))
}

func TestWriteListing(t *testing.T) {
	code := []byte{
		0x22, 0x06, // call $206
		0x12, 0x00, // jp $200
		0xFF, 0xFF, // no instruction
		0xA2, 0x0A, // ld I, $20A
		0x00, 0xEE, // ret
		0xF0, // trailing byte
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteListing(&buf, code, ProgramStart))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	assert.Equal(t, "Start:", lines[0])
	assert.Contains(t, lines[1], "$0200  2206")
	assert.Contains(t, lines[3], ".word $FFFF")
	assert.Equal(t, "func_206:", lines[4])
	assert.Equal(t, "data_20A:", lines[7])
	assert.Contains(t, lines[9], ".byte $F0")
	assert.Len(t, lines, 10)
}
