package vm

import (
	"context"

	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/memory"
)

// operation executes a decoded instruction. The program counter already
// points to the next instruction when it is called. Operations that
// return ErrInvalidInstruction must not have changed any state.
type operation func(ctx context.Context, v *VM, op opcode) error

// families maps the top nibble of an instruction word to its operation.
// Families with sub operations dispatch further on n or kk.
var families = [16]operation{
	0x0: system,
	0x1: jump,
	0x2: call,
	0x3: skipEqualByte,
	0x4: skipNotEqualByte,
	0x5: skipEqualRegister,
	0x6: loadByte,
	0x7: addByte,
	0x8: dispatchOn(arithmeticOps, opcode.n),
	0x9: skipNotEqualRegister,
	0xA: loadIndex,
	0xB: jumpOffset,
	0xC: random,
	0xD: draw,
	0xE: dispatchOn(keyOps, opcode.kk),
	0xF: dispatchOn(miscOps, opcode.kk),
}

// arithmeticOps contains the register operations 8xyN indexed by N.
var arithmeticOps = map[uint8]operation{
	0x0: loadRegister,
	0x1: or,
	0x2: and,
	0x3: xor,
	0x4: addRegister,
	0x5: sub,
	0x6: shiftRight,
	0x7: subReverse,
	0xE: shiftLeft,
}

// keyOps contains the keyboard skip operations ExKK indexed by KK.
var keyOps = map[uint8]operation{
	0x9E: skipKeyPressed,
	0xA1: skipKeyNotPressed,
}

// miscOps contains the timer, keyboard and memory operations FxKK indexed by KK.
var miscOps = map[uint8]operation{
	0x07: loadDelay,
	0x0A: waitKey,
	0x15: setDelay,
	0x18: setSound,
	0x1E: addIndex,
	0x29: loadGlyph,
	0x33: storeBCD,
	0x55: storeRegisters,
	0x65: loadRegisters,
}

// dispatchOn returns an operation that looks up the sub operation using
// the given instruction field.
func dispatchOn(ops map[uint8]operation, field func(opcode) uint8) operation {
	return func(ctx context.Context, v *VM, op opcode) error {
		sub, ok := ops[field(op)]
		if !ok {
			return invalidInstruction(op)
		}
		return sub(ctx, v, op)
	}
}

func (v *VM) skip() {
	v.regs.PC += 2
}

func system(_ context.Context, v *VM, op opcode) error {
	switch op {
	case 0x00E0:
		v.screen.Clear()

	case 0x00EE:
		address, err := v.stack.Pop()
		if err != nil {
			return err
		}
		v.regs.PC = address

	default:
		// 0nnn machine code routines are not supported
	}
	return nil
}

func jump(_ context.Context, v *VM, op opcode) error {
	v.regs.PC = op.nnn()
	return nil
}

func call(_ context.Context, v *VM, op opcode) error {
	if err := v.stack.Push(v.regs.PC); err != nil {
		return err
	}
	v.regs.PC = op.nnn()
	return nil
}

func skipEqualByte(_ context.Context, v *VM, op opcode) error {
	if v.regs.V[op.x()] == op.kk() {
		v.skip()
	}
	return nil
}

func skipNotEqualByte(_ context.Context, v *VM, op opcode) error {
	if v.regs.V[op.x()] != op.kk() {
		v.skip()
	}
	return nil
}

func skipEqualRegister(_ context.Context, v *VM, op opcode) error {
	if op.n() != 0 {
		return invalidInstruction(op)
	}
	if v.regs.V[op.x()] == v.regs.V[op.y()] {
		v.skip()
	}
	return nil
}

func skipNotEqualRegister(_ context.Context, v *VM, op opcode) error {
	if op.n() != 0 {
		return invalidInstruction(op)
	}
	if v.regs.V[op.x()] != v.regs.V[op.y()] {
		v.skip()
	}
	return nil
}

func loadByte(_ context.Context, v *VM, op opcode) error {
	v.regs.V[op.x()] = op.kk()
	return nil
}

func addByte(_ context.Context, v *VM, op opcode) error {
	v.regs.V[op.x()] += op.kk()
	return nil
}

func loadRegister(_ context.Context, v *VM, op opcode) error {
	v.regs.V[op.x()] = v.regs.V[op.y()]
	return nil
}

func or(_ context.Context, v *VM, op opcode) error {
	v.regs.V[op.x()] |= v.regs.V[op.y()]
	return nil
}

func and(_ context.Context, v *VM, op opcode) error {
	v.regs.V[op.x()] &= v.regs.V[op.y()]
	return nil
}

func xor(_ context.Context, v *VM, op opcode) error {
	v.regs.V[op.x()] ^= v.regs.V[op.y()]
	return nil
}

// The flag producing operations read both operands before writing VF, the
// result is written last so that it wins when x is the flag register.

func addRegister(_ context.Context, v *VM, op opcode) error {
	vx, vy := v.regs.V[op.x()], v.regs.V[op.y()]
	sum := uint16(vx) + uint16(vy)
	v.regs.setFlag(sum > 0xFF)
	v.regs.V[op.x()] = uint8(sum)
	return nil
}

func sub(_ context.Context, v *VM, op opcode) error {
	vx, vy := v.regs.V[op.x()], v.regs.V[op.y()]
	v.regs.setFlag(vx > vy)
	v.regs.V[op.x()] = vx - vy
	return nil
}

func subReverse(_ context.Context, v *VM, op opcode) error {
	vx, vy := v.regs.V[op.x()], v.regs.V[op.y()]
	v.regs.setFlag(vy > vx)
	v.regs.V[op.x()] = vy - vx
	return nil
}

func shiftRight(_ context.Context, v *VM, op opcode) error {
	vx := v.regs.V[op.x()]
	v.regs.V[FlagRegister] = vx & 0x01
	v.regs.V[op.x()] = vx >> 1
	return nil
}

func shiftLeft(_ context.Context, v *VM, op opcode) error {
	vx := v.regs.V[op.x()]
	v.regs.V[FlagRegister] = vx >> 7
	v.regs.V[op.x()] = vx << 1
	return nil
}

func loadIndex(_ context.Context, v *VM, op opcode) error {
	v.regs.I = op.nnn()
	return nil
}

func jumpOffset(_ context.Context, v *VM, op opcode) error {
	v.regs.PC = op.nnn() + uint16(v.regs.V[0])
	return nil
}

func random(_ context.Context, v *VM, op opcode) error {
	v.regs.V[op.x()] = uint8(v.rng.IntN(256)) & op.kk()
	return nil
}

func draw(_ context.Context, v *VM, op opcode) error {
	sprite, err := v.memory.Slice(int(v.regs.I), int(op.n()))
	if err != nil {
		return err
	}

	x, y := int(v.regs.V[op.x()]), int(v.regs.V[op.y()])
	collision := false
	for row, bits := range sprite {
		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}
			if v.screen.SetPixel(x+col, y+row) {
				collision = true
			}
		}
	}
	v.regs.setFlag(collision)
	return nil
}

func skipKeyPressed(_ context.Context, v *VM, op opcode) error {
	if v.keyboard.IsPressed(keypad.Key(v.regs.V[op.x()])) {
		v.skip()
	}
	return nil
}

func skipKeyNotPressed(_ context.Context, v *VM, op opcode) error {
	if !v.keyboard.IsPressed(keypad.Key(v.regs.V[op.x()])) {
		v.skip()
	}
	return nil
}

func loadDelay(_ context.Context, v *VM, op opcode) error {
	v.regs.V[op.x()] = v.regs.Delay
	return nil
}

func waitKey(ctx context.Context, v *VM, op opcode) error {
	// the screen drawn so far has to be visible while waiting
	v.publishFrame()

	key, err := v.keyboard.WaitForAnyKey(ctx)
	if err != nil {
		return err
	}
	v.regs.V[op.x()] = uint8(key)
	return nil
}

func setDelay(_ context.Context, v *VM, op opcode) error {
	v.regs.Delay = v.regs.V[op.x()]
	return nil
}

func setSound(_ context.Context, v *VM, op opcode) error {
	v.regs.Sound = v.regs.V[op.x()]
	return nil
}

func addIndex(_ context.Context, v *VM, op opcode) error {
	v.regs.I += uint16(v.regs.V[op.x()])
	return nil
}

func loadGlyph(_ context.Context, v *VM, op opcode) error {
	v.regs.I = memory.GlyphAddress(v.regs.V[op.x()])
	return nil
}

func storeBCD(_ context.Context, v *VM, op opcode) error {
	vx := v.regs.V[op.x()]
	digits := []byte{vx / 100, vx / 10 % 10, vx % 10}
	return v.memory.Load(int(v.regs.I), digits)
}

func storeRegisters(_ context.Context, v *VM, op opcode) error {
	return v.memory.Load(int(v.regs.I), v.regs.V[:op.x()+1])
}

func loadRegisters(_ context.Context, v *VM, op opcode) error {
	values, err := v.memory.Slice(int(v.regs.I), int(op.x())+1)
	if err != nil {
		return err
	}
	copy(v.regs.V[:], values)
	return nil
}
