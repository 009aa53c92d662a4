package vm

// FlagRegister is the index of the register that receives the carry,
// borrow, shift and collision flags.
const FlagRegister = 0xF

// Registers is the register file of the machine.
type Registers struct {
	V     [16]uint8 // general purpose registers V0-VF
	I     uint16    // index register
	PC    uint16    // program counter
	Delay uint8     // delay timer
	Sound uint8     // sound timer
}

func (r *Registers) setFlag(set bool) {
	if set {
		r.V[FlagRegister] = 1
	} else {
		r.V[FlagRegister] = 0
	}
}

// decrementTimers counts both timers down by one until they reach zero.
func (r *Registers) decrementTimers() {
	if r.Delay > 0 {
		r.Delay--
	}
	if r.Sound > 0 {
		r.Sound--
	}
}
