// Package chip8 provides instruction decoding helpers for the CHIP-8 architecture.
//
// # Instruction Set
//
// CHIP-8 has a simple instruction set with 35 opcodes:
//   - All instructions are 2 bytes (16 bits), stored big endian
//   - The top nibble selects the instruction family
//   - Operands are encoded as register nibbles (x, y), a byte (kk),
//     a nibble (n) or a 12 bit address (nnn)
//
// # Memory Layout
//
// CHIP-8 systems have 4KB of memory (0x000-0xFFF), the range of a 12 bit
// address operand:
//   - 0x000-0x04F: Built-in hexadecimal font glyphs
//   - 0x050-0x1FF: Unused interpreter area
//   - 0x200-0xFFF: Program and data area, programs start at ProgramStart
//
// # Usage Example
//
//	ins, ok := chip8.Decode(0x2345)
//	if ok && ins.IsCall() {
//		target, _ := ins.Target()
//		fmt.Printf("call to $%03X\n", target)
//	}
//
//	fmt.Println(chip8.Format(0xD125)) // drw V1, V2, $5
//
// The instruction definitions are taken from the retrogolib CHIP-8 opcode
// table, this package adds operand formatting and program listings on top.
package chip8
