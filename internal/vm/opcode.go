package vm

// opcode is a fetched 16 bit instruction word.
type opcode uint16

// family returns the top nibble that selects the instruction group.
func (o opcode) family() uint8 {
	return uint8(o >> 12)
}

// x returns the second nibble, a register index.
func (o opcode) x() uint8 {
	return uint8(o>>8) & 0x0F
}

// y returns the third nibble, a register index.
func (o opcode) y() uint8 {
	return uint8(o>>4) & 0x0F
}

// n returns the bottom nibble.
func (o opcode) n() uint8 {
	return uint8(o) & 0x0F
}

// kk returns the bottom byte.
func (o opcode) kk() uint8 {
	return uint8(o)
}

// nnn returns the bottom 12 bits, an address.
func (o opcode) nnn() uint16 {
	return uint16(o) & 0x0FFF
}
