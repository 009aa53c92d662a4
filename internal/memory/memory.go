// Package memory provides the flat addressable byte store of the machine.
package memory

import (
	"errors"
	"fmt"
)

// DefaultSize is the size of the address space of a standard machine.
const DefaultSize = 0x1000

// ErrOutOfBounds is returned for any access outside of the allocated memory.
var ErrOutOfBounds = errors.New("memory access out of bounds")

// Memory is a bounds checked byte array.
type Memory struct {
	data []byte
}

// New returns a zeroed memory of the given size.
func New(size int) *Memory {
	return &Memory{
		data: make([]byte, size),
	}
}

// Size returns the number of addressable bytes.
func (m *Memory) Size() int {
	return len(m.data)
}

// Read returns the byte stored at the given address.
func (m *Memory) Read(address int) (byte, error) {
	if err := m.check(address, 1); err != nil {
		return 0, err
	}
	return m.data[address], nil
}

// Write stores a byte at the given address.
func (m *Memory) Write(address int, value byte) error {
	if err := m.check(address, 1); err != nil {
		return err
	}
	m.data[address] = value
	return nil
}

// ReadWord returns the big endian 16 bit word stored at address and address+1.
func (m *Memory) ReadWord(address int) (uint16, error) {
	if err := m.check(address, 2); err != nil {
		return 0, err
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// Load copies a block of data into memory starting at the given address.
// Nothing is written if the block does not fit completely.
func (m *Memory) Load(address int, data []byte) error {
	if err := m.check(address, len(data)); err != nil {
		return err
	}
	copy(m.data[address:], data)
	return nil
}

// Slice returns a copy of length bytes starting at the given address.
func (m *Memory) Slice(address, length int) ([]byte, error) {
	if err := m.check(address, length); err != nil {
		return nil, err
	}
	b := make([]byte, length)
	copy(b, m.data[address:])
	return b, nil
}

func (m *Memory) check(address, length int) error {
	if address < 0 || length < 0 || address+length > len(m.data) {
		return fmt.Errorf("%w: address $%04X length %d, size $%04X",
			ErrOutOfBounds, address, length, len(m.data))
	}
	return nil
}
