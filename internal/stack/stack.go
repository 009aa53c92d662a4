// Package stack implements the bounded call stack of return addresses.
package stack

import (
	"errors"
	"fmt"
)

// DefaultCapacity is the number of nested subroutine calls a standard machine supports.
const DefaultCapacity = 16

var (
	// ErrOverflow is returned when pushing onto a full stack.
	ErrOverflow = errors.New("stack overflow")
	// ErrUnderflow is returned when popping from an empty stack.
	ErrUnderflow = errors.New("stack underflow")
)

// Stack is a fixed capacity LIFO of 16 bit addresses.
type Stack struct {
	entries  []uint16
	capacity int
}

// New returns an empty stack that holds up to capacity entries.
func New(capacity int) *Stack {
	return &Stack{
		entries:  make([]uint16, 0, capacity),
		capacity: capacity,
	}
}

// Push appends an address to the top of the stack.
func (s *Stack) Push(address uint16) error {
	if len(s.entries) == s.capacity {
		return fmt.Errorf("%w: pushing $%04X with %d entries", ErrOverflow, address, s.capacity)
	}
	s.entries = append(s.entries, address)
	return nil
}

// Pop removes and returns the top address of the stack.
func (s *Stack) Pop() (uint16, error) {
	if len(s.entries) == 0 {
		return 0, ErrUnderflow
	}
	top := len(s.entries) - 1
	address := s.entries[top]
	s.entries = s.entries[:top]
	return address, nil
}

// Len returns the number of entries on the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Capacity returns the maximum number of entries.
func (s *Stack) Capacity() int {
	return s.capacity
}
