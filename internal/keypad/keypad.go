// Package keypad implements the 16 key hexadecimal keypad state that is
// shared between a host input producer and the executing machine.
package keypad

import (
	"context"
	"errors"
	"sync"
)

// KeyCount is the number of keys of the keypad.
const KeyCount = 16

// ErrClosed is returned by WaitForAnyKey after the keypad has been closed.
var ErrClosed = errors.New("keypad closed")

// Key identifies a keypad key 0x0-0xF.
type Key uint8

// Keypad holds the pressed state of all keys. Press and Release are called
// by the input producer, the machine queries the state concurrently.
type Keypad struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pressed [KeyCount]bool
	held    int
	latest  Key
	closed  bool
}

// New returns a keypad with all keys released.
func New() *Keypad {
	k := &Keypad{}
	k.cond = sync.NewCond(&k.mu)
	return k
}

// Press marks a key as held down. Keys outside of the keypad range are ignored.
func (k *Keypad) Press(key Key) {
	if key >= KeyCount {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.pressed[key] {
		k.pressed[key] = true
		k.held++
	}
	k.latest = key
	k.cond.Broadcast()
}

// Release marks a key as released.
func (k *Keypad) Release(key Key) {
	if key >= KeyCount {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if k.pressed[key] {
		k.pressed[key] = false
		k.held--
	}
}

// IsPressed returns whether the key is currently held down.
func (k *Keypad) IsPressed(key Key) bool {
	if key >= KeyCount {
		return false
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pressed[key]
}

// Held returns the number of keys currently held down.
func (k *Keypad) Held() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held
}

// WaitForAnyKey blocks until at least one key is held down and returns the
// most recently pressed key. The returned key is not necessarily still held:
// if key 1 is held while key 2 is pressed and released again, the result is 2.
// It returns early with the context error when the context is done, or
// ErrClosed once the keypad is closed.
func (k *Keypad) WaitForAnyKey(ctx context.Context) (Key, error) {
	stop := context.AfterFunc(ctx, func() {
		k.mu.Lock()
		defer k.mu.Unlock()
		k.cond.Broadcast()
	})
	defer stop()

	k.mu.Lock()
	defer k.mu.Unlock()

	for k.held == 0 {
		if k.closed {
			return 0, ErrClosed
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		k.cond.Wait()
	}
	return k.latest, nil
}

// Close wakes up all waiters, pending and future waits fail with ErrClosed
// while no key is held.
func (k *Keypad) Close() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.closed = true
	k.cond.Broadcast()
}
