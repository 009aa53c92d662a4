package terminal

import (
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/retrogolib/assert"
)

type keyRecorder struct {
	mu       sync.Mutex
	pressed  []keypad.Key
	released []keypad.Key
}

func (r *keyRecorder) Press(key keypad.Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pressed = append(r.pressed, key)
}

func (r *keyRecorder) Release(key keypad.Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released = append(r.released, key)
}

func (r *keyRecorder) releasedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.released)
}

func newTestTerminal(keys KeyReceiver) *Terminal {
	cfg := Config{
		Width:    display.DefaultWidth,
		Height:   display.DefaultHeight,
		HoldTime: 10 * time.Millisecond,
	}
	return New(cfg, keys, make(chan display.Frame))
}

func TestRuneKey(t *testing.T) {
	tests := []struct {
		r    rune
		want keypad.Key
		ok   bool
	}{
		{r: '0', want: 0x0, ok: true},
		{r: '9', want: 0x9, ok: true},
		{r: 'a', want: 0xA, ok: true},
		{r: 'F', want: 0xF, ok: true},
		{r: 'g', ok: false},
		{r: ' ', ok: false},
	}

	for _, tt := range tests {
		key, ok := runeKey(tt.r)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want, key)
	}
}

func TestHandleKey(t *testing.T) {
	keys := &keyRecorder{}
	term := newTestTerminal(keys)

	assert.Nil(t, term.handleKey(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone)))
	assert.NotNil(t, term.handleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
	assert.NotNil(t, term.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))

	keys.mu.Lock()
	assert.Equal(t, []keypad.Key{0xC}, keys.pressed)
	keys.mu.Unlock()

	deadline := time.Now().Add(5 * time.Second)
	for keys.releasedCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	keys.mu.Lock()
	assert.Equal(t, []keypad.Key{0xC}, keys.released)
	keys.mu.Unlock()
}

func TestSetFrame(t *testing.T) {
	term := newTestTerminal(&keyRecorder{})
	term.setFrame(display.Frame{
		Width:  display.DefaultWidth,
		Height: display.DefaultHeight,
		Pixels: []display.Point{{X: 0, Y: 0}, {X: 63, Y: 31}, {X: 64, Y: 0}},
	})

	assert.True(t, term.pixel(0, 0))
	assert.True(t, term.pixel(63, 31))
	assert.False(t, term.pixel(1, 0))
	assert.False(t, term.pixel(64, 0))

	term.setFrame(display.Frame{})
	assert.False(t, term.pixel(0, 0))
}

func TestHalfBlock(t *testing.T) {
	assert.Equal(t, '█', halfBlock(true, true))
	assert.Equal(t, '▀', halfBlock(true, false))
	assert.Equal(t, '▄', halfBlock(false, true))
	assert.Equal(t, ' ', halfBlock(false, false))
}
