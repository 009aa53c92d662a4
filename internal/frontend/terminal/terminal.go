// Package terminal implements a text terminal frontend based on tview and tcell.
// Two machine pixel rows are drawn per terminal cell using half block characters.
package terminal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/rivo/tview"
)

// DefaultHoldTime is the duration a key stays pressed after a key event.
// Terminals report key presses only, releases are simulated.
const DefaultHoldTime = 150 * time.Millisecond

// KeyReceiver receives the keypad events of the host keyboard.
type KeyReceiver interface {
	Press(key keypad.Key)
	Release(key keypad.Key)
}

// Config contains the terminal options.
type Config struct {
	Title    string
	Width    int // screen width in machine pixels
	Height   int // screen height in machine pixels
	HoldTime time.Duration
}

// Terminal renders machine frames into a terminal and forwards key events
// to the keypad.
type Terminal struct {
	cfg    Config
	keys   KeyReceiver
	frames <-chan display.Frame

	app     *tview.Application
	screen  *tview.Box
	status  *tview.TextView
	refresh chan struct{}

	mu       sync.Mutex
	pixels   []bool
	halted   string
	releases [keypad.KeyCount]*time.Timer
}

// New returns a new terminal frontend.
func New(cfg Config, keys KeyReceiver, frames <-chan display.Frame) *Terminal {
	if cfg.HoldTime <= 0 {
		cfg.HoldTime = DefaultHoldTime
	}

	t := &Terminal{
		cfg:     cfg,
		keys:    keys,
		frames:  frames,
		app:     tview.NewApplication(),
		refresh: make(chan struct{}, 1),
		pixels:  make([]bool, cfg.Width*cfg.Height),
	}

	t.screen = tview.NewBox()
	t.screen.SetBorder(true).SetTitle(cfg.Title)
	t.screen.SetDrawFunc(t.drawScreen)

	t.status = tview.NewTextView().SetDynamicColors(true)
	t.status.SetText(statusHelp)

	return t
}

const statusHelp = "keys [yellow]0-9 A-F[-] press the keypad keys, [yellow]Esc[-] quits"

// Run shows the terminal UI and blocks until the user quits or the context is done.
func (t *Terminal) Run(ctx context.Context) error {
	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.screen, t.cfg.Height/2+2, 0, true).
		AddItem(t.status, 1, 0, false)

	t.app.SetInputCapture(t.handleKey)
	t.app.SetRoot(layout, true)

	done := make(chan struct{})
	defer close(done)
	go t.update(ctx, done)

	if err := t.app.Run(); err != nil {
		return fmt.Errorf("running terminal: %w", err)
	}
	return nil
}

// Halted shows the error that halted the machine.
func (t *Terminal) Halted(err error) {
	t.mu.Lock()
	t.halted = err.Error()
	t.mu.Unlock()

	select {
	case t.refresh <- struct{}{}:
	default:
	}
}

// update applies received frames and status changes to the UI until the
// UI has stopped.
func (t *Terminal) update(ctx context.Context, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return

		case <-ctx.Done():
			t.app.Stop()
			return

		case frame := <-t.frames:
			t.setFrame(frame)
			t.app.Draw()

		case <-t.refresh:
			t.mu.Lock()
			halted := t.halted
			t.mu.Unlock()
			t.app.QueueUpdateDraw(func() {
				t.status.SetText("[red]" + tview.Escape(halted) + "[-], press [yellow]Esc[-] to quit")
			})
		}
	}
}

// setFrame replaces the pixel state with the content of a frame.
func (t *Terminal) setFrame(frame display.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.pixels)
	for _, p := range frame.Pixels {
		if p.X < 0 || p.X >= t.cfg.Width || p.Y < 0 || p.Y >= t.cfg.Height {
			continue
		}
		t.pixels[p.Y*t.cfg.Width+p.X] = true
	}
}

// pixel returns whether the pixel is lit, positions outside of the screen are unlit.
// The caller has to hold the lock.
func (t *Terminal) pixel(x, y int) bool {
	if x >= t.cfg.Width || y >= t.cfg.Height {
		return false
	}
	return t.pixels[y*t.cfg.Width+x]
}

func (t *Terminal) drawScreen(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	innerX, innerY, innerWidth, innerHeight := x+1, y+1, width-2, height-2
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	t.mu.Lock()
	defer t.mu.Unlock()

	for row := 0; row < innerHeight && 2*row < t.cfg.Height; row++ {
		for col := 0; col < innerWidth && col < t.cfg.Width; col++ {
			top, bottom := t.pixel(col, 2*row), t.pixel(col, 2*row+1)
			screen.SetContent(innerX+col, innerY+row, halfBlock(top, bottom), nil, style)
		}
	}
	return innerX, innerY, innerWidth, innerHeight
}

// halfBlock returns the character that shows two vertically stacked pixels.
func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

func (t *Terminal) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.app.Stop()
		return nil

	case tcell.KeyRune:
		if key, ok := runeKey(event.Rune()); ok {
			t.press(key)
			return nil
		}
	}
	return event
}

// press presses a key and schedules its release, repeated key events of a
// held key extend the hold time.
func (t *Terminal) press(key keypad.Key) {
	t.keys.Press(key)

	t.mu.Lock()
	defer t.mu.Unlock()

	if timer := t.releases[key]; timer != nil {
		timer.Reset(t.cfg.HoldTime)
		return
	}
	t.releases[key] = time.AfterFunc(t.cfg.HoldTime, func() {
		t.keys.Release(key)
	})
}
