// Package window implements a desktop window frontend based on ebiten.
package window

import (
	"context"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/keypad"
)

var fontFace = text.NewGoXFace(bitmapfont.Face)

var (
	colorOn     = color.RGBA{R: 0xE0, G: 0xF8, B: 0xD0, A: 0xFF}
	colorOff    = color.RGBA{R: 0x08, G: 0x18, B: 0x20, A: 0xFF}
	colorStatus = color.RGBA{R: 0xFF, G: 0x40, B: 0x40, A: 0xFF}
)

// KeyReceiver receives the keypad events of the host keyboard.
type KeyReceiver interface {
	Press(key keypad.Key)
	Release(key keypad.Key)
}

// Config contains the window options.
type Config struct {
	Title  string
	Scale  int
	Width  int // screen width in machine pixels
	Height int // screen height in machine pixels
}

// Window renders machine frames into a scaled window and forwards host key
// events to the keypad. It implements ebiten.Game.
type Window struct {
	cfg    Config
	keys   KeyReceiver
	frames <-chan display.Frame
	ctx    context.Context

	image  *ebiten.Image
	pixels []byte
	keyBuf []ebiten.Key

	mu     sync.Mutex
	status string
}

// New returns a new window frontend.
func New(cfg Config, keys KeyReceiver, frames <-chan display.Frame) *Window {
	return &Window{
		cfg:    cfg,
		keys:   keys,
		frames: frames,
		pixels: make([]byte, 4*cfg.Width*cfg.Height),
	}
}

// Run opens the window and blocks until it is closed or the context is done.
// It has to be called from the main goroutine.
func (w *Window) Run(ctx context.Context) error {
	w.ctx = ctx
	w.image = ebiten.NewImage(w.cfg.Width, w.cfg.Height)
	w.render(display.Frame{})

	ebiten.SetWindowSize(w.cfg.Width*w.cfg.Scale, w.cfg.Height*w.cfg.Scale)
	ebiten.SetWindowTitle(w.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGameWithOptions(w, &ebiten.RunGameOptions{}); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Halted shows the error that halted the machine.
func (w *Window) Halted(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = err.Error()
}

// Update processes input and pending frames, it is called by ebiten every tick.
func (w *Window) Update() error {
	if w.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	w.keyBuf = inpututil.AppendJustPressedKeys(w.keyBuf[:0])
	for _, k := range w.keyBuf {
		if key, ok := keyMap[k]; ok {
			w.keys.Press(key)
		}
	}
	w.keyBuf = inpututil.AppendJustReleasedKeys(w.keyBuf[:0])
	for _, k := range w.keyBuf {
		if key, ok := keyMap[k]; ok {
			w.keys.Release(key)
		}
	}

	for {
		select {
		case frame := <-w.frames:
			w.render(frame)
		default:
			return nil
		}
	}
}

// Draw draws the last rendered frame and the status message.
func (w *Window) Draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.cfg.Scale), float64(w.cfg.Scale))
	screen.DrawImage(w.image, op)

	w.mu.Lock()
	status := w.status
	w.mu.Unlock()
	if status == "" {
		return
	}

	textOp := &text.DrawOptions{}
	textOp.GeoM.Translate(4, 4)
	textOp.ColorScale.ScaleWithColor(colorStatus)
	text.Draw(screen, status, fontFace, textOp)
}

// Layout returns the fixed logical screen size.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.cfg.Width * w.cfg.Scale, w.cfg.Height * w.cfg.Scale
}

// render converts the lit pixels of a frame to the RGBA pixel buffer of the screen image.
func (w *Window) render(frame display.Frame) {
	for i := 0; i < len(w.pixels); i += 4 {
		setColor(w.pixels[i:i+4], colorOff)
	}
	for _, p := range frame.Pixels {
		if p.X < 0 || p.X >= w.cfg.Width || p.Y < 0 || p.Y >= w.cfg.Height {
			continue
		}
		i := 4 * (p.Y*w.cfg.Width + p.X)
		setColor(w.pixels[i:i+4], colorOn)
	}
	w.image.WritePixels(w.pixels)
}

func setColor(b []byte, c color.RGBA) {
	b[0], b[1], b[2], b[3] = c.R, c.G, c.B, c.A
}
