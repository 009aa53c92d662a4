// Package display implements the monochrome framebuffer and the frame
// snapshots that are handed to renderers.
package display

// Default screen dimensions in pixels.
const (
	DefaultWidth  = 64
	DefaultHeight = 32
)

// Point is a pixel coordinate in framebuffer grid units.
type Point struct {
	X int
	Y int
}

// Frame is an immutable snapshot of the lit pixels of a framebuffer.
type Frame struct {
	Width  int
	Height int
	Pixels []Point
}

// Framebuffer is a binary pixel grid with wraparound addressing.
// It is not safe for concurrent use, renderers receive Frame copies instead.
type Framebuffer struct {
	width  int
	height int
	pixels []bool
	dirty  bool
}

// New returns a cleared framebuffer of the given dimensions.
func New(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]bool, width*height),
	}
}

// Width returns the width in pixels.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the height in pixels.
func (f *Framebuffer) Height() int {
	return f.height
}

// SetPixel toggles the pixel at the given position, with both coordinates
// reduced modulo the framebuffer dimensions. It returns whether the pixel
// was lit before the toggle.
func (f *Framebuffer) SetPixel(x, y int) bool {
	i := f.index(x, y)
	wasOn := f.pixels[i]
	f.pixels[i] = !wasOn
	f.dirty = true
	return wasOn
}

// Pixel returns whether the pixel at the given wrapped position is lit.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f.pixels[f.index(x, y)]
}

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	clear(f.pixels)
	f.dirty = true
}

// LitPixels returns the coordinates of all lit pixels in row major order.
func (f *Framebuffer) LitPixels() []Point {
	var points []Point
	for i, on := range f.pixels {
		if on {
			points = append(points, Point{X: i % f.width, Y: i / f.width})
		}
	}
	return points
}

// Dirty returns whether the framebuffer changed since the last taken frame.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// Snapshot returns the current content as a frame.
func (f *Framebuffer) Snapshot() Frame {
	return Frame{
		Width:  f.width,
		Height: f.height,
		Pixels: f.LitPixels(),
	}
}

// TakeFrame returns a snapshot and resets the dirty flag if the framebuffer
// changed since the last call.
func (f *Framebuffer) TakeFrame() (Frame, bool) {
	if !f.dirty {
		return Frame{}, false
	}
	f.dirty = false
	return f.Snapshot(), true
}

func (f *Framebuffer) index(x, y int) int {
	x %= f.width
	if x < 0 {
		x += f.width
	}
	y %= f.height
	if y < 0 {
		y += f.height
	}
	return y*f.width + x
}
