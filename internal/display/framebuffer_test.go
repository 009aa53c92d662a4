package display

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

func TestSetPixel(t *testing.T) {
	fb := New(DefaultWidth, DefaultHeight)
	assert.False(t, fb.Dirty())

	assert.False(t, fb.SetPixel(3, 4))
	assert.True(t, fb.Pixel(3, 4))
	assert.True(t, fb.Dirty())

	assert.True(t, fb.SetPixel(3, 4))
	assert.False(t, fb.Pixel(3, 4))
}

func TestSetPixelWraparound(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want Point
	}{
		{name: "right edge", x: DefaultWidth, y: 0, want: Point{X: 0, Y: 0}},
		{name: "bottom edge", x: 1, y: DefaultHeight + 2, want: Point{X: 1, Y: 2}},
		{name: "both", x: DefaultWidth + 5, y: DefaultHeight*3 + 1, want: Point{X: 5, Y: 1}},
		{name: "byte sized", x: 0xFF, y: 0xFF, want: Point{X: 63, Y: 31}},
		{name: "negative", x: -1, y: -1, want: Point{X: 63, Y: 31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := New(DefaultWidth, DefaultHeight)
			fb.SetPixel(tt.x, tt.y)
			if diff := cmp.Diff([]Point{tt.want}, fb.LitPixels()); diff != "" {
				t.Errorf("lit pixels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClear(t *testing.T) {
	fb := New(DefaultWidth, DefaultHeight)
	fb.SetPixel(0, 0)
	fb.SetPixel(63, 31)
	_, _ = fb.TakeFrame()

	fb.Clear()
	assert.Empty(t, fb.LitPixels())
	assert.True(t, fb.Dirty())
}

func TestTakeFrame(t *testing.T) {
	fb := New(DefaultWidth, DefaultHeight)
	_, ok := fb.TakeFrame()
	assert.False(t, ok)

	fb.SetPixel(10, 2)
	fb.SetPixel(1, 20)

	frame, ok := fb.TakeFrame()
	assert.True(t, ok)
	assert.False(t, fb.Dirty())
	want := Frame{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Pixels: []Point{{X: 10, Y: 2}, {X: 1, Y: 20}},
	}
	if diff := cmp.Diff(want, frame); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}

	// the snapshot does not change with the framebuffer
	fb.SetPixel(10, 2)
	assert.Len(t, frame.Pixels, 2)

	_, ok = fb.TakeFrame()
	assert.True(t, ok)
	_, ok = fb.TakeFrame()
	assert.False(t, ok)
}
