package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/chip8vm/internal/keypad"
)

// keyMap maps host keys to the keypad. The hex keypad layout
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
//
// is mapped to the host keys with the same labels, numpad digits work as well.
var keyMap = map[ebiten.Key]keypad.Key{
	ebiten.KeyDigit0: 0x0,
	ebiten.KeyDigit1: 0x1,
	ebiten.KeyDigit2: 0x2,
	ebiten.KeyDigit3: 0x3,
	ebiten.KeyDigit4: 0x4,
	ebiten.KeyDigit5: 0x5,
	ebiten.KeyDigit6: 0x6,
	ebiten.KeyDigit7: 0x7,
	ebiten.KeyDigit8: 0x8,
	ebiten.KeyDigit9: 0x9,
	ebiten.KeyA:      0xA,
	ebiten.KeyB:      0xB,
	ebiten.KeyC:      0xC,
	ebiten.KeyD:      0xD,
	ebiten.KeyE:      0xE,
	ebiten.KeyF:      0xF,

	ebiten.KeyNumpad0: 0x0,
	ebiten.KeyNumpad1: 0x1,
	ebiten.KeyNumpad2: 0x2,
	ebiten.KeyNumpad3: 0x3,
	ebiten.KeyNumpad4: 0x4,
	ebiten.KeyNumpad5: 0x5,
	ebiten.KeyNumpad6: 0x6,
	ebiten.KeyNumpad7: 0x7,
	ebiten.KeyNumpad8: 0x8,
	ebiten.KeyNumpad9: 0x9,
}
