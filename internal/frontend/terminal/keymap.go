package terminal

import (
	"github.com/retroenv/chip8vm/internal/keypad"
)

// runeKey maps the hexadecimal digit characters to the keypad key with the same label.
func runeKey(r rune) (keypad.Key, bool) {
	switch {
	case r >= '0' && r <= '9':
		return keypad.Key(r - '0'), true
	case r >= 'a' && r <= 'f':
		return keypad.Key(r - 'a' + 0xA), true
	case r >= 'A' && r <= 'F':
		return keypad.Key(r - 'A' + 0xA), true
	default:
		return 0, false
	}
}
