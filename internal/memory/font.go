package memory

// FontAddress is the address of the first glyph of the built-in font.
const FontAddress = 0x000

// GlyphSize is the number of bytes of a single font glyph.
const GlyphSize = 5

// Font contains the 16 hexadecimal digit glyphs 0-F, each 4 pixels wide and 5 rows high.
var Font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// LoadFont copies the font glyphs to FontAddress.
func (m *Memory) LoadFont() error {
	return m.Load(FontAddress, Font[:])
}

// GlyphAddress returns the address of the glyph for the given digit.
func GlyphAddress(digit uint8) uint16 {
	return FontAddress + GlyphSize*uint16(digit)
}
