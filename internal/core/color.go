package core

// Color is a foreground colour for a screen cell. The platform maps each
// value to an ANSI 256-colour code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorBrightWhite
	ColorYellow
	ColorBrightYellow
	ColorOrange
	ColorRed
	ColorBrightRed
	ColorMagenta
	ColorBrightMagenta
	ColorGreen
	ColorBrightGreen
	ColorCyan
	ColorBrightCyan
	ColorBlue
	ColorBrightBlue
)

// tileColors walks up the palette as tile values grow.
var tileColors = []Color{
	ColorWhite,         // 2
	ColorBrightWhite,   // 4
	ColorYellow,        // 8
	ColorOrange,        // 16
	ColorRed,           // 32
	ColorBrightRed,     // 64
	ColorBrightYellow,  // 128
	ColorGreen,         // 256
	ColorBrightGreen,   // 512
	ColorCyan,          // 1024
	ColorBrightMagenta, // 2048
}

// TileColor returns the colour for a tile value. Values past the palette use
// blue; empty cells are gray.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorGray
	}
	idx := -1
	for v := value; v > 1; v >>= 1 {
		idx++
	}
	if idx < 0 {
		return ColorWhite
	}
	if idx >= len(tileColors) {
		return ColorBrightBlue
	}
	return tileColors[idx]
}
