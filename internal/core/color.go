package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the terminal layer.
type Color uint8

// Palette used by the platformer renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightYellow
	ColorBrightWhite
	ColorOrange
	ColorBrown
	ColorGray
)
