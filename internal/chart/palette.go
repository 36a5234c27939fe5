package chart

import "fmt"

// ColorIdentity tags text with a foreground color without committing to
// a concrete terminal color. Values are SGR foreground codes.
type ColorIdentity int

// Recognized color identities.
const (
	Default ColorIdentity = 0

	Black   ColorIdentity = 30
	Red     ColorIdentity = 31
	Green   ColorIdentity = 32
	Yellow  ColorIdentity = 33
	Blue    ColorIdentity = 34
	Magenta ColorIdentity = 35
	Cyan    ColorIdentity = 36
	White   ColorIdentity = 37

	BrightBlack   ColorIdentity = 90
	BrightRed     ColorIdentity = 91
	BrightGreen   ColorIdentity = 92
	BrightYellow  ColorIdentity = 93
	BrightBlue    ColorIdentity = 94
	BrightMagenta ColorIdentity = 95
	BrightCyan    ColorIdentity = 96
	BrightWhite   ColorIdentity = 97
)

// Reset ends a colored run.
const Reset = "\x1b[0m"

// Palette is the series color cycle.
var Palette = []ColorIdentity{
	BrightCyan,
	BrightYellow,
	BrightMagenta,
	BrightGreen,
	BrightBlue,
	BrightRed,
	BrightWhite,
}

// ColorFor returns the palette color for the i-th series.
func ColorFor(palette []ColorIdentity, i int) ColorIdentity {
	if len(palette) == 0 {
		return Default
	}
	return palette[i%len(palette)]
}

// Valid reports whether c is one of the recognized identities.
func (c ColorIdentity) Valid() bool {
	return c == Default || (c >= Black && c <= White) || (c >= BrightBlack && c <= BrightWhite)
}

// Index returns the 16-color terminal index, or -1 for Default.
func (c ColorIdentity) Index() int {
	switch {
	case c >= Black && c <= White:
		return int(c - Black)
	case c >= BrightBlack && c <= BrightWhite:
		return int(c-BrightBlack) + 8
	}
	return -1
}

// Marker returns the escape sequence that switches to c.
func Marker(c ColorIdentity) string {
	if c == Default {
		return Reset
	}
	return fmt.Sprintf("\x1b[%dm", int(c))
}
