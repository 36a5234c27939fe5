package chart

import "strings"

// Braille canvas for line charts.
//
// Each cell is a braille character holding a 2x4 dot matrix:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 and each dot is one bit of the offset.

const brailleBase = '⠀'

// brailleDots maps [row][col] within a cell to the dot's bit offset.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// Canvas is a grid of braille cells addressed in dots, origin bottom-left.
type Canvas struct {
	width  int
	height int
	dots   [][]uint8
	colors [][]ColorIdentity
}

// NewCanvas creates a canvas of width x height cells.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
		dots:   make([][]uint8, height),
		colors: make([][]ColorIdentity, height),
	}
	for i := range c.dots {
		c.dots[i] = make([]uint8, width)
		c.colors[i] = make([]ColorIdentity, width)
	}
	return c
}

// DotsX returns the horizontal resolution in dots.
func (c *Canvas) DotsX() int { return c.width * 2 }

// DotsY returns the vertical resolution in dots.
func (c *Canvas) DotsY() int { return c.height * 4 }

// Set turns on one dot. Dots outside the canvas are ignored.
// The cell takes the color of the last dot set into it.
func (c *Canvas) Set(x, y int, color ColorIdentity) {
	if x < 0 || y < 0 || x >= c.DotsX() || y >= c.DotsY() {
		return
	}
	row := c.height - 1 - y/4
	col := x / 2
	subRow := 3 - y%4
	c.dots[row][col] |= 1 << brailleDots[subRow][x%2]
	c.colors[row][col] = color
}

// Line draws a straight segment between two dots.
func (c *Canvas) Line(x0, y0, x1, y1 int, color ColorIdentity) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Set(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Row renders one row of cells, top row first. Empty cells are spaces;
// colored cells are wrapped in markers, switching only on color changes.
func (c *Canvas) Row(i int) string {
	var b strings.Builder
	active := Default
	for col, bits := range c.dots[i] {
		if bits == 0 {
			b.WriteByte(' ')
			continue
		}
		if color := c.colors[i][col]; color != active {
			b.WriteString(Marker(color))
			active = color
		}
		b.WriteRune(brailleBase + rune(bits))
	}
	if active != Default {
		b.WriteString(Reset)
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
