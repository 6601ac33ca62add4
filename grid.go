package asciigif

import (
	"bytes"
	"image"
	"io"
	"math"
)

// Grid is a block of characters, Cols wide and Rows high, stored row by row.
type Grid struct {
	Cols  int
	Rows  int
	cells []byte
}

// GridRows returns how many character rows a source of the given bounds needs
// at cols columns. Characters are taller than they are wide, so scale lets the
// caller squash or stretch the result vertically. There is always at least one row.
func GridRows(cols int, scale float64, bounds image.Rectangle) int {
	if bounds.Dx() == 0 {
		return 1
	}
	rows := int(math.Round(float64(cols) * scale * float64(bounds.Dy()) / float64(bounds.Dx())))
	if rows < 1 {
		return 1
	}
	return rows
}

// newGrid maps every pixel of gray to a ramp character. gray must be exactly
// cols x rows and hold luminance in its red channel.
func newGrid(gray *image.NRGBA, cols, rows int, ramp Ramp) *Grid {
	g := Grid{
		Cols:  cols,
		Rows:  rows,
		cells: make([]byte, 0, cols*rows),
	}
	// Looping over Y first and X second gives row-major order and walks Pix
	// sequentially.
	for y := 0; y < rows; y++ {
		off := y * gray.Stride
		for x := 0; x < cols; x++ {
			g.cells = append(g.cells, ramp.Char(gray.Pix[off+x*4]))
		}
	}
	return &g
}

// Line returns row i of the grid.
func (g *Grid) Line(i int) string {
	return string(g.cells[i*g.Cols : (i+1)*g.Cols])
}

func (g *Grid) Lines() []string {
	lines := make([]string, g.Rows)
	for i := range lines {
		lines[i] = g.Line(i)
	}
	return lines
}

// WriteTo writes the grid as newline terminated rows.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for i := 0; i < g.Rows; i++ {
		m, err := w.Write(g.cells[i*g.Cols : (i+1)*g.Cols])
		n += int64(m)
		if err != nil {
			return n, err
		}
		m, err = w.Write([]byte{'\n'})
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (g *Grid) String() string {
	var buf bytes.Buffer
	g.WriteTo(&buf)
	return buf.String()
}
