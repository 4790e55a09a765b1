// Package pixel defines the addressable pixel grid shared by the BMP codec
// and the transforms.
package pixel

import "fmt"

// Channel indexes inside a Pixel, in BMP storage order.
const (
	Blue  = 0
	Green = 1
	Red   = 2
	Alpha = 3
)

// Pixel is one pixel's channel bytes in stored order (BGR or BGRA).
type Pixel []byte

// Grid is height rows of width pixels, each BytesPerPixel long. Row 0 is the
// first row stored in the file.
type Grid struct {
	Width         int
	Height        int
	BytesPerPixel int
	Rows          [][]Pixel
}

// InvalidInputError reports a grid that breaks its own shape invariants.
type InvalidInputError string

func (e InvalidInputError) Error() string { return "pixel: invalid input: " + string(e) }

// New allocates a zeroed grid backed by a single buffer.
func New(width, height, bytesPerPixel int) Grid {
	buf := make([]byte, width*height*bytesPerPixel)
	rows := make([][]Pixel, height)
	for r := range rows {
		row := make([]Pixel, width)
		for c := range row {
			off := (r*width + c) * bytesPerPixel
			row[c] = Pixel(buf[off : off+bytesPerPixel : off+bytesPerPixel])
		}
		rows[r] = row
	}
	return Grid{Width: width, Height: height, BytesPerPixel: bytesPerPixel, Rows: rows}
}

// Validate checks that g is non-empty and that every row has Width pixels of
// BytesPerPixel channels.
func (g Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 || len(g.Rows) == 0 {
		return InvalidInputError(fmt.Sprintf("empty grid %dx%d", g.Width, g.Height))
	}
	if g.BytesPerPixel != 3 && g.BytesPerPixel != 4 {
		return InvalidInputError(fmt.Sprintf("unsupported %d bytes per pixel", g.BytesPerPixel))
	}
	if len(g.Rows) != g.Height {
		return InvalidInputError(fmt.Sprintf("grid has %d rows, want %d", len(g.Rows), g.Height))
	}
	for r, row := range g.Rows {
		if len(row) != g.Width {
			return InvalidInputError(fmt.Sprintf("row %d has %d pixels, want %d", r, len(row), g.Width))
		}
		for c, p := range row {
			if len(p) != g.BytesPerPixel {
				return InvalidInputError(fmt.Sprintf("pixel (%d,%d) has %d channels, want %d",
					r, c, len(p), g.BytesPerPixel))
			}
		}
	}
	return nil
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	out := New(g.Width, g.Height, g.BytesPerPixel)
	for r, row := range g.Rows {
		for c, p := range row {
			copy(out.Rows[r][c], p)
		}
	}
	return out
}

// HasAlpha reports whether pixels carry an alpha channel.
func (g Grid) HasAlpha() bool { return g.BytesPerPixel == 4 }

// At returns the pixel at (row, col).
func (g Grid) At(row, col int) Pixel { return g.Rows[row][col] }

// In reports whether (row, col) lies inside the grid.
func (g Grid) In(row, col int) bool {
	return row >= 0 && row < g.Height && col >= 0 && col < g.Width
}

// Bytes flattens the grid row-major, pixel-major, channel-major.
func (g Grid) Bytes() []byte {
	out := make([]byte, 0, g.Width*g.Height*g.BytesPerPixel)
	for _, row := range g.Rows {
		for _, p := range row {
			out = append(out, p...)
		}
	}
	return out
}
