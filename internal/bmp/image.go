package bmp

import (
	"image"
	"image/color"

	"github.com/futurist-future/image-converter/internal/pixel"
)

// NRGBA renders the grid as a top-down image. Stored rows are bottom-up, so
// grid row 0 lands on the last image row. A 32-bit grid whose alpha bytes
// are all zero is treated as opaque, matching how most viewers read
// BI_RGB 32-bit files.
func (img *Image) NRGBA() *image.NRGBA {
	return GridNRGBA(img.Grid)
}

// GridNRGBA is NRGBA for a bare grid.
func GridNRGBA(g pixel.Grid) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	useAlpha := g.HasAlpha() && !alphaUnused(g)
	for r, row := range g.Rows {
		y := g.Height - 1 - r
		for x, p := range row {
			a := uint8(255)
			if useAlpha {
				a = p[pixel.Alpha]
			}
			out.SetNRGBA(x, y, color.NRGBA{R: p[pixel.Red], G: p[pixel.Green], B: p[pixel.Blue], A: a})
		}
	}
	return out
}

func alphaUnused(g pixel.Grid) bool {
	for _, row := range g.Rows {
		for _, p := range row {
			if p[pixel.Alpha] != 0 {
				return false
			}
		}
	}
	return true
}
