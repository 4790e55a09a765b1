package encoder

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/futurist-future/image-converter/internal/bmp"
	"github.com/futurist-future/image-converter/internal/pixel"
)

// Encoder renders a preview image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "png", "jpeg", "bmp").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	// Lossless encoders ignore quality.
	Encode(img image.Image, quality int) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}

// Preview converts a grid to a top-down image, downscaled to width when
// width is positive and smaller than the grid. Aspect ratio is kept.
func Preview(g pixel.Grid, width int) image.Image {
	img := bmp.GridNRGBA(g)
	if width <= 0 || width >= g.Width {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}
