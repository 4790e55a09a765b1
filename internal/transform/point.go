package transform

import (
	"math"

	"github.com/futurist-future/image-converter/internal/pixel"
)

// pointFunc maps one input pixel to one output pixel. dst arrives as a copy
// of src, so alpha passes through unless the func overwrites it.
type pointFunc func(src, dst pixel.Pixel)

func pointRow(f pointFunc) rowFunc {
	return func(src, dst pixel.Grid, r int) {
		for c, p := range src.Rows[r] {
			out := dst.Rows[r][c]
			copy(out, p)
			f(p, out)
		}
	}
}

func greyscale(src, dst pixel.Pixel) {
	sum := int(src[pixel.Blue]) + int(src[pixel.Green]) + int(src[pixel.Red])
	avg := byte(math.Round(float64(sum) / 3))
	dst[pixel.Blue], dst[pixel.Green], dst[pixel.Red] = avg, avg, avg
}

func sepia(src, dst pixel.Pixel) {
	r := float64(src[pixel.Red])
	g := float64(src[pixel.Green])
	b := float64(src[pixel.Blue])
	dst[pixel.Red] = roundClamp(.393*r + .769*g + .189*b)
	dst[pixel.Green] = roundClamp(.349*r + .686*g + .168*b)
	dst[pixel.Blue] = roundClamp(.272*r + .534*g + .131*b)
}

func invert(src, dst pixel.Pixel) {
	dst[pixel.Blue] = 255 - src[pixel.Blue]
	dst[pixel.Green] = 255 - src[pixel.Green]
	dst[pixel.Red] = 255 - src[pixel.Red]
}

// roundClamp rounds to the nearest integer and clamps to [0,255].
func roundClamp(v float64) byte {
	v = math.Round(v)
	switch {
	case v > 255:
		return 255
	case v < 0:
		return 0
	}
	return byte(v)
}
