package transform

import (
	"math"

	"github.com/futurist-future/image-converter/internal/pixel"
)

// colorChannels is the number of channels the neighborhood filters compute.
// A fourth (alpha) channel is copied from the source pixel.
const colorChannels = 3

// Sobel kernels indexed [rowOffset+1][colOffset+1].
var (
	sobelX = [3][3]int{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]int{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

func reflectRow(src, dst pixel.Grid, r int) {
	row := src.Rows[r]
	last := len(row) - 1
	for c := range row {
		copy(dst.Rows[r][c], row[last-c])
	}
}

// blurRow averages every color channel over the in-bounds part of the
// (2k+1)x(2k+1) square around each pixel and floors the result.
func blurRow(k int) rowFunc {
	return func(src, dst pixel.Grid, r int) {
		r0, r1 := max(r-k, 0), min(r+k, src.Height-1)
		for c := 0; c < src.Width; c++ {
			c0, c1 := max(c-k, 0), min(c+k, src.Width-1)
			var sum [colorChannels]int
			for rr := r0; rr <= r1; rr++ {
				row := src.Rows[rr]
				for cc := c0; cc <= c1; cc++ {
					p := row[cc]
					sum[0] += int(p[0])
					sum[1] += int(p[1])
					sum[2] += int(p[2])
				}
			}
			count := (r1 - r0 + 1) * (c1 - c0 + 1)
			out := dst.Rows[r][c]
			copy(out, src.Rows[r][c])
			for ch := 0; ch < colorChannels; ch++ {
				out[ch] = byte(sum[ch] / count)
			}
		}
	}
}

// edgeRow computes the Sobel gradient magnitude per color channel. Samples
// outside the grid read as zero.
func edgeRow(src, dst pixel.Grid, r int) {
	for c := 0; c < src.Width; c++ {
		var gx, gy [colorChannels]int
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if !src.In(r+dr, c+dc) {
					continue
				}
				p := src.Rows[r+dr][c+dc]
				kx, ky := sobelX[dr+1][dc+1], sobelY[dr+1][dc+1]
				for ch := 0; ch < colorChannels; ch++ {
					gx[ch] += kx * int(p[ch])
					gy[ch] += ky * int(p[ch])
				}
			}
		}
		out := dst.Rows[r][c]
		copy(out, src.Rows[r][c])
		for ch := 0; ch < colorChannels; ch++ {
			mag := math.Floor(math.Sqrt(float64(gx[ch]*gx[ch] + gy[ch]*gy[ch])))
			out[ch] = byte(min(mag, 255))
		}
	}
}
