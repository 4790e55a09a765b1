// Package bmptest builds small bitmap buffers for tests.
package bmptest

import (
	"encoding/binary"

	"github.com/futurist-future/image-converter/internal/pixel"
)

// HeaderLen is the BITMAPFILEHEADER + BITMAPINFOHEADER size written by Build.
const HeaderLen = 14 + 40

// Build returns a BI_RGB bitmap of the given size and depth whose pixel at
// (row, col) in stored order is fill(row, col). Rows are not padded.
func Build(width, height, bitDepth int, fill func(row, col int) pixel.Pixel) []byte {
	bpp := bitDepth / 8
	body := width * height * bpp
	buf := make([]byte, HeaderLen, HeaderLen+body)
	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[2:], uint32(HeaderLen+body))
	binary.LittleEndian.PutUint32(buf[10:], HeaderLen)
	binary.LittleEndian.PutUint32(buf[14:], 40)
	binary.LittleEndian.PutUint32(buf[18:], uint32(width))
	binary.LittleEndian.PutUint32(buf[22:], uint32(height))
	binary.LittleEndian.PutUint16(buf[26:], 1)
	binary.LittleEndian.PutUint16(buf[28:], uint16(bitDepth))
	binary.LittleEndian.PutUint32(buf[34:], uint32(body))
	binary.LittleEndian.PutUint32(buf[38:], 2835)
	binary.LittleEndian.PutUint32(buf[42:], 2835)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			p := fill(r, c)
			buf = append(buf, p[:bpp]...)
		}
	}
	return buf
}

// Gradient is a deterministic fill with distinct channels and a varying
// alpha for 32-bit images.
func Gradient(row, col int) pixel.Pixel {
	return pixel.Pixel{
		byte((col * 37) % 256),
		byte((row * 53) % 256),
		byte(((row + col) * 29) % 256),
		byte(64 + (row*7+col*11)%192),
	}
}

// Solid returns a fill that paints every pixel with p.
func Solid(p pixel.Pixel) func(row, col int) pixel.Pixel {
	return func(int, int) pixel.Pixel { return p }
}
