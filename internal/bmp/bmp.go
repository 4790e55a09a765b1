// Package bmp decodes uncompressed 24-bit (BGR) and 32-bit (BGRA) bitmaps
// into a pixel.Grid and encodes them back byte for byte.
//
// The header is kept verbatim and only the fields needed to address the pixel
// region are read from it. Rows are kept in stored order; no vertical flip is
// applied on decode or encode.
package bmp

import (
	"bytes"
	"fmt"

	"github.com/futurist-future/image-converter/internal/hexutil"
	"github.com/futurist-future/image-converter/internal/pixel"
)

// Byte ranges of the header fields the codec reads.
const (
	sigStart      = 0
	fileSizeStart = 2
	offsetStart   = 10
	dibSizeStart  = 14
	widthStart    = 18
	heightStart   = 22
	bppStart      = 28
	bppEnd        = 30

	// minHeaderLen is the smallest buffer that holds every field above.
	minHeaderLen = bppEnd
)

// InvalidFormatError reports a buffer that is not a bitmap this package can
// process: truncated, mis-sized or using an unsupported bit depth.
type InvalidFormatError string

func (e InvalidFormatError) Error() string { return "bmp: invalid format: " + string(e) }

// Image is a decoded bitmap. Header holds the first DataOffset bytes of the
// file. RowTails and Trailer hold pixel-region bytes that do not fit the
// Width x Height grid; they are written back unchanged by Encode.
type Image struct {
	Header     []byte
	DataOffset int
	FileSize   int
	DIBSize    int
	Width      int
	Height     int
	BitDepth   int
	Grid       pixel.Grid

	// RowTails[r] holds whole pixels partitioned into row r beyond Width.
	RowTails [][]byte
	// Trailer holds a final partial pixel.
	Trailer []byte
}

// BytesPerPixel is BitDepth/8: 3 or 4.
func (img *Image) BytesPerPixel() int { return img.BitDepth / 8 }

// Decode parses a bitmap byte stream.
func Decode(data []byte) (*Image, error) {
	if len(data) < minHeaderLen {
		return nil, InvalidFormatError(fmt.Sprintf("truncated header: %d bytes", len(data)))
	}
	if data[sigStart] != 'B' || data[sigStart+1] != 'M' {
		return nil, InvalidFormatError(fmt.Sprintf("bad signature %q", data[sigStart:sigStart+2]))
	}

	offset := hexutil.ReadUint(data[offsetStart:dibSizeStart])
	if offset < minHeaderLen || offset > uint64(len(data)) {
		return nil, InvalidFormatError(fmt.Sprintf("data offset %d outside [%d,%d]", offset, minHeaderLen, len(data)))
	}
	header := bytes.Clone(data[:offset])

	width := hexutil.ReadUint(header[widthStart:heightStart])
	height := hexutil.ReadUint(header[heightStart : heightStart+4])
	bitDepth := hexutil.ReadUint(header[bppStart:bppEnd])
	if bitDepth != 24 && bitDepth != 32 {
		return nil, InvalidFormatError(fmt.Sprintf("unsupported bit depth %d", bitDepth))
	}
	if width == 0 || height == 0 {
		return nil, InvalidFormatError(fmt.Sprintf("empty image %dx%d", width, height))
	}

	body := data[offset:]
	bpp := int(bitDepth / 8)
	// Checked one at a time so the product below cannot overflow.
	if width > uint64(len(body)) || height > uint64(len(body)) ||
		width*height*uint64(bpp) > uint64(len(body)) {
		return nil, InvalidFormatError(fmt.Sprintf("truncated pixel data: %d bytes for %dx%d at %d bits",
			len(body), width, height, bitDepth))
	}

	img := &Image{
		Header:     header,
		DataOffset: int(offset),
		FileSize:   int(hexutil.ReadUint(header[fileSizeStart:offsetStart])),
		DIBSize:    int(hexutil.ReadUint(header[dibSizeStart:widthStart])),
		Width:      int(width),
		Height:     int(height),
		BitDepth:   int(bitDepth),
		Grid:       pixel.New(int(width), int(height), bpp),
		RowTails:   make([][]byte, height),
	}

	pixels := hexutil.Chunk(body, bpp)
	if last := pixels[len(pixels)-1]; len(last) < bpp {
		img.Trailer = bytes.Clone(last)
		pixels = pixels[:len(pixels)-1]
	}

	rows, err := hexutil.Partition(pixels, img.Height)
	if err != nil {
		return nil, InvalidFormatError(err.Error())
	}
	for r, group := range rows {
		if len(group) < img.Width {
			return nil, InvalidFormatError(fmt.Sprintf("row %d holds %d pixels, want %d", r, len(group), img.Width))
		}
		for c := 0; c < img.Width; c++ {
			copy(img.Grid.Rows[r][c], group[c])
		}
		if extra := group[img.Width:]; len(extra) > 0 {
			tail := make([]byte, 0, len(extra)*bpp)
			for _, p := range extra {
				tail = append(tail, p...)
			}
			img.RowTails[r] = tail
		}
	}
	return img, nil
}

// Encode writes the header verbatim followed by the grid row by row. Any
// pass-through bytes captured by Decode are written back in place.
func Encode(img *Image) ([]byte, error) {
	if err := img.Grid.Validate(); err != nil {
		return nil, err
	}
	g := img.Grid
	if g.Width != img.Width || g.Height != img.Height || g.BytesPerPixel != img.BytesPerPixel() {
		return nil, pixel.InvalidInputError(fmt.Sprintf("grid %dx%dx%d does not match header %dx%dx%d",
			g.Width, g.Height, g.BytesPerPixel, img.Width, img.Height, img.BytesPerPixel()))
	}

	size := len(img.Header) + g.Width*g.Height*g.BytesPerPixel + len(img.Trailer)
	for _, t := range img.RowTails {
		size += len(t)
	}
	var buf bytes.Buffer
	buf.Grow(size)
	buf.Write(img.Header)
	for r, row := range g.Rows {
		for _, p := range row {
			buf.Write(p)
		}
		if r < len(img.RowTails) {
			buf.Write(img.RowTails[r])
		}
	}
	buf.Write(img.Trailer)
	return buf.Bytes(), nil
}

// WithGrid returns a copy of img carrying g instead of its own grid. The
// header and pass-through bytes are shared.
func (img *Image) WithGrid(g pixel.Grid) *Image {
	out := *img
	out.Grid = g
	return &out
}
