package encoder

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xbmp "golang.org/x/image/bmp"

	"github.com/futurist-future/image-converter/internal/pixel"
)

func testGrid(width, height, bpp int) pixel.Grid {
	g := pixel.New(width, height, bpp)
	for r := range g.Rows {
		for c := range g.Rows[r] {
			p := g.Rows[r][c]
			p[pixel.Blue] = byte(c * 9)
			p[pixel.Green] = byte(r * 13)
			p[pixel.Red] = 200
			if bpp == 4 {
				p[pixel.Alpha] = 128
			}
		}
	}
	return g
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"png", "jpeg", "bmp"}, r.Available())
	assert.Equal(t, "jpeg", r.Get("JPG").Format())
	assert.Nil(t, r.Get("webp"))

	_, err := r.Resolve("webp")
	assert.ErrorContains(t, err, "png, jpeg, bmp")
	enc, err := r.Resolve("png")
	require.NoError(t, err)
	assert.Equal(t, "png", enc.Extension())
	assert.Contains(t, r.String(), "png")
}

func TestPreview_Size(t *testing.T) {
	g := testGrid(40, 20, 3)
	assert.Equal(t, image.Rect(0, 0, 40, 20), Preview(g, 0).Bounds())
	assert.Equal(t, image.Rect(0, 0, 40, 20), Preview(g, 80).Bounds())
	assert.Equal(t, image.Rect(0, 0, 10, 5), Preview(g, 10).Bounds())
}

func TestEncoders_Decodable(t *testing.T) {
	img := Preview(testGrid(12, 8, 4), 0)
	r := NewRegistry()

	data, err := r.Get("png").Encode(img, 0)
	require.NoError(t, err)
	back, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), back.Bounds())
	_, _, _, a := back.At(0, 0).RGBA()
	assert.Equal(t, uint32(128*0x101), a)

	data, err = r.Get("jpeg").Encode(img, 500)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Width)

	data, err = r.Get("bmp").Encode(img, 0)
	require.NoError(t, err)
	bcfg, err := xbmp.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 8, bcfg.Height)
}
