package service

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xbmp "golang.org/x/image/bmp"

	"github.com/futurist-future/image-converter/internal/bmp"
	"github.com/futurist-future/image-converter/internal/bmp/bmptest"
	"github.com/futurist-future/image-converter/internal/pixel"
	"github.com/futurist-future/image-converter/internal/transform"
)

type filterFunc func([]byte) ([]byte, error)

func filters() map[string]filterFunc {
	return map[string]filterFunc{
		"greyscale": Greyscale,
		"sepia":     Sepia,
		"invert":    Invert,
		"reflect":   Reflect,
		"blur":      func(b []byte) ([]byte, error) { return Blur(b, transform.DefaultBlurRadius) },
		"edge":      Edge,
	}
}

func fixtures() map[string][]byte {
	return map[string][]byte{
		"24bit": bmptest.Build(8, 6, 24, bmptest.Gradient),
		"32bit": bmptest.Build(8, 6, 32, bmptest.Gradient),
	}
}

func TestFilters_PreserveDimensions(t *testing.T) {
	for fname, data := range fixtures() {
		src, err := bmp.Decode(data)
		require.NoError(t, err)
		for name, f := range filters() {
			t.Run(fname+"/"+name, func(t *testing.T) {
				out, err := f(data)
				require.NoError(t, err)
				assert.Len(t, out, len(data))
				assert.Equal(t, data[:bmptest.HeaderLen], out[:bmptest.HeaderLen])

				dec, err := bmp.Decode(out)
				require.NoError(t, err)
				assert.Equal(t, src.Width, dec.Width)
				assert.Equal(t, src.Height, dec.Height)
				assert.Equal(t, src.BytesPerPixel(), dec.BytesPerPixel())

				cfg, err := xbmp.DecodeConfig(bytes.NewReader(out))
				require.NoError(t, err)
				assert.Equal(t, src.Width, cfg.Width)
				assert.Equal(t, src.Height, cfg.Height)
			})
		}
	}
}

func TestFilters_Properties(t *testing.T) {
	for fname, data := range fixtures() {
		t.Run(fname, func(t *testing.T) {
			inv, err := Invert(data)
			require.NoError(t, err)
			invInv, err := Invert(inv)
			require.NoError(t, err)
			assert.Equal(t, data, invInv)

			ref, err := Reflect(data)
			require.NoError(t, err)
			refRef, err := Reflect(ref)
			require.NoError(t, err)
			assert.Equal(t, data, refRef)

			grey, err := Greyscale(data)
			require.NoError(t, err)
			greyGrey, err := Greyscale(grey)
			require.NoError(t, err)
			assert.Equal(t, grey, greyGrey)

			same, err := Blur(data, 0)
			require.NoError(t, err)
			assert.Equal(t, data, same)
		})
	}
}

func TestFilters_AlphaPreserved(t *testing.T) {
	data := fixtures()["32bit"]
	src, err := bmp.Decode(data)
	require.NoError(t, err)
	for _, name := range []string{"greyscale", "sepia", "invert", "blur", "edge"} {
		out, err := filters()[name](data)
		require.NoError(t, err)
		dec, err := bmp.Decode(out)
		require.NoError(t, err)
		for r := range src.Grid.Rows {
			for c := range src.Grid.Rows[r] {
				require.Equal(t, src.Grid.At(r, c)[pixel.Alpha], dec.Grid.At(r, c)[pixel.Alpha],
					"%s at (%d,%d)", name, r, c)
			}
		}
	}
}

func TestApplyAll_SharesOneDecode(t *testing.T) {
	data := fixtures()["24bit"]
	ops := []transform.Op{
		transform.NewOp(transform.Invert),
		transform.NewOp(transform.Greyscale),
	}
	res, err := ApplyAll(data, ops...)
	require.NoError(t, err)
	require.Len(t, res, 2)

	// The second filter sees the original grid, not the inverted one.
	want, err := Greyscale(data)
	require.NoError(t, err)
	assert.Equal(t, want, res[1].Data)
	assert.Equal(t, ops[0], res[0].Op)
	assert.Equal(t, 8, res[0].Image.Width)
}

func TestApplyImage_LeavesSourceIntact(t *testing.T) {
	data := fixtures()["32bit"]
	src, err := bmp.Decode(data)
	require.NoError(t, err)

	res, err := ApplyImage(src, transform.NewOp(transform.Invert), transform.NewOp(transform.Edge))
	require.NoError(t, err)
	require.Len(t, res, 2)

	again, err := bmp.Encode(src)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestApply_Errors(t *testing.T) {
	data := fixtures()["24bit"]

	_, err := Greyscale(data[:10])
	var fe bmp.InvalidFormatError
	require.True(t, errors.As(err, &fe))

	bad := bytes.Clone(data)
	bad[28] = 8
	_, err = Edge(bad)
	require.True(t, errors.As(err, &fe))

	_, err = Blur(data, -3)
	var ie pixel.InvalidInputError
	require.True(t, errors.As(err, &ie))
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		src  string
		op   transform.Op
		want string
	}{
		{"images/yard.bmp", transform.NewOp(transform.Greyscale), "yard-greyscale.bmp"},
		{"/abs/path/tower.BMP", transform.NewOp(transform.Edge), "tower-edge.bmp"},
		{"stadium.v2.bmp", transform.NewOp(transform.Blur), "stadium-blur.bmp"},
		{".hidden.bmp", transform.NewOp(transform.Invert), ".hidden-invert.bmp"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputName(tt.src, tt.op))
	}
}

func TestIsBMP(t *testing.T) {
	assert.True(t, IsBMP("a.bmp"))
	assert.True(t, IsBMP("dir/A.BMP"))
	assert.False(t, IsBMP("a.png"))
	assert.False(t, IsBMP("bmp"))
}
