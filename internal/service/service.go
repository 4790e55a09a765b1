// Package service exposes the byte-in, byte-out filter operations: decode a
// bitmap, run a filter over its grid and encode the result.
package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/futurist-future/image-converter/internal/bmp"
	"github.com/futurist-future/image-converter/internal/transform"
)

// Result is one filter's output for a decoded source.
type Result struct {
	Op    transform.Op
	Image *bmp.Image
	Data  []byte
}

// ApplyAll decodes data once and runs each op against the same decoded grid.
// It fails on the first error; no partial results are returned.
func ApplyAll(data []byte, ops ...transform.Op) ([]Result, error) {
	src, err := bmp.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ApplyImage(src, ops...)
}

// ApplyImage is ApplyAll for an already decoded bitmap. src is not modified.
func ApplyImage(src *bmp.Image, ops ...transform.Op) ([]Result, error) {
	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		grid, err := transform.Apply(src.Grid, op)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		img := src.WithGrid(grid)
		out, err := bmp.Encode(img)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", op, err)
		}
		results = append(results, Result{Op: op, Image: img, Data: out})
	}
	return results, nil
}

// Apply runs a single op over a bitmap buffer.
func Apply(data []byte, op transform.Op) ([]byte, error) {
	res, err := ApplyAll(data, op)
	if err != nil {
		return nil, err
	}
	return res[0].Data, nil
}

func Greyscale(data []byte) ([]byte, error) { return Apply(data, transform.NewOp(transform.Greyscale)) }
func Sepia(data []byte) ([]byte, error)     { return Apply(data, transform.NewOp(transform.Sepia)) }
func Invert(data []byte) ([]byte, error)    { return Apply(data, transform.NewOp(transform.Invert)) }
func Reflect(data []byte) ([]byte, error)   { return Apply(data, transform.NewOp(transform.Reflect)) }
func Edge(data []byte) ([]byte, error)      { return Apply(data, transform.NewOp(transform.Edge)) }

// Blur box-blurs with the given radius; transform.DefaultBlurRadius is the
// conventional choice.
func Blur(data []byte, radius int) ([]byte, error) {
	return Apply(data, transform.Op{Kind: transform.Blur, Radius: radius})
}

// IsBMP reports whether path carries a .bmp extension.
func IsBMP(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".bmp")
}

// OutputName returns "<base>-<op>.bmp" where base is the source file name up
// to its first dot. A leading dot is part of the base.
func OutputName(srcPath string, op transform.Op) string {
	base := filepath.Base(srcPath)
	if i := strings.IndexByte(base[1:], '.'); i >= 0 {
		base = base[:i+1]
	}
	return base + "-" + op.String() + ".bmp"
}
