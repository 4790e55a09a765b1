package pipeline

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/futurist-future/image-converter/internal/bmp"
	"github.com/futurist-future/image-converter/internal/encoder"
	"github.com/futurist-future/image-converter/internal/hasher"
	"github.com/futurist-future/image-converter/internal/manifest"
	"github.com/futurist-future/image-converter/internal/pixel"
	"github.com/futurist-future/image-converter/internal/service"
	"github.com/futurist-future/image-converter/internal/transform"
)

// processResult holds the result of processing a single source bitmap.
type processResult struct {
	key    string
	source manifest.Source
	err    error
}

// processSource handles a single bitmap: decode, filter, encode, write.
// Every output buffer is built before the first file is written.
func (p *Pipeline) processSource(ctx context.Context, src Source, ops []transform.Op) processResult {
	result := processResult{key: src.Key}
	if err := ctx.Err(); err != nil {
		result.err = err
		return result
	}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}

	img, err := bmp.Decode(data)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	outputs, err := service.ApplyImage(img, ops...)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}

	avg := avgColor(img.Grid)
	result.source = manifest.Source{
		Original: manifest.OriginalInfo{
			Path:       src.RelPath,
			Width:      img.Width,
			Height:     img.Height,
			BitDepth:   img.BitDepth,
			DataOffset: img.DataOffset,
			Size:       int64(len(data)),
			Hash:       hasher.Fingerprint(data),
		},
		AvgColor: &avg,
	}

	keyDir := path.Dir(src.Key)
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(p.cfg.OutputDir, filepath.FromSlash(keyDir)), 0o755); err != nil {
			result.err = fmt.Errorf("mkdir %s: %w", keyDir, err)
			return result
		}
	}

	for _, out := range outputs {
		relPath := path.Join(keyDir, service.OutputName(src.RelPath, out.Op))
		if err := WriteFile(filepath.Join(p.cfg.OutputDir, filepath.FromSlash(relPath)), out.Data); err != nil {
			result.err = fmt.Errorf("write %s: %w", relPath, err)
			return result
		}

		entry := manifest.Output{
			Filter: out.Op.String(),
			Path:   relPath,
			Size:   int64(len(out.Data)),
			Hash:   hasher.Fingerprint(out.Data),
		}
		if p.preview != nil {
			if prev, err := p.writePreview(out, relPath); err != nil {
				p.warn(ctx, "preview failed", "path", relPath, "err", err)
			} else {
				entry.Preview = prev
			}
		}
		result.source.Outputs = append(result.source.Outputs, entry)
	}

	return result
}

// writePreview renders one output grid with the configured encoder next to
// the bitmap and returns its relative path.
func (p *Pipeline) writePreview(out service.Result, relPath string) (string, error) {
	img := encoder.Preview(out.Image.Grid, p.cfg.PreviewWidth)
	data, err := p.preview.Encode(img, p.cfg.Quality)
	if err != nil {
		return "", err
	}
	prevPath := PreviewName(relPath, p.preview)
	if err := WriteFile(filepath.Join(p.cfg.OutputDir, filepath.FromSlash(prevPath)), data); err != nil {
		return "", err
	}
	return prevPath, nil
}

// PreviewName returns the preview path for an output bitmap path:
// "<name>.preview.<ext>", which never collides with a bitmap output even
// when previews are themselves bitmaps.
func PreviewName(outPath string, enc encoder.Encoder) string {
	return strings.TrimSuffix(outPath, ".bmp") + ".preview." + enc.Extension()
}

// avgColor calculates the average [R,G,B] of a grid.
func avgColor(g pixel.Grid) [3]uint8 {
	count := uint64(g.Width) * uint64(g.Height)
	if count == 0 {
		return [3]uint8{}
	}
	var rSum, gSum, bSum uint64
	for _, row := range g.Rows {
		for _, px := range row {
			rSum += uint64(px[pixel.Red])
			gSum += uint64(px[pixel.Green])
			bSum += uint64(px[pixel.Blue])
		}
	}
	return [3]uint8{
		uint8(rSum / count),
		uint8(gSum / count),
		uint8(bSum / count),
	}
}
