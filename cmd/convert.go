package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/futurist-future/image-converter/internal/bmp"
	"github.com/futurist-future/image-converter/internal/encoder"
	"github.com/futurist-future/image-converter/internal/pipeline"
	"github.com/futurist-future/image-converter/internal/service"
	"github.com/futurist-future/image-converter/internal/transform"
)

var (
	convertOutDir       string
	convertFilters      []string
	convertRadius       int
	convertExport       string
	convertPreviewWidth int
	convertQuality      int
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.bmp>",
	Short: "Apply filters to a single BMP file",
	Long: `Decodes one 24/32-bit BMP, applies each requested filter and writes
<name>-<filter>.bmp into the output directory. With no --filter every
filter is applied.

Filters: greyscale, sepia, invert, reflect, blur, edge.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutDir, "out", "o", ".", "output directory")
	convertCmd.Flags().StringSliceVarP(&convertFilters, "filter", "f", nil, "filters to apply (default all)")
	convertCmd.Flags().IntVarP(&convertRadius, "radius", "r", -1, "blur radius (-1 = default)")
	convertCmd.Flags().StringVarP(&convertExport, "export", "e", "", "also write a preview (png, jpeg, bmp)")
	convertCmd.Flags().IntVar(&convertPreviewWidth, "preview-width", 0, "downscale previews to this width (0 = full size)")
	convertCmd.Flags().IntVarP(&convertQuality, "quality", "q", encoder.DefaultQuality, "jpeg preview quality 1-100")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	src := args[0]
	if !service.IsBMP(src) {
		return fmt.Errorf("%s: not a .bmp file", src)
	}

	ops, err := parseOps(convertFilters, convertRadius)
	if err != nil {
		return err
	}

	var preview encoder.Encoder
	if convertExport != "" {
		if preview, err = encoder.NewRegistry().Resolve(convertExport); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	img, err := bmp.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	logVerbose("decoded %s: %dx%d, %d-bit", src, img.Width, img.Height, img.BitDepth)

	results, err := service.ApplyImage(img, ops...)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	if err := os.MkdirAll(convertOutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, res := range results {
		outPath := filepath.Join(convertOutDir, service.OutputName(src, res.Op))
		if err := pipeline.WriteFile(outPath, res.Data); err != nil {
			return err
		}
		slog.InfoContext(ctx, "converted", "source", src, "filter", res.Op.String(), "out", outPath)
		fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %s (%s)\n", res.Op, outPath, formatBytes(int64(len(res.Data))))

		if preview == nil {
			continue
		}
		pdata, err := preview.Encode(encoder.Preview(res.Image.Grid, convertPreviewWidth), convertQuality)
		if err != nil {
			return fmt.Errorf("preview %s: %w", res.Op, err)
		}
		prevPath := pipeline.PreviewName(outPath, preview)
		if err := pipeline.WriteFile(prevPath, pdata); err != nil {
			return err
		}
		logVerbose("preview %s (%s)", prevPath, formatBytes(int64(len(pdata))))
	}
	return nil
}

// parseOps turns filter names into ops. No names selects every filter;
// radius < 0 keeps the default blur radius.
func parseOps(names []string, radius int) ([]transform.Op, error) {
	if len(names) == 0 {
		for _, k := range transform.Kinds() {
			names = append(names, k.String())
		}
	}
	ops := make([]transform.Op, 0, len(names))
	for _, n := range names {
		op, err := transform.ParseOp(n, radius)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
