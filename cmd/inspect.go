package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	xbmp "golang.org/x/image/bmp"

	"github.com/futurist-future/image-converter/internal/bmp"
	"github.com/futurist-future/image-converter/internal/hasher"
)

var (
	inspectHex     bool
	inspectFromHex bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.bmp>",
	Short: "Print the header fields of a BMP file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectHex, "hex", false, "also dump the header as hex tokens")
	inspectCmd.Flags().BoolVar(&inspectFromHex, "from-hex", false, "the file holds the bitmap as hex text")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	img, err := decodeInput(data, inspectFromHex)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if inspectFromHex {
		// report on the bytes the text stands for
		if data, err = bmp.Encode(img); err != nil {
			return err
		}
	}
	return printInspect(cmd.OutOrStdout(), args[0], data, img)
}

func decodeInput(data []byte, fromHex bool) (*bmp.Image, error) {
	if fromHex {
		return bmp.DecodeHex(string(data))
	}
	return bmp.Decode(data)
}

func printInspect(w io.Writer, name string, data []byte, img *bmp.Image) error {
	tails := 0
	for _, t := range img.RowTails {
		tails += len(t)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  File:           %s (%s)\n", name, formatBytes(int64(len(data))))
	fmt.Fprintf(w, "  Fingerprint:    %s\n", hasher.Fingerprint(data))
	fmt.Fprintf(w, "  Declared size:  %d\n", img.FileSize)
	fmt.Fprintf(w, "  Data offset:    %d\n", img.DataOffset)
	fmt.Fprintf(w, "  DIB header:     %d bytes\n", img.DIBSize)
	fmt.Fprintf(w, "  Dimensions:     %dx%d\n", img.Width, img.Height)
	fmt.Fprintf(w, "  Bit depth:      %d (%d bytes/pixel)\n", img.BitDepth, img.BytesPerPixel())
	fmt.Fprintf(w, "  Pixel body:     %d bytes\n", len(data)-img.DataOffset)
	if tails > 0 || len(img.Trailer) > 0 {
		fmt.Fprintf(w, "  Pass-through:   %d row bytes, %d trailing\n", tails, len(img.Trailer))
	}

	cfg, err := xbmp.DecodeConfig(bytes.NewReader(data))
	switch {
	case err != nil:
		fmt.Fprintf(w, "  x/image/bmp:    rejected (%v)\n", err)
	case cfg.Width != img.Width || cfg.Height != img.Height:
		fmt.Fprintf(w, "  x/image/bmp:    disagrees (%dx%d)\n", cfg.Width, cfg.Height)
	default:
		fmt.Fprintf(w, "  x/image/bmp:    agrees\n")
	}

	if inspectHex {
		hex, err := bmp.HexString(img.Header)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  Header hex:     %s\n", hex)
	}
	fmt.Fprintln(w)
	return nil
}
