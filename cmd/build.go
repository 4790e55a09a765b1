package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/futurist-future/image-converter/internal/bundle"
	"github.com/futurist-future/image-converter/internal/encoder"
	"github.com/futurist-future/image-converter/internal/manifest"
	"github.com/futurist-future/image-converter/internal/pipeline"
	"github.com/futurist-future/image-converter/internal/profile"
)

var (
	buildOutDir       string
	buildProfile      string
	buildFilters      []string
	buildRadius       int
	buildWorkers      int
	buildExport       string
	buildPreviewWidth int
	buildQuality      int
	buildBundle       bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Filter every BMP under a directory and write a manifest",
	Long: `Scans the input directory for .bmp files (hidden directories are
skipped), applies the profile's filters to each and writes
<name>-<filter>.bmp next to a manifest file, keeping the input's
subdirectory layout.

Profiles: all, classic, geometry, soft, edges.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./imgconv_out", "output directory")
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", profile.DefaultName, "filter profile")
	buildCmd.Flags().StringSliceVarP(&buildFilters, "filters", "f", nil, "filters to apply (overrides profile)")
	buildCmd.Flags().IntVarP(&buildRadius, "radius", "r", -1, "blur radius (-1 = profile default)")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().StringVarP(&buildExport, "export", "e", "", "preview format: png, jpeg, bmp (overrides profile)")
	buildCmd.Flags().IntVar(&buildPreviewWidth, "preview-width", 0, "downscale previews to this width (0 = full size)")
	buildCmd.Flags().IntVarP(&buildQuality, "quality", "q", encoder.DefaultQuality, "jpeg preview quality 1-100")
	buildCmd.Flags().BoolVar(&buildBundle, "bundle", false, "pack all outputs into a .tar.zst next to the manifest")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Load profile.
	prof := profile.Get(buildProfile)
	if len(buildFilters) > 0 {
		if prof, err = prof.WithFilters(buildFilters); err != nil {
			return err
		}
	}
	if buildRadius >= 0 {
		prof.Radius = buildRadius
	} else if prof.Radius == 0 {
		prof.Radius = profile.Get(profile.DefaultName).Radius
	}
	if buildExport != "" {
		prof.Export = buildExport
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (filters=%v, radius=%d)", prof.Name, prof.Filters, prof.Radius)

	// Run pipeline.
	p, err := pipeline.New(pipeline.Config{
		InputDir:     absInput,
		OutputDir:    absOutput,
		Profile:      prof,
		Workers:      buildWorkers,
		Verbose:      verbose,
		PreviewWidth: buildPreviewWidth,
		Quality:      buildQuality,
	})
	if err != nil {
		return err
	}

	m, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if buildBundle {
		name := bundle.Name(m.RunID)
		files := outputFiles(m)
		if err := bundle.Create(filepath.Join(absOutput, name), absOutput, files); err != nil {
			return fmt.Errorf("bundle: %w", err)
		}
		m.BuildInfo.Bundle = name
		logVerbose("bundled %d files into %s", len(files), name)
	}

	// Write manifest.
	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(cmd.OutOrStdout(), m, time.Since(start))
	return nil
}

// outputFiles lists every file the manifest references, sorted.
func outputFiles(m *manifest.Manifest) []string {
	var files []string
	for _, src := range m.Sources {
		for _, o := range src.Outputs {
			files = append(files, o.Path)
			if o.Preview != "" {
				files = append(files, o.Preview)
			}
		}
	}
	sort.Strings(files)
	return files
}

func printBuildReport(w io.Writer, m *manifest.Manifest, elapsed time.Duration) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║             imgconv build complete               ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════╝")
	fmt.Fprintln(w)

	stats := m.Stats
	fmt.Fprintf(w, "  Sources:     %d\n", stats.TotalSources)
	fmt.Fprintf(w, "  Outputs:     %d\n", stats.TotalOutputs)
	if stats.Failed > 0 {
		fmt.Fprintf(w, "  Failed:      %d sources (see log)\n", stats.Failed)
	}
	fmt.Fprintf(w, "  Filters:     %s\n", strings.Join(m.Filters, ", "))
	fmt.Fprintf(w, "  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Fprintf(w, "  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	fmt.Fprintf(w, "  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:     %d\n", m.BuildInfo.Workers)
		if m.BuildInfo.Export != "" {
			fmt.Fprintf(w, "  Previews:    %s\n", m.BuildInfo.Export)
		}
		if m.BuildInfo.Bundle != "" {
			fmt.Fprintf(w, "  Bundle:      %s\n", m.BuildInfo.Bundle)
		}
	}
	fmt.Fprintln(w)

	// Top 10 largest sources.
	if len(m.Sources) > 0 {
		type sourceSize struct {
			key  string
			size int64
			dims string
		}
		var items []sourceSize
		for key, s := range m.Sources {
			items = append(items, sourceSize{key, s.Original.Size,
				fmt.Sprintf("%dx%d@%d", s.Original.Width, s.Original.Height, s.Original.BitDepth)})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].size != items[j].size {
				return items[i].size > items[j].size
			}
			return items[i].key < items[j].key
		})
		n := min(len(items), 10)
		fmt.Fprintf(w, "  Top %d largest sources:\n", n)
		for _, it := range items[:n] {
			fmt.Fprintf(w, "    %-40s %8s  %s\n", truncKey(it.key, 40), formatBytes(it.size), it.dims)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "  Manifest:    %s (run %s)\n", manifest.FileName, m.RunID)
	fmt.Fprintln(w)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
