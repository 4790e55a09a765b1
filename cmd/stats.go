package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/futurist-future/image-converter/internal/bundle"
	"github.com/futurist-future/image-converter/internal/manifest"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a build output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.Read(path)
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), m, filepath.Dir(path))
	return nil
}

// manifestPath resolves a directory to the manifest inside it.
func manifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return filepath.Join(path, manifest.FileName), nil
	}
	return path, nil
}

type filterStat struct {
	count int
	bytes int64
}

func printStats(w io.Writer, m *manifest.Manifest, baseDir string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(w, "  Run:              %s\n", m.RunID)
	fmt.Fprintf(w, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(w, "  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Fprintf(w, "  Blur radius:      %d\n", m.BuildInfo.BlurRadius)
	}
	fmt.Fprintln(w)

	s := m.Stats
	fmt.Fprintf(w, "  Total sources:    %d\n", s.TotalSources)
	fmt.Fprintf(w, "  Total outputs:    %d\n", s.TotalOutputs)
	if s.Failed > 0 {
		fmt.Fprintf(w, "  Failed sources:   %d\n", s.Failed)
	}
	fmt.Fprintf(w, "  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Fprintln(w)

	// Per-filter breakdown.
	filterStats := map[string]filterStat{}
	previews := 0
	for _, src := range m.Sources {
		for _, o := range src.Outputs {
			fs := filterStats[o.Filter]
			fs.count++
			fs.bytes += o.Size
			filterStats[o.Filter] = fs
			if o.Preview != "" {
				previews++
			}
		}
	}
	fmt.Fprintln(w, "  Filter breakdown:")
	for _, f := range m.Filters {
		if fs, ok := filterStats[f]; ok {
			fmt.Fprintf(w, "    %-10s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
		}
	}
	fmt.Fprintln(w)

	// Per-depth breakdown.
	depthStats := map[int]int{}
	for _, src := range m.Sources {
		depthStats[src.Original.BitDepth]++
	}
	var depths []int
	for d := range depthStats {
		depths = append(depths, d)
	}
	sort.Ints(depths)
	fmt.Fprintln(w, "  Bit depth breakdown:")
	for _, d := range depths {
		fmt.Fprintf(w, "    %2d-bit  %4d sources\n", d, depthStats[d])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Preview coverage: %d / %d outputs\n", previews, s.TotalOutputs)
	if m.BuildInfo != nil && m.BuildInfo.Bundle != "" {
		entries, err := bundle.ListFile(filepath.Join(baseDir, m.BuildInfo.Bundle))
		if err != nil {
			fmt.Fprintf(w, "  Bundle:           %s (unreadable: %v)\n", m.BuildInfo.Bundle, err)
		} else {
			fmt.Fprintf(w, "  Bundle:           %s (%d files)\n", m.BuildInfo.Bundle, len(entries))
		}
	}

	// Warnings.
	var warnings []string
	for key, src := range m.Sources {
		if len(src.Outputs) == 0 {
			warnings = append(warnings, fmt.Sprintf("source %q has no outputs", key))
		}
		if len(src.Outputs) != len(m.Filters) {
			warnings = append(warnings, fmt.Sprintf("source %q has %d outputs for %d filters",
				key, len(src.Outputs), len(m.Filters)))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Warnings (%d):\n", len(warnings))
		for _, msg := range warnings {
			fmt.Fprintf(w, "    ⚠ %s\n", msg)
		}
	}
	fmt.Fprintln(w)
}
