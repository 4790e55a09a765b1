package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/futurist-future/image-converter/internal/bundle"
	"github.com/futurist-future/image-converter/internal/hasher"
	"github.com/futurist-future/image-converter/internal/manifest"
	"github.com/futurist-future/image-converter/internal/transform"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate an imgconv manifest and check referenced files",
	Long: `Checks the manifest's structure, that every referenced output exists
with the recorded size and fingerprint, and that the stats and bundle
(if any) agree with the listed outputs.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.Read(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errs := validateManifest(m, filepath.Dir(path))
	if len(errs) == 0 {
		fmt.Fprintln(out, "  ✓ Manifest is valid")
		fmt.Fprintf(out, "  ✓ %d sources, %d outputs, all files present\n", m.Stats.TotalSources, m.Stats.TotalOutputs)
		return nil
	}

	printValidation(out, errs)
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func printValidation(w io.Writer, errs []string) {
	fmt.Fprintf(w, "  ✗ Manifest has %d errors:\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "    • %s\n", e)
	}
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}
	if m.RunID == "" {
		errs = append(errs, "missing run_id")
	}
	for _, f := range m.Filters {
		if _, err := transform.ParseKind(f); err != nil {
			errs = append(errs, fmt.Sprintf("filters: %v", err))
		}
	}

	keys := make([]string, 0, len(m.Sources))
	for key := range m.Sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seenPaths := map[string]string{}
	files := 0
	for _, key := range keys {
		src := m.Sources[key]
		orig := src.Original
		if orig.Width <= 0 || orig.Height <= 0 {
			errs = append(errs, fmt.Sprintf("source %q: invalid dimensions %dx%d", key, orig.Width, orig.Height))
		}
		if orig.BitDepth != 24 && orig.BitDepth != 32 {
			errs = append(errs, fmt.Sprintf("source %q: unsupported bit depth %d", key, orig.BitDepth))
		}
		if len(src.Outputs) == 0 {
			errs = append(errs, fmt.Sprintf("source %q: no outputs", key))
		}

		for i, o := range src.Outputs {
			if _, err := transform.ParseKind(o.Filter); err != nil {
				errs = append(errs, fmt.Sprintf("source %q output[%d]: %v", key, i, err))
			}
			if len(o.Hash) != hasher.FingerprintLen {
				errs = append(errs, fmt.Sprintf("source %q output[%d]: bad hash %q", key, i, o.Hash))
			}
			if o.Path == "" {
				errs = append(errs, fmt.Sprintf("source %q output[%d]: missing path", key, i))
				continue
			}
			if first, ok := seenPaths[o.Path]; ok {
				errs = append(errs, fmt.Sprintf("source %q output[%d]: path %q already used by %q", key, i, o.Path, first))
			}
			seenPaths[o.Path] = key
			files++
			if msg := checkFile(baseDir, o); msg != "" {
				errs = append(errs, fmt.Sprintf("source %q output[%d]: %s", key, i, msg))
			}
			if o.Preview != "" {
				files++
				if _, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(o.Preview))); err != nil {
					errs = append(errs, fmt.Sprintf("source %q output[%d]: preview not found: %s", key, i, o.Preview))
				}
			}
		}
	}

	// Verify stats consistency.
	outputCount := 0
	for _, s := range m.Sources {
		outputCount += len(s.Outputs)
	}
	if m.Stats.TotalSources != len(m.Sources) {
		errs = append(errs, fmt.Sprintf("stats.total_sources mismatch: %d != %d", m.Stats.TotalSources, len(m.Sources)))
	}
	if m.Stats.TotalOutputs != outputCount {
		errs = append(errs, fmt.Sprintf("stats.total_outputs mismatch: %d != %d", m.Stats.TotalOutputs, outputCount))
	}

	if m.BuildInfo != nil && m.BuildInfo.Bundle != "" {
		entries, err := bundle.ListFile(filepath.Join(baseDir, m.BuildInfo.Bundle))
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("bundle %s: %v", m.BuildInfo.Bundle, err))
		case len(entries) != files:
			errs = append(errs, fmt.Sprintf("bundle %s: %d entries, manifest lists %d files", m.BuildInfo.Bundle, len(entries), files))
		}
	}

	return errs
}

// checkFile compares an output on disk with its manifest entry.
func checkFile(baseDir string, o manifest.Output) string {
	f, err := os.Open(filepath.Join(baseDir, filepath.FromSlash(o.Path)))
	if err != nil {
		return fmt.Sprintf("file not found: %s", o.Path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err.Error()
	}
	if info.Size() != o.Size {
		return fmt.Sprintf("size mismatch: manifest=%d, disk=%d", o.Size, info.Size())
	}
	fp, err := hasher.FingerprintReader(f)
	if err != nil {
		return err.Error()
	}
	if fp != o.Hash {
		return fmt.Sprintf("hash mismatch: manifest=%s, disk=%s", o.Hash, fp)
	}
	return ""
}
