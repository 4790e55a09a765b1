// Package bundle packs build outputs into a single zstd-compressed tar.
package bundle

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/klauspost/compress/zstd"
)

// Extension is appended to bundle file names.
const Extension = ".tar.zst"

// Name returns the bundle file name for a run.
func Name(runID string) string {
	return "imgconv-" + runID + Extension
}

// Write streams the files (slash-separated paths relative to baseDir) into
// w as a tar archive compressed with zstd. Entries keep their relative
// paths and file modes.
func Write(w io.Writer, baseDir string, files []string) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(runtime.NumCPU()))
	if err != nil {
		return err
	}
	tw := tar.NewWriter(enc)
	for _, rel := range files {
		if err := addFile(tw, baseDir, rel); err != nil {
			enc.Close()
			return err
		}
	}
	if err := tw.Close(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func addFile(tw *tar.Writer, baseDir, rel string) error {
	f, err := os.Open(filepath.Join(baseDir, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = rel
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("bundle %s: %w", rel, err)
	}
	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("bundle %s: %w", rel, err)
	}
	return nil
}

// Create writes a bundle to path. A failed bundle is removed.
func Create(path, baseDir string, files []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return Write(f, baseDir, files)
}

// Entry is one file listed from a bundle.
type Entry struct {
	Name string
	Size int64
}

// List reads a bundle and returns its entries in archive order.
func List(r io.Reader) ([]Entry, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var entries []Entry
	tr := tar.NewReader(dec)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read bundle: %w", err)
		}
		entries = append(entries, Entry{Name: hdr.Name, Size: hdr.Size})
	}
}

// ListFile is List over a file on disk.
func ListFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return List(f)
}
