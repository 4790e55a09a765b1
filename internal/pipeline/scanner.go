package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/futurist-future/image-converter/internal/service"
)

// Source represents a discovered bitmap file.
type Source struct {
	// AbsPath is the path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory, slash separated.
	RelPath string
	// Key is the manifest key (relpath without extension).
	Key string
	// Size is the file size in bytes.
	Size int64
}

// ScanBitmaps walks the input directory and returns every .bmp file in walk
// order. Hidden directories and skipDir (typically the output directory
// when it sits inside the input tree) are not descended into.
func ScanBitmaps(inputDir, skipDir string) ([]Source, error) {
	var sources []Source
	skip := ""
	if skipDir != "" {
		if abs, err := filepath.Abs(skipDir); err == nil {
			skip = abs
		}
	}

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != inputDir {
				return filepath.SkipDir
			}
			if skip != "" && path != inputDir {
				if abs, err := filepath.Abs(path); err == nil && abs == skip {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !service.IsBMP(path) {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: relPath,
			Key:     strings.TrimSuffix(relPath, filepath.Ext(relPath)),
			Size:    info.Size(),
		})
		return nil
	})

	return sources, err
}
