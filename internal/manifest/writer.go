package manifest

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// New creates an empty manifest with a fresh run id.
func New(profileName string, filters []string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		Filters:     filters,
		Sources:     make(map[string]Source),
	}
}

// ComputeStats recalculates aggregate statistics from sources. Failed is
// left as set by the caller.
func (m *Manifest) ComputeStats() {
	s := Stats{Failed: m.Stats.Failed}
	s.TotalSources = len(m.Sources)
	for _, src := range m.Sources {
		s.TotalInputBytes += src.Original.Size
		s.TotalOutputs += len(src.Outputs)
		for _, o := range src.Outputs {
			s.TotalOutputBytes += o.Size
		}
	}
	m.Stats = s
}

// Marshal renders the manifest as indented JSON with a trailing newline.
func Marshal(m *Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteJSON refreshes the stats and writes the manifest to path.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a manifest file. Unknown fields are ignored.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
