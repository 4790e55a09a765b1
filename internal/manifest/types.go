package manifest

// Manifest is the top-level output of an imgconv build.
type Manifest struct {
	Version     int               `json:"version"`
	RunID       string            `json:"run_id"`
	GeneratedAt string            `json:"generated_at"`
	Profile     string            `json:"profile"`
	Filters     []string          `json:"filters"`
	BuildInfo   *BuildInfo        `json:"build_info,omitempty"`
	Sources     map[string]Source `json:"sources"`
	Stats       Stats             `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers    int    `json:"workers"`
	BlurRadius int    `json:"blur_radius"`
	Export     string `json:"export,omitempty"` // preview format, if any
	Bundle     string `json:"bundle,omitempty"` // archive path relative to the manifest
}

// Source describes one input bitmap and everything produced from it.
type Source struct {
	Original OriginalInfo `json:"original"`
	AvgColor *[3]uint8    `json:"avg_color,omitempty"` // [R,G,B] 0-255
	Outputs  []Output     `json:"outputs"`
}

// OriginalInfo holds header facts about the input bitmap.
type OriginalInfo struct {
	Path       string `json:"path"` // relative to the input directory
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	BitDepth   int    `json:"bit_depth"`
	DataOffset int    `json:"data_offset"`
	Size       int64  `json:"size"`
	Hash       string `json:"hash"`
}

// Output is one filtered bitmap written for a source.
type Output struct {
	Filter  string `json:"filter"`
	Path    string `json:"path"` // relative to the manifest
	Size    int64  `json:"size"`
	Hash    string `json:"hash"` // xxhash64, 16 hex digits
	Preview string `json:"preview,omitempty"`
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalSources     int   `json:"total_sources"`
	TotalOutputs     int   `json:"total_outputs"`
	Failed           int   `json:"failed,omitempty"` // sources that could not be processed
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest's name inside an output directory.
const FileName = "imgconv.manifest.json"
