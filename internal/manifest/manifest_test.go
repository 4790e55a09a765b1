package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Manifest {
	m := New("classic", []string{"greyscale", "sepia"})
	m.BuildInfo = &BuildInfo{Workers: 4, BlurRadius: 2, Export: "png"}
	m.Sources["birds/owl"] = Source{
		Original: OriginalInfo{
			Path: "birds/owl.bmp", Width: 3, Height: 2,
			BitDepth: 24, DataOffset: 54, Size: 72, Hash: "0123456789abcdef",
		},
		AvgColor: &[3]uint8{10, 20, 30},
		Outputs: []Output{
			{Filter: "greyscale", Path: "birds/owl-greyscale.bmp", Size: 72, Hash: "aaaaaaaaaaaaaaaa", Preview: "birds/owl-greyscale.png"},
			{Filter: "sepia", Path: "birds/owl-sepia.bmp", Size: 72, Hash: "bbbbbbbbbbbbbbbb"},
		},
	}
	return m
}

func TestManifestRoundtrip(t *testing.T) {
	m := sample()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, WriteJSON(m, path))

	m2, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, SupportedManifestVersion, m2.Version)
	assert.Equal(t, m.RunID, m2.RunID)
	assert.Equal(t, "classic", m2.Profile)
	assert.Equal(t, []string{"greyscale", "sepia"}, m2.Filters)
	require.NotNil(t, m2.BuildInfo)
	assert.Equal(t, 4, m2.BuildInfo.Workers)
	assert.Equal(t, "png", m2.BuildInfo.Export)

	src, ok := m2.Sources["birds/owl"]
	require.True(t, ok, "source birds/owl missing")
	assert.Equal(t, 24, src.Original.BitDepth)
	require.NotNil(t, src.AvgColor)
	assert.Equal(t, [3]uint8{10, 20, 30}, *src.AvgColor)
	require.Len(t, src.Outputs, 2)
	assert.Equal(t, "birds/owl-greyscale.png", src.Outputs[0].Preview)
	assert.Empty(t, src.Outputs[1].Preview)

	assert.Equal(t, Stats{
		TotalInputBytes:  72,
		TotalOutputBytes: 144,
		TotalSources:     1,
		TotalOutputs:     2,
	}, m2.Stats)
}

func TestNew(t *testing.T) {
	a := New("all", nil)
	b := New("all", nil)
	assert.Equal(t, SupportedManifestVersion, a.Version)
	assert.NotNil(t, a.Sources)
	assert.NotEqual(t, a.RunID, b.RunID)
	_, err := uuid.Parse(a.RunID)
	assert.NoError(t, err)
}

func TestComputeStats_KeepsFailed(t *testing.T) {
	m := sample()
	m.Stats.Failed = 3
	m.ComputeStats()
	assert.Equal(t, 3, m.Stats.Failed)
	assert.Equal(t, 2, m.Stats.TotalOutputs)
}

func TestMarshal_OmitsEmpty(t *testing.T) {
	data, err := Marshal(New("all", nil))
	require.NoError(t, err)
	s := string(data)
	assert.NotContains(t, s, "build_info")
	assert.NotContains(t, s, "failed")
	assert.Contains(t, s, `"run_id"`)
	assert.Equal(t, byte('\n'), data[len(data)-1])
}

func TestRead_IgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"run_id": "r",
		"profile": "test",
		"future_field": "should be ignored",
		"build_info": { "workers": 8, "new_flag": true },
		"sources": {},
		"stats": { "total_sources": 0, "new_stat": 42 }
	}`
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	m, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Version)
	require.NotNil(t, m.BuildInfo)
	assert.Equal(t, 8, m.BuildInfo.Workers)
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read manifest")

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = Read(path)
	assert.ErrorContains(t, err, "parse manifest")
}
