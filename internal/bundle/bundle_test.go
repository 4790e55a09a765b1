package bundle

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a-invert.bmp"), []byte("BM-one"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b-edge.bmp"), bytes.Repeat([]byte{7}, 4096), 0o644))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, dir, []string{"a-invert.bmp", "sub/b-edge.bmp"}))

	dec, err := zstd.NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer dec.Close()
	tr := tar.NewReader(dec)

	hdr, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "a-invert.bmp", hdr.Name)
	data, err := io.ReadAll(tr)
	require.NoError(t, err)
	assert.Equal(t, "BM-one", string(data))

	hdr, err = tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "sub/b-edge.bmp", hdr.Name)
	assert.Equal(t, int64(4096), hdr.Size)

	_, err = tr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestCreate_ListFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.bmp"), []byte("abc"), 0o644))
	path := filepath.Join(dir, Name("run-1"))
	require.NoError(t, Create(path, dir, []string{"x.bmp"}))

	entries, err := ListFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "x.bmp", Size: 3}}, entries)
}

func TestCreate_MissingFileRemovesBundle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Name("r"))
	assert.Error(t, Create(path, dir, []string{"nope.bmp"}))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestList_Garbage(t *testing.T) {
	_, err := List(bytes.NewReader([]byte("definitely not zstd")))
	assert.Error(t, err)
}

func TestName(t *testing.T) {
	assert.Equal(t, "imgconv-abc.tar.zst", Name("abc"))
}
