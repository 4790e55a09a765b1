package hexutil

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToDecimal(t *testing.T) {
	tests := []struct {
		name  string
		token any
		want  int
	}{
		{"LowerPair", "ff", 255},
		{"UpperPair", "FF", 255},
		{"MixedPair", "aB", 171},
		{"Zero", "00", 0},
		{"SingleDigit", "7", 7},
		{"Prefixed", "0x1a", 26},
		{"PrefixedWide", "0x0400", 1024},
		{"IntPassThrough", 42, 42},
		{"BytePassThrough", byte(200), 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HexToDecimal(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHexToDecimal_Malformed(t *testing.T) {
	for _, token := range []any{"0x0", "0xzz", "zz", "", "abc", 1.5} {
		_, err := HexToDecimal(token)
		require.Error(t, err, "token %v", token)
		var fe FormatError
		assert.True(t, errors.As(err, &fe), "token %v: want FormatError, got %T", token, err)
	}
}

func TestDecimalToHex(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{0, "00"},
		{255, "ff"},
		{10, "0a"},
		{16, "10"},
		{byte(171), "ab"},
		{int64(1), "01"},
	}
	for _, tt := range tests {
		got, err := DecimalToHex(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
	}
}

func TestDecimalToHex_Rejects(t *testing.T) {
	for _, in := range []any{256, -1, 3.0, "12", uint64(300)} {
		_, err := DecimalToHex(in)
		var fe FormatError
		require.True(t, errors.As(err, &fe), "input %v", in)
	}
}

func TestRadixRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		tok, err := DecimalToHex(v)
		require.NoError(t, err)
		back, err := HexToDecimal(tok)
		require.NoError(t, err)
		require.Equal(t, v, back)
	}
}

func TestChunk(t *testing.T) {
	seq := []int{1, 2, 3, 4, 5, 6, 7}
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7}}, Chunk(seq, 3))
	assert.Equal(t, [][]int{{1, 2, 3, 4, 5, 6, 7}}, Chunk(seq, 0))
	assert.Equal(t, [][]int{{1, 2, 3, 4, 5, 6, 7}}, Chunk(seq, 10))
	assert.Nil(t, Chunk([]int{}, 3))
}

func TestChunks_MatchesChunk(t *testing.T) {
	seq := []byte("0123456789abcdef0")
	for size := 0; size <= len(seq)+1; size++ {
		lazy := slices.Collect(Chunks(seq, size))
		assert.Equal(t, Chunk(seq, size), lazy, "size %d", size)
	}
}

func TestChunks_StopsEarly(t *testing.T) {
	var seen int
	for c := range Chunks([]int{1, 2, 3, 4, 5, 6}, 2) {
		seen++
		if c[0] == 3 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestPartition(t *testing.T) {
	got, err := Partition([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 4)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5, 6}, {7, 8, 9, 10}}, got)

	got, err = Partition([]int{1, 2, 3, 4, 5, 6}, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5, 6}}, got)

	got, err = Partition([]int{1, 2, 3}, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1}, {2}, {3}}, got)
}

func TestPartition_GroupsDoNotOverlap(t *testing.T) {
	seq := []int{1, 2, 3, 4, 5}
	got, err := Partition(seq, 2)
	require.NoError(t, err)
	got[0] = append(got[0], 99)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, seq)
}

func TestPartition_TooShort(t *testing.T) {
	_, err := Partition([]int{1, 2}, 3)
	var fe FormatError
	require.True(t, errors.As(err, &fe))

	_, err = Partition([]int{1, 2}, 0)
	require.True(t, errors.As(err, &fe))
}

func TestSplitHex(t *testing.T) {
	assert.Equal(t, []string{"42", "4d", "36"}, SplitHex("424d36"))
	assert.Equal(t, []string{"ab", "c"}, SplitHex("abc"))
	assert.Empty(t, SplitHex(""))
}

func TestReadUint(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want uint64
	}{
		{"OffsetField", []byte{0x36, 0x00, 0x00, 0x00}, 54},
		{"BitDepth", []byte{0x18, 0x00}, 24},
		{"Width480", []byte{0xe0, 0x01, 0x00, 0x00}, 480},
		{"Empty", nil, 0},
		// Sorting these bytes before reading would give 0x0102.
		{"UnsortedBytes", []byte{0x01, 0x02}, 0x0201},
		{"InteriorZero", []byte{0x01, 0x00, 0x02, 0x00}, 0x020001},
		{"AllSet", []byte{0xff, 0xff, 0xff, 0xff}, 0xffffffff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadUint(tt.in))
		})
	}
}
