package hexutil

import (
	"fmt"
	"iter"

	"github.com/samber/lo"
)

// Chunks lazily yields consecutive subslices of seq holding size elements
// each; the last one holds the remainder. A size of zero or less yields the
// whole sequence as a single chunk. An empty sequence yields nothing.
//
// The yielded slices alias seq.
func Chunks[T any](seq []T, size int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if len(seq) == 0 {
			return
		}
		if size <= 0 {
			yield(seq[:len(seq):len(seq)])
			return
		}
		for i := 0; i < len(seq); i += size {
			end := min(i+size, len(seq))
			if !yield(seq[i:end:end]) {
				return
			}
		}
	}
}

// Chunk is the materialized form of Chunks.
func Chunk[T any](seq []T, size int) [][]T {
	if len(seq) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]T{seq[:len(seq):len(seq)]}
	}
	return lo.Chunk(seq, size)
}

// Partition splits seq into exactly parts ordered groups. Every group but the
// last holds len(seq)/parts elements; the last also absorbs the remainder.
func Partition[T any](seq []T, parts int) ([][]T, error) {
	if parts <= 0 {
		return nil, FormatError(fmt.Sprintf("partition count must be positive, got %d", parts))
	}
	if len(seq) < parts {
		return nil, FormatError(fmt.Sprintf("cannot partition %d elements into %d groups", len(seq), parts))
	}
	base := len(seq) / parts
	out := make([][]T, parts)
	for i := 0; i < parts-1; i++ {
		out[i] = seq[i*base : (i+1)*base : (i+1)*base]
	}
	out[parts-1] = seq[(parts-1)*base:]
	return out, nil
}

// SplitHex cuts a hex string into two-character byte tokens. An odd trailing
// digit becomes a one-character token.
func SplitHex(s string) []string {
	tokens := make([]string, 0, (len(s)+1)/2)
	for c := range Chunks([]byte(s), 2) {
		tokens = append(tokens, string(c))
	}
	return tokens
}
