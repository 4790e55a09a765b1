// Package hexutil holds the small byte-level helpers the BMP codec is built
// on: hex token conversion, chunking/partitioning of flat sequences and
// little-endian field reads.
package hexutil

// FormatError reports a malformed hex token, an out-of-range value or a
// sequence that cannot be split as requested.
type FormatError string

func (e FormatError) Error() string { return "hexutil: invalid format: " + string(e) }
