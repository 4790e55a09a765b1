package hasher

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// FingerprintLen is the number of hex digits in a full fingerprint.
const FingerprintLen = 16

// Fingerprint returns the xxHash64 of data as 16 lowercase hex digits. The
// manifest records it for every written output so a rerun can tell whether
// a file changed.
func Fingerprint(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// FingerprintReader is Fingerprint over a stream.
func FingerprintReader(r io.Reader) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Short truncates a fingerprint to n digits; n outside (0, FingerprintLen)
// returns it unchanged.
func Short(fp string, n int) string {
	if n > 0 && n < len(fp) {
		return fp[:n]
	}
	return fp
}
