package hexutil

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// HexToDecimal converts a hex token to its integer value.
//
// Accepted tokens:
//   - a 1 or 2 digit hex string ("ff", "0A", "7"), case-insensitive
//   - a "0x"-prefixed literal ("0x1a"), which must evaluate to a non-zero number
//   - an integer value, returned unchanged
func HexToDecimal(token any) (int, error) {
	switch v := token.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint64:
		return int(v), nil
	case string:
		return parseHexToken(v)
	default:
		return 0, FormatError(fmt.Sprintf("unsupported token type %T", token))
	}
}

func parseHexToken(s string) (int, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil || n == 0 {
			return 0, FormatError(fmt.Sprintf("must be hex: %q", s))
		}
		return int(n), nil
	}
	if len(s) == 0 || len(s) > 2 {
		return 0, FormatError(fmt.Sprintf("hex byte token must be 1 or 2 digits: %q", s))
	}
	n, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, FormatError(fmt.Sprintf("must be hex: %q", s))
	}
	return int(n), nil
}

// DecimalToHex renders an integer in [0,255] as a two-digit lowercase hex
// token. Zero encodes as "00".
func DecimalToHex(value any) (string, error) {
	var n int64
	switch v := value.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	case int32:
		n = int64(v)
	case uint8:
		return ByteToHex(v), nil
	case uint32:
		n = int64(v)
	case uint64:
		if v > 255 {
			return "", FormatError(fmt.Sprintf("value %d out of byte range", v))
		}
		n = int64(v)
	default:
		return "", FormatError(fmt.Sprintf("decimal input must be an integer, got %T", value))
	}
	if n < 0 || n > 255 {
		return "", FormatError(fmt.Sprintf("value %d out of byte range", n))
	}
	return ByteToHex(byte(n)), nil
}

// ByteToHex is DecimalToHex for values already known to fit a byte.
func ByteToHex(b byte) string {
	return hex.EncodeToString([]byte{b})
}
