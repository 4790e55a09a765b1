package bmp

import (
	"fmt"
	"strings"

	"github.com/futurist-future/image-converter/internal/hexutil"
)

// DecodeHex decodes a bitmap given as hex text, two digits per byte.
// Surrounding whitespace is ignored.
func DecodeHex(s string) (*Image, error) {
	tokens := hexutil.SplitHex(strings.TrimSpace(s))
	data := make([]byte, len(tokens))
	for i, tok := range tokens {
		if len(tok) != 2 {
			return nil, fmt.Errorf("bmp: hex token %d: %w", i, hexutil.FormatError("odd number of hex digits"))
		}
		v, err := hexutil.HexToDecimal(tok)
		if err != nil {
			return nil, fmt.Errorf("bmp: hex token %d: %w", i, err)
		}
		data[i] = byte(v)
	}
	return Decode(data)
}

// Hex encodes img and renders the result as lowercase hex text.
func (img *Image) Hex() (string, error) {
	data, err := Encode(img)
	if err != nil {
		return "", err
	}
	return HexString(data)
}

// HexString renders raw bytes as lowercase hex text, two digits per byte.
func HexString(data []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(data) * 2)
	for _, b := range data {
		tok, err := hexutil.DecimalToHex(int(b))
		if err != nil {
			return "", err
		}
		sb.WriteString(tok)
	}
	return sb.String(), nil
}
