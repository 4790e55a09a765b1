package encoder

import (
	"fmt"
	"strings"
)

// Registry maps preview format names to encoders.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry holding every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range []Encoder{&PNGEncoder{}, &JPEGEncoder{}, &BMPEncoder{}} {
		r.encoders[enc.Format()] = enc
	}
	r.encoders["jpg"] = r.encoders["jpeg"]
	return r
}

// Get returns an encoder for the given format, or nil if unknown.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[strings.ToLower(strings.TrimSpace(format))]
}

// Resolve returns the encoder for format or an error naming the known ones.
func (r *Registry) Resolve(format string) (Encoder, error) {
	if enc := r.Get(format); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unknown export format %q (want one of %s)", format, strings.Join(r.Available(), ", "))
}

// Available returns all format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"png", "jpeg", "bmp"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	return fmt.Sprintf("preview encoders: %s", strings.Join(r.Available(), ", "))
}
