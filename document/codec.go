// Package document converts YAML, JSON, TOML and Java properties documents
// into merge.Collection values and back, and merges documents of any of
// these formats with merge.ConcatDeep.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sap-gg/concatdeep/merge"
)

// ErrUnrepresentable is returned when a collection cannot be written in a format.
var ErrUnrepresentable = errors.New("not representable in target format")

// Codec decodes documents into collections and encodes collections into documents.
type Codec interface {
	// Name returns a human-friendly codec name for logging.
	Name() string

	// Decode reads a single document. An empty document yields an empty collection.
	Decode(ctx context.Context, r io.Reader, opts merge.Options) (*merge.Collection, error)

	// Encode writes c as a single document.
	Encode(ctx context.Context, w io.Writer, c *merge.Collection) error
}

// Registry maps file extensions to codecs.
type Registry struct {
	byExtension map[string]Codec
	// fallback is used if no codec matches the file extension.
	fallback Codec
}

// NewRegistry constructs a registry.
func NewRegistry(fallback Codec, mappings map[string]Codec) (*Registry, error) {
	if fallback == nil {
		return nil, fmt.Errorf("fallback codec cannot be nil")
	}
	byExt := make(map[string]Codec)
	for ext, c := range mappings {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || !strings.HasPrefix(ext, ".") {
			return nil, fmt.Errorf("invalid extension key for codec: %q", ext)
		}
		if c == nil {
			return nil, fmt.Errorf("codec for %q cannot be nil", ext)
		}
		byExt[ext] = c
	}
	return &Registry{
		byExtension: byExt,
		fallback:    fallback,
	}, nil
}

// DefaultRegistry knows .yaml, .yml, .json, .toml and .properties and falls back to YAML.
func DefaultRegistry() *Registry {
	yamlCodec := &YAMLCodec{}
	r, err := NewRegistry(yamlCodec, map[string]Codec{
		".yaml":       yamlCodec,
		".yml":        yamlCodec,
		".json":       &JSONCodec{},
		".toml":       &TOMLCodec{},
		".properties": &PropertiesCodec{},
	})
	if err != nil {
		panic(err)
	}
	return r
}

// For returns the codec for a given filename and whether it matched by extension.
func (r *Registry) For(filename string) (Codec, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	if c, ok := r.byExtension[ext]; ok {
		return c, true
	}
	return r.fallback, false
}

// Fallback returns the fallback codec.
func (r *Registry) Fallback() Codec {
	return r.fallback
}

// Best-effort context check, no I/O cancellation
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
