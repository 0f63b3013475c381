package document

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/sap-gg/concatdeep/internal"
	"github.com/sap-gg/concatdeep/merge"
)

var _ Codec = (*YAMLCodec)(nil)

// YAMLCodec reads and writes YAML documents, keeping mapping order.
// Sequences are written as YAML lists, every other collection as a mapping
// with integer keys for positional entries.
type YAMLCodec struct{}

func (c *YAMLCodec) Name() string {
	return "yaml"
}

func (c *YAMLCodec) Decode(ctx context.Context, r io.Reader, opts merge.Options) (*merge.Collection, error) {
	var v any
	if err := internal.NewYAMLDecoder(r).DecodeContext(ctx, &v); err != nil {
		if errors.Is(err, io.EOF) {
			return merge.New(), nil
		}
		return nil, internal.WrapDecodeError("decode YAML", err)
	}
	if v == nil {
		return merge.New(), nil
	}

	tree, err := fromMapSlice(v, opts)
	if err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	return merge.FromValue(tree, opts)
}

func (c *YAMLCodec) Encode(ctx context.Context, w io.Writer, coll *merge.Collection) error {
	enc := internal.NewYAMLEncoder(w)
	if err := enc.EncodeContext(ctx, toMapSlice(coll)); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return enc.Close()
}

// fromMapSlice turns the ordered YAML tree into collections.
func fromMapSlice(v any, opts merge.Options) (any, error) {
	switch t := v.(type) {
	case yaml.MapSlice:
		out := merge.New()
		for _, item := range t {
			k, err := merge.KeyFor(item.Key, opts)
			if err != nil {
				return nil, err
			}
			value, err := fromMapSlice(item.Value, opts)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out.Set(k, value)
		}
		return out, nil
	case []any:
		out := merge.NewSequence()
		for i, item := range t {
			value, err := fromMapSlice(item, opts)
			if err != nil {
				return nil, fmt.Errorf("%d: %w", i, err)
			}
			out.Set(merge.PositionalKey(i), value)
		}
		return out, nil
	default:
		return v, nil
	}
}

func toMapSlice(c *merge.Collection) any {
	if c.Len() > 0 && c.IsSequence() {
		out := make([]any, 0, c.Len())
		for _, v := range c.Values() {
			out = append(out, toMapSliceValue(v))
		}
		return out
	}

	out := make(yaml.MapSlice, 0, c.Len())
	for _, e := range c.Entries() {
		var key any = e.Key.Name()
		if e.Key.IsPositional() {
			key = e.Key.Index()
		}
		out = append(out, yaml.MapItem{Key: key, Value: toMapSliceValue(e.Value)})
	}
	return out
}

func toMapSliceValue(v any) any {
	if c, ok := v.(*merge.Collection); ok {
		return toMapSlice(c)
	}
	return v
}
