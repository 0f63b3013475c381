package document

import (
	"context"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/sap-gg/concatdeep/merge"
)

var _ Codec = (*TOMLCodec)(nil)

// TOMLCodec reads and writes TOML documents.
// Tables are decoded into Go maps, so keys come out sorted rather than in file order.
// TOML has no null and no top-level arrays; such collections fail to encode
// with ErrUnrepresentable.
type TOMLCodec struct{}

func (c *TOMLCodec) Name() string {
	return "toml"
}

func (c *TOMLCodec) Decode(ctx context.Context, r io.Reader, opts merge.Options) (*merge.Collection, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var data map[string]any
	if err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode TOML: %w", err)
	}
	return merge.FromValue(data, opts)
}

func (c *TOMLCodec) Encode(ctx context.Context, w io.Writer, coll *merge.Collection) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if coll.Len() > 0 && coll.IsSequence() {
		return fmt.Errorf("encode TOML: top-level sequence: %w", ErrUnrepresentable)
	}

	table, err := tomlTable(coll, "")
	if err != nil {
		return fmt.Errorf("encode TOML: %w", err)
	}
	if err := toml.NewEncoder(w).Encode(table); err != nil {
		return fmt.Errorf("encode TOML: %w", err)
	}
	return nil
}

func tomlTable(c *merge.Collection, path string) (map[string]any, error) {
	out := make(map[string]any, c.Len())
	for _, e := range c.Entries() {
		name := e.Key.String()
		p := joinPath(path, name)
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("%s: %w", p, merge.ErrKeyCollision)
		}
		v, err := tomlValue(e.Value, p)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

func tomlValue(v any, path string) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("%s: null: %w", path, ErrUnrepresentable)
	case *merge.Collection:
		if t.Len() > 0 && t.IsSequence() {
			out := make([]any, 0, t.Len())
			for i, item := range t.Values() {
				iv, err := tomlValue(item, joinPath(path, fmt.Sprint(i)))
				if err != nil {
					return nil, err
				}
				out = append(out, iv)
			}
			return out, nil
		}
		return tomlTable(t, path)
	default:
		return v, nil
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
