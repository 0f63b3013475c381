package document

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/magiconair/properties"

	"github.com/sap-gg/concatdeep/merge"
)

var _ Codec = (*PropertiesCodec)(nil)

// PropertiesCodec reads and writes Java properties files.
// Dotted keys nest: "server.hosts.0=a" decodes to {server: {hosts: [a]}}, and
// encoding flattens collections back the same way. Values are strings on the
// way in and formatted with fmt.Sprint on the way out. ${} expansion is disabled.
type PropertiesCodec struct{}

func (c *PropertiesCodec) Name() string {
	return "properties"
}

func (c *PropertiesCodec) Decode(ctx context.Context, r io.Reader, opts merge.Options) (*merge.Collection, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read properties: %w", err)
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(buf)
	if err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	p.DisableExpansion = true

	out := merge.New()
	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		if err := setPath(out, strings.Split(key, "."), value, opts); err != nil {
			return nil, fmt.Errorf("decode properties: key %q: %w", key, err)
		}
	}
	return merge.FromValue(out, opts)
}

func (c *PropertiesCodec) Encode(ctx context.Context, w io.Writer, coll *merge.Collection) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	p := properties.NewProperties()
	p.DisableExpansion = true
	if err := flatten(p, "", coll); err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}
	if _, err := p.Write(w, properties.UTF8); err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}
	return nil
}

func setPath(c *merge.Collection, segments []string, value string, opts merge.Options) error {
	k, err := merge.KeyFor(segments[0], opts)
	if err != nil {
		return err
	}
	existing, exists := c.Get(k)

	if len(segments) == 1 {
		if _, isTable := existing.(*merge.Collection); isTable {
			return fmt.Errorf("%q already holds nested keys", k)
		}
		c.Set(k, value)
		return nil
	}

	if !exists {
		child := merge.New()
		c.Set(k, child)
		return setPath(child, segments[1:], value, opts)
	}
	child, ok := existing.(*merge.Collection)
	if !ok {
		return fmt.Errorf("%q already holds a value", k)
	}
	return setPath(child, segments[1:], value, opts)
}

func flatten(p *properties.Properties, prefix string, c *merge.Collection) error {
	for _, e := range c.Entries() {
		key := joinPath(prefix, e.Key.String())
		if nested, ok := e.Value.(*merge.Collection); ok {
			if err := flatten(p, key, nested); err != nil {
				return err
			}
			continue
		}

		if _, dup := p.Get(key); dup {
			return fmt.Errorf("%s: %w", key, merge.ErrKeyCollision)
		}
		var value string
		if e.Value != nil {
			value = fmt.Sprint(e.Value)
		}
		if _, _, err := p.Set(key, value); err != nil {
			return fmt.Errorf("set %q: %w", key, err)
		}
	}
	return nil
}
