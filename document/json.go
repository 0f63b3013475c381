package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sap-gg/concatdeep/merge"
)

var _ Codec = (*JSONCodec)(nil)

// JSONCodec reads and writes JSON documents, keeping object member order.
// Integral numbers decode to int64, all others to float64. Empty input and a
// top-level null decode to an empty collection.
type JSONCodec struct{}

func (c *JSONCodec) Name() string {
	return "json"
}

func (c *JSONCodec) Decode(ctx context.Context, r io.Reader, opts merge.Options) (*merge.Collection, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeJSONValue(dec, opts)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return merge.New(), nil
		}
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode JSON: unexpected data after top-level value")
	}
	if v == nil {
		return merge.New(), nil
	}
	return merge.FromValue(v, opts)
}

func (c *JSONCodec) Encode(ctx context.Context, w io.Writer, coll *merge.Collection) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(coll); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// decodeJSONValue reads one value from the token stream. Objects become
// collections in member order; a repeated member replaces the earlier value.
func decodeJSONValue(dec *json.Decoder, opts merge.Options) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			out := merge.New()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				name, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				k, err := merge.KeyFor(name, opts)
				if err != nil {
					return nil, err
				}
				value, err := decodeJSONValue(dec, opts)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", name, noEOF(err))
				}
				out.Set(k, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, noEOF(err)
			}
			return out, nil
		case '[':
			out := merge.NewSequence()
			for i := 0; dec.More(); i++ {
				value, err := decodeJSONValue(dec, opts)
				if err != nil {
					return nil, fmt.Errorf("%d: %w", i, noEOF(err))
				}
				out.Set(merge.PositionalKey(i), value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, noEOF(err)
			}
			return out, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", t, err)
		}
		return f, nil
	default:
		// string, bool or nil
		return t, nil
	}
}

// noEOF keeps a truncated document from looking like an empty one.
func noEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
