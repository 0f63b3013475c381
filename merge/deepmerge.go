package merge

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// ConcatDeep recursively combines collections into a new one.
//
// Collections are folded from last to first: each one in turn becomes the base
// and everything merged so far is folded into it. A key missing from the base
// is added at the end. A positional key already present is appended, never
// overwritten. A named key already present is merged recursively, base value
// first; scalars are wrapped into one-entry sequences for that, so two
// conflicting scalars end up side by side in a sequence.
//
// Plain maps and slices stored with Collection.Set are converted as FromValue
// does with the zero Options once they meet a conflicting key; values that
// cannot be converted count as scalars.
//
// Nil collections are skipped and no input is modified.
func ConcatDeep(collections ...*Collection) *Collection {
	log.Trace().Int("collections", len(collections)).Msg("concat deep")

	acc := New()
	for i := len(collections) - 1; i >= 0; i-- {
		if collections[i] == nil {
			continue
		}
		base := collections[i].Clone()
		for _, e := range acc.entries {
			existing, ok := base.Get(e.Key)
			switch {
			case !ok:
				base.Set(e.Key, e.Value)
			case e.Key.IsPositional():
				base.Append(e.Value)
			default:
				base.Set(e.Key, ConcatDeep(coerce(existing), coerce(e.Value)))
			}
		}
		acc = base
	}
	return acc
}

// ConcatDeepValues normalizes every value with FromValue and merges the results.
// Nothing is merged unless all values are valid.
func ConcatDeepValues(opts Options, values ...any) (*Collection, error) {
	collections := make([]*Collection, len(values))
	for i, v := range values {
		c, err := FromValue(v, opts)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		collections[i] = c
	}
	return ConcatDeep(collections...), nil
}

// coerce wraps a scalar into a one-entry sequence. Nil becomes an empty collection.
func coerce(v any) *Collection {
	switch t := v.(type) {
	case *Collection:
		if t == nil {
			return New()
		}
		return t
	case nil:
		return New()
	}
	if n, err := normalize(v, Options{}, 1); err == nil {
		if c, ok := n.(*Collection); ok {
			return c
		}
	}
	return NewSequence(v)
}
