package merge

import (
	"fmt"
	"reflect"
	"sort"
)

// FromValue turns a plain Go value into a Collection.
//
// Maps with string or integer keys, slices and arrays become collections, recursively.
// Map keys are sorted since Go maps carry no order: positional keys first, ascending,
// then named keys. A *Collection is deep-copied. Anything else at the top level is
// rejected with ErrInvalidArgumentType; nested, it is kept as a scalar unless it is a
// channel, function or unsafe pointer.
func FromValue(v any, opts Options) (*Collection, error) {
	n, err := normalize(v, opts, 1)
	if err != nil {
		return nil, err
	}
	c, ok := n.(*Collection)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a collection", ErrInvalidArgumentType, v)
	}
	return c, nil
}

func normalize(v any, opts Options, depth int) (any, error) {
	switch t := v.(type) {
	case nil, bool, string, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, nil
	case *Collection:
		if err := checkDepth(opts, depth); err != nil {
			return nil, err
		}
		out := New()
		for _, e := range t.Entries() {
			nv, err := normalize(e.Value, opts, depth+1)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", e.Key, err)
			}
			out.Set(e.Key, nv)
		}
		return out, nil
	case []any:
		if err := checkDepth(opts, depth); err != nil {
			return nil, err
		}
		return normalizeSequence(len(t), func(i int) any { return t[i] }, opts, depth)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if err := checkDepth(opts, depth); err != nil {
			return nil, err
		}
		return normalizeMap(rv, opts, depth)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v, nil
		}
		if err := checkDepth(opts, depth); err != nil {
			return nil, err
		}
		return normalizeSequence(rv.Len(), func(i int) any { return rv.Index(i).Interface() }, opts, depth)
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return nil, fmt.Errorf("%w: %T", ErrInvalidArgumentType, v)
	default:
		return v, nil
	}
}

func normalizeSequence(n int, at func(int) any, opts Options, depth int) (*Collection, error) {
	out := NewSequence()
	for i := 0; i < n; i++ {
		nv, err := normalize(at(i), opts, depth+1)
		if err != nil {
			return nil, fmt.Errorf("%d: %w", i, err)
		}
		out.Set(PositionalKey(i), nv)
	}
	return out, nil
}

func normalizeMap(rv reflect.Value, opts Options, depth int) (*Collection, error) {
	type pair struct {
		key   Key
		value reflect.Value
	}

	pairs := make([]pair, 0, rv.Len())
	seen := make(map[Key]struct{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := KeyFor(iter.Key().Interface(), opts)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidArgumentType, k)
		}
		seen[k] = struct{}{}
		pairs = append(pairs, pair{key: k, value: iter.Value()})
	}

	sort.Slice(pairs, func(i, j int) bool {
		return keyLess(pairs[i].key, pairs[j].key)
	})

	out := New()
	for _, p := range pairs {
		nv, err := normalize(p.value.Interface(), opts, depth+1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.key, err)
		}
		out.Set(p.key, nv)
	}
	return out, nil
}

func keyLess(a, b Key) bool {
	if a.kind != b.kind {
		return a.kind == Positional
	}
	if a.kind == Positional {
		return a.index < b.index
	}
	return a.name < b.name
}

func checkDepth(opts Options, depth int) error {
	if opts.MaxDepth > 0 && depth > opts.MaxDepth {
		return fmt.Errorf("%w (%d)", ErrMaxDepthExceeded, opts.MaxDepth)
	}
	return nil
}
