package merge

import (
	"fmt"
	"strconv"
)

// KeyKind tells positional keys apart from named ones.
type KeyKind int

const (
	Positional KeyKind = iota
	Named
)

// Key identifies an entry of a Collection. It is either a non-negative index
// (sequence membership) or a name (map membership).
type Key struct {
	kind  KeyKind
	index int
	name  string
}

// PositionalKey returns the key for index i. It panics if i is negative.
func PositionalKey(i int) Key {
	if i < 0 {
		panic(fmt.Sprintf("merge: negative positional key %d", i))
	}
	return Key{kind: Positional, index: i}
}

// NamedKey returns the key for name s.
func NamedKey(s string) Key {
	return Key{kind: Named, name: s}
}

func (k Key) Kind() KeyKind {
	return k.kind
}

func (k Key) IsPositional() bool {
	return k.kind == Positional
}

// Index returns the position of a positional key, or -1 for named keys.
func (k Key) Index() int {
	if k.kind != Positional {
		return -1
	}
	return k.index
}

// Name returns the name of a named key, or "" for positional keys.
func (k Key) Name() string {
	return k.name
}

// String renders positional keys as decimal text and named keys verbatim.
func (k Key) String() string {
	if k.kind == Positional {
		return strconv.Itoa(k.index)
	}
	return k.name
}

// KeyFor converts a Go map key into a Key.
// Non-negative integers become positional keys, negative ones are named by their decimal text.
// Strings in canonical decimal form become positional keys unless opts.KeepNumericStringKeys is set.
func KeyFor(k any, opts Options) (Key, error) {
	switch v := k.(type) {
	case Key:
		return v, nil
	case string:
		if !opts.KeepNumericStringKeys {
			if i, ok := canonicalIndex(v); ok {
				return PositionalKey(i), nil
			}
		}
		return NamedKey(v), nil
	case int:
		return intKey(int64(v)), nil
	case int8:
		return intKey(int64(v)), nil
	case int16:
		return intKey(int64(v)), nil
	case int32:
		return intKey(int64(v)), nil
	case int64:
		return intKey(v), nil
	case uint:
		return uintKey(uint64(v))
	case uint8:
		return uintKey(uint64(v))
	case uint16:
		return uintKey(uint64(v))
	case uint32:
		return uintKey(uint64(v))
	case uint64:
		return uintKey(v)
	default:
		return Key{}, fmt.Errorf("%w: unsupported key type %T", ErrInvalidArgumentType, k)
	}
}

func intKey(i int64) Key {
	if i < 0 || i > int64(maxInt) {
		return NamedKey(strconv.FormatInt(i, 10))
	}
	return PositionalKey(int(i))
}

func uintKey(u uint64) (Key, error) {
	if u > uint64(maxInt) {
		return Key{}, fmt.Errorf("%w: key %d overflows int", ErrInvalidArgumentType, u)
	}
	return PositionalKey(int(u)), nil
}

const maxInt = int(^uint(0) >> 1)

// canonicalIndex reports whether s is a non-negative decimal without
// leading zeros or sign, e.g. "0" or "42" but not "07" or "+1".
func canonicalIndex(s string) (int, bool) {
	if s == "" || len(s) > 1 && s[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, true
}
