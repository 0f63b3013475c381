package merge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Entry is a single key/value pair of a Collection.
type Entry struct {
	Key   Key
	Value any
}

// Collection is an ordered map whose keys are either positional or named.
// A collection holding exactly the positional keys 0..n-1, in order, is a sequence.
// Values are scalars or nested *Collection.
type Collection struct {
	entries []Entry
	index   map[Key]int
}

// New returns an empty collection.
func New() *Collection {
	return &Collection{index: make(map[Key]int)}
}

// NewSequence returns a sequence holding values in order.
func NewSequence(values ...any) *Collection {
	c := &Collection{
		entries: make([]Entry, 0, len(values)),
		index:   make(map[Key]int, len(values)),
	}
	for i, v := range values {
		c.Set(PositionalKey(i), v)
	}
	return c
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Has reports whether k is present.
func (c *Collection) Has(k Key) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[k]
	return ok
}

// Get returns the value stored under k.
func (c *Collection) Get(k Key) (any, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[k]
	if !ok {
		return nil, false
	}
	return c.entries[i].Value, true
}

// Set stores v under k. An existing entry keeps its place, a new one goes last.
// v is stored as given; use FromValue for plain maps and slices.
func (c *Collection) Set(k Key, v any) {
	if c.index == nil {
		c.index = make(map[Key]int)
	}
	if i, ok := c.index[k]; ok {
		c.entries[i].Value = v
		return
	}
	c.index[k] = len(c.entries)
	c.entries = append(c.entries, Entry{Key: k, Value: v})
}

// Append adds v as a new positional entry the way list concatenation does:
// the positional keys already present are renumbered 0..n-1 in entry order,
// named keys are left alone, and v is stored under n.
func (c *Collection) Append(v any) {
	next := 0
	renumbered := false
	for i := range c.entries {
		if !c.entries[i].Key.IsPositional() {
			continue
		}
		if c.entries[i].Key.index != next {
			c.entries[i].Key = PositionalKey(next)
			renumbered = true
		}
		next++
	}
	if renumbered {
		c.reindex()
	}
	c.Set(PositionalKey(next), v)
}

func (c *Collection) reindex() {
	c.index = make(map[Key]int, len(c.entries))
	for i, e := range c.entries {
		c.index[e.Key] = i
	}
}

// Entries returns a copy of the entries in order. Nested collections are shared.
func (c *Collection) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Keys returns the keys in order.
func (c *Collection) Keys() []Key {
	if c == nil {
		return nil
	}
	keys := make([]Key, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Key
	}
	return keys
}

// IsSequence reports whether the keys are exactly 0..n-1 in order.
// The empty collection is a sequence.
func (c *Collection) IsSequence() bool {
	if c == nil {
		return true
	}
	for i, e := range c.entries {
		if !e.Key.IsPositional() || e.Key.index != i {
			return false
		}
	}
	return true
}

// Values returns the values in order. Nested collections are shared.
func (c *Collection) Values() []any {
	if c == nil {
		return nil
	}
	out := make([]any, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Value
	}
	return out
}

// Clone returns a deep copy of c.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return New()
	}
	out := &Collection{
		entries: make([]Entry, len(c.entries)),
		index:   make(map[Key]int, len(c.entries)),
	}
	for i, e := range c.entries {
		out.entries[i] = Entry{Key: e.Key, Value: cloneValue(e.Value)}
		out.index[e.Key] = i
	}
	return out
}

// Equal reports whether both collections hold equal entries in the same order.
// Scalars are compared with reflect.DeepEqual.
func (c *Collection) Equal(other *Collection) bool {
	if c.Len() != other.Len() {
		return false
	}
	for i, e := range c.Entries() {
		o := other.entries[i]
		if e.Key != o.Key {
			return false
		}
		ec, eIsColl := e.Value.(*Collection)
		oc, oIsColl := o.Value.(*Collection)
		switch {
		case eIsColl && oIsColl:
			if !ec.Equal(oc) {
				return false
			}
		case eIsColl || oIsColl:
			return false
		case !reflect.DeepEqual(e.Value, o.Value):
			return false
		}
	}
	return true
}

// Native converts c into plain Go values: sequences become []any and
// everything else map[string]any keyed by Key.String. It fails with
// ErrKeyCollision when two keys render to the same string.
func (c *Collection) Native() (any, error) {
	if c.IsSequence() && c.Len() > 0 {
		out := make([]any, len(c.entries))
		for i, e := range c.entries {
			v, err := nativeValue(e.Value)
			if err != nil {
				return nil, fmt.Errorf("%d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	}

	if err := c.checkRenderedKeys(); err != nil {
		return nil, err
	}
	out := make(map[string]any, c.Len())
	for _, e := range c.Entries() {
		v, err := nativeValue(e.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Key, err)
		}
		out[e.Key.String()] = v
	}
	return out, nil
}

// MarshalJSON writes sequences as arrays and other collections as objects,
// keeping entry order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if c.IsSequence() && c.Len() > 0 {
		buf.WriteByte('[')
		for i, e := range c.entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(&buf, e.Value); err != nil {
				return nil, err
			}
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}

	if err := c.checkRenderedKeys(); err != nil {
		return nil, err
	}
	buf.WriteByte('{')
	for i, e := range c.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONValue(&buf, e.Key.String()); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONValue(&buf, e.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// checkRenderedKeys makes sure no two keys share their string form.
func (c *Collection) checkRenderedKeys() error {
	seen := make(map[string]struct{}, c.Len())
	for _, e := range c.Entries() {
		name := e.Key.String()
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: positional and named key %q", ErrKeyCollision, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// writeJSONValue leaves HTML escaping to the caller's encoder settings.
func writeJSONValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates each value with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

func nativeValue(v any) (any, error) {
	if c, ok := v.(*Collection); ok {
		return c.Native()
	}
	return v, nil
}

func cloneValue(v any) any {
	if c, ok := v.(*Collection); ok {
		return c.Clone()
	}
	return v
}
