package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValue(t *testing.T) {
	t.Run("Map keys should be sorted, positional first", func(t *testing.T) {
		c, err := FromValue(map[any]any{"b": 1, 2: "two", "a": 3, 0: "zero"}, Options{})
		require.NoError(t, err)
		assert.Equal(t, []Key{PositionalKey(0), PositionalKey(2), NamedKey("a"), NamedKey("b")}, c.Keys())
	})

	t.Run("Numeric string keys should become positional unless kept", func(t *testing.T) {
		c, err := FromValue(values{"1": "b", "0": "a"}, Options{})
		require.NoError(t, err)
		assert.True(t, c.IsSequence())
		assert.Equal(t, []any{"a", "b"}, c.Values())

		c, err = FromValue(values{"1": "b", "0": "a"}, Options{KeepNumericStringKeys: true})
		require.NoError(t, err)
		assert.Equal(t, []Key{NamedKey("0"), NamedKey("1")}, c.Keys())
	})

	t.Run("Colliding keys should fail", func(t *testing.T) {
		_, err := FromValue(map[any]any{0: "a", "0": "b"}, Options{})
		assert.ErrorIs(t, err, ErrInvalidArgumentType)
	})

	t.Run("Typed maps and slices should be converted recursively", func(t *testing.T) {
		c, err := FromValue(map[string][]string{"hosts": {"a", "b"}}, Options{})
		require.NoError(t, err)
		assert.Equal(t, values{"hosts": []any{"a", "b"}}, native(t, c))
	})

	t.Run("Arrays should become sequences", func(t *testing.T) {
		c, err := FromValue([2]int{7, 8}, Options{})
		require.NoError(t, err)
		assert.Equal(t, []any{7, 8}, native(t, c))
	})

	t.Run("Byte slices should stay scalars", func(t *testing.T) {
		c, err := FromValue(values{"raw": []byte("hi")}, Options{})
		require.NoError(t, err)
		got, _ := c.Get(NamedKey("raw"))
		assert.Equal(t, []byte("hi"), got)
	})

	t.Run("Collections should be copied", func(t *testing.T) {
		nested := col(t, "x", 1)
		original := col(t, "n", nested)
		c, err := FromValue(original, Options{})
		require.NoError(t, err)
		require.True(t, c.Equal(original))
		got, _ := c.Get(NamedKey("n"))
		assert.NotSame(t, nested, got)
	})

	t.Run("Top level scalars should fail", func(t *testing.T) {
		for _, v := range []any{nil, "x", 42, []byte("raw")} {
			_, err := FromValue(v, Options{})
			assert.ErrorIs(t, err, ErrInvalidArgumentType, "value %#v", v)
		}
	})

	t.Run("Functions and channels should fail", func(t *testing.T) {
		_, err := FromValue(values{"f": func() {}}, Options{})
		assert.ErrorIs(t, err, ErrInvalidArgumentType)

		_, err = FromValue([]any{1, make(chan int)}, Options{})
		require.ErrorIs(t, err, ErrInvalidArgumentType)
		assert.Contains(t, err.Error(), "1: ")
	})

	t.Run("Unsupported key types should fail", func(t *testing.T) {
		_, err := FromValue(map[float64]any{1.5: "x"}, Options{})
		assert.ErrorIs(t, err, ErrInvalidArgumentType)
	})

	t.Run("Nesting beyond MaxDepth should fail", func(t *testing.T) {
		deep := values{"a": values{"b": values{"c": 1}}}

		_, err := FromValue(deep, Options{MaxDepth: 2})
		require.ErrorIs(t, err, ErrMaxDepthExceeded)
		assert.Contains(t, err.Error(), "a: b: ")

		_, err = FromValue(deep, Options{MaxDepth: 3})
		assert.NoError(t, err)

		_, err = FromValue(deep, Options{})
		assert.NoError(t, err)
	})

	t.Run("Structs should be kept as scalars", func(t *testing.T) {
		type point struct{ X, Y int }
		c, err := FromValue(values{"p": point{1, 2}}, Options{})
		require.NoError(t, err)
		got, _ := c.Get(NamedKey("p"))
		assert.Equal(t, point{1, 2}, got)
	})
}

func TestCollectionNative(t *testing.T) {
	c := col(t,
		"list", NewSequence(1, NewSequence(2)),
		"map", col(t, 0, "a", 2, "b"),
		"empty", New(),
	)
	assert.Equal(t, values{
		"list":  []any{1, []any{2}},
		"map":   values{"0": "a", "2": "b"},
		"empty": values{},
	}, native(t, c))
}
