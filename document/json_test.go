package document

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sap-gg/concatdeep/merge"
)

func TestJSONCodec(t *testing.T) {
	ctx := context.Background()
	codec := &JSONCodec{}

	t.Run("should decode objects in member order", func(t *testing.T) {
		doc := `{"z": {"b": 1.5, "a": 2}, "list": [1, "x", null, false], "0": "zero"}`
		c, err := codec.Decode(ctx, strings.NewReader(doc), merge.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, `{"z":{"b":1.5,"a":2},"list":[1,"x",null,false],"0":"zero"}`, compactJSON(t, c))

		z, _ := c.Get(merge.NamedKey("z"))
		a, _ := z.(*merge.Collection).Get(merge.NamedKey("a"))
		assert.Equal(t, int64(2), a)
		b, _ := z.(*merge.Collection).Get(merge.NamedKey("b"))
		assert.Equal(t, 1.5, b)
		assert.True(t, c.Has(merge.PositionalKey(0)))
	})

	t.Run("should let repeated members replace earlier ones in place", func(t *testing.T) {
		c, err := codec.Decode(ctx, strings.NewReader(`{"a": 1, "b": 2, "a": 3}`), merge.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, `{"a":3,"b":2}`, compactJSON(t, c))
	})

	t.Run("should decode empty input and null as an empty collection", func(t *testing.T) {
		for _, doc := range []string{"  \n", "null", " null\n"} {
			c, err := codec.Decode(ctx, strings.NewReader(doc), merge.DefaultOptions())
			require.NoError(t, err, "document %q", doc)
			assert.Equal(t, 0, c.Len())
		}
	})

	t.Run("should fail on truncated documents", func(t *testing.T) {
		_, err := codec.Decode(ctx, strings.NewReader(`{"a": [1, 2`), merge.DefaultOptions())
		require.Error(t, err)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("should fail on trailing data", func(t *testing.T) {
		_, err := codec.Decode(ctx, strings.NewReader(`{"a": 1} {"b": 2}`), merge.DefaultOptions())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "after top-level value")
	})

	t.Run("should reject scalar documents", func(t *testing.T) {
		_, err := codec.Decode(ctx, strings.NewReader(`"text"`), merge.DefaultOptions())
		assert.ErrorIs(t, err, merge.ErrInvalidArgumentType)
	})

	t.Run("should encode with indentation and entry order", func(t *testing.T) {
		c := merge.New()
		c.Set(merge.NamedKey("b"), merge.NewSequence(true, nil))
		c.Set(merge.NamedKey("a"), "<x>")

		var buf bytes.Buffer
		require.NoError(t, codec.Encode(ctx, &buf, c))
		expected := `{
  "b": [
    true,
    null
  ],
  "a": "<x>"
}
`
		assert.Equal(t, expected, buf.String())
	})

	t.Run("should stop on a canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := codec.Decode(canceled, strings.NewReader(`{}`), merge.DefaultOptions())
		assert.ErrorIs(t, err, context.Canceled)
	})
}
