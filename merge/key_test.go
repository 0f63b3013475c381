package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFor(t *testing.T) {
	testCases := []struct {
		name     string
		input    any
		opts     Options
		expected Key
	}{
		{name: "int", input: 3, expected: PositionalKey(3)},
		{name: "uint8", input: uint8(7), expected: PositionalKey(7)},
		{name: "negative int", input: int64(-2), expected: NamedKey("-2")},
		{name: "string", input: "name", expected: NamedKey("name")},
		{name: "numeric string kept", input: "4", opts: Options{KeepNumericStringKeys: true}, expected: NamedKey("4")},
		{name: "numeric string", input: "4", expected: PositionalKey(4)},
		{name: "zero string", input: "0", expected: PositionalKey(0)},
		{name: "leading zero", input: "07", expected: NamedKey("07")},
		{name: "signed", input: "+1", expected: NamedKey("+1")},
		{name: "empty", input: "", expected: NamedKey("")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			k, err := KeyFor(tc.input, tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, k)
		})
	}

	t.Run("Unsupported key type should fail", func(t *testing.T) {
		_, err := KeyFor(1.5, Options{})
		assert.ErrorIs(t, err, ErrInvalidArgumentType)
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "3", PositionalKey(3).String())
	assert.Equal(t, 3, PositionalKey(3).Index())
	assert.Equal(t, -1, NamedKey("a").Index())
	assert.Equal(t, "a", NamedKey("a").String())
	assert.NotEqual(t, PositionalKey(0), NamedKey("0"))
	assert.Panics(t, func() { PositionalKey(-1) })
}
