package merge

// DefaultMaxDepth is the nesting limit used by DefaultOptions.
const DefaultMaxDepth = 512

// Options control how plain Go values are turned into collections.
// They do not change how ConcatDeep folds collections.
//
// The zero Options treat "0" and 0 as the same key and set no depth limit.
type Options struct {
	// KeepNumericStringKeys keeps string keys in canonical decimal form ("0", "12")
	// as named keys instead of turning them into positional keys.
	// A collection built this way can hold both "0" and 0, which Native and
	// MarshalJSON refuse to render.
	KeepNumericStringKeys bool

	// MaxDepth limits nesting depth. Zero means no limit.
	MaxDepth int
}

// DefaultOptions returns the options used by document codecs unless configured otherwise.
func DefaultOptions() Options {
	return Options{
		MaxDepth: DefaultMaxDepth,
	}
}
