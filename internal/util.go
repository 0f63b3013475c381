package internal

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// NewYAMLDecoder creates a new YAML decoder that keeps mapping order.
func NewYAMLDecoder(reader io.Reader, opts ...yaml.DecodeOption) *yaml.Decoder {
	return yaml.NewDecoder(reader,
		append(opts, yaml.UseOrderedMap())...)
}

// NewYAMLEncoder creates a new YAML encoder with an indentation of 2 spaces.
func NewYAMLEncoder(writer io.Writer, opts ...yaml.EncodeOption) *yaml.Encoder {
	return yaml.NewEncoder(writer,
		append(opts, yaml.Indent(2))...)
}

// FormatDecodeError returns the annotated source excerpt of a YAML decoding error.
// It reports false if err is not a YAML error.
func FormatDecodeError(err error) (string, bool) {
	var yamlError yaml.Error
	if errors.As(err, &yamlError) {
		return yamlError.FormatError(false, true), true
	}
	return "", false
}

// WrapDecodeError wraps err with context, appending the YAML source excerpt when there is one.
func WrapDecodeError(what string, err error) error {
	if formatted, ok := FormatDecodeError(err); ok {
		return fmt.Errorf("%s: %w\n%s", what, err, formatted)
	}
	return fmt.Errorf("%s: %w", what, err)
}
