// Package jsonutil wraps github.com/goccy/go-json with the two primitives the
// netlist codec needs: a generic tree decode that keeps numbers exact, and a
// deterministic encode (sorted map keys, no HTML escaping).
//
// goccy's decoder accepts input that RFC 8259 rejects (invalid UTF-8, raw
// control characters in strings, leading zeros, trailing NUL bytes), so
// DecodeTree runs a strict syntax pass with encoding/json before building the
// tree.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	gojson "github.com/goccy/go-json"
)

// Number is the literal form of a JSON number kept by DecodeTree.
type Number = gojson.Number

// SyntaxError is returned by DecodeTree for malformed input. Offset is the
// number of bytes read before the error was detected.
type SyntaxError struct {
	msg    string
	Offset int64
}

func (e *SyntaxError) Error() string { return e.msg }

var (
	// ErrEmptyDocument is returned when the input holds no JSON value at all.
	ErrEmptyDocument = errors.New("empty document")

	// ErrTrailingData is returned when a document is followed by another value.
	ErrTrailingData = errors.New("unexpected data after top-level value")
)

// DecodeTree parses one JSON document into map[string]any, []any, string,
// bool, nil and Number values. Numbers are never converted to float64.
func DecodeTree(data []byte) (any, error) {
	if err := checkSyntax(data); err != nil {
		return nil, err
	}

	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// checkSyntax rejects everything that is not exactly one well-formed UTF-8
// JSON value surrounded by optional whitespace.
func checkSyntax(data []byte) error {
	if len(bytes.TrimLeft(data, " \t\r\n")) == 0 {
		return ErrEmptyDocument
	}
	if !utf8.Valid(data) {
		return &SyntaxError{msg: "invalid UTF-8 in input", Offset: invalidUTF8Offset(data)}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return syntaxError(err, data)
	}
	if err := dec.Decode(&raw); err != io.EOF {
		if err != nil {
			return syntaxError(err, data)
		}
		return fmt.Errorf("%w at offset %d", ErrTrailingData, dec.InputOffset()-int64(len(raw)))
	}
	return nil
}

func syntaxError(err error, data []byte) error {
	var syn *json.SyntaxError
	switch {
	case errors.As(err, &syn):
		return &SyntaxError{msg: syn.Error(), Offset: syn.Offset}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &SyntaxError{msg: "unexpected end of JSON input", Offset: int64(len(data))}
	default:
		return err
	}
}

func invalidUTF8Offset(data []byte) int64 {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return int64(i)
		}
		i += size
	}
	return int64(len(data))
}

// Marshal encodes v compactly with sorted map keys and without HTML
// escaping of <, > and &.
func Marshal(v any) ([]byte, error) {
	return MarshalIndent(v, "", "")
}

// MarshalIndent is Marshal with indentation. Empty prefix and indent produce
// compact output.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := gojson.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if prefix != "" || indent != "" {
		enc.SetIndent(prefix, indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encoder.Encode terminates every value with a newline.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
