package netlist

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// AttributeVal is the value of an attribute or parameter. On the wire it is
// either a JSON number or a JSON string; which one was received is kept
// verbatim so the value encodes back to the same shape.
//
// Strings are overloaded: Yosys writes integers wider than 32 bits as binary
// digit strings, and real text attributes as plain strings. Number and Text
// interpret the payload on demand; neither changes the stored value.
type AttributeVal struct {
	n     uint64
	s     string
	isStr bool
}

// NumberAttr returns a numeric attribute value.
func NumberAttr(n uint64) AttributeVal {
	return AttributeVal{n: n}
}

// StringAttr returns a string attribute value. s is kept as-is.
func StringAttr(s string) AttributeVal {
	return AttributeVal{s: s, isStr: true}
}

// IsString reports whether the value was a JSON string.
func (a AttributeVal) IsString() bool {
	return a.isStr
}

// Raw returns the string payload exactly as received, or the decimal form
// of a numeric value.
func (a AttributeVal) Raw() string {
	if a.isStr {
		return a.s
	}
	return strconv.FormatUint(a.n, 10)
}

// Number interprets the value as an integer. Numeric values are returned
// unchanged. An empty string is zero; any other string must be a base-2
// literal, otherwise the error wraps ErrNotBinary (or ErrNumericOverflow when
// it has more than 64 significant bits).
func (a AttributeVal) Number() (uint64, error) {
	if !a.isStr {
		return a.n, nil
	}
	if a.s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(a.s, 2, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %d-bit binary literal", ErrNumericOverflow, len(a.s))
		}
		return 0, fmt.Errorf("%w: %q", ErrNotBinary, a.s)
	}
	return n, nil
}

// Text interprets the value as a text attribute. It returns false for
// numbers, for the empty string, and for strings made only of 0, 1, x and z,
// which Yosys uses for constant bit vectors. A text attribute that happens to
// consist of those characters alone cannot be told apart and is reported as
// not text. One trailing space, which Yosys appends to some strings, is
// removed.
func (a AttributeVal) Text() (string, bool) {
	if !a.isStr || a.s == "" {
		return "", false
	}
	if strings.Trim(a.s, "01xz") == "" {
		return "", false
	}
	return strings.TrimSuffix(a.s, " "), true
}

func (a AttributeVal) String() string {
	if a.isStr {
		return strconv.Quote(a.s)
	}
	return strconv.FormatUint(a.n, 10)
}

// MarshalJSON emits a JSON number or a JSON string, matching how the value
// was decoded or constructed.
func (a AttributeVal) MarshalJSON() ([]byte, error) {
	if a.isStr {
		return marshalString(a.s)
	}
	return strconv.AppendUint(nil, a.n, 10), nil
}

// LogValue implements slog.LogValuer.
func (a AttributeVal) LogValue() slog.Value {
	if a.isStr {
		return slog.StringValue(a.s)
	}
	return slog.Uint64Value(a.n)
}

func decodeAttribute(v any, path string) (AttributeVal, error) {
	switch t := v.(type) {
	case number:
		n, err := decodeUint(t, path)
		if err != nil {
			return AttributeVal{}, err
		}
		return NumberAttr(n), nil
	case string:
		return StringAttr(t), nil
	default:
		return AttributeVal{}, schemaError(path, v, "expected a number or string attribute value, found "+jsonType(v))
	}
}

func decodeAttributes(v any, path string) (map[string]AttributeVal, error) {
	return decodeMap(v, path, decodeAttribute)
}
