package netlist

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrorKind classifies codec failures.
type ErrorKind int

const (
	// KindMalformedJSON means the input is not syntactically valid JSON.
	KindMalformedJSON ErrorKind = iota + 1

	// KindSchemaViolation means the JSON is valid but a required field is
	// missing or a field holds a JSON type its declared shape does not accept.
	KindSchemaViolation

	// KindUnrecognizedBitSymbol means a string bit value is not one of
	// "0", "1", "x" or "z".
	KindUnrecognizedBitSymbol

	// KindNumericOverflow means a number does not fit the field it decodes to.
	KindNumericOverflow

	// KindEncodeFailure means serialization or the write to the sink failed.
	KindEncodeFailure
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindMalformedJSON:
		return "malformed JSON"
	case KindSchemaViolation:
		return "schema violation"
	case KindUnrecognizedBitSymbol:
		return "unrecognized bit symbol"
	case KindNumericOverflow:
		return "numeric overflow"
	case KindEncodeFailure:
		return "encode failure"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrMalformedJSON         = errors.New("malformed JSON")
	ErrSchemaViolation       = errors.New("schema violation")
	ErrUnrecognizedBitSymbol = errors.New("unrecognized bit symbol")
	ErrNumericOverflow       = errors.New("numeric overflow")
	ErrEncodeFailure         = errors.New("encode failure")

	// ErrNotBinary is returned by AttributeVal.Number for string payloads
	// holding characters other than '0' and '1'.
	ErrNotBinary = errors.New("not a binary integer")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindMalformedJSON:
		return ErrMalformedJSON
	case KindSchemaViolation:
		return ErrSchemaViolation
	case KindUnrecognizedBitSymbol:
		return ErrUnrecognizedBitSymbol
	case KindNumericOverflow:
		return ErrNumericOverflow
	case KindEncodeFailure:
		return ErrEncodeFailure
	default:
		return nil
	}
}

// Error describes a decode or encode failure with its location in the
// document.
//
// Use [errors.As] to inspect it:
//
//	var nerr *netlist.Error
//	if errors.As(err, &nerr) {
//	    fmt.Println(nerr.Kind, nerr.Path)
//	}
type Error struct {
	Kind   ErrorKind
	Path   string // location in the document, e.g. modules.top.ports.a.bits[3]
	Value  string // offending JSON value, truncated
	Offset int64  // byte offset for MalformedJSON, -1 when unknown
	Line   int    // 1-based, 0 when unknown
	Column int    // 1-based, 0 when unknown
	Reason string
	Err    error
}

// Error returns a formatted error message.
func (e *Error) Error() string {
	var b bytes.Buffer
	b.WriteString("netlist: ")
	b.WriteString(e.Kind.String())
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d, column %d)", e.Line, e.Column)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (got %s)", e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var nerr *Error
	if errors.As(err, &nerr) {
		return nerr.Kind
	}
	return 0
}

const maxValueLen = 48

func describe(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		s = "null"
	case string:
		s = fmt.Sprintf("%q", t)
	case bool:
		s = fmt.Sprintf("%t", t)
	case []any:
		s = fmt.Sprintf("array of %d", len(t))
	case map[string]any:
		s = fmt.Sprintf("object of %d", len(t))
	default:
		s = fmt.Sprint(t)
	}
	if len(s) > maxValueLen {
		cut := maxValueLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "number"
	}
}

// lineCol converts a byte offset in data into a 1-based line and column.
func lineCol(data []byte, offset int64) (int, int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	head := data[:offset]
	line := bytes.Count(head, []byte{'\n'}) + 1
	col := int(offset) - (bytes.LastIndexByte(head, '\n') + 1) + 1
	return line, col
}
