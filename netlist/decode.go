package netlist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/robert-at-pretension-io/yosys-netlist/internal/jsonutil"
)

type number = jsonutil.Number

// Decode parses a Yosys JSON document.
//
// Errors are *Error values: KindMalformedJSON when data is not JSON,
// KindSchemaViolation, KindUnrecognizedBitSymbol or KindNumericOverflow when
// a field does not fit the model. The first failure aborts the decode.
func Decode(data []byte, opts ...Option) (*Netlist, error) {
	cfg := applyOptions(opts)
	n, err := decodeDocument(data, cfg)
	cfg.logDecode(n, len(data), err)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// DecodeReader reads r to EOF and decodes the result with Decode.
func DecodeReader(r io.Reader, opts ...Option) (*Netlist, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading netlist: %w", err)
	}
	return Decode(data, opts...)
}

// UnmarshalJSON implements json.Unmarshaler with the rules of Decode. A JSON
// null leaves n unchanged.
func (n *Netlist) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	nl, err := decodeDocument(data, defaultOptions())
	if err != nil {
		return err
	}
	*n = *nl
	return nil
}

func decodeDocument(data []byte, cfg *options) (*Netlist, error) {
	tree, err := jsonutil.DecodeTree(data)
	if err != nil {
		return nil, malformed(data, err)
	}
	n, err := decodeNetlist(tree)
	if err != nil {
		return nil, err
	}
	if cfg.contract {
		if err := checkContract(data); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func malformed(data []byte, err error) *Error {
	e := &Error{Kind: KindMalformedJSON, Offset: -1, Err: err}
	var syn *jsonutil.SyntaxError
	if errors.As(err, &syn) {
		e.Offset = syn.Offset
		e.Line, e.Column = lineCol(data, syn.Offset)
	}
	return e
}

func decodeNetlist(v any) (*Netlist, error) {
	obj, err := asObject(v, "")
	if err != nil {
		return nil, err
	}
	n := New("")
	if raw, ok := obj["creator"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, schemaError("creator", raw, "expected a string, found "+jsonType(raw))
		}
		n.Creator = s
	}
	if n.Modules, err = optMap(obj, "", "modules", decodeModule); err != nil {
		return nil, err
	}
	return n, nil
}

func decodeModule(v any, path string) (Module, error) {
	var m Module
	obj, err := asObject(v, path)
	if err != nil {
		return m, err
	}
	if m.Attributes, err = optMap(obj, path, "attributes", decodeAttribute); err != nil {
		return m, err
	}
	if m.ParameterDefaultValues, err = optMap(obj, path, "parameter_default_values", decodeAttribute); err != nil {
		return m, err
	}
	if m.Ports, err = optMap(obj, path, "ports", decodePort); err != nil {
		return m, err
	}
	if m.Cells, err = optMap(obj, path, "cells", decodeCell); err != nil {
		return m, err
	}
	if m.Memories, err = optMap(obj, path, "memories", decodeMemory); err != nil {
		return m, err
	}
	if m.Netnames, err = optMap(obj, path, "netnames", decodeNetname); err != nil {
		return m, err
	}
	return m, nil
}

func decodePort(v any, path string) (Port, error) {
	var p Port
	obj, err := asObject(v, path)
	if err != nil {
		return p, err
	}
	raw, err := required(obj, path, "direction")
	if err != nil {
		return p, err
	}
	if p.Direction, err = decodeDirection(raw, keyPath(path, "direction")); err != nil {
		return p, err
	}
	if raw, err = required(obj, path, "bits"); err != nil {
		return p, err
	}
	if p.Bits, err = decodeBits(raw, keyPath(path, "bits")); err != nil {
		return p, err
	}
	if p.Offset, err = optInt(obj, path, "offset"); err != nil {
		return p, err
	}
	if p.Upto, err = optInt(obj, path, "upto"); err != nil {
		return p, err
	}
	if p.Signed, err = optInt(obj, path, "signed"); err != nil {
		return p, err
	}
	return p, nil
}

func decodeCell(v any, path string) (Cell, error) {
	var c Cell
	obj, err := asObject(v, path)
	if err != nil {
		return c, err
	}
	if c.HideName, err = optInt(obj, path, "hide_name"); err != nil {
		return c, err
	}
	raw, err := required(obj, path, "type")
	if err != nil {
		return c, err
	}
	s, ok := raw.(string)
	if !ok {
		return c, schemaError(keyPath(path, "type"), raw, "expected a cell type string, found "+jsonType(raw))
	}
	c.Type = s
	if c.Parameters, err = optMap(obj, path, "parameters", decodeAttribute); err != nil {
		return c, err
	}
	if c.Attributes, err = optMap(obj, path, "attributes", decodeAttribute); err != nil {
		return c, err
	}
	if c.PortDirections, err = optMap(obj, path, "port_directions", decodeDirection); err != nil {
		return c, err
	}
	if raw, err = required(obj, path, "connections"); err != nil {
		return c, err
	}
	if c.Connections, err = decodeMap(raw, keyPath(path, "connections"), decodeBits); err != nil {
		return c, err
	}
	return c, nil
}

func decodeMemory(v any, path string) (Memory, error) {
	var m Memory
	obj, err := asObject(v, path)
	if err != nil {
		return m, err
	}
	if m.HideName, err = optInt(obj, path, "hide_name"); err != nil {
		return m, err
	}
	if m.Attributes, err = optMap(obj, path, "attributes", decodeAttribute); err != nil {
		return m, err
	}
	if m.Width, err = reqInt(obj, path, "width"); err != nil {
		return m, err
	}
	if m.Size, err = reqInt(obj, path, "size"); err != nil {
		return m, err
	}
	if m.StartOffset, err = optInt(obj, path, "start_offset"); err != nil {
		return m, err
	}
	return m, nil
}

func decodeNetname(v any, path string) (Netname, error) {
	var n Netname
	obj, err := asObject(v, path)
	if err != nil {
		return n, err
	}
	if n.HideName, err = optInt(obj, path, "hide_name"); err != nil {
		return n, err
	}
	raw, err := required(obj, path, "bits")
	if err != nil {
		return n, err
	}
	if n.Bits, err = decodeBits(raw, keyPath(path, "bits")); err != nil {
		return n, err
	}
	if n.Offset, err = optInt(obj, path, "offset"); err != nil {
		return n, err
	}
	if n.Upto, err = optInt(obj, path, "upto"); err != nil {
		return n, err
	}
	if n.Signed, err = optInt(obj, path, "signed"); err != nil {
		return n, err
	}
	if n.Attributes, err = optMap(obj, path, "attributes", decodeAttribute); err != nil {
		return n, err
	}
	return n, nil
}

func asObject(v any, path string) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, schemaError(path, v, "expected an object, found "+jsonType(v))
	}
	return obj, nil
}

func required(obj map[string]any, path, key string) (any, error) {
	raw, ok := obj[key]
	if !ok {
		return nil, &Error{
			Kind:   KindSchemaViolation,
			Path:   keyPath(path, key),
			Offset: -1,
			Reason: "missing required field",
		}
	}
	return raw, nil
}

// decodeMap decodes every entry of a JSON object with fn. Keys are visited in
// sorted order so the reported error is the same on every run.
func decodeMap[T any](v any, path string, fn func(any, string) (T, error)) (map[string]T, error) {
	obj, err := asObject(v, path)
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(obj))
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		val, err := fn(obj[k], keyPath(path, k))
		if err != nil {
			return nil, err
		}
		out[k] = val
	}
	return out, nil
}

// optMap is decodeMap for an optional key. An absent key yields an empty map.
func optMap[T any](obj map[string]any, path, key string, fn func(any, string) (T, error)) (map[string]T, error) {
	raw, ok := obj[key]
	if !ok {
		return map[string]T{}, nil
	}
	return decodeMap(raw, keyPath(path, key), fn)
}

func reqInt(obj map[string]any, path, key string) (int, error) {
	raw, err := required(obj, path, key)
	if err != nil {
		return 0, err
	}
	return decodeInt(raw, keyPath(path, key))
}

// optInt decodes an optional non-negative integer. An absent key yields 0.
func optInt(obj map[string]any, path, key string) (int, error) {
	raw, ok := obj[key]
	if !ok {
		return 0, nil
	}
	return decodeInt(raw, keyPath(path, key))
}

func decodeInt(v any, path string) (int, error) {
	num, ok := v.(number)
	if !ok {
		return 0, schemaError(path, v, "expected a non-negative integer, found "+jsonType(v))
	}
	n, err := decodeUint(num, path)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt {
		return 0, overflowError(path, num, "integer does not fit in int")
	}
	return int(n), nil
}

// decodeUint accepts JSON integers in [0, 2^64). Fractions, exponents and
// negative numbers are schema violations; larger integers overflow.
func decodeUint(num number, path string) (uint64, error) {
	s := num.String()
	n, err := strconv.ParseUint(s, 10, 64)
	if err == nil {
		return n, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, overflowError(path, num, "integer does not fit in 64 bits")
	}
	if strings.HasPrefix(s, "-") {
		return 0, schemaError(path, num, "expected a non-negative integer")
	}
	return 0, schemaError(path, num, "expected an integer")
}

func overflowError(path string, num number, reason string) *Error {
	return &Error{
		Kind:   KindNumericOverflow,
		Path:   path,
		Value:  describe(num),
		Offset: -1,
		Reason: reason,
	}
}

func schemaError(path string, v any, reason string) *Error {
	return &Error{
		Kind:   KindSchemaViolation,
		Path:   path,
		Value:  describe(v),
		Offset: -1,
		Reason: reason,
	}
}

// keyPath appends an object key to path. Keys that would be ambiguous in
// dotted form are quoted in brackets.
func keyPath(path, key string) string {
	if key == "" || strings.ContainsAny(key, ".[]\" ") {
		return path + "[" + strconv.Quote(key) + "]"
	}
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
