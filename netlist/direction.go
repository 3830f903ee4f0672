package netlist

import "strconv"

// PortDirection is the direction of a module port or cell pin.
type PortDirection uint8

const (
	// Input is written as "input".
	Input PortDirection = iota + 1
	// Output is written as "output".
	Output
	// InOut is written as "inout".
	InOut
)

// String returns the wire form of d.
func (d PortDirection) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	case InOut:
		return "inout"
	default:
		return "PortDirection(" + strconv.Itoa(int(d)) + ")"
	}
}

// ParsePortDirection accepts "input", "output" and "inout".
func ParsePortDirection(s string) (PortDirection, bool) {
	switch s {
	case "input":
		return Input, true
	case "output":
		return Output, true
	case "inout":
		return InOut, true
	}
	return 0, false
}

// MarshalJSON writes the direction as its Yosys keyword. The zero value and
// anything past InOut fail with KindEncodeFailure.
func (d PortDirection) MarshalJSON() ([]byte, error) {
	if d < Input || d > InOut {
		return nil, &Error{Kind: KindEncodeFailure, Offset: -1, Reason: "invalid port direction " + d.String()}
	}
	return []byte(`"` + d.String() + `"`), nil
}

func decodeDirection(v any, path string) (PortDirection, error) {
	s, ok := v.(string)
	if !ok {
		return 0, schemaError(path, v, "expected a port direction string, found "+jsonType(v))
	}
	d, ok := ParsePortDirection(s)
	if !ok {
		return 0, schemaError(path, v, `expected "input", "output" or "inout"`)
	}
	return d, nil
}
