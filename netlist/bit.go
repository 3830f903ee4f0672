package netlist

import (
	"fmt"
	"log/slog"
	"strconv"
)

// SpecialBit is one of the four constant bit values.
type SpecialBit uint8

const (
	// Bit0 is constant logic 0.
	Bit0 SpecialBit = iota + 1
	// Bit1 is constant logic 1.
	Bit1
	// BitX is an undefined value.
	BitX
	// BitZ is high impedance (tri-state).
	BitZ
)

// String returns the wire form of b.
func (b SpecialBit) String() string {
	switch b {
	case Bit0:
		return "0"
	case Bit1:
		return "1"
	case BitX:
		return "x"
	case BitZ:
		return "z"
	default:
		return "SpecialBit(" + strconv.Itoa(int(b)) + ")"
	}
}

// ParseSpecialBit matches s exactly against "0", "1", "x" and "z".
func ParseSpecialBit(s string) (SpecialBit, bool) {
	switch s {
	case "0":
		return Bit0, true
	case "1":
		return Bit1, true
	case "x":
		return BitX, true
	case "z":
		return BitZ, true
	}
	return 0, false
}

// LogValue implements slog.LogValuer.
func (b SpecialBit) LogValue() slog.Value {
	return slog.StringValue(b.String())
}

// BitVal is a single wire bit: either a signal number shared by every wire
// connected to it, or a constant. The zero value is Signal(0).
//
// BitVal is comparable and can be used as a map key.
type BitVal struct {
	n   uint64
	sym SpecialBit
}

// Signal returns the bit for signal number n.
func Signal(n uint64) BitVal {
	return BitVal{n: n}
}

// Const returns the bit for a constant value.
func Const(b SpecialBit) BitVal {
	return BitVal{sym: b}
}

// Signal returns the signal number, or false for a constant.
func (b BitVal) Signal() (uint64, bool) {
	if b.sym != 0 {
		return 0, false
	}
	return b.n, true
}

// Special returns the constant value, or false for a signal.
func (b BitVal) Special() (SpecialBit, bool) {
	return b.sym, b.sym != 0
}

// IsConst reports whether b is a constant.
func (b BitVal) IsConst() bool {
	return b.sym != 0
}

func (b BitVal) String() string {
	if b.sym != 0 {
		return b.sym.String()
	}
	return strconv.FormatUint(b.n, 10)
}

// MarshalJSON emits a bare integer for a signal and a one-character string
// for a constant.
func (b BitVal) MarshalJSON() ([]byte, error) {
	if b.sym != 0 {
		if b.sym > BitZ {
			return nil, fmt.Errorf("invalid special bit %d", b.sym)
		}
		return []byte(`"` + b.sym.String() + `"`), nil
	}
	return strconv.AppendUint(nil, b.n, 10), nil
}

// LogValue implements slog.LogValuer.
func (b BitVal) LogValue() slog.Value {
	if b.sym != 0 {
		return b.sym.LogValue()
	}
	return slog.Uint64Value(b.n)
}

// decodeBit tries the numeric form first, then each constant symbol.
func decodeBit(v any, path string) (BitVal, error) {
	switch t := v.(type) {
	case number:
		n, err := decodeUint(t, path)
		if err != nil {
			return BitVal{}, err
		}
		return Signal(n), nil
	case string:
		if sym, ok := ParseSpecialBit(t); ok {
			return Const(sym), nil
		}
		return BitVal{}, &Error{
			Kind:   KindUnrecognizedBitSymbol,
			Path:   path,
			Value:  describe(t),
			Offset: -1,
			Reason: `expected a signal number or one of "0", "1", "x", "z"`,
		}
	default:
		return BitVal{}, schemaError(path, v, "expected a signal number or constant bit string, found "+jsonType(v))
	}
}

func decodeBits(v any, path string) ([]BitVal, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, schemaError(path, v, "expected an array of bits, found "+jsonType(v))
	}
	bits := make([]BitVal, 0, len(arr))
	for i, elem := range arr {
		b, err := decodeBit(elem, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		bits = append(bits, b)
	}
	return bits, nil
}
