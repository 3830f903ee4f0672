package netlist

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       any
		want     BitVal
		wantKind ErrorKind
	}{
		{name: "zero", in: number("0"), want: Signal(0)},
		{name: "signal", in: number("234"), want: Signal(234)},
		{name: "max_uint64", in: number("18446744073709551615"), want: Signal(1<<64 - 1)},
		{name: "x", in: "x", want: Const(BitX)},
		{name: "z", in: "z", want: Const(BitZ)},
		{name: "one", in: "1", want: Const(Bit1)},
		{name: "zero_string", in: "0", want: Const(Bit0)},
		{name: "unknown_symbol", in: "w", wantKind: KindUnrecognizedBitSymbol},
		{name: "uppercase_x", in: "X", wantKind: KindUnrecognizedBitSymbol},
		{name: "multi_char", in: "01", wantKind: KindUnrecognizedBitSymbol},
		{name: "empty_string", in: "", wantKind: KindUnrecognizedBitSymbol},
		{name: "negative", in: number("-1"), wantKind: KindSchemaViolation},
		{name: "fraction", in: number("1.5"), wantKind: KindSchemaViolation},
		{name: "exponent", in: number("1e3"), wantKind: KindSchemaViolation},
		{name: "overflow", in: number("18446744073709551616"), wantKind: KindNumericOverflow},
		{name: "boolean", in: true, wantKind: KindSchemaViolation},
		{name: "null", in: nil, wantKind: KindSchemaViolation},
		{name: "array", in: []any{number("1")}, wantKind: KindSchemaViolation},
		{name: "object", in: map[string]any{}, wantKind: KindSchemaViolation},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := decodeBit(tt.in, "bits[0]")
			if tt.wantKind != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, KindOf(err))

				var nerr *Error
				require.True(t, errors.As(err, &nerr))
				assert.Equal(t, "bits[0]", nerr.Path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeBit_ReportsOffendingValue(t *testing.T) {
	t.Parallel()

	_, err := decodeBit("w", "modules.m.cells.c.connections.IN[0]")
	require.ErrorIs(t, err, ErrUnrecognizedBitSymbol)

	var nerr *Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, `"w"`, nerr.Value)
	assert.Contains(t, err.Error(), "modules.m.cells.c.connections.IN[0]")
}

func TestDecodeBits(t *testing.T) {
	t.Parallel()

	got, err := decodeBits([]any{"x", number("0"), "z", number("234"), "1", "0"}, "IN")
	require.NoError(t, err)
	assert.Equal(t, []BitVal{
		Const(BitX), Signal(0), Const(BitZ), Signal(234), Const(Bit1), Const(Bit0),
	}, got)

	_, err = decodeBits([]any{number("1"), "q"}, "IN")
	var nerr *Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "IN[1]", nerr.Path)

	_, err = decodeBits(number("1"), "IN")
	assert.Equal(t, KindSchemaViolation, KindOf(err))
}

func TestBitVal_Accessors(t *testing.T) {
	t.Parallel()

	n, ok := Signal(7).Signal()
	assert.True(t, ok)
	assert.Equal(t, uint64(7), n)
	_, ok = Signal(7).Special()
	assert.False(t, ok)
	assert.False(t, Signal(7).IsConst())

	sym, ok := Const(BitZ).Special()
	assert.True(t, ok)
	assert.Equal(t, BitZ, sym)
	_, ok = Const(BitZ).Signal()
	assert.False(t, ok)
	assert.True(t, Const(BitZ).IsConst())

	var zero BitVal
	assert.Equal(t, Signal(0), zero)
	assert.NotEqual(t, Signal(0), Const(Bit0))
}

func TestBitVal_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bit  BitVal
		want string
	}{
		{Signal(0), `0`},
		{Signal(42), `42`},
		{Const(Bit0), `"0"`},
		{Const(Bit1), `"1"`},
		{Const(BitX), `"x"`},
		{Const(BitZ), `"z"`},
	}
	for _, tt := range tests {
		t.Run(tt.bit.String(), func(t *testing.T) {
			got, err := tt.bit.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}

	_, err := Const(SpecialBit(9)).MarshalJSON()
	assert.Error(t, err)
}

func TestParseSpecialBit(t *testing.T) {
	t.Parallel()

	for _, b := range []SpecialBit{Bit0, Bit1, BitX, BitZ} {
		got, ok := ParseSpecialBit(b.String())
		assert.True(t, ok)
		assert.Equal(t, b, got)
	}
	for _, s := range []string{"", "X", "Z", "2", " x", "x "} {
		_, ok := ParseSpecialBit(s)
		assert.False(t, ok, s)
	}
}

func TestBitVal_LogValue(t *testing.T) {
	t.Parallel()

	v := Signal(12).LogValue()
	assert.Equal(t, slog.KindUint64, v.Kind())
	assert.Equal(t, uint64(12), v.Uint64())

	v = Const(BitX).LogValue()
	assert.Equal(t, slog.KindString, v.Kind())
	assert.Equal(t, "x", v.String())
}
