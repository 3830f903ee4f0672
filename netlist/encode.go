package netlist

import (
	"io"

	"github.com/robert-at-pretension-io/yosys-netlist/internal/jsonutil"
)

// Marshal encodes n as compact JSON. Every field is written, including ones
// equal to their default. Object keys of records follow the wire order of
// Yosys and map keys are sorted, so equal netlists encode to equal bytes.
func (n *Netlist) Marshal() ([]byte, error) {
	return encode(n, &encodeOptions{})
}

// MarshalJSON implements json.Marshaler.
func (n Netlist) MarshalJSON() ([]byte, error) {
	return n.Marshal()
}

// WriteTo writes the compact encoding of n to w. It implements io.WriterTo.
func (n *Netlist) WriteTo(w io.Writer) (int64, error) {
	data, err := n.Marshal()
	if err != nil {
		return 0, err
	}
	written, err := w.Write(data)
	if err != nil {
		return int64(written), encodeError("writing netlist", err)
	}
	return int64(written), nil
}

// Encode writes n to w. Without options the output is the same as Marshal.
func Encode(w io.Writer, n *Netlist, opts ...EncodeOption) error {
	data, err := encode(n, applyEncodeOptions(opts))
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return encodeError("writing netlist", err)
	}
	return nil
}

// netlistFields has the fields of Netlist without its methods, so encoding it
// does not recurse into MarshalJSON.
type netlistFields Netlist

func encode(n *Netlist, cfg *encodeOptions) ([]byte, error) {
	if n == nil {
		return nil, encodeError("nil netlist", nil)
	}
	data, err := jsonutil.MarshalIndent(normalize(n), cfg.prefix, cfg.indent)
	if err != nil {
		return nil, encodeError("marshaling netlist", err)
	}
	return data, nil
}

func encodeError(reason string, err error) *Error {
	return &Error{Kind: KindEncodeFailure, Offset: -1, Reason: reason, Err: err}
}

// normalize copies n with nil maps and slices replaced by empty ones, so the
// output never holds null where the decoder expects an object or array.
func normalize(n *Netlist) *netlistFields {
	out := &netlistFields{
		Creator: n.Creator,
		Modules: make(map[string]Module, len(n.Modules)),
	}
	for name, m := range n.Modules {
		out.Modules[name] = normalizeModule(m)
	}
	return out
}

func normalizeModule(m Module) Module {
	out := Module{
		Attributes:             orEmpty(m.Attributes),
		ParameterDefaultValues: orEmpty(m.ParameterDefaultValues),
		Ports:                  make(map[string]Port, len(m.Ports)),
		Cells:                  make(map[string]Cell, len(m.Cells)),
		Memories:               make(map[string]Memory, len(m.Memories)),
		Netnames:               make(map[string]Netname, len(m.Netnames)),
	}
	for name, p := range m.Ports {
		p.Bits = orEmptyBits(p.Bits)
		out.Ports[name] = p
	}
	for name, c := range m.Cells {
		c.Parameters = orEmpty(c.Parameters)
		c.Attributes = orEmpty(c.Attributes)
		c.PortDirections = orEmpty(c.PortDirections)
		conns := make(map[string][]BitVal, len(c.Connections))
		for pin, bits := range c.Connections {
			conns[pin] = orEmptyBits(bits)
		}
		c.Connections = conns
		out.Cells[name] = c
	}
	for name, mem := range m.Memories {
		mem.Attributes = orEmpty(mem.Attributes)
		out.Memories[name] = mem
	}
	for name, nn := range m.Netnames {
		nn.Bits = orEmptyBits(nn.Bits)
		nn.Attributes = orEmpty(nn.Attributes)
		out.Netnames[name] = nn
	}
	return out
}

func orEmpty[M ~map[K]V, K comparable, V any](m M) M {
	if m == nil {
		return M{}
	}
	return m
}

func orEmptyBits(b []BitVal) []BitVal {
	if b == nil {
		return []BitVal{}
	}
	return b
}

func marshalString(s string) ([]byte, error) {
	return jsonutil.Marshal(s)
}
