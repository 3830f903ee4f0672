package netlist

import (
	"maps"
	"slices"
	"strings"
)

// Netlist is a whole Yosys JSON document.
type Netlist struct {
	// Creator names the program that wrote the document.
	Creator string `json:"creator"`
	// Modules maps module names to their definitions.
	Modules map[string]Module `json:"modules"`
}

// Module is one module of the design hierarchy.
type Module struct {
	// Attributes are the module attributes (Verilog (* attr *)).
	Attributes map[string]AttributeVal `json:"attributes"`
	// ParameterDefaultValues are the default values of module parameters.
	ParameterDefaultValues map[string]AttributeVal `json:"parameter_default_values"`
	Ports                  map[string]Port         `json:"ports"`
	Cells                  map[string]Cell         `json:"cells"`
	Memories               map[string]Memory       `json:"memories"`
	// Netnames names groups of wire bits.
	Netnames map[string]Netname `json:"netnames"`
}

// Port is an external connection point of a module.
type Port struct {
	Direction PortDirection `json:"direction"`
	// Bits are the wires of the port, LSB first. Their count is the port width.
	Bits []BitVal `json:"bits"`
	// Offset is the HDL index of Bits[0].
	Offset int `json:"offset"`
	// Upto is nonzero when the HDL declares the range MSB-first ([0:7]).
	Upto int `json:"upto"`
	// Signed is nonzero when the HDL value is signed.
	Signed int `json:"signed"`
}

// Width returns the number of bits of the port.
func (p Port) Width() int {
	return len(p.Bits)
}

// Cell is an instance of a primitive or of another module.
type Cell struct {
	// HideName is nonzero for auto-generated names.
	HideName int `json:"hide_name"`
	// Type is the cell type. Built-in cell types start with '$'.
	Type           string                   `json:"type"`
	Parameters     map[string]AttributeVal  `json:"parameters"`
	Attributes     map[string]AttributeVal  `json:"attributes"`
	PortDirections map[string]PortDirection `json:"port_directions"`
	// Connections maps cell pin names to the bits connected to them.
	Connections map[string][]BitVal `json:"connections"`
}

// IsInternal reports whether the cell name was auto-generated.
func (c Cell) IsInternal() bool {
	return c.HideName != 0
}

// IsPrimitive reports whether the cell type is a built-in cell rather than a
// user module.
func (c Cell) IsPrimitive() bool {
	return strings.HasPrefix(c.Type, "$")
}

// Memory is a memory array declared in a module.
type Memory struct {
	HideName   int                     `json:"hide_name"`
	Attributes map[string]AttributeVal `json:"attributes"`
	// Width is the word width in bits.
	Width int `json:"width"`
	// Size is the number of words.
	Size int `json:"size"`
	// StartOffset is the lowest valid address.
	StartOffset int `json:"start_offset"`
}

// Netname gives a name to a group of wire bits.
type Netname struct {
	HideName   int                     `json:"hide_name"`
	Bits       []BitVal                `json:"bits"`
	Offset     int                     `json:"offset"`
	Upto       int                     `json:"upto"`
	Signed     int                     `json:"signed"`
	Attributes map[string]AttributeVal `json:"attributes"`
}

// IsHidden reports whether the net name was auto-generated.
func (n Netname) IsHidden() bool {
	return n.HideName != 0
}

// New returns an empty netlist written by creator.
func New(creator string) *Netlist {
	return &Netlist{
		Creator: creator,
		Modules: map[string]Module{},
	}
}

// Equal reports whether n and o describe the same document. Nil and empty
// maps are equal.
func (n *Netlist) Equal(o *Netlist) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.Creator == o.Creator && maps.EqualFunc(n.Modules, o.Modules, Module.Equal)
}

// Equal reports whether m and o have equal contents.
func (m Module) Equal(o Module) bool {
	return maps.Equal(m.Attributes, o.Attributes) &&
		maps.Equal(m.ParameterDefaultValues, o.ParameterDefaultValues) &&
		maps.EqualFunc(m.Ports, o.Ports, Port.Equal) &&
		maps.EqualFunc(m.Cells, o.Cells, Cell.Equal) &&
		maps.EqualFunc(m.Memories, o.Memories, Memory.Equal) &&
		maps.EqualFunc(m.Netnames, o.Netnames, Netname.Equal)
}

func (p Port) Equal(o Port) bool {
	return p.Direction == o.Direction &&
		slices.Equal(p.Bits, o.Bits) &&
		p.Offset == o.Offset &&
		p.Upto == o.Upto &&
		p.Signed == o.Signed
}

func (c Cell) Equal(o Cell) bool {
	return c.HideName == o.HideName &&
		c.Type == o.Type &&
		maps.Equal(c.Parameters, o.Parameters) &&
		maps.Equal(c.Attributes, o.Attributes) &&
		maps.Equal(c.PortDirections, o.PortDirections) &&
		maps.EqualFunc(c.Connections, o.Connections, slices.Equal[[]BitVal])
}

func (m Memory) Equal(o Memory) bool {
	return m.HideName == o.HideName &&
		maps.Equal(m.Attributes, o.Attributes) &&
		m.Width == o.Width &&
		m.Size == o.Size &&
		m.StartOffset == o.StartOffset
}

func (n Netname) Equal(o Netname) bool {
	return n.HideName == o.HideName &&
		slices.Equal(n.Bits, o.Bits) &&
		n.Offset == o.Offset &&
		n.Upto == o.Upto &&
		n.Signed == o.Signed &&
		maps.Equal(n.Attributes, o.Attributes)
}
