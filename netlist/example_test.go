package netlist_test

import (
	"errors"
	"fmt"
	"os"

	"github.com/robert-at-pretension-io/yosys-netlist/netlist"
)

// ExampleDecode demonstrates decoding a document and reading ports.
func ExampleDecode() {
	doc := []byte(`{
	  "creator": "Yosys",
	  "modules": {
	    "top": {
	      "ports": {
	        "a": { "direction": "input", "offset": 1, "bits": [2, 3, 4, 5] }
	      }
	    }
	  }
	}`)

	n, err := netlist.Decode(doc)
	if err != nil {
		fmt.Println(err)
		return
	}

	a := n.Modules["top"].Ports["a"]
	fmt.Println(n.Creator, a.Direction, a.Width(), a.Offset)
	// Output: Yosys input 4 1
}

// ExampleAttributeVal demonstrates the two interpretations of a string
// attribute value.
func ExampleAttributeVal() {
	for _, a := range []netlist.AttributeVal{
		netlist.StringAttr("00000000000000001010010001010101"),
		netlist.StringAttr("counter.v:3.9-3.12 "),
		netlist.NumberAttr(7),
	} {
		n, numErr := a.Number()
		text, isText := a.Text()
		fmt.Printf("%v number=%d/%t text=%q/%t\n", a, n, numErr == nil, text, isText)
	}
	// Output:
	// "00000000000000001010010001010101" number=42069/true text=""/false
	// "counter.v:3.9-3.12 " number=0/false text="counter.v:3.9-3.12"/true
	// 7 number=7/true text=""/false
}

// ExampleNetlist_Marshal demonstrates building a netlist in code.
func ExampleNetlist_Marshal() {
	n := netlist.New("integration test")
	out, err := n.Marshal()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(out))
	// Output: {"creator":"integration test","modules":{}}
}

// ExampleEncode demonstrates building a module in code and writing it out.
func ExampleEncode() {
	n := netlist.New("example")
	n.Modules["inv"] = netlist.Module{
		Ports: map[string]netlist.Port{
			"y": {Direction: netlist.Output, Bits: []netlist.BitVal{netlist.Const(netlist.Bit1)}},
		},
	}
	if err := netlist.Encode(os.Stdout, n); err != nil {
		fmt.Println(err)
	}
	// Output: {"creator":"example","modules":{"inv":{"attributes":{},"parameter_default_values":{},"ports":{"y":{"direction":"output","bits":["1"],"offset":0,"upto":0,"signed":0}},"cells":{},"memories":{},"netnames":{}}}}
}

// ExampleError demonstrates inspecting a decode failure.
func ExampleError() {
	_, err := netlist.Decode([]byte(`{"modules": {"m": {"netnames": {"n": {"bits": [1, "w"]}}}}}`))

	var nerr *netlist.Error
	if errors.As(err, &nerr) {
		fmt.Println(nerr.Kind)
		fmt.Println(nerr.Path)
		fmt.Println(nerr.Value)
	}
	fmt.Println(errors.Is(err, netlist.ErrUnrecognizedBitSymbol))
	// Output:
	// unrecognized bit symbol
	// modules.m.netnames.n.bits[1]
	// "w"
	// true
}
