// Package netlist reads and writes the JSON netlists produced by Yosys
// (write_json) and consumed by nextpnr and similar tools.
//
// A document is decoded as a whole into a Netlist:
//
//	n, err := netlist.Decode(data)
//	if err != nil {
//	    return err
//	}
//	for name, m := range n.Modules {
//	    fmt.Println(name, len(m.Cells))
//	}
//
// Two scalar encodings of the format are ambiguous and get their own types.
// BitVal is a wire bit, written either as a signal number or as one of the
// constant strings "0", "1", "x" and "z". AttributeVal is an attribute or
// parameter value, written either as a number or as a string, where the
// string may hold free text or a binary integer too wide for a JSON number.
// AttributeVal keeps what was received and offers Number and Text to
// interpret it at the point of use.
//
// Encoding writes every field, sorts map keys and keeps the record key order
// Yosys uses, so decode(encode(n)) is equal to n.
package netlist
