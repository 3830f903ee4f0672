// Package validator checks Yosys JSON documents against the CUE contract in
// netlist.cue.
//
// The netlist decoder only enforces the shape it needs to build the model.
// The contract is the stricter statement of what Yosys actually writes, so a
// document that decodes but breaks the contract points at a producer bug or a
// format change worth looking at.
package validator

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed netlist.cue
var schemaFS embed.FS

// Violation is one contract error.
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// Validator validates documents against the #Netlist definition.
//
// A Validator is safe for concurrent use; checks are serialized because CUE
// values share their context.
type Validator struct {
	mu  sync.Mutex
	ctx *cue.Context
	def cue.Value
}

// New creates a new Validator with the embedded CUE schema
func New() (*Validator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := schemaFS.ReadFile("netlist.cue")
	if err != nil {
		return nil, fmt.Errorf("loading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes, cue.Filename("netlist.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Netlist"))
	if def.Err() != nil {
		return nil, fmt.Errorf("looking up #Netlist definition: %w", def.Err())
	}

	return &Validator{
		ctx: ctx,
		def: def,
	}, nil
}

// Violations returns every contract error of the document, or nil when it
// satisfies the contract.
func (v *Validator) Violations(jsonBytes []byte) []Violation {
	v.mu.Lock()
	defer v.mu.Unlock()

	dataValue := v.ctx.CompileBytes(jsonBytes, cue.Filename("netlist.json"))
	if dataValue.Err() != nil {
		return []Violation{{Message: fmt.Sprintf("compile error: %v", dataValue.Err())}}
	}

	err := v.def.Unify(dataValue).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var out []Violation
	for _, e := range errors.Errors(err) {
		format, args := e.Msg()
		out = append(out, Violation{
			Path:    documentPath(e.Path()),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return out
}

// documentPath drops the definition the document was unified with, so paths
// start at the document root.
func documentPath(sels []string) string {
	for len(sels) > 0 && strings.HasPrefix(sels[0], "#") {
		sels = sels[1:]
	}
	return strings.Join(sels, ".")
}
