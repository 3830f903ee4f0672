package netlist

import (
	"errors"
	"fmt"
	"sync"

	"github.com/robert-at-pretension-io/yosys-netlist/internal/validator"
)

var (
	contractOnce sync.Once
	contract     *validator.Validator
	contractErr  error
)

func checkContract(data []byte) error {
	contractOnce.Do(func() {
		contract, contractErr = validator.New()
	})
	if contractErr != nil {
		return fmt.Errorf("loading netlist contract: %w", contractErr)
	}

	violations := contract.Violations(data)
	if len(violations) == 0 {
		return nil
	}
	errs := make([]error, 0, len(violations))
	for _, v := range violations {
		errs = append(errs, errors.New(v.String()))
	}
	return &Error{
		Kind:   KindSchemaViolation,
		Path:   violations[0].Path,
		Offset: -1,
		Reason: fmt.Sprintf("document breaks the netlist contract (%d violations)", len(violations)),
		Err:    errors.Join(errs...),
	}
}
