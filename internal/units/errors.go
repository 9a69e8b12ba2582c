package units

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedUnit is reported by the strict parsers. The lenient parsers
// treat unknown units as the canonical unit instead.
var ErrUnrecognizedUnit = errors.New("unrecognized unit")

// UnitError describes a unit token that could not be mapped.
type UnitError struct {
	Kind string
	Unit string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s: %s unit %q", ErrUnrecognizedUnit, e.Kind, e.Unit)
}

func (e *UnitError) Unwrap() error { return ErrUnrecognizedUnit }
