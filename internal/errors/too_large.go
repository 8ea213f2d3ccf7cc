package errors

import (
	"errors"
	"fmt"
)

// TooLargeError represents a structure selection that exceeds the fixed-column
// PDB format's atom serial limit and cannot be written as a .pdb file.
type TooLargeError struct {
	Name  string
	Atoms int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("number of atoms (%d) in %s is too large for the PDB file format", e.Atoms, e.Name)
}

// NewTooLargeError creates a TooLargeError for the given selection name and
// atom count.
func NewTooLargeError(name string, atoms int) *TooLargeError {
	return &TooLargeError{Name: name, Atoms: atoms}
}

// IsTooLargeError reports whether err is a TooLargeError (even when wrapped).
func IsTooLargeError(err error) bool {
	var tlErr *TooLargeError
	return errors.As(err, &tlErr)
}
