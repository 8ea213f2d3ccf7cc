package errors

import "errors"

// NotFoundError represents an identifier the remote database does not know.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "PDB ID " + e.ID + " not found in the remote database"
}

// NewNotFoundError creates a NotFoundError for the given identifier.
func NewNotFoundError(id string) *NotFoundError {
	return &NotFoundError{ID: id}
}

// IsNotFoundError reports whether err is a NotFoundError (even when wrapped).
func IsNotFoundError(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}
