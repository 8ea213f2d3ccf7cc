package errors

import (
	"errors"
	"fmt"
)

// ChainNotFoundError represents a chain identifier missing from a structure's
// chain list.
type ChainNotFoundError struct {
	ID    string
	Chain string
}

func (e *ChainNotFoundError) Error() string {
	return fmt.Sprintf("chain %s not found in structure %s", e.Chain, e.ID)
}

// NewChainNotFoundError creates a ChainNotFoundError for the given structure
// and chain.
func NewChainNotFoundError(id, chain string) *ChainNotFoundError {
	return &ChainNotFoundError{ID: id, Chain: chain}
}

// IsChainNotFoundError reports whether err is a ChainNotFoundError (even when
// wrapped).
func IsChainNotFoundError(err error) bool {
	var cnfErr *ChainNotFoundError
	return errors.As(err, &cnfErr)
}
