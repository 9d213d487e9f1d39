package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential means a provider credential is absent. Checked
	// lazily at call time because the service runs with optional providers.
	ErrMissingCredential = errors.New("missing provider credential")
	// ErrProvider covers network/HTTP/rate-limit failures from an external
	// model or service. Surfaced to the caller, never retried by the core.
	ErrProvider = errors.New("provider failure")
	// ErrParse means a model response held no extractable JSON. The raw
	// text travels with the wrapped error for diagnostics.
	ErrParse      = errors.New("unparseable model output")
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	// ErrNoManual means the brand has no manual yet. Brand DNA must be
	// created before generation or audit can run.
	ErrNoManual = errors.New("brand has no manual")
	// ErrInsufficientContext means retrieval produced too few chunks to
	// ground a generation.
	ErrInsufficientContext = errors.New("insufficient retrieval context")
	ErrForbidden           = errors.New("forbidden")
	ErrTemporary           = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
