package kdf

import (
	"errors"
	"fmt"
)

var (
	ErrMemoryTooLittle     = errors.New("memory cost is too small")
	ErrTimeTooSmall        = errors.New("time cost is too small")
	ErrThreadsTooFew       = errors.New("not enough threads")
	ErrThreadsTooMany      = errors.New("too many threads")
	ErrSaltTooShort        = errors.New("salt is too short")
	ErrUnsupportedVersion  = errors.New("unsupported argon2 version")
	ErrNilEngine           = errors.New("nil engine")
	ErrInvalidOutputLength = errors.New("invalid output length")
)

// DerivationError is returned when the engine refuses or fails to derive a key.
type DerivationError struct {
	Err error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("key derivation failed: %v", e.Err)
}

func (e *DerivationError) Unwrap() error {
	return e.Err
}

// IsDerivationError checks if an error is a DerivationError.
func IsDerivationError(err error) bool {
	var de *DerivationError
	return errors.As(err, &de)
}
