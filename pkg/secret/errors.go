package secret

import (
	"errors"
	"fmt"
)

var (
	ErrAborted = errors.New("secret entry aborted by user")
)

// AcquisitionError is returned when a secret could not be obtained.
// Err is ErrAborted or the underlying read or write failure.
type AcquisitionError struct {
	State State
	Err   error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("failed to acquire secret (%s): %v", e.State, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

func IsAcquisitionError(err error) bool {
	var target *AcquisitionError
	return errors.As(err, &target)
}
