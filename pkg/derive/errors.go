package derive

import (
	"errors"
	"fmt"
)

// IOError reports a failure to deliver the passphrase.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to output passphrase: %v", e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func IsIOError(err error) bool {
	var target *IOError
	return errors.As(err, &target)
}
