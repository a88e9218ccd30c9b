package internal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/awnumar/memguard"
	"github.com/fatih/color"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var errorPrefix = color.New(color.FgRed, color.Bold).SprintFunc()

// Fatal will Echo the message and exit with code 1, purging guarded memory first.
func Fatal(msg string, args ...any) {
	Echo(msg, args...)
	memguard.SafeExit(ExitError)
}

// Echo will emit the given message to stderr without any logging formatting.
func Echo(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = fmt.Fprintf(color.Error, msg, args...)
}

// HandleError reports err, if any, and returns the process exit code.
func HandleError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	Echo("%s %v", errorPrefix("Error:"), err)
	return ExitError
}

// Cause returns the innermost wrapped error, which is useful for debug logging.
func Cause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
