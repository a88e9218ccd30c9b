package config

import (
	"errors"
	"fmt"
	"strings"
)

// Error describes why a configuration could not be loaded. Path and Field are empty when unknown.
type Error struct {
	Path    string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid configuration")
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf(" %q", e.Path))
	}
	if e.Field != "" {
		sb.WriteString(fmt.Sprintf(" (field %s)", e.Field))
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsConfigError(err error) bool {
	var target *Error
	return errors.As(err, &target)
}
