package secret

import (
	"bytes"
)

// State is a step of interactive secret entry.
type State int

const (
	Prompting State = iota
	Confirming
	Accepted
	Rejected
)

func (s State) String() string {
	switch s {
	case Prompting:
		return "prompting"
	case Confirming:
		return "confirming"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Done reports whether s is a terminal state.
func (s State) Done() bool {
	return s == Accepted || s == Rejected
}

// Decide maps a confirmation response to Accepted or Rejected.
// Surrounding whitespace is ignored, and an empty response accepts.
func Decide(response []byte) State {
	response = bytes.TrimSpace(response)
	switch {
	case len(response) == 0,
		bytes.EqualFold(response, []byte("y")),
		bytes.EqualFold(response, []byte("yes")):
		return Accepted
	default:
		return Rejected
	}
}
