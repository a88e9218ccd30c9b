package kdf

import (
	"fmt"
)

// Version is the Argon2 algorithm revision.
type Version uint32

const (
	Version10 Version = 0x10
	Version13 Version = 0x13
)

// ParseVersion accepts the literal tags "0x10" and "0x13".
func ParseVersion(tag string) (Version, error) {
	switch tag {
	case "0x10":
		return Version10, nil
	case "0x13":
		return Version13, nil
	default:
		return 0, fmt.Errorf("%w: version must be either 0x10 or 0x13: %q", ErrUnsupportedVersion, tag)
	}
}

func (v Version) Valid() bool {
	return v == Version10 || v == Version13
}

func (v Version) String() string {
	return fmt.Sprintf("0x%x", uint32(v))
}
