// Package salt generates random salts for new configurations.
package salt

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const DefaultLength = 16

// RngError reports a failure of the random source.
type RngError struct {
	Err error
}

func (e *RngError) Error() string {
	return fmt.Sprintf("failed to read random bytes: %v", e.Err)
}

func (e *RngError) Unwrap() error {
	return e.Err
}

func IsRngError(err error) bool {
	var target *RngError
	return errors.As(err, &target)
}

// Generator reads salts from a random source.
type Generator struct {
	source io.Reader
}

type GeneratorOpt = func(*Generator) error

// UseSource overrides the random source, which defaults to crypto/rand.Reader.
func UseSource(source io.Reader) GeneratorOpt {
	return func(g *Generator) error {
		if source == nil {
			return errors.New("nil random source")
		}
		g.source = source
		return nil
	}
}

func NewGenerator(opts ...GeneratorOpt) (*Generator, error) {
	g := &Generator{
		source: rand.Reader,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Generate returns length bytes from the source. A short read is an error.
func (g *Generator) Generate(length int) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("invalid salt length %d", length)
	}
	buf := make([]byte, length)
	if length == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(g.source, buf); err != nil {
		return nil, &RngError{Err: err}
	}
	return buf, nil
}
