package kdf

import (
	"errors"
	"fmt"
	"math"

	"github.com/saylorsolutions/sphragis/pkg/secure"
)

// Engine derives keys with Argon2id.
type Engine struct {
	alloc secure.Allocator
}

type EngineOpt = func(*Engine) error

// UseAllocator sets the Allocator used for derived keys. By default keys are held in secure.Locked memory.
func UseAllocator(alloc secure.Allocator) EngineOpt {
	return func(e *Engine) error {
		if alloc == nil {
			return errors.New("nil allocator")
		}
		e.alloc = alloc
		return nil
	}
}

// NewEngine creates a new Engine using the options provided as zero or more EngineOpt.
func NewEngine(opts ...EngineOpt) (*Engine, error) {
	e := &Engine{
		alloc: secure.Locked,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Derive runs Argon2id over secret and salt, returning a KeySize key owned by the caller.
// Neither secret nor salt is retained, and all working memory is wiped before returning.
// Any failure is reported as a *DerivationError.
func (e *Engine) Derive(secret, salt []byte, version Version, params Params) (*secure.Buffer, error) {
	if e == nil {
		return nil, &DerivationError{Err: ErrNilEngine}
	}
	if !version.Valid() {
		return nil, &DerivationError{Err: fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)}
	}
	if err := params.Validate(); err != nil {
		return nil, &DerivationError{Err: err}
	}
	if len(salt) < MinSaltLen {
		return nil, &DerivationError{Err: fmt.Errorf("%w: %d bytes, need at least %d", ErrSaltTooShort, len(salt), MinSaltLen)}
	}
	if uint64(len(salt)) > math.MaxUint32 || uint64(len(secret)) > math.MaxUint32 {
		return nil, &DerivationError{Err: errors.New("input is too long")}
	}

	key := secure.OrDefault(e.alloc).Alloc(KeySize)
	err := argon2id(key.Bytes(), argon2Input{
		password: secret,
		salt:     salt,
		passes:   params.TimeCost,
		memory:   params.MemoryCost,
		lanes:    params.Parallelism,
		version:  version,
	})
	if err != nil {
		key.Destroy()
		return nil, &DerivationError{Err: err}
	}
	return key, nil
}
