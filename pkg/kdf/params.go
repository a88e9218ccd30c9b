package kdf

import (
	"fmt"
)

const (
	// KeySize is the length of every derived key.
	KeySize    = 32
	// MinSaltLen is the shortest salt the engine accepts.
	MinSaltLen = 8

	MinMemoryCost  uint32 = 8
	MinTimeCost    uint32 = 1
	MinParallelism uint32 = 1
	MaxParallelism uint32 = 0xFFFFFF
)

// Params are the Argon2 cost parameters.
type Params struct {
	// MemoryCost is the memory size in KiB.
	MemoryCost uint32
	// TimeCost is the number of passes over memory.
	TimeCost uint32
	// Parallelism is the number of lanes.
	Parallelism uint32
}

// NewParams validates and returns a Params.
func NewParams(memoryCost, timeCost, parallelism uint32) (Params, error) {
	p := Params{
		MemoryCost:  memoryCost,
		TimeCost:    timeCost,
		Parallelism: parallelism,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate applies the Argon2 parameter rules.
func (p Params) Validate() error {
	if p.MemoryCost < MinMemoryCost {
		return fmt.Errorf("%w: m_cost %d is less than %d", ErrMemoryTooLittle, p.MemoryCost, MinMemoryCost)
	}
	if uint64(p.MemoryCost) < 8*uint64(p.Parallelism) {
		return fmt.Errorf("%w: m_cost %d is less than 8 * p_cost (%d)", ErrMemoryTooLittle, p.MemoryCost, p.Parallelism)
	}
	if p.TimeCost < MinTimeCost {
		return fmt.Errorf("%w: t_cost must be at least %d", ErrTimeTooSmall, MinTimeCost)
	}
	if p.Parallelism < MinParallelism {
		return fmt.Errorf("%w: p_cost must be at least %d", ErrThreadsTooFew, MinParallelism)
	}
	if p.Parallelism > MaxParallelism {
		return fmt.Errorf("%w: p_cost must be at most %d", ErrThreadsTooMany, MaxParallelism)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("m_cost=%d t_cost=%d p_cost=%d", p.MemoryCost, p.TimeCost, p.Parallelism)
}
