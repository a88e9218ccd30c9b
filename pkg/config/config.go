// Package config loads the non-secret derivation inputs from a JSON5 or YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saylorsolutions/sphragis/pkg/codec"
	"github.com/saylorsolutions/sphragis/pkg/kdf"
	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "sphragis.json5"

type Format int

const (
	FormatJSON5 Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "json5"
	}
}

// FormatOf picks the document format from a file extension. Anything other than .yaml or .yml is JSON5, which also accepts plain JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON5
	}
}

// Context holds the validated, non-secret inputs to key derivation.
type Context struct {
	Version kdf.Version
	Params  kdf.Params
	Salt    []byte
}

type rawParams struct {
	MemoryCost  *uint32 `json:"m_cost" yaml:"m_cost"`
	TimeCost    *uint32 `json:"t_cost" yaml:"t_cost"`
	Parallelism *uint32 `json:"p_cost" yaml:"p_cost"`
}

type rawConfig struct {
	Version *string    `json:"version" yaml:"version"`
	Params  *rawParams `json:"params" yaml:"params"`
	Salt    *string    `json:"salt" yaml:"salt"`
}

// Load reads and validates the configuration at path.
func Load(path string) (*Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to read file", Err: err}
	}
	ctx, err := Parse(data, FormatOf(path))
	if err != nil {
		var cerr *Error
		if errors.As(err, &cerr) {
			cerr.Path = path
		}
		return nil, err
	}
	return ctx, nil
}

// Parse validates a configuration document already read into memory.
func Parse(data []byte, format Format) (*Context, error) {
	var raw rawConfig
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json5.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("malformed %s document", format), Err: err}
	}
	return raw.validate()
}

func (raw *rawConfig) validate() (*Context, error) {
	if raw.Version == nil {
		return nil, missing("version")
	}
	if raw.Params == nil {
		return nil, missing("params")
	}
	if raw.Params.MemoryCost == nil {
		return nil, missing("params.m_cost")
	}
	if raw.Params.TimeCost == nil {
		return nil, missing("params.t_cost")
	}
	if raw.Params.Parallelism == nil {
		return nil, missing("params.p_cost")
	}
	if raw.Salt == nil {
		return nil, missing("salt")
	}

	version, err := kdf.ParseVersion(*raw.Version)
	if err != nil {
		return nil, &Error{Field: "version", Err: err}
	}
	params, err := kdf.NewParams(*raw.Params.MemoryCost, *raw.Params.TimeCost, *raw.Params.Parallelism)
	if err != nil {
		return nil, &Error{Field: "params", Err: err}
	}
	salt, err := codec.DecodeSalt(*raw.Salt)
	if err != nil {
		return nil, &Error{Field: "salt", Err: err}
	}
	if len(salt) < kdf.MinSaltLen {
		return nil, &Error{
			Field:   "salt",
			Message: fmt.Sprintf("salt is %d bytes, need at least %d", len(salt), kdf.MinSaltLen),
			Err:     kdf.ErrSaltTooShort,
		}
	}
	return &Context{
		Version: version,
		Params:  params,
		Salt:    salt,
	}, nil
}

func missing(field string) *Error {
	return &Error{Field: field, Message: "required field is missing"}
}
