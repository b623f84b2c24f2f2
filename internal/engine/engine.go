// Package engine maps member types to their calculators and decodes member
// input files.
package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gorcd/internal/beam"
	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/column"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/footing"
	"github.com/alexiusacademia/gorcd/internal/slab"
	"github.com/alexiusacademia/gorcd/internal/wall"
)

// Format is the encoding of an input document.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ErrEmptyInput is returned for a document with no content.
var ErrEmptyInput = errors.New("empty input document")

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("cannot tell the format of %q: use a .json, .yaml or .yml file", path)
}

type entry struct {
	decode func(data []byte, f Format) (design.Input, error)
	run    func(id code.ID, in design.Input) (*design.Result, error)
}

func register[I design.Input](c design.Calculator[I]) entry {
	return entry{
		decode: func(data []byte, f Format) (design.Input, error) {
			var in I
			if err := Unmarshal(data, f, &in); err != nil {
				return nil, err
			}
			return in, nil
		},
		run: func(id code.ID, in design.Input) (*design.Result, error) {
			v, ok := in.(I)
			if !ok {
				return nil, fmt.Errorf("engine: %T is not a %s input", in, in.Member())
			}
			return design.Run(c, id, v)
		},
	}
}

var registry = map[design.Member]entry{
	design.Column:        register[column.Input](column.Calculator{}),
	design.Beam:          register[beam.Input](beam.Calculator{}),
	design.Slab:          register[slab.Input](slab.Calculator{}),
	design.Footing:       register[footing.Input](footing.Calculator{}),
	design.RetainingWall: register[wall.Input](wall.Calculator{}),
}

func lookup(m design.Member) (entry, error) {
	e, ok := registry[m]
	if !ok {
		_, err := design.ParseMember(string(m))
		return entry{}, err
	}
	return e, nil
}

// Decode reads the input of a member type. Unknown fields are rejected so
// that a misspelled field does not silently fall back to zero.
func Decode(m design.Member, data []byte, f Format) (design.Input, error) {
	e, err := lookup(m)
	if err != nil {
		return nil, err
	}
	in, err := e.decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("decode %s input: %w", m, err)
	}
	return in, nil
}

// Run designs one member under one building code.
func Run(id code.ID, in design.Input) (*design.Result, error) {
	e, err := lookup(in.Member())
	if err != nil {
		return nil, err
	}
	return e.run(id, in)
}

// Unmarshal decodes a JSON or YAML document into v, rejecting unknown
// fields.
func Unmarshal(data []byte, f Format, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyInput
	}
	switch f {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return ErrEmptyInput
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("unsupported input format %q", f)
}
