// Package format decodes and encodes data files and front matter blocks.
package format

import (
	"fmt"
	"slices"

	"github.com/gopatchy/stakx/pkg/errors"
)

// Format handles marshaling and unmarshaling for a specific file format
type Format struct {
	MarshalStream   func([]any) ([]byte, error)
	UnmarshalStream func([]byte) ([]any, error)
}

var formatByExtension = map[string]Format{
	"json": {
		MarshalStream:   jsonMarshalStream,
		UnmarshalStream: jsonUnmarshalStream,
	},
	"json-pretty": {
		MarshalStream:   jsonMarshalStreamPretty,
		UnmarshalStream: jsonUnmarshalStream,
	},
	"properties": {
		MarshalStream:   propertiesMarshalStream,
		UnmarshalStream: propertiesUnmarshalStream,
	},
	"toml": {
		MarshalStream:   tomlMarshalStream,
		UnmarshalStream: tomlUnmarshalStream,
	},
	"yaml": {
		MarshalStream:   yamlMarshalStream,
		UnmarshalStream: yamlUnmarshalStream,
	},
	"yml": {
		MarshalStream:   yamlMarshalStream,
		UnmarshalStream: yamlUnmarshalStream,
	},
}

// Get retrieves a format by name from the registry
func Get(name string) (*Format, error) {
	ft, found := formatByExtension[name]
	if !found {
		return nil, fmt.Errorf("%s: %w", name, errors.ErrUnknownFormat)
	}

	return &ft, nil
}

// Extensions returns all supported format extensions in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(formatByExtension))
	for ext := range formatByExtension {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Unmarshal decodes a single-document input.
func (f *Format) Unmarshal(in []byte) (any, error) {
	docs, err := f.UnmarshalStream(in)
	if err != nil {
		return nil, fmt.Errorf("%w (%w)", err, errors.ErrDecode)
	}

	switch len(docs) {
	case 0:
		return nil, nil
	case 1:
		return docs[0], nil
	default:
		return nil, fmt.Errorf("%d documents in single-document input (%w)", len(docs), errors.ErrDecode)
	}
}
