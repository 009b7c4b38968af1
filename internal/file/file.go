// Package file loads content documents and data files from a site tree.
package file

import (
	"github.com/gopatchy/stakx/internal/document"
	"github.com/gopatchy/stakx/internal/format"
	"github.com/gopatchy/stakx/internal/fsys"
	"github.com/gopatchy/stakx/internal/utils"
	"github.com/gopatchy/stakx/pkg/errors"
)

// Load reads a content document: front matter block plus body.
func Load(fsys *fsys.FS, path string) (*document.Document, error) {
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.WithFile(path, err)
	}

	doc, err := document.Parse(path, raw)
	if err != nil {
		return nil, errors.WithFile(path, err)
	}

	return doc, nil
}

// LoadData reads a data file, decoding it by extension.
func LoadData(fsys *fsys.FS, path string) (any, error) {
	ft, err := format.Get(utils.Ext(path))
	if err != nil {
		return nil, errors.WithFile(path, err)
	}

	raw, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.WithFile(path, err)
	}

	data, err := ft.Unmarshal(raw)
	if err != nil {
		return nil, errors.WithFile(path, err)
	}

	return data, nil
}
