// Package fsys wraps an fs.FS with the lookups the site loader needs.
package fsys

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/gopatchy/stakx/internal/format"
	"github.com/gopatchy/stakx/internal/utils"
)

type FS struct {
	fsys fs.FS
}

func New(fsys fs.FS) *FS {
	return &FS{
		fsys: fsys,
	}
}

func (f *FS) Open(name string) (fs.File, error) {
	return f.fsys.Open(f.convertToFS(name))
}

func (f *FS) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(f.fsys, f.convertToFS(name))
}

func (f *FS) stat(name string) (fs.FileInfo, error) {
	return fs.Stat(f.fsys, f.convertToFS(name))
}

// convertToFS turns a site-relative path into an fs.FS path.
func (f *FS) convertToFS(p string) string {
	result := strings.Trim(path.Clean("/"+strings.ReplaceAll(p, `\`, "/")), "/")
	if result == "" {
		return "."
	}
	return result
}

// Exists reports whether name is a regular file.
func (f *FS) Exists(name string) bool {
	info, err := f.stat(name)
	return err == nil && !info.IsDir()
}

// FindFile returns the first of path.<ext> that exists, trying the
// registered format extensions in sorted order, or "".
func (f *FS) FindFile(p string) string {
	for _, ext := range format.Extensions() {
		extPath := fmt.Sprintf("%s.%s", p, ext)
		if f.Exists(extPath) {
			return extPath
		}
	}
	return ""
}

// Walk returns every regular file below dir in lexical order. Entries whose
// name starts with "." are skipped. A missing dir has no files.
func (f *FS) Walk(dir string) ([]string, error) {
	root := f.convertToFS(dir)

	info, err := fs.Stat(f.fsys, root)
	if err != nil || !info.IsDir() {
		return []string{}, nil //nolint:nilerr
	}

	ret := []string{}

	err = fs.WalkDir(f.fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if p != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if !d.IsDir() {
			ret = append(ret, p)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	slices.Sort(ret)

	return ret, nil
}

// DataFiles returns the files below dir whose extension is a registered
// format.
func (f *FS) DataFiles(dir string) ([]string, error) {
	files, err := f.Walk(dir)
	if err != nil {
		return nil, err
	}

	ret := []string{}

	for _, p := range files {
		if _, err := format.Get(utils.Ext(p)); err != nil {
			continue
		}

		ret = append(ret, p)
	}

	return ret, nil
}
