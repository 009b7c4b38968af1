package utils

import (
	"path"
	"path/filepath"
	"strings"
)

// Ext returns the extension of p without the leading dot.
func Ext(p string) string {
	return strings.TrimPrefix(filepath.Ext(p), ".")
}

// Basename returns the file name of p without its extension.
func Basename(p string) string {
	base := path.Base(filepath.ToSlash(p))
	return strings.TrimSuffix(base, path.Ext(base))
}
