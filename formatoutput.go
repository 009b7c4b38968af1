package stakx

import (
	"github.com/gopatchy/stakx/internal/format"
	"github.com/gopatchy/stakx/internal/utils"
)

// DefaultManifestFormat is used when no format is named and the manifest
// path has no known extension.
const DefaultManifestFormat = "yaml"

// FormatManifest encodes the site manifest for writing to path. A non-empty
// formatName wins over the extension of path; "" and "-" name stdout.
func (s *Site) FormatManifest(formatName, path string) ([]byte, error) {
	return FormatOutput(s.Manifest(), manifestFormat(formatName, path))
}

// FormatOutput encodes data as a single document in the named format.
func FormatOutput(data any, formatName string) ([]byte, error) {
	ft, err := format.Get(formatName)
	if err != nil {
		return nil, err
	}

	return ft.MarshalStream([]any{data})
}

func manifestFormat(formatName, path string) string {
	if formatName != "" {
		return formatName
	}

	if path != "-" {
		if ext := utils.Ext(path); ext != "" {
			return ext
		}
	}

	return DefaultManifestFormat
}
