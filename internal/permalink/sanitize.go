package permalink

import (
	"path"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StrippedExtensions are removed from the end of a sanitized permalink.
var StrippedExtensions = []string{"twig"}

var (
	repeatedSlashRE = regexp.MustCompile(`/{2,}`)
	invalidCharRE   = regexp.MustCompile(`[^0-9a-zA-Z\-_/.]`)
	leadingJunkRE   = regexp.MustCompile(`^[^0-9a-zA-Z\-_]+`)
	schemeRE        = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)
)

// Sanitize cleans a permalink candidate without adding the leading slash.
// The steps run in a fixed order: collapse slashes, spaces to dashes, drop
// invalid characters, strip template extensions, drop leading punctuation,
// lowercase.
func Sanitize(s string, opts Options) string {
	s = repeatedSlashRE.ReplaceAllString(s, "/")
	s = strings.ReplaceAll(s, " ", "-")
	s = invalidCharRE.ReplaceAllString(s, "")

	stripped := opts.StrippedExtensions
	if stripped == nil {
		stripped = StrippedExtensions
	}

	if ext := path.Ext(s); ext != "" && slices.Contains(stripped, ext[1:]) {
		s = strings.TrimSuffix(s, ext)
	}

	s = leadingJunkRE.ReplaceAllString(s, "")

	if !opts.PreserveCase {
		s = cases.Lower(language.Und).String(s)
	}

	return s
}

// Normalize uses forward slashes and ensures exactly one leading slash.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, `\`, "/")
	return "/" + strings.TrimLeft(s, "/")
}

// Clean is Normalize(Sanitize(s)).
func Clean(s string, opts Options) string {
	return Normalize(Sanitize(s, opts))
}

// FromPath derives a permalink candidate from a document's relative path:
// any URI scheme and one leading separator are removed, and a leading
// underscore directory (_posts, _data, ...) is dropped.
func FromPath(p string) string {
	p = schemeRE.ReplaceAllString(p, "")
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimPrefix(p, "/")

	parts := strings.Split(p, "/")
	if len(parts) > 0 && strings.HasPrefix(parts[0], "_") {
		parts = parts[1:]
	}

	return strings.Join(parts, "/")
}

// TargetFile returns the output path, relative to the site root, that a
// permalink is written to.
func TargetFile(permalink string) string {
	if strings.HasSuffix(permalink, "/") {
		permalink += "index.html"
	}

	return strings.TrimLeft(permalink, "/")
}
