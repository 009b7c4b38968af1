package document

import (
	"bytes"

	"github.com/gopatchy/stakx/internal/format"
	"github.com/gopatchy/stakx/internal/frontmatter"
	"github.com/gopatchy/stakx/pkg/errors"
)

// Split separates a `---` delimited YAML front matter block from the body.
// Content that does not open with a delimiter has no front matter.
func Split(content []byte) ([]byte, []byte, error) {
	nl := "\n"
	if bytes.HasPrefix(content, []byte("---\r\n")) {
		nl = "\r\n"
	}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], nil
	}

	rest := content[start:]

	idx := bytes.Index(rest, []byte(nl+"---"+nl))
	if idx >= 0 {
		return rest[:idx+len(nl)], rest[idx+len(nl)+len(open):], nil
	}

	// Closing delimiter at end of input
	if bytes.HasSuffix(rest, []byte(nl+"---")) {
		return rest[:len(rest)-len("---")], []byte{}, nil
	}

	return nil, nil, errors.ErrMissingClosingDelimiter
}

func parseFrontMatter(raw []byte) (*frontmatter.Tree, error) {
	if raw == nil {
		return frontmatter.NewTree(), nil
	}

	return format.ParseYAMLTree(raw)
}
