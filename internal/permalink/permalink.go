// Package permalink derives, sanitizes and caches document permalinks.
package permalink

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/gopatchy/stakx/internal/frontmatter"
	"github.com/gopatchy/stakx/pkg/errors"
)

// Options are the runtime flags that affect permalinks.
type Options struct {
	PreserveCase       bool
	StrippedExtensions []string
}

// Builder computes one document's permalink and redirects. The result is
// cached until Build is called with force.
type Builder struct {
	opts      Options
	built     bool
	permalink string
	redirects []string
}

// New returns a Builder with the given options.
func New(opts Options) *Builder {
	return &Builder{
		opts: opts,
	}
}

// Build reads the top-level permalink of evaluated front matter. A string
// is the permalink. A list of strings is the permalink followed by
// redirects. Without a permalink, fallbackPath is used. Unresolved
// expansion fails with ErrPermalinkNotExpanded; the caller must pick a
// branch first.
func (b *Builder) Build(fm *frontmatter.Tree, fallbackPath string, force bool) (string, []string, error) {
	if b.built && !force {
		return b.permalink, b.redirects, nil
	}

	candidates, err := candidates(fm)
	if err != nil {
		return "", nil, err
	}

	if len(candidates) == 0 {
		candidates = []string{FromPath(fallbackPath)}
	}

	b.permalink = Clean(candidates[0], b.opts)
	b.redirects = []string{}

	for _, c := range candidates[1:] {
		b.redirects = append(b.redirects, Clean(c, b.opts))
	}

	b.built = true

	return b.permalink, b.redirects, nil
}

// Permalink returns the cached permalink, or "" before the first Build.
func (b *Builder) Permalink() string {
	return b.permalink
}

// Redirects returns the cached redirects.
func (b *Builder) Redirects() []string {
	return b.redirects
}

// TargetFile returns the output path of the cached permalink.
func (b *Builder) TargetFile() string {
	return TargetFile(b.permalink)
}

func candidates(fm *frontmatter.Tree) ([]string, error) {
	if fm == nil {
		return nil, nil
	}

	v, found := fm.Get("permalink")
	if !found || v == nil {
		return nil, nil
	}

	switch v2 := v.(type) {
	case string:
		return []string{v2}, nil

	case *frontmatter.ExpandedValue:
		return []string{v2.Evaluated}, nil

	case frontmatter.Expansion, []*frontmatter.ExpandedValue:
		return nil, errors.ErrPermalinkNotExpanded

	case []any:
		ret := make([]string, 0, len(v2))

		for _, e := range v2 {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("permalink entry %T: %w", e, errors.ErrPermalinkNotExpanded)
			}

			ret = append(ret, s)
		}

		return ret, nil

	default:
		s, err := cast.ToStringE(v2)
		if err != nil {
			return nil, fmt.Errorf("permalink %T: %w", v, errors.ErrInvalidType)
		}

		return []string{s}, nil
	}
}
