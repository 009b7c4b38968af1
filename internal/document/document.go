// Package document holds a site document: its raw front matter, its body,
// and the evaluation and permalink state derived from them.
package document

import (
	"path"

	"github.com/gopatchy/stakx/internal/frontmatter"
	"github.com/gopatchy/stakx/internal/permalink"
	"github.com/gopatchy/stakx/internal/utils"
)

// Document is one source file of a site.
type Document struct {
	RelativePath string
	FrontMatter  *frontmatter.Tree
	Body         []byte

	evaluated *frontmatter.Tree
	expanded  bool
	iterators map[string]string
	links     *permalink.Builder
}

// New returns a Document. A nil fm is an empty front matter tree.
func New(relPath string, fm *frontmatter.Tree, body []byte) *Document {
	if fm == nil {
		fm = frontmatter.NewTree()
	}

	return &Document{
		RelativePath: relPath,
		FrontMatter:  fm,
		Body:         body,
	}
}

// Parse splits content into front matter and body and parses the front
// matter as YAML.
func Parse(relPath string, content []byte) (*Document, error) {
	raw, body, err := Split(content)
	if err != nil {
		return nil, err
	}

	fm, err := parseFrontMatter(raw)
	if err != nil {
		return nil, err
	}

	return New(relPath, fm, body), nil
}

// Filename is the base name including extension.
func (d *Document) Filename() string {
	return path.Base(d.RelativePath)
}

// Basename is the base name without extension.
func (d *Document) Basename() string {
	return utils.Basename(d.RelativePath)
}

// SpecialKeys are injected into every evaluation and override front matter
// keys of the same name.
func (d *Document) SpecialKeys() map[string]any {
	return map[string]any{
		"filename": d.Filename(),
		"basename": d.Basename(),
		"filePath": d.RelativePath,
	}
}

// Evaluate evaluates the raw front matter. extra is merged over
// SpecialKeys; complex backs %{a.b} references. Any cached permalink is
// invalidated.
func (d *Document) Evaluate(extra map[string]any, complex map[string]any, opts frontmatter.Options) error {
	special := d.SpecialKeys()
	for k, v := range extra {
		special[k] = v
	}

	evaluated, expanded, err := frontmatter.Evaluate(d.FrontMatter, special, complex, opts)
	if err != nil {
		return err
	}

	d.evaluated = evaluated
	d.expanded = expanded
	d.links = nil

	return nil
}

// Evaluated returns the evaluated front matter, or nil before Evaluate.
func (d *Document) Evaluated() *frontmatter.Tree {
	return d.evaluated
}

// HasExpansion reports whether the last evaluation expanded the permalink.
func (d *Document) HasExpansion() bool {
	return d.expanded
}

// Iterators returns the expansion variables that produced this branch, or
// nil for a document that is not a repeater branch.
func (d *Document) Iterators() map[string]string {
	return d.iterators
}

// Get returns a top-level front matter value, evaluated when available.
func (d *Document) Get(key string) any {
	v, _ := d.tree().Get(key)
	return v
}

// BuildPermalink computes the permalink and redirects from the evaluated
// front matter, falling back to the relative path. The result is cached
// until force is set or the document is evaluated again.
func (d *Document) BuildPermalink(opts permalink.Options, force bool) (string, []string, error) {
	if d.links == nil {
		d.links = permalink.New(opts)
		force = true
	}

	return d.links.Build(d.tree(), d.RelativePath, force)
}

func (d *Document) tree() *frontmatter.Tree {
	if d.evaluated != nil {
		return d.evaluated
	}

	return d.FrontMatter
}

// Permalink returns the cached permalink, or "" before BuildPermalink.
func (d *Document) Permalink() string {
	if d.links == nil {
		return ""
	}

	return d.links.Permalink()
}

// Redirects returns the cached redirects.
func (d *Document) Redirects() []string {
	if d.links == nil {
		return []string{}
	}

	return d.links.Redirects()
}

// TargetFile returns the output path of the cached permalink.
func (d *Document) TargetFile() string {
	if d.links == nil {
		return ""
	}

	return d.links.TargetFile()
}

// Clone returns a copy with its own raw front matter and no evaluation
// state. The body is shared.
func (d *Document) Clone() *Document {
	return New(d.RelativePath, utils.DeepClone(d.FrontMatter).(*frontmatter.Tree), d.Body)
}

// Branches splits an expanded document into one document per primary
// expansion branch. Branch i has the permalink list [primary[i],
// alternates(i)...] and an iterators key holding the variables that
// produced it. A document without expansion is its own single branch.
func (d *Document) Branches() []*Document {
	x, ok := d.Get("permalink").(frontmatter.Expansion)
	if !d.expanded || !ok {
		return []*Document{d}
	}

	ret := []*Document{}

	for i, ev := range x.Primary() {
		links := []any{ev.Evaluated}
		for _, alt := range x.Alternates(i) {
			links = append(links, alt.Evaluated)
		}

		iterators := frontmatter.NewTree()
		for pair := ev.Iterators.Oldest(); pair != nil; pair = pair.Next() {
			iterators.Set(pair.Key, pair.Value)
		}

		fm := utils.DeepClone(d.evaluated).(*frontmatter.Tree)
		fm.Set("permalink", links)
		fm.Set("iterators", iterators)

		ret = append(ret, &Document{
			RelativePath: d.RelativePath,
			FrontMatter:  d.FrontMatter,
			Body:         d.Body,
			evaluated:    fm,
			iterators:    ev.IteratorMap(),
		})
	}

	return ret
}
