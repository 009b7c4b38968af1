package document

import (
	"github.com/gopatchy/stakx/internal/frontmatter"
)

// Jailed is the fixed set of accessors templates may call on a document.
type Jailed interface {
	Permalink() string
	Redirects() []string
	FrontMatter() map[string]any
	Get(key string) any
	RelativePath() string
	Basename() string
	Filename() string
	Content() string
}

// Jail wraps a Document and exposes only the Jailed accessors.
type Jail struct {
	doc *Document
}

var _ Jailed = (*Jail)(nil)

// NewJail wraps doc.
func NewJail(doc *Document) *Jail {
	return &Jail{
		doc: doc,
	}
}

func (j *Jail) Permalink() string { return j.doc.Permalink() }

func (j *Jail) Redirects() []string { return j.doc.Redirects() }

// FrontMatter returns the evaluated front matter as plain maps.
func (j *Jail) FrontMatter() map[string]any {
	return frontmatter.Plain(j.doc.tree()).(map[string]any)
}

func (j *Jail) Get(key string) any { return frontmatter.Plain(j.doc.Get(key)) }

func (j *Jail) RelativePath() string { return j.doc.RelativePath }

func (j *Jail) Basename() string { return j.doc.Basename() }

func (j *Jail) Filename() string { return j.doc.Filename() }

func (j *Jail) Content() string { return string(j.doc.Body) }
