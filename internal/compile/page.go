package compile

import (
	"github.com/gopatchy/stakx/internal/document"
	"github.com/gopatchy/stakx/internal/frontmatter"
	"github.com/gopatchy/stakx/internal/route"
)

// Page is one output file of the build.
type Page struct {
	Path       string
	Kind       route.Kind
	Permalink  string
	TargetFile string
	Redirects  []string
	Iterators  map[string]string

	// RedirectTo is set for generated redirect pages.
	RedirectTo string

	// Context is the evaluated front matter handed to the renderer.
	Context map[string]any

	// Item is the collection item a dynamic page was compiled for.
	Item document.Jailed

	Body []byte

	doc *document.Document
}

// Document returns the jailed source document of the page.
func (p *Page) Document() document.Jailed {
	return document.NewJail(p.doc)
}

func newPage(kind route.Kind, doc *document.Document) *Page {
	return &Page{
		Path:       doc.RelativePath,
		Kind:       kind,
		Permalink:  doc.Permalink(),
		TargetFile: doc.TargetFile(),
		Redirects:  doc.Redirects(),
		Iterators:  doc.Iterators(),
		Context:    frontmatter.Plain(doc.Evaluated()).(map[string]any),
		Body:       doc.Body,
		doc:        doc,
	}
}

// Renderer turns a page into its output bytes.
type Renderer interface {
	Render(page *Page) ([]byte, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(page *Page) ([]byte, error)

func (f RendererFunc) Render(page *Page) ([]byte, error) {
	return f(page)
}

// Identity returns page bodies unchanged.
var Identity = RendererFunc(func(page *Page) ([]byte, error) {
	return page.Body, nil
})
