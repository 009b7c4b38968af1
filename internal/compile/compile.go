// Package compile drives a site build: it loads data and collections,
// evaluates page views and registers their routes.
package compile

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gopatchy/stakx/internal/config"
	"github.com/gopatchy/stakx/internal/document"
	"github.com/gopatchy/stakx/internal/file"
	"github.com/gopatchy/stakx/internal/fsys"
	"github.com/gopatchy/stakx/internal/permalink"
	"github.com/gopatchy/stakx/internal/route"
	"github.com/gopatchy/stakx/internal/utils"
	"github.com/gopatchy/stakx/pkg/errors"
	"github.com/gopatchy/stakx/pkg/log"
)

// Result is the output of a build.
type Result struct {
	Pages     []*Page
	Routes    []string
	Redirects []route.Redirect
}

type Compiler struct {
	fsys     *fsys.FS
	cfg      *config.Config
	flags    config.Flags
	renderer Renderer

	complex map[string]any
	items   map[string][]*document.Document
	routes  *route.Table[*document.Document]
}

// New returns a Compiler for the site in fsys. A nil renderer is Identity.
func New(fsys *fsys.FS, cfg *config.Config, flags config.Flags, renderer Renderer) *Compiler {
	if renderer == nil {
		renderer = Identity
	}

	if flags.Location == nil {
		flags.Location = cfg.Location()
	}

	return &Compiler{
		fsys:     fsys,
		cfg:      cfg,
		flags:    flags,
		renderer: renderer,
		items:    map[string][]*document.Document{},
		routes:   route.New[*document.Document](flags.StrictRoutes, flags.Permalink()),
	}
}

// Compile builds every page view of the site.
func (c *Compiler) Compile(ctx context.Context) (*Result, error) {
	data, err := c.loadData()
	if err != nil {
		return nil, err
	}

	c.complex = map[string]any{
		"site": c.cfg.Site,
		"data": data,
	}

	err = c.loadCollections(ctx)
	if err != nil {
		return nil, err
	}

	views, err := c.loadDocuments(ctx, c.cfg.PageViews)
	if err != nil {
		return nil, err
	}

	compiled := make([][]*Page, len(views))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, view := range views {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			pages, err := c.compilePageView(view)
			if err != nil {
				return errors.WithFile(view.RelativePath, err)
			}

			compiled[i] = pages

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}

	// Register in document order so routes are deterministic
	result := &Result{
		Pages: []*Page{},
	}

	for i, pages := range compiled {
		registered, err := c.register(views[i], pages)
		if err != nil {
			return nil, err
		}

		result.Pages = append(result.Pages, registered...)
	}

	for _, page := range result.Pages {
		page.Body, err = c.renderer.Render(page)
		if err != nil {
			return nil, errors.WithFile(page.Path, err)
		}
	}

	result.Routes = c.routes.Routes()
	result.Redirects = c.routes.Redirects()

	return result, nil
}

// Routes returns the route table filled by Compile.
func (c *Compiler) Routes() *route.Table[*document.Document] {
	return c.routes
}

func (c *Compiler) loadData() (map[string]any, error) {
	data := map[string]any{}

	for _, dir := range c.cfg.Data {
		paths, err := c.fsys.DataFiles(dir)
		if err != nil {
			return nil, err
		}

		for _, p := range paths {
			v, err := file.LoadData(c.fsys, p)
			if err != nil {
				return nil, err
			}

			name := utils.Basename(p)
			if _, found := data[name]; found {
				log.Warn("duplicate data item", log.Path(p), slog.String("name", name))
			}

			data[name] = v
		}
	}

	return data, nil
}

func (c *Compiler) loadCollections(ctx context.Context) error {
	for _, col := range c.cfg.Collections {
		docs, err := c.loadDocuments(ctx, []string{col.Folder})
		if err != nil {
			return err
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))

		for _, doc := range docs {
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}

				err := doc.Evaluate(nil, c.complex, c.flags.FrontMatter())
				return errors.WithFile(doc.RelativePath, err)
			})
		}

		err = g.Wait()
		if err != nil {
			return err
		}

		c.items[col.Name] = docs

		log.Debugf("collection %s: %d items", col.Name, len(docs))
	}

	return nil
}

// loadDocuments loads every document below dirs in parallel, dropping
// drafts unless drafts are included. Order follows the directory walk.
func (c *Compiler) loadDocuments(ctx context.Context, dirs []string) ([]*document.Document, error) {
	paths := []string{}

	for _, dir := range dirs {
		p, err := c.fsys.Walk(dir)
		if err != nil {
			return nil, err
		}

		paths = append(paths, p...)
	}

	docs := make([]*document.Document, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, p := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			doc, err := file.Load(c.fsys, p)
			if err != nil {
				return err
			}

			docs[i] = doc

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	ret := []*document.Document{}

	for _, doc := range docs {
		if !c.flags.IncludeDrafts && utils.ToBool(doc.Get("draft")) {
			log.Info("skipping draft", log.Path(doc.RelativePath))
			continue
		}

		ret = append(ret, doc)
	}

	return ret, nil
}

func (c *Compiler) register(view *document.Document, pages []*Page) ([]*Page, error) {
	if len(pages) == 0 {
		return pages, nil
	}

	kind := pages[0].Kind

	if kind != route.Static {
		_, err := c.registerRoute(kind, rawPermalink(view), view)
		if err != nil {
			return nil, errors.WithFile(view.RelativePath, err)
		}
	}

	ret := []*Page{}

	for _, page := range pages {
		if kind == route.Static {
			_, err := c.registerRoute(route.Static, page.Permalink, page.doc)
			if err != nil {
				return nil, errors.WithFile(page.Path, err)
			}
		}

		ret = append(ret, page)

		redirects, err := c.redirectPages(page)
		if err != nil {
			return nil, errors.WithFile(page.Path, err)
		}

		ret = append(ret, redirects...)
	}

	return ret, nil
}

func (c *Compiler) registerRoute(kind route.Kind, r string, owner *document.Document) (string, error) {
	key, replaced, err := c.routes.Register(kind, r, owner)
	if err != nil {
		return "", err
	}

	if replaced {
		log.Warn("route claimed by multiple documents, last one wins",
			log.Route(key), log.Path(owner.RelativePath))
	}

	return key, nil
}

func (c *Compiler) redirectPages(page *Page) ([]*Page, error) {
	ret := []*Page{}

	for _, from := range page.Redirects {
		doc, err := document.NewRedirect(from, page.Permalink)
		if err != nil {
			return nil, err
		}

		_, _, err = doc.BuildPermalink(c.flags.Permalink(), false)
		if err != nil {
			return nil, err
		}

		_, err = c.registerRoute(route.Static, doc.Permalink(), doc)
		if err != nil {
			return nil, err
		}

		c.routes.AddRedirect(doc.Permalink(), page.Permalink)

		p := newPage(route.Static, doc)
		p.Path = page.Path
		p.RedirectTo = page.Permalink

		ret = append(ret, p)
	}

	return ret, nil
}

// rawPermalink returns the unevaluated primary permalink of a page view,
// falling back to the one derived from its path.
func rawPermalink(doc *document.Document) string {
	v, _ := doc.FrontMatter.Get("permalink")

	switch v2 := v.(type) {
	case string:
		return v2

	case []any:
		if len(v2) > 0 {
			return utils.ToString(v2[0])
		}
	}

	return permalink.FromPath(doc.RelativePath)
}
