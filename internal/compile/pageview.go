package compile

import (
	"fmt"

	"github.com/gopatchy/stakx/internal/document"
	"github.com/gopatchy/stakx/internal/frontmatter"
	"github.com/gopatchy/stakx/internal/route"
	"github.com/gopatchy/stakx/internal/utils"
	"github.com/gopatchy/stakx/pkg/log"
)

// compilePageView evaluates a page view and returns its pages without
// registering routes. Front matter with a collection key makes a dynamic
// page view; an expanding permalink makes a repeater.
func (c *Compiler) compilePageView(view *document.Document) ([]*Page, error) {
	if name := utils.ToString(view.Get("collection")); name != "" {
		return c.compileDynamic(view, name)
	}

	err := view.Evaluate(nil, c.complex, c.flags.FrontMatter())
	if err != nil {
		return nil, err
	}

	// Only an expanded top-level permalink makes a repeater; nested
	// expansions stay in the front matter of a static page.
	if _, ok := view.Get("permalink").(frontmatter.Expansion); ok && view.HasExpansion() {
		return c.compileRepeater(view)
	}

	_, _, err = view.BuildPermalink(c.flags.Permalink(), false)
	if err != nil {
		return nil, err
	}

	log.Debugf("static %s -> %s", view.RelativePath, view.Permalink())

	return []*Page{newPage(route.Static, view)}, nil
}

func (c *Compiler) compileRepeater(view *document.Document) ([]*Page, error) {
	pages := []*Page{}

	for _, branch := range view.Branches() {
		_, _, err := branch.BuildPermalink(c.flags.Permalink(), false)
		if err != nil {
			return nil, err
		}

		log.Debugf("repeater %s -> %s %v", view.RelativePath, branch.Permalink(), branch.Iterators())

		pages = append(pages, newPage(route.Repeater, branch))
	}

	return pages, nil
}

// compileDynamic produces one page per item of the named collection. Each
// item is re-evaluated with the page view's raw permalink, so the item's own
// values fill the pattern.
func (c *Compiler) compileDynamic(view *document.Document, name string) ([]*Page, error) {
	if _, err := c.cfg.Collection(name); err != nil {
		return nil, err
	}

	// The pattern references item variables, so the view is evaluated
	// without it.
	tpl := view.Clone()
	tpl.FrontMatter.Delete("permalink")

	err := tpl.Evaluate(nil, c.complex, c.flags.FrontMatter())
	if err != nil {
		return nil, err
	}

	raw, _ := view.FrontMatter.Get("permalink")
	extra := map[string]any{"permalink": raw}

	pages := []*Page{}

	for _, item := range c.items[name] {
		doc := item.Clone()

		err := doc.Evaluate(extra, c.complex, c.flags.FrontMatter())
		if err != nil {
			return nil, errorWithItem(item, err)
		}

		for _, branch := range doc.Branches() {
			_, _, err := branch.BuildPermalink(c.flags.Permalink(), false)
			if err != nil {
				return nil, errorWithItem(item, err)
			}

			page := newPage(route.Dynamic, branch)
			page.Path = view.RelativePath
			page.Context = newPage(route.Dynamic, tpl).Context
			page.Item = document.NewJail(branch)
			page.Body = view.Body

			log.Debugf("dynamic %s[%s] -> %s", view.RelativePath, item.RelativePath, page.Permalink)

			pages = append(pages, page)
		}
	}

	return pages, nil
}

func errorWithItem(item *document.Document, err error) error {
	return fmt.Errorf("item %s: %w", item.RelativePath, err)
}
