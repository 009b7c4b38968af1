// Package stakx compiles the pages of a static site: it evaluates front
// matter, expands repeater and dynamic pages into concrete permalinks and
// builds the site's route table.
package stakx

import (
	"context"
	"io/fs"

	"github.com/gopatchy/stakx/internal/compile"
	"github.com/gopatchy/stakx/internal/config"
	"github.com/gopatchy/stakx/internal/fsys"
	"github.com/gopatchy/stakx/internal/route"
)

type (
	Page         = compile.Page
	Renderer     = compile.Renderer
	RendererFunc = compile.RendererFunc
	Config       = config.Config
	Redirect     = route.Redirect
)

// Options adjust a build. Flags set here are added to those set by the
// site configuration.
type Options struct {
	// ConfigPath is relative to the site root. "" finds _config.<ext>.
	ConfigPath string

	PreserveCase  bool
	IncludeDrafts bool

	// Renderer produces page output. nil copies page bodies unchanged.
	Renderer Renderer
}

// Site is a compiled site.
type Site struct {
	Config    *Config
	Pages     []*Page
	Routes    []string
	Redirects []Redirect
}

// Compile loads the site rooted at root and compiles every page view.
func Compile(ctx context.Context, root fs.FS, opts Options) (*Site, error) {
	f := fsys.New(root)

	cfg, err := config.Load(f, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	flags := cfg.Flags()
	flags.PreserveCase = flags.PreserveCase || opts.PreserveCase
	flags.IncludeDrafts = flags.IncludeDrafts || opts.IncludeDrafts

	res, err := compile.New(f, cfg, flags, opts.Renderer).Compile(ctx)
	if err != nil {
		return nil, err
	}

	return &Site{
		Config:    cfg,
		Pages:     res.Pages,
		Routes:    res.Routes,
		Redirects: res.Redirects,
	}, nil
}

// Manifest describes the compiled site as plain data for FormatManifest.
func (s *Site) Manifest() map[string]any {
	pages := []any{}

	for _, p := range s.Pages {
		page := map[string]any{
			"path":      p.Path,
			"kind":      p.Kind.String(),
			"permalink": p.Permalink,
			"target":    p.TargetFile,
		}

		if len(p.Redirects) > 0 {
			page["redirects"] = toAnyList(p.Redirects)
		}

		if p.RedirectTo != "" {
			page["redirect_to"] = p.RedirectTo
		}

		if len(p.Iterators) > 0 {
			iterators := map[string]any{}
			for k, v := range p.Iterators {
				iterators[k] = v
			}
			page["iterators"] = iterators
		}

		pages = append(pages, page)
	}

	redirects := []any{}
	for _, r := range s.Redirects {
		redirects = append(redirects, map[string]any{
			"from": r.From,
			"to":   r.To,
		})
	}

	return map[string]any{
		"title":     s.Config.Title,
		"target":    s.Config.Target,
		"routes":    toAnyList(s.Routes),
		"redirects": redirects,
		"pages":     pages,
	}
}

func toAnyList(l []string) []any {
	ret := make([]any, len(l))
	for i, s := range l {
		ret[i] = s
	}
	return ret
}
