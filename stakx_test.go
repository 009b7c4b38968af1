package stakx_test

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/gopatchy/stakx"
	"github.com/gopatchy/stakx/pkg/errors"
)

func calendarSite() fstest.MapFS {
	return fstest.MapFS{
		"site/_config.yml": {Data: []byte("title: Cal\n")},
		"site/_pages/calendar.html": {Data: []byte(`---
month: [jan, feb]
permalink: ["/calendar/%month/", "/cal/%month/"]
---
`)},
		"site/_pages/About.md": {Data: []byte("---\npermalink: /About/\n---\n")},
	}
}

func TestCompile(t *testing.T) {
	t.Parallel()

	mfs := calendarSite()

	site, err := stakx.Compile(context.Background(), mustSub(t, mfs, "site"), stakx.Options{})
	require.NoError(t, err)
	require.Equal(t, "Cal", site.Config.Title)
	require.Equal(t, []string{"/about/", "/calendar/{month}/", "/cal/jan/", "/cal/feb/"}, site.Routes)

	site, err = stakx.Compile(context.Background(), mustSub(t, mfs, "site"), stakx.Options{PreserveCase: true})
	require.NoError(t, err)
	require.Equal(t, "/About/", site.Routes[0])
}

func TestCompileCalendarPairsRedirects(t *testing.T) {
	t.Parallel()

	site, err := stakx.Compile(context.Background(), mustSub(t, calendarSite(), "site"), stakx.Options{})
	require.NoError(t, err)

	primaries := map[string][]string{}
	for _, p := range site.Pages {
		if p.RedirectTo == "" && p.Iterators != nil {
			primaries[p.Iterators["month"]] = append([]string{p.Permalink}, p.Redirects...)
		}
	}

	require.Equal(t, map[string][]string{
		"jan": {"/calendar/jan/", "/cal/jan/"},
		"feb": {"/calendar/feb/", "/cal/feb/"},
	}, primaries)
}

func TestManifestFormatOutput(t *testing.T) {
	t.Parallel()

	site, err := stakx.Compile(context.Background(), mustSub(t, calendarSite(), "site"), stakx.Options{})
	require.NoError(t, err)

	out, err := site.FormatManifest("", "manifest.json")
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	require.Equal(t, "Cal", m["title"])
	require.Len(t, m["pages"], 5)
	require.Equal(t, []any{
		map[string]any{"from": "/cal/jan/", "to": "/calendar/jan/"},
		map[string]any{"from": "/cal/feb/", "to": "/calendar/feb/"},
	}, m["redirects"])

	for _, name := range []string{"yaml", "toml", "properties", "json-pretty"} {
		out, err := site.FormatManifest(name, "manifest.json")
		require.NoError(t, err, name)
		require.Contains(t, string(out), "/calendar/jan/", name)
	}

	_, err = site.FormatManifest("xml", "-")
	require.ErrorIs(t, err, errors.ErrUnknownFormat)

	out, err = site.FormatManifest("", "-")
	require.NoError(t, err)
	require.Contains(t, string(out), "title: Cal\n")

	out, err = site.FormatManifest("", "manifest")
	require.NoError(t, err)
	require.Contains(t, string(out), "title: Cal\n")

	out, err = stakx.FormatOutput(map[string]any{"a": 1}, stakx.DefaultManifestFormat)
	require.NoError(t, err)
	require.Equal(t, "a: 1\n", string(out))
}

func TestCompareRoutes(t *testing.T) {
	t.Parallel()

	mfs := calendarSite()
	mfs["other/_pages/calendar.html"] = &fstest.MapFile{Data: []byte(`---
month: [jan, feb]
permalink: /calendar/%month/
---
`)}
	mfs["other/_pages/new.md"] = &fstest.MapFile{Data: []byte("---\npermalink: /new/\n---\n")}

	res, err := stakx.CompareRoutes(context.Background(), mfs, "site", "other", stakx.Options{})
	require.NoError(t, err)
	require.Contains(t, res.Diff, "--- site")
	require.Contains(t, res.Diff, "+++ other")
	require.Contains(t, res.Diff, "-/about/")
	require.Contains(t, res.Diff, "-/cal/jan/ -> /calendar/jan/")
	require.Contains(t, res.Diff, "+/new/")

	res, err = stakx.CompareRoutes(context.Background(), mfs, "site", "/site/", stakx.Options{})
	require.NoError(t, err)
	require.Empty(t, res.Diff)
}

func TestCompileErrorHasPath(t *testing.T) {
	t.Parallel()

	_, err := stakx.Compile(context.Background(), fstest.MapFS{
		"_pages/a.md": {Data: []byte("---\nflag: true\ntitle: \"%flag\"\n---\n")},
	}, stakx.Options{})
	require.ErrorIs(t, err, errors.ErrUnsupportedVariableType)
	require.ErrorContains(t, err, "_pages/a.md")
}


func mustSub(t *testing.T, fsys fs.FS, dir string) fs.FS {
	t.Helper()

	sub, err := fs.Sub(fsys, dir)
	require.NoError(t, err)

	return sub
}

func TestWriteFiles(t *testing.T) {
	t.Parallel()

	site, err := stakx.Compile(context.Background(), mustSub(t, calendarSite(), "site"), stakx.Options{
		Renderer: stakx.RendererFunc(func(p *stakx.Page) ([]byte, error) {
			if p.RedirectTo != "" {
				return p.Body, nil
			}
			return []byte("page " + p.Permalink), nil
		}),
	})
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, site.WriteFiles(dir))

	got, err := os.ReadFile(filepath.Join(dir, "calendar", "jan", "index.html"))
	require.NoError(t, err)
	require.Equal(t, "page /calendar/jan/", string(got))

	got, err = os.ReadFile(filepath.Join(dir, "cal", "feb", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(got), `url=/calendar/feb/`)
}
