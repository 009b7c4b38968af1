package permalink_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gopatchy/stakx/internal/frontmatter"
	"github.com/gopatchy/stakx/internal/permalink"
	"github.com/gopatchy/stakx/pkg/errors"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"permal:;nk-~!a@^$-w3*rd-c(#4r$/": "permalnk-a-w3rd-c4r/",
		"page.twig":                       "page",
		"/blog/post.html.twig":            "blog/post.html",
		"/a//b///c/":                      "a/b/c/",
		"/Hello World/":                   "hello-world/",
		"./relative/path":                 "relative/path",
		"/tëst/ünicode/":                  "tst/nicode/",
		"/twig/folder/":                   "twig/folder/",
		"/file.TWIG":                      "file.twig",
	} {
		require.Equal(t, want, permalink.Sanitize(in, permalink.Options{}), in)
	}
}

func TestSanitizePreserveCase(t *testing.T) {
	t.Parallel()

	opts := permalink.Options{PreserveCase: true}

	require.Equal(t, "Blog/My-Post/", permalink.Sanitize("/Blog/My Post/", opts))
	require.Equal(t, "blog/my-post/", permalink.Sanitize("/Blog/My Post/", permalink.Options{}))
}

func TestClean(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"permal:;nk-~!a@^$-w3*rd-c(#4r$/": "/permalnk-a-w3rd-c4r/",
		"blog/en/":                        "/blog/en/",
		"//double/":                       "/double/",
		"":                                "/",
	} {
		require.Equal(t, want, permalink.Clean(in, permalink.Options{}), in)
	}
}

func TestFromPath(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"_posts/sub/file.md":      "sub/file.md",
		"/_posts/sub/file.md":     "sub/file.md",
		"vfs://_pages/about.html": "about.html",
		"pages/about.html":        "pages/about.html",
		"_single.md":              "",
	} {
		require.Equal(t, want, permalink.FromPath(in), in)
	}
}

func TestTargetFile(t *testing.T) {
	t.Parallel()

	require.Equal(t, "blog/en/index.html", permalink.TargetFile("/blog/en/"))
	require.Equal(t, "index.html", permalink.TargetFile("/"))
	require.Equal(t, "feed.xml", permalink.TargetFile("/feed.xml"))
}

func tree(kv ...any) *frontmatter.Tree {
	t := frontmatter.NewTree()
	for i := 0; i+1 < len(kv); i += 2 {
		t.Set(kv[i].(string), kv[i+1])
	}
	return t
}

func TestBuildString(t *testing.T) {
	t.Parallel()

	b := permalink.New(permalink.Options{})

	link, redirects, err := b.Build(tree("permalink", "/My Page/"), "_pages/ignored.md", false)
	require.NoError(t, err)
	require.Equal(t, "/my-page/", link)
	require.Empty(t, redirects)
	require.Equal(t, "my-page/index.html", b.TargetFile())
}

func TestBuildList(t *testing.T) {
	t.Parallel()

	link, redirects, err := permalink.New(permalink.Options{}).Build(
		tree("permalink", []any{"/new/", "/old/", "/Older Still/"}), "", false)
	require.NoError(t, err)
	require.Equal(t, "/new/", link)
	require.Equal(t, []string{"/old/", "/older-still/"}, redirects)
}

func TestBuildFallback(t *testing.T) {
	t.Parallel()

	link, redirects, err := permalink.New(permalink.Options{}).Build(tree("title", "x"), "_posts/sub/file.md", false)
	require.NoError(t, err)
	require.Equal(t, "/sub/file.md", link)
	require.Empty(t, redirects)
}

func TestBuildNotExpanded(t *testing.T) {
	t.Parallel()

	x := frontmatter.Expansion{{frontmatter.NewExpandedValue("/a/"), frontmatter.NewExpandedValue("/b/")}}

	_, _, err := permalink.New(permalink.Options{}).Build(tree("permalink", x), "", false)
	require.ErrorIs(t, err, errors.ErrPermalinkNotExpanded)

	_, _, err = permalink.New(permalink.Options{}).Build(tree("permalink", []any{x.Primary()}), "", false)
	require.ErrorIs(t, err, errors.ErrPermalinkNotExpanded)
}

func TestBuildCachesUntilForced(t *testing.T) {
	t.Parallel()

	b := permalink.New(permalink.Options{})
	fm := tree("permalink", "/first/")

	link, _, err := b.Build(fm, "", false)
	require.NoError(t, err)
	require.Equal(t, "/first/", link)

	fm.Set("permalink", "/second/")

	link, _, err = b.Build(fm, "", false)
	require.NoError(t, err)
	require.Equal(t, "/first/", link)

	link, _, err = b.Build(fm, "", true)
	require.NoError(t, err)
	require.Equal(t, "/second/", link)
	require.Equal(t, "/second/", b.Permalink())
}
