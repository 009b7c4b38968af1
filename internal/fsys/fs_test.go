package fsys_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/gopatchy/stakx/internal/fsys"
)

func testFS() *fsys.FS {
	return fsys.New(fstest.MapFS{
		"_config.yml":         {Data: []byte("title: x\n")},
		"_posts/b.md":         {Data: []byte("b")},
		"_posts/a.md":         {Data: []byte("a")},
		"_posts/sub/c.md":     {Data: []byte("c")},
		"_posts/.hidden.md":   {Data: []byte("h")},
		"_posts/.git/HEAD":    {Data: []byte("h")},
		"_data/menu.yaml":     {Data: []byte("a: 1\n")},
		"_data/people.json":   {Data: []byte("{}")},
		"_data/readme.txt":    {Data: []byte("skip")},
		"_data/sub/more.toml": {Data: []byte("a = 1\n")},
	})
}

func TestWalk(t *testing.T) {
	t.Parallel()

	files, err := testFS().Walk("_posts")
	require.NoError(t, err)
	require.Equal(t, []string{"_posts/a.md", "_posts/b.md", "_posts/sub/c.md"}, files)

	files, err = testFS().Walk("/_posts/")
	require.NoError(t, err)
	require.Len(t, files, 3)

	files, err = testFS().Walk("missing")
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestDataFiles(t *testing.T) {
	t.Parallel()

	files, err := testFS().DataFiles("_data")
	require.NoError(t, err)
	require.Equal(t, []string{"_data/menu.yaml", "_data/people.json", "_data/sub/more.toml"}, files)
}

func TestFindFile(t *testing.T) {
	t.Parallel()

	f := testFS()
	require.Equal(t, "_config.yml", f.FindFile("_config"))
	require.Equal(t, "", f.FindFile("_missing"))
	require.True(t, f.Exists("/_posts/a.md"))
	require.False(t, f.Exists("_posts"))
}
