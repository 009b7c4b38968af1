package file_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/gopatchy/stakx/internal/file"
	"github.com/gopatchy/stakx/internal/frontmatter"
	"github.com/gopatchy/stakx/internal/fsys"
	"github.com/gopatchy/stakx/pkg/errors"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	f := fsys.New(fstest.MapFS{
		"_posts/a.md":   {Data: []byte("---\ntitle: A\n---\nbody\n")},
		"_posts/bad.md": {Data: []byte("---\ntitle: A\n")},
	})

	doc, err := file.Load(f, "_posts/a.md")
	require.NoError(t, err)
	require.Equal(t, "_posts/a.md", doc.RelativePath)
	require.Equal(t, []string{"title"}, frontmatter.Keys(doc.FrontMatter))
	require.Equal(t, "body\n", string(doc.Body))

	_, err = file.Load(f, "_posts/bad.md")
	require.ErrorIs(t, err, errors.ErrMissingClosingDelimiter)

	var fe *errors.FileError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "_posts/bad.md", fe.Path)

	_, err = file.Load(f, "_posts/missing.md")
	require.Error(t, err)
	require.ErrorAs(t, err, &fe)
}

func TestLoadData(t *testing.T) {
	t.Parallel()

	f := fsys.New(fstest.MapFS{
		"_data/menu.json": {Data: []byte(`{"items": ["a", "b"], "count": 2}`)},
		"_data/site.toml": {Data: []byte("name = \"x\"\n")},
		"_data/bad.json":  {Data: []byte(`{`)},
		"_data/note.txt":  {Data: []byte("x")},
	})

	data, err := file.LoadData(f, "_data/menu.json")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"items": []any{"a", "b"}, "count": 2}, data)

	data, err = file.LoadData(f, "_data/site.toml")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"name": "x"}, data)

	_, err = file.LoadData(f, "_data/bad.json")
	require.ErrorIs(t, err, errors.ErrDecode)

	_, err = file.LoadData(f, "_data/note.txt")
	require.ErrorIs(t, err, errors.ErrUnknownFormat)
}
