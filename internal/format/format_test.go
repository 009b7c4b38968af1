package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gopatchy/stakx/pkg/errors"
)

func TestParseYAMLTreeKeepsOrder(t *testing.T) {
	t.Parallel()

	tree, err := ParseYAMLTree([]byte("zeta: 1\nalpha: two\nmid: [a, b]\n"))
	require.NoError(t, err)

	keys := []string{}
	for pair := tree.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	require.Equal(t, []string{"zeta", "alpha", "mid"}, keys)

	v, _ := tree.Get("zeta")
	require.Equal(t, 1, v)

	v, _ = tree.Get("mid")
	require.Equal(t, []any{"a", "b"}, v)
}

func TestParseYAMLTreeTimestamp(t *testing.T) {
	t.Parallel()

	tree, err := ParseYAMLTree([]byte(`
date: 2017-01-05
quoted: "2017-01-05"
local: 2017-01-05 10:30:00
zoned: 2017-01-05T10:30:00-05:00
`))
	require.NoError(t, err)

	v, _ := tree.Get("date")
	require.Equal(t, "2017-01-05", v)

	v, _ = tree.Get("quoted")
	require.Equal(t, "2017-01-05", v)

	v, _ = tree.Get("local")
	require.Equal(t, "2017-01-05 10:30:00", v)

	v, _ = tree.Get("zoned")
	require.IsType(t, time.Time{}, v)
	require.True(t, time.Date(2017, 1, 5, 15, 30, 0, 0, time.UTC).Equal(v.(time.Time)))
}

func TestParseYAMLTreeMergeKey(t *testing.T) {
	t.Parallel()

	tree, err := ParseYAMLTree([]byte("base: &b\n  a: 1\n  b: 2\nchild:\n  <<: *b\n  b: 3\n"))
	require.NoError(t, err)

	child, _ := tree.Get("child")
	m := child.(*OrderedMap)

	a, _ := m.Get("a")
	b, _ := m.Get("b")
	require.Equal(t, 1, a)
	require.Equal(t, 3, b)
}

func TestParseYAMLTreeEmpty(t *testing.T) {
	t.Parallel()

	tree, err := ParseYAMLTree([]byte("  \n"))
	require.NoError(t, err)
	require.Equal(t, 0, tree.Len())
}

func TestParseYAMLTreeNotMapping(t *testing.T) {
	t.Parallel()

	_, err := ParseYAMLTree([]byte("- a\n- b\n"))
	require.ErrorIs(t, err, errors.ErrInvalidFrontMatterStructure)

	_, err = ParseYAMLTree([]byte("just a string\n"))
	require.ErrorIs(t, err, errors.ErrInvalidFrontMatterStructure)
}

func TestGetUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := Get("xml")
	require.ErrorIs(t, err, errors.ErrUnknownFormat)
}

func TestJSONNormalizesNumbers(t *testing.T) {
	t.Parallel()

	f, err := Get("json")
	require.NoError(t, err)

	obj, err := f.Unmarshal([]byte(`{"count": 3, "ratio": 1.5, "tags": ["a"]}`))
	require.NoError(t, err)

	require.Equal(t, map[string]any{
		"count": 3,
		"ratio": 1.5,
		"tags":  []any{"a"},
	}, obj)
}

func TestPropertiesRoundTrip(t *testing.T) {
	t.Parallel()

	f, err := Get("properties")
	require.NoError(t, err)

	enc, err := f.MarshalStream([]any{map[string]any{
		"site": map[string]any{
			"title": "Blog",
		},
		"routes": []any{"/a/", "/b/"},
	}})
	require.NoError(t, err)

	obj, err := f.Unmarshal(enc)
	require.NoError(t, err)

	require.Equal(t, map[string]any{
		"site": map[string]any{
			"title": "Blog",
		},
		"routes": map[string]any{
			"0": "/a/",
			"1": "/b/",
		},
	}, obj)
}

func TestTOMLStream(t *testing.T) {
	t.Parallel()

	f, err := Get("toml")
	require.NoError(t, err)

	docs, err := f.UnmarshalStream([]byte("title = \"one\"\n+++\ntitle = \"two\"\n"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "two", docs[1].(map[string]any)["title"])
}
