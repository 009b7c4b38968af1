package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/gopatchy/stakx/internal/utils"
)

func TestDeepClone(t *testing.T) {
	t.Parallel()

	inner := orderedmap.New[string, any]()
	inner.Set("x", []any{1, map[string]any{"y": "z"}})

	src := orderedmap.New[string, any]()
	src.Set("b", inner)
	src.Set("a", "v")

	dst := utils.DeepClone(src).(*orderedmap.OrderedMap[string, any])

	v, _ := dst.Get("b")
	l, _ := v.(*orderedmap.OrderedMap[string, any]).Get("x")
	l.([]any)[1].(map[string]any)["y"] = "changed"

	l, _ = inner.Get("x")
	require.Equal(t, "z", l.([]any)[1].(map[string]any)["y"])
	require.Equal(t, "b", dst.Oldest().Key)
}

func TestSortedMap(t *testing.T) {
	t.Parallel()

	keys := []string{}
	for k := range utils.SortedMap(map[string]int{"c": 3, "a": 1, "b": 2}) {
		keys = append(keys, k)
	}

	require.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestSetPath(t *testing.T) {
	t.Parallel()

	m := map[string]any{"a": "scalar"}
	utils.SetPath(m, []string{"a", "b", "c"}, 1)
	require.Equal(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}, m)
}

func TestConvert(t *testing.T) {
	t.Parallel()

	require.True(t, utils.ToBool(true))
	require.True(t, utils.ToBool("true"))
	require.False(t, utils.ToBool("nope"))
	require.False(t, utils.ToBool(nil))
	require.Equal(t, "x", utils.ToString("x"))
	require.Equal(t, "", utils.ToString(5))
	require.Equal(t, "file", utils.Basename("_posts/file.md"))
	require.Equal(t, "md", utils.Ext("_posts/file.md"))
}
