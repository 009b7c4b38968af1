// Package frontmatter evaluates the YAML metadata block of a document.
//
// Evaluation substitutes %name and %{a.b.c} references, normalizes dates
// and expands expandable fields (permalink) into one branch per combination
// of array-valued variables.
package frontmatter

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/gopatchy/stakx/internal/utils"
)

// Tree is a front matter mapping that iterates in insertion order.
type Tree = orderedmap.OrderedMap[string, any]

// NewTree returns an empty Tree.
func NewTree() *Tree {
	return orderedmap.New[string, any]()
}

// TreeFromMap builds a Tree from a plain map, inserting keys in sorted order
// and converting nested maps recursively.
func TreeFromMap(m map[string]any) *Tree {
	t := NewTree()

	for k, v := range utils.SortedMap(m) {
		t.Set(k, fromPlain(v))
	}

	return t
}

func fromPlain(v any) any {
	switch v2 := v.(type) {
	case map[string]any:
		return TreeFromMap(v2)

	case []any:
		ret := make([]any, len(v2))
		for i, e := range v2 {
			ret[i] = fromPlain(e)
		}
		return ret

	default:
		return v
	}
}

// Plain converts evaluated front matter into plain Go maps and slices, ready
// for encoders and template engines that know nothing about ordered maps.
func Plain(v any) any {
	switch v2 := v.(type) {
	case *Tree:
		ret := make(map[string]any, v2.Len())
		for pair := v2.Oldest(); pair != nil; pair = pair.Next() {
			ret[pair.Key] = Plain(pair.Value)
		}
		return ret

	case []any:
		ret := make([]any, len(v2))
		for i, e := range v2 {
			ret[i] = Plain(e)
		}
		return ret

	case Expansion:
		ret := make([]any, len(v2))
		for i, set := range v2 {
			ret[i] = Plain(set)
		}
		return ret

	case []*ExpandedValue:
		ret := make([]any, len(v2))
		for i, e := range v2 {
			ret[i] = Plain(e)
		}
		return ret

	case *ExpandedValue:
		return map[string]any{
			"evaluated": v2.Evaluated,
			"iterators": v2.IteratorMap(),
		}

	case time.Time:
		return v2.Unix()

	default:
		return v
	}
}

// Keys returns the top-level keys of t in insertion order.
func Keys(t *Tree) []string {
	ret := make([]string, 0, t.Len())
	for pair := t.Oldest(); pair != nil; pair = pair.Next() {
		ret = append(ret, pair.Key)
	}
	return ret
}
