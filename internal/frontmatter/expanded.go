package frontmatter

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ExpandedValue is one concrete result of value expansion: the evaluated
// string and the iterator values that produced it.
type ExpandedValue struct {
	Evaluated string
	Iterators *orderedmap.OrderedMap[string, string]
}

// NewExpandedValue returns an ExpandedValue with no iterators.
func NewExpandedValue(evaluated string) *ExpandedValue {
	return &ExpandedValue{
		Evaluated: evaluated,
		Iterators: orderedmap.New[string, string](),
	}
}

// with returns a copy of v carrying the additional iterator assignment.
func (v *ExpandedValue) with(evaluated, name, value string) *ExpandedValue {
	v2 := &ExpandedValue{
		Evaluated: evaluated,
		Iterators: orderedmap.New[string, string](),
	}

	for pair := v.Iterators.Oldest(); pair != nil; pair = pair.Next() {
		v2.Iterators.Set(pair.Key, pair.Value)
	}

	v2.Iterators.Set(name, value)

	return v2
}

// Equal reports whether both values have the same evaluated string and the
// same iterator assignments in the same order.
func (v *ExpandedValue) Equal(o *ExpandedValue) bool {
	if v == nil || o == nil {
		return v == o
	}

	if v.Evaluated != o.Evaluated || v.Iterators.Len() != o.Iterators.Len() {
		return false
	}

	a, b := v.Iterators.Oldest(), o.Iterators.Oldest()
	for a != nil && b != nil {
		if a.Key != b.Key || a.Value != b.Value {
			return false
		}
		a, b = a.Next(), b.Next()
	}

	return true
}

// IteratorMap returns the iterator assignments as a plain map.
func (v *ExpandedValue) IteratorMap() map[string]string {
	ret := make(map[string]string, v.Iterators.Len())
	for pair := v.Iterators.Oldest(); pair != nil; pair = pair.Next() {
		ret[pair.Key] = pair.Value
	}
	return ret
}

func (v *ExpandedValue) String() string {
	return v.Evaluated
}

// Expansion is the evaluated value of an expandable field once any of its
// candidates expanded. Index 0 holds the primary branches; later indexes
// hold alternate (redirect) branches in the same iterator order.
type Expansion [][]*ExpandedValue

// Primary returns the branches of the first candidate.
func (x Expansion) Primary() []*ExpandedValue {
	if len(x) == 0 {
		return nil
	}
	return x[0]
}

// Alternates returns the same-index branch of every alternate candidate that
// has one.
func (x Expansion) Alternates(i int) []*ExpandedValue {
	ret := []*ExpandedValue{}

	for _, set := range x[min(1, len(x)):] {
		if i < len(set) {
			ret = append(ret, set[i])
		}
	}

	return ret
}
