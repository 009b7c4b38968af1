package frontmatter

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cast"

	"github.com/gopatchy/stakx/internal/utils"
	"github.com/gopatchy/stakx/pkg/errors"
)

// ExpandableFields are the keys whose values may expand into many branches.
var ExpandableFields = []string{"permalink"}

// Options controls a front matter evaluation.
type Options struct {
	// Location is the local time zone for date derivation. nil means time.Local.
	Location *time.Location

	// ExpandableFields overrides the package default when non-nil.
	ExpandableFields []string
}

// Evaluator evaluates a single front matter tree. It is not safe for
// concurrent use; create one per document evaluation.
type Evaluator struct {
	opts     Options
	work     *Tree
	resolver *Resolver
	expanded bool
}

// New returns an Evaluator with the given options.
func New(opts Options) *Evaluator {
	if opts.Location == nil {
		opts.Location = time.Local
	}

	if opts.ExpandableFields == nil {
		opts.ExpandableFields = ExpandableFields
	}

	return &Evaluator{
		opts: opts,
	}
}

// Evaluate is shorthand for New(opts).Evaluate(...).
func Evaluate(tree *Tree, special map[string]any, complex map[string]any, opts Options) (*Tree, bool, error) {
	return New(opts).Evaluate(tree, special, complex)
}

// Evaluate returns an evaluated copy of tree and whether any expandable
// field expanded. tree itself is not modified. special keys override
// values of the same name; complex backs %{a.b} references.
func (e *Evaluator) Evaluate(tree *Tree, special map[string]any, complex map[string]any) (*Tree, bool, error) {
	e.work = NewTree()
	e.expanded = false

	if tree != nil {
		e.work = utils.DeepClone(tree).(*Tree)
	}

	for k, v := range utils.SortedMap(special) {
		if v == nil {
			continue
		}
		e.work.Set(k, v)
	}

	normalizeDate(e.work, e.opts.Location)

	e.resolver = NewResolver(e.work, complex)

	err := e.evaluateTree("", e.work)
	if err != nil {
		return nil, false, err
	}

	return e.work, e.expanded, nil
}

// HasExpansion reports whether the last evaluation expanded any field.
func (e *Evaluator) HasExpansion() bool {
	return e.expanded
}

func (e *Evaluator) evaluateTree(prefix string, t *Tree) error {
	for pair := t.Oldest(); pair != nil; pair = pair.Next() {
		key := joinKey(prefix, pair.Key)

		var (
			v   any
			err error
		)

		if slices.Contains(e.opts.ExpandableFields, pair.Key) {
			v, err = e.evaluateExpandableField(key, pair.Value)
		} else {
			v, err = e.evaluateValue(key, pair.Value)
		}

		if err != nil {
			return err
		}

		t.Set(pair.Key, v)
	}

	return nil
}

func (e *Evaluator) evaluateValue(key string, v any) (any, error) {
	switch v2 := v.(type) {
	case *Tree:
		err := e.evaluateTree(key, v2)
		if err != nil {
			return nil, err
		}
		return v2, nil

	case []any:
		ret := make([]any, len(v2))

		for i, elem := range v2 {
			elem2, err := e.evaluateValue(fmt.Sprintf("%s.%d", key, i), elem)
			if err != nil {
				return nil, err
			}

			ret[i] = elem2
		}

		return ret, nil

	case string:
		return e.evaluateBasicType(key, v2, false)

	case time.Time:
		return epoch(v2.In(e.opts.Location)), nil

	default:
		return v, nil
	}
}

// evaluateBasicType substitutes every reference in s. With ignoreArrays,
// references to arrays are left in place for expansion.
func (e *Evaluator) evaluateBasicType(key, s string, ignoreArrays bool) (string, error) {
	tpl, err := e.substitute(key, parseTemplate(s), ignoreArrays)
	if err != nil {
		return "", err
	}

	return tpl.String(), nil
}

func (e *Evaluator) substitute(key string, tpl template, ignoreArrays bool) (template, error) {
	for _, name := range tpl.refs() {
		v, err := e.resolver.Resolve(name, key)
		if err != nil {
			return nil, err
		}

		if _, isArray := v.([]any); isArray && ignoreArrays {
			continue
		}

		s, err := stringify(name, key, v)
		if err != nil {
			return nil, err
		}

		tpl = tpl.substitute(name, s)
	}

	return tpl, nil
}

// evaluateExpandableField returns the field unchanged in shape (string or
// list of strings) when no candidate references an array, and an
// [Expansion] otherwise.
func (e *Evaluator) evaluateExpandableField(key string, raw any) (any, error) {
	candidates, single, err := candidateStatements(key, raw)
	if err != nil {
		return nil, err
	}

	if candidates == nil {
		return raw, nil
	}

	sets := Expansion{}
	plain := []any{}
	expanded := false

	for _, stmt := range candidates {
		tpl, err := e.substitute(key, parseTemplate(stmt), true)
		if err != nil {
			return nil, err
		}

		names := tpl.refs()
		if len(names) == 0 {
			sets = append(sets, []*ExpandedValue{NewExpandedValue(tpl.String())})
			plain = append(plain, tpl.String())
			continue
		}

		branches, err := e.expand(key, tpl, names)
		if err != nil {
			return nil, err
		}

		expanded = true
		sets = append(sets, branches)
	}

	if !expanded {
		if single {
			return plain[0], nil
		}
		return plain, nil
	}

	e.expanded = true

	return sets, nil
}

type branch struct {
	tpl   template
	value *ExpandedValue
}

// expand takes the cross product of the named array variables. Existing
// branches form the outer loop and the new variable's values the inner
// loop, so the first variable changes slowest.
func (e *Evaluator) expand(key string, tpl template, names []string) ([]*ExpandedValue, error) {
	frontier := []branch{{tpl: tpl, value: NewExpandedValue(tpl.String())}}

	for _, name := range names {
		values, _ := e.resolver.Lookup(name).([]any)

		texts := make([]string, len(values))

		for i, v := range values {
			switch v.(type) {
			case []any, *Tree, map[string]any:
				return nil, &errors.UnsupportedExpansionError{
					Name: name,
					Key:  key,
				}
			}

			s, err := stringify(name, key, v)
			if err != nil {
				return nil, err
			}

			texts[i] = s
		}

		next := []branch{}

		for _, b := range frontier {
			for _, s := range texts {
				tpl2 := b.tpl.substitute(name, s)
				next = append(next, branch{
					tpl:   tpl2,
					value: b.value.with(tpl2.String(), name, s),
				})
			}
		}

		frontier = next
	}

	ret := make([]*ExpandedValue, len(frontier))
	for i, b := range frontier {
		ret[i] = b.value
	}

	return ret, nil
}

// candidateStatements normalizes an expandable field to its candidate
// strings. candidates is nil for a null field.
func candidateStatements(key string, raw any) ([]string, bool, error) {
	switch v := raw.(type) {
	case nil:
		return nil, true, nil

	case string:
		return []string{v}, true, nil

	case []any:
		ret := make([]string, 0, len(v))

		for i, elem := range v {
			s, err := stringify(fmt.Sprintf("%s.%d", key, i), key, elem)
			if err != nil {
				return nil, false, err
			}

			ret = append(ret, s)
		}

		return ret, false, nil

	default:
		s, err := stringify(key, key, v)
		if err != nil {
			return nil, false, err
		}

		return []string{s}, true, nil
	}
}

// stringify converts a scalar to its substitution text.
func stringify(name, key string, v any) (string, error) {
	switch v2 := v.(type) {
	case string:
		return v2, nil

	case time.Time:
		return epoch(v2), nil

	case bool:
		return "", unsupportedType(name, key, "boolean")

	case []any:
		return "", unsupportedType(name, key, "array")

	case *Tree, map[string]any:
		return "", unsupportedType(name, key, "mapping")
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return "", unsupportedType(name, key, fmt.Sprintf("%T", v))
	}

	return s, nil
}

func unsupportedType(name, key, typ string) error {
	return &errors.UnsupportedVariableTypeError{
		Name: name,
		Key:  key,
		Type: typ,
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}
