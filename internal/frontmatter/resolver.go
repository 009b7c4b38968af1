package frontmatter

import (
	"strings"

	"github.com/gopatchy/stakx/pkg/errors"
)

// Resolver looks up variable values. Primitive names are read from the
// front matter being evaluated, so values substituted earlier in the same
// pass are visible. Dotted names are read from the complex scope.
type Resolver struct {
	scope   *Tree
	complex map[string]any
}

// NewResolver returns a Resolver over the given scopes. Either may be nil.
func NewResolver(scope *Tree, complex map[string]any) *Resolver {
	return &Resolver{
		scope:   scope,
		complex: complex,
	}
}

// IsComplex reports whether name is a dotted path into the complex scope.
func IsComplex(name string) bool {
	return strings.Contains(name, ".")
}

// Lookup returns the value of name, or nil when it is not defined.
func (r *Resolver) Lookup(name string) any {
	if IsComplex(name) {
		return lookupPath(r.complex, strings.Split(name, "."))
	}

	if r.scope == nil {
		return nil
	}

	v, _ := r.scope.Get(name)

	return v
}

// Resolve is Lookup that fails for undefined names. key is the front matter
// path being evaluated and is only used in the error.
func (r *Resolver) Resolve(name, key string) (any, error) {
	v := r.Lookup(name)
	if v == nil {
		return nil, &errors.UndefinedVariableError{
			Name: name,
			Key:  key,
		}
	}

	return v, nil
}

func lookupPath(data any, parts []string) any {
	if len(parts) == 0 {
		return data
	}

	switch obj := data.(type) {
	case map[string]any:
		return lookupPath(obj[parts[0]], parts[1:])

	case *Tree:
		v, _ := obj.Get(parts[0])
		return lookupPath(v, parts[1:])

	case map[string]string:
		v, found := obj[parts[0]]
		if !found || len(parts) > 1 {
			return nil
		}
		return v

	default:
		return nil
	}
}
