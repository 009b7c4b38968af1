// Package route maps URL routes to the documents that own them.
package route

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gopatchy/stakx/internal/frontmatter"
	"github.com/gopatchy/stakx/internal/permalink"
	"github.com/gopatchy/stakx/pkg/errors"
)

// Kind is the page view type that registered a route.
type Kind int

const (
	Static Kind = iota
	Dynamic
	Repeater
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case Repeater:
		return "repeater"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entry is one registered route.
type Entry[T comparable] struct {
	Route string
	Kind  Kind
	Owner T
}

// Redirect is a route that forwards to another.
type Redirect struct {
	From string
	To   string
}

// Table is safe for concurrent use. Routes keep their first registration
// order even when a later registration replaces the owner.
type Table[T comparable] struct {
	mu        sync.Mutex
	strict    bool
	opts      permalink.Options
	order     []string
	entries   map[string]*Entry[T]
	redirects []Redirect
}

// New returns an empty table. In strict mode a route claimed by a second
// owner fails with ErrRouteCollision; otherwise the last owner wins. Route
// patterns are sanitized with opts.
func New[T comparable](strict bool, opts permalink.Options) *Table[T] {
	return &Table[T]{
		strict:  strict,
		opts:    opts,
		entries: map[string]*Entry[T]{},
	}
}

// Pattern converts a raw permalink containing variable references into a
// sanitized route pattern: %name and %{a.b} become {name} and {a.b}, and the
// literal text is cleaned the same way built permalinks are.
func Pattern(raw string, opts permalink.Options) string {
	names := []string{}

	raw = frontmatter.ReplaceRefs(raw, func(name string) string {
		names = append(names, name)
		return placeholder(len(names) - 1)
	})

	ret := permalink.Clean(raw, opts)

	for i, name := range names {
		ret = strings.ReplaceAll(ret, placeholder(i), "{"+name+"}")
	}

	return ret
}

// placeholder survives sanitization unchanged.
func placeholder(i int) string {
	return fmt.Sprintf("zzref%dzz", i)
}

// Register claims a route for owner. Static routes are used as given;
// dynamic and repeater routes are converted with Pattern first. It returns
// the route key and whether an earlier owner was replaced.
func (t *Table[T]) Register(kind Kind, permalinkOrPattern string, owner T) (string, bool, error) {
	key := permalinkOrPattern
	if kind != Static {
		key = Pattern(permalinkOrPattern, t.opts)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	prev, found := t.entries[key]
	if !found {
		t.order = append(t.order, key)
		t.entries[key] = &Entry[T]{Route: key, Kind: kind, Owner: owner}

		return key, false, nil
	}

	if prev.Owner == owner {
		return key, false, nil
	}

	if t.strict {
		return key, false, fmt.Errorf("%s: %w", key, errors.ErrRouteCollision)
	}

	prev.Kind = kind
	prev.Owner = owner

	return key, true, nil
}

// AddRedirect records that from forwards to to.
func (t *Table[T]) AddRedirect(from, to string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.redirects = append(t.redirects, Redirect{From: from, To: to})
}

// Lookup returns the owner of a route.
func (t *Table[T]) Lookup(route string) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, found := t.entries[route]
	if !found {
		var zero T
		return zero, false
	}

	return e.Owner, true
}

// Routes returns every registered route in registration order.
func (t *Table[T]) Routes() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]string{}, t.order...)
}

// Entries returns copies of every entry in registration order.
func (t *Table[T]) Entries() []Entry[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	ret := make([]Entry[T], 0, len(t.order))
	for _, key := range t.order {
		ret = append(ret, *t.entries[key])
	}

	return ret
}

// RoutesOf returns the routes owned by owner.
func (t *Table[T]) RoutesOf(owner T) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ret := []string{}

	for _, key := range t.order {
		if t.entries[key].Owner == owner {
			ret = append(ret, key)
		}
	}

	return ret
}

// Redirects returns the recorded redirects in order.
func (t *Table[T]) Redirects() []Redirect {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]Redirect{}, t.redirects...)
}

// Len returns the number of routes.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.order)
}
