package frontmatter

import (
	"strings"

	"golang.org/x/exp/utf8string"
)

// ref is a variable reference as written in a front matter string.
type ref struct {
	name string
	raw  string
}

// segment is either literal text or a reference; ref is nil for text.
type segment struct {
	text string
	ref  *ref
}

// template is a front matter string split into literal text and variable
// references. Substituted references become text and are never rescanned.
type template []segment

// parseTemplate recognizes %name ([a-zA-Z]+) and %{a.b.c} ([a-zA-Z.]+)
// references. A % preceded by a backslash, or not followed by either form,
// stays literal.
func parseTemplate(s string) template {
	us := utf8string.NewString(s)
	n := us.RuneCount()

	tpl := template{}
	start := 0

	for i := 0; i < n; i++ {
		if us.At(i) != '%' || (i > 0 && us.At(i-1) == '\\') {
			continue
		}

		name, end, ok := scanRef(us, i+1)
		if !ok {
			continue
		}

		if start < i {
			tpl = append(tpl, segment{text: us.Slice(start, i)})
		}

		tpl = append(tpl, segment{ref: &ref{name: name, raw: us.Slice(i, end)}})

		start = end
		i = end - 1
	}

	if start < n {
		tpl = append(tpl, segment{text: us.Slice(start, n)})
	}

	return tpl
}

// scanRef reads a reference body starting just after the %. It returns the
// variable name and the rune index following the reference.
func scanRef(us *utf8string.String, i int) (string, int, bool) {
	n := us.RuneCount()

	if i < n && us.At(i) == '{' {
		j := i + 1
		for j < n && (isVarRune(us.At(j)) || us.At(j) == '.') {
			j++
		}

		if j == i+1 || j >= n || us.At(j) != '}' {
			return "", 0, false
		}

		return us.Slice(i+1, j), j + 1, true
	}

	j := i
	for j < n && isVarRune(us.At(j)) {
		j++
	}

	if j == i {
		return "", 0, false
	}

	return us.Slice(i, j), j, true
}

func isVarRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func (t template) String() string {
	var sb strings.Builder

	for _, seg := range t {
		if seg.ref != nil {
			sb.WriteString(seg.ref.raw)
		} else {
			sb.WriteString(seg.text)
		}
	}

	return sb.String()
}

// refs returns the distinct variable names still referenced, in order of
// first reference.
func (t template) refs() []string {
	seen := map[string]bool{}
	ret := []string{}

	for _, seg := range t {
		if seg.ref == nil || seen[seg.ref.name] {
			continue
		}

		seen[seg.ref.name] = true
		ret = append(ret, seg.ref.name)
	}

	return ret
}

// substitute replaces every reference to name with value.
func (t template) substitute(name, value string) template {
	ret := make(template, len(t))

	for i, seg := range t {
		if seg.ref != nil && seg.ref.name == name {
			ret[i] = segment{text: value}
		} else {
			ret[i] = seg
		}
	}

	return ret
}

// ReplaceRefs returns s with every variable reference replaced by the
// result of fn, leaving escaped and malformed references untouched.
func ReplaceRefs(s string, fn func(name string) string) string {
	tpl := parseTemplate(s)

	for _, name := range tpl.refs() {
		tpl = tpl.substitute(name, fn(name))
	}

	return tpl.String()
}
