package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemplateRefs(t *testing.T) {
	t.Parallel()

	for in, want := range map[string][]string{
		"plain text":                 {},
		"%a and %{b.c} and %a again": {"a", "b.c"},
		"%myVar1200":                 {"myVar"},
		`\%skip %keep`:               {"keep"},
		"100%":                       {},
		"%{}":                        {},
		"%{open":                     {},
		"ünï %cödé":                  {"c"},
		"%{title}":                   {"title"},
	} {
		require.Equal(t, want, parseTemplate(in).refs(), in)
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "plain", "%a-%{b.c}", `\%x`, "ünï %cödé", "50%"} {
		require.Equal(t, in, parseTemplate(in).String())
	}
}

func TestTemplateSubstituteDoesNotRescan(t *testing.T) {
	t.Parallel()

	tpl := parseTemplate("%a/%b").substitute("a", "%b")
	require.Equal(t, "%b/%b", tpl.String())
	require.Equal(t, []string{"b"}, tpl.refs())

	tpl = tpl.substitute("b", "x")
	require.Equal(t, "%b/x", tpl.String())
}

func TestReplaceRefs(t *testing.T) {
	t.Parallel()

	got := ReplaceRefs(`/%a/%{b.c}/\%d/%a%e`, func(name string) string {
		return "{" + name + "}"
	})

	require.Equal(t, `/{a}/{b.c}/\%d/{a}{e}`, got)
}
