package document

import (
	"bytes"
	"html/template"

	"github.com/gopatchy/stakx/internal/frontmatter"
)

// RedirectTemplate renders the body of a redirect document.
var RedirectTemplate = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Redirecting&hellip;</title>
<link rel="canonical" href="{{.To}}">
<meta http-equiv="refresh" content="0; url={{.To}}">
<meta name="robots" content="noindex">
</head>
<body>
<h1>Redirecting&hellip;</h1>
<a href="{{.To}}">Click here if you are not redirected.</a>
</body>
</html>
`))

// NewRedirect builds an in-memory document served at from that forwards to
// to. It has no backing file.
func NewRedirect(from, to string) (*Document, error) {
	buf := &bytes.Buffer{}

	err := RedirectTemplate.Execute(buf, struct{ From, To string }{from, to})
	if err != nil {
		return nil, err
	}

	fm := frontmatter.NewTree()
	fm.Set("permalink", from)
	fm.Set("redirect_to", to)

	doc := New(from, fm, buf.Bytes())
	doc.evaluated = fm

	return doc, nil
}
