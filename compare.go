package stakx

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

type CompareResult struct {
	Site1 string
	Site2 string
	Diff  string
}

// CompareRoutes compiles the sites rooted at dir1 and dir2 inside fsys and
// returns a unified diff of their route lists. Diff is "" when they match.
func CompareRoutes(ctx context.Context, fsys fs.FS, dir1, dir2 string, opts Options) (*CompareResult, error) {
	routes1, err := compileRoutes(ctx, fsys, dir1, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", dir1, err)
	}

	routes2, err := compileRoutes(ctx, fsys, dir2, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", dir2, err)
	}

	edits := myers.ComputeEdits(span.URIFromPath(dir1), routes1, routes2)
	unified := fmt.Sprint(gotextdiff.ToUnified(dir1, dir2, routes1, edits))

	return &CompareResult{
		Site1: dir1,
		Site2: dir2,
		Diff:  unified,
	}, nil
}

func compileRoutes(ctx context.Context, fsys fs.FS, dir string, opts Options) (string, error) {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		dir = "."
	}

	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return "", err
	}

	site, err := Compile(ctx, sub, opts)
	if err != nil {
		return "", err
	}

	lines := []string{}
	for _, r := range site.Routes {
		lines = append(lines, r+"\n")
	}

	for _, r := range site.Redirects {
		lines = append(lines, fmt.Sprintf("%s -> %s\n", r.From, r.To))
	}

	return strings.Join(lines, ""), nil
}
