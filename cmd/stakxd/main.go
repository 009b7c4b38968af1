package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"

	"github.com/gopatchy/stakx"
	"github.com/gopatchy/stakx/pkg/log"
	"github.com/gopatchy/stakx/pkg/version"
)

type options struct {
	PreserveCase  bool `long:"preserve-case" description:"do not lowercase permalinks"`
	IncludeDrafts bool `short:"d" long:"drafts" description:"include documents marked draft"`
	Verbose       bool `short:"v" long:"verbose" description:"enable verbose logging"`

	Positional struct {
		SiteDir1 flags.Filename `positional-arg-name:"siteDir1" required:"true" description:"first site root"`
		SiteDir2 flags.Filename `positional-arg-name:"siteDir2" required:"true" description:"second site root"`
	} `positional-args:"yes"`
}

func main() {
	opts := &options{}

	fp := flags.NewParser(opts, flags.Default)
	fp.LongDescription = `
stakxd compiles two sites and prints a unified diff of their routes and
redirects. It exits 1 when they differ.`

	if version.Requested(false) {
		err := version.Write(os.Stdout, "stakxd")
		if err != nil {
			fatal(err)
		}

		os.Exit(0)
	}

	_, err := fp.Parse()
	if err != nil {
		os.Exit(1)
	}

	if opts.Verbose {
		log.Debug = true
	}

	res, err := stakx.CompareRoutes(context.Background(), os.DirFS("/"),
		absolute(string(opts.Positional.SiteDir1)),
		absolute(string(opts.Positional.SiteDir2)),
		stakx.Options{
			PreserveCase:  opts.PreserveCase,
			IncludeDrafts: opts.IncludeDrafts,
		})
	if err != nil {
		fatal(err)
	}

	if res.Diff == "" {
		return
	}

	fmt.Print(res.Diff)
	os.Exit(1)
}

func absolute(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		fatal(err)
	}

	return abs
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(2)
}
