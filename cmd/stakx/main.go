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
	ConfigPath     string          `short:"c" long:"config" description:"site configuration file, relative to the site root (default: _config.<ext>)"`
	OutputDir      *flags.Filename `short:"o" long:"output" description:"output directory (default: configured target inside the site root)"`
	ManifestPath   *flags.Filename `short:"m" long:"manifest" description:"write a build manifest to this file ('-' for stdout)"`
	ManifestFormat *string         `short:"f" long:"format" description:"manifest format" choice:"json" choice:"json-pretty" choice:"properties" choice:"toml" choice:"yaml"`
	PreserveCase   bool            `long:"preserve-case" description:"do not lowercase permalinks"`
	IncludeDrafts  bool            `short:"d" long:"drafts" description:"include documents marked draft"`
	DryRun         bool            `short:"n" long:"dry-run" description:"compile without writing page files"`
	Verbose        bool            `short:"v" long:"verbose" description:"enable verbose logging"`
	Version        bool            `short:"V" long:"version" description:"print version and exit"`

	Positional struct {
		SiteDir flags.Filename `positional-arg-name:"siteDir" description:"site root directory (default: .)"`
	} `positional-args:"yes"`
}

func main() {
	opts := &options{}

	fp := flags.NewParser(opts, flags.Default)
	fp.LongDescription = `
stakx compiles a static site: it evaluates front matter, expands repeater and
dynamic pages into concrete permalinks, and writes one file per page.

Related tools:
* stakxd`

	_, err := fp.Parse()
	if err != nil {
		os.Exit(1)
	}

	if version.Requested(opts.Version) {
		err = version.Write(os.Stdout, "stakx")
		if err != nil {
			fatal(err)
		}

		os.Exit(0)
	}

	if opts.Verbose {
		log.Debug = true
	}

	siteDir := string(opts.Positional.SiteDir)
	if siteDir == "" {
		siteDir = "."
	}

	root, err := os.OpenRoot(siteDir)
	if err != nil {
		fatal(err)
	}
	defer root.Close()

	site, err := stakx.Compile(context.Background(), root.FS(), stakx.Options{
		ConfigPath:    opts.ConfigPath,
		PreserveCase:  opts.PreserveCase,
		IncludeDrafts: opts.IncludeDrafts,
	})
	if err != nil {
		fatal(err)
	}

	if !opts.DryRun {
		outDir := filepath.Join(siteDir, site.Config.Target)
		if opts.OutputDir != nil {
			outDir = string(*opts.OutputDir)
		}

		err = site.WriteFiles(outDir)
		if err != nil {
			fatal(err)
		}

		log.Info("site compiled", log.Path(outDir), log.Count(len(site.Pages)))
	}

	if opts.ManifestPath != nil {
		err = writeManifest(site, string(*opts.ManifestPath), opts.ManifestFormat)
		if err != nil {
			fatal(err)
		}
	}
}

func writeManifest(site *stakx.Site, path string, format *string) error {
	name := ""
	if format != nil {
		name = *format
	}

	enc, err := site.FormatManifest(name, path)
	if err != nil {
		return err
	}

	if path == "-" {
		_, err = os.Stdout.Write(enc)
		return err
	}

	return os.WriteFile(path, enc, 0o644)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
