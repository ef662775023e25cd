package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ecometl/internal/config"
	"ecometl/internal/probe"
)

// main is the entrypoint for the feed probing CLI. It parses one raw feed
// (CSV or JSON, local file or URL) and prints a per-column profile: fill
// rate, null-sentinel count, guessed type, and sample values.
//
// The output is meant to inform schema alias and date-layout decisions
// before pointing cmd/ecometl at a new feed.
func main() {
	var (
		flagPath = flag.String(
			"path",
			"",
			"path or URL of the raw feed",
		)
		flagKind = flag.String(
			"kind",
			"file",
			"source kind: file or http",
		)
		flagFormat = flag.String(
			"format",
			"csv",
			"feed format: csv or json",
		)
		flagJSON = flag.Bool(
			"json",
			false,
			"emit the profile as JSON instead of a table",
		)
		flagTimeout = flag.Duration(
			"timeout",
			30*time.Second,
			"overall probe timeout",
		)
	)
	flag.Parse()

	if *flagPath == "" {
		fmt.Fprintln(os.Stderr, "usage: feedprobe -path <file-or-url> [-format csv|json] [-kind file|http] [-json]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *flagTimeout)
	defer cancel()

	p, err := probe.Feed(ctx, config.Source{
		Kind:   *flagKind,
		Format: *flagFormat,
		Path:   *flagPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "feedprobe: %v\n", err)
		os.Exit(1)
	}

	if *flagJSON {
		err = p.WriteJSON(os.Stdout)
	} else {
		err = p.WriteTable(os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "feedprobe: %v\n", err)
		os.Exit(1)
	}
}
