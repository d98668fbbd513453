// Rant CLI - inspect, convert and combine Rant values, and manage the
// persistent variable store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/rant/manifest"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("rant")

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	interactive := flag.Bool("i", false, "Start interactive REPL")
	dir := flag.String("C", ".", "Project directory (searched upwards for rant.toml)")
	dbPath := flag.String("db", "", "Variable store path (overrides rant.toml)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rant [options] <command> [args...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		for _, name := range commandNames() {
			fmt.Fprintf(os.Stderr, "  %s\n", commands[name].fn.Signature())
		}
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rant eval '\"ab\"' '*' 3        # ababab\n")
		fmt.Fprintf(os.Stderr, "  rant convert ' TRUE ' boolean   # true\n")
		fmt.Fprintf(os.Stderr, "  rant set colors '(red, blue)'\n")
		fmt.Fprintf(os.Stderr, "  rant help eval\n")
	}
	flag.Parse()

	m, err := manifest.FindAndLoad(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	verbosity := 0
	var logPath *string
	if m != nil {
		verbosity = m.Log.Verbosity
		logPath = m.LogFile()
	}
	if *verbose {
		verbosity += 2
	}
	commonlog.Configure(verbosity, logPath)

	a := newApp(os.Stdout, *dir, m)
	if *dbPath != "" {
		a.storePath = *dbPath
	}
	defer a.close()

	if m != nil {
		log.Infof("using manifest %s/%s", m.Dir, manifest.FileName)
	}

	ctx := context.Background()

	if *interactive || flag.NArg() == 0 {
		if err := a.repl(ctx, os.Stdin); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := a.run(ctx, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
