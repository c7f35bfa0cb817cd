// Command tib is the CLI entry point: no arguments starts the REPL, one
// positional argument runs a source file, per spec.md §6.
//
// Grounded on MongooseMoo-barn's cmd/barn/main.go: flag-based option
// parsing, log.Fatalf for startup-time fatal errors, and evalExpression's
// parse-then-report pattern (fmt.Fprintf(os.Stderr, ...) + os.Exit(1) on
// failure) reused here for file-mode execution errors.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jaydenmilne/tib/config"
	"github.com/jaydenmilne/tib/context"
	"github.com/jaydenmilne/tib/executor"
	"github.com/jaydenmilne/tib/parser"
	"github.com/jaydenmilne/tib/repl"
)

func main() {
	help := flag.Bool("help", false, "print usage and exit")
	flag.BoolVar(help, "h", false, "print usage and exit")
	rcPath := flag.String("config", defaultConfigPath(), "path to an optional .tibrc.yaml settings file")
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	cfg, err := config.Load(*rcPath)
	if err != nil {
		log.Fatalf("tib: %v", err)
	}

	args := flag.Args()
	switch len(args) {
	case 0:
		runREPL(cfg)
	case 1:
		runFile(args[0], cfg)
	default:
		fmt.Fprintln(os.Stderr, "tib: expected at most one source file argument")
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: tib [-h] [-config path] [program.tib]")
	fmt.Fprintln(os.Stderr, "  with no arguments, starts an interactive REPL")
	flag.PrintDefaults()
}

func defaultConfigPath() string {
	return ".tibrc.yaml"
}

func newContext(cfg config.Config) *context.Context {
	if cfg.Seed != nil {
		return context.NewSeeded(*cfg.Seed)
	}
	return context.New()
}

func runREPL(cfg config.Config) {
	r := repl.New(newContext(cfg), os.Stdout, cfg.PromptOrDefault())
	if err := r.Run(os.Stdin); err != nil {
		log.Fatalf("tib: %v", err)
	}
}

func runFile(path string, cfg config.Config) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tib: %s: %v\n", filepath.Base(path), err)
		os.Exit(1)
	}

	prog, err := parser.ParseProgram(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "tib: %s: %v\n", path, err)
		os.Exit(1)
	}

	var out bytes.Buffer
	ctx := newContext(cfg)
	p := executor.New(prog, ctx, &out)
	runErr := p.Run()
	os.Stdout.Write(out.Bytes())
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "tib: %s: %v\n", path, runErr)
		os.Exit(1)
	}
}
