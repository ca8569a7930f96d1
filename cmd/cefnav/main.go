// Package main is the entry point for cefnav, a terminal viewer for
// navigating HTML content with atomic inline nodes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/cefnav/internal/app"
	"github.com/dshills/cefnav/internal/renderer"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app.Options
	logFile     string
	listKeymaps bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		opts.LogOutput = f
	}

	application, err := app.New(opts.Options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if opts.listKeymaps {
		printKeymaps(os.Stdout, application)
		return 0
	}

	term, err := renderer.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetTerminal(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set terminal: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, app.ErrQuit) || errors.Is(err, context.Canceled) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printKeymaps(w io.Writer, a *app.Application) {
	reg := a.Keymaps()
	fmt.Fprintf(w, "platform: %s\n", a.Platform())
	for _, name := range reg.Names() {
		pk := reg.Get(name)
		if pk == nil {
			continue
		}
		fmt.Fprintf(w, "\n%s", name)
		if pk.Source != "" {
			fmt.Fprintf(w, " (%s)", pk.Source)
		}
		fmt.Fprintln(w)
		for _, b := range pk.Bindings {
			fmt.Fprintf(w, "  %-20s %s", b.Keys, b.Action)
			if len(b.Args) > 0 {
				fmt.Fprintf(w, " %v", b.Args)
			}
			fmt.Fprintln(w)
		}
	}
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Platform, "platform", "", "Key binding platform (auto, macos, linux, windows)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Append log output to this file")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the file when it changes")
	flag.BoolVar(&opts.listKeymaps, "keymaps", false, "List the active key binding tables and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cefnav - caret navigation around non-editable inline content\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cefnav [options] [file.html]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cefnav doc.html                     Navigate a document\n")
		fmt.Fprintf(os.Stderr, "  cefnav -platform macos doc.html     Use macOS key bindings\n")
		fmt.Fprintf(os.Stderr, "  cefnav -watch -log-file nav.log doc.html\n")
		fmt.Fprintf(os.Stderr, "\nQuit with Ctrl+Q, Ctrl+C or Escape.\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("cefnav %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: expected at most one file, got %d\n", flag.NArg())
		os.Exit(1)
	}
	opts.File = flag.Arg(0)

	return opts
}
