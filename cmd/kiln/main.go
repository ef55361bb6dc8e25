// Package main is the entry point for the kiln editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kiln-editor/kiln/internal/config"
	"github.com/kiln-editor/kiln/internal/editor"
	"github.com/kiln-editor/kiln/internal/render"
	"github.com/kiln-editor/kiln/internal/term"
)

// version can be overridden at build time with -ldflags.
var version = render.Version

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Kiln - a minimal terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: kiln [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("Kiln %s\n", version)
		return 0
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fd := int(os.Stdin.Fd())
	state, err := term.EnableRawMode(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to enter raw mode: %v\n", err)
		return 1
	}
	defer func() {
		if err := state.Restore(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to restore terminal: %v\n", err)
		}
	}()

	rows, cols, err := term.WindowSize(fd, os.Stdin, os.Stdout)
	if err != nil {
		fatalCleanup(os.Stdout)
		fmt.Fprintf(os.Stderr, "Error: failed to determine terminal size: %v\n", err)
		return 1
	}

	ed := editor.New(editor.Options{
		Rows:   rows,
		Cols:   cols,
		In:     os.Stdin,
		Out:    os.Stdout,
		Config: cfg,
	})

	if flag.NArg() > 0 {
		if err := ed.Open(flag.Arg(0)); err != nil {
			fatalCleanup(os.Stdout)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if err := ed.Run(); err != nil {
		fatalCleanup(os.Stdout)
		if errors.Is(err, editor.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig loads the explicit config path, or falls back to the user
// config directory lookup.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// fatalCleanup leaves the terminal in a sane state before an error is
// printed: clear the screen and reposition the cursor.
func fatalCleanup(out io.Writer) {
	io.WriteString(out, render.ClearScreen)
}
