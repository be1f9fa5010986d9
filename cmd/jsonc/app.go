package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/bbluecircles/jsoncompressor/config"
	"github.com/bbluecircles/jsoncompressor/format"
)

// errTerminalOutput is returned when binary output would go to a terminal.
var errTerminalOutput = errors.New("refusing to write compressed data to a terminal, use --output or --force")

// app holds state shared by all subcommands.
type app struct {
	cfgFile string
	quiet   bool
	noColor bool

	cfg    *config.Config
	logger *slog.Logger
	status io.Writer
}

func (a *app) init(stderr io.Writer) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	logger, err := cfg.NewLogger(stderr)
	if err != nil {
		return err
	}

	if a.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	a.cfg = cfg
	a.logger = logger
	a.status = stderr

	return nil
}

// compression resolves the codec from the flag value, falling back to config.
func (a *app) compression(flag string) (format.CompressionType, error) {
	name := flag
	if name == "" {
		name = a.cfg.Engine.Compression
	}

	return format.ParseCompressionType(name)
}

func (a *app) success(msg string, args ...any) {
	if a.quiet {
		return
	}
	color.New(color.FgGreen).Fprintf(a.status, msg+"\n", args...)
}

func (a *app) warn(msg string, args ...any) {
	if a.quiet {
		return
	}
	color.New(color.FgYellow).Fprintf(a.status, msg+"\n", args...)
}

// openInput returns a reader for path, where "" and "-" mean stdin.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	return f, nil
}

// openOutput returns a writer for path, where "" means stdout.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
