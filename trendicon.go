package trendicon

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/k1LoW/errors"
)

// DefaultOutDir is the directory icons are written to when none is given.
const DefaultOutDir = "icons"

// Sizes are the pixel sizes of the icon set, in generation order.
var Sizes = []int{16, 48, 128}

type Renderer struct {
	outDir string
	stdout io.Writer
	logger *slog.Logger
}

type Option func(*Renderer) error

func WithOutDir(dir string) Option {
	return func(r *Renderer) error {
		if dir == "" {
			return fmt.Errorf("output directory must not be empty")
		}
		r.outDir = dir
		return nil
	}
}

// WithStdout sets the writer confirmation lines are printed to.
func WithStdout(w io.Writer) Option {
	return func(r *Renderer) error {
		r.stdout = w
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) error {
		r.logger = logger
		return nil
	}
}

// New creates a new Renderer.
func New(opts ...Option) (_ *Renderer, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	r := &Renderer{
		outDir: DefaultOutDir,
		stdout: os.Stdout,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// OutDir returns the directory the icon set is written to.
func (r *Renderer) OutDir() string {
	return r.outDir
}
