package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/k1LoW/errors"
	"github.com/mattn/go-colorable"
	slogmulti "github.com/samber/slog-multi"
)

const logFileName = "trendicon.log"

type Options struct {
	// Verbose enables debug level output on stderr.
	Verbose bool
	// Stderr overrides the console writer. Defaults to a colorable stderr.
	Stderr io.Writer
	// StateDir, if set, receives a JSON log file.
	StateDir string
	// Tail, if set, receives every record as a JSON line.
	Tail io.Writer
}

// New builds a logger that fans out to the console and optionally to a log file.
// The returned close function releases the log file.
func New(opts Options) (_ *slog.Logger, _ func() error, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	stderr := opts.Stderr
	if stderr == nil {
		stderr = colorable.NewColorableStderr()
	}
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
	}
	if opts.Tail != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.Tail, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	closer := func() error { return nil }
	if opts.StateDir != "" {
		if err := os.MkdirAll(opts.StateDir, 0o700); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(filepath.Join(opts.StateDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closer = f.Close
	}
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}
