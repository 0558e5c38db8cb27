/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/tail"
	"github.com/k1LoW/trendicon"
	"github.com/k1LoW/trendicon/config"
	"github.com/k1LoW/trendicon/logger"
	"github.com/k1LoW/trendicon/version"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
)

var (
	profile string
	outDir  string
	verbose bool
)

// tb keeps the latest log lines for the error dump.
var tb = tail.New(1000)

var rootCmd = &cobra.Command{
	Use:           "trendicon",
	Short:         "trendicon draws the trend line icon set for the browser extension",
	Long:          `trendicon draws the trend line icon set (16px, 48px and 128px PNG) for the browser extension.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       fmt.Sprintf("%s (rev:%s)", version.Version, version.Revision),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, closer, err := newRenderer(cmd)
		if err != nil {
			return err
		}
		defer func() {
			_ = closer()
		}()
		return r.Generate(cmd.Context())
	},
}

type errorData struct {
	LatestLogs  []any     `json:"latest_logs"`
	StackTraces any       `json:"stack_traces"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
	Revision    string    `json:"revision"`
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(colorable.NewColorableStderr(), err)
		// Write stack trace log to state directory
		d := newErrorData(err, tb.Lines())
		if err := writeErrorDump(config.StateHomePath(), d); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	_, _ = color.New(color.FgRed).Fprintf(w, "Error: %v\n", err)
}

func newErrorData(err error, lines []string) *errorData {
	var latestLogs []any
	for _, line := range lines {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			latestLogs = append(latestLogs, line)
		} else {
			latestLogs = append(latestLogs, m)
		}
	}
	return &errorData{
		LatestLogs:  latestLogs,
		StackTraces: errors.StackTraces(err),
		CreatedAt:   time.Now(),
		Version:     version.Version,
		Revision:    version.Revision,
	}
}

func writeErrorDump(dir string, d *errorData) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state directory %s: %w", dir, err)
	}
	dumpPath := filepath.Join(dir, "error.json")
	if err := os.WriteFile(dumpPath, b, 0o600); err != nil {
		return fmt.Errorf("failed to write error.json to %s: %w", dumpPath, err)
	}
	return nil
}

// newRenderer builds a Renderer from flags and the config file.
// --out-dir takes precedence over outDir in the config file.
func newRenderer(cmd *cobra.Command) (*trendicon.Renderer, func() error, error) {
	cfg, err := config.Load(profile)
	if err != nil {
		return nil, nil, err
	}
	opts := logger.Options{
		Verbose: verbose,
		Stderr:  stderrFor(cmd),
		Tail:    tb,
	}
	if cfg.LogFileEnabled() {
		opts.StateDir = config.StateHomePath()
	}
	l, closer, err := logger.New(opts)
	if err != nil {
		return nil, nil, err
	}
	dir := trendicon.DefaultOutDir
	if cfg.OutDir != "" {
		dir = cfg.OutDir
	}
	if outDir != "" {
		dir = outDir
	}
	l.Debug("resolved output directory", slog.String("dir", dir), slog.String("profile", profile))
	r, err := trendicon.New(
		trendicon.WithOutDir(dir),
		trendicon.WithStdout(cmd.OutOrStdout()),
		trendicon.WithLogger(l),
	)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return r, closer, nil
}

// stderrFor returns the error writer set on cmd, or nil to let the logger pick a colorable stderr.
func stderrFor(cmd *cobra.Command) io.Writer {
	if w := cmd.ErrOrStderr(); w != os.Stderr {
		return w
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "", "", "profile name")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out-dir", "o", "", fmt.Sprintf("output directory (default %q)", trendicon.DefaultOutDir))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
