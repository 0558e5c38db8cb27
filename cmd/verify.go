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
	"fmt"

	"github.com/fatih/color"
	"github.com/k1LoW/trendicon"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "verify that generated icons are up to date",
	Long:  `verify that generated icons are up to date.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, closer, err := newRenderer(cmd)
		if err != nil {
			return err
		}
		defer func() {
			_ = closer()
		}()
		results, err := r.Verify(cmd.Context())
		if err != nil {
			return err
		}
		green := color.New(color.FgGreen)
		yellow := color.New(color.FgYellow)
		red := color.New(color.FgRed)
		out := cmd.OutOrStdout()
		failed := 0
		for _, res := range results {
			switch res.Status {
			case trendicon.VerifyStatusOK:
				_, _ = green.Fprintf(out, "✓ %s\n", res.Icon.Path)
			case trendicon.VerifyStatusStale:
				failed++
				_, _ = yellow.Fprintf(out, "✗ %s (stale)\n", res.Icon.Path)
			case trendicon.VerifyStatusMissing:
				failed++
				_, _ = red.Fprintf(out, "✗ %s (missing)\n", res.Icon.Path)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d icons are not up to date. Run `trendicon` to regenerate them", failed, len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
