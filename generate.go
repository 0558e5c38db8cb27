package trendicon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/k1LoW/errors"
)

type Icon struct {
	Size int
	Path string
}

// Icons returns the icon set written to dir, smallest first.
func Icons(dir string) []Icon {
	icons := make([]Icon, 0, len(Sizes))
	for _, size := range Sizes {
		icons = append(icons, Icon{
			Size: size,
			Path: filepath.Join(dir, fmt.Sprintf("icon%d.png", size)),
		})
	}
	return icons
}

// Generate writes the whole icon set to the output directory, creating it if needed.
// It stops at the first failure and leaves icons already written in place.
func (r *Renderer) Generate(ctx context.Context) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", r.outDir, err)
	}
	r.logger.DebugContext(ctx, "created output directory", "dir", r.outDir)
	for _, icon := range Icons(r.outDir) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.RenderIcon(ctx, icon.Size, icon.Path); err != nil {
			return err
		}
	}
	r.logger.InfoContext(ctx, "generate completed", "dir", r.outDir, "count", len(Sizes))
	if _, err := fmt.Fprintln(r.stdout, "All icons created successfully!"); err != nil {
		return err
	}
	return nil
}
