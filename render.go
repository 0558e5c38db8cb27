package trendicon

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/k1LoW/errors"
)

// Render draws the trend icon of the given size.
func Render(size int) (_ *image.NRGBA, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size: %d", size)
	}
	g := NewGeometry(size)
	c := newCanvas(size)

	center := g.CircleCenter()
	radius := g.CircleRadius()
	c.fillCircle(center, radius, outlineColor)
	c.fillCircle(center, radius-outlineWidth, fillColor)

	lw := float64(g.LineWidth)
	for i := 0; i < len(g.Vertices)-1; i++ {
		c.strokeSegment(g.Vertices[i], g.Vertices[i+1], lw, trendColor)
	}
	for _, v := range g.Vertices {
		c.fillCircle(v, float64(g.DotRadius), trendColor)
	}
	return c.img, nil
}

func Encode(w io.Writer, img image.Image) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// RenderIcon draws the icon of the given size, writes it to outputPath and prints a confirmation to stdout.
// The directory of outputPath must already exist.
func RenderIcon(size int, outputPath string) error {
	r, err := New()
	if err != nil {
		return err
	}
	return r.RenderIcon(context.Background(), size, outputPath)
}

func (r *Renderer) RenderIcon(ctx context.Context, size int, outputPath string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b, err := renderPNG(size)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, b, 0o644); err != nil {
		return fmt.Errorf("failed to write icon %s: %w", outputPath, err)
	}
	r.logger.DebugContext(ctx, "rendered icon", "size", size, "path", outputPath, "bytes", len(b))
	if _, err := fmt.Fprintf(r.stdout, "Created %s\n", outputPath); err != nil {
		return err
	}
	return nil
}

func renderPNG(size int) ([]byte, error) {
	img, err := Render(size)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
