package trendicon

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four arcs approximate a circle.
const kappa = 0.5522847498

// coverageThreshold is the rasterized coverage at which a pixel counts as painted.
// Icons are drawn with hard edges so every pixel is either opaque or transparent.
const coverageThreshold = 0x80

// canvas is a square drawing surface that paints hard-edged shapes.
type canvas struct {
	img  *image.NRGBA
	size int
}

func newCanvas(size int) *canvas {
	return &canvas{
		img:  image.NewNRGBA(image.Rect(0, 0, size, size)),
		size: size,
	}
}

func (c *canvas) fillCircle(center Point, radius float64, col color.NRGBA) {
	if radius <= 0 {
		return
	}
	c.paint(col, func(z *vector.Rasterizer) {
		cx, cy, r := float32(center.X), float32(center.Y), float32(radius)
		k := r * kappa
		z.MoveTo(cx+r, cy)
		z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
		z.ClosePath()
	})
}

// strokeSegment paints the segment from a to b as a band of the given width without caps.
func (c *canvas) strokeSegment(a, b Point, width float64, col color.NRGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 || width <= 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	c.paint(col, func(z *vector.Rasterizer) {
		z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
		z.LineTo(float32(b.X+nx), float32(b.Y+ny))
		z.LineTo(float32(b.X-nx), float32(b.Y-ny))
		z.LineTo(float32(a.X-nx), float32(a.Y-ny))
		z.ClosePath()
	})
}

// paint rasterizes the path built by fn into a binary mask and composites col through it.
func (c *canvas) paint(col color.NRGBA, fn func(z *vector.Rasterizer)) {
	z := vector.NewRasterizer(c.size, c.size)
	fn(z)
	mask := image.NewAlpha(image.Rect(0, 0, c.size, c.size))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	for i, a := range mask.Pix {
		if a >= coverageThreshold {
			mask.Pix[i] = 0xff
		} else {
			mask.Pix[i] = 0
		}
	}
	xdraw.DrawMask(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, mask, image.Point{}, xdraw.Over)
}
