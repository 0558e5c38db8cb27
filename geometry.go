package trendicon

import "image/color"

var (
	fillColor    = color.NRGBA{R: 41, G: 98, B: 255, A: 255}
	outlineColor = color.NRGBA{R: 30, G: 70, B: 200, A: 255}
	trendColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

const outlineWidth = 2

// trendPercents are the trend line vertices as percentages of the icon size,
// left to right and rising.
var trendPercents = [...][2]int{
	{25, 70},
	{40, 50},
	{60, 40},
	{75, 30},
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry holds the drawing parameters derived from an icon size.
type Geometry struct {
	Size      int     `json:"size"`
	Margin    int     `json:"margin"`
	LineWidth int     `json:"line_width"`
	DotRadius int     `json:"dot_radius"`
	Vertices  []Point `json:"vertices"`
}

func NewGeometry(size int) Geometry {
	g := Geometry{
		Size:      size,
		Margin:    size / 8,
		LineWidth: max(1, size/16),
		DotRadius: max(1, size/20),
	}
	for _, p := range trendPercents {
		g.Vertices = append(g.Vertices, Point{
			X: float64(size*p[0]) / 100,
			Y: float64(size*p[1]) / 100,
		})
	}
	return g
}

// CircleCenter returns the center of the background circle.
func (g Geometry) CircleCenter() Point {
	c := float64(g.Size) / 2
	return Point{X: c, Y: c}
}

// CircleRadius returns the radius of the circle inscribed in the square inset by Margin.
func (g Geometry) CircleRadius() float64 {
	return float64(g.Size-2*g.Margin) / 2
}
