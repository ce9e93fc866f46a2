package render

import (
	"image/color"
	"math"

	"github.com/olivier-w/spectra/internal/colormap"
	"github.com/olivier-w/spectra/internal/spectrum"
)

// Vertex is a point in normalized device coordinates, [-1,1] on both axes
// for anything on screen.
type Vertex struct {
	X, Y float64
}

// LineRenderer draws a spectrum frame as a connected line strip whose color
// encodes amplitude.
type LineRenderer struct {
	program *Program
	verts   []Vertex
}

// NewLineRenderer compiles the line stage.
func NewLineRenderer() (*LineRenderer, error) {
	program, err := Compile(StageLine)
	if err != nil {
		return nil, err
	}
	return &LineRenderer{program: program}, nil
}

// Vertices lays frame out across x in [-1,1] and maps each value through
// rng to y. Values outside rng land off screen; they are not clamped.
func (l *LineRenderer) Vertices(frame spectrum.Frame, rng spectrum.Range) []Vertex {
	n := len(frame)
	if cap(l.verts) < n {
		l.verts = make([]Vertex, n)
	}
	l.verts = l.verts[:n]

	for i, v := range frame {
		x := 0.0
		if n > 1 {
			x = -1 + 2*float64(i)/float64(n-1)
		}
		l.verts[i] = Vertex{X: x, Y: rng.Map(v, -1, 1)}
	}
	return l.verts
}

// Draw clears dst and draws frame as a line strip.
func (l *LineRenderer) Draw(dst *Canvas, frame spectrum.Frame, rng spectrum.Range, v colormap.Variant) {
	dst.Clear(ClearColor)
	w, h := dst.Size()
	if w == 0 || h == 0 {
		return
	}

	verts := l.Vertices(frame, rng)
	if len(verts) == 1 {
		if p := verts[0]; finiteVertex(p) && inside(p) {
			x, y := toPixel(p, w, h)
			dst.set(x, y, l.shade(p.Y, v))
		}
		return
	}

	for i := 1; i < len(verts); i++ {
		a, b := verts[i-1], verts[i]
		if !finiteVertex(a) || !finiteVertex(b) {
			continue
		}
		a, b, ok := clipSegment(a, b)
		if !ok {
			continue
		}
		l.drawSegment(dst, a, b, w, h, v)
	}
}

func (l *LineRenderer) shade(y float64, v colormap.Variant) color.RGBA {
	return l.program.Shade((y+1)/2, v)
}

// drawSegment rasterizes a clipped segment with Bresenham's algorithm,
// interpolating y along the way for the fragment color.
func (l *LineRenderer) drawSegment(dst *Canvas, a, b Vertex, w, h int, v colormap.Variant) {
	x0, y0 := toPixel(a, w, h)
	x1, y1 := toPixel(b, w, h)

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := max(dx, -dy)
	err := dx + dy

	for step := 0; ; step++ {
		t := 0.0
		if steps > 0 {
			t = float64(step) / float64(steps)
		}
		dst.set(x0, y0, l.shade(a.Y+(b.Y-a.Y)*t, v))

		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment clips a→b to the [-1,1] viewport (Liang–Barsky).
func clipSegment(a, b Vertex) (Vertex, Vertex, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, a.X + 1},
		{dx, 1 - a.X},
		{-dy, a.Y + 1},
		{dy, 1 - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return a, b, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}

	return Vertex{X: a.X + t0*dx, Y: a.Y + t0*dy},
		Vertex{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}

// toPixel maps a vertex inside the viewport to framebuffer coordinates, with
// y = 1 on the top row.
func toPixel(p Vertex, w, h int) (int, int) {
	x := int(math.Round((p.X + 1) / 2 * float64(w-1)))
	y := int(math.Round((1 - p.Y) / 2 * float64(h-1)))
	return x, y
}

func inside(p Vertex) bool {
	return p.X >= -1 && p.X <= 1 && p.Y >= -1 && p.Y <= 1
}

func finiteVertex(p Vertex) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
