package render

import (
	"image"
	"image/color"
)

// ClearColor is the background of the line plot.
var ClearColor = color.RGBA{R: 26, G: 26, B: 26, A: 0xff}

// Canvas is a framebuffer the renderers draw into.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a w×h framebuffer.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the framebuffer when its size changes.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if c.img != nil && c.img.Rect.Dx() == w && c.img.Rect.Dy() == h {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Size returns the framebuffer dimensions.
func (c *Canvas) Size() (int, int) {
	return c.img.Rect.Dx(), c.img.Rect.Dy()
}

// Image exposes the framebuffer.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear fills the framebuffer with col.
func (c *Canvas) Clear(col color.RGBA) {
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = col.A
	}
}

// set writes one pixel, ignoring coordinates outside the framebuffer.
func (c *Canvas) set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.img.Rect.Dx() || y >= c.img.Rect.Dy() {
		return
	}
	off := y*c.img.Stride + x*4
	c.img.Pix[off] = col.R
	c.img.Pix[off+1] = col.G
	c.img.Pix[off+2] = col.B
	c.img.Pix[off+3] = col.A
}

// At returns the pixel at (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}
