package render

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/olivier-w/spectra/internal/colormap"
	"github.com/olivier-w/spectra/internal/waterfall"
)

// MaxTextureSize is the largest surface dimension that can be allocated.
const MaxTextureSize = 16384

// Filter selects how the spectrogram surface is sampled.
type Filter uint8

const (
	Nearest Filter = iota
	Linear
)

func (f Filter) String() string {
	if f == Linear {
		return "linear"
	}
	return "nearest"
}

// ParseFilter accepts "nearest" or "linear".
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return Nearest, nil
	case "linear":
		return Linear, nil
	}
	return Nearest, fmt.Errorf("unknown filter %q (want nearest or linear)", s)
}

// Surface is a single-channel 8-bit texture. Its rows are stored in the same
// physical ring order as the waterfall buffer they mirror; head is the
// physical row holding the oldest frame.
type Surface struct {
	pix  *image.Gray
	head int
}

// NewSurface allocates a zeroed w×h texture.
func NewSurface(w, h int) (*Surface, error) {
	if w < 1 || h < 1 || w > MaxTextureSize || h > MaxTextureSize {
		return nil, fmt.Errorf("%w: surface %dx%d outside 1..%d", ErrInitialization, w, h, MaxTextureSize)
	}
	return &Surface{pix: image.NewGray(image.Rect(0, 0, w, h))}, nil
}

// Size returns the texture dimensions.
func (s *Surface) Size() (int, int) {
	return s.pix.Rect.Dx(), s.pix.Rect.Dy()
}

// Texel returns the value at column x of logical row r.
func (s *Surface) Texel(x, r int) uint8 {
	_, h := s.Size()
	return s.pix.Pix[((s.head+r)%h)*s.pix.Stride+x]
}

// SpectrogramRenderer owns the texture mirroring a waterfall buffer and draws
// it as a full-viewport quad.
type SpectrogramRenderer struct {
	Filter Filter

	program    *Program
	surface    *Surface
	generation uint64
	uploaded   int
}

// NewSpectrogramRenderer compiles the spectrogram stage and allocates a
// width×height surface.
func NewSpectrogramRenderer(width, height int) (*SpectrogramRenderer, error) {
	program, err := Compile(StageSpectrogram)
	if err != nil {
		return nil, err
	}
	surface, err := NewSurface(width, height)
	if err != nil {
		return nil, err
	}
	return &SpectrogramRenderer{program: program, surface: surface}, nil
}

// Surface exposes the texture.
func (r *SpectrogramRenderer) Surface() *Surface { return r.surface }

// LastUpload returns how many rows the last Upload copied.
func (r *SpectrogramRenderer) LastUpload() int { return r.uploaded }

// Resize recreates the surface for a new width. The next Upload copies the
// whole buffer.
func (r *SpectrogramRenderer) Resize(width int) error {
	_, h := r.surface.Size()
	surface, err := NewSurface(width, h)
	if err != nil {
		return err
	}
	r.surface = surface
	r.generation = 0
	return nil
}

// Upload copies the rows of buf written since the previous upload into the
// surface. A buffer that was reallocated since then is copied in full.
func (r *SpectrogramRenderer) Upload(buf *waterfall.Buffer) error {
	w, h := r.surface.Size()
	if buf.Width() != w || buf.Height() != h {
		return fmt.Errorf("%w: surface is %dx%d, buffer is %dx%d",
			waterfall.ErrDataMismatch, w, h, buf.Width(), buf.Height())
	}

	rows := buf.Pending()
	if buf.Generation() != r.generation {
		rows = h
		r.generation = buf.Generation()
	}

	cells := buf.Physical()
	stride := r.surface.pix.Stride
	for lr := h - rows; lr < h; lr++ {
		p := buf.PhysicalRow(lr)
		copy(r.surface.pix.Pix[p*stride:p*stride+w], cells[p*w:(p+1)*w])
	}
	r.surface.head = buf.Head()
	r.uploaded = rows
	buf.MarkUploaded()
	return nil
}

// Draw fills dst with the surface, oldest frame at the top and newest at the
// bottom, shading every texel through the color map v.
func (r *SpectrogramRenderer) Draw(dst *Canvas, v colormap.Variant) {
	dw, dh := dst.Size()
	if dw == 0 || dh == 0 {
		return
	}
	if r.Filter == Linear {
		r.drawLinear(dst, dw, dh, v)
		return
	}

	sw, sh := r.surface.Size()
	for y := range dh {
		row := (2*y + 1) * sh / (2 * dh)
		for x := range dw {
			col := (2*x + 1) * sw / (2 * dw)
			dst.set(x, y, r.program.ShadeByte(r.surface.Texel(col, row), v))
		}
	}
}

func (r *SpectrogramRenderer) drawLinear(dst *Canvas, dw, dh int, v colormap.Variant) {
	sw, sh := r.surface.Size()
	for y := range dh {
		fy := (float64(y)+0.5)*float64(sh)/float64(dh) - 0.5
		y0, y1, ty := lerpTaps(fy, sh)
		for x := range dw {
			fx := (float64(x)+0.5)*float64(sw)/float64(dw) - 0.5
			x0, x1, tx := lerpTaps(fx, sw)

			top := lerp(float64(r.surface.Texel(x0, y0)), float64(r.surface.Texel(x1, y0)), tx)
			bot := lerp(float64(r.surface.Texel(x0, y1)), float64(r.surface.Texel(x1, y1)), tx)
			dst.set(x, y, r.program.Shade(lerp(top, bot, ty)/255, v))
		}
	}
}

// lerpTaps returns the two texel indices around f, clamped to the edge, and
// the blend weight between them.
func lerpTaps(f float64, n int) (int, int, float64) {
	if f <= 0 {
		return 0, 0, 0
	}
	lo := int(math.Floor(f))
	if lo >= n-1 {
		return n - 1, n - 1, 0
	}
	return lo, lo + 1, f - float64(lo)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
