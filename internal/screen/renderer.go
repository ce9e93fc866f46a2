// Package screen presents RGBA framebuffers as terminal text.
package screen

import (
	"image"
	"strings"
)

// Renderer converts framebuffers into terminal strings. With color it writes
// "▀" cells whose foreground is the upper pixel and background the lower one,
// two pixel rows per text row. Without color every pixel becomes a
// brightness character.
type Renderer struct {
	mode Mode
	sb   strings.Builder
}

// NewRenderer returns a renderer for mode; ModeAuto asks the terminal.
func NewRenderer(mode Mode) *Renderer {
	if mode == ModeAuto {
		mode = Detect()
	}
	return &Renderer{mode: mode}
}

// Mode returns the resolved color mode.
func (r *Renderer) Mode() Mode { return r.mode }

// PixelRows is how many framebuffer rows fill rows lines of text.
func (r *Renderer) PixelRows(rows int) int {
	if r.mode == ModeOff {
		return rows
	}
	return rows * 2
}

// Render scales img to cols×rows cells with nearest sampling.
func (r *Renderer) Render(img *image.RGBA, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 || img.Rect.Empty() {
		return ""
	}

	r.sb.Reset()
	r.sb.Grow(cols * rows * 40)
	if r.mode == ModeOff {
		r.renderASCII(img, cols, rows)
	} else {
		r.renderHalfBlock(img, cols, rows)
	}
	return r.sb.String()
}

func (r *Renderer) renderHalfBlock(img *image.RGBA, cols, rows int) {
	iw, ih := img.Rect.Dx(), img.Rect.Dy()
	pixelRows := rows * 2

	for row := range rows {
		topY := (row * 2) * ih / pixelRows
		botY := (row*2 + 1) * ih / pixelRows

		var lastFg, lastBg string
		for col := range cols {
			x := col * iw / cols
			tr, tg, tb := sample(img, x, topY)
			br, bg, bb := sample(img, x, botY)

			if fg := fgSeq(r.mode, tr, tg, tb); fg != lastFg {
				r.sb.WriteString(fg)
				lastFg = fg
			}
			if bgc := bgSeq(r.mode, br, bg, bb); bgc != lastBg {
				r.sb.WriteString(bgc)
				lastBg = bgc
			}
			r.sb.WriteString("▀")
		}

		r.sb.WriteString(ansiReset)
		if row < rows-1 {
			r.sb.WriteByte('\n')
		}
	}
}

func (r *Renderer) renderASCII(img *image.RGBA, cols, rows int) {
	iw, ih := img.Rect.Dx(), img.Rect.Dy()
	for row := range rows {
		y := row * ih / rows
		for col := range cols {
			pr, pg, pb := sample(img, col*iw/cols, y)
			r.sb.WriteByte(brightnessChar(luminance(pr, pg, pb)))
		}
		if row < rows-1 {
			r.sb.WriteByte('\n')
		}
	}
}

func sample(img *image.RGBA, x, y int) (uint8, uint8, uint8) {
	off := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	if off < 0 || off+2 >= len(img.Pix) {
		return 0, 0, 0
	}
	return img.Pix[off], img.Pix[off+1], img.Pix[off+2]
}
