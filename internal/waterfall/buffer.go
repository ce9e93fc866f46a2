// Package waterfall keeps the scrolling history of quantized spectrum frames
// that a spectrogram is drawn from.
package waterfall

import (
	"errors"
	"fmt"

	"github.com/olivier-w/spectra/internal/spectrum"
)

// DefaultHeight is the number of frames of history kept.
const DefaultHeight = 512

// ErrDataMismatch is returned when a frame does not match the buffer width.
var ErrDataMismatch = errors.New("frame length does not match waterfall width")

// Buffer is a width×height grid of bytes. Logical row 0 is the oldest frame
// and row height-1 the newest.
//
// Rows live in a ring: head is the physical row holding logical row 0, so an
// update overwrites the oldest row and advances head instead of shifting
// every row up by one.
type Buffer struct {
	width  int
	height int
	cells  []byte
	head   int

	pending    int
	generation uint64
}

// New allocates a zero-filled buffer.
func New(width, height int) (*Buffer, error) {
	if height < 1 {
		return nil, fmt.Errorf("waterfall height must be positive, got %d", height)
	}
	b := &Buffer{height: height}
	if err := b.Resize(width); err != nil {
		return nil, err
	}
	return b, nil
}

// Resize reallocates the buffer for a new width. The height is unchanged and
// all history is discarded.
func (b *Buffer) Resize(width int) error {
	if width < 1 {
		return fmt.Errorf("waterfall width must be positive, got %d", width)
	}
	b.width = width
	b.cells = make([]byte, width*b.height)
	b.head = 0
	b.pending = b.height
	b.generation++
	return nil
}

// Update quantizes frame through rng and appends it as the newest row,
// evicting the oldest. On error the buffer is left untouched.
func (b *Buffer) Update(frame spectrum.Frame, rng spectrum.Range) error {
	if len(frame) != b.width {
		return fmt.Errorf("%w: got %d values, want %d", ErrDataMismatch, len(frame), b.width)
	}
	if err := rng.Validate(); err != nil {
		return err
	}

	// The oldest physical row becomes the newest.
	row := b.cells[b.head*b.width : (b.head+1)*b.width]
	for i, v := range frame {
		row[i] = rng.Quantize(v)
	}
	b.head = (b.head + 1) % b.height

	if b.pending < b.height {
		b.pending++
	}
	return nil
}

// Width returns the number of bins per row.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows of history.
func (b *Buffer) Height() int { return b.height }

// Head returns the physical row index of logical row 0.
func (b *Buffer) Head() int { return b.head }

// Generation changes every time the buffer is reallocated.
func (b *Buffer) Generation() uint64 { return b.generation }

// Physical returns the backing cells in physical row order. Callers must not
// modify the slice.
func (b *Buffer) Physical() []byte { return b.cells }

// PhysicalRow maps a logical row to its physical row index.
func (b *Buffer) PhysicalRow(r int) int {
	return (b.head + r) % b.height
}

// At returns the cell in column x of logical row r.
func (b *Buffer) At(x, r int) byte {
	return b.cells[b.PhysicalRow(r)*b.width+x]
}

// Row returns a copy of logical row r.
func (b *Buffer) Row(r int) []byte {
	p := b.PhysicalRow(r)
	out := make([]byte, b.width)
	copy(out, b.cells[p*b.width:(p+1)*b.width])
	return out
}

// Snapshot returns the whole grid in logical row-major order.
func (b *Buffer) Snapshot() []byte {
	out := make([]byte, 0, len(b.cells))
	tail := b.cells[b.head*b.width:]
	out = append(out, tail...)
	return append(out, b.cells[:b.head*b.width]...)
}

// Pending returns how many of the newest rows changed since MarkUploaded.
// It is height after a resize.
func (b *Buffer) Pending() int { return b.pending }

// MarkUploaded clears the pending row count.
func (b *Buffer) MarkUploaded() { b.pending = 0 }
