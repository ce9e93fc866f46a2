package audio

import "sync"

// DefaultTapSize holds the largest analysis window with room to spare.
const DefaultTapSize = 1 << 16

// Tap is a thread-safe ring of mono samples. Sources write into it from their
// own goroutine; the analyser copies the newest window out once per frame.
type Tap struct {
	mu   sync.Mutex
	buf  []float64
	w    int
	fill int
}

// NewTap returns a tap holding up to size samples.
func NewTap(size int) *Tap {
	if size < 1 {
		size = DefaultTapSize
	}
	return &Tap{buf: make([]float64, size)}
}

// Write appends samples, overwriting the oldest when full.
func (t *Tap) Write(samples []float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	size := len(t.buf)
	if len(samples) > size {
		samples = samples[len(samples)-size:]
	}
	for _, s := range samples {
		t.buf[t.w] = s
		t.w = (t.w + 1) % size
	}
	t.fill = min(t.fill+len(samples), size)
}

// Latest copies the newest len(dst) samples into dst, oldest first. When
// fewer samples have been written the front of dst is zero-filled. It returns
// how many real samples were copied.
func (t *Tap) Latest(dst []float64) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	size := len(t.buf)
	n := min(len(dst), t.fill)
	pad := len(dst) - n
	for i := range pad {
		dst[i] = 0
	}
	start := (t.w - n + size) % size
	for i := range n {
		dst[pad+i] = t.buf[(start+i)%size]
	}
	return n
}

// Len returns how many samples are buffered.
func (t *Tap) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fill
}

// Clear drops everything buffered.
func (t *Tap) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.w = 0
	t.fill = 0
}
