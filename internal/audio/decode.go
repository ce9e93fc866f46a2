package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// decoder yields interleaved samples in [-1,1].
type decoder interface {
	Read(dst []float64) (int, error)
	SampleRate() int
	ChannelCount() int
}

// newDecoder picks a decoder by file extension.
func newDecoder(name string, r io.ReadSeeker) (decoder, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".mp3":
		return newMP3Decoder(r)
	case ".wav":
		return newWAVDecoder(r)
	case ".flac":
		return newFLACDecoder(r)
	case ".ogg":
		return newOGGDecoder(r)
	default:
		return nil, fmt.Errorf("unsupported format %q (supported: %s)", ext, SupportedExtsList())
	}
}

// pending drains leftover samples from a previous oversized chunk.
type pending []float64

func (p *pending) drain(dst []float64) int {
	n := copy(dst, *p)
	*p = (*p)[n:]
	return n
}

// --- MP3 ---

// go-mp3 always produces 16-bit little-endian stereo.
type mp3Decoder struct {
	dec *mp3.Decoder
	raw []byte
}

func newMP3Decoder(r io.Reader) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}
	return &mp3Decoder{dec: dec}, nil
}

func (d *mp3Decoder) Read(dst []float64) (int, error) {
	if cap(d.raw) < len(dst)*2 {
		d.raw = make([]byte, len(dst)*2)
	}
	// Whole stereo frames only.
	raw := d.raw[:len(dst)*2&^3]
	n, err := io.ReadFull(d.dec, raw)
	n &^= 1
	for i := 0; i < n; i += 2 {
		dst[i/2] = float64(int16(binary.LittleEndian.Uint16(raw[i:]))) / 32768
	}
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n / 2, err
}

func (d *mp3Decoder) SampleRate() int   { return d.dec.SampleRate() }
func (d *mp3Decoder) ChannelCount() int { return 2 }

// --- WAV ---

type wavDecoder struct {
	dec      *wav.Decoder
	buf      *goaudio.IntBuffer
	bitDepth int
	rest     pending
}

func newWAVDecoder(r io.ReadSeeker) (*wavDecoder, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported WAV bit depth %d", dec.BitDepth)
	}
	return &wavDecoder{
		dec:      dec,
		bitDepth: int(dec.BitDepth),
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: int(dec.NumChans), SampleRate: int(dec.SampleRate)},
			Data:   make([]int, 4096),
		},
	}, nil
}

func (d *wavDecoder) Read(dst []float64) (int, error) {
	if len(d.rest) > 0 {
		return d.rest.drain(dst), nil
	}

	n, err := d.dec.PCMBuffer(d.buf)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	scale := float64(int(1) << (d.bitDepth - 1))
	out := make([]float64, n)
	for i, v := range d.buf.Data[:n] {
		if d.bitDepth == 8 {
			// 8-bit WAV is unsigned.
			v -= 128
		}
		out[i] = float64(v) / scale
	}
	written := copy(dst, out)
	d.rest = out[written:]
	return written, nil
}

func (d *wavDecoder) SampleRate() int   { return int(d.dec.SampleRate) }
func (d *wavDecoder) ChannelCount() int { return int(d.dec.NumChans) }

// --- FLAC ---

type flacDecoder struct {
	stream *flac.Stream
	rest   pending
}

func newFLACDecoder(r io.Reader) (*flacDecoder, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}
	return &flacDecoder{stream: stream}, nil
}

func (d *flacDecoder) Read(dst []float64) (int, error) {
	if len(d.rest) > 0 {
		return d.rest.drain(dst), nil
	}

	frame, err := d.stream.ParseNext()
	if err != nil {
		return 0, err
	}

	channels := len(frame.Subframes)
	scale := float64(int64(1) << (d.stream.Info.BitsPerSample - 1))
	nSamples := int(frame.Subframes[0].NSamples)
	out := make([]float64, nSamples*channels)
	for i := range nSamples {
		for ch, sub := range frame.Subframes {
			out[i*channels+ch] = float64(sub.Samples[i]) / scale
		}
	}
	written := copy(dst, out)
	d.rest = out[written:]
	return written, nil
}

func (d *flacDecoder) SampleRate() int   { return int(d.stream.Info.SampleRate) }
func (d *flacDecoder) ChannelCount() int { return int(d.stream.Info.NChannels) }

// --- OGG Vorbis ---

type oggDecoder struct {
	reader *oggvorbis.Reader
	buf    []float32
}

func newOGGDecoder(r io.Reader) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	return &oggDecoder{reader: reader}, nil
}

func (d *oggDecoder) Read(dst []float64) (int, error) {
	if cap(d.buf) < len(dst) {
		d.buf = make([]float32, len(dst))
	}
	n, err := d.reader.Read(d.buf[:len(dst)])
	for i, s := range d.buf[:n] {
		dst[i] = float64(s)
	}
	return n, err
}

func (d *oggDecoder) SampleRate() int   { return d.reader.SampleRate() }
func (d *oggDecoder) ChannelCount() int { return d.reader.Channels() }

// monoReader mixes a decoder's interleaved channels down to one.
type monoReader struct {
	dec      decoder
	channels int
	buf      []float64
	partial  []float64
}

func newMonoReader(dec decoder) *monoReader {
	return &monoReader{dec: dec, channels: max(dec.ChannelCount(), 1)}
}

// Read fills dst with mono samples. It returns fewer than len(dst) only at
// the end of the stream or on error.
func (m *monoReader) Read(dst []float64) (int, error) {
	want := len(dst) * m.channels
	if cap(m.buf) < want {
		m.buf = make([]float64, want)
	}
	buf := m.buf[:want]
	got := copy(buf, m.partial)
	m.partial = m.partial[:0]

	var err error
	for got < want && err == nil {
		var n int
		n, err = m.dec.Read(buf[got:])
		got += n
		if n == 0 && err == nil {
			break
		}
	}

	frames := got / m.channels
	if tail := buf[frames*m.channels : got]; len(tail) > 0 {
		m.partial = append(m.partial, tail...)
	}
	inv := 1 / float64(m.channels)
	for i := range frames {
		var sum float64
		for _, s := range buf[i*m.channels : (i+1)*m.channels] {
			sum += s
		}
		dst[i] = sum * inv
	}
	return frames, err
}
