package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const wavHeaderSize = 44

// WAVWriter encodes 16-bit stereo PCM. The RIFF and data sizes are patched
// when the writer is closed.
type WAVWriter struct {
	w    io.WriteSeeker
	rate int
	size int
	buf  []byte
	file *os.File

	closed bool
}

// NewWAVWriter writes a placeholder header to w.
func NewWAVWriter(w io.WriteSeeker, sampleRate int) (*WAVWriter, error) {
	ww := &WAVWriter{w: w, rate: sampleRate}
	if _, err := w.Write(wavHeader(sampleRate, 0)); err != nil {
		return nil, fmt.Errorf("write wav header: %w", err)
	}
	return ww, nil
}

// CreateWAV creates path and returns a writer that owns the file.
func CreateWAV(path string, sampleRate int) (*WAVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWAVWriter(f, sampleRate)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.file = f
	return w, nil
}

func (w *WAVWriter) Write(frames []float32) error {
	w.buf = appendPCM16(w.buf[:0], frames)
	n, err := w.w.Write(w.buf)
	w.size += n
	if err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	return nil
}

// DataSize returns the PCM bytes written so far.
func (w *WAVWriter) DataSize() int { return w.size }

// Close rewrites the header with the final sizes. Later calls do nothing.
func (w *WAVWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.patch()
	if w.file != nil {
		if cerr := w.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (w *WAVWriter) patch() error {
	if _, err := w.w.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek wav header: %w", err)
	}
	if _, err := w.w.Write(wavHeader(w.rate, w.size)); err != nil {
		return fmt.Errorf("patch wav header: %w", err)
	}
	_, err := w.w.Seek(0, io.SeekEnd)
	return err
}

// wavHeader builds a canonical 44-byte PCM header for 16-bit stereo.
func wavHeader(sampleRate, dataSize int) []byte {
	const (
		channels      = 2
		bitsPerSample = 16
		blockAlign    = channels * bitsPerSample / 8
	)
	h := make([]byte, 0, wavHeaderSize)
	h = append(h, "RIFF"...)
	h = binary.LittleEndian.AppendUint32(h, uint32(dataSize+36))
	h = append(h, "WAVE"...)

	h = append(h, "fmt "...)
	h = binary.LittleEndian.AppendUint32(h, 16) // sub-chunk size
	h = binary.LittleEndian.AppendUint16(h, 1)  // PCM
	h = binary.LittleEndian.AppendUint16(h, channels)
	h = binary.LittleEndian.AppendUint32(h, uint32(sampleRate))
	h = binary.LittleEndian.AppendUint32(h, uint32(sampleRate*blockAlign))
	h = binary.LittleEndian.AppendUint16(h, blockAlign)
	h = binary.LittleEndian.AppendUint16(h, bitsPerSample)

	h = append(h, "data"...)
	h = binary.LittleEndian.AppendUint32(h, uint32(dataSize))
	return h
}
