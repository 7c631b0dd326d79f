// Package output moves rendered audio out of the process: to a player
// subprocess for live sessions, or to a WAV file.
package output

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrNoOutput means no audio player is available on this machine.
var ErrNoOutput = errors.New("no audio output available")

// Device consumes interleaved stereo float32 frames.
type Device interface {
	Write(frames []float32) error
	Close() error
}

// Source produces interleaved stereo frames on demand.
type Source interface {
	Render(buf []float32) int
	SampleRate() int
}

// appendPCM16 appends frames as signed 16-bit little-endian samples.
func appendPCM16(dst []byte, frames []float32) []byte {
	for _, f := range frames {
		v := math.Max(-1, math.Min(1, float64(f)))
		dst = binary.LittleEndian.AppendUint16(dst, uint16(int16(math.Round(v*math.MaxInt16))))
	}
	return dst
}
