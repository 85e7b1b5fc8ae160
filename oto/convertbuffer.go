package oto

import (
	"encoding/binary"
	"math"

	"github.com/tonnetz-go/tonnetz"
)

// EncodeFloat32LE writes the frames of buffer to dst as interleaved float32
// little endian samples, left channel first, and returns the number of
// bytes written. dst must hold at least 8 bytes per frame.
func EncodeFloat32LE(dst []byte, buffer tonnetz.AudioBuffer) int {
	for i, frame := range buffer {
		binary.LittleEndian.PutUint32(dst[i*8:], math.Float32bits(frame[0]))
		binary.LittleEndian.PutUint32(dst[i*8+4:], math.Float32bits(frame[1]))
	}
	return len(buffer) * bytesPerFrame
}
