package tonnetz

import "io"

type (
	// AudioBuffer is a buffer of stereo frames.
	AudioBuffer [][2]float32

	// AudioContext is an audio output device. Play starts pulling buffers
	// from the given callback on the device's own goroutine until the
	// returned closer is closed or the callback returns an error.
	AudioContext interface {
		Play(fill func(buffer AudioBuffer) error) io.Closer
		SampleRate() int
	}
)

// Fill sets every frame of the buffer to value.
func (b AudioBuffer) Fill(value float32) {
	for i := range b {
		b[i] = [2]float32{value, value}
	}
}
