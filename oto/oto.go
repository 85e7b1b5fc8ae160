// Package oto plays the explorer's audio through the default output device
// of the system.
package oto

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/tonnetz-go/tonnetz"
)

type (
	OtoContext struct {
		context    *oto.Context
		sampleRate int
	}

	// OtoOutput is a playing stream. Close stops it.
	OtoOutput struct {
		player *oto.Player
		reader *streamReader
	}

	// streamReader pulls stereo frames from the fill callback whenever the
	// device asks for more bytes, and encodes them as float32 little endian.
	streamReader struct {
		mu     sync.Mutex
		fill   func(tonnetz.AudioBuffer) error
		buffer tonnetz.AudioBuffer
		err    error
	}
)

const bytesPerFrame = 8 // two float32 channels

// NewContext opens the default output device. It blocks until the device is
// ready.
func NewContext(sampleRate int, bufferSize time.Duration) (*OtoContext, error) {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context, sampleRate: sampleRate}, nil
}

func (c *OtoContext) SampleRate() int { return c.sampleRate }

// Play starts pulling audio from fill on the device's goroutine.
func (c *OtoContext) Play(fill func(buffer tonnetz.AudioBuffer) error) io.Closer {
	r := &streamReader{fill: fill}
	p := c.context.NewPlayer(r)
	p.Play()
	return &OtoOutput{player: p, reader: r}
}

// Err returns the error that stopped the device, if any.
func (c *OtoContext) Err() error { return c.context.Err() }

// Close disposes of resources
func (o *OtoOutput) Close() error {
	o.player.Pause()
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return o.reader.Err()
}

func (r *streamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buffer) < frames {
		r.buffer = make(tonnetz.AudioBuffer, frames)
	}
	r.buffer = r.buffer[:frames]
	if err := r.fill(r.buffer); err != nil {
		r.err = err
		return 0, err
	}
	EncodeFloat32LE(p, r.buffer)
	return frames * bytesPerFrame, nil
}

// Err returns the error returned by the fill callback, if any.
func (r *streamReader) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == io.EOF {
		return nil
	}
	return r.err
}
