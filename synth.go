package tonnetz

import (
	"fmt"
	"strings"
	"time"
)

type (
	// Synth is a polyphonic tone generator with its own sample clock. All
	// methods schedule changes relative to that clock and return immediately;
	// nothing is applied until the affected frames are rendered.
	//
	// Voices are identified by an integer handle chosen by the caller. A
	// handle must not be reused while the voice is still rendering.
	Synth interface {
		// Start creates a voice at freq Hz and schedules its attack ramp.
		Start(voice int, freq float64, waveform Waveform) error
		// SetFrequency retunes a live voice in place.
		SetFrequency(voice int, freq float64) error
		// SetWaveform changes the waveform of every live voice.
		SetWaveform(waveform Waveform)
		// Release schedules the release ramp and the stop of the voice. The
		// voice is reported through Render's ended callback once it stops.
		Release(voice int)
		// SetMasterGain sets the gain shared by all voices.
		SetMasterGain(gain float32)
		// Render fills the buffer and advances the clock, calling ended for
		// each voice that stopped during the buffer.
		Render(buffer AudioBuffer, ended func(voice int)) error
		// Time returns the current position of the sample clock in frames.
		Time() int64
		// NumVoices returns the number of voices still rendering.
		NumVoices() int
	}

	// Synther creates synths.
	Synther interface {
		Name() string
		Synth(sampleRate int, envelope Envelope) (Synth, error)
	}

	// Envelope is the amplitude shape applied to every voice.
	Envelope struct {
		Attack    time.Duration // ramp from Floor to Sustain
		Release   time.Duration // ramp from current level to Floor
		StopDelay time.Duration // extra time after the release ramp before the voice stops
		Sustain   float32
		Floor     float32 // near-zero start and end level of the exponential ramps
		MaxVoices int
	}

	Waveform int
)

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
	NumWaveforms
)

var waveformNames = [NumWaveforms]string{"sine", "square", "sawtooth", "triangle"}

// DefaultEnvelope is a short click-free attack and release.
var DefaultEnvelope = Envelope{
	Attack:    30 * time.Millisecond,
	Release:   250 * time.Millisecond,
	StopDelay: 50 * time.Millisecond,
	Sustain:   0.2,
	Floor:     0.0001,
	MaxVoices: 64,
}

func (w Waveform) String() string {
	if w < 0 || w >= NumWaveforms {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

func ParseWaveform(s string) (Waveform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range waveformNames {
		if n == s {
			return Waveform(i), nil
		}
	}
	return Sine, fmt.Errorf("unknown waveform %q", s)
}

func (w Waveform) MarshalText() ([]byte, error) {
	if w < 0 || w >= NumWaveforms {
		return nil, fmt.Errorf("invalid waveform %d", int(w))
	}
	return []byte(w.String()), nil
}

func (w *Waveform) UnmarshalText(text []byte) error {
	v, err := ParseWaveform(string(text))
	if err != nil {
		return err
	}
	*w = v
	return nil
}
