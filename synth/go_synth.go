// Package synth implements the tone generator that sounds lattice nodes: one
// oscillator per voice, each with a gain envelope automated on the synth's
// own sample clock, mixed through a shared master gain.
package synth

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tonnetz-go/tonnetz"
	"github.com/viterin/vek/vek32"
)

type (
	// GoSynther creates GoSynths.
	GoSynther struct{}

	GoSynth struct {
		sampleRate int
		env        frameEnvelope
		voices     []*voice
		byID       map[int]*voice
		masterGain float32
		time       int64

		mix, tmp, gain []float32
	}

	frameEnvelope struct {
		attack, release, stopDelay int64
		sustain, floor             float32
		maxVoices                  int
	}

	voice struct {
		id       int
		freq     float64
		phase    float64
		waveform tonnetz.Waveform
		gain     param
		released bool
		stopAt   int64
	}
)

var (
	ErrTooManyVoices    = errors.New("synth: too many voices")
	ErrInvalidFrequency = errors.New("synth: invalid frequency")
	ErrVoiceExists      = errors.New("synth: voice already exists")
	ErrNoSuchVoice      = errors.New("synth: no such voice")
)

const noStop = math.MaxInt64

func (s GoSynther) Name() string { return "Go" }

func (s GoSynther) Synth(sampleRate int, envelope tonnetz.Envelope) (tonnetz.Synth, error) {
	synth, err := New(sampleRate, envelope)
	if err != nil {
		return nil, err
	}
	return synth, nil
}

// New returns a synth running at sampleRate frames per second.
func New(sampleRate int, envelope tonnetz.Envelope) (*GoSynth, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("synth: invalid sample rate %d", sampleRate)
	}
	if envelope.Floor <= 0 || envelope.Sustain <= 0 {
		return nil, fmt.Errorf("synth: envelope levels must be positive (floor %v, sustain %v)", envelope.Floor, envelope.Sustain)
	}
	if envelope.MaxVoices <= 0 {
		envelope.MaxVoices = tonnetz.DefaultEnvelope.MaxVoices
	}
	frames := func(d time.Duration) int64 {
		return max(int64(d.Seconds()*float64(sampleRate)+0.5), 1)
	}
	return &GoSynth{
		sampleRate: sampleRate,
		env: frameEnvelope{
			attack:    frames(envelope.Attack),
			release:   frames(envelope.Release),
			stopDelay: frames(envelope.StopDelay),
			sustain:   envelope.Sustain,
			floor:     envelope.Floor,
			maxVoices: envelope.MaxVoices,
		},
		byID:       make(map[int]*voice),
		masterGain: 1,
	}, nil
}

func (s *GoSynth) validFrequency(freq float64) bool {
	return freq > 0 && !math.IsInf(freq, 0) && freq < float64(s.sampleRate)/2
}

func (s *GoSynth) Start(id int, freq float64, waveform tonnetz.Waveform) error {
	if !s.validFrequency(freq) {
		return fmt.Errorf("%w: %v Hz", ErrInvalidFrequency, freq)
	}
	if _, ok := s.byID[id]; ok {
		return fmt.Errorf("%w: %d", ErrVoiceExists, id)
	}
	if len(s.voices) >= s.env.maxVoices {
		return ErrTooManyVoices
	}
	v := &voice{id: id, freq: freq, waveform: waveform, gain: newParam(0), stopAt: noStop}
	v.gain.setValueAtTime(s.env.floor, s.time)
	v.gain.exponentialRampToValueAtTime(s.env.sustain, s.time+s.env.attack)
	s.voices = append(s.voices, v)
	s.byID[id] = v
	return nil
}

func (s *GoSynth) SetFrequency(id int, freq float64) error {
	v, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoSuchVoice, id)
	}
	if !s.validFrequency(freq) {
		return fmt.Errorf("%w: %v Hz", ErrInvalidFrequency, freq)
	}
	v.freq = freq
	return nil
}

func (s *GoSynth) SetWaveform(waveform tonnetz.Waveform) {
	for _, v := range s.voices {
		v.waveform = waveform
	}
}

func (s *GoSynth) Release(id int) {
	v, ok := s.byID[id]
	if !ok || v.released {
		return
	}
	v.released = true
	level := max(v.gain.valueAt(s.time), s.env.floor)
	start := s.time
	if v.gain.settled() {
		v.gain.setValueAtTime(level, s.time)
	} else {
		// a pending attack runs to its end before the release starts
		start = max(start, v.gain.end())
	}
	v.gain.exponentialRampToValueAtTime(s.env.floor, start+s.env.release)
	v.stopAt = start + s.env.release + s.env.stopDelay
}

func (s *GoSynth) SetMasterGain(gain float32) {
	s.masterGain = max(gain, 0)
}

func (s *GoSynth) Time() int64 { return s.time }

func (s *GoSynth) NumVoices() int { return len(s.voices) }

// Render mixes all voices into the buffer, writing the same signal to both
// channels.
func (s *GoSynth) Render(buffer tonnetz.AudioBuffer, ended func(voice int)) error {
	n := len(buffer)
	if n == 0 {
		return nil
	}
	s.mix = vek32.Zeros_Into(grow(s.mix, n), n)
	s.tmp = grow(s.tmp, n)
	s.gain = grow(s.gain, n)
	end := s.time + int64(n)
	alive := s.voices[:0]
	var stopped []*voice
	for _, v := range s.voices {
		s.renderVoice(v, s.tmp, s.gain)
		vek32.Mul_Inplace(s.tmp, s.gain)
		vek32.Add_Inplace(s.mix, s.tmp)
		if v.stopAt <= end {
			stopped = append(stopped, v)
			continue
		}
		alive = append(alive, v)
	}
	for i := len(alive); i < len(s.voices); i++ {
		s.voices[i] = nil
	}
	s.voices = alive
	vek32.MulNumber_Inplace(s.mix, s.masterGain)
	for i := range buffer {
		buffer[i] = [2]float32{s.mix[i], s.mix[i]}
	}
	s.time = end
	for _, v := range stopped {
		delete(s.byID, v.id)
		if ended != nil {
			ended(v.id)
		}
	}
	return nil
}

func (s *GoSynth) renderVoice(v *voice, out, gain []float32) {
	step := v.freq / float64(s.sampleRate)
	for i := range out {
		t := s.time + int64(i)
		if t >= v.stopAt {
			out[i], gain[i] = 0, 0
			continue
		}
		out[i] = oscillator(v.waveform, v.phase)
		gain[i] = v.gain.valueAt(t)
		v.phase += step
		v.phase -= math.Floor(v.phase)
	}
}

func oscillator(w tonnetz.Waveform, phase float64) float32 {
	switch w {
	case tonnetz.Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case tonnetz.Sawtooth:
		return float32(2*phase - 1)
	case tonnetz.Triangle:
		return float32(1 - 4*math.Abs(phase-0.5))
	default:
		return float32(math.Sin(2 * math.Pi * phase))
	}
}

func grow(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	return buf[:n]
}
