package explorer

import (
	"fmt"
	"io"
	"time"

	"github.com/tonnetz-go/tonnetz"
)

// renderBlock is the number of frames rendered per call when exporting.
const renderBlock = 1024

// RenderChord renders the frequencies as one chord held for hold and then
// released, ending when the last voice has stopped. Voices use the handles
// 0..len(freqs)-1.
func RenderChord(synther tonnetz.Synther, sampleRate int, envelope tonnetz.Envelope, waveform tonnetz.Waveform, gain float32, freqs []float64, hold time.Duration) (tonnetz.AudioBuffer, error) {
	s, err := synther.Synth(sampleRate, envelope)
	if err != nil {
		return nil, fmt.Errorf("%s synth could not be created: %w", synther.Name(), err)
	}
	s.SetWaveform(waveform)
	s.SetMasterGain(gain)
	for i, f := range freqs {
		if err := s.Start(i, f, waveform); err != nil {
			return nil, fmt.Errorf("could not start %.2f Hz: %w", f, err)
		}
	}
	holdFrames := int(hold.Seconds() * float64(sampleRate))
	// a release during the attack waits for the attack to finish
	tail := envelope.Attack + envelope.Release + envelope.StopDelay + 100*time.Millisecond
	maxFrames := holdFrames + int(tail.Seconds()*float64(sampleRate))
	out := make(tonnetz.AudioBuffer, 0, maxFrames)
	ended := func(int) {}
	released := false
	for len(out) < maxFrames {
		if !released && len(out) >= holdFrames {
			for i := range freqs {
				s.Release(i)
			}
			released = true
		}
		if released && s.NumVoices() == 0 {
			break
		}
		n := renderBlock
		if !released {
			n = min(n, holdFrames-len(out))
		}
		n = min(n, maxFrames-len(out))
		block := out[len(out) : len(out)+n]
		if err := s.Render(block, ended); err != nil {
			return nil, fmt.Errorf("synth.Render: %w", err)
		}
		out = out[:len(out)+n]
	}
	return out, nil
}

// WriteWav renders the selected nodes as a chord into a .wav file on a
// background goroutine, using the export settings of the config. Progress
// and errors come back to the model as alerts. w is closed when done.
func (m *Model) WriteWav(w io.WriteCloser, synther tonnetz.Synther) {
	var freqs []float64
	for _, c := range m.SelectedNodes() {
		if f, ok := m.Frequency(c); ok {
			freqs = append(freqs, f)
		}
	}
	if len(freqs) == 0 {
		m.Alerts().Add("No notes selected to export", Warning)
		w.Close()
		return
	}
	cfg := m.config
	waveform, gain := m.d.Waveform, float32(m.masterVolume)
	alert := func(message string, priority AlertPriority) {
		TrySend(m.broker.ToModel, MsgToModel{Data: Alert{Name: "ExportWav", Message: message, Priority: priority, Duration: defaultAlertDuration}})
	}
	go func() {
		defer w.Close()
		buffer, err := RenderChord(synther, cfg.SampleRate, cfg.Envelope(), waveform, gain, freqs, cfg.ExportLength)
		if err != nil {
			alert(fmt.Sprintf("Error rendering the chord during export: %v", err), Error)
			return
		}
		data, err := buffer.Wav(cfg.SampleRate, cfg.ExportPCM16)
		if err != nil {
			alert(fmt.Sprintf("Error converting to .wav: %v", err), Error)
			return
		}
		if _, err := w.Write(data); err != nil {
			alert(fmt.Sprintf("Error writing .wav: %v", err), Error)
			return
		}
		alert(fmt.Sprintf("Exported %d notes", len(freqs)), Info)
	}()
}
