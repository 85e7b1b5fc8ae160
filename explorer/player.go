package explorer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tonnetz-go/tonnetz"
	"github.com/viterin/vek/vek32"
)

type (
	// Player is the audio player of the explorer, run in the audio thread. It
	// is controlled by messages from the model via broker.ToPlayer and reports
	// back with non-blocking sends to broker.ToModel, so a stalled GUI can
	// never block audio.
	Player struct {
		synth   tonnetz.Synth // nil if the synth could not be created or crashed
		noSynth error         // why voices fail while synth is nil
		level   float32       // peak level with a decay, for metering
		scratch []float32

		broker *Broker
	}
)

var errNoSynth = errors.New("no synth available")

// NewPlayer creates the player and its synth. If the synth cannot be
// created, the player outputs silence and fails every voice it is asked to
// start.
func NewPlayer(broker *Broker, synther tonnetz.Synther, sampleRate int, envelope tonnetz.Envelope) *Player {
	p := &Player{broker: broker, noSynth: errNoSynth}
	s, err := synther.Synth(sampleRate, envelope)
	if err != nil {
		p.SendAlert("SynthUnavailable", fmt.Sprintf("%s synth could not be created: %v", synther.Name(), err), Error)
		return p
	}
	p.synth = s
	return p
}

// Process fills buffer with the sound of all live voices. It first handles
// every message waiting from the model.
func (p *Player) Process(buffer tonnetz.AudioBuffer) {
	p.processMessages()
	if p.synth == nil {
		buffer.Fill(0)
		p.updateLevel(buffer)
		return
	}
	if err := p.synth.Render(buffer, p.voiceEnded); err != nil {
		p.synth = nil
		buffer.Fill(0)
		p.SendAlert("PlayerCrash", fmt.Sprintf("synth.Render: %s", err.Error()), Error)
		p.send(SynthLostMsg{})
	}
	p.updateLevel(buffer)
}

// RunWithoutOutput serves the model when there is no audio device to
// render for. Every voice the model asks for fails with reason, so nothing
// is reported as sounding. It returns when done is closed.
func (p *Player) RunWithoutOutput(reason error, done <-chan struct{}) {
	p.synth = nil
	p.noSynth = reason
	p.level = 0
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			p.processMessages()
		}
	}
}

func (p *Player) voiceEnded(voice int) {
	p.send(VoiceEndedMsg{Voice: voice})
}

func (p *Player) processMessages() {
	for {
		select {
		case msg := <-p.broker.ToPlayer:
			switch m := msg.(type) {
			case NoteOnMsg:
				if p.synth == nil {
					p.send(VoiceFailedMsg{Voice: m.Voice, Err: p.noSynth})
					continue
				}
				if err := p.synth.Start(m.Voice, m.Frequency, m.Waveform); err != nil {
					p.send(VoiceFailedMsg{Voice: m.Voice, Err: err})
				}
			case NoteOffMsg:
				if p.synth != nil {
					p.synth.Release(m.Voice)
				}
			case RetuneMsg:
				if p.synth != nil {
					// the voice may have been stopped by the synth already
					p.synth.SetFrequency(m.Voice, m.Frequency)
				}
			case WaveformMsg:
				if p.synth != nil {
					p.synth.SetWaveform(m.Waveform)
				}
			case MasterGainMsg:
				if p.synth != nil {
					p.synth.SetMasterGain(m.Gain)
				}
			}
		default:
			return
		}
	}
}

func (p *Player) updateLevel(buffer tonnetz.AudioBuffer) {
	if len(buffer) == 0 {
		return
	}
	if cap(p.scratch) < len(buffer) {
		p.scratch = make([]float32, len(buffer))
	}
	s := p.scratch[:len(buffer)]
	for i := range buffer {
		s[i] = buffer[i][0]
	}
	vek32.Abs_Inplace(s)
	peak := vek32.Max(s)
	alpha := float32(math.Exp(-float64(len(buffer)) / 15000))
	p.level = max(peak, p.level*alpha)
	TrySend(p.broker.ToModel, MsgToModel{HasLevel: true, Level: p.level})
}

func (p *Player) SendAlert(name, message string, priority AlertPriority) {
	p.send(Alert{
		Name:     name,
		Priority: priority,
		Message:  message,
		Duration: defaultAlertDuration,
	})
}

func (p *Player) send(message any) {
	TrySend(p.broker.ToModel, MsgToModel{HasLevel: true, Level: p.level, Data: message})
}
