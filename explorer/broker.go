package explorer

import (
	"time"

	"github.com/tonnetz-go/tonnetz"
)

type (
	// Broker carries messages between the model, owned by the GUI goroutine,
	// and the player, owned by the audio goroutine. Each recipient has one
	// buffered channel. Sends from the player side are always non-blocking,
	// so the audio thread can never wait on the GUI.
	//
	// CloseGUI has a capacity of 1, so anyone can request the GUI to close
	// by sending struct{}{} without blocking; if the channel is already full,
	// closing was already requested. FinishedGUI is closed by the GUI when it
	// is done.
	Broker struct {
		ToModel  chan MsgToModel
		ToPlayer chan any

		CloseGUI    chan struct{}
		FinishedGUI chan struct{}
	}

	// MsgToModel is a message sent to the model. The level is sent with every
	// rendered block and is not boxed; the infrequent messages go in Data.
	MsgToModel struct {
		HasLevel bool
		Level    float32

		Data any
	}

	// NoteOnMsg asks the player to start a voice.
	NoteOnMsg struct {
		Voice     int
		Frequency float64
		Waveform  tonnetz.Waveform
	}

	// NoteOffMsg asks the player to release a voice.
	NoteOffMsg struct {
		Voice int
	}

	// RetuneMsg changes the frequency of a live voice in place.
	RetuneMsg struct {
		Voice     int
		Frequency float64
	}

	WaveformMsg struct {
		tonnetz.Waveform
	}

	MasterGainMsg struct {
		Gain float32
	}

	// VoiceEndedMsg reports that a released voice finished its release ramp
	// and stopped.
	VoiceEndedMsg struct {
		Voice int
	}

	// VoiceFailedMsg reports that a voice could not be started.
	VoiceFailedMsg struct {
		Voice int
		Err   error
	}

	// SynthLostMsg reports that the synth was destroyed and every voice with
	// it.
	SynthLostMsg struct{}
)

func NewBroker() *Broker {
	return &Broker{
		ToModel:     make(chan MsgToModel, 1024),
		ToPlayer:    make(chan any, 1024),
		CloseGUI:    make(chan struct{}, 1),
		FinishedGUI: make(chan struct{}),
	}
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive is a helper function to block until a value is received from a
// channel, or timing out after t. ok will be false if the timeout occurred or
// if the channel is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
