package explorer

import (
	"fmt"
	"strings"

	"github.com/tonnetz-go/tonnetz"
)

type MIDIModel Model

func (m *Model) MIDI() *MIDIModel { return (*MIDIModel)(m) }

type (
	midiState struct {
		context      MIDIContext
		inputs       []MIDIInputDevice
		currentInput MIDIInputDevice

		// held maps a pressed key to the node it selected, so that releasing
		// the key deselects the same node.
		held map[uint8]tonnetz.Coord
	}

	MIDIContext interface {
		Inputs(yield func(input MIDIInputDevice) bool)
		Close()
		Support() MIDISupport
	}

	MIDIInputDevice interface {
		Open() error
		Close() error
		IsOpen() bool
		String() string
	}

	MIDISupport int

	// MIDINoteEvent is a key press or release received from a MIDI input.
	// Drivers send it to the model wrapped in a MsgToModel.
	MIDINoteEvent struct {
		On       bool
		Channel  int
		Note     uint8
		Velocity uint8
	}

	midiInput MIDIModel
)

const (
	MIDISupportNotCompiled MIDISupport = iota
	MIDISupportNoDriver
	MIDISupported
)

// Refresh
func (m *MIDIModel) Refresh() Action { return MakeAction((*midiRefresh)(m)) }

type midiRefresh MIDIModel

func (m *midiRefresh) Do() {
	if m.midi.context == nil {
		return
	}
	m.midi.inputs = m.midi.inputs[:0]
	for i := range m.midi.context.Inputs {
		m.midi.inputs = append(m.midi.inputs, i)
		if m.midi.currentInput != nil && i.String() == m.midi.currentInput.String() {
			m.midi.currentInput.Close()
			m.midi.currentInput = nil
			if err := i.Open(); err != nil {
				(*Model)(m).Alerts().Add(fmt.Sprintf("Failed to reopen MIDI input port: %s", err.Error()), Error)
				continue
			}
			m.midi.currentInput = i
		}
	}
}

// Input selects the open MIDI input: 0 closes the current input, i > 0 opens
// the i:th device found by the last Refresh.
func (m *MIDIModel) Input() Int { return Int{(*midiInput)(m)} }

// OpenByPrefix opens the first input whose name starts with prefix. An empty
// prefix opens the first input.
func (m *MIDIModel) OpenByPrefix(prefix string) bool {
	m.Refresh().Do()
	for i, d := range m.midi.inputs {
		if strings.HasPrefix(d.String(), prefix) {
			return m.Input().Set(i + 1)
		}
	}
	return false
}

func (m *midiInput) Value() int {
	if m.midi.currentInput == nil {
		return 0
	}
	for i, d := range m.midi.inputs {
		if d == m.midi.currentInput {
			return i + 1
		}
	}
	return 0
}
func (m *midiInput) Range() intRange      { return intRange{Min: 0, Max: len(m.midi.inputs)} }
func (m *midiInput) change(string) func() { return func() {} }
func (m *midiInput) setValue(val int) {
	if m.midi.currentInput != nil {
		if err := m.midi.currentInput.Close(); err != nil {
			(*Model)(m).Alerts().Add(fmt.Sprintf("Failed to close current MIDI input port: %s", err.Error()), Error)
		}
		m.midi.currentInput = nil
	}
	if val == 0 {
		return
	}
	newInput := m.midi.inputs[val-1]
	if err := newInput.Open(); err != nil {
		(*Model)(m).Alerts().Add(fmt.Sprintf("Failed to open MIDI input port: %s", err.Error()), Error)
		return
	}
	m.midi.currentInput = newInput
	(*Model)(m).Alerts().Add(fmt.Sprintf("Opened MIDI input port: %s", newInput.String()), Info)
}

// InputName returns the display name of an Input value.
func (m *MIDIModel) InputName(value int) string {
	if value < 0 || value > len(m.midi.inputs) {
		return ""
	}
	if value == 0 {
		switch m.midi.context.Support() {
		case MIDISupportNotCompiled:
			return "Not compiled"
		case MIDISupportNoDriver:
			return "No driver"
		default:
			return "Closed"
		}
	}
	return m.midi.inputs[value-1].String()
}

// handleNote selects, on key press, the materialized node closest to the
// origin whose pitch class matches the key, and deselects it again on
// release. Nodes that were already selected are left alone.
func (m *MIDIModel) handleNote(e MIDINoteEvent) {
	if !e.On || e.Velocity == 0 {
		c, ok := m.midi.held[e.Note]
		if !ok {
			return
		}
		delete(m.midi.held, e.Note)
		if !m.d.Selection[c] {
			return
		}
		defer (*Model)(m).change("MIDINoteOff", SelectionChange, MajorChange)()
		delete(m.d.Selection, c)
		return
	}
	c, ok := m.nearestNode(tonnetz.PitchClassIndex(int(e.Note)))
	if !ok || m.d.Selection[c] {
		return
	}
	m.midi.held[e.Note] = c
	defer (*Model)(m).change("MIDINoteOn", SelectionChange, MajorChange)()
	m.d.Selection[c] = true
}

func (m *MIDIModel) nearestNode(pitchClass int) (tonnetz.Coord, bool) {
	var best tonnetz.Coord
	found := false
	for n := range m.store.Nodes {
		if tonnetz.PitchClassIndex(n.Semitones) != pitchClass {
			continue
		}
		d, bd := n.Coord.Distance(), best.Distance()
		if !found || d < bd || (d == bd && n.Coord.Less(best)) {
			best, found = n.Coord, true
		}
	}
	return best, found
}

// forgetReleased drops held keys whose node was deselected some other way.
func (s *midiState) forgetReleased(selection map[tonnetz.Coord]bool) {
	for note, c := range s.held {
		if !selection[c] {
			delete(s.held, note)
		}
	}
}

// NullMIDIContext is a mockup MIDIContext if you don't want to create a real
// one.
type NullMIDIContext struct{}

func (m NullMIDIContext) Inputs(yield func(input MIDIInputDevice) bool) {}
func (m NullMIDIContext) Close()                                        {}
func (m NullMIDIContext) Support() MIDISupport                          { return MIDISupportNotCompiled }
