package explorer

import (
	"fmt"
	"maps"
	"text/template"

	"github.com/tonnetz-go/tonnetz"
	"github.com/tonnetz-go/tonnetz/lattice"
)

type (
	// Model is the state of the explorer: the materialized lattice, the
	// viewport, which nodes are selected and how they are tuned. It is owned
	// by the GUI goroutine; the player only ever sees it through messages on
	// the broker.
	Model struct {
		d modelData

		store *lattice.Store
		view  *lattice.Viewport

		playing      bool
		masterVolume float64
		level        float32
		voices       voiceManager

		changeLevel    int
		changeType     ChangeType
		changeSeverity ChangeSeverity
		changeSnapshot modelData
		prevUndoKind   string
		undoStack      []modelData
		redoStack      []modelData

		alerts  Alerts
		midi    midiState
		config  Config
		summary *template.Template
		broker  *Broker
	}

	// modelData is the part of the model that undo and redo restore.
	modelData struct {
		Selection     map[tonnetz.Coord]bool
		Overrides     map[tonnetz.Coord]int
		BaseFrequency float64
		Waveform      tonnetz.Waveform
	}

	// ChangeType tells which derived state has to be brought up to date
	// after a change.
	ChangeType int

	// ChangeSeverity tells whether consecutive changes of the same kind are
	// merged into one undo step.
	ChangeSeverity int
)

const (
	NoChange        ChangeType = 0
	SelectionChange ChangeType = 1 << iota
	TuningChange
	OctaveChange
	WaveformChange
	AllChanges = SelectionChange | TuningChange | OctaveChange | WaveformChange
)

const (
	MajorChange ChangeSeverity = iota
	MinorChange
)

const maxUndo = 256

// NewModel creates a model with the lattice grown to the configured initial
// radius. Sounds requested by the model are sent to broker.ToPlayer.
func NewModel(broker *Broker, config Config, midiContext MIDIContext) (*Model, error) {
	summary, err := parseSummaryTemplate(config.SummaryTemplate)
	if err != nil {
		return nil, fmt.Errorf("invalid summary template: %w", err)
	}
	if midiContext == nil {
		midiContext = NullMIDIContext{}
	}
	store := lattice.NewStore(config.InitialRadius, config.MaxExtent)
	m := &Model{
		d: modelData{
			Selection:     map[tonnetz.Coord]bool{},
			Overrides:     map[tonnetz.Coord]int{},
			BaseFrequency: config.BaseFrequency,
			Waveform:      config.Waveform,
		},
		store:        store,
		view:         lattice.NewViewport(store, config.ViewportConfig()),
		masterVolume: min(max(config.MasterGain, 0), 1),
		voices:       newVoiceManager(),
		midi:         midiState{context: midiContext, held: map[uint8]tonnetz.Coord{}},
		config:       config,
		summary:      summary,
		broker:       broker,
	}
	m.send(WaveformMsg{m.d.Waveform})
	m.send(MasterGainMsg{float32(m.masterVolume)})
	return m, nil
}

func (m *Model) Broker() *Broker                 { return m.broker }
func (m *Model) Config() Config                  { return m.config }
func (m *Model) Store() *lattice.Store           { return m.store }
func (m *Model) Viewport() *lattice.Viewport     { return m.view }
func (m *Model) Level() float32                  { return m.level }
func (m *Model) BaseFrequencyValue() float64     { return m.d.BaseFrequency }
func (m *Model) WaveformValue() tonnetz.Waveform { return m.d.Waveform }

// OctaveOffset returns the octave override of the node at c, 0 if it has
// none.
func (m *Model) OctaveOffset(c tonnetz.Coord) int { return m.d.Overrides[c] }

// Frequency returns the frequency the node at c would sound at with the
// current base frequency and its octave override.
func (m *Model) Frequency(c tonnetz.Coord) (float64, bool) {
	n, ok := m.store.Node(c)
	if !ok {
		return 0, false
	}
	return n.Frequency(m.d.BaseFrequency, m.d.Overrides[c]), true
}

// ProcessMsg handles a message sent to the model by the player or by a MIDI
// driver. A func() is run as is, which lets other goroutines hand work back
// to the goroutine owning the model.
func (m *Model) ProcessMsg(msg MsgToModel) {
	if msg.HasLevel {
		m.level = msg.Level
	}
	m.sendReleases()
	switch e := msg.Data.(type) {
	case nil:
	case VoiceEndedMsg:
		m.voiceEnded(e.Voice)
	case VoiceFailedMsg:
		m.voiceFailed(e.Voice, e.Err)
	case SynthLostMsg:
		m.voicesLost()
	case MIDINoteEvent:
		m.MIDI().handleNote(e)
	case Alert:
		m.Alerts().AddAlert(e)
	case func():
		e()
	}
}

// change opens a change of the given kind. The returned function must be
// called, typically deferred, when the change is done: it records the undo
// snapshot and brings the voices up to date. Changes can nest; the derived
// state is updated once, when the outermost change closes.
func (m *Model) change(kind string, t ChangeType, severity ChangeSeverity) func() {
	if m.changeLevel == 0 {
		m.changeSnapshot = m.d.Copy()
		m.changeType = NoChange
		m.changeSeverity = MinorChange
	}
	m.changeLevel++
	return func() {
		m.changeType |= t
		m.changeSeverity = min(m.changeSeverity, severity)
		m.changeLevel--
		if m.changeLevel > 0 {
			return
		}
		if m.changeType&SelectionChange != 0 {
			m.midi.forgetReleased(m.d.Selection)
		}
		// minor changes of the same kind, e.g. stepping an octave or typing a
		// frequency, coalesce into one undo step
		if m.changeSeverity == MajorChange || kind != m.prevUndoKind {
			m.undoStack = append(m.undoStack, m.changeSnapshot)
			if len(m.undoStack) > maxUndo {
				m.undoStack = m.undoStack[len(m.undoStack)-maxUndo:]
			}
		}
		m.prevUndoKind = kind
		m.redoStack = m.redoStack[:0]
		m.updateDerived(m.changeType)
	}
}

func (m *Model) updateDerived(t ChangeType) {
	if t&WaveformChange != 0 {
		m.send(WaveformMsg{m.d.Waveform})
	}
	if t&(TuningChange|OctaveChange) != 0 {
		m.retuneVoices()
	}
	if t&SelectionChange != 0 {
		m.syncVoices()
	}
}

func (m *Model) send(msg any) bool {
	if m.broker == nil {
		return true
	}
	return TrySend(m.broker.ToPlayer, msg)
}

func (d *modelData) Copy() modelData {
	return modelData{
		Selection:     maps.Clone(d.Selection),
		Overrides:     maps.Clone(d.Overrides),
		BaseFrequency: d.BaseFrequency,
		Waveform:      d.Waveform,
	}
}
