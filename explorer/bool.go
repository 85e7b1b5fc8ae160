package explorer

type (
	Bool struct {
		BoolData
	}

	BoolData interface {
		Value() bool
		Enabled() bool
		setValue(bool)
	}

	Playing Model
)

func (v Bool) Toggle() {
	v.Set(!v.Value())
}

func (v Bool) Set(value bool) {
	if v.Enabled() && v.Value() != value {
		v.setValue(value)
	}
}

// Model methods

func (m *Model) Playing() *Playing { return (*Playing)(m) }

// Playing methods

// Playing turns the whole output on and off. Pausing releases every voice;
// resuming starts a voice for each selected node. It is not part of the undo
// history.
func (m *Playing) Bool() Bool  { return Bool{m} }
func (m *Playing) Value() bool { return m.playing }
func (m *Playing) setValue(val bool) {
	m.playing = val
	(*Model)(m).syncVoices()
}
func (m *Playing) Enabled() bool { return true }
