package explorer_test

import (
	"math"
	"strings"
	"testing"

	"github.com/tonnetz-go/tonnetz"
	"github.com/tonnetz-go/tonnetz/explorer"
	"github.com/tonnetz-go/tonnetz/synth"
)

const tolerance = 1e-9

func newModel(t testing.TB) *explorer.Model {
	t.Helper()
	m, err := explorer.NewModel(explorer.NewBroker(), explorer.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m
}

// newPlayingModel returns a model wired to a player with a real synth, with
// playback on.
func newPlayingModel(t testing.TB) (*explorer.Model, *explorer.Player) {
	t.Helper()
	m := newModel(t)
	cfg := m.Config()
	p := explorer.NewPlayer(m.Broker(), synth.GoSynther{}, cfg.SampleRate, cfg.Envelope())
	m.Playing().Bool().Set(true)
	return m, p
}

// pump renders frames of audio and hands everything the player sent back to
// the model, as the GUI loop would.
func pump(m *explorer.Model, p *explorer.Player, frames int) {
	buf := make(tonnetz.AudioBuffer, 512)
	for frames > 0 {
		n := min(frames, len(buf))
		p.Process(buf[:n])
		frames -= n
		for {
			select {
			case msg := <-m.Broker().ToModel:
				m.ProcessMsg(msg)
				continue
			default:
			}
			break
		}
	}
}

// drain returns the messages waiting for the player.
func drain(b *explorer.Broker) []any {
	var ret []any
	for {
		select {
		case msg := <-b.ToPlayer:
			ret = append(ret, msg)
		default:
			return ret
		}
	}
}

func noteOns(msgs []any) []explorer.NoteOnMsg {
	var ret []explorer.NoteOnMsg
	for _, msg := range msgs {
		if n, ok := msg.(explorer.NoteOnMsg); ok {
			ret = append(ret, n)
		}
	}
	return ret
}

func assertFrequency(t *testing.T, m *explorer.Model, c tonnetz.Coord, want float64) {
	t.Helper()
	got, ok := m.Frequency(c)
	if !ok {
		t.Fatalf("node %v is not materialized", c)
	}
	if math.Abs(got-want) > tolerance {
		t.Errorf("frequency of %v: got %v, want %v", c, got, want)
	}
}

func TestSelectionScenario(t *testing.T) {
	m := newModel(t)
	if !m.BaseFrequency().Float().Set(261.63) {
		t.Fatalf("could not set base frequency")
	}
	origin, fifth := tonnetz.Coord{}, tonnetz.Coord{Fifths: 1}
	m.ToggleNode(origin, false).Do()
	if s := m.Summary(); !strings.Contains(s, "C4  1/1  261.63 Hz") {
		t.Errorf("summary %q does not list the origin", s)
	}
	assertFrequency(t, m, origin, 261.63)

	m.ToggleNode(fifth, false).Do()
	v, _ := m.Node(fifth)
	if v.Note != "G4" || v.Ratio != "3/2" {
		t.Errorf("fifth is %s %s, want G4 3/2", v.Note, v.Ratio)
	}
	assertFrequency(t, m, fifth, 392.445)
	if got := len(strings.Split(m.Summary(), "\n")); got != 2 {
		t.Errorf("summary has %d lines, want 2", got)
	}

	if !m.NodeOctave(fifth).Int().Set(-1) {
		t.Fatalf("setting the octave override failed")
	}
	v, _ = m.Node(fifth)
	if v.Note != "G3" || v.Ratio != "3/2 ×2^-1" {
		t.Errorf("lowered fifth is %s %s, want G3 3/2 ×2^-1", v.Note, v.Ratio)
	}
	assertFrequency(t, m, fifth, 196.2225)
	assertFrequency(t, m, origin, 261.63)
}

func TestEmptySummary(t *testing.T) {
	m := newModel(t)
	if s := m.Summary(); s != "No notes selected" {
		t.Errorf("got %q", s)
	}
}

func TestToggleNode(t *testing.T) {
	m := newModel(t)
	c := tonnetz.Coord{Fifths: 2, Thirds: -1}
	m.ToggleNode(c, false).Do()
	if !m.Selected(c) {
		t.Fatalf("node not selected after toggle")
	}
	m.ToggleNode(c, false).Do()
	if m.Selected(c) {
		t.Fatalf("node still selected after second toggle")
	}
	far := tonnetz.Coord{Fifths: 1000}
	if m.ToggleNode(far, false).Enabled() {
		t.Errorf("toggling a node that is not materialized should be disabled")
	}
}

func TestExclusiveToggle(t *testing.T) {
	m := newModel(t)
	a, b, c := tonnetz.Coord{}, tonnetz.Coord{Fifths: 1}, tonnetz.Coord{Thirds: 1}
	m.ToggleNode(a, false).Do()
	m.ToggleNode(b, false).Do()
	m.ToggleNode(c, true).Do()
	if got := m.SelectedNodes(); len(got) != 1 || got[0] != c {
		t.Errorf("exclusive toggle left %v selected, want only %v", got, c)
	}
}

func TestClearSelection(t *testing.T) {
	m := newModel(t)
	if m.ClearSelection().Enabled() {
		t.Errorf("clear should be disabled with nothing selected")
	}
	m.ToggleNode(tonnetz.Coord{}, false).Do()
	m.ToggleNode(tonnetz.Coord{Fifths: -1}, false).Do()
	m.ClearSelection().Do()
	if n := len(m.SelectedNodes()); n != 0 {
		t.Errorf("%d nodes still selected", n)
	}
}

func TestSelectedNodesOrder(t *testing.T) {
	m := newModel(t)
	coords := []tonnetz.Coord{{Fifths: 1, Thirds: 1}, {Fifths: -2}, {Fifths: 3, Thirds: -1}, {}}
	for _, c := range coords {
		m.ToggleNode(c, false).Do()
	}
	got := m.SelectedNodes()
	want := []tonnetz.Coord{{Fifths: 3, Thirds: -1}, {Fifths: -2}, {}, {Fifths: 1, Thirds: 1}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBaseFrequencyRejectsInvalid(t *testing.T) {
	m := newModel(t)
	f := m.BaseFrequency().Float()
	before := f.Value()
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1), explorer.MaxBaseFrequency + 1} {
		if f.Set(v) {
			t.Errorf("Set(%v) accepted", v)
		}
	}
	for _, s := range []string{"", "abc", "12Hz", "-5"} {
		if f.SetText(s) {
			t.Errorf("SetText(%q) accepted", s)
		}
	}
	if f.Value() != before {
		t.Errorf("rejected values changed the base frequency to %v", f.Value())
	}
	if !f.SetText(" 440 ") || f.Value() != 440 {
		t.Errorf("SetText(440) failed, value %v", f.Value())
	}
	if !m.ResetBaseFrequency().Enabled() {
		t.Errorf("reset should be enabled after a change")
	}
	m.ResetBaseFrequency().Do()
	if f.Value() != before {
		t.Errorf("reset gave %v, want %v", f.Value(), before)
	}
}

func TestNodeOctaveClamps(t *testing.T) {
	m := newModel(t)
	o := m.NodeOctave(tonnetz.Coord{Fifths: 1}).Int()
	o.Add(-10)
	if o.Value() != tonnetz.MinOctaveOffset {
		t.Errorf("got %d, want %d", o.Value(), tonnetz.MinOctaveOffset)
	}
	if o.Add(-1) {
		t.Errorf("Add below the minimum should report no change")
	}
	o.Set(100)
	if o.Value() != tonnetz.MaxOctaveOffset {
		t.Errorf("got %d, want %d", o.Value(), tonnetz.MaxOctaveOffset)
	}
	o.Set(0)
	if m.ResetOctaves().Enabled() {
		t.Errorf("no overrides should remain after setting 0")
	}
}

func TestNodeOctaveNoOpWrites(t *testing.T) {
	m := newModel(t)
	m.Playing().Bool().Set(true)
	c := tonnetz.Coord{Fifths: 1}
	m.ToggleNode(c, false).Do()
	o := m.NodeOctave(c).Int()
	o.Set(tonnetz.MaxOctaveOffset)
	drain(m.Broker())

	if o.Set(tonnetz.MaxOctaveOffset) {
		t.Errorf("writing the same value reported a change")
	}
	if o.Add(1) {
		t.Errorf("Add at the clamp reported a change")
	}
	o.Set(tonnetz.MaxOctaveOffset + 3)
	if msgs := drain(m.Broker()); len(msgs) != 0 {
		t.Errorf("no-op octave writes sent %v", msgs)
	}

	m.History().Undo().Do()
	if got := m.OctaveOffset(c); got != 0 {
		t.Errorf("first undo left offset %d; a no-op write pushed an undo step", got)
	}
	m.History().Undo().Do()
	if m.Selected(c) {
		t.Errorf("second undo did not reach the selection")
	}
	if m.History().Undo().Enabled() {
		t.Errorf("undo stack has steps left over from no-op writes")
	}
}

func TestUndoRedo(t *testing.T) {
	m := newModel(t)
	c := tonnetz.Coord{Thirds: 1}
	m.ToggleNode(c, false).Do()
	m.NodeOctave(c).Int().Add(1)
	m.NodeOctave(c).Int().Add(1) // coalesced with the previous step
	m.BaseFrequency().Float().Set(300)

	m.History().Undo().Do()
	if m.BaseFrequencyValue() == 300 {
		t.Fatalf("undo did not restore the base frequency")
	}
	m.History().Undo().Do()
	if got := m.OctaveOffset(c); got != 0 {
		t.Errorf("undo left octave offset %d, want 0", got)
	}
	if !m.Selected(c) {
		t.Errorf("undoing the octave change also undid the selection")
	}
	m.History().Undo().Do()
	if m.Selected(c) {
		t.Errorf("undo did not deselect")
	}
	if m.History().Undo().Enabled() {
		t.Errorf("undo stack should be empty")
	}
	m.History().Redo().Do()
	m.History().Redo().Do()
	if !m.Selected(c) || m.OctaveOffset(c) != 2 {
		t.Errorf("redo gave selected=%v offset=%d", m.Selected(c), m.OctaveOffset(c))
	}
}

func TestWaveformCycle(t *testing.T) {
	m := newModel(t)
	drain(m.Broker())
	w := m.Waveform()
	for i := 0; i < int(tonnetz.NumWaveforms); i++ {
		w.Cycle()
	}
	if w.Value() != int(tonnetz.Sine) {
		t.Errorf("cycling through all waveforms ended at %d", w.Value())
	}
	msgs := drain(m.Broker())
	if len(msgs) != int(tonnetz.NumWaveforms) {
		t.Errorf("got %d messages, want one per waveform change", len(msgs))
	}
	if got := explorer.WaveformName(tonnetz.Sawtooth); got != "Sawtooth" {
		t.Errorf("got %q", got)
	}
}
