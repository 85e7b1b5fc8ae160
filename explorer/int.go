package explorer

import (
	"github.com/tonnetz-go/tonnetz"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	Int struct {
		IntData
	}

	IntData interface {
		Value() int
		Range() intRange

		setValue(int)
		change(kind string) func()
	}

	intRange struct {
		Min, Max int
	}

	// NodeOctave is the octave override of a single node.
	NodeOctave struct {
		*Model
		coord tonnetz.Coord
	}

	Waveform Model
)

func (v Int) Add(delta int) (ok bool) {
	r := v.Range()
	value := r.Clamp(v.Value() + delta)
	if value == v.Value() || value < r.Min || value > r.Max {
		return false
	}
	defer v.change("Add")()
	v.setValue(value)
	return true
}

func (v Int) Set(value int) (ok bool) {
	r := v.Range()
	value = v.Range().Clamp(value)
	if value == v.Value() || value < r.Min || value > r.Max {
		return false
	}
	defer v.change("Set")()
	v.setValue(value)
	return true
}

func (r intRange) Clamp(value int) int {
	return max(min(value, r.Max), r.Min)
}

// Model methods

// NodeOctave returns the octave override of the node at c as an Int. The
// override has no effect on the node's identity, only on its frequency.
func (m *Model) NodeOctave(c tonnetz.Coord) NodeOctave { return NodeOctave{Model: m, coord: c} }

func (m *Model) Waveform() *Waveform { return (*Waveform)(m) }

// NodeOctave

func (v NodeOctave) Int() Int             { return Int{v} }
func (v NodeOctave) Value() int           { return v.d.Overrides[v.coord] }
func (v NodeOctave) Coord() tonnetz.Coord { return v.coord }
func (v NodeOctave) setValue(value int) {
	if value == 0 {
		delete(v.d.Overrides, v.coord)
		return
	}
	v.d.Overrides[v.coord] = value
}
func (v NodeOctave) Range() intRange {
	return intRange{tonnetz.MinOctaveOffset, tonnetz.MaxOctaveOffset}
}
func (v NodeOctave) change(kind string) func() {
	return v.Model.change("NodeOctave"+v.coord.String()+"."+kind, OctaveChange, MinorChange)
}

// Waveform

func (v *Waveform) Int() Int           { return Int{v} }
func (v *Waveform) Value() int         { return int(v.d.Waveform) }
func (v *Waveform) setValue(value int) { v.d.Waveform = tonnetz.Waveform(value) }
func (v *Waveform) Range() intRange    { return intRange{0, int(tonnetz.NumWaveforms) - 1} }
func (v *Waveform) change(kind string) func() {
	return (*Model)(v).change("Waveform."+kind, WaveformChange, MinorChange)
}

// Cycle steps to the next waveform, wrapping around after the last one.
func (v *Waveform) Cycle() {
	v.Int().Set((v.Value() + 1) % int(tonnetz.NumWaveforms))
}

var waveformCaser = cases.Title(language.English)

// WaveformName returns the display name of a waveform, e.g. "Sawtooth".
func WaveformName(w tonnetz.Waveform) string { return waveformCaser.String(w.String()) }
