package explorer

import (
	"math"
	"strconv"
	"strings"
)

type (
	Float struct {
		FloatData
	}

	FloatData interface {
		Value() float64
		Range() floatRange

		setValue(float64)
		change(kind string) func()
	}

	// floatRange is inclusive at both ends unless OpenMin is set.
	floatRange struct {
		Min, Max float64
		OpenMin  bool
	}

	BaseFrequency Model
	MasterVolume  Model
)

const MaxBaseFrequency = 20000

// Set writes value if it lies in the range. Unlike Int, a Float is never
// clamped: an out-of-range, NaN or infinite value is rejected and leaves the
// previous value in place.
func (v Float) Set(value float64) (ok bool) {
	if !v.Range().Contains(value) {
		return false
	}
	if value == v.Value() {
		return true
	}
	defer v.change("Set")()
	v.setValue(value)
	return true
}

// SetText parses text as a decimal number and sets it.
func (v Float) SetText(text string) (ok bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return false
	}
	return v.Set(value)
}

func (r floatRange) Contains(value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) || value > r.Max {
		return false
	}
	if r.OpenMin {
		return value > r.Min
	}
	return value >= r.Min
}

// Model methods

func (m *Model) BaseFrequency() *BaseFrequency { return (*BaseFrequency)(m) }
func (m *Model) MasterVolume() *MasterVolume   { return (*MasterVolume)(m) }

// BaseFrequency

func (v *BaseFrequency) Float() Float           { return Float{v} }
func (v *BaseFrequency) Value() float64         { return v.d.BaseFrequency }
func (v *BaseFrequency) setValue(value float64) { v.d.BaseFrequency = value }
func (v *BaseFrequency) Range() floatRange      { return floatRange{Min: 0, Max: MaxBaseFrequency, OpenMin: true} }
func (v *BaseFrequency) change(kind string) func() {
	return (*Model)(v).change("BaseFrequency."+kind, TuningChange, MinorChange)
}

// MasterVolume is applied by the player to the mixed output. It is not part
// of the undo history.

func (v *MasterVolume) Float() Float         { return Float{v} }
func (v *MasterVolume) Value() float64       { return v.masterVolume }
func (v *MasterVolume) Range() floatRange    { return floatRange{Min: 0, Max: 1} }
func (v *MasterVolume) change(string) func() { return func() {} }
func (v *MasterVolume) setValue(value float64) {
	v.masterVolume = value
	(*Model)(v).send(MasterGainMsg{float32(value)})
}
