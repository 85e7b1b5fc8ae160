//go:build !cgo

package cmd

import (
	"github.com/tonnetz-go/tonnetz/explorer"
)

func NewMidiContext(broker *explorer.Broker) explorer.MIDIContext {
	// with no cgo, we cannot use MIDI, so return a null context
	return explorer.NullMIDIContext{}
}
