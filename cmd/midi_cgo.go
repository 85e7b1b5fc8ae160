//go:build cgo

package cmd

import (
	"github.com/tonnetz-go/tonnetz/explorer"
	"github.com/tonnetz-go/tonnetz/explorer/gomidi"
)

func NewMidiContext(broker *explorer.Broker) explorer.MIDIContext {
	return gomidi.NewContext(broker)
}
