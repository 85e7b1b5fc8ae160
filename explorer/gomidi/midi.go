// Package gomidi connects MIDI keyboards to the explorer through the RtMidi
// driver. It needs cgo.
package gomidi

import (
	"errors"
	"fmt"

	"github.com/tonnetz-go/tonnetz/explorer"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type (
	RTMIDIContext struct {
		driver    *rtmididrv.Driver
		currentIn drivers.In
		stop      func()
		broker    *explorer.Broker
	}

	RTMIDIDevice struct {
		context *RTMIDIContext
		in      drivers.In
	}
)

// NewContext opens the driver. If that fails, the context reports
// MIDISupportNoDriver and lists no inputs.
func NewContext(broker *explorer.Broker) *RTMIDIContext {
	m := RTMIDIContext{broker: broker}
	// there's not much we can do if this fails, so just use m.driver = nil to
	// indicate no driver available
	m.driver, _ = rtmididrv.New()
	return &m
}

func (m *RTMIDIContext) Inputs(yield func(explorer.MIDIInputDevice) bool) {
	if m.driver == nil {
		return
	}
	ins, err := m.driver.Ins()
	if err != nil {
		return
	}
	for i := 0; i < len(ins); i++ {
		if !yield(RTMIDIDevice{context: m, in: ins[i]}) {
			break
		}
	}
}

func (m *RTMIDIContext) Support() explorer.MIDISupport {
	if m.driver == nil {
		return explorer.MIDISupportNoDriver
	}
	return explorer.MIDISupported
}

// Open an input device while closing the currently open if necessary.
func (d RTMIDIDevice) Open() error {
	c := d.context
	if c.currentIn == d.in && d.in.IsOpen() {
		return nil
	}
	if c.driver == nil {
		return errors.New("no driver available")
	}
	c.closeCurrent()
	if err := d.in.Open(); err != nil {
		return fmt.Errorf("opening MIDI input failed: %w", err)
	}
	stop, err := midi.ListenTo(d.in, c.HandleMessage)
	if err != nil {
		d.in.Close()
		return fmt.Errorf("listening to MIDI input failed: %w", err)
	}
	c.currentIn, c.stop = d.in, stop
	return nil
}

func (d RTMIDIDevice) Close() error {
	if d.context.currentIn != d.in {
		return d.in.Close()
	}
	return d.context.closeCurrent()
}

func (d RTMIDIDevice) IsOpen() bool   { return d.in.IsOpen() }
func (d RTMIDIDevice) String() string { return d.in.String() }

func (c *RTMIDIContext) closeCurrent() error {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	if c.currentIn == nil {
		return nil
	}
	in := c.currentIn
	c.currentIn = nil
	if !in.IsOpen() {
		return nil
	}
	return in.Close()
}

func (c *RTMIDIContext) Close() {
	if c.driver == nil {
		return
	}
	c.closeCurrent()
	c.driver.Close()
}

// HandleMessage is called by the driver on its own goroutine. Note events
// are forwarded to the model; if the model's queue is full, the event is
// dropped.
func (c *RTMIDIContext) HandleMessage(msg midi.Message, timestampms int32) {
	var channel, key, velocity uint8
	isNoteOn := msg.GetNoteOn(&channel, &key, &velocity)
	isNoteOff := !isNoteOn && msg.GetNoteOff(&channel, &key, &velocity)
	if !isNoteOn && !isNoteOff {
		return
	}
	explorer.TrySend(c.broker.ToModel, explorer.MsgToModel{Data: explorer.MIDINoteEvent{
		On:       isNoteOn,
		Channel:  int(channel),
		Note:     key,
		Velocity: velocity,
	}})
}
