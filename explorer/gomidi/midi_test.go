package gomidi

import (
	"testing"

	"github.com/tonnetz-go/tonnetz/explorer"
	"gitlab.com/gomidi/midi/v2"
)

func TestHandleMessageForwardsNotes(t *testing.T) {
	c := &RTMIDIContext{broker: explorer.NewBroker()}
	c.HandleMessage(midi.NoteOn(2, 64, 90), 0)
	c.HandleMessage(midi.NoteOff(2, 64), 0)
	c.HandleMessage(midi.ControlChange(0, 7, 100), 0)

	var got []explorer.MIDINoteEvent
	for len(c.broker.ToModel) > 0 {
		msg := <-c.broker.ToModel
		e, ok := msg.Data.(explorer.MIDINoteEvent)
		if !ok {
			t.Fatalf("unexpected message %#v", msg.Data)
		}
		got = append(got, e)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if !got[0].On || got[0].Note != 64 || got[0].Velocity != 90 || got[0].Channel != 2 {
		t.Errorf("note on decoded as %+v", got[0])
	}
	if got[1].On || got[1].Note != 64 {
		t.Errorf("note off decoded as %+v", got[1])
	}
}

func TestNoDriverSupport(t *testing.T) {
	c := &RTMIDIContext{}
	if c.Support() != explorer.MIDISupportNoDriver {
		t.Errorf("context without a driver reports %v", c.Support())
	}
	for range c.Inputs {
		t.Errorf("context without a driver lists inputs")
	}
	c.Close()
}
