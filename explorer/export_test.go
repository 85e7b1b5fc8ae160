package explorer_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/tonnetz-go/tonnetz"
	"github.com/tonnetz-go/tonnetz/explorer"
	"github.com/tonnetz-go/tonnetz/synth"
)

type closingBuffer struct {
	bytes.Buffer
	closed chan struct{}
}

func (b *closingBuffer) Close() error {
	close(b.closed)
	return nil
}

func TestRenderChord(t *testing.T) {
	env := tonnetz.DefaultEnvelope
	hold := 100 * time.Millisecond
	buf, err := explorer.RenderChord(synth.GoSynther{}, 44100, env, tonnetz.Sine, 1, []float64{261.63, 392.445}, hold)
	if err != nil {
		t.Fatalf("RenderChord failed: %v", err)
	}
	minFrames := int((hold + env.Release).Seconds() * 44100)
	if len(buf) < minFrames {
		t.Errorf("got %d frames, want at least %d", len(buf), minFrames)
	}
	var peak float32
	for _, f := range buf[:len(buf)/2] {
		peak = max(peak, f[0], -f[0])
	}
	if peak == 0 {
		t.Errorf("rendered chord is silent")
	}
	if last := buf[len(buf)-1]; last != [2]float32{} {
		t.Errorf("chord does not end in silence: %v", last)
	}
}

func TestRenderChordRejectsBadFrequency(t *testing.T) {
	_, err := explorer.RenderChord(synth.GoSynther{}, 44100, tonnetz.DefaultEnvelope, tonnetz.Sine, 1, []float64{30000}, time.Millisecond)
	if err == nil {
		t.Errorf("frequency above Nyquist accepted")
	}
}

func TestWriteWav(t *testing.T) {
	m := newModel(t)
	empty := &closingBuffer{closed: make(chan struct{})}
	m.WriteWav(empty, synth.GoSynther{})
	<-empty.closed
	if empty.Len() != 0 || m.Alerts().Len() == 0 {
		t.Errorf("exporting an empty selection should only warn")
	}

	m.ToggleNode(tonnetz.Coord{}, false).Do()
	out := &closingBuffer{closed: make(chan struct{})}
	m.WriteWav(out, synth.GoSynther{})
	<-out.closed
	if got := out.Bytes(); len(got) < 44 || string(got[:4]) != "RIFF" {
		t.Fatalf("export did not produce a .wav file (%d bytes)", len(got))
	}
	msg, ok := explorer.TimeoutReceive(m.Broker().ToModel, time.Second)
	if !ok {
		t.Fatalf("no message after export")
	}
	if a, ok := msg.Data.(explorer.Alert); !ok || a.Priority != explorer.Info {
		t.Errorf("export finished with %#v", msg.Data)
	}
}
