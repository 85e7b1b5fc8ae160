package tonnetz_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/tonnetz-go/tonnetz"
)

func TestWavHeader(t *testing.T) {
	buf := tonnetz.AudioBuffer{{0.5, -0.5}, {1, -1}, {2, 0}}
	for _, tc := range []struct {
		pcm16          bool
		headerSize     int
		bytesPerSample int
		format         uint16
	}{
		{true, 44, 2, 1},
		{false, 58, 4, 3},
	} {
		data, err := buf.Wav(48000, tc.pcm16)
		if err != nil {
			t.Fatalf("Wav failed: %v", err)
		}
		if got, want := len(data), tc.headerSize+len(buf)*2*tc.bytesPerSample; got != want {
			t.Fatalf("pcm16=%v: got %d bytes, want %d", tc.pcm16, got, want)
		}
		if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
			t.Errorf("pcm16=%v: missing RIFF/WAVE tags", tc.pcm16)
		}
		if got := binary.LittleEndian.Uint32(data[4:]); int(got) != len(data)-8 {
			t.Errorf("pcm16=%v: RIFF chunk size %d, want %d", tc.pcm16, got, len(data)-8)
		}
		if got := binary.LittleEndian.Uint16(data[20:]); got != tc.format {
			t.Errorf("pcm16=%v: format %d, want %d", tc.pcm16, got, tc.format)
		}
		if got := binary.LittleEndian.Uint32(data[24:]); got != 48000 {
			t.Errorf("pcm16=%v: sample rate %d", tc.pcm16, got)
		}
		if string(data[tc.headerSize-8:tc.headerSize-4]) != "data" {
			t.Errorf("pcm16=%v: data chunk not where expected", tc.pcm16)
		}
	}
}

func TestRawPCM16Clips(t *testing.T) {
	data, err := tonnetz.AudioBuffer{{2, -2}, {0.5, 0}}.Raw(true)
	if err != nil {
		t.Fatal(err)
	}
	want := []int16{math.MaxInt16, math.MinInt16, 16384, 0}
	for i, w := range want {
		if got := int16(binary.LittleEndian.Uint16(data[2*i:])); got != w {
			t.Errorf("sample %d: got %d, want %d", i, got, w)
		}
	}
}
