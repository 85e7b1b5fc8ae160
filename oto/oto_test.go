package oto

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/tonnetz-go/tonnetz"
)

func TestEncodeFloat32LE(t *testing.T) {
	buffer := tonnetz.AudioBuffer{{0.5, -0.25}, {1, 0}}
	dst := make([]byte, 16)
	if n := EncodeFloat32LE(dst, buffer); n != 16 {
		t.Fatalf("wrote %d bytes, want 16", n)
	}
	want := []float32{0.5, -0.25, 1, 0}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(dst[i*4:]))
		if got != w {
			t.Errorf("sample %d: got %v, want %v", i, got, w)
		}
	}
}

func TestStreamReaderPullsWholeFrames(t *testing.T) {
	calls := 0
	r := &streamReader{fill: func(b tonnetz.AudioBuffer) error {
		calls++
		b.Fill(0.125)
		return nil
	}}
	p := make([]byte, 8*10+3)
	n, err := r.Read(p)
	if err != nil || n != 80 {
		t.Fatalf("Read returned %d, %v; want 80, nil", n, err)
	}
	if calls != 1 {
		t.Errorf("fill called %d times", calls)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(p[76:])); got != 0.125 {
		t.Errorf("last sample %v", got)
	}
	if n, _ := r.Read(p[:7]); n != 0 {
		t.Errorf("partial frame read returned %d bytes", n)
	}
}

func TestStreamReaderStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	r := &streamReader{fill: func(tonnetz.AudioBuffer) error { return boom }}
	p := make([]byte, 64)
	if _, err := r.Read(p); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
	if _, err := r.Read(p); !errors.Is(err, boom) {
		t.Errorf("reader recovered after an error: %v", err)
	}
	if !errors.Is(r.Err(), boom) {
		t.Errorf("Err() = %v", r.Err())
	}
}
