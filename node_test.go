package tonnetz_test

import (
	"math"
	"testing"

	"github.com/tonnetz-go/tonnetz"
)

func TestNodeNames(t *testing.T) {
	for _, tc := range []struct {
		c           tonnetz.Coord
		note, ratio string
	}{
		{tonnetz.Coord{}, "C4", "1/1"},
		{tonnetz.Coord{Fifths: 1}, "G4", "3/2"},
		{tonnetz.Coord{Thirds: 1}, "E4", "5/4"},
		{tonnetz.Coord{Fifths: -1}, "F4", "4/3"},
		{tonnetz.Coord{Thirds: -1}, "Ab4", "8/5"},
		{tonnetz.Coord{Fifths: 2}, "D4", "9/8"},
		{tonnetz.Coord{Fifths: 1, Thirds: 1}, "B4", "15/8"},
		{tonnetz.Coord{Fifths: 4}, "E4", "81/64"},
	} {
		n := tonnetz.NewNode(tc.c)
		if got := n.NoteName(0); got != tc.note {
			t.Errorf("%v: note %s, want %s", tc.c, got, tc.note)
		}
		if got := n.RatioLabel(0); got != tc.ratio {
			t.Errorf("%v: ratio %s, want %s", tc.c, got, tc.ratio)
		}
	}
}

func TestNodeIsConsistent(t *testing.T) {
	for f := -6; f <= 6; f++ {
		for th := -2; th <= 2; th++ {
			c := tonnetz.Coord{Fifths: f, Thirds: th}
			n := tonnetz.NewNode(c)
			if n.Ratio.Cmp(tonnetz.Unison) < 0 || n.Ratio.Cmp(tonnetz.Octave) >= 0 {
				t.Errorf("%v: ratio %s outside [1, 2)", c, n.Ratio)
			}
			if back := n.Ratio.Mul(tonnetz.Octave.Pow(n.OctaveShift)); !back.Equal(n.Raw) {
				t.Errorf("%v: %s * 2^%d != %s", c, n.Ratio, n.OctaveShift, n.Raw)
			}
			if want := f*7 + th*4 - 12*n.OctaveShift; n.Semitones != want {
				t.Errorf("%v: semitones %d, want %d", c, n.Semitones, want)
			}
			cents := 12 * math.Log2(n.Ratio.Float64())
			if math.Abs(cents-float64(n.Semitones)) > 0.5 {
				t.Errorf("%v: %d semitones for a ratio of %.3f equal-tempered semitones", c, n.Semitones, cents)
			}
			if again := tonnetz.NewNode(c); !again.Ratio.Equal(n.Ratio) || again.PitchClass != n.PitchClass {
				t.Errorf("%v: NewNode is not deterministic", c)
			}
		}
	}
}

func TestFrequency(t *testing.T) {
	n := tonnetz.NewNode(tonnetz.Coord{Fifths: 1})
	if got := n.Frequency(261.63, 0); math.Abs(got-392.445) > 1e-9 {
		t.Errorf("got %v", got)
	}
	if got := n.Frequency(261.63, -1); math.Abs(got-196.2225) > 1e-9 {
		t.Errorf("got %v", got)
	}
	if got := n.NoteName(-1); got != "G3" {
		t.Errorf("got %s", got)
	}
	if got := n.RatioLabel(-1); got != "3/2 ×2^-1" {
		t.Errorf("got %s", got)
	}
}

func TestPositionRoundTrip(t *testing.T) {
	for _, c := range []tonnetz.Coord{{}, {Fifths: 3, Thirds: -2}, {Fifths: -5, Thirds: 4}} {
		f, th := tonnetz.FromPosition(tonnetz.Position(c))
		if math.Abs(f-float64(c.Fifths)) > 1e-9 || math.Abs(th-float64(c.Thirds)) > 1e-9 {
			t.Errorf("%v came back as (%v, %v)", c, f, th)
		}
	}
	p := tonnetz.Position(tonnetz.Coord{Thirds: 1})
	if p.X != 0.5 || p.Y >= 0 {
		t.Errorf("a third up is at %+v", p)
	}
}

func TestWaveformText(t *testing.T) {
	for w := tonnetz.Sine; w < tonnetz.NumWaveforms; w++ {
		text, err := w.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back tonnetz.Waveform
		if err := back.UnmarshalText(text); err != nil || back != w {
			t.Errorf("%v came back as %v, %v", w, back, err)
		}
	}
	if _, err := tonnetz.ParseWaveform("noise"); err == nil {
		t.Errorf("unknown waveform parsed")
	}
}

func TestPitchClassIndex(t *testing.T) {
	for _, tc := range []struct{ semitones, want int }{
		{0, 0}, {7, 7}, {12, 0}, {19, 7}, {-5, 7}, {-12, 0}, {-13, 11},
	} {
		if got := tonnetz.PitchClassIndex(tc.semitones); got != tc.want {
			t.Errorf("PitchClassIndex(%d) = %d, want %d", tc.semitones, got, tc.want)
		}
	}
	for f := -6; f <= 6; f++ {
		for th := -3; th <= 3; th++ {
			n := tonnetz.NewNode(tonnetz.Coord{Fifths: f, Thirds: th})
			want := tonnetz.PitchClassIndex(f*tonnetz.SemitonesPerFifth + th*tonnetz.SemitonesPerThird)
			if got := tonnetz.PitchClassIndex(n.Semitones); got != want {
				t.Errorf("%v: pitch class %d, want %d", n.Coord, got, want)
			}
		}
	}
}
