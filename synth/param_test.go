package synth

import (
	"math"
	"testing"
)

func TestParamExponentialRamp(t *testing.T) {
	p := newParam(0)
	p.setValueAtTime(0.01, 0)
	p.exponentialRampToValueAtTime(1, 100)
	if v := p.valueAt(0); v != 0.01 {
		t.Errorf("start value %v", v)
	}
	// halfway on an exponential ramp is the geometric mean
	if v := p.valueAt(50); math.Abs(float64(v)-0.1) > 1e-6 {
		t.Errorf("halfway value %v, want 0.1", v)
	}
	if v := p.valueAt(100); v != 1 {
		t.Errorf("end value %v", v)
	}
	if v := p.valueAt(1000); v != 1 || !p.settled() {
		t.Errorf("value after the ramp %v, settled %v", v, p.settled())
	}
}

func TestParamReleaseDuringAttack(t *testing.T) {
	p := newParam(0)
	p.setValueAtTime(0.001, 0)
	p.exponentialRampToValueAtTime(1, 100)
	mid := p.valueAt(40)
	// the release is scheduled, not cancelling the pending attack
	p.setValueAtTime(mid, 40)
	p.exponentialRampToValueAtTime(0.001, 200)
	if v := p.valueAt(100); v != 1 {
		t.Errorf("attack did not finish: %v", v)
	}
	if v := p.valueAt(150); v >= 1 || v <= 0.001 {
		t.Errorf("value during release %v", v)
	}
	if v := p.valueAt(200); v != 0.001 {
		t.Errorf("release end %v", v)
	}
}
