package synth

import "math"

type (
	// param is a gain value automated on the sample clock. Events are kept
	// sorted by time; the segment between two events is either held
	// (setValue) or an exponential ramp ending at the later event. Scheduling
	// never cancels pending events, so a release issued during an attack
	// ramp finishes the attack segment before ramping down.
	param struct {
		from   paramEvent // the last event that has been passed
		events []paramEvent
	}

	paramEvent struct {
		kind  eventKind
		time  int64
		value float32
	}

	eventKind int
)

const (
	setValue eventKind = iota
	exponentialRamp
)

func newParam(value float32) param {
	return param{from: paramEvent{kind: setValue, value: value}}
}

// setValueAtTime holds value from time onwards.
func (p *param) setValueAtTime(value float32, time int64) {
	p.insert(paramEvent{kind: setValue, time: time, value: value})
}

// exponentialRampToValueAtTime ramps exponentially from the previous event's
// value so that value is reached at time. Both ends must be positive.
func (p *param) exponentialRampToValueAtTime(value float32, time int64) {
	p.insert(paramEvent{kind: exponentialRamp, time: time, value: value})
}

func (p *param) insert(e paramEvent) {
	i := len(p.events)
	for i > 0 && p.events[i-1].time > e.time {
		i--
	}
	p.events = append(p.events, paramEvent{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = e
}

// valueAt returns the value at time t and drops the events that t has
// passed. Calls must use non-decreasing t.
func (p *param) valueAt(t int64) float32 {
	for len(p.events) > 0 && p.events[0].time <= t {
		p.from = p.events[0]
		p.events = p.events[1:]
	}
	if len(p.events) == 0 {
		return p.from.value
	}
	next := p.events[0]
	if next.kind != exponentialRamp || next.time <= p.from.time {
		return p.from.value
	}
	v0, v1 := p.from.value, next.value
	if v0 <= 0 || v1 <= 0 {
		return v0
	}
	x := float64(t-p.from.time) / float64(next.time-p.from.time)
	return v0 * float32(math.Pow(float64(v1/v0), x))
}

// end returns the time of the last scheduled event, or of the last passed
// one when nothing is pending.
func (p *param) end() int64 {
	if len(p.events) == 0 {
		return p.from.time
	}
	return p.events[len(p.events)-1].time
}

// settled reports whether no further automation is pending.
func (p *param) settled() bool {
	return len(p.events) == 0
}
