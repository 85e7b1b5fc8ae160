package explorer

import (
	"log"
	"time"
)

type (
	// Alerts is the queue of messages shown to the user, newest last. Alerts
	// with a name replace the previous alert with the same name, so a
	// repeating failure shows up only once.
	Alerts struct {
		alerts []Alert
	}

	Alert struct {
		Name      string
		Priority  AlertPriority
		Message   string
		Duration  time.Duration
		FadeLevel float64
	}

	AlertPriority int
)

const (
	Info AlertPriority = iota
	Warning
	Error
)

const (
	alertFadeTime        = 150 * time.Millisecond
	defaultAlertDuration = 3 * time.Second
)

// Alerts returns the alert queue of the model.
func (m *Model) Alerts() *Alerts { return &m.alerts }

func (m *Alerts) Len() int { return len(m.alerts) }

// Iterate yields the alerts oldest first.
func (m *Alerts) Iterate(yield func(index int, alert Alert) bool) {
	for i, a := range m.alerts {
		if !yield(i, a) {
			return
		}
	}
}

// Update advances the fade animations by d and drops expired alerts. It
// returns true while any alert is still visible or fading.
func (m *Alerts) Update(d time.Duration) (animating bool) {
	fade := float64(d) / float64(alertFadeTime)
	alive := m.alerts[:0]
	for _, a := range m.alerts {
		if a.Duration > 0 {
			a.Duration = max(a.Duration-d, 0)
			a.FadeLevel = min(a.FadeLevel+fade, 1)
		} else {
			a.FadeLevel = max(a.FadeLevel-fade, 0)
		}
		if a.Duration > 0 || a.FadeLevel > 0 {
			alive = append(alive, a)
			animating = true
		}
	}
	clear(m.alerts[len(alive):])
	m.alerts = alive
	return
}

func (m *Alerts) Add(message string, priority AlertPriority) {
	m.AddAlert(Alert{Priority: priority, Message: message})
}

func (m *Alerts) AddNamed(name, message string, priority AlertPriority) {
	m.AddAlert(Alert{Name: name, Priority: priority, Message: message})
}

// AddAlert queues an alert. Warnings and errors are also written to the log.
func (m *Alerts) AddAlert(a Alert) {
	if a.Duration <= 0 {
		a.Duration = defaultAlertDuration
	}
	if a.Priority >= Warning {
		log.Printf("%v: %s", a.Priority, a.Message)
	}
	if a.Name != "" {
		for i := range m.alerts {
			if m.alerts[i].Name == a.Name {
				a.FadeLevel = m.alerts[i].FadeLevel
				m.alerts[i] = a
				return
			}
		}
	}
	m.alerts = append(m.alerts, a)
}

func (p AlertPriority) String() string {
	switch p {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}
