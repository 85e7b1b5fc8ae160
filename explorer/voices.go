package explorer

import (
	"fmt"
	"maps"
	"slices"

	"github.com/tonnetz-go/tonnetz"
)

type (
	// voiceManager remembers which node each live voice sounds. A node has
	// at most one held voice; released voices are kept by handle until the
	// player reports that they ended, so a node can be selected again while
	// its previous voice is still fading out. A release the player has not
	// received yet stays in unsent and is sent again before anything else.
	voiceManager struct {
		sounding  map[tonnetz.Coord]*liveVoice
		releasing map[int]tonnetz.Coord
		unsent    map[int]tonnetz.Coord
		nextID    int
	}

	liveVoice struct {
		id        int
		frequency float64
	}
)

func newVoiceManager() voiceManager {
	return voiceManager{
		sounding:  map[tonnetz.Coord]*liveVoice{},
		releasing: map[int]tonnetz.Coord{},
		unsent:    map[int]tonnetz.Coord{},
		nextID:    1,
	}
}

// Sounding reports whether the node at c is audible: it has a held voice or
// a released one that the player has not yet reported as ended.
func (m *Model) Sounding(c tonnetz.Coord) bool {
	if _, ok := m.voices.sounding[c]; ok {
		return true
	}
	for _, rc := range m.voices.releasing {
		if rc == c {
			return true
		}
	}
	for _, rc := range m.voices.unsent {
		if rc == c {
			return true
		}
	}
	return false
}

// Held reports whether the node at c has a voice that has not been released.
func (m *Model) Held(c tonnetz.Coord) bool {
	_, ok := m.voices.sounding[c]
	return ok
}

// NumSounding returns the number of voices that have not been released.
func (m *Model) NumSounding() int { return len(m.voices.sounding) }

// NumReleasing returns the number of released voices still fading out,
// including those whose release is still waiting to reach the player.
func (m *Model) NumReleasing() int { return len(m.voices.releasing) + len(m.voices.unsent) }

// syncVoices starts a voice for every selected node that has none and
// releases the voices of the nodes no longer selected. While paused nothing
// sounds.
func (m *Model) syncVoices() {
	m.sendReleases()
	for _, c := range slices.SortedFunc(maps.Keys(m.voices.sounding), compareCoords) {
		if !m.playing || !m.d.Selection[c] {
			m.releaseVoice(c)
		}
	}
	if !m.playing {
		return
	}
	for _, c := range m.SelectedNodes() {
		if _, ok := m.voices.sounding[c]; !ok {
			m.startVoice(c)
		}
	}
}

func (m *Model) startVoice(c tonnetz.Coord) {
	freq, ok := m.Frequency(c)
	if !ok {
		return
	}
	id := m.voices.nextID
	m.voices.nextID++
	if !m.send(NoteOnMsg{Voice: id, Frequency: freq, Waveform: m.d.Waveform}) {
		m.Alerts().AddNamed("VoiceStart", fmt.Sprintf("Could not start a voice for %v: player is not responding", c), Error)
		return
	}
	m.voices.sounding[c] = &liveVoice{id: id, frequency: freq}
}

func (m *Model) releaseVoice(c tonnetz.Coord) {
	v, ok := m.voices.sounding[c]
	if !ok {
		return
	}
	delete(m.voices.sounding, c)
	m.voices.unsent[v.id] = c
	m.sendReleases()
}

// sendReleases sends the releases the player did not receive yet. A voice
// counts as releasing only once its release was delivered.
func (m *Model) sendReleases() {
	if len(m.voices.unsent) == 0 {
		return
	}
	for _, id := range slices.Sorted(maps.Keys(m.voices.unsent)) {
		if !m.send(NoteOffMsg{Voice: id}) {
			return
		}
		m.voices.releasing[id] = m.voices.unsent[id]
		delete(m.voices.unsent, id)
	}
}

// retuneVoices sends a new frequency to every sounding voice whose target
// frequency changed.
func (m *Model) retuneVoices() {
	for _, c := range slices.SortedFunc(maps.Keys(m.voices.sounding), compareCoords) {
		v := m.voices.sounding[c]
		freq, ok := m.Frequency(c)
		if !ok || freq == v.frequency {
			continue
		}
		if m.send(RetuneMsg{Voice: v.id, Frequency: freq}) {
			v.frequency = freq
		}
	}
}

func (m *Model) voiceEnded(id int) {
	_, releasing := m.voices.releasing[id]
	_, unsent := m.voices.unsent[id]
	if releasing || unsent {
		delete(m.voices.releasing, id)
		delete(m.voices.unsent, id)
		return
	}
	m.forgetVoice(id)
}

func (m *Model) voiceFailed(id int, err error) {
	delete(m.voices.releasing, id)
	delete(m.voices.unsent, id)
	if c, ok := m.forgetVoice(id); ok {
		m.Alerts().AddNamed("VoiceStart", fmt.Sprintf("Could not sound %v: %v", c, err), Error)
	}
}

// forgetVoice drops a sounding voice by handle. Stale handles, e.g. of a
// voice already replaced by a newer one, are ignored.
func (m *Model) forgetVoice(id int) (tonnetz.Coord, bool) {
	for c, v := range m.voices.sounding {
		if v.id == id {
			delete(m.voices.sounding, c)
			return c, true
		}
	}
	return tonnetz.Coord{}, false
}

func (m *Model) voicesLost() {
	clear(m.voices.sounding)
	clear(m.voices.releasing)
	clear(m.voices.unsent)
}
