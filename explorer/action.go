package explorer

import (
	"slices"

	"github.com/tonnetz-go/tonnetz"
)

type (
	// Action describes a user action that can be performed on the model, which
	// can be initiated by calling the Do() method. It is usually initiated by a
	// button press or a menu item. Action advertises whether it is enabled, so
	// UI can e.g. gray out buttons when the underlying action is not allowed.
	// The underlying Doer can optionally implement the Enabler interface to
	// decide if the action is enabled or not; if it does not implement the
	// Enabler interface, the action is always allowed.
	Action struct {
		doer Doer
	}

	// Doer is an interface that defines a single Do() method, which is called
	// when an action is performed.
	Doer interface {
		Do()
	}

	// Enabler is an interface that defines a single Enabled() method, which
	// is used by the UI to check if UI Action/Bool/Int etc. is enabled or not.
	Enabler interface {
		Enabled() bool
	}
)

// Action methods

func MakeAction(doer Doer) Action {
	return Action{doer: doer}
}

func (a Action) Do() {
	e, ok := a.doer.(Enabler)
	if ok && !e.Enabled() {
		return
	}
	if a.doer != nil {
		a.doer.Do()
	}
}

func (a Action) Enabled() bool {
	if a.doer == nil {
		return false // no doer, not allowed
	}
	e, ok := a.doer.(Enabler)
	if !ok {
		return true // not enabler, always allowed
	}
	return e.Enabled()
}

// toggleNode
type toggleNode struct {
	coord     tonnetz.Coord
	exclusive bool
	*Model
}

// ToggleNode returns an Action that flips the selection of the node at c. An
// exclusive toggle (the modifier-click gesture) makes c the only selected
// node instead.
func (m *Model) ToggleNode(c tonnetz.Coord, exclusive bool) Action {
	return MakeAction(toggleNode{coord: c, exclusive: exclusive, Model: m})
}

func (a toggleNode) Enabled() bool {
	_, ok := a.store.Node(a.coord)
	return ok
}

func (a toggleNode) Do() {
	if a.exclusive {
		if len(a.d.Selection) == 1 && a.d.Selection[a.coord] {
			return
		}
		defer a.change("SoloNode", SelectionChange, MajorChange)()
		clear(a.d.Selection)
		a.d.Selection[a.coord] = true
		return
	}
	defer a.change("ToggleNode", SelectionChange, MajorChange)()
	if a.d.Selection[a.coord] {
		delete(a.d.Selection, a.coord)
	} else {
		a.d.Selection[a.coord] = true
	}
}

// clearSelection
type clearSelection Model

func (m *Model) ClearSelection() Action { return MakeAction((*clearSelection)(m)) }
func (m *clearSelection) Enabled() bool { return len(m.d.Selection) > 0 }
func (m *clearSelection) Do() {
	defer (*Model)(m).change("ClearSelection", SelectionChange, MajorChange)()
	clear(m.d.Selection)
}

// resetBaseFrequency
type resetBaseFrequency Model

func (m *Model) ResetBaseFrequency() Action { return MakeAction((*resetBaseFrequency)(m)) }
func (m *resetBaseFrequency) Enabled() bool {
	return m.d.BaseFrequency != m.config.BaseFrequency
}
func (m *resetBaseFrequency) Do() {
	(*Model)(m).BaseFrequency().Float().Set(m.config.BaseFrequency)
}

// resetOctaves
type resetOctaves Model

// ResetOctaves returns an Action that removes every octave override.
func (m *Model) ResetOctaves() Action { return MakeAction((*resetOctaves)(m)) }
func (m *resetOctaves) Enabled() bool { return len(m.d.Overrides) > 0 }
func (m *resetOctaves) Do() {
	defer (*Model)(m).change("ResetOctaves", OctaveChange, MajorChange)()
	clear(m.d.Overrides)
}

// resetView
type resetView Model

func (m *Model) ResetView() Action { return MakeAction((*resetView)(m)) }
func (m *resetView) Do()           { m.view.Reset() }

// SelectedNodes returns the selected coordinates in lattice order.
func (m *Model) SelectedNodes() []tonnetz.Coord {
	ret := make([]tonnetz.Coord, 0, len(m.d.Selection))
	for c := range m.d.Selection {
		ret = append(ret, c)
	}
	slices.SortFunc(ret, compareCoords)
	return ret
}

func (m *Model) Selected(c tonnetz.Coord) bool { return m.d.Selection[c] }

func compareCoords(a, b tonnetz.Coord) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}
