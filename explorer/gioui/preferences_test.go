package gioui

import (
	"testing"

	"gioui.org/io/key"
)

func TestDefaultPreferences(t *testing.T) {
	p := loadDefaultPreferences()
	if p.Window.Width <= 0 || p.Window.Height <= 0 {
		t.Errorf("default window size %dx%d", p.Window.Width, p.Window.Height)
	}
	if p.SummaryWidth <= 0 {
		t.Errorf("default summary width %d", p.SummaryWidth)
	}
}

func TestDefaultKeyBindings(t *testing.T) {
	for _, tc := range []struct {
		event  key.Event
		action string
	}{
		{key.Event{Name: key.NameSpace, State: key.Press}, "TogglePlay"},
		{key.Event{Name: "Z", Modifiers: key.ModShortcut, State: key.Press}, "Undo"},
		{key.Event{Name: "Z", Modifiers: key.ModShortcut | key.ModShift, State: key.Press}, "Redo"},
		{key.Event{Name: key.NameEscape, State: key.Press}, "ClosePopover"},
	} {
		if got := keyBindingMap[tc.event]; got != tc.action {
			t.Errorf("%v is bound to %q, want %q", tc.event, got, tc.action)
		}
	}
	if hint := makeHint("Undo", " (%s)", "Undo"); hint == "Undo" {
		t.Errorf("no key hint for Undo")
	}
	if hint := makeHint("Nothing", " (%s)", "NoSuchAction"); hint != "Nothing" {
		t.Errorf("got hint %q for an unbound action", hint)
	}
}
