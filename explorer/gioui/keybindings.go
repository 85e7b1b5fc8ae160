package gioui

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"gioui.org/io/key"
	"gioui.org/io/system"
	"github.com/tonnetz-go/tonnetz/explorer"
	"github.com/tonnetz-go/tonnetz/lattice"
	"gopkg.in/yaml.v3"
)

type (
	KeyAction string

	KeyBinding struct {
		Key                                        string
		Shortcut, Ctrl, Command, Shift, Alt, Super bool
		Action                                     string
	}
)

var keyBindingMap = map[key.Event]string{}
var keyActionMap = map[KeyAction]string{} // holds an informative string of the first key bound to an action

//go:embed keybindings.yml
var defaultKeyBindings []byte

const (
	keyZoomFactor = 1.25
	keyPanPixels  = 80
)

func init() {
	var keyBindings, userKeybindings []KeyBinding
	dec := yaml.NewDecoder(bytes.NewReader(defaultKeyBindings))
	dec.KnownFields(true)
	if err := dec.Decode(&keyBindings); err != nil {
		panic(fmt.Errorf("failed to unmarshal default keybindings: %w", err))
	}
	if err := explorer.ReadCustomConfig("keybindings.yml", &userKeybindings); err == nil {
		keyBindings = append(keyBindings, userKeybindings...)
	}

	for _, kb := range keyBindings {
		var mods key.Modifiers
		if kb.Shortcut {
			mods |= key.ModShortcut
		}
		if kb.Ctrl {
			mods |= key.ModCtrl
		}
		if kb.Command {
			mods |= key.ModCommand
		}
		if kb.Shift {
			mods |= key.ModShift
		}
		if kb.Alt {
			mods |= key.ModAlt
		}
		if kb.Super {
			mods |= key.ModSuper
		}

		keyEvent := key.Event{Name: key.Name(kb.Key), Modifiers: mods, State: key.Press}
		if action, ok := keyBindingMap[keyEvent]; ok {
			delete(keyActionMap, KeyAction(action))
		}
		if kb.Action == "" { // unbind
			delete(keyBindingMap, keyEvent)
			continue
		}
		keyBindingMap[keyEvent] = kb.Action
		modString := strings.ReplaceAll(mods.String(), "-", "+")
		text := kb.Key
		if modString != "" {
			text = modString + "+" + text
		}
		if _, ok := keyActionMap[KeyAction(kb.Action)]; !ok {
			keyActionMap[KeyAction(kb.Action)] = text
		}
	}
}

func makeHint(hint, format, action string) string {
	if keyActionMap[KeyAction(action)] != "" {
		return hint + fmt.Sprintf(format, keyActionMap[KeyAction(action)])
	}
	return hint
}

// KeyEvent runs the action bound to a key press.
func (w *Window) KeyEvent(e key.Event, gtx C) {
	if e.State != key.Press {
		return
	}
	action, ok := keyBindingMap[key.Event{Name: e.Name, Modifiers: e.Modifiers, State: key.Press}]
	if !ok {
		return
	}
	view := w.Model.Viewport()
	width, height := view.Size()
	switch action {
	case "TogglePlay":
		w.Model.Playing().Bool().Toggle()
	case "ClosePopover":
		w.Lattice.Octave.Close()
	case "ClearSelection":
		w.Model.ClearSelection().Do()
	case "ResetOctaves":
		w.Model.ResetOctaves().Do()
	case "ResetView":
		w.Model.ResetView().Do()
	case "ResetBaseFrequency":
		w.Model.ResetBaseFrequency().Do()
	case "CycleWaveform":
		w.Model.Waveform().Cycle()
	case "Undo":
		w.Model.History().Undo().Do()
	case "Redo":
		w.Model.History().Redo().Do()
	case "ZoomIn":
		view.Zoom(keyZoomFactor, width/2, height/2)
	case "ZoomOut":
		view.Zoom(1/keyZoomFactor, width/2, height/2)
	case "PanLeft":
		view.Scroll(-keyPanPixels, 0, lattice.ScrollPixel)
	case "PanRight":
		view.Scroll(keyPanPixels, 0, lattice.ScrollPixel)
	case "PanUp":
		view.Scroll(0, -keyPanPixels, lattice.ScrollPixel)
	case "PanDown":
		view.Scroll(0, keyPanPixels, lattice.ScrollPixel)
	case "ExportWav":
		w.ExportWav().Do()
	case "Quit":
		w.window.Perform(system.ActionClose)
	}
}
