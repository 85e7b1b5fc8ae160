package gioui

import (
	"image"
	"strconv"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/tonnetz-go/tonnetz/explorer"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

var (
	iconPlay         = mustIcon(icons.AVPlayArrow)
	iconPause        = mustIcon(icons.AVPause)
	iconClear        = mustIcon(icons.ContentClear)
	iconResetOctaves = mustIcon(icons.ActionSettingsBackupRestore)
	iconResetView    = mustIcon(icons.MapsMyLocation)
	iconResetBase    = mustIcon(icons.ActionRestore)
	iconUndo         = mustIcon(icons.ContentUndo)
	iconRedo         = mustIcon(icons.ContentRedo)
	iconRefresh      = mustIcon(icons.NavigationRefresh)
	iconExport       = mustIcon(icons.ImageAudiotrack)
)

// Controls is the toolbar above the lattice.
type Controls struct {
	Play         ToggleButton
	Clear        ActionButton
	ResetOctaves ActionButton
	ResetView    ActionButton
	Undo         ActionButton
	Redo         ActionButton
	Export       ActionButton

	BaseFrequency      widget.Editor
	ResetBaseFrequency ActionButton
	baseFocused        bool

	WaveformBtn widget.Clickable
	Volume      widget.Float

	MIDIInput   widget.Clickable
	MIDIRefresh ActionButton
}

func NewControls() *Controls {
	return &Controls{BaseFrequency: widget.Editor{SingleLine: true, Submit: true}}
}

func (c *Controls) Layout(gtx C, th *Theme, m *explorer.Model, export explorer.Action) D {
	c.update(gtx, m)
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx C) D {
			paint.FillShape(gtx.Ops, th.Panel.Bg, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return D{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					return c.Play.Layout(gtx, th, m.Playing().Bool(), iconPause, iconPlay,
						makeHint("Pause", " (%s)", "TogglePlay"), makeHint("Play", " (%s)", "TogglePlay"))
				}),
				layout.Rigid(func(gtx C) D {
					return c.Clear.Layout(gtx, th, m.ClearSelection(), iconClear, makeHint("Clear selection", " (%s)", "ClearSelection"))
				}),
				layout.Rigid(func(gtx C) D {
					return c.ResetOctaves.Layout(gtx, th, m.ResetOctaves(), iconResetOctaves, makeHint("Reset octaves", " (%s)", "ResetOctaves"))
				}),
				layout.Rigid(func(gtx C) D {
					return c.ResetView.Layout(gtx, th, m.ResetView(), iconResetView, makeHint("Reset view", " (%s)", "ResetView"))
				}),
				layout.Rigid(func(gtx C) D {
					return c.Undo.Layout(gtx, th, m.History().Undo(), iconUndo, makeHint("Undo", " (%s)", "Undo"))
				}),
				layout.Rigid(func(gtx C) D {
					return c.Redo.Layout(gtx, th, m.History().Redo(), iconRedo, makeHint("Redo", " (%s)", "Redo"))
				}),
				layout.Rigid(func(gtx C) D {
					return c.Export.Layout(gtx, th, export, iconExport, makeHint("Export chord as .wav", " (%s)", "ExportWav"))
				}),
				layout.Rigid(c.label(th, "Base")),
				layout.Rigid(func(gtx C) D {
					gtx.Constraints.Min.X = gtx.Dp(unit.Dp(72))
					gtx.Constraints.Max.X = gtx.Constraints.Min.X
					ed := material.Editor(&th.Material, &c.BaseFrequency, "Hz")
					ed.Color = highEmphasisTextColor
					ed.HintColor = mediumEmphasisTextColor
					return ed.Layout(gtx)
				}),
				layout.Rigid(c.label(th, "Hz")),
				layout.Rigid(func(gtx C) D {
					return c.ResetBaseFrequency.Layout(gtx, th, m.ResetBaseFrequency(), iconResetBase, "Reset base frequency")
				}),
				layout.Rigid(func(gtx C) D {
					return LowEmphasisButton(&th.Material, &c.WaveformBtn, explorer.WaveformName(m.WaveformValue())).Layout(gtx)
				}),
				layout.Rigid(c.label(th, "Volume")),
				layout.Rigid(func(gtx C) D {
					gtx.Constraints.Min.X = gtx.Dp(unit.Dp(100))
					gtx.Constraints.Max.X = gtx.Constraints.Min.X
					return material.Slider(&th.Material, &c.Volume).Layout(gtx)
				}),
				layout.Rigid(func(gtx C) D {
					return LevelMeter{Level: m.Level()}.Layout(gtx, th)
				}),
				layout.Flexed(1, func(gtx C) D { return D{Size: gtx.Constraints.Min} }),
				layout.Rigid(c.label(th, "MIDI")),
				layout.Rigid(func(gtx C) D {
					midi := m.MIDI()
					return LowEmphasisButton(&th.Material, &c.MIDIInput, midi.InputName(midi.Input().Value())).Layout(gtx)
				}),
				layout.Rigid(func(gtx C) D {
					return c.MIDIRefresh.Layout(gtx, th, m.MIDI().Refresh(), iconRefresh, "Refresh MIDI inputs")
				}),
			)
		}),
	)
}

func (c *Controls) label(th *Theme, txt string) layout.Widget {
	return func(gtx C) D {
		return layout.Inset{Left: 8, Right: 4}.Layout(gtx, Label(th, &th.Panel.Title, txt).Layout)
	}
}

func (c *Controls) update(gtx C, m *explorer.Model) {
	base := m.BaseFrequency().Float()
	for {
		ev, ok := c.BaseFrequency.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.SubmitEvent); ok {
			c.commitBaseFrequency(m)
		}
	}
	focused := gtx.Focused(&c.BaseFrequency)
	if c.baseFocused && !focused {
		c.commitBaseFrequency(m)
	}
	c.baseFocused = focused
	if !focused {
		if txt := formatFrequency(base.Value()); c.BaseFrequency.Text() != txt {
			c.BaseFrequency.SetText(txt)
		}
	}

	for c.WaveformBtn.Clicked(gtx) {
		m.Waveform().Cycle()
	}

	if c.Volume.Update(gtx) {
		m.MasterVolume().Float().Set(float64(c.Volume.Value))
	} else if !c.Volume.Dragging() {
		c.Volume.Value = float32(m.MasterVolume().Value())
	}

	for c.MIDIInput.Clicked(gtx) {
		in := m.MIDI().Input()
		if !in.Add(1) {
			in.Set(0)
		}
	}
}

// commitBaseFrequency writes the editor text to the model. Invalid input is
// rejected with a warning and the editor shows the previous value again.
func (c *Controls) commitBaseFrequency(m *explorer.Model) {
	base := m.BaseFrequency().Float()
	if !base.SetText(c.BaseFrequency.Text()) {
		m.Alerts().AddNamed("BaseFrequency", "Base frequency must be a number in (0, 20000] Hz", explorer.Warning)
	}
	c.BaseFrequency.SetText(formatFrequency(base.Value()))
}

func formatFrequency(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// LevelMeter shows the peak level reported by the player.
type LevelMeter struct {
	Level float32
}

func (l LevelMeter) Layout(gtx C, th *Theme) D {
	width, height := gtx.Dp(unit.Dp(60)), gtx.Dp(unit.Dp(6))
	return layout.Inset{Left: 8, Right: 8}.Layout(gtx, func(gtx C) D {
		paint.FillShape(gtx.Ops, th.Lattice.Node, clip.Rect(image.Rect(0, 0, width, height)).Op())
		x := int(min(l.Level, 1)*float32(width) + 0.5)
		c := th.Panel.Meter
		if l.Level >= 1 {
			c = th.Panel.Clip
		}
		paint.FillShape(gtx.Ops, c, clip.Rect(image.Rect(0, 0, x, height)).Op())
		return D{Size: image.Pt(width, height)}
	})
}
