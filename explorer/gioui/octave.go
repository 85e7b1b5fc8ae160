package gioui

import (
	"fmt"
	"image"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"github.com/tonnetz-go/tonnetz"
	"github.com/tonnetz-go/tonnetz/explorer"
)

// OctavePopover is the small panel for adjusting the octave override of a
// single node. It floats below the node it is bound to.
type OctavePopover struct {
	coord   tonnetz.Coord
	visible bool

	down, up, reset, close widget.Clickable
}

func (p *OctavePopover) Open(c tonnetz.Coord) { p.coord, p.visible = c, true }
func (p *OctavePopover) Close()               { p.visible = false }
func (p *OctavePopover) Visible() bool        { return p.visible }
func (p *OctavePopover) Coord() tonnetz.Coord { return p.coord }

func (p *OctavePopover) update(gtx C, octave explorer.Int) {
	for p.down.Clicked(gtx) {
		octave.Add(-1)
	}
	for p.up.Clicked(gtx) {
		octave.Add(1)
	}
	for p.reset.Clicked(gtx) {
		octave.Set(0)
	}
	for p.close.Clicked(gtx) {
		p.Close()
	}
}

func (p *OctavePopover) Layout(gtx C, th *Theme, m *explorer.Model, anchor image.Point) D {
	octave := m.NodeOctave(p.coord).Int()
	p.update(gtx, octave)
	if !p.visible {
		return D{}
	}
	n, _ := m.Node(p.coord)
	text := fmt.Sprintf("%s  %s  %.2f Hz", n.Note, n.Ratio, n.Frequency)

	gtx.Constraints.Min = image.Point{}
	macro := op.Record(gtx.Ops)
	dims := layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx C) D {
			rr := gtx.Dp(unit.Dp(4))
			paint.FillShape(gtx.Ops, th.Popup.Bg, clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, rr).Op(gtx.Ops))
			return D{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx C) D {
			return th.Popup.Inset.Layout(gtx, func(gtx C) D {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(LowEmphasisButton(&th.Material, &p.down, "−").Layout),
					layout.Rigid(func(gtx C) D {
						return layout.UniformInset(unit.Dp(4)).Layout(gtx,
							Label(th, &th.Popup.Value, fmt.Sprintf("%+d", octave.Value())).Layout)
					}),
					layout.Rigid(LowEmphasisButton(&th.Material, &p.up, "+").Layout),
					layout.Rigid(LowEmphasisButton(&th.Material, &p.reset, "0").Layout),
					layout.Rigid(func(gtx C) D {
						return layout.UniformInset(unit.Dp(6)).Layout(gtx, Label(th, &th.Popup.Value, text).Layout)
					}),
					layout.Rigid(LowEmphasisButton(&th.Material, &p.close, "×").Layout),
				)
			})
		}),
	)
	call := macro.Stop()

	// keep the popover inside the window
	pos := anchor.Sub(image.Pt(dims.Size.X/2, 0))
	pos.X = min(max(pos.X, 0), gtx.Constraints.Max.X-dims.Size.X)
	pos.Y = min(max(pos.Y, 0), gtx.Constraints.Max.Y-dims.Size.Y)
	defer op.Offset(pos).Push(gtx.Ops).Pop()
	shadow := image.Rectangle{Min: image.Pt(2, 2), Max: dims.Size.Add(image.Pt(2, 2))}
	paint.FillShape(gtx.Ops, th.Popup.Shadow, clip.Rect(shadow).Op())
	call.Add(gtx.Ops)
	return dims
}
