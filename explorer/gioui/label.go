package gioui

import (
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
)

// LabelStyle draws a single line of text. A non-transparent ShadeColor adds
// a drop shadow, which keeps the text legible on top of the lattice.
type LabelStyle struct {
	Color      color.NRGBA
	ShadeColor color.NRGBA
	Alignment  layout.Direction
	Font       font.Font
	FontSize   unit.Sp
}

type LabelWidget struct {
	Text   string
	Style  LabelStyle
	Shaper *text.Shaper
}

func Label(th *Theme, style *LabelStyle, txt string) LabelWidget {
	return LabelWidget{Text: txt, Style: *style, Shaper: th.Material.Shaper}
}

func (l LabelWidget) Layout(gtx C) D {
	return l.Style.Alignment.Layout(gtx, func(gtx C) D {
		gtx.Constraints.Min = image.Point{}
		if l.Style.ShadeColor.A > 0 {
			offs := op.Offset(image.Pt(1, 1)).Push(gtx.Ops)
			l.layoutText(gtx, l.Style.ShadeColor)
			offs.Pop()
		}
		return l.layoutText(gtx, l.Style.Color)
	})
}

func (l LabelWidget) layoutText(gtx C, c color.NRGBA) D {
	colorMacro := op.Record(gtx.Ops)
	paint.ColorOp{Color: c}.Add(gtx.Ops)
	return widget.Label{Alignment: text.Start, MaxLines: 1}.Layout(gtx, l.Shaper, l.Style.Font, l.Style.FontSize, l.Text, colorMacro.Stop())
}
