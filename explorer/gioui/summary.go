package gioui

import (
	"strings"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/tonnetz-go/tonnetz/explorer"
)

// SummaryPanel lists the selected notes, one line each.
type SummaryPanel struct {
	list widget.List
}

func NewSummaryPanel() *SummaryPanel {
	return &SummaryPanel{list: widget.List{List: layout.List{Axis: layout.Vertical}}}
}

func (s *SummaryPanel) Layout(gtx C, th *Theme, m *explorer.Model) D {
	lines := strings.Split(m.Summary(), "\n")
	paint.FillShape(gtx.Ops, th.Panel.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())
	return th.Panel.Inset.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(Label(th, &th.Panel.Title, "Selection").Layout),
			layout.Flexed(1, func(gtx C) D {
				return material.List(&th.Material, &s.list).Layout(gtx, len(lines), func(gtx C, i int) D {
					return Label(th, &th.Panel.Summary, lines[i]).Layout(gtx)
				})
			}),
		)
	})
}
