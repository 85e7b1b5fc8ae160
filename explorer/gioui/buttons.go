package gioui

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"github.com/tonnetz-go/tonnetz/explorer"
)

type (
	// ActionButton binds a clickable to a model action: clicks are only
	// delivered while the action is enabled.
	ActionButton struct {
		Clickable widget.Clickable
		Tip       component.TipArea
	}

	// ToggleButton switches a model Bool between two icons.
	ToggleButton struct {
		Clickable widget.Clickable
		Tip       component.TipArea
	}
)

// Update performs the action once per click.
func (b *ActionButton) Update(gtx C, action explorer.Action) {
	for b.Clickable.Clicked(gtx) {
		action.Do()
	}
}

func (b *ActionButton) Layout(gtx C, th *Theme, action explorer.Action, icon *widget.Icon, tip string) D {
	b.Update(gtx, action)
	enabled := action.Enabled()
	return b.Tip.Layout(gtx, Tooltip(th, tip), func(gtx C) D {
		if !enabled {
			gtx = gtx.Disabled()
		}
		return IconButton(&th.Material, &b.Clickable, icon, enabled).Layout(gtx)
	})
}

func (b *ToggleButton) Layout(gtx C, th *Theme, v explorer.Bool, on, off *widget.Icon, onTip, offTip string) D {
	for b.Clickable.Clicked(gtx) {
		v.Toggle()
	}
	icon, tip := off, offTip
	if v.Value() {
		icon, tip = on, onTip
	}
	return b.Tip.Layout(gtx, Tooltip(th, tip), func(gtx C) D {
		return IconButton(&th.Material, &b.Clickable, icon, v.Enabled()).Layout(gtx)
	})
}

func IconButton(th *material.Theme, w *widget.Clickable, icon *widget.Icon, enabled bool) material.IconButtonStyle {
	ret := material.IconButton(th, w, icon, "")
	ret.Background = transparent
	ret.Inset = layout.UniformInset(unit.Dp(6))
	if enabled {
		ret.Color = primaryColor
	} else {
		ret.Color = disabledTextColor
	}
	return ret
}

func LowEmphasisButton(th *material.Theme, w *widget.Clickable, text string) material.ButtonStyle {
	ret := material.Button(th, w, text)
	ret.Color = th.Palette.Fg
	ret.Background = transparent
	ret.Inset = layout.UniformInset(unit.Dp(6))
	return ret
}

func Tooltip(th *Theme, tip string) component.Tooltip {
	tooltip := component.PlatformTooltip(&th.Material, tip)
	tooltip.Bg = popupColor
	tooltip.Text.Color = highEmphasisTextColor
	return tooltip
}

func mustIcon(data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		panic(err)
	}
	return icon
}
