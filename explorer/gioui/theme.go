package gioui

import (
	"image/color"

	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

type (
	Theme struct {
		Material material.Theme
		Lattice  LatticeStyle
		Alert    AlertStyles
		Panel    PanelStyle
		Popup    PopupStyle
	}

	LatticeStyle struct {
		Bg            color.NRGBA
		Edge          color.NRGBA
		EdgeWidth     unit.Dp
		NodeRadius    unit.Dp
		Node          color.NRGBA
		NodeOutline   color.NRGBA
		Selected      color.NRGBA
		Sounding      color.NRGBA
		Overridden    color.NRGBA
		Note          LabelStyle
		Ratio         LabelStyle
		SelectedLabel color.NRGBA
	}

	PanelStyle struct {
		Bg      color.NRGBA
		Inset   layout.Inset
		Title   LabelStyle
		Summary LabelStyle
		Meter   color.NRGBA
		Clip    color.NRGBA
	}

	PopupStyle struct {
		Bg     color.NRGBA
		Shadow color.NRGBA
		Inset  layout.Inset
		Value  LabelStyle
	}
)

var fontCollection []font.FontFace = gofont.Collection()

var (
	black       = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	transparent = color.NRGBA{A: 0}

	primaryColor   = color.NRGBA{R: 206, G: 147, B: 216, A: 255}
	secondaryColor = color.NRGBA{R: 128, G: 222, B: 234, A: 255}

	highEmphasisTextColor   = color.NRGBA{R: 222, G: 222, B: 222, A: 222}
	mediumEmphasisTextColor = color.NRGBA{R: 153, G: 153, B: 153, A: 153}
	disabledTextColor       = color.NRGBA{R: 255, G: 255, B: 255, A: 97}

	backgroundColor = color.NRGBA{R: 18, G: 18, B: 18, A: 255}
	surfaceColor    = color.NRGBA{R: 37, G: 37, B: 38, A: 255}
	popupColor      = color.NRGBA{R: 50, G: 50, B: 51, A: 255}

	errorColor   = color.NRGBA{R: 207, G: 102, B: 121, A: 255}
	warningColor = color.NRGBA{R: 251, G: 192, B: 45, A: 255}
)

func NewTheme() *Theme {
	th := &Theme{Material: *material.NewTheme()}
	th.Material.Shaper = text.NewShaper(text.WithCollection(fontCollection))
	th.Material.Palette = material.Palette{
		Bg:         backgroundColor,
		Fg:         highEmphasisTextColor,
		ContrastBg: primaryColor,
		ContrastFg: black,
	}
	th.Material.TextSize = unit.Sp(14)

	th.Lattice = LatticeStyle{
		Bg:            backgroundColor,
		Edge:          color.NRGBA{R: 90, G: 90, B: 96, A: 255},
		EdgeWidth:     1.5,
		NodeRadius:    22,
		Node:          surfaceColor,
		NodeOutline:   mediumEmphasisTextColor,
		Selected:      primaryColor,
		Sounding:      secondaryColor,
		Overridden:    warningColor,
		Note:          LabelStyle{Color: highEmphasisTextColor, ShadeColor: black, FontSize: 14, Alignment: layout.Center},
		Ratio:         LabelStyle{Color: mediumEmphasisTextColor, ShadeColor: black, FontSize: 10, Alignment: layout.Center},
		SelectedLabel: black,
	}
	th.Panel = PanelStyle{
		Bg:      surfaceColor,
		Inset:   layout.UniformInset(8),
		Title:   LabelStyle{Color: mediumEmphasisTextColor, FontSize: 12},
		Summary: LabelStyle{Color: highEmphasisTextColor, FontSize: 14},
		Meter:   mediumEmphasisTextColor,
		Clip:    errorColor,
	}
	th.Popup = PopupStyle{
		Bg:     popupColor,
		Shadow: color.NRGBA{A: 192},
		Inset:  layout.UniformInset(4),
		Value:  LabelStyle{Color: highEmphasisTextColor, FontSize: 14, Alignment: layout.Center},
	}
	th.Alert = AlertStyles{
		Info:    AlertStyle{Bg: popupColor, Text: LabelStyle{Color: highEmphasisTextColor, FontSize: 16}},
		Warning: AlertStyle{Bg: warningColor, Text: LabelStyle{Color: black, FontSize: 16}},
		Error:   AlertStyle{Bg: errorColor, Text: LabelStyle{Color: black, FontSize: 16}},
		Margin:  layout.UniformInset(6),
		Inset:   layout.UniformInset(6),
	}
	return th
}
