package gioui

import (
	"image"
	"image/color"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/tonnetz-go/tonnetz/explorer"
)

type (
	AlertsState struct {
		prevUpdate time.Time
	}

	AlertStyle struct {
		Bg   color.NRGBA
		Text LabelStyle
	}

	AlertStyles struct {
		Info    AlertStyle
		Warning AlertStyle
		Error   AlertStyle
		Margin  layout.Inset
		Inset   layout.Inset
	}

	AlertsWidget struct {
		Theme *Theme
		Model *explorer.Alerts
		State *AlertsState
	}
)

func NewAlertsState() *AlertsState {
	return &AlertsState{prevUpdate: time.Now()}
}

func Alerts(m *explorer.Alerts, th *Theme, st *AlertsState) AlertsWidget {
	return AlertsWidget{Theme: th, Model: m, State: st}
}

// Layout stacks the alerts at the bottom of the window, newest lowest, and
// slides them in and out as they fade.
func (a *AlertsWidget) Layout(gtx C) D {
	now := time.Now()
	if a.Model.Update(now.Sub(a.State.prevUpdate)) {
		gtx.Execute(op.InvalidateCmd{At: now.Add(50 * time.Millisecond)})
	}
	a.State.prevUpdate = now

	totalY := float64(gtx.Dp(38))
	for _, alert := range a.Model.Iterate {
		style := &a.Theme.Alert.Info
		switch alert.Priority {
		case explorer.Warning:
			style = &a.Theme.Alert.Warning
		case explorer.Error:
			style = &a.Theme.Alert.Error
		}
		bg := func(gtx C) D {
			paint.FillShape(gtx.Ops, style.Bg, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return D{Size: gtx.Constraints.Min}
		}
		label := Label(a.Theme, &style.Text, alert.Message)
		a.Theme.Alert.Margin.Layout(gtx, func(gtx C) D {
			return layout.S.Layout(gtx, func(gtx C) D {
				defer op.Offset(image.Point{}).Push(gtx.Ops).Pop()
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				recording := op.Record(gtx.Ops)
				dims := layout.Stack{Alignment: layout.Center}.Layout(gtx,
					layout.Expanded(bg),
					layout.Stacked(func(gtx C) D {
						return a.Theme.Alert.Inset.Layout(gtx, label.Layout)
					}),
				)
				macro := recording.Stop()
				delta := float64(dims.Size.Y + gtx.Dp(a.Theme.Alert.Margin.Bottom))
				op.Offset(image.Point{0, int(-totalY*alert.FadeLevel + delta*(1-alert.FadeLevel))}).Add(gtx.Ops)
				totalY += delta
				macro.Add(gtx.Ops)
				return dims
			})
		})
	}
	return D{}
}
