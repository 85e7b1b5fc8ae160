package gioui

import (
	"errors"
	"image"
	"log"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	gioexplorer "gioui.org/x/explorer"
	"github.com/tonnetz-go/tonnetz"
	"github.com/tonnetz-go/tonnetz/explorer"
)

type (
	// Window is the explorer's main window: the toolbar on top, the
	// selection summary on the right and the lattice filling the rest.
	Window struct {
		Theme        *Theme
		Controls     *Controls
		Lattice      *LatticeView
		SummaryPanel *SummaryPanel
		PopupAlert   *AlertsState

		*explorer.Model

		Explorer  *gioexplorer.Explorer
		synther   tonnetz.Synther
		exporting bool

		preferences Preferences
		window      *app.Window
	}

	exportWav Window

	C = layout.Context
	D = layout.Dimensions
)

const title = "Tonnetz"

// NewWindow creates the window state. synther renders chord exports; the
// live sound comes from the player.
func NewWindow(model *explorer.Model, synther tonnetz.Synther) *Window {
	w := &Window{
		Theme:        NewTheme(),
		Controls:     NewControls(),
		Lattice:      new(LatticeView),
		SummaryPanel: NewSummaryPanel(),
		PopupAlert:   NewAlertsState(),
		Model:        model,
		synther:      synther,
	}
	var err error
	if w.preferences, err = MakePreferences(); err != nil {
		model.Alerts().AddAlert(explorer.Alert{
			Priority: explorer.Warning,
			Message:  err.Error(),
			Duration: 10 * time.Second,
		})
	}
	return w
}

// Main runs the window until it is closed or the broker asks it to close.
// Messages from the player and the MIDI driver are processed on this
// goroutine, between frames.
func (w *Window) Main() {
	var ops op.Ops
	w.window = w.newWindow()
	w.Explorer = gioexplorer.NewExplorer(w.window)
	acks := make(chan struct{})
	events := make(chan event.Event)
	go func() {
		for {
			ev := w.window.Event()
			events <- ev
			<-acks
			if _, ok := ev.(app.DestroyEvent); ok {
				return
			}
		}
	}()
F:
	for {
		select {
		case msg := <-w.Broker().ToModel:
			w.ProcessMsg(msg)
			// level updates arrive with every audio block; only repaint when
			// something else happened or a voice is sounding
			if msg.Data != nil || w.NumSounding() > 0 || w.NumReleasing() > 0 {
				w.window.Invalidate()
			}
		case <-w.Broker().CloseGUI:
			w.window.Perform(system.ActionClose)
		case e := <-events:
			w.Explorer.ListenEvents(e)
			switch e := e.(type) {
			case app.DestroyEvent:
				acks <- struct{}{}
				if e.Err != nil {
					log.Printf("window closed with error: %v", e.Err)
				}
				break F
			case app.FrameEvent:
				gtx := app.NewContext(&ops, e)
				w.Layout(gtx)
				e.Frame(gtx.Ops)
			}
			acks <- struct{}{}
		}
	}
	close(w.Broker().FinishedGUI)
}

func (w *Window) newWindow() *app.Window {
	win := new(app.Window)
	win.Option(app.Title(title), app.Size(w.preferences.WindowSize()))
	if w.preferences.Window.Maximized {
		win.Option(app.Maximized.Option())
	}
	return win
}

func (w *Window) Layout(gtx C) {
	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, w.Theme.Material.Bg)
	event.Op(gtx.Ops, w) // catches the keys nobody else handled

	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D { return w.Controls.Layout(gtx, w.Theme, w.Model, w.ExportWav()) }),
		layout.Flexed(1, func(gtx C) D {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Flexed(1, func(gtx C) D { return w.Lattice.Layout(gtx, w.Theme, w.Model) }),
				layout.Rigid(func(gtx C) D {
					width := gtx.Dp(unit.Dp(w.preferences.SummaryWidth))
					gtx.Constraints = layout.Exact(image.Pt(width, gtx.Constraints.Max.Y))
					return w.SummaryPanel.Layout(gtx, w.Theme, w.Model)
				}),
			)
		}),
	)
	alerts := Alerts(w.Model.Alerts(), w.Theme, w.PopupAlert)
	alerts.Layout(gtx)

	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "", Optional: key.ModAlt | key.ModCommand | key.ModShift | key.ModShortcut | key.ModSuper},
			key.Filter{Focus: w.Lattice, Name: "", Optional: key.ModAlt | key.ModCommand | key.ModShift | key.ModShortcut | key.ModSuper},
		)
		if !ok {
			break
		}
		if e, ok := ev.(key.Event); ok {
			w.KeyEvent(e, gtx)
		}
	}
}

// ExportWav asks for a file and renders the selected chord into it.
func (w *Window) ExportWav() explorer.Action { return explorer.MakeAction((*exportWav)(w)) }
func (w *exportWav) Enabled() bool {
	return !w.exporting && w.Explorer != nil && len(w.SelectedNodes()) > 0
}
func (w *exportWav) Do() {
	w.exporting = true
	go func() {
		file, err := w.Explorer.CreateFile("chord.wav")
		w.Broker().ToModel <- explorer.MsgToModel{Data: func() {
			w.exporting = false
			switch {
			case err == nil:
				w.WriteWav(file, w.synther)
			case !errors.Is(err, gioexplorer.ErrUserDecline):
				w.Alerts().Add(err.Error(), explorer.Error)
			}
		}}
	}()
}
