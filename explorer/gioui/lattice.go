package gioui

import (
	"image"
	"math"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/x/stroke"
	"github.com/tonnetz-go/tonnetz/explorer"
	"github.com/tonnetz-go/tonnetz/lattice"
)

type (
	// LatticeView draws the materialized lattice and turns pointer input
	// into selection toggles, pans and zooms.
	LatticeView struct {
		Octave OctavePopover

		dragging bool
		dragPos  f32.Point
	}
)

// labelMinRadius is the node radius in pixels below which labels are not
// drawn.
const labelMinRadius = 14

// zoomPerScroll is the zoom factor of one pixel of wheel scroll.
const zoomPerScroll = 1.002

func (v *LatticeView) Layout(gtx C, th *Theme, m *explorer.Model) D {
	size := gtx.Constraints.Max
	view := m.Viewport()
	view.Resize(float64(size.X), float64(size.Y))
	v.update(gtx, th, m)
	if view.Frame() > 0 {
		// the view outran the store; keep growing next frame
		gtx.Execute(op.InvalidateCmd{})
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, th.Lattice.Bg)
	event.Op(gtx.Ops, v)

	radius := v.nodeRadius(gtx, th, view)
	v.drawEdges(gtx, th, m, size, radius)
	v.drawNodes(gtx, th, m, size, radius)

	if v.Octave.Visible() {
		if n, ok := m.Node(v.Octave.Coord()); ok {
			x, y := view.Transform().ToScreen(n.Position)
			v.Octave.Layout(gtx, th, m, image.Pt(int(x), int(y)+radius))
		}
	}
	return D{Size: size}
}

func (v *LatticeView) nodeRadius(gtx C, th *Theme, view *lattice.Viewport) int {
	r := float64(gtx.Dp(th.Lattice.NodeRadius))
	return int(min(r, view.Transform().Scale*0.3))
}

func (v *LatticeView) update(gtx C, th *Theme, m *explorer.Model) {
	view := m.Viewport()
	radius := float64(v.nodeRadius(gtx, th, view))
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  v,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollX: pointer.ScrollRange{Min: math.MinInt32, Max: math.MaxInt32},
			ScrollY: pointer.ScrollRange{Min: math.MinInt32, Max: math.MaxInt32},
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Press:
			gtx.Execute(key.FocusCmd{Tag: v})
			x, y := float64(e.Position.X), float64(e.Position.Y)
			n, hit := m.NodeAt(x, y, radius)
			if !hit {
				v.Octave.Close()
				v.dragging, v.dragPos = true, e.Position
				continue
			}
			if e.Buttons.Contain(pointer.ButtonSecondary) || e.NumClicks >= 2 {
				// the first click of a double click already toggled the node
				v.Octave.Open(n.Coord)
				continue
			}
			v.Octave.Close()
			m.ToggleNode(n.Coord, e.Modifiers.Contain(key.ModShortcut)).Do()
		case pointer.Drag:
			if v.dragging {
				d := e.Position.Sub(v.dragPos)
				view.Pan(float64(d.X), float64(d.Y))
				v.dragPos = e.Position
			}
		case pointer.Release, pointer.Cancel:
			v.dragging = false
		case pointer.Scroll:
			if e.Modifiers.Contain(key.ModShortcut) {
				factor := math.Pow(zoomPerScroll, -float64(e.Scroll.Y))
				view.Zoom(factor, float64(e.Position.X), float64(e.Position.Y))
				continue
			}
			view.Scroll(float64(e.Scroll.X), float64(e.Scroll.Y), lattice.ScrollPixel)
		}
	}
}

func (v *LatticeView) drawEdges(gtx C, th *Theme, m *explorer.Model, size image.Point, radius int) {
	t := m.Viewport().Transform()
	visible := image.Rectangle{Max: size}.Inset(-radius)
	var segments []stroke.Segment
	for e := range m.Edges {
		a, okA := m.Store().Node(e.A)
		b, okB := m.Store().Node(e.B)
		if !okA || !okB {
			continue
		}
		ax, ay := t.ToScreen(a.Position)
		bx, by := t.ToScreen(b.Position)
		pa, pb := image.Pt(int(ax), int(ay)), image.Pt(int(bx), int(by))
		if !pa.In(visible) && !pb.In(visible) {
			continue
		}
		segments = append(segments,
			stroke.MoveTo(f32.Pt(float32(ax), float32(ay))),
			stroke.LineTo(f32.Pt(float32(bx), float32(by))),
		)
	}
	if len(segments) == 0 {
		return
	}
	s := stroke.Stroke{
		Path:  stroke.Path{Segments: segments},
		Width: float32(gtx.Dp(th.Lattice.EdgeWidth)),
		Cap:   stroke.RoundCap,
	}
	paint.FillShape(gtx.Ops, th.Lattice.Edge, s.Op(gtx.Ops))
}

func (v *LatticeView) drawNodes(gtx C, th *Theme, m *explorer.Model, size image.Point, radius int) {
	t := m.Viewport().Transform()
	visible := image.Rectangle{Max: size}.Inset(-radius)
	outline := max(gtx.Dp(1), 1)
	for n := range m.Nodes {
		x, y := t.ToScreen(n.Position)
		center := image.Pt(int(x), int(y))
		if !center.In(visible) {
			continue
		}
		bounds := image.Rectangle{Min: center.Sub(image.Pt(radius, radius)), Max: center.Add(image.Pt(radius, radius))}
		fill, labelColor := th.Lattice.Node, th.Lattice.Note.Color
		switch {
		case n.Sounding:
			fill, labelColor = th.Lattice.Sounding, th.Lattice.SelectedLabel
		case n.Selected:
			fill, labelColor = th.Lattice.Selected, th.Lattice.SelectedLabel
		}
		paint.FillShape(gtx.Ops, fill, clip.Ellipse(bounds).Op(gtx.Ops))
		ring := th.Lattice.NodeOutline
		if n.OctaveOffset != 0 {
			ring = th.Lattice.Overridden
		}
		paint.FillShape(gtx.Ops, ring, clip.Stroke{Path: clip.Ellipse(bounds).Path(gtx.Ops), Width: float32(outline)}.Op())
		if radius < labelMinRadius {
			continue
		}
		note := th.Lattice.Note
		note.Color = labelColor
		if n.Selected || n.Sounding {
			note.ShadeColor = transparent
		}
		ratio := th.Lattice.Ratio
		if n.Selected || n.Sounding {
			ratio.Color, ratio.ShadeColor = labelColor, transparent
		}
		drawCentered(gtx, Label(th, &note, n.Note).Layout, center.Sub(image.Pt(0, radius/4)))
		drawCentered(gtx, Label(th, &ratio, n.Ratio).Layout, center.Add(image.Pt(0, radius/3)))
	}
}

// drawCentered lays out w with its center at p.
func drawCentered(gtx C, w layout.Widget, p image.Point) {
	gtx.Constraints = layout.Constraints{Max: gtx.Constraints.Max}
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	defer op.Offset(p.Sub(dims.Size.Div(2))).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}
