package lattice_test

import (
	"math"
	"testing"

	"github.com/tonnetz-go/tonnetz"
	"github.com/tonnetz-go/tonnetz/lattice"
)

func newViewport(radius int) (*lattice.Store, *lattice.Viewport) {
	s := lattice.NewStore(radius, 0)
	return s, lattice.NewViewport(s, lattice.DefaultViewportConfig)
}

func TestResizeCentersOrigin(t *testing.T) {
	_, v := newViewport(2)
	v.Resize(800, 600)
	x, y := v.Transform().ToScreen(tonnetz.Point{})
	if x != 400 || y != 300 {
		t.Errorf("origin at (%v, %v)", x, y)
	}
	v.Resize(1000, 600)
	x, _ = v.Transform().ToScreen(tonnetz.Point{})
	if x != 500 {
		t.Errorf("origin at x=%v after resize, want the view center kept", x)
	}
}

func TestScrollUnits(t *testing.T) {
	_, v := newViewport(2)
	v.Resize(800, 600)
	before := v.Transform()
	v.Scroll(0, 3, lattice.ScrollLine)
	if got := v.Transform().OffsetY - before.OffsetY; got != -3*lattice.DefaultViewportConfig.LineHeight {
		t.Errorf("three lines scrolled by %v pixels", got)
	}
	before = v.Transform()
	v.Scroll(1, 0, lattice.ScrollPage)
	if got := v.Transform().OffsetX - before.OffsetX; got != -800 {
		t.Errorf("one page scrolled by %v pixels", got)
	}
	before = v.Transform()
	v.Scroll(10, 0, lattice.ScrollPixel)
	if got := v.Transform().OffsetX - before.OffsetX; got != -10 {
		t.Errorf("ten pixels scrolled by %v", got)
	}
}

func TestZoomKeepsAnchor(t *testing.T) {
	_, v := newViewport(2)
	v.Resize(800, 600)
	p := v.Transform().ToLayout(123, 456)
	v.Zoom(1.5, 123, 456)
	x, y := v.Transform().ToScreen(p)
	if math.Abs(x-123) > 1e-9 || math.Abs(y-456) > 1e-9 {
		t.Errorf("anchor moved to (%v, %v)", x, y)
	}
	v.Zoom(1000, 0, 0)
	if v.Transform().Scale != lattice.DefaultViewportConfig.MaxScale {
		t.Errorf("scale %v not clamped", v.Transform().Scale)
	}
}

func TestFrameExpandsUntilCovered(t *testing.T) {
	s, v := newViewport(1)
	v.Resize(1600, 1200)
	total := 0
	for i := 0; i < 100; i++ {
		n := v.Frame()
		if n == 0 {
			break
		}
		total += n
	}
	if total == 0 {
		t.Fatalf("a view larger than the store did not expand it")
	}
	fMin, fMax, tMin, tMax := v.VisibleRange()
	b := s.Bounds()
	if fMin < float64(b.FifthMin) || fMax > float64(b.FifthMax) || tMin < float64(b.ThirdMin) || tMax > float64(b.ThirdMax) {
		t.Errorf("bounds %+v do not cover the view (%v..%v, %v..%v)", b, fMin, fMax, tMin, tMax)
	}
	if n := v.Frame(); n != 0 {
		t.Errorf("an unchanged view expanded again by %d", n)
	}
	if n := v.MaybeExpand(); n != 0 {
		t.Errorf("expansion is not idempotent: %d more nodes", n)
	}
}

func TestFrameCoalescesPans(t *testing.T) {
	s, v := newViewport(1)
	v.Resize(200, 200)
	for v.Frame() > 0 {
		// catch up with the initial size
	}
	before := s.Len()
	// many small pans within one frame result in at most one expansion step
	for i := 0; i < 50; i++ {
		v.Pan(-40, 0)
	}
	first := v.Frame()
	if first == 0 {
		t.Fatalf("panning far did not expand the store")
	}
	if first > 2*lattice.DefaultViewportConfig.Step*s.Bounds().Rows() {
		t.Errorf("one frame created %d nodes", first)
	}
	if s.Len() != before+first {
		t.Errorf("store grew outside Frame")
	}
}

func TestNodeAt(t *testing.T) {
	_, v := newViewport(2)
	v.Resize(800, 600)
	c := tonnetz.Coord{Fifths: 1, Thirds: 1}
	x, y := v.Transform().ToScreen(tonnetz.Position(c))
	n, ok := v.NodeAt(x+3, y-2, 10)
	if !ok || n.Coord != c {
		t.Errorf("hit %v, %v; want %v", n, ok, c)
	}
	if _, ok := v.NodeAt(x+40, y, 10); ok {
		t.Errorf("a point between nodes hit a node")
	}
}
