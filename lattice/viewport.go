package lattice

import (
	"math"

	"github.com/tonnetz-go/tonnetz"
)

type (
	// Transform maps layout units to screen pixels: screen = p*Scale + Offset.
	Transform struct {
		OffsetX, OffsetY float64
		Scale            float64
	}

	// ScrollUnit is the unit in which an input device reports wheel deltas.
	ScrollUnit int

	ViewportConfig struct {
		Scale      float64 // initial pixels per layout unit
		MinScale   float64
		MaxScale   float64
		LineHeight float64 // pixels per ScrollLine
		Margin     int     // expand when the view is within this many nodes of the bounds
		Step       int     // nodes added per expansion
	}

	// Viewport owns the pan/zoom transform and grows the store when the
	// visible area approaches the materialized bounds. Transform changes only
	// mark the viewport dirty; the expansion check runs in Frame, at most
	// once per rendered frame.
	Viewport struct {
		store         *Store
		cfg           ViewportConfig
		transform     Transform
		width, height float64
		dirty         bool
	}
)

const (
	ScrollPixel ScrollUnit = iota
	ScrollLine
	ScrollPage
)

var DefaultViewportConfig = ViewportConfig{
	Scale:      96,
	MinScale:   24,
	MaxScale:   400,
	LineHeight: 16,
	Margin:     2,
	Step:       4,
}

func NewViewport(store *Store, cfg ViewportConfig) *Viewport {
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultViewportConfig.Scale
	}
	if cfg.MinScale <= 0 || cfg.MinScale > cfg.Scale {
		cfg.MinScale = min(DefaultViewportConfig.MinScale, cfg.Scale)
	}
	if cfg.MaxScale < cfg.Scale {
		cfg.MaxScale = max(DefaultViewportConfig.MaxScale, cfg.Scale)
	}
	if cfg.LineHeight <= 0 {
		cfg.LineHeight = DefaultViewportConfig.LineHeight
	}
	cfg.Step = max(cfg.Step, 1)
	cfg.Margin = max(cfg.Margin, 0)
	return &Viewport{
		store:     store,
		cfg:       cfg,
		transform: Transform{Scale: cfg.Scale},
		dirty:     true,
	}
}

func (t Transform) ToScreen(p tonnetz.Point) (x, y float64) {
	return p.X*t.Scale + t.OffsetX, p.Y*t.Scale + t.OffsetY
}

func (t Transform) ToLayout(x, y float64) tonnetz.Point {
	return tonnetz.Point{X: (x - t.OffsetX) / t.Scale, Y: (y - t.OffsetY) / t.Scale}
}

func (v *Viewport) Transform() Transform { return v.transform }

func (v *Viewport) Size() (width, height float64) { return v.width, v.height }

// Resize sets the size of the visible area in pixels. The first call centers
// the origin.
func (v *Viewport) Resize(width, height float64) {
	if width == v.width && height == v.height {
		return
	}
	if v.width == 0 && v.height == 0 {
		v.transform.OffsetX = width / 2
		v.transform.OffsetY = height / 2
	} else {
		// keep the center of the view fixed
		v.transform.OffsetX += (width - v.width) / 2
		v.transform.OffsetY += (height - v.height) / 2
	}
	v.width, v.height = width, height
	v.dirty = true
}

// Pan translates the view by a pixel delta.
func (v *Viewport) Pan(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	v.transform.OffsetX += dx
	v.transform.OffsetY += dy
	v.dirty = true
}

// Scroll pans the view by a wheel delta, first converting it from the
// device's unit to pixels. Scrolling down moves the content up.
func (v *Viewport) Scroll(dx, dy float64, unit ScrollUnit) {
	px, py := v.scrollPixels(dx, dy, unit)
	v.Pan(-px, -py)
}

func (v *Viewport) scrollPixels(dx, dy float64, unit ScrollUnit) (float64, float64) {
	switch unit {
	case ScrollLine:
		return dx * v.cfg.LineHeight, dy * v.cfg.LineHeight
	case ScrollPage:
		return dx * v.width, dy * v.height
	default:
		return dx, dy
	}
}

// Zoom scales the view by factor, keeping the point under (anchorX, anchorY)
// fixed on screen. The scale is clamped to the configured limits.
func (v *Viewport) Zoom(factor, anchorX, anchorY float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	scale := min(max(v.transform.Scale*factor, v.cfg.MinScale), v.cfg.MaxScale)
	if scale == v.transform.Scale {
		return
	}
	p := v.transform.ToLayout(anchorX, anchorY)
	v.transform.Scale = scale
	v.transform.OffsetX = anchorX - p.X*scale
	v.transform.OffsetY = anchorY - p.Y*scale
	v.dirty = true
}

// Reset restores the initial zoom and centers the origin.
func (v *Viewport) Reset() {
	v.transform = Transform{OffsetX: v.width / 2, OffsetY: v.height / 2, Scale: v.cfg.Scale}
	v.dirty = true
}

// ScreenToLattice returns the fractional lattice coordinates under a screen
// point. It is meant for bounds estimation, never for node identity.
func (v *Viewport) ScreenToLattice(x, y float64) (fifths, thirds float64) {
	return tonnetz.FromPosition(v.transform.ToLayout(x, y))
}

// VisibleRange returns the extent of the visible area in lattice
// coordinates, computed from its four corners.
func (v *Viewport) VisibleRange() (fifthMin, fifthMax, thirdMin, thirdMax float64) {
	fifthMin, thirdMin = math.Inf(1), math.Inf(1)
	fifthMax, thirdMax = math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{0, 0}, {v.width, 0}, {0, v.height}, {v.width, v.height}} {
		f, t := v.ScreenToLattice(c[0], c[1])
		fifthMin, fifthMax = min(fifthMin, f), max(fifthMax, f)
		thirdMin, thirdMax = min(thirdMin, t), max(thirdMax, t)
	}
	return
}

// MaybeExpand compares the visible range against the store bounds and
// extends every side that is within the margin by the fixed step. It returns
// the number of nodes created; once the bounds cover the view with margin to
// spare it creates none.
func (v *Viewport) MaybeExpand() int {
	if v.width <= 0 || v.height <= 0 {
		return 0
	}
	fMin, fMax, tMin, tMax := v.VisibleRange()
	b := v.store.Bounds()
	margin := float64(v.cfg.Margin)
	created := 0
	if fMin-margin < float64(b.FifthMin) {
		created += v.store.ExtendFifths(-v.cfg.Step)
	}
	if fMax+margin > float64(b.FifthMax) {
		created += v.store.ExtendFifths(v.cfg.Step)
	}
	if tMin-margin < float64(b.ThirdMin) {
		created += v.store.ExtendThirds(-v.cfg.Step)
	}
	if tMax+margin > float64(b.ThirdMax) {
		created += v.store.ExtendThirds(v.cfg.Step)
	}
	return created
}

// Invalidate forces an expansion check on the next Frame.
func (v *Viewport) Invalidate() { v.dirty = true }

// Frame runs the expansion check if the transform changed since the last
// frame. While the store keeps growing the check stays armed, so a view that
// outran the bounds catches up one step per frame.
func (v *Viewport) Frame() int {
	if !v.dirty {
		return 0
	}
	created := v.MaybeExpand()
	v.dirty = created > 0
	return created
}

// NodeAt returns the materialized node closest to a screen point, if one
// lies within radius pixels.
func (v *Viewport) NodeAt(x, y, radius float64) (*tonnetz.Node, bool) {
	f, t := v.ScreenToLattice(x, y)
	var best *tonnetz.Node
	bestDist := radius * radius
	for dt := -1; dt <= 1; dt++ {
		for df := -1; df <= 1; df++ {
			c := tonnetz.Coord{Fifths: int(math.Round(f)) + df, Thirds: int(math.Round(t)) + dt}
			n, ok := v.store.Node(c)
			if !ok {
				continue
			}
			sx, sy := v.transform.ToScreen(n.Position)
			if d := (sx-x)*(sx-x) + (sy-y)*(sy-y); d <= bestDist {
				best, bestDist = n, d
			}
		}
	}
	return best, best != nil
}
