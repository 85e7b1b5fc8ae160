package explorer

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/tonnetz-go/tonnetz"
	"github.com/tonnetz-go/tonnetz/lattice"
)

// NodeView is a node as presented to the user: its identity plus what the
// current tuning makes of it.
type NodeView struct {
	Coord        tonnetz.Coord
	Position     tonnetz.Point
	Note         string
	Ratio        string
	Frequency    float64
	OctaveOffset int
	Selected     bool
	Sounding     bool
}

//go:embed summary.tmpl
var defaultSummaryTemplate string

func parseSummaryTemplate(text string) (*template.Template, error) {
	if strings.TrimSpace(text) == "" {
		text = defaultSummaryTemplate
	}
	return template.New("summary").Funcs(sprig.TxtFuncMap()).Parse(text)
}

func (m *Model) nodeView(n *tonnetz.Node) NodeView {
	offset := m.d.Overrides[n.Coord]
	return NodeView{
		Coord:        n.Coord,
		Position:     n.Position,
		Note:         n.NoteName(offset),
		Ratio:        n.RatioLabel(offset),
		Frequency:    n.Frequency(m.d.BaseFrequency, offset),
		OctaveOffset: offset,
		Selected:     m.d.Selection[n.Coord],
		Sounding:     m.Sounding(n.Coord),
	}
}

// Node returns the presentation of the materialized node at c.
func (m *Model) Node(c tonnetz.Coord) (NodeView, bool) {
	n, ok := m.store.Node(c)
	if !ok {
		return NodeView{}, false
	}
	return m.nodeView(n), true
}

// Nodes yields every materialized node, row by row.
func (m *Model) Nodes(yield func(NodeView) bool) {
	for n := range m.store.Nodes {
		if !yield(m.nodeView(n)) {
			return
		}
	}
}

// Edges yields every edge of the lattice in creation order.
func (m *Model) Edges(yield func(lattice.Edge) bool) {
	m.store.Edges(yield)
}

// NodeAt returns the node under a screen point, if one lies within radius
// pixels.
func (m *Model) NodeAt(x, y, radius float64) (NodeView, bool) {
	n, ok := m.view.NodeAt(x, y, radius)
	if !ok {
		return NodeView{}, false
	}
	return m.nodeView(n), true
}

// Summary renders the selected nodes, in lattice order, with the summary
// template. A template failure is returned as the summary text.
func (m *Model) Summary() string {
	coords := m.SelectedNodes()
	nodes := make([]NodeView, 0, len(coords))
	for _, c := range coords {
		if v, ok := m.Node(c); ok {
			nodes = append(nodes, v)
		}
	}
	var b strings.Builder
	err := m.summary.Execute(&b, struct {
		Nodes         []NodeView
		BaseFrequency float64
		Waveform      string
	}{nodes, m.d.BaseFrequency, WaveformName(m.d.Waveform)})
	if err != nil {
		return "summary: " + err.Error()
	}
	return b.String()
}
