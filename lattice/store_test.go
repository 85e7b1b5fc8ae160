package lattice_test

import (
	"testing"

	"github.com/tonnetz-go/tonnetz"
	"github.com/tonnetz-go/tonnetz/lattice"
)

func TestNewStore(t *testing.T) {
	s := lattice.NewStore(2, 0)
	if s.Len() != 25 {
		t.Errorf("radius 2 gave %d nodes, want 25", s.Len())
	}
	// 5 rows of 4 horizontal edges plus 5 columns of 4 vertical edges
	if s.NumEdges() != 40 {
		t.Errorf("got %d edges, want 40", s.NumEdges())
	}
	if b := s.Bounds(); b != (lattice.Bounds{FifthMin: -2, FifthMax: 2, ThirdMin: -2, ThirdMax: 2}) {
		t.Errorf("bounds %+v", b)
	}
	if _, ok := s.Node(tonnetz.Coord{}); !ok {
		t.Errorf("origin missing")
	}
	if s0 := lattice.NewStore(0, 0); s0.Len() != 1 || s0.NumEdges() != 0 {
		t.Errorf("radius 0 gave %d nodes and %d edges", s0.Len(), s0.NumEdges())
	}
}

func TestEnsureNodeIsIdempotent(t *testing.T) {
	s := lattice.NewStore(1, 0)
	c := tonnetz.Coord{Fifths: 1, Thirds: 1}
	a, _ := s.Node(c)
	b := s.EnsureNode(c)
	if a != b {
		t.Errorf("EnsureNode returned a different node for an existing coordinate")
	}
	nodes, edges := s.Len(), s.NumEdges()
	s.EnsureNode(c)
	if s.Len() != nodes || s.NumEdges() != edges {
		t.Errorf("repeated EnsureNode changed the store")
	}
}

func TestEdgesAreUnordered(t *testing.T) {
	a, b := tonnetz.Coord{}, tonnetz.Coord{Fifths: 1}
	if lattice.MakeEdge(a, b) != lattice.MakeEdge(b, a) {
		t.Errorf("edge key depends on direction")
	}
	s := lattice.NewStore(1, 0)
	if !s.HasEdge(b, a) || !s.HasEdge(a, tonnetz.Coord{Thirds: -1}) {
		t.Errorf("missing neighbor edge")
	}
	if s.HasEdge(a, tonnetz.Coord{Fifths: 1, Thirds: 1}) {
		t.Errorf("diagonal nodes are connected")
	}
	seen := map[lattice.Edge]bool{}
	for e := range s.Edges {
		if seen[e] {
			t.Errorf("edge %v listed twice", e)
		}
		seen[e] = true
	}
}

func TestExtend(t *testing.T) {
	s := lattice.NewStore(1, 0)
	if n := s.ExtendFifths(2); n != 6 {
		t.Errorf("two columns of height 3 created %d nodes", n)
	}
	if n := s.ExtendThirds(-1); n != 5 {
		t.Errorf("one row of width 5 created %d nodes", n)
	}
	b := s.Bounds()
	if b.FifthMax != 3 || b.ThirdMin != -2 || b.Columns() != 5 || b.Rows() != 4 {
		t.Errorf("bounds %+v", b)
	}
	count := 0
	for n := range s.Nodes {
		if !b.Contains(n.Coord) {
			t.Errorf("node %v outside bounds", n.Coord)
		}
		count++
	}
	if count != s.Len() || count != b.Columns()*b.Rows() {
		t.Errorf("iterated %d nodes, store has %d", count, s.Len())
	}
	// every node has its west and south edge inside the bounds
	for n := range s.Nodes {
		c := n.Coord
		if c.Fifths > b.FifthMin && !s.HasEdge(c, c.West()) {
			t.Errorf("%v has no west edge", c)
		}
		if c.Thirds > b.ThirdMin && !s.HasEdge(c, c.South()) {
			t.Errorf("%v has no south edge", c)
		}
	}
}

func TestMaxExtent(t *testing.T) {
	s := lattice.NewStore(5, 3)
	if b := s.Bounds(); b.FifthMax != 3 {
		t.Errorf("initial radius not capped: %+v", b)
	}
	if n := s.ExtendFifths(4); n != 0 {
		t.Errorf("grew past the cap by %d nodes", n)
	}
	if n := s.ExtendThirds(-10); n != 0 {
		t.Errorf("grew past the cap by %d nodes", n)
	}
}

func TestNodesIterationOrder(t *testing.T) {
	s := lattice.NewStore(1, 0)
	var prev *tonnetz.Node
	for n := range s.Nodes {
		if prev != nil && !prev.Coord.Less(n.Coord) {
			t.Errorf("%v came after %v", n.Coord, prev.Coord)
		}
		prev = n
	}
}
