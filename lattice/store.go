// Package lattice holds the materialized part of the infinite tuning lattice
// and the view transform used to decide when it needs to grow.
package lattice

import (
	"github.com/tonnetz-go/tonnetz"
)

type (
	// Bounds is the rectangle of coordinates that has been materialized,
	// inclusive on every side.
	Bounds struct {
		FifthMin, FifthMax int
		ThirdMin, ThirdMax int
	}

	// Edge is an unordered pair of neighboring nodes. A is always the west or
	// south end, so the same edge has one key from either direction.
	Edge struct {
		A, B tonnetz.Coord
	}

	// Store is the single authority for node identity. It owns the sparse
	// coordinate map and the bounds rectangle. Every coordinate inside the
	// bounds has a node, and nodes are never removed.
	Store struct {
		nodes     map[tonnetz.Coord]*tonnetz.Node
		edges     map[Edge]struct{}
		edgeList  []Edge
		bounds    Bounds
		maxExtent int
	}
)

// NewStore materializes the square of half-width radius around the origin.
// maxExtent caps |fifths| and |thirds| for all later growth; zero means no
// cap. The origin is always materialized.
func NewStore(radius, maxExtent int) *Store {
	radius = max(radius, 0)
	if maxExtent > 0 {
		radius = min(radius, maxExtent)
	}
	s := &Store{
		nodes:     make(map[tonnetz.Coord]*tonnetz.Node),
		edges:     make(map[Edge]struct{}),
		maxExtent: maxExtent,
		bounds:    Bounds{-radius, radius, -radius, radius},
	}
	for t := -radius; t <= radius; t++ {
		for f := -radius; f <= radius; f++ {
			s.EnsureNode(tonnetz.Coord{Fifths: f, Thirds: t})
		}
	}
	return s
}

// MakeEdge returns the canonical key of the edge between a and b.
func MakeEdge(a, b tonnetz.Coord) Edge {
	if b.Less(a) {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

func (b Bounds) Contains(c tonnetz.Coord) bool {
	return c.Fifths >= b.FifthMin && c.Fifths <= b.FifthMax &&
		c.Thirds >= b.ThirdMin && c.Thirds <= b.ThirdMax
}

func (b Bounds) Columns() int { return b.FifthMax - b.FifthMin + 1 }
func (b Bounds) Rows() int    { return b.ThirdMax - b.ThirdMin + 1 }

// EnsureNode returns the node at c, creating it if needed. Creation links
// the new node to every existing grid neighbor, so each node ends up with
// its west and south edges no matter in which order the grid was filled.
// Calling EnsureNode repeatedly with the same c returns the same pointer.
func (s *Store) EnsureNode(c tonnetz.Coord) *tonnetz.Node {
	if n, ok := s.nodes[c]; ok {
		return n
	}
	n := tonnetz.NewNode(c)
	s.nodes[c] = &n
	for _, nb := range [...]tonnetz.Coord{c.West(), c.South(), c.East(), c.North()} {
		if _, ok := s.nodes[nb]; ok {
			s.connect(c, nb)
		}
	}
	return &n
}

func (s *Store) connect(a, b tonnetz.Coord) {
	e := MakeEdge(a, b)
	if _, ok := s.edges[e]; ok {
		return
	}
	s.edges[e] = struct{}{}
	s.edgeList = append(s.edgeList, e)
}

// Node returns the materialized node at c, if any.
func (s *Store) Node(c tonnetz.Coord) (*tonnetz.Node, bool) {
	n, ok := s.nodes[c]
	return n, ok
}

func (s *Store) Bounds() Bounds { return s.bounds }

func (s *Store) MaxExtent() int { return s.maxExtent }

// Len returns the number of materialized nodes.
func (s *Store) Len() int { return len(s.nodes) }

func (s *Store) NumEdges() int { return len(s.edgeList) }

// HasEdge reports whether a and b are connected.
func (s *Store) HasEdge(a, b tonnetz.Coord) bool {
	_, ok := s.edges[MakeEdge(a, b)]
	return ok
}

// ExtendFifths grows the bounds by |delta| columns, to the east when delta
// is positive and to the west when negative, and returns the number of nodes
// created. Growth stops at the extent cap.
func (s *Store) ExtendFifths(delta int) int {
	created := 0
	for ; delta > 0 && s.canGrow(s.bounds.FifthMax+1); delta-- {
		s.bounds.FifthMax++
		created += s.fillColumn(s.bounds.FifthMax)
	}
	for ; delta < 0 && s.canGrow(s.bounds.FifthMin-1); delta++ {
		s.bounds.FifthMin--
		created += s.fillColumn(s.bounds.FifthMin)
	}
	return created
}

// ExtendThirds grows the bounds by |delta| rows, to the north when delta is
// positive and to the south when negative, and returns the number of nodes
// created.
func (s *Store) ExtendThirds(delta int) int {
	created := 0
	for ; delta > 0 && s.canGrow(s.bounds.ThirdMax+1); delta-- {
		s.bounds.ThirdMax++
		created += s.fillRow(s.bounds.ThirdMax)
	}
	for ; delta < 0 && s.canGrow(s.bounds.ThirdMin-1); delta++ {
		s.bounds.ThirdMin--
		created += s.fillRow(s.bounds.ThirdMin)
	}
	return created
}

func (s *Store) canGrow(v int) bool {
	return s.maxExtent <= 0 || (v >= -s.maxExtent && v <= s.maxExtent)
}

func (s *Store) fillColumn(f int) int {
	before := len(s.nodes)
	for t := s.bounds.ThirdMin; t <= s.bounds.ThirdMax; t++ {
		s.EnsureNode(tonnetz.Coord{Fifths: f, Thirds: t})
	}
	return len(s.nodes) - before
}

func (s *Store) fillRow(t int) int {
	before := len(s.nodes)
	for f := s.bounds.FifthMin; f <= s.bounds.FifthMax; f++ {
		s.EnsureNode(tonnetz.Coord{Fifths: f, Thirds: t})
	}
	return len(s.nodes) - before
}

// Nodes iterates the materialized nodes row by row, south to north and west
// to east.
func (s *Store) Nodes(yield func(*tonnetz.Node) bool) {
	for t := s.bounds.ThirdMin; t <= s.bounds.ThirdMax; t++ {
		for f := s.bounds.FifthMin; f <= s.bounds.FifthMax; f++ {
			if n, ok := s.nodes[tonnetz.Coord{Fifths: f, Thirds: t}]; ok {
				if !yield(n) {
					return
				}
			}
		}
	}
}

// Edges iterates the edges in creation order.
func (s *Store) Edges(yield func(Edge) bool) {
	for _, e := range s.edgeList {
		if !yield(e) {
			return
		}
	}
}
