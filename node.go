package tonnetz

import (
	"fmt"
	"math"
)

type (
	// Coord identifies a lattice node by how many perfect fifths and major
	// thirds are stacked to reach it from the origin. It is the permanent
	// identity of a node.
	Coord struct {
		Fifths, Thirds int
	}

	// Point is a position in lattice layout units: one fifth step is one unit
	// to the right, one third step is half a unit right and sqrt(3)/2 units up,
	// so that the grid forms triangles.
	Point struct {
		X, Y float64
	}

	// Node is the immutable harmonic description of one lattice point. All
	// fields are derived from Coord by NewNode.
	Node struct {
		Coord       Coord
		Raw         Rational // Fifth^Fifths * MajorThird^Thirds
		Ratio       Rational // Raw reduced into [1, 2)
		OctaveShift int      // Raw == Ratio * 2^OctaveShift
		Semitones   int      // Fifths*7 + Thirds*4 - OctaveShift*12
		PitchClass  string
		Octave      int
		Position    Point
	}
)

const (
	SemitonesPerFifth = 7
	SemitonesPerThird = 4

	// MinOctaveOffset and MaxOctaveOffset bound the per-node audition
	// transposition.
	MinOctaveOffset = -6
	MaxOctaveOffset = 6

	// ReferenceOctave is the octave number of the origin node.
	ReferenceOctave = 4
)

var (
	Fifth      = NewRational(3, 2)
	MajorThird = NewRational(5, 4)
)

var pitchClasses = [12]string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

var thirdRise = math.Sqrt(3) / 2

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Fifths, c.Thirds) }

func (c Coord) West() Coord  { return Coord{c.Fifths - 1, c.Thirds} }
func (c Coord) East() Coord  { return Coord{c.Fifths + 1, c.Thirds} }
func (c Coord) South() Coord { return Coord{c.Fifths, c.Thirds - 1} }
func (c Coord) North() Coord { return Coord{c.Fifths, c.Thirds + 1} }

// Less orders coordinates by thirds, then fifths.
func (c Coord) Less(o Coord) bool {
	if c.Thirds != o.Thirds {
		return c.Thirds < o.Thirds
	}
	return c.Fifths < o.Fifths
}

// Distance is the number of generator steps between c and the origin.
func (c Coord) Distance() int {
	return abs(c.Fifths) + abs(c.Thirds)
}

// NewNode computes the node at c. It is a pure function of c: calling it
// twice yields identical ratios and names. Callers that need node identity
// must go through a lattice store rather than calling this directly.
func NewNode(c Coord) Node {
	raw := Fifth.Pow(c.Fifths).Mul(MajorThird.Pow(c.Thirds))
	ratio, shift := NormalizeToOctave(raw)
	semitones := c.Fifths*SemitonesPerFifth + c.Thirds*SemitonesPerThird - shift*12
	return Node{
		Coord:       c,
		Raw:         raw,
		Ratio:       ratio,
		OctaveShift: shift,
		Semitones:   semitones,
		PitchClass:  PitchClass(semitones),
		Octave:      ReferenceOctave + floorDiv(semitones, 12),
		Position:    Position(c),
	}
}

// PitchClass returns the note name for a semitone offset from C.
func PitchClass(semitones int) string {
	return pitchClasses[PitchClassIndex(semitones)]
}

// PitchClassIndex folds a semitone offset from C into 0..11.
func PitchClassIndex(semitones int) int { return mod(semitones, 12) }

// Position maps a coordinate to layout units.
func Position(c Coord) Point {
	return Point{
		X: float64(c.Fifths) + float64(c.Thirds)/2,
		Y: -float64(c.Thirds) * thirdRise,
	}
}

// FromPosition inverts Position, returning fractional lattice coordinates.
func FromPosition(p Point) (fifths, thirds float64) {
	thirds = -p.Y / thirdRise
	fifths = p.X - thirds/2
	return fifths, thirds
}

// Frequency returns the pitch of the node in Hz for the given base frequency
// and audition octave offset.
func (n *Node) Frequency(base float64, octaveOffset int) float64 {
	return base * n.Ratio.Float64() * math.Exp2(float64(octaveOffset))
}

// NoteName returns the pitch class with its octave number, e.g. "G4".
func (n *Node) NoteName(octaveOffset int) string {
	return fmt.Sprintf("%s%d", n.PitchClass, n.Octave+octaveOffset)
}

// RatioLabel returns the reduced ratio, with a power-of-two suffix when an
// octave offset is applied, e.g. "3/2 ×2^-1".
func (n *Node) RatioLabel(octaveOffset int) string {
	if octaveOffset == 0 {
		return n.Ratio.String()
	}
	return fmt.Sprintf("%s ×2^%d", n.Ratio, octaveOffset)
}

// ClampOctaveOffset limits an audition transposition to the allowed range.
func ClampOctaveOffset(v int) int {
	return min(max(v, MinOctaveOffset), MaxOctaveOffset)
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func mod(a, b int) int {
	return ((a % b) + b) % b
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
