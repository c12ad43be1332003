// Package morph provides the neuron morphology object model, the SWC
// loader, and the morphometric feature functions. It is the stable call
// surface the rest of the repository depends on; callers never touch file
// formats or geometry directly.
package morph

import "math"

// Point is a single morphology sample: a position in µm and a radius.
type Point struct {
	X, Y, Z float64
	Radius  float64
}

// NeuriteType classifies a neurite tree. The values mirror the SWC type
// column (2=axon, 3=basal dendrite, 4=apical dendrite). AllNeurites is a
// query selector, never a stored type.
type NeuriteType int

const (
	Axon NeuriteType = iota
	BasalDendrite
	ApicalDendrite
	AllNeurites
)

// String returns the snake_case form used as a key in the statistics
// document.
func (t NeuriteType) String() string {
	switch t {
	case Axon:
		return "axon"
	case BasalDendrite:
		return "basal_dendrite"
	case ApicalDendrite:
		return "apical_dendrite"
	case AllNeurites:
		return "all"
	}
	return "unknown"
}

// NeuriteTypes returns the fixed reporting order for per-type statistics.
func NeuriteTypes() []NeuriteType {
	return []NeuriteType{Axon, BasalDendrite, ApicalDendrite, AllNeurites}
}

// Section is an unbranched run of points between branch points. Its first
// point is shared with the last point of the parent section (the fork), so
// segment geometry is continuous across the boundary. Root sections start at
// the neurite's first sample.
type Section struct {
	ID       int
	Type     NeuriteType
	Points   []Point
	Parent   *Section
	Children []*Section
}

// Length returns the sum of consecutive point distances within the section.
func (s *Section) Length() float64 {
	var total float64
	for i := 1; i < len(s.Points); i++ {
		total += Distance(s.Points[i-1], s.Points[i])
	}
	return total
}

// Volume returns the sum of truncated-cone segment volumes within the section.
func (s *Section) Volume() float64 {
	var total float64
	for i := 1; i < len(s.Points); i++ {
		total += SegmentVolume(s.Points[i-1], s.Points[i])
	}
	return total
}

// IsFork reports whether the section ends in a branch point.
func (s *Section) IsFork() bool { return len(s.Children) >= 2 }

// IsLeaf reports whether the section is a termination.
func (s *Section) IsLeaf() bool { return len(s.Children) == 0 }

// Last returns the section's final point (the fork when it branches).
func (s *Section) Last() Point { return s.Points[len(s.Points)-1] }

// BranchOrder returns the number of branch points between the section and
// the neurite root (root sections are order 0).
func (s *Section) BranchOrder() int {
	order := 0
	for p := s.Parent; p != nil; p = p.Parent {
		if p.IsFork() {
			order++
		}
	}
	return order
}

// Neurite is a tree of sections of a single type, rooted at the soma.
type Neurite struct {
	Type NeuriteType
	Root *Section
}

// Sections returns the neurite's sections in pre-order. The order is
// deterministic: children are visited in their SWC declaration order.
func (n *Neurite) Sections() []*Section {
	var out []*Section
	var walk func(*Section)
	walk = func(s *Section) {
		out = append(out, s)
		for _, c := range s.Children {
			walk(c)
		}
	}
	walk(n.Root)
	return out
}

// Points returns every sample point of the neurite. Shared fork points are
// reported once, at the section that introduces them.
func (n *Neurite) Points() []Point {
	var out []Point
	for _, s := range n.Sections() {
		start := 0
		if s.Parent != nil {
			start = 1 // skip the fork point owned by the parent
		}
		out = append(out, s.Points[start:]...)
	}
	return out
}

// NSections returns the number of sections in the neurite.
func (n *Neurite) NSections() int { return len(n.Sections()) }

// NBifurcations returns the number of branch points in the neurite.
func (n *Neurite) NBifurcations() int {
	var count int
	for _, s := range n.Sections() {
		if s.IsFork() {
			count++
		}
	}
	return count
}

// NTerminations returns the number of terminal sections in the neurite.
func (n *Neurite) NTerminations() int {
	var count int
	for _, s := range n.Sections() {
		if s.IsLeaf() {
			count++
		}
	}
	return count
}

// NSegments returns the number of point-pair segments in the neurite.
func (n *Neurite) NSegments() int {
	var count int
	for _, s := range n.Sections() {
		count += len(s.Points) - 1
	}
	return count
}

// Soma is the cell body: its sample points and derived geometry.
type Soma struct {
	Points []Point
}

// Center returns the centroid of the soma samples.
func (s *Soma) Center() Point {
	if len(s.Points) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range s.Points {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(s.Points))
	return Point{X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

// Radius returns the soma radius: the sample radius for a single-sample
// soma, otherwise the mean distance of the samples from their centroid.
func (s *Soma) Radius() float64 {
	switch len(s.Points) {
	case 0:
		return 0
	case 1:
		return s.Points[0].Radius
	}
	center := s.Center()
	var total float64
	for _, p := range s.Points {
		total += Distance(center, p)
	}
	return total / float64(len(s.Points))
}

// SurfaceArea returns the sphere surface 4πr² for the soma radius.
func (s *Soma) SurfaceArea() float64 {
	r := s.Radius()
	return 4 * math.Pi * r * r
}

// Morphology is one loaded cell: its soma and neurite trees.
type Morphology struct {
	Name     string
	Soma     Soma
	Neurites []*Neurite
}

// NeuritesOfType returns the neurites matching t, preserving file order.
// AllNeurites matches everything.
func (m *Morphology) NeuritesOfType(t NeuriteType) []*Neurite {
	if t == AllNeurites {
		return m.Neurites
	}
	var out []*Neurite
	for _, n := range m.Neurites {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}
