// Package dendrogram lays out a morphology as a dendrogram and renders it
// to SVG. Each section contributes a vertical trapezoid (height = section
// length, widths from the boundary radii) and each bifurcation two
// horizontal bars; subtrees are spaced by their terminal counts.
package dendrogram

import (
	"github.com/neurobench/morphstats/internal/morph"
)

// Rect is one dendrogram quad: four (x, y) vertices.
type Rect [4][2]float64

// Layout holds the computed rectangles per neurite, with the per-neurite
// dimensions needed to place trees side by side.
type Layout struct {
	Trees []Tree
}

// Tree is the rectangle collection for a single neurite.
type Tree struct {
	Type  morph.NeuriteType
	Rects []Rect
	Dims  [2]float64 // max x-spread and height occupied
}

// horizontal spacing per terminal, in layout units.
const xSpace = 40.0

type builder struct {
	rects   []Rect
	maxDims [2]float64
}

// Build computes the dendrogram layout for every neurite of m.
func Build(m *morph.Morphology) *Layout {
	l := &Layout{}
	for _, n := range m.Neurites {
		b := &builder{}
		b.root(n.Root)
		l.Trees = append(l.Trees, Tree{
			Type:  n.Type,
			Rects: b.rects,
			Dims:  b.maxDims,
		})
	}
	return l
}

// root emits the vertical quad for the root section itself (its stem rises
// from the soma baseline) and then walks its subtree.
func (b *builder) root(s *morph.Section) {
	b.spacingX(s, 0)
	top := [2]float64{0, s.Length()}

	first := s.Points[0].Radius
	b.rects = append(b.rects, verticalSegment([2]float64{0, 0}, top, first, s.Last().Radius))
	if top[1] > b.maxDims[1] {
		b.maxDims[1] = top[1]
	}

	b.generate(s, top)
}

// generate walks the section tree, emitting a vertical quad per child
// section and a horizontal bar per branch displacement. offsets is the
// (x, y) position of the current fork.
func (b *builder) generate(s *morph.Section, offsets [2]float64) {
	startX := b.spacingX(s, offsets[0])

	parentRadius := s.Last().Radius

	for _, child := range s.Children {
		length := child.Length()
		childRadius := child.Last().Radius
		terms := float64(terminations(child))

		newOffsets := [2]float64{
			startX + xSpace*terms/2,
			offsets[1] + length,
		}

		b.rects = append(b.rects, verticalSegment(offsets, newOffsets, parentRadius, childRadius))

		if newOffsets[1] > b.maxDims[1] {
			b.maxDims[1] = newOffsets[1]
		}

		b.generate(child, newOffsets)

		startX += terms * xSpace

		// Horizontal bars exist only where the child was displaced
		// sideways, i.e. at real bifurcations.
		if offsets[0] != newOffsets[0] {
			b.rects = append(b.rects, horizontalSegment(offsets, newOffsets))
		}
	}
}

// spacingX centers the subtree around xoffset by its terminal spread and
// tracks the widest spread seen.
func (b *builder) spacingX(s *morph.Section, xoffset float64) float64 {
	spread := float64(terminations(s)) * xSpace
	if spread > b.maxDims[0] {
		b.maxDims[0] = spread
	}
	return xoffset - spread/2
}

// terminations counts the leaves under a section.
func terminations(s *morph.Section) int {
	if s.IsLeaf() {
		return 1
	}
	var count int
	for _, c := range s.Children {
		count += terminations(c)
	}
	return count
}

// verticalSegment is the trapezoid from the parent fork up to the child
// end, wide as the boundary radii.
func verticalSegment(old, new [2]float64, parentRadius, childRadius float64) Rect {
	return Rect{
		{new[0] - parentRadius, old[1]},
		{new[0] - childRadius, new[1]},
		{new[0] + childRadius, new[1]},
		{new[0] + parentRadius, old[1]},
	}
}

// horizontalSegment is the flat bar connecting a fork to a displaced child.
func horizontalSegment(old, new [2]float64) Rect {
	const thickness = 1.0
	return Rect{
		{old[0], old[1]},
		{new[0], old[1]},
		{new[0], old[1] - thickness},
		{old[0], old[1] - thickness},
	}
}

// NRects returns the expected rectangle count for a neurite: one vertical
// quad per section and one bar per sideways-displaced child. Exposed for
// tests.
func NRects(n *morph.Neurite) int {
	count := 0
	for _, s := range n.Sections() {
		count++
		if s.IsFork() {
			count += len(s.Children)
		}
	}
	return count
}
