package dendrogram

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/neurobench/morphstats/internal/morph"
)

// Fill colors per neurite type, the palette morphology viewers commonly use.
var treeColors = map[morph.NeuriteType]string{
	morph.Axon:           "blue",
	morph.BasalDendrite:  "red",
	morph.ApicalDendrite: "purple",
}

const svgMargin = 20.0

// RenderSVG renders the layout as an SVG document. Neurites are displaced
// side by side by half the sum of neighboring spreads; the y axis is
// flipped so trees grow upward.
func RenderSVG(l *Layout) []byte {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	type placed struct {
		color string
		rects []Rect
	}
	var all []placed

	displacement := 0.0
	for i, tree := range l.Trees {
		if i > 0 {
			displacement += 0.5 * (l.Trees[i-1].Dims[0] + tree.Dims[0])
		}
		color := treeColors[tree.Type]
		if color == "" {
			color = "gray"
		}
		p := placed{color: color}
		for _, r := range tree.Rects {
			var shifted Rect
			for k, v := range r {
				x := v[0] + displacement
				y := -v[1] // SVG y grows downward
				shifted[k] = [2]float64{x, y}
				minX, maxX = math.Min(minX, x), math.Max(maxX, x)
				minY, maxY = math.Min(minY, y), math.Max(maxY, y)
			}
			p.rects = append(p.rects, shifted)
		}
		all = append(all, p)
	}

	if len(all) == 0 || minX > maxX {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f">`+"\n",
		minX-svgMargin, minY-svgMargin,
		maxX-minX+2*svgMargin, maxY-minY+2*svgMargin)

	for _, p := range all {
		for _, r := range p.rects {
			fmt.Fprintf(&buf,
				`  <polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s" stroke="%s"/>`+"\n",
				r[0][0], r[0][1], r[1][0], r[1][1], r[2][0], r[2][1], r[3][0], r[3][1],
				p.color, p.color)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteSVG builds the layout for m and writes the rendered SVG to path.
func WriteSVG(m *morph.Morphology, path string) error {
	data := RenderSVG(Build(m))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dendrogram: %w", err)
	}
	return nil
}
