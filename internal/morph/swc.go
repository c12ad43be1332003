package morph

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// SWC type column values. Types outside this set are rejected; the statistic
// tables only know the three canonical neurite types.
const (
	swcSoma           = 1
	swcAxon           = 2
	swcBasalDendrite  = 3
	swcApicalDendrite = 4
)

// swcSample is one parsed SWC row before tree assembly.
type swcSample struct {
	id     int
	typ    int
	point  Point
	parent int
	line   int
}

// ParseSWC parses SWC morphology data into a Morphology. The format is one
// sample per line: "id type x y z radius parent", with '#' comments. Parents
// must be declared before their children, soma samples (type 1) must attach
// to the soma or be roots, and neurite samples must carry a known type.
func ParseSWC(data []byte, name string) (*Morphology, error) {
	samples, err := scanSamples(data)
	if err != nil {
		return nil, err
	}
	return buildMorphology(samples, name)
}

// scanSamples tokenizes the raw rows, validating ids, numbers, and ordering.
func scanSamples(data []byte) ([]swcSample, error) {
	var samples []swcSample
	seen := make(map[int]bool)

	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 7 {
			return nil, fmt.Errorf("swc: line %d: expected 7 columns, got %d", lineNo, len(fields))
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("swc: line %d: invalid id %q", lineNo, fields[0])
		}
		typ, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("swc: line %d: invalid type %q", lineNo, fields[1])
		}
		var coords [4]float64
		for i, f := range fields[2:6] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("swc: line %d: invalid number %q", lineNo, f)
			}
			coords[i] = v
		}
		parent, err := strconv.Atoi(fields[6])
		if err != nil {
			return nil, fmt.Errorf("swc: line %d: invalid parent %q", lineNo, fields[6])
		}

		if seen[id] {
			return nil, fmt.Errorf("swc: line %d: duplicate id %d", lineNo, id)
		}
		if parent != -1 && !seen[parent] {
			return nil, fmt.Errorf("swc: line %d: parent %d not declared before sample %d", lineNo, parent, id)
		}
		if typ != swcSoma && typ != swcAxon && typ != swcBasalDendrite && typ != swcApicalDendrite {
			return nil, fmt.Errorf("swc: line %d: unknown sample type %d", lineNo, typ)
		}
		seen[id] = true

		samples = append(samples, swcSample{
			id:     id,
			typ:    typ,
			point:  Point{X: coords[0], Y: coords[1], Z: coords[2], Radius: coords[3]},
			parent: parent,
			line:   lineNo,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("swc: read: %w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("swc: no samples found")
	}
	return samples, nil
}

// buildMorphology assembles soma and neurite trees from the flat sample list.
func buildMorphology(samples []swcSample, name string) (*Morphology, error) {
	byID := make(map[int]*swcSample, len(samples))
	children := make(map[int][]*swcSample)
	for i := range samples {
		s := &samples[i]
		byID[s.id] = s
		if s.parent != -1 {
			children[s.parent] = append(children[s.parent], s)
		}
	}

	m := &Morphology{Name: name}

	// Soma: every type-1 sample, attached to the soma or a root.
	for i := range samples {
		s := &samples[i]
		if s.typ != swcSoma {
			continue
		}
		if s.parent != -1 && byID[s.parent].typ != swcSoma {
			return nil, fmt.Errorf("swc: line %d: soma sample %d attached to a neurite", s.line, s.id)
		}
		m.Soma.Points = append(m.Soma.Points, s.point)
	}

	// Neurite roots: non-soma samples attached to the soma or floating.
	sectionID := 0
	for i := range samples {
		s := &samples[i]
		if s.typ == swcSoma {
			continue
		}
		if s.parent != -1 && byID[s.parent].typ != swcSoma {
			continue
		}
		root := buildSection(s, nil, children, &sectionID)
		m.Neurites = append(m.Neurites, &Neurite{
			Type: neuriteTypeFromSWC(s.typ),
			Root: root,
		})
	}

	if len(m.Neurites) == 0 {
		return nil, fmt.Errorf("swc: no neurites found")
	}
	return m, nil
}

// buildSection collects the unbranched chain starting at first and recurses
// into child sections at forks. Child sections re-use the fork point as their
// first point so segment geometry is continuous across the boundary.
func buildSection(first *swcSample, parent *Section, children map[int][]*swcSample, nextID *int) *Section {
	sec := &Section{
		ID:     *nextID,
		Type:   neuriteTypeFromSWC(first.typ),
		Parent: parent,
	}
	*nextID++

	if parent != nil {
		sec.Points = append(sec.Points, parent.Last())
	}

	cur := first
	for {
		sec.Points = append(sec.Points, cur.point)
		kids := children[cur.id]
		if len(kids) != 1 {
			for _, kid := range kids {
				sec.Children = append(sec.Children, buildSection(kid, sec, children, nextID))
			}
			return sec
		}
		cur = kids[0]
	}
}

func neuriteTypeFromSWC(typ int) NeuriteType {
	switch typ {
	case swcAxon:
		return Axon
	case swcBasalDendrite:
		return BasalDendrite
	case swcApicalDendrite:
		return ApicalDendrite
	}
	return AllNeurites // unreachable: scanSamples rejects unknown types
}
