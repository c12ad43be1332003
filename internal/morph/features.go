package morph

import "fmt"

// Statistic name lists. These are the fixed key sets of the output document;
// the extractor iterates them rather than discovering features dynamically.

// NeuriteFeatureNames returns the array-valued per-neurite statistics, in
// reporting order. Each is summarized to {mean, std, min, max} downstream.
func NeuriteFeatureNames() []string {
	return []string{
		"section_lengths",
		"section_volumes",
		"section_path_distances",
		"segment_lengths",
		"local_bifurcation_angles",
		"remote_bifurcation_angles",
	}
}

// NeuriteCountNames returns the scalar per-neurite statistics, in reporting
// order. These pass through unreduced.
func NeuriteCountNames() []string {
	return []string{
		"number_of_sections",
		"number_of_bifurcations",
		"number_of_terminations",
	}
}

// SomaFeatureNames returns the per-soma statistics, in reporting order.
func SomaFeatureNames() []string {
	return []string{
		"soma_radius",
		"soma_surface_area",
	}
}

// NeuriteFeature computes the named array-valued statistic over the neurites
// of type t. Unknown names are an error so a stale name list fails loudly.
func NeuriteFeature(name string, m *Morphology, t NeuriteType) ([]float64, error) {
	switch name {
	case "section_lengths":
		return overSections(m, t, (*Section).Length), nil
	case "section_volumes":
		return overSections(m, t, (*Section).Volume), nil
	case "section_path_distances":
		return sectionPathDistances(m, t), nil
	case "segment_lengths":
		return segmentLengths(m, t), nil
	case "local_bifurcation_angles":
		return bifurcationAngles(m, t, localAngle), nil
	case "remote_bifurcation_angles":
		return bifurcationAngles(m, t, remoteAngle), nil
	}
	return nil, fmt.Errorf("unknown neurite feature %q", name)
}

// NeuriteCount computes the named scalar statistic over the neurites of type t.
func NeuriteCount(name string, m *Morphology, t NeuriteType) (int, error) {
	var total int
	for _, n := range m.NeuritesOfType(t) {
		switch name {
		case "number_of_sections":
			total += n.NSections()
		case "number_of_bifurcations":
			total += n.NBifurcations()
		case "number_of_terminations":
			total += n.NTerminations()
		default:
			return 0, fmt.Errorf("unknown neurite count %q", name)
		}
	}
	return total, nil
}

// SomaFeature computes the named per-soma statistic.
func SomaFeature(name string, m *Morphology) (float64, error) {
	switch name {
	case "soma_radius":
		return m.Soma.Radius(), nil
	case "soma_surface_area":
		return m.Soma.SurfaceArea(), nil
	}
	return 0, fmt.Errorf("unknown soma feature %q", name)
}

// overSections maps a per-section scalar over every section of the matching
// neurites, in pre-order.
func overSections(m *Morphology, t NeuriteType, f func(*Section) float64) []float64 {
	var out []float64
	for _, n := range m.NeuritesOfType(t) {
		for _, s := range n.Sections() {
			out = append(out, f(s))
		}
	}
	return out
}

// sectionPathDistances returns the path length from the neurite root to the
// last point of each section. Child sections share their first point with
// the parent's fork, so section lengths accumulate without double counting.
func sectionPathDistances(m *Morphology, t NeuriteType) []float64 {
	var out []float64
	for _, n := range m.NeuritesOfType(t) {
		var walk func(s *Section, upstream float64)
		walk = func(s *Section, upstream float64) {
			d := upstream + s.Length()
			out = append(out, d)
			for _, c := range s.Children {
				walk(c, d)
			}
		}
		walk(n.Root, 0)
	}
	return out
}

// segmentLengths returns every consecutive point-pair distance. Fork points
// belong to the child section, so no pair is reported twice.
func segmentLengths(m *Morphology, t NeuriteType) []float64 {
	var out []float64
	for _, n := range m.NeuritesOfType(t) {
		for _, s := range n.Sections() {
			for i := 1; i < len(s.Points); i++ {
				out = append(out, Distance(s.Points[i-1], s.Points[i]))
			}
		}
	}
	return out
}

// localAngle measures between the directions to the first sample of each
// child branch; remoteAngle measures to the last point of each child section.
func localAngle(fork Point, a, b *Section) float64 {
	return AngleBetween(Direction(fork, a.Points[1]), Direction(fork, b.Points[1]))
}

func remoteAngle(fork Point, a, b *Section) float64 {
	return AngleBetween(Direction(fork, a.Last()), Direction(fork, b.Last()))
}

// bifurcationAngles returns one angle per branch point. Multifurcations
// contribute only the angle between their first two branches.
func bifurcationAngles(m *Morphology, t NeuriteType, angle func(Point, *Section, *Section) float64) []float64 {
	var out []float64
	for _, n := range m.NeuritesOfType(t) {
		for _, s := range n.Sections() {
			if !s.IsFork() {
				continue
			}
			out = append(out, angle(s.Last(), s.Children[0], s.Children[1]))
		}
	}
	return out
}
