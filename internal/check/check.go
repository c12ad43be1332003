// Package check provides morphology quality checks (--check mode):
// radius monotonicity, flatness, and intra-section back-tracking.
package check

import (
	"path/filepath"

	"github.com/neurobench/morphstats/internal/config"
	"github.com/neurobench/morphstats/internal/display"
	"github.com/neurobench/morphstats/internal/morph"
	"github.com/neurobench/morphstats/internal/pipeline"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// NeuriteResult holds the verdicts for one neurite. Monotonic is a pass
// flag; Flat and BackTracking flag defects.
type NeuriteResult struct {
	Index        int
	Type         morph.NeuriteType
	Monotonic    bool
	Flat         bool
	BackTracking bool
}

// OK reports whether the neurite passed every check.
func (r *NeuriteResult) OK() bool {
	return r.Monotonic && !r.Flat && !r.BackTracking
}

// CheckMorphology runs the three checks over every neurite of m.
func CheckMorphology(m *morph.Morphology, cfg *config.Config) []NeuriteResult {
	results := make([]NeuriteResult, 0, len(m.Neurites))
	for i, n := range m.Neurites {
		results = append(results, NeuriteResult{
			Index:        i,
			Type:         n.Type,
			Monotonic:    IsMonotonic(n, cfg.MonoTol),
			Flat:         IsFlat(n, cfg.FlatTol, cfg.FlatMethod),
			BackTracking: IsBackTracking(n),
		})
	}
	return results
}

// RunCheck runs the --check flow: discover inputs, load each morphology,
// check every neurite, and report pass/fail. Returns false when any file
// fails to load or any neurite fails a check.
func RunCheck(cfg *config.Config, log Logger) bool {
	files, err := pipeline.Discover(cfg.InputPath)
	if err != nil {
		log.Error("%v", err)
		return false
	}
	if len(files) == 0 {
		log.Warn("No morphology files found in %s", cfg.InputPath)
		return true
	}

	log.Info("=== Morphology Check (%d files) ===", len(files))

	ok := true
	for _, path := range files {
		base := filepath.Base(path)

		m, err := morph.Load(path)
		if err != nil {
			log.Error("%s: %v", base, err)
			ok = false
			continue
		}

		fileOK := true
		for _, r := range CheckMorphology(m, cfg) {
			if r.OK() {
				log.Debug("%s: neurite %d (%s) passed", base, r.Index, r.Type)
				continue
			}
			fileOK = false
			if !r.Monotonic {
				log.Warn("%s: neurite %d (%s) is not monotonic", base, r.Index, r.Type)
			}
			if r.Flat {
				log.Warn("%s: neurite %d (%s) is flat (%s < %g)", base, r.Index, r.Type, cfg.FlatMethod, cfg.FlatTol)
			}
			if r.BackTracking {
				log.Warn("%s: neurite %d (%s) back-tracks on itself", base, r.Index, r.Type)
			}
		}

		if fileOK {
			log.Success("%s: OK (%s)", base, display.FormatCount(len(m.Neurites), "neurite"))
		} else {
			ok = false
		}
	}
	return ok
}

// IsMonotonic reports whether radii never grow from parent to child sample
// beyond tol. Sections share their fork point with their parent, so the
// in-section scan also covers section boundaries.
func IsMonotonic(n *morph.Neurite, tol float64) bool {
	for _, s := range n.Sections() {
		for i := 1; i < len(s.Points); i++ {
			if s.Points[i].Radius > s.Points[i-1].Radius+tol {
				return false
			}
		}
	}
	return true
}

// IsFlat reports whether the neurite is flat under the given method:
// FlatTolerance flags any principal extent below tol, FlatRatio flags a
// smallest/second-smallest extent ratio below tol.
func IsFlat(n *morph.Neurite, tol float64, method config.FlatMethod) bool {
	ext := morph.PrincipalDirectionExtents(n.Points())
	if method == config.FlatRatio {
		if ext[1] == 0 {
			return true
		}
		return ext[0]/ext[1] < tol
	}
	return ext[0] < tol || ext[1] < tol || ext[2] < tol
}

// IsBackTracking reports whether any segment of a section folds back into
// the cylindrical volume of an earlier segment in the same section. A fold
// requires the two segments to face opposite directions, overlap radially,
// and project within roughly half the earlier segment's length.
func IsBackTracking(n *morph.Neurite) bool {
	for _, s := range n.Sections() {
		segs := nonZeroSegments(s.Points)
		for i := 1; i < len(segs); i++ {
			for j := 0; j < i; j++ {
				if isInsideCylinder(segs[i], segs[j]) {
					return true
				}
			}
		}
	}
	return false
}

type segment struct {
	a, b morph.Point
}

func (s segment) dir() morph.Vec3 { return morph.Direction(s.a, s.b) }

func (s segment) maxRadius() float64 {
	if s.a.Radius > s.b.Radius {
		return s.a.Radius
	}
	return s.b.Radius
}

// nonZeroSegments pairs consecutive points, dropping zero-length segments
// which carry no direction.
func nonZeroSegments(points []morph.Point) []segment {
	var segs []segment
	for i := 1; i < len(points); i++ {
		s := segment{points[i-1], points[i]}
		if s.dir().Norm() > 0 {
			segs = append(segs, s)
		}
	}
	return segs
}

// isInsideCylinder reports whether seg1 comes back into seg2's volume:
// opposite verse plus radial and longitudinal overlap.
func isInsideCylinder(seg1, seg2 segment) bool {
	if seg2.dir().Dot(seg1.dir()) >= 0 {
		return false
	}

	// Vector from the center of seg2 to the endpoint of seg1, split into
	// its projection along seg2 and the orthogonal remainder.
	center := morph.Pos(seg2.a).Add(morph.Pos(seg2.b)).Scale(0.5)
	cp := morph.Pos(seg1.b).Sub(center)
	axis := seg2.dir()
	prj := morph.VectorProjection(cp, axis)

	radial := cp.Sub(prj).Norm()
	if radial > seg1.maxRadius()+seg2.maxRadius() {
		return false
	}

	// 5% slack past the half-length.
	return prj.Norm() < 0.55*axis.Norm()
}
