package morph

// Geometry helpers shared by the feature functions, the quality checks, and
// the dendrogram layout.

import "math"

// Vec3 is a plain 3-vector used for directional math.
type Vec3 [3]float64

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Scale returns v scaled by f.
func (v Vec3) Scale(f float64) Vec3 { return Vec3{v[0] * f, v[1] * f, v[2] * f} }

// Pos returns the position of a point as a vector, dropping the radius.
func Pos(p Point) Vec3 { return Vec3{p.X, p.Y, p.Z} }

// Direction returns the vector from a to b.
func Direction(a, b Point) Vec3 { return Pos(b).Sub(Pos(a)) }

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 { return Direction(a, b).Norm() }

// SegmentVolume returns the truncated-cone volume of the segment a→b:
// π/3 · h · (r₁² + r₁r₂ + r₂²).
func SegmentVolume(a, b Point) float64 {
	h := Distance(a, b)
	r1, r2 := a.Radius, b.Radius
	return math.Pi / 3.0 * h * (r1*r1 + r1*r2 + r2*r2)
}

// AngleBetween returns the angle in radians between two vectors, clamped
// against floating-point drift outside [-1, 1]. Zero vectors yield 0.
func AngleBetween(v, w Vec3) float64 {
	nv, nw := v.Norm(), w.Norm()
	if nv == 0 || nw == 0 {
		return 0
	}
	cos := v.Dot(w) / (nv * nw)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// VectorProjection returns the projection of v onto w. A zero w yields the
// zero vector.
func VectorProjection(v, w Vec3) Vec3 {
	d := w.Dot(w)
	if d == 0 {
		return Vec3{}
	}
	return w.Scale(v.Dot(w) / d)
}

// PrincipalDirectionExtents returns the extents of the point cloud along its
// three principal directions, ascending. The extent along a direction is the
// spread (max − min) of the centered points projected onto it.
func PrincipalDirectionExtents(points []Point) [3]float64 {
	var ext [3]float64
	if len(points) == 0 {
		return ext
	}

	// Center the cloud.
	var mean Vec3
	for _, p := range points {
		v := Pos(p)
		mean[0] += v[0]
		mean[1] += v[1]
		mean[2] += v[2]
	}
	mean = mean.Scale(1 / float64(len(points)))

	centered := make([]Vec3, len(points))
	for i, p := range points {
		centered[i] = Pos(p).Sub(mean)
	}

	// Covariance matrix (symmetric, 3x3).
	var cov [3][3]float64
	for _, v := range centered {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				cov[i][j] += v[i] * v[j]
			}
		}
	}
	n := float64(len(points))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cov[i][j] /= n
		}
	}

	axes := jacobiEigenvectors(cov)

	// Extent = spread of the projections onto each principal axis.
	for k, axis := range axes {
		min, max := math.Inf(1), math.Inf(-1)
		for _, v := range centered {
			d := v.Dot(axis)
			if d < min {
				min = d
			}
			if d > max {
				max = d
			}
		}
		ext[k] = max - min
	}

	// Ascending order keeps the flatness checks simple (smallest extent first).
	if ext[0] > ext[1] {
		ext[0], ext[1] = ext[1], ext[0]
	}
	if ext[1] > ext[2] {
		ext[1], ext[2] = ext[2], ext[1]
	}
	if ext[0] > ext[1] {
		ext[0], ext[1] = ext[1], ext[0]
	}
	return ext
}

// jacobiEigenvectors diagonalizes a symmetric 3x3 matrix with cyclic Jacobi
// rotations and returns the eigenvectors as rows. A handful of sweeps is
// plenty at this size.
func jacobiEigenvectors(a [3][3]float64) [3]Vec3 {
	v := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	for sweep := 0; sweep < 32; sweep++ {
		// Sum of squared off-diagonal entries; converged when negligible.
		off := a[0][1]*a[0][1] + a[0][2]*a[0][2] + a[1][2]*a[1][2]
		if off < 1e-24 {
			break
		}
		for p := 0; p < 2; p++ {
			for q := p + 1; q < 3; q++ {
				if a[p][q] == 0 {
					continue
				}
				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				t := 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta < 0 {
					t = -t
				}
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				for k := 0; k < 3; k++ {
					akp, akq := a[k][p], a[k][q]
					a[k][p] = c*akp - s*akq
					a[k][q] = s*akp + c*akq
				}
				for k := 0; k < 3; k++ {
					apk, aqk := a[p][k], a[q][k]
					a[p][k] = c*apk - s*aqk
					a[q][k] = s*apk + c*aqk
				}
				for k := 0; k < 3; k++ {
					vkp, vkq := v[k][p], v[k][q]
					v[k][p] = c*vkp - s*vkq
					v[k][q] = s*vkp + c*vkq
				}
			}
		}
	}

	// Columns of v are the eigenvectors.
	return [3]Vec3{
		{v[0][0], v[1][0], v[2][0]},
		{v[0][1], v[1][1], v[2][1]},
		{v[0][2], v[1][2], v[2][2]},
	}
}
