package morph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3}
	b := Point{X: 4, Y: 6, Z: 3}
	assert.InDelta(t, 5.0, Distance(a, b), delta)
	assert.Zero(t, Distance(a, a))
}

func TestSegmentVolume_Cylinder(t *testing.T) {
	a := Point{Radius: 1}
	b := Point{X: 2, Radius: 1}
	assert.InDelta(t, 2*math.Pi, SegmentVolume(a, b), delta)
}

func TestSegmentVolume_Cone(t *testing.T) {
	// Full cone: r₂=0 → π/3·h·r₁².
	a := Point{Radius: 3}
	b := Point{X: 4}
	assert.InDelta(t, math.Pi/3*4*9, SegmentVolume(a, b), delta)
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name string
		v, w Vec3
		want float64
	}{
		{"orthogonal", Vec3{1, 0, 0}, Vec3{0, 1, 0}, math.Pi / 2},
		{"parallel", Vec3{1, 2, 3}, Vec3{2, 4, 6}, 0},
		{"opposite", Vec3{1, 0, 0}, Vec3{-5, 0, 0}, math.Pi},
		{"zero vector", Vec3{}, Vec3{1, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AngleBetween(tt.v, tt.w), delta)
		})
	}
}

func TestVectorProjection(t *testing.T) {
	v := Vec3{3, 4, 0}
	w := Vec3{10, 0, 0}
	assert.Equal(t, Vec3{3, 0, 0}, VectorProjection(v, w))
	assert.Equal(t, Vec3{}, VectorProjection(v, Vec3{}))
}

func TestPrincipalDirectionExtents_Line(t *testing.T) {
	// Collinear points along (1,1,0): one non-zero extent, the full spread.
	points := []Point{
		{X: 0, Y: 0},
		{X: 1, Y: 1},
		{X: 3, Y: 3},
	}
	ext := PrincipalDirectionExtents(points)
	assert.InDelta(t, 0, ext[0], 1e-9)
	assert.InDelta(t, 0, ext[1], 1e-9)
	assert.InDelta(t, math.Sqrt(18), ext[2], 1e-9)
}

func TestPrincipalDirectionExtents_PlanarCloud(t *testing.T) {
	// A z=0 cloud: the smallest extent collapses, the others stay positive.
	points := []Point{
		{X: 0, Y: 0},
		{X: 2, Y: 1},
		{X: 1, Y: 3},
		{X: 3, Y: 2},
	}
	ext := PrincipalDirectionExtents(points)
	assert.InDelta(t, 0, ext[0], 1e-9)
	assert.Greater(t, ext[1], 0.5)
	assert.Greater(t, ext[2], ext[1]-1e-12)
}

func TestPrincipalDirectionExtents_Empty(t *testing.T) {
	ext := PrincipalDirectionExtents(nil)
	assert.Equal(t, [3]float64{}, ext)
}
