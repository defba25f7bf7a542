package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/game"
)

// SurfaceClass classifies a collision surface. A surface may carry several classes.
type SurfaceClass uint32

const (
	// ClassStatic is blocking geometry the character cannot climb.
	ClassStatic SurfaceClass = 1 << iota
	// ClassClimbable is geometry eligible for climbing.
	ClassClimbable
)

// SurfaceFilter selects which surface classes a query reports.
type SurfaceFilter uint32

const (
	FilterClimbable = SurfaceFilter(ClassClimbable)
	FilterAll       = SurfaceFilter(ClassStatic | ClassClimbable)
)

// Matches reports whether a surface of class c passes the filter.
func (f SurfaceFilter) Matches(c SurfaceClass) bool {
	return uint32(f)&uint32(c) != 0
}

// SurfaceHit is a single contact reported by a shape query.
type SurfaceHit struct {
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Blocking bool
	// Distance is the fraction of the query travelled before the contact, in [0, 1].
	Distance float32
}

// AggregatedSurface is the representative surface for the current tick. The zero value means no
// surface was detected.
type AggregatedSurface struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// Valid reports whether the surface has a usable normal.
func (s AggregatedSurface) Valid() bool {
	return s.Normal.LenSqr() > 0
}

// Aggregate averages the impact points of hits and normalizes the sum of their normals. Normals
// that cancel each other out produce a zero normal.
func Aggregate(hits []SurfaceHit) AggregatedSurface {
	if len(hits) == 0 {
		return AggregatedSurface{}
	}

	var point, normal mgl32.Vec3
	for _, h := range hits {
		point = point.Add(h.Point)
		normal = normal.Add(h.Normal)
	}
	return AggregatedSurface{
		Point:  point.Mul(1 / float32(len(hits))),
		Normal: game.SafeNormal(normal),
	}
}
