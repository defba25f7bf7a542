package climb

import "github.com/go-gl/mathgl/mgl32"

// QueryKind identifies the primitive used by a shape query.
type QueryKind uint8

const (
	QueryCapsule QueryKind = iota
	QueryRay
)

func (k QueryKind) String() string {
	switch k {
	case QueryCapsule:
		return "capsule"
	case QueryRay:
		return "ray"
	default:
		return "unknown"
	}
}

// ShapeCaster issues the two climbing probes against a CollisionQuerier using the configured
// capsule dimensions. Wall probes use the surface filter and ground probes the floor filter.
type ShapeCaster struct {
	world       CollisionQuerier
	radius      float32
	halfHeight  float32
	filter      SurfaceFilter
	floorFilter SurfaceFilter
	debug       DebugHook
}

// NewShapeCaster returns a ShapeCaster using the probe settings of t.
func NewShapeCaster(world CollisionQuerier, t Tunables, debug DebugHook) ShapeCaster {
	return ShapeCaster{
		world:       world,
		radius:      t.CapsuleRadius,
		halfHeight:  t.CapsuleHalfHeight,
		filter:      t.SurfaceFilter,
		floorFilter: t.FloorFilter,
		debug:       debug,
	}
}

// CapsuleSweep returns every climbable surface touched by the probe capsule between start and end.
func (s ShapeCaster) CapsuleSweep(start, end mgl32.Vec3) []SurfaceHit {
	return s.sweep(start, end, s.filter)
}

// FloorSweep returns every ground surface touched by the probe capsule between start and end.
func (s ShapeCaster) FloorSweep(start, end mgl32.Vec3) []SurfaceHit {
	return s.sweep(start, end, s.floorFilter)
}

// Ray returns the nearest climbable surface between start and end.
func (s ShapeCaster) Ray(start, end mgl32.Vec3) SurfaceHit {
	return s.ray(start, end, s.filter)
}

// FloorRay returns the nearest ground surface between start and end.
func (s ShapeCaster) FloorRay(start, end mgl32.Vec3) SurfaceHit {
	return s.ray(start, end, s.floorFilter)
}

func (s ShapeCaster) sweep(start, end mgl32.Vec3, filter SurfaceFilter) []SurfaceHit {
	if s.world == nil {
		return nil
	}
	hits := s.world.SweepCapsule(start, end, s.radius, s.halfHeight, filter)
	if s.debug != nil {
		s.debug(QueryCapsule, start, end, hits)
	}
	return hits
}

func (s ShapeCaster) ray(start, end mgl32.Vec3, filter SurfaceFilter) SurfaceHit {
	if s.world == nil {
		return SurfaceHit{}
	}
	hit := s.world.CastRay(start, end, filter)
	if s.debug != nil {
		var hits []SurfaceHit
		if hit.Blocking {
			hits = []SurfaceHit{hit}
		}
		s.debug(QueryRay, start, end, hits)
	}
	return hit
}
