package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/climb"
	"github.com/oomph-ac/climbsim/game"
)

// SweepCapsule moves an upright capsule from start to end and reports every surface matching
// filter that it touches. The capsule is treated as its bounding box: each surface is grown by the
// capsule extents and the capsule centre is traced against the grown box. Surfaces the capsule
// already overlaps at start are reported with a zero distance and a normal pointing from the
// surface towards the capsule axis.
func (w *World) SweepCapsule(start, end mgl32.Vec3, radius, halfHeight float32, filter climb.SurfaceFilter) []climb.SurfaceHit {
	area := game.CapsuleBounds(start, radius, halfHeight).Extend(end.Sub(start))
	extents := mgl32.Vec3{radius, halfHeight, radius}
	length := end.Sub(start).Len()

	var hits []climb.SurfaceHit
	for _, index := range w.nearby(area) {
		s := w.surfaces[index]
		if !filter.Matches(s.Class) {
			continue
		}

		grown := s.Box.GrowVec3(extents)
		if grown.Vec3Within(start) {
			hits = append(hits, overlapHit(s.Box, grown, start, radius, halfHeight))
			continue
		}
		if length <= 1e-6 {
			continue
		}
		res, ok := trace.BBoxIntercept(grown, start, end)
		if !ok {
			continue
		}
		centre := res.Position()
		hits = append(hits, climb.SurfaceHit{
			Point:    game.ClosestPointToBBox(centre, s.Box),
			Normal:   game.FaceNormal(res.Face()),
			Blocking: true,
			Distance: mgl32.Clamp(centre.Sub(start).Len()/length, 0, 1),
		})
	}
	return hits
}

// overlapHit builds the hit for a surface the capsule overlaps before moving.
func overlapHit(box, grown cube.BBox, centre mgl32.Vec3, radius, halfHeight float32) climb.SurfaceHit {
	// The capsule axis runs between the centres of its two hemispheres.
	axisHalf := math32.Max(halfHeight-radius, 0)
	min, max := box.Min(), box.Max()
	axisPoint := mgl32.Vec3{
		centre.X(),
		mgl32.Clamp(mgl32.Clamp(centre.Y(), min.Y(), max.Y()), centre.Y()-axisHalf, centre.Y()+axisHalf),
		centre.Z(),
	}
	point := game.ClosestPointToBBox(axisPoint, box)
	normal := game.SafeNormal(axisPoint.Sub(point))
	if normal == (mgl32.Vec3{}) {
		normal = game.FaceNormal(game.LeastPenetrationFace(centre, grown))
	}
	return climb.SurfaceHit{Point: point, Normal: normal, Blocking: true}
}

// CastRay returns the nearest surface matching filter between start and end.
func (w *World) CastRay(start, end mgl32.Vec3, filter climb.SurfaceFilter) climb.SurfaceHit {
	length := end.Sub(start).Len()
	if length <= 1e-6 {
		return climb.SurfaceHit{}
	}

	var (
		best climb.SurfaceHit
		seen = make(map[int]struct{})
	)
	inv := 1 / w.cellSize
	for cell := range game.CellsBetween(start.Mul(inv), end.Mul(inv)) {
		for _, index := range w.cells[cell] {
			if _, ok := seen[index]; ok {
				continue
			}
			seen[index] = struct{}{}

			s := w.surfaces[index]
			if !filter.Matches(s.Class) {
				continue
			}
			res, ok := trace.BBoxIntercept(s.Box, start, end)
			if !ok {
				continue
			}
			dist := res.Position().Sub(start).Len() / length
			if best.Blocking && dist >= best.Distance {
				continue
			}
			best = climb.SurfaceHit{
				Point:    res.Position(),
				Normal:   game.FaceNormal(res.Face()),
				Blocking: true,
				Distance: dist,
			}
		}
		// Later cells only hold boxes further along the ray.
		if best.Blocking && w.cell(best.Point[0], best.Point[1], best.Point[2]) == cell {
			break
		}
	}
	return best
}
