package game

import (
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// DFBoxToCubeBox converts a dragonfly bounding box to a float32-cube bounding box.
func DFBoxToCubeBox(b df_cube.BBox) cube.BBox {
	return cube.Box(
		float32(b.Min().X()), float32(b.Min().Y()), float32(b.Min().Z()),
		float32(b.Max().X()), float32(b.Max().Y()), float32(b.Max().Z()),
	)
}

// CapsuleBounds returns the axis-aligned bounds of an upright capsule centred on center.
func CapsuleBounds(center mgl32.Vec3, radius, halfHeight float32) cube.BBox {
	return cube.Box(
		center.X()-radius, center.Y()-halfHeight, center.Z()-radius,
		center.X()+radius, center.Y()+halfHeight, center.Z()+radius,
	)
}

// ClosestPointToBBox returns the point on or inside the box that is nearest to v.
func ClosestPointToBBox(v mgl32.Vec3, bb cube.BBox) mgl32.Vec3 {
	min, max := bb.Min(), bb.Max()
	return mgl32.Vec3{
		mgl32.Clamp(v.X(), min.X(), max.X()),
		mgl32.Clamp(v.Y(), min.Y(), max.Y()),
		mgl32.Clamp(v.Z(), min.Z(), max.Z()),
	}
}

// FaceNormal returns the outward unit normal of a box face.
func FaceNormal(f cube.Face) mgl32.Vec3 {
	return cube.Pos{}.Side(f).Vec3()
}

// LeastPenetrationFace returns the face of bb closest to v, which is the direction v would need
// to travel to leave the box. v is expected to lie inside the box.
func LeastPenetrationFace(v mgl32.Vec3, bb cube.BBox) cube.Face {
	min, max := bb.Min(), bb.Max()
	candidates := [6]struct {
		face  cube.Face
		depth float32
	}{
		{cube.FaceWest, v.X() - min.X()},
		{cube.FaceEast, max.X() - v.X()},
		{cube.FaceDown, v.Y() - min.Y()},
		{cube.FaceUp, max.Y() - v.Y()},
		{cube.FaceNorth, v.Z() - min.Z()},
		{cube.FaceSouth, max.Z() - v.Z()},
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.depth < best.depth {
			best = c
		}
	}
	return best.face
}
