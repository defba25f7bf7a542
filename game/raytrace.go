package game

import (
	"iter"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// CellsBetween yields every grid cell a segment passes through, in order, for a grid of unit cells.
// Callers working with larger cells scale start and end down first.
// https://github.com/pmmp/Math/blob/stable/src/VoxelRayTrace.php#L67
func CellsBetween(start, end mgl32.Vec3) iter.Seq[cube.Pos] {
	return func(yield func(cube.Pos) bool) {
		current := cube.PosFromVec3(start)
		radius := end.Sub(start).Len()
		if radius <= 1e-6 {
			yield(current)
			return
		}

		dirVec := end.Sub(start).Mul(1 / radius)
		stepX := spaceship(dirVec.X(), 0)
		stepY := spaceship(dirVec.Y(), 0)
		stepZ := spaceship(dirVec.Z(), 0)

		tMaxX := rayTraceDistanceToBoundary(start.X(), dirVec.X())
		tMaxY := rayTraceDistanceToBoundary(start.Y(), dirVec.Y())
		tMaxZ := rayTraceDistanceToBoundary(start.Z(), dirVec.Z())

		var tDeltaX, tDeltaY, tDeltaZ float32
		if dirVec.X() != 0 {
			tDeltaX = float32(stepX) / dirVec.X()
		}
		if dirVec.Y() != 0 {
			tDeltaY = float32(stepY) / dirVec.Y()
		}
		if dirVec.Z() != 0 {
			tDeltaZ = float32(stepZ) / dirVec.Z()
		}

		for {
			if !yield(current) {
				return
			}

			if tMaxX < tMaxY && tMaxX < tMaxZ {
				if tMaxX > radius {
					return
				}
				current[0] += stepX
				tMaxX += tDeltaX
			} else if tMaxY < tMaxZ {
				if tMaxY > radius {
					return
				}
				current[1] += stepY
				tMaxY += tDeltaY
			} else {
				if tMaxZ > radius {
					return
				}
				current[2] += stepZ
				tMaxZ += tDeltaZ
			}
		}
	}
}

// spaceship returns -1 if x < y, 0 if x == y, or 1 if x > y.
func spaceship(x, y float32) int {
	if x < y {
		return -1
	} else if x == y {
		return 0
	}
	return 1
}

// https://github.com/pmmp/Math/blob/stable/src/VoxelRayTrace.php#L134
func rayTraceDistanceToBoundary(s, ds float32) float32 {
	if ds == 0 {
		return math32.MaxFloat32
	}

	if ds < 0 {
		s = -s
		ds = -ds

		if math32.Floor(s) == s {
			return 0
		}
	}

	return (1 - (s - math32.Floor(s))) / ds
}
