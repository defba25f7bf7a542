package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// MoveResult is the outcome of sliding a box through the world.
type MoveResult struct {
	Applied mgl32.Vec3
	Blocked bool
	// Normal is the unit normal of the last blocked axis.
	Normal mgl32.Vec3
}

// Move slides box by delta, resolving the vertical axis first and then X and Z. Blocked axes are
// clipped at the first box in the way, and boxes the moving box already overlaps push it out
// along their shallowest axis.
func (w *World) Move(box cube.BBox, delta mgl32.Vec3) MoveResult {
	var res MoveResult
	boxes := w.BlockingBoxes(box.Extend(delta).Grow(1e-3))
	for _, axis := range [3]int{1, 0, 2} {
		var vel mgl32.Vec3
		vel[axis] = delta[axis]
		for i := len(boxes) - 1; i >= 0; i-- {
			vel, _ = ClipCollide(boxes[i], box, vel, false)
		}

		if vel[axis] != delta[axis] {
			res.Blocked = true
			res.Normal = mgl32.Vec3{}
			res.Normal[axis] = -math32.Copysign(1, delta[axis])
			if delta[axis] == 0 {
				res.Normal[axis] = math32.Copysign(1, vel[axis])
			}
		}
		box = box.Translate(vel)
		res.Applied = res.Applied.Add(vel)
	}
	return res
}

// ClipCollide clips vel so that moving does not enter stationary when translated by it. Unless
// oneWay is set, a moving box that already overlaps stationary is pushed out along the axis of
// least penetration. The penetration depth of an overlap is returned alongside the velocity.
func ClipCollide(stationary, moving cube.BBox, vel mgl32.Vec3, oneWay bool) (mgl32.Vec3, float32) {
	clipped, depenetrating := vel, vel
	if stationary.Min() == stationary.Max() {
		return vel, 0
	}

	var (
		penetrations       [3]float32
		signedPenetrations [3]float32
		normalDirs         [3]float32
		separatingAxes     int
		separatingAxis     int
	)
	for i := 0; i < 3; i++ {
		minPen := moving.Max()[i] - stationary.Min()[i]
		maxPen := stationary.Max()[i] - moving.Min()[i]
		if math32.Abs(minPen) <= 1e-7 {
			minPen = 0
		}
		if math32.Abs(maxPen) <= 1e-7 {
			maxPen = 0
		}

		minPositive, maxPositive := math32.Max(0, minPen), math32.Max(0, maxPen)
		switch {
		case minPositive == 0:
			signedPenetrations[i] = minPen
			normalDirs[i] = -1
			separatingAxes++
			separatingAxis = i
		case maxPositive == 0:
			signedPenetrations[i] = maxPen
			normalDirs[i] = 1
			separatingAxes++
			separatingAxis = i
		case minPositive < maxPositive:
			penetrations[i] = minPositive
			signedPenetrations[i] = minPositive
			normalDirs[i] = -1
		default:
			penetrations[i] = maxPositive
			signedPenetrations[i] = maxPositive
			normalDirs[i] = 1
		}
		if separatingAxes > 1 {
			return vel, 0
		}
	}

	if separatingAxes == 0 {
		best := 0
		for i := 1; i < 3; i++ {
			if penetrations[i] < penetrations[best] {
				best = i
			}
		}
		if oneWay {
			return clipped, penetrations[best]
		}
		desired := penetrations[best] * normalDirs[best]
		if desired > 0 {
			depenetrating[best] = math32.Max(desired, vel[best])
		} else {
			depenetrating[best] = math32.Min(desired, vel[best])
		}
		return depenetrating, penetrations[best]
	}

	swept := signedPenetrations[separatingAxis] - normalDirs[separatingAxis]*vel[separatingAxis]
	if swept <= 0 {
		return vel, 0
	}
	vel[separatingAxis] = signedPenetrations[separatingAxis] * normalDirs[separatingAxis]
	return vel, 0
}
