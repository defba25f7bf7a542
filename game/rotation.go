package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// QuatFromForward returns the orientation whose forward axis is the given direction, with no roll.
// Heading is taken around Up and pitch around the local right axis. A zero direction returns identity.
func QuatFromForward(forward mgl32.Vec3) mgl32.Quat {
	f := SafeNormal(forward)
	if f.LenSqr() == 0 {
		return mgl32.QuatIdent()
	}
	heading := math32.Atan2(f.X(), f.Z())
	pitch := math32.Asin(mgl32.Clamp(-f.Y(), -1, 1))
	return mgl32.QuatRotate(heading, Up).Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0})).Normalize()
}

// Yaw returns the heading of an orientation in radians, measured around Up from LocalForward.
// When the forward axis is vertical the heading is recovered from the rotated up axis.
func Yaw(q mgl32.Quat) float32 {
	f := q.Rotate(LocalForward)
	if Vec3HzDistSqr(f) > 1e-8 {
		return math32.Atan2(f.X(), f.Z())
	}

	u := q.Rotate(Up)
	if f.Y() > 0 {
		u = u.Mul(-1)
	}
	return math32.Atan2(u.X(), u.Z())
}

// UprightRotation strips pitch and roll from q, keeping only its heading.
func UprightRotation(q mgl32.Quat) mgl32.Quat {
	return mgl32.QuatRotate(Yaw(q), Up)
}

// Unrotate transforms a world-space vector into the local space of q.
func Unrotate(q mgl32.Quat, v mgl32.Vec3) mgl32.Vec3 {
	return q.Normalize().Inverse().Rotate(v)
}

// QuatApproxEq reports whether two orientations describe the same rotation.
func QuatApproxEq(a, b mgl32.Quat) bool {
	return math32.Abs(a.Normalize().Dot(b.Normalize())) >= 1-QuatEqualTolerance
}

// QInterpTo moves current towards target at speed per second along the shortest arc.
// A non-positive speed snaps directly to the target.
func QInterpTo(current, target mgl32.Quat, dt, speed float32) mgl32.Quat {
	if speed <= 0 || QuatApproxEq(current, target) {
		return target
	}

	current, target = current.Normalize(), target.Normalize()
	if current.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	return mgl32.QuatSlerp(current, target, mgl32.Clamp(speed*dt, 0, 1)).Normalize()
}
