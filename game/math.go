package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Vec3ApproxEq reports whether every component of a and b is within the given threshold.
func Vec3ApproxEq(a, b mgl32.Vec3, threshold float32) bool {
	return math32.Abs(a[0]-b[0]) <= threshold &&
		math32.Abs(a[1]-b[1]) <= threshold &&
		math32.Abs(a[2]-b[2]) <= threshold
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// SafeNormal returns the vector scaled to unit length. Vectors whose length is at or below
// NormalizeTolerance return the zero vector instead of NaN components.
func SafeNormal(v mgl32.Vec3) mgl32.Vec3 {
	lenSqr := v.LenSqr()
	if lenSqr <= NormalizeTolerance*NormalizeTolerance || math32.IsNaN(lenSqr) {
		return mgl32.Vec3{}
	}
	if math32.Abs(lenSqr-1) <= 1e-7 {
		return v
	}
	return v.Mul(1 / math32.Sqrt(lenSqr))
}

// AngleDegrees returns the angle between two unit vectors in degrees. Inputs that are not
// unit length are not normalized, so the caller must pass directions.
func AngleDegrees(a, b mgl32.Vec3) float32 {
	return mgl32.RadToDeg(math32.Acos(mgl32.Clamp(a.Dot(b), -1, 1)))
}

// ProjectOnto projects v onto the direction of onto. A zero onto vector yields a zero projection.
func ProjectOnto(v, onto mgl32.Vec3) mgl32.Vec3 {
	lenSqr := onto.LenSqr()
	if lenSqr <= 1e-12 {
		return mgl32.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / lenSqr)
}

// Parallel reports whether two unit vectors point along the same line, in either direction.
func Parallel(a, b mgl32.Vec3) bool {
	return math32.Abs(a.Dot(b)) >= ParallelCosineThreshold
}

// ClampLength returns v with its length limited to max.
func ClampLength(v mgl32.Vec3, max float32) mgl32.Vec3 {
	if max <= 0 {
		return mgl32.Vec3{}
	}
	lenSqr := v.LenSqr()
	if lenSqr <= max*max {
		return v
	}
	return v.Mul(max / math32.Sqrt(lenSqr))
}
