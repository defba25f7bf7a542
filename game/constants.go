package game

import "github.com/go-gl/mathgl/mgl32"

const (
	// NormalizeTolerance is the length at or below which a vector has no usable direction.
	NormalizeTolerance = float32(1e-4)
	// ParallelCosineThreshold is the cosine above which two normals count as parallel (about one degree).
	ParallelCosineThreshold = float32(0.999845)
	// QuatEqualTolerance is how far below one the absolute dot product of two unit quaternions may
	// fall for them to describe the same orientation.
	QuatEqualTolerance = float32(1e-6)
)

var (
	// Up is the world up axis.
	Up = mgl32.Vec3{0, 1, 0}
	// LocalForward is the axis a character faces with an identity orientation.
	LocalForward = mgl32.Vec3{0, 0, 1}
	// LocalRight is the right-hand side of a character with an identity orientation.
	LocalRight = mgl32.Vec3{-1, 0, 0}
)
