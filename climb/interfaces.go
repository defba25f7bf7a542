package climb

import "github.com/go-gl/mathgl/mgl32"

// CollisionQuerier answers shape queries against the collision world. Implementations must not
// mutate world state while answering a query.
type CollisionQuerier interface {
	// SweepCapsule moves an upright capsule from start to end and returns every surface touched
	// whose class matches the filter.
	SweepCapsule(start, end mgl32.Vec3, radius, halfHeight float32, filter SurfaceFilter) []SurfaceHit
	// CastRay returns the nearest surface matching the filter between start and end. The returned
	// hit is not blocking when nothing was hit.
	CastRay(start, end mgl32.Vec3, filter SurfaceFilter) SurfaceHit
}

// Integrator bridges the host's movement integration loop.
type Integrator interface {
	// CalcVelocity updates ctx.Pose.Vel from ctx.Acceleration, limited by ctx.Limits.
	CalcVelocity(ctx *PhysicsContext, dt, friction float32, fluid bool, brakingDeceleration float32)
	// MoveWithCollision moves the character by delta, sliding along blocking geometry, and sets its
	// rotation to rot.
	MoveWithCollision(ctx *PhysicsContext, delta mgl32.Vec3, rot mgl32.Quat) MoveResult
	// HasRootMotionOverride reports whether animation root motion or an override velocity is
	// currently driving the character.
	HasRootMotionOverride(ctx *PhysicsContext) bool
	// ApplyRootMotionToVelocity replaces or augments ctx.Pose.Vel with root motion, if any.
	ApplyRootMotionToVelocity(ctx *PhysicsContext, dt float32)
}

// Animator bridges the animation system for transition montages.
type Animator interface {
	IsAnyTransitionPlaying() bool
	// PlayTransition starts the montage and returns false if it could not be played.
	PlayTransition(m Montage) bool
}

// TransitionListener is notified when a transition montage stops playing.
type TransitionListener interface {
	OnTransitionEnded(ctx *PhysicsContext, m Montage, interrupted bool)
}

// DebugHook receives every shape query issued by the controller along with its result.
type DebugHook func(kind QueryKind, start, end mgl32.Vec3, hits []SurfaceHit)
