package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/game"
)

// ClimbRotation returns the orientation for this tick, turning the character to face into the
// surface. Root motion and a missing surface normal keep the current orientation.
func (c *Controller) ClimbRotation(ctx *PhysicsContext, surface AggregatedSurface, dt float32) mgl32.Quat {
	current := ctx.Pose.Rot
	if c.host != nil && c.host.HasRootMotionOverride(ctx) {
		return current
	}
	if !surface.Valid() {
		return current
	}
	target := game.QuatFromForward(surface.Normal.Mul(-1))
	return game.QInterpTo(current, target, dt, c.tunables.RotationInterpSpeed)
}

// SnapDisplacement returns the displacement that pulls the character towards the surface, scaled
// by how far ahead of the character the surface point is.
func (c *Controller) SnapDisplacement(ctx *PhysicsContext, surface AggregatedSurface, dt float32) mgl32.Vec3 {
	toSurface := surface.Point.Sub(ctx.Pose.Pos)
	dist := game.ProjectOnto(toSurface, ctx.Pose.Forward()).Len()
	if dist == 0 || !surface.Valid() {
		return mgl32.Vec3{}
	}
	return surface.Normal.Mul(-dist * dt * c.tunables.MaxClimbSpeed)
}
