package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/game"
)

// CanClimbDownLedge reports whether the character stands just before a drop it can climb down:
// there is walkable ground ahead and nothing below the point past it.
func (c *Controller) CanClimbDownLedge(ctx *PhysicsContext) bool {
	if ctx == nil || c.state.Mode() == ModeFalling {
		return false
	}

	fwd, down := ctx.Pose.Forward(), ctx.Pose.Up().Mul(-1)
	walkableStart := ctx.Pose.Pos.Add(fwd.Mul(c.tunables.ClimbDownWalkableOffset))
	walkable := c.caster.FloorRay(walkableStart, walkableStart.Add(down.Mul(c.tunables.ClimbDownWalkableDepth)))
	if !walkable.Blocking {
		return false
	}

	ledgeStart := walkableStart.Add(fwd.Mul(c.tunables.ClimbDownLedgeOffset))
	ledge := c.caster.FloorRay(ledgeStart, ledgeStart.Add(down.Mul(c.tunables.ClimbDownLedgeDepth)))
	return !ledge.Blocking
}

// HasReachedLedge reports whether the character has climbed up past the top of the surface while
// still moving upwards.
func (c *Controller) HasReachedLedge(ctx *PhysicsContext) bool {
	if ctx == nil || c.climbVelocity(ctx).Y() <= c.tunables.LedgeVelocityThreshold {
		return false
	}

	var (
		ahead mgl32.Vec3
		down  = ctx.Pose.Up().Mul(-c.tunables.LedgeDownDistance)
	)
	switch c.tunables.LedgeProbe {
	case LedgeProbeForward:
		start := ctx.Pose.Pos.Add(ctx.Pose.Up().Mul(c.tunables.ClimbCapsuleHalfHeight))
		ahead = start.Add(ctx.Pose.Forward().Mul(c.tunables.EyeTraceDistance))
		if c.caster.Ray(start, ahead).Blocking {
			return false
		}
		floor := c.caster.FloorRay(ahead, ahead.Add(down))
		return floor.Blocking && game.AngleDegrees(floor.Normal, game.Up) <= c.tunables.StopAngle
	default:
		var hit SurfaceHit
		hit, ahead = c.eyeTrace(ctx, c.tunables.LedgeEyeOffset)
		if hit.Blocking {
			return false
		}
		return c.caster.FloorRay(ahead, ahead.Add(down)).Blocking
	}
}

// HasReachedFloor reports whether the character is descending onto flat ground below it.
func (c *Controller) HasReachedFloor(ctx *PhysicsContext) bool {
	if ctx == nil || c.climbVelocity(ctx).Y() >= c.tunables.FloorVelocityThreshold {
		return false
	}

	down := ctx.Pose.Up().Mul(-1)
	start := ctx.Pose.Pos.Add(down.Mul(c.tunables.FloorProbeOffset))
	for _, hit := range c.caster.FloorSweep(start, start.Add(down)) {
		if game.Parallel(hit.Normal.Mul(-1), game.Up) {
			return true
		}
	}
	return false
}

// ShouldStopClimbing reports whether the sampled surface can no longer be climbed: either nothing
// was hit or the surface is closer to a floor than to a wall.
func (c *Controller) ShouldStopClimbing(surface AggregatedSurface, hits []SurfaceHit) bool {
	if len(hits) == 0 {
		return true
	}
	return game.AngleDegrees(surface.Normal, game.Up) <= c.tunables.StopAngle
}

// climbVelocity returns the velocity in the character's local space.
func (c *Controller) climbVelocity(ctx *PhysicsContext) mgl32.Vec3 {
	return game.Unrotate(ctx.Pose.Rot, ctx.Pose.Vel)
}
