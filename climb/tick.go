package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// MinTickTime is the smallest time step a climbing tick integrates.
const MinTickTime = 1e-6

// Tick advances a climbing character by dt seconds. It samples the surface, checks whether the
// character should leave it and otherwise moves the character along it. Ticks outside of the
// climbing mode do nothing.
func (c *Controller) Tick(ctx *PhysicsContext, dt float32) TickResult {
	climbing, ok := c.state.(*Climbing)
	if !ok || ctx == nil {
		return TickResult{Outcome: TickOutcomeInactive}
	}
	if !(dt >= MinTickTime) {
		return c.result(ctx, TickOutcomeInvalidDelta, mgl32.Vec3{})
	}

	var trace tickTrace
	if debugEnabled(c.log) {
		trace = newTickTrace()
	}
	trace.Set("dt", dt)
	trace.Set("pos", ctx.Pose.Pos)
	trace.Set("vel", ctx.Pose.Vel)

	res := c.tick(ctx, climbing, dt, trace)
	if trace.enabled() {
		trace.Set("outcome", res.Outcome)
		c.log.WithFields(logrus.Fields{"mode": c.state.Mode(), "ticks": climbing.Ticks}).Debugf("climb: tick %s", trace)
	}
	return res
}

func (c *Controller) tick(ctx *PhysicsContext, climbing *Climbing, dt float32, trace tickTrace) TickResult {
	c.sampleSurface(ctx)
	trace.Set("hits", len(c.hits))
	trace.Set("normal", c.surface.Normal)

	if c.ShouldStopClimbing(c.surface, c.hits) {
		c.StopClimbing(ctx)
		return c.result(ctx, TickOutcomeStoppedNoSurface, mgl32.Vec3{})
	}
	if c.HasReachedFloor(ctx) {
		c.StopClimbing(ctx)
		return c.result(ctx, TickOutcomeReachedFloor, mgl32.Vec3{})
	}
	if !c.transitionPlaying() && c.HasReachedLedge(ctx) && c.playTransition(ctx, TransitionClimbToTop) {
		return c.result(ctx, TickOutcomeReachedLedge, mgl32.Vec3{})
	}

	ctx.Limits = c.Limits()
	climbing.Ticks++
	if c.host == nil {
		return c.result(ctx, TickOutcomeClimbed, mgl32.Vec3{})
	}

	rootMotion := c.host.HasRootMotionOverride(ctx)
	if !rootMotion {
		c.host.CalcVelocity(ctx, dt, 0, true, c.tunables.MaxBrakeDeceleration)
	}
	c.host.ApplyRootMotionToVelocity(ctx, dt)

	oldPos := ctx.Pose.Pos
	c.host.MoveWithCollision(ctx, ctx.Pose.Vel.Mul(dt), c.ClimbRotation(ctx, c.surface, dt))
	if !rootMotion {
		ctx.Pose.SetVel(ctx.Pose.Pos.Sub(oldPos).Mul(1 / dt))
	}
	trace.Set("moved", ctx.Pose.Pos.Sub(oldPos))

	snap := c.SnapDisplacement(ctx, c.surface, dt)
	c.host.MoveWithCollision(ctx, snap, ctx.Pose.Rot)
	trace.Set("snap", snap)
	return c.result(ctx, TickOutcomeClimbed, snap)
}

func (c *Controller) result(ctx *PhysicsContext, outcome TickOutcome, snap mgl32.Vec3) TickResult {
	return TickResult{
		Outcome:  outcome,
		Surface:  c.surface,
		Position: ctx.Pose.Pos,
		Velocity: ctx.Pose.Vel,
		Rotation: ctx.Pose.Rot,
		Snap:     snap,
	}
}
