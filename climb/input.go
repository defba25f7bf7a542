package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/game"
)

// ApplyInput turns a movement input into ctx.Acceleration. The Y axis of move is forward (up the
// surface while climbing) and the X axis is right. Inputs longer than one are normalized.
func (c *Controller) ApplyInput(ctx *PhysicsContext, move mgl32.Vec2) {
	if ctx == nil {
		return
	}
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}

	forward, right := c.inputAxes(ctx)
	accel := forward.Mul(move.Y()).Add(right.Mul(move.X()))
	ctx.Acceleration = accel.Mul(c.Limits().MaxAcceleration)
}

// inputAxes returns the world directions that forward and right input map to.
func (c *Controller) inputAxes(ctx *PhysicsContext) (forward, right mgl32.Vec3) {
	if c.IsClimbing() && c.surface.Valid() {
		into := c.surface.Normal.Mul(-1)
		forward = game.SafeNormal(ctx.Pose.Right().Cross(into))
		right = game.SafeNormal(into.Cross(ctx.Pose.Up()))
		return forward, right
	}
	if c.IsClimbing() {
		return ctx.Pose.Up(), ctx.Pose.Right()
	}

	heading := mgl32.QuatRotate(game.Yaw(ctx.Pose.Rot), game.Up)
	return heading.Rotate(game.LocalForward), heading.Rotate(game.LocalRight)
}
