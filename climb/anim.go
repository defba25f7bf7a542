package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/game"
)

// minMoveSpeed is the ground speed below which the character is animated as standing still.
const minMoveSpeed = 5

// AnimationSnapshot is the locomotion state an animation graph reads each frame.
type AnimationSnapshot struct {
	GroundSpeed float32
	AirSpeed    float32
	ShouldMove  bool
	Falling     bool
	Climbing    bool
	// ClimbVelocity is the velocity in the character's local space, used to blend climbing poses.
	ClimbVelocity mgl32.Vec3
}

// Animation returns the animation state of the character.
func (c *Controller) Animation(ctx *PhysicsContext) AnimationSnapshot {
	if ctx == nil {
		return AnimationSnapshot{}
	}
	falling := c.state.Mode() == ModeFalling
	groundSpeed := mgl32.Vec2{ctx.Pose.Vel.X(), ctx.Pose.Vel.Z()}.Len()
	snap := AnimationSnapshot{
		GroundSpeed: groundSpeed,
		AirSpeed:    ctx.Pose.Vel.Y(),
		ShouldMove:  ctx.Acceleration.LenSqr() > 0 && groundSpeed > minMoveSpeed && !falling,
		Falling:     falling,
		Climbing:    c.IsClimbing(),
	}
	if snap.Climbing {
		snap.ClimbVelocity = game.Unrotate(ctx.Pose.Rot, ctx.Pose.Vel)
	}
	return snap
}
