package host

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/climb"
	"github.com/oomph-ac/climbsim/game"
	"github.com/oomph-ac/climbsim/world"
)

const (
	// maxBrakingStep is the longest time step braking is integrated over at once.
	maxBrakingStep = 1.0 / 33.0
	// brakingFrictionFactor scales the friction used while braking.
	brakingFrictionFactor = 2
	// walkableNormalY is the smallest vertical normal component a surface needs to be stood on.
	walkableNormalY = 0.7
)

// Collider slides boxes through a collision world.
type Collider interface {
	Move(box cube.BBox, delta mgl32.Vec3) world.MoveResult
}

// ModeController owns the movement mode of a character.
type ModeController interface {
	Mode() climb.Mode
	Limits() climb.Limits
	SetMovementMode(ctx *climb.PhysicsContext, mode climb.Mode)
	Tick(ctx *climb.PhysicsContext, dt float32) climb.TickResult
}

// Movement is a reference character movement integrator. It implements climb.Integrator and moves
// walking and falling characters itself.
type Movement struct {
	Collider Collider
	Options  MovementOptions
	// ConstrainRootMotion filters root-motion velocity before it is applied. It is usually set to
	// the climbing controller's ConstrainRootMotionVelocity.
	ConstrainRootMotion func(ctx *climb.PhysicsContext, rootVel, vel mgl32.Vec3) mgl32.Vec3
}

// MovementOptions tunes walking and falling.
type MovementOptions struct {
	Gravity             float32 `yaml:"gravity"`
	GroundFriction      float32 `yaml:"ground_friction"`
	BrakingDeceleration float32 `yaml:"braking_deceleration"`
	AirControl          float32 `yaml:"air_control"`
	// GroundProbe is how far below the character ground is searched for after a walking move.
	GroundProbe  float32 `yaml:"ground_probe"`
	RotationRate float32 `yaml:"rotation_rate"`
}

// DefaultMovementOptions returns the stock walking and falling settings.
func DefaultMovementOptions() MovementOptions {
	return MovementOptions{
		Gravity:             980,
		GroundFriction:      8,
		BrakingDeceleration: 2048,
		AirControl:          0.05,
		GroundProbe:         2,
		RotationRate:        10,
	}
}

// StepResult describes a movement step.
type StepResult struct {
	Mode climb.Mode
	// Climb is the climbing tick result, if the character was climbing.
	Climb    climb.TickResult
	Grounded bool
}

// CalcVelocity updates the character velocity from its input acceleration. Without acceleration,
// or above the speed limit, the velocity brakes by friction and brakingDeceleration. Otherwise
// friction steers the velocity towards the acceleration direction before the acceleration is
// applied and the result limited to the max speed.
func (m *Movement) CalcVelocity(ctx *climb.PhysicsContext, dt, friction float32, fluid bool, brakingDeceleration float32) {
	if dt < climb.MinTickTime {
		return
	}
	vel := ctx.Pose.Vel
	maxSpeed := ctx.Limits.MaxSpeed
	accel := game.ClampLength(ctx.Acceleration, ctx.Limits.MaxAcceleration)
	zeroAccel := accel.LenSqr() == 0
	overMax := vel.LenSqr() > maxSpeed*maxSpeed

	if zeroAccel || overMax {
		old := vel
		vel = brake(vel, dt, friction, brakingDeceleration)
		if overMax && vel.LenSqr() < maxSpeed*maxSpeed && accel.Dot(old) > 0 {
			vel = game.SafeNormal(old).Mul(maxSpeed)
		}
	} else {
		dir := game.SafeNormal(accel)
		speed := vel.Len()
		vel = vel.Sub(vel.Sub(dir.Mul(speed)).Mul(math32.Min(dt*friction, 1)))
	}

	if fluid {
		vel = vel.Mul(1 - math32.Min(friction*dt, 1))
	}

	if !zeroAccel {
		limit := maxSpeed
		if overMax {
			limit = vel.Len()
		}
		vel = game.ClampLength(vel.Add(accel.Mul(dt)), limit)
	}
	ctx.Pose.SetVel(vel)
}

// brake slows vel by friction and a constant deceleration, never reversing it.
func brake(vel mgl32.Vec3, dt, friction, deceleration float32) mgl32.Vec3 {
	if vel.LenSqr() == 0 || (friction == 0 && deceleration == 0) {
		return vel
	}
	friction = math32.Max(0, friction*brakingFrictionFactor)
	deceleration = math32.Max(0, deceleration)
	rev := game.SafeNormal(vel).Mul(-deceleration)
	old := vel

	for remaining := dt; remaining >= climb.MinTickTime; {
		step := math32.Min(remaining, maxBrakingStep)
		remaining -= step
		vel = vel.Add(vel.Mul(-friction).Add(rev).Mul(step))
		if vel.Dot(old) <= 0 {
			return mgl32.Vec3{}
		}
	}
	if vel.LenSqr() <= 1e-4 {
		return mgl32.Vec3{}
	}
	return vel
}

// MoveWithCollision moves the character capsule by delta, sliding along the world, and sets its
// rotation.
func (m *Movement) MoveWithCollision(ctx *climb.PhysicsContext, delta mgl32.Vec3, rot mgl32.Quat) climb.MoveResult {
	res := world.MoveResult{Applied: delta}
	if m.Collider != nil {
		box := game.CapsuleBounds(ctx.Pose.Pos, ctx.CapsuleRadius, ctx.CapsuleHalfHeight)
		res = m.Collider.Move(box, delta)
	}
	ctx.Pose.SetPos(ctx.Pose.Pos.Add(res.Applied))
	ctx.Pose.SetRot(rot)
	return climb.MoveResult{Applied: res.Applied, Blocked: res.Blocked, Normal: res.Normal}
}

// HasRootMotionOverride reports whether root motion drives the character this frame.
func (m *Movement) HasRootMotionOverride(ctx *climb.PhysicsContext) bool {
	return ctx.RootMotion.Active || ctx.RootMotion.OverrideVelocity
}

// ApplyRootMotionToVelocity replaces the velocity with the root-motion velocity, if any.
func (m *Movement) ApplyRootMotionToVelocity(ctx *climb.PhysicsContext, _ float32) {
	if !m.HasRootMotionOverride(ctx) {
		return
	}
	vel := ctx.RootMotion.Velocity
	if m.ConstrainRootMotion != nil {
		vel = m.ConstrainRootMotion(ctx, vel, ctx.Pose.Vel)
	}
	ctx.Pose.SetVel(vel)
}

// Step advances the character by dt in its current movement mode.
func (m *Movement) Step(ctx *climb.PhysicsContext, ctrl ModeController, dt float32) StepResult {
	if dt < climb.MinTickTime {
		return StepResult{Mode: ctrl.Mode()}
	}

	switch ctrl.Mode() {
	case climb.ModeClimbing:
		res := ctrl.Tick(ctx, dt)
		return StepResult{Mode: ctrl.Mode(), Climb: res}
	case climb.ModeFalling:
		grounded := m.fall(ctx, ctrl, dt)
		return StepResult{Mode: ctrl.Mode(), Grounded: grounded}
	default:
		grounded := m.walk(ctx, ctrl, dt)
		return StepResult{Mode: ctrl.Mode(), Grounded: grounded}
	}
}

func (m *Movement) walk(ctx *climb.PhysicsContext, ctrl ModeController, dt float32) bool {
	ctx.Limits = ctrl.Limits()
	ctx.Acceleration[1] = 0
	vel := ctx.Pose.Vel
	vel[1] = 0
	ctx.Pose.Vel = vel

	if !m.HasRootMotionOverride(ctx) {
		m.CalcVelocity(ctx, dt, m.Options.GroundFriction, false, m.Options.BrakingDeceleration)
	}
	m.ApplyRootMotionToVelocity(ctx, dt)

	rot := m.facing(ctx, dt)
	m.MoveWithCollision(ctx, ctx.Pose.Vel.Mul(dt), rot)

	probe := m.MoveWithCollision(ctx, mgl32.Vec3{0, -m.Options.GroundProbe, 0}, rot)
	if probe.Blocked && probe.Normal.Y() >= walkableNormalY {
		return true
	}
	ctrl.SetMovementMode(ctx, climb.ModeFalling)
	return false
}

func (m *Movement) fall(ctx *climb.PhysicsContext, ctrl ModeController, dt float32) bool {
	ctx.Limits = ctrl.Limits()
	if !m.HasRootMotionOverride(ctx) {
		vel := ctx.Pose.Vel
		horizontal := mgl32.Vec3{vel.X(), 0, vel.Z()}
		accel := mgl32.Vec3{ctx.Acceleration.X(), 0, ctx.Acceleration.Z()}.Mul(m.Options.AirControl)
		prevSpeed := horizontal.Len()
		horizontal = horizontal.Add(accel.Mul(dt))
		if speed := horizontal.Len(); speed > ctx.Limits.MaxSpeed && speed > prevSpeed {
			horizontal = game.ClampLength(horizontal, max(prevSpeed, ctx.Limits.MaxSpeed))
		}
		ctx.Pose.SetVel(mgl32.Vec3{horizontal.X(), vel.Y() - m.Options.Gravity*dt, horizontal.Z()})
	}
	m.ApplyRootMotionToVelocity(ctx, dt)

	res := m.MoveWithCollision(ctx, ctx.Pose.Vel.Mul(dt), m.facing(ctx, dt))
	if !res.Blocked {
		return false
	}

	vel := ctx.Pose.Vel
	switch {
	case res.Normal.Y() >= walkableNormalY && vel.Y() <= 0:
		vel[1] = 0
		ctx.Pose.Vel = vel
		ctrl.SetMovementMode(ctx, climb.ModeWalking)
		return true
	case res.Normal.Y() <= -walkableNormalY && vel.Y() > 0:
		vel[1] = 0
		ctx.Pose.Vel = vel
	}
	return false
}

// facing returns the rotation for this step, turning towards the horizontal velocity when the
// character orients to its movement.
func (m *Movement) facing(ctx *climb.PhysicsContext, dt float32) mgl32.Quat {
	rot := ctx.Pose.Rot
	if !ctx.OrientRotationToMovement {
		return rot
	}
	horizontal := mgl32.Vec3{ctx.Pose.Vel.X(), 0, ctx.Pose.Vel.Z()}
	if horizontal.LenSqr() < 1 {
		return rot
	}
	return game.QInterpTo(rot, game.QuatFromForward(horizontal), dt, m.Options.RotationRate)
}
