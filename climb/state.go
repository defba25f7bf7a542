package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/game"
	"github.com/sirupsen/logrus"
)

// Mode is the host movement mode.
type Mode uint8

const (
	ModeWalking Mode = iota
	ModeFalling
	ModeClimbing
)

func (m Mode) String() string {
	switch m {
	case ModeWalking:
		return "walking"
	case ModeFalling:
		return "falling"
	case ModeClimbing:
		return "climbing"
	default:
		return "unknown"
	}
}

// MovementState is the controller's current movement state. It is one of Grounded, Airborne or
// *Climbing.
type MovementState interface {
	Mode() Mode
	movementState()
}

// Grounded is the state of a character walking on the ground.
type Grounded struct{}

// Airborne is the state of a character falling or jumping.
type Airborne struct{}

// Climbing is the state of a character attached to a climbable surface.
type Climbing struct {
	ClimbContext
}

// ClimbContext holds the data that only exists while climbing.
type ClimbContext struct {
	// RestoreHalfHeight is the capsule half-height the character had before it started climbing.
	RestoreHalfHeight float32
	// Ticks counts the climbing ticks integrated since entering the state.
	Ticks uint64
}

func (Grounded) Mode() Mode  { return ModeWalking }
func (Airborne) Mode() Mode  { return ModeFalling }
func (*Climbing) Mode() Mode { return ModeClimbing }

func (Grounded) movementState()  {}
func (Airborne) movementState()  {}
func (*Climbing) movementState() {}

// behaviour is the mode-specific part of the controller.
type behaviour struct {
	limits func(t Tunables) Limits
	enter  func(c *Controller, ctx *PhysicsContext, s MovementState)
	exit   func(c *Controller, ctx *PhysicsContext, s MovementState)
}

func defaultLimits(t Tunables) Limits {
	return Limits{MaxSpeed: t.DefaultMaxSpeed, MaxAcceleration: t.DefaultMaxAcceleration}
}

func noTransition(*Controller, *PhysicsContext, MovementState) {}

var behaviours = [...]behaviour{
	ModeWalking: {
		limits: defaultLimits,
		enter:  noTransition,
		exit:   noTransition,
	},
	ModeFalling: {
		limits: defaultLimits,
		enter:  noTransition,
		exit:   noTransition,
	},
	ModeClimbing: {
		limits: func(t Tunables) Limits {
			return Limits{MaxSpeed: t.MaxClimbSpeed, MaxAcceleration: t.MaxClimbAcceleration}
		},
		enter: func(c *Controller, ctx *PhysicsContext, s MovementState) {
			climbing := s.(*Climbing)
			climbing.RestoreHalfHeight = ctx.CapsuleHalfHeight
			ctx.OrientRotationToMovement = false
			ctx.CapsuleHalfHeight = c.tunables.ClimbCapsuleHalfHeight
		},
		exit: func(c *Controller, ctx *PhysicsContext, s MovementState) {
			climbing := s.(*Climbing)
			ctx.OrientRotationToMovement = true
			if climbing.RestoreHalfHeight > 0 {
				ctx.CapsuleHalfHeight = climbing.RestoreHalfHeight
			}
			ctx.Pose.SetRot(game.UprightRotation(ctx.Pose.Rot))
			ctx.Pose.SetVel(mgl32.Vec3{})
		},
	},
}

func newState(mode Mode) MovementState {
	switch mode {
	case ModeFalling:
		return Airborne{}
	case ModeClimbing:
		return &Climbing{}
	default:
		return Grounded{}
	}
}

// SetMovementMode switches the controller to mode, running the exit behaviour of the previous
// state and the enter behaviour of the new one. Switching to the current mode does nothing.
func (c *Controller) SetMovementMode(ctx *PhysicsContext, mode Mode) {
	if mode > ModeClimbing {
		c.log.Warnf("climb: ignoring unknown movement mode %d", mode)
		return
	}
	prev := c.state
	if prev.Mode() == mode {
		return
	}

	next := newState(mode)
	if ctx != nil {
		behaviours[prev.Mode()].exit(c, ctx, prev)
	}
	c.state = next
	if ctx != nil {
		behaviours[mode].enter(c, ctx, next)
		ctx.Limits = c.Limits()
	}
	c.log.WithFields(logrus.Fields{"from": prev.Mode(), "to": mode}).Debug("climb: movement mode changed")
}

// StartClimbing switches to climbing unconditionally.
func (c *Controller) StartClimbing(ctx *PhysicsContext) {
	c.SetMovementMode(ctx, ModeClimbing)
}

// StopClimbing drops the character off the surface into falling. It does nothing when not climbing.
func (c *Controller) StopClimbing(ctx *PhysicsContext) {
	if !c.IsClimbing() {
		return
	}
	c.SetMovementMode(ctx, ModeFalling)
}
