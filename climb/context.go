package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/game"
)

// CharacterPose is the kinematic state of the character. The Last fields hold the values from
// before the most recent update.
type CharacterPose struct {
	Pos, LastPos mgl32.Vec3
	Vel, LastVel mgl32.Vec3
	Rot, LastRot mgl32.Quat
}

func (p *CharacterPose) SetPos(pos mgl32.Vec3) {
	p.LastPos = p.Pos
	p.Pos = pos
}

func (p *CharacterPose) SetVel(vel mgl32.Vec3) {
	p.LastVel = p.Vel
	p.Vel = vel
}

func (p *CharacterPose) SetRot(rot mgl32.Quat) {
	p.LastRot = p.Rot
	p.Rot = rot
}

// Forward returns the direction the character is facing.
func (p CharacterPose) Forward() mgl32.Vec3 {
	return p.Rot.Rotate(game.LocalForward)
}

// Up returns the character's local up axis.
func (p CharacterPose) Up() mgl32.Vec3 {
	return p.Rot.Rotate(game.Up)
}

// Right returns the character's local right axis.
func (p CharacterPose) Right() mgl32.Vec3 {
	return p.Rot.Rotate(game.LocalRight)
}

// RootMotion describes animation-driven movement for the current frame.
type RootMotion struct {
	// Active is set while an animation contributes root motion.
	Active bool
	// OverrideVelocity is set while a source replaces the computed velocity outright.
	OverrideVelocity bool
	Velocity         mgl32.Vec3
}

// Limits are the speed and acceleration caps for the current movement mode.
type Limits struct {
	MaxSpeed        float32
	MaxAcceleration float32
}

// MoveResult reports the outcome of a collision-aware move.
type MoveResult struct {
	// Applied is the displacement actually performed.
	Applied mgl32.Vec3
	Blocked bool
	// Normal is the normal of the last blocking surface, if any.
	Normal mgl32.Vec3
}

// PhysicsContext is the per-character state shared between the host and the climbing controller.
// The controller only reads and writes it during calls made on its own tick.
type PhysicsContext struct {
	Pose CharacterPose
	// Acceleration is the input acceleration requested for this tick.
	Acceleration mgl32.Vec3

	CapsuleRadius     float32
	CapsuleHalfHeight float32
	// OrientRotationToMovement lets the host turn the character towards its velocity.
	OrientRotationToMovement bool

	RootMotion RootMotion
	Limits     Limits
}

// NewPhysicsContext returns a context for an upright character at pos facing rot.
func NewPhysicsContext(pos mgl32.Vec3, rot mgl32.Quat, radius, halfHeight float32) *PhysicsContext {
	rot = rot.Normalize()
	return &PhysicsContext{
		Pose: CharacterPose{
			Pos:     pos,
			LastPos: pos,
			Rot:     rot,
			LastRot: rot,
		},
		CapsuleRadius:            radius,
		CapsuleHalfHeight:        halfHeight,
		OrientRotationToMovement: true,
	}
}
