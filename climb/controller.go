// Package climb implements a climbing movement mode for a capsule character: surface detection,
// entry and exit decisions, per-tick integration along the surface and the transition animations
// that move the character on and off it.
package climb

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// Config holds the collaborators and tunables of a Controller.
type Config struct {
	Tunables Tunables
	Montages TransitionMontageSet

	// World answers the surface probes. Without one no surface is ever detected.
	World CollisionQuerier
	// Host integrates velocity and performs collision-aware moves. Without one a climbing tick
	// only runs its detection and exit checks.
	Host Integrator
	// Animator plays transition montages. Without one transitions complete immediately.
	Animator Animator

	Debug DebugHook
	Log   logrus.FieldLogger
}

// Controller is the climbing state machine of a single character. It is not safe for concurrent use.
type Controller struct {
	tunables Tunables
	montages TransitionMontageSet

	caster   ShapeCaster
	host     Integrator
	animator Animator
	log      logrus.FieldLogger

	state MovementState
	// hits and surface are the result of the most recent surface sample.
	hits    []SurfaceHit
	surface AggregatedSurface
}

// NewController validates conf and returns a walking Controller.
func NewController(conf Config) (*Controller, error) {
	if err := conf.Tunables.Validate(); err != nil {
		return nil, err
	}
	if err := conf.Montages.Validate(); err != nil {
		return nil, err
	}
	if conf.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		conf.Log = l
	}

	return &Controller{
		tunables: conf.Tunables,
		montages: conf.Montages,
		caster:   NewShapeCaster(conf.World, conf.Tunables, conf.Debug),
		host:     conf.Host,
		animator: conf.Animator,
		log:      conf.Log,
		state:    Grounded{},
	}, nil
}

// Tunables returns the configuration the controller was built with.
func (c *Controller) Tunables() Tunables {
	return c.tunables
}

// Montages returns the transition montage set.
func (c *Controller) Montages() TransitionMontageSet {
	return c.montages
}

// State returns the current movement state.
func (c *Controller) State() MovementState {
	return c.state
}

// Mode returns the current movement mode.
func (c *Controller) Mode() Mode {
	return c.state.Mode()
}

// IsClimbing reports whether the character is currently climbing.
func (c *Controller) IsClimbing() bool {
	return c.state.Mode() == ModeClimbing
}

// Surface returns the most recently sampled surface.
func (c *Controller) Surface() AggregatedSurface {
	return c.surface
}

// Hits returns the raw hits of the most recent surface sample.
func (c *Controller) Hits() []SurfaceHit {
	return c.hits
}

// Limits returns the speed and acceleration caps of the current mode.
func (c *Controller) Limits() Limits {
	return behaviours[c.state.Mode()].limits(c.tunables)
}

// CanStartClimbing reports whether the character is facing a climbable surface it can attach to.
// The sampled surface is kept as the controller's current surface.
func (c *Controller) CanStartClimbing(ctx *PhysicsContext) bool {
	if ctx == nil {
		return false
	}
	if c.tunables.EntryPolicy == EntryPolicyGroundedOnly && c.state.Mode() == ModeFalling {
		return false
	}
	if !c.sampleSurface(ctx) {
		return false
	}

	hit, _ := c.eyeTrace(ctx, 0)
	return hit.Blocking
}

// ToggleClimbing starts climbing, either onto the surface ahead or down over the ledge ahead, when
// enable is set, and stops climbing otherwise. It returns whether a transition was started.
func (c *Controller) ToggleClimbing(ctx *PhysicsContext, enable bool) bool {
	if ctx == nil {
		return false
	}
	if !enable {
		if !c.IsClimbing() {
			return false
		}
		c.StopClimbing(ctx)
		return true
	}
	if c.IsClimbing() {
		return false
	}

	if c.CanStartClimbing(ctx) {
		return c.playTransition(ctx, TransitionIdleToClimb)
	}
	if c.CanClimbDownLedge(ctx) {
		return c.playTransition(ctx, TransitionClimbDownLedge)
	}
	return false
}

// sampleSurface sweeps the probe capsule just ahead of the character and stores the result. It
// returns whether anything was hit.
func (c *Controller) sampleSurface(ctx *PhysicsContext) bool {
	fwd := ctx.Pose.Forward()
	start := ctx.Pose.Pos.Add(fwd.Mul(c.tunables.SurfaceProbeOffset))
	c.hits = c.caster.CapsuleSweep(start, start.Add(fwd))
	c.surface = Aggregate(c.hits)
	return len(c.hits) > 0
}

// eyeTrace casts a ray forward from eye height raised by offset. It returns the hit and the end of
// the ray.
func (c *Controller) eyeTrace(ctx *PhysicsContext, offset float32) (SurfaceHit, mgl32.Vec3) {
	start := ctx.Pose.Pos.Add(ctx.Pose.Up().Mul(c.tunables.EyeHeight + offset))
	end := start.Add(ctx.Pose.Forward().Mul(c.tunables.EyeTraceDistance))
	return c.caster.Ray(start, end), end
}
