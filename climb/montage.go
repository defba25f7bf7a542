package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/oerror"
)

// Montage is an opaque handle to a transition animation. The empty handle means unset.
type Montage string

// Transition identifies one of the climbing transitions.
type Transition uint8

const (
	TransitionIdleToClimb Transition = iota
	TransitionClimbToTop
	TransitionClimbDownLedge
)

func (t Transition) String() string {
	switch t {
	case TransitionIdleToClimb:
		return "idle_to_climb"
	case TransitionClimbToTop:
		return "climb_to_top"
	case TransitionClimbDownLedge:
		return "climb_down_ledge"
	default:
		return "unknown"
	}
}

// TransitionMontageSet maps each climbing transition to the montage that plays it.
type TransitionMontageSet struct {
	IdleToClimb    Montage `yaml:"idle_to_climb"`
	ClimbToTop     Montage `yaml:"climb_to_top"`
	ClimbDownLedge Montage `yaml:"climb_down_ledge"`
}

// Montage returns the handle configured for t.
func (s TransitionMontageSet) Montage(t Transition) Montage {
	switch t {
	case TransitionIdleToClimb:
		return s.IdleToClimb
	case TransitionClimbToTop:
		return s.ClimbToTop
	case TransitionClimbDownLedge:
		return s.ClimbDownLedge
	default:
		return ""
	}
}

// Transition returns the transition played by m.
func (s TransitionMontageSet) Transition(m Montage) (Transition, bool) {
	if m == "" {
		return 0, false
	}
	switch m {
	case s.IdleToClimb:
		return TransitionIdleToClimb, true
	case s.ClimbToTop:
		return TransitionClimbToTop, true
	case s.ClimbDownLedge:
		return TransitionClimbDownLedge, true
	default:
		return 0, false
	}
}

// Validate rejects sets that use the same montage for more than one transition.
func (s TransitionMontageSet) Validate() error {
	seen := map[Montage]Transition{}
	for _, t := range []Transition{TransitionIdleToClimb, TransitionClimbToTop, TransitionClimbDownLedge} {
		m := s.Montage(t)
		if m == "" {
			continue
		}
		if other, ok := seen[m]; ok {
			return oerror.New("montage %q is used for both %s and %s", m, other, t)
		}
		seen[m] = t
	}
	return nil
}

// transitionPlaying reports whether the animator is busy with a transition.
func (c *Controller) transitionPlaying() bool {
	return c.animator != nil && c.animator.IsAnyTransitionPlaying()
}

// playTransition starts the montage of t and returns whether it started. Without an animator the
// transition completes immediately.
func (c *Controller) playTransition(ctx *PhysicsContext, t Transition) bool {
	if c.animator == nil {
		c.completeTransition(ctx, t)
		return true
	}

	m := c.montages.Montage(t)
	if m == "" || c.animator.IsAnyTransitionPlaying() {
		return false
	}
	if !c.animator.PlayTransition(m) {
		c.log.Debugf("climb: animator refused transition %s (%s)", t, m)
		return false
	}
	return true
}

// OnTransitionEnded is called by the animation system when a transition montage stops playing.
// Montages that are not part of the transition set are ignored.
func (c *Controller) OnTransitionEnded(ctx *PhysicsContext, m Montage, interrupted bool) {
	if ctx == nil {
		return
	}
	t, ok := c.montages.Transition(m)
	if !ok {
		return
	}
	if interrupted {
		c.log.Debugf("climb: transition %s was interrupted", t)
	}
	c.completeTransition(ctx, t)
}

func (c *Controller) completeTransition(ctx *PhysicsContext, t Transition) {
	switch t {
	case TransitionIdleToClimb, TransitionClimbDownLedge:
		c.StartClimbing(ctx)
		ctx.Pose.SetVel(mgl32.Vec3{})
	case TransitionClimbToTop:
		c.SetMovementMode(ctx, ModeWalking)
	}
}

// ConstrainRootMotionVelocity returns the velocity root motion may impose on the character. While
// falling root motion cannot change vertical speed, except during a transition which is applied
// as authored.
func (c *Controller) ConstrainRootMotionVelocity(ctx *PhysicsContext, rootVel, vel mgl32.Vec3) mgl32.Vec3 {
	if c.state.Mode() != ModeFalling {
		return rootVel
	}
	if c.transitionPlaying() {
		return rootVel
	}
	rootVel[1] = vel[1]
	return rootVel
}
