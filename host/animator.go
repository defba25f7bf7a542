package host

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/climb"
)

// Clip is a transition animation. RootMotion is a constant velocity in the character's local space
// applied while the clip plays.
type Clip struct {
	Duration   float32    `yaml:"duration"`
	RootMotion mgl32.Vec3 `yaml:"root_motion"`
}

// Animator plays timed transition clips one at a time. It implements climb.Animator.
type Animator struct {
	clips    map[climb.Montage]Clip
	listener climb.TransitionListener

	playing climb.Montage
	elapsed float32
}

// NewAnimator returns an animator that can play the given clips.
func NewAnimator(clips map[climb.Montage]Clip) *Animator {
	return &Animator{clips: clips}
}

// SetListener sets the receiver of transition end events.
func (a *Animator) SetListener(l climb.TransitionListener) {
	a.listener = l
}

// Playing returns the montage currently playing, or the empty montage.
func (a *Animator) Playing() climb.Montage {
	return a.playing
}

func (a *Animator) IsAnyTransitionPlaying() bool {
	return a.playing != ""
}

// PlayTransition starts m from the beginning. Unknown montages and clips without a duration are
// refused.
func (a *Animator) PlayTransition(m climb.Montage) bool {
	clip, ok := a.clips[m]
	if !ok || clip.Duration <= 0 {
		return false
	}
	a.playing, a.elapsed = m, 0
	return true
}

// Advance moves the playing clip forward by dt. While a clip plays its root motion is published to
// ctx; once it finishes the root motion is cleared and the listener notified.
func (a *Animator) Advance(ctx *climb.PhysicsContext, dt float32) {
	if a.playing == "" {
		return
	}
	clip := a.clips[a.playing]
	a.elapsed += dt
	if a.elapsed < clip.Duration {
		ctx.RootMotion = climb.RootMotion{
			Active:   clip.RootMotion.LenSqr() > 0,
			Velocity: ctx.Pose.Rot.Rotate(clip.RootMotion),
		}
		return
	}
	a.finish(ctx, false)
}

// Stop interrupts the playing clip.
func (a *Animator) Stop(ctx *climb.PhysicsContext) {
	if a.playing == "" {
		return
	}
	a.finish(ctx, true)
}

func (a *Animator) finish(ctx *climb.PhysicsContext, interrupted bool) {
	m := a.playing
	a.playing, a.elapsed = "", 0
	ctx.RootMotion = climb.RootMotion{}
	if a.listener != nil {
		a.listener.OnTransitionEnded(ctx, m, interrupted)
	}
}
