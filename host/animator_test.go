package host

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/climb"
	"github.com/oomph-ac/climbsim/game"
)

var testMontages = climb.TransitionMontageSet{
	IdleToClimb:    "idle_to_climb",
	ClimbToTop:     "climb_to_top",
	ClimbDownLedge: "climb_down_ledge",
}

type transitionEnd struct {
	montage     climb.Montage
	interrupted bool
}

type recordingListener struct {
	ended []transitionEnd
}

func (l *recordingListener) OnTransitionEnded(_ *climb.PhysicsContext, m climb.Montage, interrupted bool) {
	l.ended = append(l.ended, transitionEnd{m, interrupted})
}

func TestAnimatorPlay(t *testing.T) {
	a := NewAnimator(map[climb.Montage]Clip{
		"climb_to_top": {Duration: 0.5},
		"broken":       {},
	})
	if a.PlayTransition("missing") || a.PlayTransition("broken") {
		t.Fatalf("expected unknown and empty clips to be refused")
	}
	if a.IsAnyTransitionPlaying() {
		t.Fatalf("expected nothing to be playing")
	}
	if !a.PlayTransition("climb_to_top") || a.Playing() != "climb_to_top" {
		t.Fatalf("expected the clip to start")
	}
}

func TestAnimatorAdvance(t *testing.T) {
	l := &recordingListener{}
	a := NewAnimator(map[climb.Montage]Clip{
		"climb_to_top": {Duration: 0.5, RootMotion: mgl32.Vec3{0, 100, 50}},
	})
	a.SetListener(l)

	ctx := walkingContext()
	ctx.Pose.SetRot(mgl32.QuatRotate(math.Pi/2, game.Up))
	a.PlayTransition("climb_to_top")

	a.Advance(ctx, 0.25)
	if !ctx.RootMotion.Active {
		t.Fatalf("expected root motion while the clip plays")
	}
	if !game.Vec3ApproxEq(ctx.RootMotion.Velocity, mgl32.Vec3{50, 100, 0}, 1e-3) {
		t.Fatalf("expected root motion in character space, got %v", ctx.RootMotion.Velocity)
	}
	if len(l.ended) != 0 {
		t.Fatalf("expected the clip to still be playing")
	}

	a.Advance(ctx, 0.25)
	if a.IsAnyTransitionPlaying() || ctx.RootMotion.Active {
		t.Fatalf("expected the clip to finish and clear root motion")
	}
	if len(l.ended) != 1 || l.ended[0] != (transitionEnd{"climb_to_top", false}) {
		t.Fatalf("expected one uninterrupted end, got %v", l.ended)
	}

	a.Advance(ctx, 1)
	if len(l.ended) != 1 {
		t.Fatalf("expected idle advances to do nothing")
	}
}

func TestAnimatorStop(t *testing.T) {
	l := &recordingListener{}
	a := NewAnimator(map[climb.Montage]Clip{"idle_to_climb": {Duration: 1}})
	a.SetListener(l)
	ctx := walkingContext()

	a.Stop(ctx)
	if len(l.ended) != 0 {
		t.Fatalf("expected stopping an idle animator to do nothing")
	}

	a.PlayTransition("idle_to_climb")
	a.Stop(ctx)
	if len(l.ended) != 1 || !l.ended[0].interrupted {
		t.Fatalf("expected an interrupted end, got %v", l.ended)
	}
}
