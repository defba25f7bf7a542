package climb

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/game"
)

func TestTickInactive(t *testing.T) {
	c := newTestController(t, Config{World: newMockWorld(), Host: &mockHost{}})
	if res := c.Tick(standingContext(), 0.05); res.Outcome != TickOutcomeInactive {
		t.Fatalf("expected inactive tick while walking, got %v", res.Outcome)
	}
}

func TestTickZeroDeltaDoesNothing(t *testing.T) {
	w := newMockWorld()
	host := &mockHost{}
	c := newTestController(t, Config{World: w, Host: host})
	ctx := climbingContext(c, 150)
	ctx.Pose.Vel = mgl32.Vec3{0, 20, 0}
	ctx.Acceleration = mgl32.Vec3{0, 300, 0}
	before := *ctx

	res := c.Tick(ctx, 0)
	if res.Outcome != TickOutcomeInvalidDelta {
		t.Fatalf("expected invalid delta, got %v", res.Outcome)
	}
	if *ctx != before {
		t.Fatalf("expected context to be untouched, got %+v", *ctx)
	}
	if w.sweeps != 0 || w.rays != 0 || len(host.calls) != 0 {
		t.Fatalf("expected no queries or host calls, got %d sweeps %d rays %v", w.sweeps, w.rays, host.calls)
	}
	if !c.IsClimbing() {
		t.Fatalf("expected to still be climbing")
	}
}

func TestTickStopsOnFloorNormal(t *testing.T) {
	w := newMockWorld()
	w.sweepHits = []SurfaceHit{{Point: mgl32.Vec3{0, 0, 0}, Normal: game.Up, Blocking: true}}
	host := &mockHost{}
	c := newTestController(t, Config{World: w, Host: host})
	ctx := climbingContext(c, 150)

	res := c.Tick(ctx, 0.05)
	if res.Outcome != TickOutcomeStoppedNoSurface {
		t.Fatalf("expected climbing to stop, got %v", res.Outcome)
	}
	if c.Mode() != ModeFalling {
		t.Fatalf("expected falling, got %v", c.Mode())
	}
	if len(host.calls) != 0 {
		t.Fatalf("expected no integration after stopping, got %v", host.calls)
	}
}

func TestTickStopsWithoutSurface(t *testing.T) {
	w := newMockWorld()
	c := newTestController(t, Config{World: w, Host: &mockHost{}})
	ctx := climbingContext(c, 150)
	ctx.Pose.Pos = mgl32.Vec3{0, 150, -500}

	if res := c.Tick(ctx, 0.05); res.Outcome != TickOutcomeStoppedNoSurface {
		t.Fatalf("expected climbing to stop without a surface, got %v", res.Outcome)
	}
	if c.Mode() != ModeFalling {
		t.Fatalf("expected falling, got %v", c.Mode())
	}
}

func TestTickReachesFloor(t *testing.T) {
	c := newTestController(t, Config{World: newMockWorld(), Host: &mockHost{}})
	ctx := climbingContext(c, 100)
	ctx.Pose.Vel = mgl32.Vec3{0, -50, 0}

	if res := c.Tick(ctx, 0.05); res.Outcome != TickOutcomeReachedFloor {
		t.Fatalf("expected floor to be reached, got %v", res.Outcome)
	}
	if c.Mode() != ModeFalling {
		t.Fatalf("expected falling after reaching the floor, got %v", c.Mode())
	}
	if ctx.CapsuleHalfHeight != 96 {
		t.Fatalf("expected half-height to be restored, got %v", ctx.CapsuleHalfHeight)
	}
}

func TestTickReachesLedge(t *testing.T) {
	anim := &mockAnimator{}
	host := &mockHost{}
	c := newTestController(t, Config{World: newMockWorld(), Host: host, Animator: anim, Montages: testMontages})
	ctx := climbingContext(c, 250)
	ctx.Pose.Vel = mgl32.Vec3{0, 50, 0}

	res := c.Tick(ctx, 0.05)
	if res.Outcome != TickOutcomeReachedLedge {
		t.Fatalf("expected ledge to be reached, got %v", res.Outcome)
	}
	if len(anim.played) != 1 || anim.played[0] != testMontages.ClimbToTop {
		t.Fatalf("expected climb to top montage, got %v", anim.played)
	}
	if len(host.calls) != 0 {
		t.Fatalf("expected the ledge to short-circuit integration, got %v", host.calls)
	}

	// While the montage plays the ledge check is skipped and root motion drives the character.
	host.rootMotion = true
	ctx.RootMotion = RootMotion{Active: true, Velocity: mgl32.Vec3{0, 80, 20}}
	if res := c.Tick(ctx, 0.05); res.Outcome != TickOutcomeClimbed {
		t.Fatalf("expected integration while the montage plays, got %v", res.Outcome)
	}
	if len(anim.played) != 1 {
		t.Fatalf("expected the montage not to be replayed, got %v", anim.played)
	}
	if ctx.Pose.Vel != (mgl32.Vec3{0, 80, 20}) {
		t.Fatalf("expected root motion velocity to be kept, got %v", ctx.Pose.Vel)
	}

	c.OnTransitionEnded(ctx, testMontages.ClimbToTop, false)
	if c.Mode() != ModeWalking {
		t.Fatalf("expected walking once the montage ended, got %v", c.Mode())
	}
}

func TestTickReachesLedgeWithoutAnimator(t *testing.T) {
	c := newTestController(t, Config{World: newMockWorld(), Host: &mockHost{}})
	ctx := climbingContext(c, 250)
	ctx.Pose.Vel = mgl32.Vec3{0, 50, 0}

	if res := c.Tick(ctx, 0.05); res.Outcome != TickOutcomeReachedLedge {
		t.Fatalf("expected ledge to be reached, got %v", res.Outcome)
	}
	if c.Mode() != ModeWalking {
		t.Fatalf("expected walking immediately without an animator, got %v", c.Mode())
	}
}

func TestTickClimbs(t *testing.T) {
	host := &mockHost{}
	c := newTestController(t, Config{World: newMockWorld(), Host: host})
	ctx := climbingContext(c, 150)
	ctx.Acceleration = mgl32.Vec3{0, 300, 0}
	dt := float32(0.05)

	res := c.Tick(ctx, dt)
	if res.Outcome != TickOutcomeClimbed {
		t.Fatalf("expected to climb, got %v", res.Outcome)
	}
	if want := []string{"calc", "rootmotion", "move", "move"}; !slices.Equal(host.calls, want) {
		t.Fatalf("expected host calls %v, got %v", want, host.calls)
	}
	if res.Velocity.Y() <= 0 {
		t.Fatalf("expected upward velocity, got %v", res.Velocity)
	}
	if res.Velocity.Len() > 100+1e-3 {
		t.Fatalf("expected climb speed to be capped, got %v", res.Velocity.Len())
	}

	// The surface point is 50 units ahead, so the snap is 50 * dt * max climb speed into the wall.
	wantSnap := mgl32.Vec3{0, 0, 50 * dt * 100}
	if !game.Vec3ApproxEq(res.Snap, wantSnap, 1e-3) {
		t.Fatalf("expected snap %v, got %v", wantSnap, res.Snap)
	}
	if s := c.State().(*Climbing); s.Ticks != 1 {
		t.Fatalf("expected one climbing tick, got %d", s.Ticks)
	}
}

func TestTickWithoutHost(t *testing.T) {
	c := newTestController(t, Config{World: newMockWorld()})
	ctx := climbingContext(c, 150)
	pos := ctx.Pose.Pos

	if res := c.Tick(ctx, 0.05); res.Outcome != TickOutcomeClimbed {
		t.Fatalf("expected tick to complete, got %v", res.Outcome)
	}
	if ctx.Pose.Pos != pos {
		t.Fatalf("expected no movement without a host, got %v", ctx.Pose.Pos)
	}
}

func TestSnapDisplacementCoincident(t *testing.T) {
	c := newTestController(t, Config{})
	ctx := NewPhysicsContext(mgl32.Vec3{1, 2, 3}, mgl32.QuatIdent(), 50, 96)
	surface := AggregatedSurface{Point: mgl32.Vec3{1, 2, 3}, Normal: mgl32.Vec3{0, 0, -1}}

	if snap := c.SnapDisplacement(ctx, surface, 0.05); snap != (mgl32.Vec3{}) {
		t.Fatalf("expected zero snap, got %v", snap)
	}
}

func TestClimbRotationFacesSurface(t *testing.T) {
	host := &mockHost{}
	c := newTestController(t, Config{Host: host})
	ctx := NewPhysicsContext(mgl32.Vec3{}, mgl32.QuatIdent(), 50, 96)
	surface := AggregatedSurface{Normal: mgl32.Vec3{1, 0, 0}}

	rot := ctx.Pose.Rot
	for i := 0; i < 200; i++ {
		ctx.Pose.Rot = c.ClimbRotation(ctx, surface, 0.05)
	}
	if fwd := ctx.Pose.Forward(); !game.Vec3ApproxEq(fwd, mgl32.Vec3{-1, 0, 0}, 1e-3) {
		t.Fatalf("expected to face into the surface, got forward %v", fwd)
	}

	ctx.Pose.Rot = rot
	if got := c.ClimbRotation(ctx, AggregatedSurface{}, 0.05); got != rot {
		t.Fatalf("expected rotation to be kept without a normal, got %v", got)
	}

	host.rootMotion = true
	if got := c.ClimbRotation(ctx, surface, 0.05); got != rot {
		t.Fatalf("expected rotation to be kept under root motion, got %v", got)
	}
}
