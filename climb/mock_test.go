package climb

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/game"
)

// mockWorld is a wall facing -Z with its front face at z = front, solid for y in [bottom, top] and
// every z beyond the front. The top of the wall is walkable and an unbounded floor of class
// floorClass lies at y = floor in front of it.
type mockWorld struct {
	front, bottom, top, floor float32
	wallClass, floorClass     SurfaceClass

	// sweepHits replaces the geometric capsule sweep when set.
	sweepHits []SurfaceHit

	sweeps, rays int
}

func newMockWorld() *mockWorld {
	return &mockWorld{front: 50, bottom: 0, top: 300, floor: 0, wallClass: ClassStatic | ClassClimbable, floorClass: ClassStatic}
}

func (w *mockWorld) SweepCapsule(start, end mgl32.Vec3, radius, halfHeight float32, filter SurfaceFilter) []SurfaceHit {
	w.sweeps++
	if w.sweepHits != nil {
		return w.sweepHits
	}

	var hits []SurfaceHit
	if end.Z()+radius >= w.front && end.Y()+halfHeight >= w.bottom && end.Y()-halfHeight <= w.top && filter.Matches(w.wallClass) {
		hits = append(hits, SurfaceHit{
			Point:    mgl32.Vec3{end.X(), mgl32.Clamp(end.Y(), w.bottom, w.top), w.front},
			Normal:   mgl32.Vec3{0, 0, -1},
			Blocking: true,
		})
	}
	if end.Y()-halfHeight < w.floor && filter.Matches(w.floorClass) {
		hits = append(hits, SurfaceHit{
			Point:    mgl32.Vec3{end.X(), w.floor, end.Z()},
			Normal:   game.Up,
			Blocking: true,
		})
	}
	return hits
}

func (w *mockWorld) CastRay(start, end mgl32.Vec3, filter SurfaceFilter) SurfaceHit {
	w.rays++

	best := SurfaceHit{Distance: 1}
	d := end.Sub(start)
	try := func(t float32, normal mgl32.Vec3, inside func(p mgl32.Vec3) bool) {
		if t < 0 || t > 1 || (best.Blocking && t >= best.Distance) {
			return
		}
		p := start.Add(d.Mul(t))
		if !inside(p) {
			return
		}
		best = SurfaceHit{Point: p, Normal: normal, Blocking: true, Distance: t}
	}

	if d.Z() > 0 && filter.Matches(w.wallClass) {
		try((w.front-start.Z())/d.Z(), mgl32.Vec3{0, 0, -1}, func(p mgl32.Vec3) bool {
			return p.Y() >= w.bottom && p.Y() <= w.top
		})
	}
	if d.Y() < 0 {
		if filter.Matches(w.wallClass) {
			try((w.top-start.Y())/d.Y(), game.Up, func(p mgl32.Vec3) bool {
				return p.Z() >= w.front
			})
		}
		if filter.Matches(w.floorClass) {
			try((w.floor-start.Y())/d.Y(), game.Up, func(p mgl32.Vec3) bool {
				return p.Z() < w.front
			})
		}
	}
	return best
}

// mockHost integrates without collision.
type mockHost struct {
	rootMotion bool
	calls      []string
}

func (h *mockHost) CalcVelocity(ctx *PhysicsContext, dt, _ float32, _ bool, _ float32) {
	h.calls = append(h.calls, "calc")
	vel := ctx.Pose.Vel.Add(game.ClampLength(ctx.Acceleration, ctx.Limits.MaxAcceleration).Mul(dt))
	ctx.Pose.SetVel(game.ClampLength(vel, ctx.Limits.MaxSpeed))
}

func (h *mockHost) MoveWithCollision(ctx *PhysicsContext, delta mgl32.Vec3, rot mgl32.Quat) MoveResult {
	h.calls = append(h.calls, "move")
	ctx.Pose.SetPos(ctx.Pose.Pos.Add(delta))
	ctx.Pose.SetRot(rot)
	return MoveResult{Applied: delta}
}

func (h *mockHost) HasRootMotionOverride(*PhysicsContext) bool {
	return h.rootMotion
}

func (h *mockHost) ApplyRootMotionToVelocity(ctx *PhysicsContext, _ float32) {
	h.calls = append(h.calls, "rootmotion")
	if h.rootMotion {
		ctx.Pose.SetVel(ctx.RootMotion.Velocity)
	}
}

type mockAnimator struct {
	playing bool
	refuse  bool
	played  []Montage
}

func (a *mockAnimator) IsAnyTransitionPlaying() bool {
	return a.playing
}

func (a *mockAnimator) PlayTransition(m Montage) bool {
	if a.refuse {
		return false
	}
	a.played = append(a.played, m)
	a.playing = true
	return true
}

var testMontages = TransitionMontageSet{
	IdleToClimb:    "idle_to_climb",
	ClimbToTop:     "climb_to_top",
	ClimbDownLedge: "climb_down_ledge",
}

func newTestController(t *testing.T, conf Config) *Controller {
	t.Helper()
	if conf.Tunables == (Tunables{}) {
		conf.Tunables = DefaultTunables()
	}
	c, err := NewController(conf)
	if err != nil {
		t.Fatalf("failed to create controller: %v", err)
	}
	return c
}

// standingContext returns a character standing on the floor of newMockWorld, facing the wall from
// 50 units away.
func standingContext() *PhysicsContext {
	return NewPhysicsContext(mgl32.Vec3{0, 74, 0}, mgl32.QuatIdent(), 50, 96)
}

// climbingContext puts c into the climbing mode with the character at height y facing the wall.
func climbingContext(c *Controller, y float32) *PhysicsContext {
	ctx := NewPhysicsContext(mgl32.Vec3{0, y, 0}, mgl32.QuatIdent(), 50, 96)
	c.StartClimbing(ctx)
	return ctx
}
