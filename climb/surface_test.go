package climb

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/game"
)

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	if s != (AggregatedSurface{}) {
		t.Fatalf("expected zero surface, got %v", s)
	}
	if s.Valid() {
		t.Fatalf("zero surface must not be valid")
	}
}

func TestAggregateOpposingNormals(t *testing.T) {
	s := Aggregate([]SurfaceHit{
		{Point: mgl32.Vec3{0, 0, 10}, Normal: mgl32.Vec3{0, 0, -1}, Blocking: true},
		{Point: mgl32.Vec3{0, 0, 20}, Normal: mgl32.Vec3{0, 0, 1}, Blocking: true},
	})
	if s.Normal != (mgl32.Vec3{}) {
		t.Fatalf("expected zero normal for opposing hits, got %v", s.Normal)
	}
	for _, c := range s.Normal {
		if math32.IsNaN(c) {
			t.Fatalf("normal contains NaN: %v", s.Normal)
		}
	}
	if !game.Vec3ApproxEq(s.Point, mgl32.Vec3{0, 0, 15}, 1e-5) {
		t.Fatalf("expected mean point (0, 0, 15), got %v", s.Point)
	}
}

func TestAggregateSingleHitNormalizes(t *testing.T) {
	s := Aggregate([]SurfaceHit{{Point: mgl32.Vec3{1, 2, 3}, Normal: mgl32.Vec3{0, 0, -4}, Blocking: true}})
	if !game.Vec3ApproxEq(s.Normal, mgl32.Vec3{0, 0, -1}, 1e-6) {
		t.Fatalf("expected unit normal, got %v", s.Normal)
	}
	if s.Point != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("expected hit point, got %v", s.Point)
	}
}

func TestAggregateCorner(t *testing.T) {
	s := Aggregate([]SurfaceHit{
		{Normal: mgl32.Vec3{0, 0, -1}},
		{Normal: mgl32.Vec3{-1, 0, 0}},
	})
	want := mgl32.Vec3{-1, 0, -1}.Normalize()
	if !game.Vec3ApproxEq(s.Normal, want, 1e-5) {
		t.Fatalf("expected %v, got %v", want, s.Normal)
	}
}

func TestSurfaceFilter(t *testing.T) {
	if !FilterClimbable.Matches(ClassClimbable) {
		t.Fatalf("climbable filter must match climbable surfaces")
	}
	if FilterClimbable.Matches(ClassStatic) {
		t.Fatalf("climbable filter must not match static surfaces")
	}
	if !FilterAll.Matches(ClassStatic | ClassClimbable) {
		t.Fatalf("all filter must match every class")
	}
}

func TestShapeCasterDebugHook(t *testing.T) {
	w := newMockWorld()
	var queries []QueryKind
	caster := NewShapeCaster(w, DefaultTunables(), func(kind QueryKind, _, _ mgl32.Vec3, _ []SurfaceHit) {
		queries = append(queries, kind)
	})

	caster.CapsuleSweep(mgl32.Vec3{0, 74, 30}, mgl32.Vec3{0, 74, 31})
	caster.Ray(mgl32.Vec3{0, 138, 0}, mgl32.Vec3{0, 138, 100})
	if len(queries) != 2 || queries[0] != QueryCapsule || queries[1] != QueryRay {
		t.Fatalf("expected capsule then ray query, got %v", queries)
	}
}

func TestShapeCasterWithoutWorld(t *testing.T) {
	caster := NewShapeCaster(nil, DefaultTunables(), nil)
	if hits := caster.CapsuleSweep(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}); len(hits) != 0 {
		t.Fatalf("expected no hits without a world, got %v", hits)
	}
	if hit := caster.Ray(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}); hit.Blocking {
		t.Fatalf("expected no blocking hit without a world")
	}
}
