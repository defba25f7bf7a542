package main

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/df-mc/dragonfly/server/block"
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	df_world "github.com/df-mc/dragonfly/server/world"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/climb"
	"github.com/oomph-ac/climbsim/config"
	"github.com/oomph-ac/climbsim/host"
	"github.com/oomph-ac/climbsim/worker"
	"github.com/oomph-ac/climbsim/world"
	"github.com/sirupsen/logrus"
)

// scene is a world with the point the character starts from. The character faces +Z towards the
// wall.
type scene struct {
	world *world.World
	start mgl32.Vec3
}

// wallFront is the z coordinate of the wall face in the wall scene.
const wallFront = 50

func buildScene(conf config.Config) scene {
	radius, halfHeight := conf.Climb.CapsuleRadius, conf.Scene.HalfHeight
	switch conf.Scene.Kind {
	case config.SceneBlocks:
		return blockScene(conf)
	default:
		w := world.New(0)
		w.Add(cube.Box(-2000, -100, -2000, 2000, 0, 2000), climb.ClassStatic)
		w.Add(cube.Box(-500, 0, wallFront, 500, conf.Scene.WallHeight, wallFront+1000), climb.ClassStatic|climb.ClassClimbable)
		return scene{
			world: w,
			start: mgl32.Vec3{0, halfHeight, wallFront - radius - conf.Scene.StartDistance},
		}
	}
}

// blockGrid is an in-memory block source. Missing positions are air.
type blockGrid map[df_cube.Pos]df_world.Block

func (g blockGrid) Block(pos df_cube.Pos) df_world.Block {
	if b, ok := g[pos]; ok {
		return b
	}
	return block.Air{}
}

// blockScene builds a stone wall one block in front of the origin on a stone floor.
func blockScene(conf config.Config) scene {
	const (
		halfWidth = 3
		depth     = 5
	)
	scale := float32(world.DefaultBlockScale)
	height := int(math32.Ceil(conf.Scene.WallHeight / scale))

	grid := blockGrid{}
	for x := -halfWidth; x <= halfWidth; x++ {
		for z := -depth - 1; z <= depth+1; z++ {
			grid[df_cube.Pos{x, -1, z}] = block.Stone{}
		}
		for z := 1; z <= depth; z++ {
			for y := 0; y < height; y++ {
				grid[df_cube.Pos{x, y, z}] = block.Stone{}
			}
		}
	}

	w := world.FromBlocks(grid, df_cube.Pos{-halfWidth, -1, -depth - 1}, df_cube.Pos{halfWidth, height, depth + 1}, scale)
	return scene{
		world: w,
		start: mgl32.Vec3{0, conf.Scene.HalfHeight, scale - conf.Climb.CapsuleRadius - conf.Scene.StartDistance},
	}
}

// characterSpacing is the distance between characters climbing side by side.
const characterSpacing = 150

// summary is the outcome of one character's scripted climb.
type summary struct {
	Character int
	Started   bool
	Outcomes  map[climb.TickOutcome]int
	Mode      climb.Mode
	Position  mgl32.Vec3
}

// runScene builds the scene and runs every character's climb on the worker pool. The world is only
// read while characters run, so they share it.
func runScene(conf config.Config, log logrus.FieldLogger) ([]summary, error) {
	sc := buildScene(conf)
	pool := worker.New(conf.Scene.Characters)
	defer pool.Close()

	summaries := make([]summary, conf.Scene.Characters)
	for i := range summaries {
		offset := (float32(i) - float32(conf.Scene.Characters-1)/2) * characterSpacing
		start := sc.start.Add(mgl32.Vec3{offset, 0, 0})
		pool.Submit(func() error {
			sum, err := runCharacter(conf, sc.world, start, log.WithField("character", i))
			if err != nil {
				return fmt.Errorf("character %d: %w", i, err)
			}
			sum.Character = i
			summaries[i] = sum
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// runCharacter walks a character into the wall, climbs up for as long as it is attached and lets
// the transitions play out.
func runCharacter(conf config.Config, w *world.World, start mgl32.Vec3, log logrus.FieldLogger) (summary, error) {
	move := &host.Movement{Collider: w, Options: conf.Movement}
	anim := host.NewAnimator(conf.Clips)

	ctrl, err := climb.NewController(climb.Config{
		Tunables: conf.Climb,
		Montages: conf.Montages,
		World:    w,
		Host:     move,
		Animator: anim,
		Debug: func(kind climb.QueryKind, start, end mgl32.Vec3, hits []climb.SurfaceHit) {
			log.WithFields(logrus.Fields{"kind": kind, "start": start, "end": end, "hits": len(hits)}).Trace("climb: query")
		},
		Log: log,
	})
	if err != nil {
		return summary{}, err
	}
	anim.SetListener(ctrl)
	move.ConstrainRootMotion = ctrl.ConstrainRootMotionVelocity

	ctx := climb.NewPhysicsContext(start, mgl32.QuatIdent(), conf.Climb.CapsuleRadius, conf.Scene.HalfHeight)
	sum := summary{
		Started:  ctrl.ToggleClimbing(ctx, true),
		Outcomes: map[climb.TickOutcome]int{},
	}
	log.WithFields(logrus.Fields{"scene": conf.Scene.Kind, "start": start, "surfaces": w.Len()}).Infof("climbsim: toggled climbing: %v", sum.Started)

	dt := 1 / conf.Scene.TickRate
	mode := ctrl.Mode()
	for i := 0; i < conf.Scene.Ticks; i++ {
		anim.Advance(ctx, dt)
		input := mgl32.Vec2{}
		if ctrl.IsClimbing() {
			input = mgl32.Vec2{0, 1}
		}
		ctrl.ApplyInput(ctx, input)

		res := move.Step(ctx, ctrl, dt)
		if res.Climb.Outcome != climb.TickOutcomeInactive {
			sum.Outcomes[res.Climb.Outcome]++
		}
		if res.Mode != mode {
			log.WithFields(logrus.Fields{"tick": i, "pos": ctx.Pose.Pos, "outcome": res.Climb.Outcome}).Infof("climbsim: %s -> %s", mode, res.Mode)
			mode = res.Mode
		}
	}

	sum.Mode = ctrl.Mode()
	sum.Position = ctx.Pose.Pos
	return sum, nil
}
