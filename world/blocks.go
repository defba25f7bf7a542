package world

import (
	"math"
	"sync"

	"github.com/df-mc/dragonfly/server/block"
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	df_world "github.com/df-mc/dragonfly/server/world"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/climb"
	"github.com/oomph-ac/climbsim/game"
)

// DefaultBlockScale is the number of world units per block edge.
const DefaultBlockScale = 100

var (
	blockNameMapping     map[uint64]string
	blockNameMappingOnce sync.Once
)

func initBlockNameMapping() {
	blockNameMapping = make(map[uint64]string, len(df_world.Blocks()))
	for _, b := range df_world.Blocks() {
		x, y := b.Hash()
		if x == 0 && y == math.MaxUint64 {
			continue
		}
		name, _ := b.EncodeBlock()
		blockNameMapping[df_world.BlockHash(b)] = name
	}
}

// BlockName returns the canonical name of a block.
func BlockName(b df_world.Block) string {
	blockNameMappingOnce.Do(initBlockNameMapping)
	if n, ok := blockNameMapping[df_world.BlockHash(b)]; ok {
		return n
	}
	n, _ := b.EncodeBlock()
	return n
}

// BlockClass returns the surface class of a block's collision boxes. Ladders and vines are only
// climbable, slippery and transparent blocks only block, and every other block is both.
func BlockClass(b df_world.Block) climb.SurfaceClass {
	if _, ok := b.(block.Ladder); ok {
		return climb.ClassClimbable
	}

	switch BlockName(b) {
	case "minecraft:vine", "minecraft:cave_vines", "minecraft:cave_vines_body_with_berries", "minecraft:cave_vines_head_with_berries",
		"minecraft:twisting_vines", "minecraft:weeping_vines":
		return climb.ClassClimbable
	case "minecraft:ice", "minecraft:packed_ice", "minecraft:blue_ice", "minecraft:slime", "minecraft:glass", "minecraft:barrier":
		return climb.ClassStatic
	default:
		return climb.ClassStatic | climb.ClassClimbable
	}
}

// FromBlocks builds a world from every block between min and max inclusive. Each block edge spans
// scale world units; a non-positive scale uses DefaultBlockScale. Blocks without collision boxes
// are skipped.
func FromBlocks(src df_world.BlockSource, min, max df_cube.Pos, scale float32) *World {
	if scale <= 0 {
		scale = DefaultBlockScale
	}
	w := New(scale * 2)
	for y := min.Y(); y <= max.Y(); y++ {
		for x := min.X(); x <= max.X(); x++ {
			for z := min.Z(); z <= max.Z(); z++ {
				pos := df_cube.Pos{x, y, z}
				b := src.Block(pos)
				if _, isAir := b.(block.Air); isAir {
					continue
				}

				class := BlockClass(b)
				offset := mgl32.Vec3{float32(x), float32(y), float32(z)}
				for _, dfBox := range b.Model().BBox(pos, src) {
					bb := game.DFBoxToCubeBox(dfBox).Translate(offset)
					w.Add(scaleBox(bb, scale), class)
				}
			}
		}
	}
	return w
}

func scaleBox(bb cube.BBox, scale float32) cube.BBox {
	min, max := bb.Min().Mul(scale), bb.Max().Mul(scale)
	return cube.Box(min[0], min[1], min[2], max[0], max[1], max[2])
}
