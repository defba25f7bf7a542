package world

import (
	"iter"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/climbsim/climb"
)

// DefaultCellSize is the edge length of a broadphase cell in world units.
const DefaultCellSize = 256

// Surface is a solid axis-aligned box whose faces share a surface class.
type Surface struct {
	Box   cube.BBox
	Class climb.SurfaceClass
}

// World is a static collision world made of axis-aligned boxes. Surfaces are indexed in a uniform
// grid so that queries only test boxes near the queried shape. A World must not be modified while
// it is being queried; concurrent queries are safe.
type World struct {
	surfaces []Surface
	cellSize float32
	cells    map[cube.Pos][]int
}

// New returns an empty world whose broadphase uses cells of the given size. A non-positive size
// uses DefaultCellSize.
func New(cellSize float32) *World {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &World{
		cellSize: cellSize,
		cells:    make(map[cube.Pos][]int),
	}
}

// Add inserts a surface and returns its index.
func (w *World) Add(box cube.BBox, class climb.SurfaceClass) int {
	index := len(w.surfaces)
	w.surfaces = append(w.surfaces, Surface{Box: box, Class: class})
	for pos := range w.cellRange(box) {
		w.cells[pos] = append(w.cells[pos], index)
	}
	return index
}

// Surfaces returns every surface in insertion order.
func (w *World) Surfaces() []Surface {
	return w.surfaces
}

// Len returns the number of surfaces in the world.
func (w *World) Len() int {
	return len(w.surfaces)
}

// BlockingBoxes returns the boxes of every surface intersecting area. All surfaces block movement
// regardless of class.
func (w *World) BlockingBoxes(area cube.BBox) []cube.BBox {
	var boxes []cube.BBox
	for _, index := range w.nearby(area) {
		if bb := w.surfaces[index].Box; bb.IntersectsWith(area) {
			boxes = append(boxes, bb)
		}
	}
	return boxes
}

// nearby returns the indices of the surfaces registered in the cells overlapping area, without
// duplicates.
func (w *World) nearby(area cube.BBox) []int {
	var (
		indices []int
		seen    = make(map[int]struct{})
	)
	for pos := range w.cellRange(area) {
		for _, index := range w.cells[pos] {
			if _, ok := seen[index]; ok {
				continue
			}
			seen[index] = struct{}{}
			indices = append(indices, index)
		}
	}
	return indices
}

// cellRange yields every cell overlapping bb.
func (w *World) cellRange(bb cube.BBox) iter.Seq[cube.Pos] {
	return func(yield func(cube.Pos) bool) {
		min, max := w.cell(bb.Min()[0], bb.Min()[1], bb.Min()[2]), w.cell(bb.Max()[0], bb.Max()[1], bb.Max()[2])
		for y := min[1]; y <= max[1]; y++ {
			for x := min[0]; x <= max[0]; x++ {
				for z := min[2]; z <= max[2]; z++ {
					if !yield(cube.Pos{x, y, z}) {
						return
					}
				}
			}
		}
	}
}

func (w *World) cell(x, y, z float32) cube.Pos {
	return cube.Pos{
		int(math32.Floor(x / w.cellSize)),
		int(math32.Floor(y / w.cellSize)),
		int(math32.Floor(z / w.cellSize)),
	}
}
