package interaction

import (
	"errors"

	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

var (
	ErrNothingSelected = errors.New("no block selected")
	ErrOccupiedByActor = errors.New("target cell overlaps actor")
	ErrOutOfWorld      = errors.New("target cell outside world height")
	ErrCellOccupied    = errors.New("target cell is not empty")
	// ErrInteractive означает, что блок под курсором открывает интерфейс, а не принимает блок
	ErrInteractive = errors.New("target block is interactive")
)

// Place ставит блок id в клетку перед гранью попадания hit.
// Клетка не должна пересекаться с коллайдером актёра actor.
func Place(w BlockWriter, reg block.Lookup, hit physics.Hit, id block.BlockID, actor physics.AABB) (vec.Vec3, error) {
	if hit.BlockID == block.CraftingTableBlockID {
		return vec.Vec3{}, ErrInteractive
	}
	if id == block.AirBlockID {
		return vec.Vec3{}, ErrNothingSelected
	}

	p := hit.Adjacent()
	if !world.InVerticalRange(p.Y) {
		return p, ErrOutOfWorld
	}
	if reg.IsSolid(w.GetBlock(p.X, p.Y, p.Z)) {
		return p, ErrCellOccupied
	}
	if actor.Intersects(physics.BlockBox(p.X, p.Y, p.Z)) {
		return p, ErrOccupiedByActor
	}

	w.SetBlock(p.X, p.Y, p.Z, id)
	return p, nil
}
