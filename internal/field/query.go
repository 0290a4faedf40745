package field

import (
	"skirmish/internal/entity"
	"skirmish/internal/terrain"
)

func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.width && y < f.height
}

// IsCellEmpty is true for in-bounds cells with no occupant.
func (f *Field) IsCellEmpty(x, y int) bool {
	return f.InBounds(x, y) && f.cells[f.index(x, y)] == nil
}

// OccupantAt returns whatever stands on (x, y), or nil.
func (f *Field) OccupantAt(x, y int) entity.Occupant {
	if !f.InBounds(x, y) {
		return nil
	}
	return f.cells[f.index(x, y)]
}

func (f *Field) UnitAt(x, y int) *entity.Unit {
	u, _ := f.OccupantAt(x, y).(*entity.Unit)
	return u
}

func (f *Field) BaseAt(x, y int) *entity.Base {
	b, _ := f.OccupantAt(x, y).(*entity.Base)
	return b
}

func (f *Field) ObjectAt(x, y int) *entity.Object {
	o, _ := f.OccupantAt(x, y).(*entity.Object)
	return o
}

// TerrainAt returns the landscape of (x, y); ok is false out of bounds.
func (f *Field) TerrainAt(x, y int) (*terrain.Landscape, bool) {
	return f.land.At(x, y)
}

// Units returns the registered units in placement order.
func (f *Field) Units() []*entity.Unit {
	out := make([]*entity.Unit, len(f.units))
	copy(out, f.units)
	return out
}

func (f *Field) Bases() []*entity.Base {
	out := make([]*entity.Base, len(f.bases))
	copy(out, f.bases)
	return out
}

func (f *Field) Objects() []*entity.Object {
	out := make([]*entity.Object, len(f.objects))
	copy(out, f.objects)
	return out
}

// UnitByID finds a registered unit by its placement id.
func (f *Field) UnitByID(id int) (*entity.Unit, bool) {
	for _, u := range f.units {
		if u.ID() == id {
			return u, true
		}
	}
	return nil, false
}

// LivingBases counts bases that still stand.
func (f *Field) LivingBases() int {
	n := 0
	for _, b := range f.bases {
		if b.IsAlive() {
			n++
		}
	}
	return n
}

// Reachable lists the empty cells u could move to this turn, row by row.
// Cells holding an object are included since stepping onto them triggers
// the object.
func (f *Field) Reachable(u *entity.Unit) []entity.Position {
	if u == nil || !f.tracked(u) || !u.IsAlive() || !u.SelfPropelled() || f.sealed {
		return nil
	}
	from, _ := u.Position()
	r := u.MoveRange()
	var out []entity.Position
	for y := from.Y - r; y <= from.Y+r; y++ {
		for x := from.X - r; x <= from.X+r; x++ {
			to := entity.Position{X: x, Y: y}
			d := from.Distance(to)
			if d == 0 || d > r || !f.InBounds(x, y) {
				continue
			}
			occ := f.cells[f.index(x, y)]
			if _, isObj := occ.(*entity.Object); isObj {
				out = append(out, to)
				continue
			}
			if occ != nil {
				continue
			}
			land, _ := f.land.At(x, y)
			if land.CanPass(u) && d <= r/land.MoveCost() {
				out = append(out, to)
			}
		}
	}
	return out
}
