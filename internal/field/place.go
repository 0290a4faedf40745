package field

import (
	"fmt"

	"skirmish/internal/entity"
	"skirmish/internal/fault"
)

// AddBase registers b on (x, y).
func (f *Field) AddBase(b *entity.Base, x, y int) error {
	if err := f.checkOpen(); err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("nil base: %w", fault.ErrInvalidArgument)
	}
	if err := f.checkBounds(x, y); err != nil {
		return err
	}
	if err := f.checkEmpty(x, y); err != nil {
		return err
	}
	for _, m := range f.bases {
		if m == b {
			return fmt.Errorf("base %s is already on the field: %w", b.Name(), fault.ErrInvalidArgument)
		}
	}

	at := entity.Position{X: x, Y: y}
	b.SetPosition(at)
	f.cells[f.index(x, y)] = b
	f.bases = append(f.bases, b)

	f.log.Debug("base placed", "base", b.Name(), "x", x, "y", y)
	f.Emit("BasePlaced", map[string]any{"base": b.Name(), "x": x, "y": y})
	return nil
}

// AddNeutralObject registers o on (x, y). Same occupancy rules as AddBase.
func (f *Field) AddNeutralObject(o *entity.Object, x, y int) error {
	if err := f.checkOpen(); err != nil {
		return err
	}
	if o == nil {
		return fmt.Errorf("nil object: %w", fault.ErrInvalidArgument)
	}
	if err := f.checkBounds(x, y); err != nil {
		return err
	}
	if err := f.checkEmpty(x, y); err != nil {
		return err
	}
	for _, m := range f.objects {
		if m == o {
			return fmt.Errorf("%s is already on the field: %w", o.Name(), fault.ErrInvalidArgument)
		}
	}

	o.SetPosition(entity.Position{X: x, Y: y})
	f.cells[f.index(x, y)] = o
	f.objects = append(f.objects, o)

	f.log.Debug("object placed", "object", o.Name(), "x", x, "y", y)
	f.Emit("ObjectPlaced", map[string]any{"object": o.Name(), "kind": o.Kind().String(), "x": x, "y": y})
	return nil
}

// AddUnit places u on (x, y) and assigns it the next id. Checks run in a
// fixed order: bounds, occupancy, terrain, capacity, liveness, and
// finally whether the unit is already placed somewhere.
func (f *Field) AddUnit(u *entity.Unit, x, y int) error {
	if err := f.checkOpen(); err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("nil unit: %w", fault.ErrInvalidArgument)
	}
	if err := f.checkBounds(x, y); err != nil {
		return err
	}
	if err := f.checkEmpty(x, y); err != nil {
		return err
	}
	land, _ := f.land.At(x, y)
	if !land.CanPass(u) {
		return fmt.Errorf("%s cannot enter %s at (%d,%d): %w", u.Name(), land, x, y, fault.ErrImpassable)
	}
	if len(f.units) >= f.maxUnits {
		return fmt.Errorf("field holds %d units: %w", f.maxUnits, fault.ErrCapacityExceeded)
	}
	if !u.IsAlive() {
		return fmt.Errorf("%s: %w", u.Name(), fault.ErrDeadEntity)
	}
	if _, placed := u.Position(); placed || f.tracked(u) {
		return fmt.Errorf("%s is already on the field: %w", u.Name(), fault.ErrInvalidArgument)
	}

	id := f.nextID
	f.nextID++
	at := entity.Position{X: x, Y: y}
	u.Place(id, at)
	f.cells[f.index(x, y)] = u
	f.units = append(f.units, u)

	f.log.Debug("unit placed", "unit", u.Name(), "id", id, "x", x, "y", y)
	f.Emit("UnitPlaced", map[string]any{"unit": u.Name(), "id": id, "kind": u.Kind().String(), "x": x, "y": y})
	return nil
}

// RemoveUnit takes u off the field and out of every base. The cell is
// cleared only if it still holds u.
func (f *Field) RemoveUnit(u *entity.Unit) error {
	if err := f.checkOpen(); err != nil {
		return err
	}
	if err := f.trackedOrErr(u); err != nil {
		return err
	}
	f.detach(u)
	f.Emit("UnitRemoved", map[string]any{"unit": u.Name(), "id": u.ID()})
	return nil
}

func (f *Field) detach(u *entity.Unit) {
	if pos, ok := u.Position(); ok && f.InBounds(pos.X, pos.Y) {
		i := f.index(pos.X, pos.Y)
		if occ, isUnit := f.cells[i].(*entity.Unit); isUnit && occ == u {
			f.cells[i] = nil
		}
	}
	for i, m := range f.units {
		if m == u {
			f.units = append(f.units[:i], f.units[i+1:]...)
			break
		}
	}
	for _, b := range f.bases {
		b.Release(u)
	}
	u.Withdraw()
	f.log.Debug("unit removed", "unit", u.Name(), "id", u.ID())
}
