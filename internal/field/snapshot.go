package field

import (
	"skirmish/internal/entity"
	"skirmish/internal/terrain"
)

// Snapshot is a read-only copy of the field for renderers and the
// spectator API.
type Snapshot struct {
	Width    int              `json:"width"`
	Height   int              `json:"height"`
	MaxUnits int              `json:"max_units"`
	Turn     int              `json:"turn"`
	Sealed   bool             `json:"sealed"`
	Terrain  [][]terrain.Kind `json:"terrain"`
	Units    []UnitView       `json:"units"`
	Bases    []BaseView       `json:"bases"`
	Objects  []ObjectView     `json:"objects"`
}

type UnitView struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Kind        entity.Kind     `json:"kind"`
	Symbol      string          `json:"symbol"`
	Position    entity.Position `json:"position"`
	Health      int             `json:"health"`
	MaxHealth   int             `json:"max_health"`
	Armor       int             `json:"armor"`
	Attack      int             `json:"attack"`
	MoveRange   int             `json:"move_range"`
	AttackRange int             `json:"attack_range"`
	Alive       bool            `json:"alive"`
	Base        string          `json:"base,omitempty"`
}

type BaseView struct {
	Name      string          `json:"name"`
	Position  entity.Position `json:"position"`
	Health    int             `json:"health"`
	MaxHealth int             `json:"max_health"`
	Resources int             `json:"resources"`
	Units     int             `json:"units"`
	Alive     bool            `json:"alive"`
}

type ObjectView struct {
	Name     string            `json:"name"`
	Kind     entity.ObjectKind `json:"kind"`
	Symbol   string            `json:"symbol"`
	Position entity.Position   `json:"position"`
}

// ViewUnit copies the visible state of u.
func ViewUnit(u *entity.Unit) UnitView {
	pos, _ := u.Position()
	v := UnitView{
		ID:          u.ID(),
		Name:        u.Name(),
		Kind:        u.Kind(),
		Symbol:      string(u.Symbol()),
		Position:    pos,
		Health:      u.Health(),
		MaxHealth:   u.MaxHealth(),
		Armor:       u.Armor(),
		Attack:      u.Attack(),
		MoveRange:   u.MoveRange(),
		AttackRange: u.AttackRange(),
		Alive:       u.IsAlive(),
	}
	if b := u.Owner(); b != nil {
		v.Base = b.Name()
	}
	return v
}

func (f *Field) Snapshot() Snapshot {
	s := Snapshot{
		Width:    f.width,
		Height:   f.height,
		MaxUnits: f.maxUnits,
		Turn:     f.turn,
		Sealed:   f.sealed,
		Terrain:  make([][]terrain.Kind, f.height),
		Units:    make([]UnitView, 0, len(f.units)),
		Bases:    make([]BaseView, 0, len(f.bases)),
		Objects:  make([]ObjectView, 0, len(f.objects)),
	}
	for y := 0; y < f.height; y++ {
		row := make([]terrain.Kind, f.width)
		for x := range row {
			row[x], _ = f.land.Kind(x, y)
		}
		s.Terrain[y] = row
	}
	for _, u := range f.units {
		s.Units = append(s.Units, ViewUnit(u))
	}
	for _, b := range f.bases {
		pos, _ := b.Position()
		s.Bases = append(s.Bases, BaseView{
			Name:      b.Name(),
			Position:  pos,
			Health:    b.Health(),
			MaxHealth: b.MaxHealth(),
			Resources: b.Resources(),
			Units:     len(b.Units()),
			Alive:     b.IsAlive(),
		})
	}
	for _, o := range f.objects {
		pos, _ := o.Position()
		s.Objects = append(s.Objects, ObjectView{
			Name:     o.Name(),
			Kind:     o.Kind(),
			Symbol:   string(o.Symbol()),
			Position: pos,
		})
	}
	return s
}
