package entity

import (
	"fmt"
	"strings"

	"skirmish/internal/fault"
)

type ObjectKind uint8

const (
	HealingFountain ObjectKind = iota
	ArmorSmith
	Trap
	TreasureChest
	objectKindCount
)

var objectKeys = [objectKindCount]string{
	HealingFountain: "healing_fountain",
	ArmorSmith:      "armor_smith",
	Trap:            "trap",
	TreasureChest:   "treasure_chest",
}

func (k ObjectKind) String() string {
	if k >= objectKindCount {
		return "unknown"
	}
	return objectKeys[k]
}

func (k ObjectKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *ObjectKind) UnmarshalText(b []byte) error {
	v, err := ParseObjectKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ObjectKinds lists every neutral object kind.
func ObjectKinds() []ObjectKind {
	return []ObjectKind{HealingFountain, ArmorSmith, Trap, TreasureChest}
}

func ParseObjectKind(key string) (ObjectKind, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for k, name := range objectKeys {
		if name == key {
			return ObjectKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown object type %q: %w", key, fault.ErrInvalidArgument)
}

type ObjectStats struct {
	Name     string
	Symbol   rune
	Power    int
	Duration int // advertised buff length in turns; buffs are permanent
}

// Object is a neutral, single-use field object.
type Object struct {
	kind     ObjectKind
	name     string
	symbol   rune
	power    int
	duration int

	pos      Position
	placed   bool
	revealed bool
}

// Effect describes what an interaction did to a unit.
type Effect struct {
	Object      string     `json:"object"`
	Kind        ObjectKind `json:"kind"`
	Unit        string     `json:"unit"`
	Amount      int        `json:"amount"`
	Description string     `json:"description"`
}

func newObject(kind ObjectKind, s ObjectStats) *Object {
	return &Object{kind: kind, name: s.Name, symbol: s.Symbol, power: s.Power, duration: s.Duration}
}

func (o *Object) Kind() ObjectKind           { return o.kind }
func (o *Object) Name() string               { return o.name }
func (o *Object) Symbol() rune               { return o.symbol }
func (o *Object) Power() int                 { return o.power }
func (o *Object) Duration() int              { return o.duration }
func (o *Object) Revealed() bool             { return o.revealed }
func (o *Object) Position() (Position, bool) { return o.pos, o.placed }
func (o *Object) SetPosition(at Position)    { o.pos, o.placed = at, true }
func (o *Object) clearPosition()             { o.placed = false }
func (o *Object) String() string             { return fmt.Sprintf("%s (%c)", o.name, o.symbol) }

// Interact applies the object's effect to u. It fails only for dead units;
// removing the used object is the field's job.
func (o *Object) Interact(u *Unit) (Effect, bool) {
	if !u.IsAlive() {
		return Effect{}, false
	}
	ef := Effect{Object: o.name, Kind: o.kind, Unit: u.name}
	switch o.kind {
	case HealingFountain:
		ef.Amount = u.Heal(o.power)
		ef.Description = fmt.Sprintf("%s drinks from %s and restores %d HP", u.name, o.name, ef.Amount)
	case ArmorSmith:
		u.armor += o.power
		ef.Amount = o.power
		ef.Description = fmt.Sprintf("%s visits %s: armor +%d", u.name, o.name, o.power)
	case Trap:
		ef.Amount = u.TakeDamage(o.power)
		o.revealed = true
		ef.Description = fmt.Sprintf("%s springs %s and takes %d damage", u.name, o.name, ef.Amount)
	case TreasureChest:
		u.attack += o.power
		ef.Amount = o.power
		ef.Description = fmt.Sprintf("%s opens %s: attack +%d", u.name, o.name, o.power)
	}
	return ef, true
}

// Consume detaches the object from the field after a successful interaction.
func (o *Object) Consume() { o.clearPosition() }
