package entity

import (
	"fmt"
	"strings"

	"skirmish/internal/fault"
)

// Kind is the concrete unit type.
type Kind uint8

const (
	Swordsman Kind = iota
	Spearman
	Crossbowman
	Ballista
	Knight
	Horseman
	Healer
	kindCount
)

var kindKeys = [kindCount]string{
	Swordsman:   "swordsman",
	Spearman:    "spearman",
	Crossbowman: "crossbowman",
	Ballista:    "ballista",
	Knight:      "knight",
	Horseman:    "horseman",
	Healer:      "healer",
}

// Key is the factory key of the kind.
func (k Kind) Key() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindKeys[k]
}

func (k Kind) String() string { return k.Key() }

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.Key()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Kinds lists every unit kind in factory order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind resolves a factory key, ignoring case and surrounding space.
func ParseKind(key string) (Kind, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for k, name := range kindKeys {
		if name == key {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown unit type %q: %w", key, fault.ErrInvalidArgument)
}

// Class groups kinds that share terrain and targeting rules.
type Class uint8

const (
	ClassInfantry Class = iota
	ClassArcher
	ClassCavalry
	ClassHealer
)

func (c Class) String() string {
	switch c {
	case ClassInfantry:
		return "infantry"
	case ClassArcher:
		return "archer"
	case ClassCavalry:
		return "cavalry"
	case ClassHealer:
		return "healer"
	default:
		return "unknown"
	}
}

// profile is the per-kind capability table.
type profile struct {
	class         Class
	selfPropelled bool
	symbol        rune
	ability       func(u *Unit) Ability
}

var profiles = [kindCount]profile{
	Swordsman:   {class: ClassInfantry, selfPropelled: true, symbol: 'I', ability: powerStrike},
	Spearman:    {class: ClassInfantry, selfPropelled: true, symbol: 'I', ability: braceSpears},
	Crossbowman: {class: ClassArcher, selfPropelled: true, symbol: 'A', ability: heavyBolt},
	Ballista:    {class: ClassArcher, selfPropelled: false, symbol: 'B', ability: volley},
	Knight:      {class: ClassCavalry, selfPropelled: true, symbol: 'C', ability: charge},
	Horseman:    {class: ClassCavalry, selfPropelled: true, symbol: 'C', ability: hitAndRun},
	Healer:      {class: ClassHealer, selfPropelled: true, symbol: 'H', ability: mend},
}

// Unit is a combat unit. Stats come from the factory; id and position are
// assigned when the field places it.
type Unit struct {
	id          int
	kind        Kind
	name        string
	health      int
	maxHealth   int
	armor       int
	attack      int
	moveRange   int
	attackRange int
	healPower   int

	pos    Position
	placed bool

	boltLoaded bool
	owner      *Base
}

func newUnit(kind Kind, s Stats) *Unit {
	return &Unit{
		kind:        kind,
		name:        s.Name,
		health:      s.Health,
		maxHealth:   s.Health,
		armor:       s.Armor,
		attack:      s.Attack,
		moveRange:   s.MoveRange,
		attackRange: s.AttackRange,
		healPower:   s.HealPower,
		boltLoaded:  true,
	}
}

func (u *Unit) ID() int          { return u.id }
func (u *Unit) Kind() Kind       { return u.kind }
func (u *Unit) Class() Class     { return profiles[u.kind].class }
func (u *Unit) Name() string     { return u.name }
func (u *Unit) Symbol() rune     { return profiles[u.kind].symbol }
func (u *Unit) Health() int      { return u.health }
func (u *Unit) MaxHealth() int   { return u.maxHealth }
func (u *Unit) Armor() int       { return u.armor }
func (u *Unit) Attack() int      { return u.attack }
func (u *Unit) MoveRange() int   { return u.moveRange }
func (u *Unit) AttackRange() int { return u.attackRange }
func (u *Unit) HealPower() int   { return u.healPower }
func (u *Unit) Owner() *Base     { return u.owner }
func (u *Unit) IsAlive() bool    { return u.health > 0 }

// Mounted and Ranged answer the terrain capability queries.
func (u *Unit) Mounted() bool { return u.Class() == ClassCavalry }
func (u *Unit) Ranged() bool  { return u.Class() == ClassArcher }

// SelfPropelled is false for siege engines.
func (u *Unit) SelfPropelled() bool { return profiles[u.kind].selfPropelled }

// Position returns where the unit stands; ok is false until placed.
func (u *Unit) Position() (Position, bool) { return u.pos, u.placed }

// Place assigns the field id and cell. Only the field calls it.
func (u *Unit) Place(id int, at Position) {
	u.id = id
	u.pos = at
	u.placed = true
}

// Withdraw marks the unit as no longer on the field. The id is kept.
func (u *Unit) Withdraw() { u.placed = false }

// Move validates the unit's own reach and relocates it. It knows nothing
// about terrain or occupancy; the field checks those first.
func (u *Unit) Move(to Position) error {
	if !u.placed {
		return fmt.Errorf("%s is not on the field: %w", u.name, fault.ErrNotFound)
	}
	if !u.IsAlive() {
		return fmt.Errorf("%s cannot move: %w", u.name, fault.ErrDeadEntity)
	}
	if !u.SelfPropelled() {
		return fmt.Errorf("%s is a siege engine: %w", u.name, fault.ErrImmobile)
	}
	if d := u.pos.Distance(to); d > u.moveRange {
		return fmt.Errorf("%s moves %d cells, distance is %d: %w", u.name, u.moveRange, d, fault.ErrTooFar)
	}
	u.pos = to
	return nil
}

// InRange reports whether target is within the unit's attack range.
func (u *Unit) InRange(target Position) bool {
	return u.placed && u.pos.Distance(target) <= u.attackRange
}

// TakeDamage applies amount minus armor and returns the damage dealt. Health
// may drop below zero.
func (u *Unit) TakeDamage(amount int) int {
	actual := amount - u.armor
	if actual < 0 {
		actual = 0
	}
	u.health -= actual
	return actual
}

// Heal restores up to amount health, capped at max, and returns what was
// actually restored.
func (u *Unit) Heal(amount int) int {
	if amount <= 0 || !u.IsAlive() {
		return 0
	}
	old := u.health
	u.health += amount
	if u.health > u.maxHealth {
		u.health = u.maxHealth
	}
	return u.health - old
}

// HealAlly lets a healer restore a living ally.
func (u *Unit) HealAlly(target *Unit) (int, error) {
	if u.Class() != ClassHealer {
		return 0, fmt.Errorf("%s cannot heal: %w", u.name, fault.ErrInvalidArgument)
	}
	if !u.IsAlive() {
		return 0, fmt.Errorf("%s cannot heal: %w", u.name, fault.ErrDeadEntity)
	}
	if !target.IsAlive() {
		return 0, fmt.Errorf("%s cannot be healed: %w", target.name, fault.ErrDeadEntity)
	}
	return target.Heal(u.healPower), nil
}

// SpecialAbility triggers the kind's special ability.
func (u *Unit) SpecialAbility() (Ability, error) {
	if !u.IsAlive() {
		return Ability{}, fmt.Errorf("%s cannot use abilities: %w", u.name, fault.ErrDeadEntity)
	}
	return profiles[u.kind].ability(u), nil
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s (HP: %d/%d, ATK: %d, ARM: %d)", u.name, u.health, u.maxHealth, u.attack, u.armor)
}
