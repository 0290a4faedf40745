package entity

import (
	"errors"
	"fmt"

	"skirmish/internal/fault"
)

// Placer puts a unit on a cell. The field engine implements it.
type Placer interface {
	AddUnit(u *Unit, x, y int) error
}

// spawnOffsets is the order in which cells around a base are tried.
var spawnOffsets = []Position{
	{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1},
	{X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1},
}

// Base is a player-owned structure that trains units. Its unit list tracks
// membership only; units live and die on the field.
type Base struct {
	name      string
	health    int
	maxHealth int
	resources int

	pos    Position
	placed bool

	units   []*Unit
	factory *Factory
}

func NewBase(name string, health, resources int, factory *Factory) *Base {
	if factory == nil {
		factory = NewFactory(nil)
	}
	return &Base{
		name:      name,
		health:    health,
		maxHealth: health,
		resources: resources,
		factory:   factory,
	}
}

func (b *Base) Name() string               { return b.name }
func (b *Base) Symbol() rune               { return '#' }
func (b *Base) Health() int                { return b.health }
func (b *Base) MaxHealth() int             { return b.maxHealth }
func (b *Base) Resources() int             { return b.resources }
func (b *Base) IsAlive() bool              { return b.health > 0 }
func (b *Base) Position() (Position, bool) { return b.pos, b.placed }
func (b *Base) SetPosition(at Position)    { b.pos, b.placed = at, true }

// Cost is the price of kind at this base.
func (b *Base) Cost(kind Kind) int { return b.factory.Cost(kind) }

// Units returns the current members.
func (b *Base) Units() []*Unit {
	out := make([]*Unit, len(b.units))
	copy(out, b.units)
	return out
}

func (b *Base) Owns(u *Unit) bool {
	for _, m := range b.units {
		if m == u {
			return true
		}
	}
	return false
}

// Release drops u from the membership list.
func (b *Base) Release(u *Unit) bool {
	for i, m := range b.units {
		if m == u {
			b.units = append(b.units[:i], b.units[i+1:]...)
			if u.owner == b {
				u.owner = nil
			}
			return true
		}
	}
	return false
}

// CollectResources adds income to the stockpile.
func (b *Base) CollectResources(amount int) {
	b.resources += amount
}

// TakeDamage lowers base health; bases have no armor.
func (b *Base) TakeDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	b.health -= amount
	return amount
}

// UpdateUnits is the per-turn upkeep hook. It forgets members that died
// outside of combat removal and returns how many were dropped.
func (b *Base) UpdateUnits() int {
	kept := b.units[:0]
	dropped := 0
	for _, u := range b.units {
		if u.IsAlive() {
			kept = append(kept, u)
			continue
		}
		dropped++
	}
	for i := len(kept); i < len(b.units); i++ {
		b.units[i] = nil
	}
	b.units = kept
	return dropped
}

// CreateUnit pays for a unit of the given type and asks p to place it on
// the first free cell around the base.
func (b *Base) CreateUnit(key string, p Placer) (*Unit, error) {
	if !b.IsAlive() {
		return nil, fmt.Errorf("base %s is destroyed: %w", b.name, fault.ErrDeadEntity)
	}
	if !b.placed {
		return nil, fmt.Errorf("base %s is not on the field: %w", b.name, fault.ErrNotFound)
	}
	kind, err := ParseKind(key)
	if err != nil {
		return nil, err
	}
	cost := b.factory.Cost(kind)
	if b.resources < cost {
		return nil, fmt.Errorf("base %s has %d resources, %s costs %d: %w",
			b.name, b.resources, kind, cost, fault.ErrInsufficientResources)
	}
	u := b.factory.CreateKind(kind)

	var lastErr error
	for _, off := range spawnOffsets {
		err := p.AddUnit(u, b.pos.X+off.X, b.pos.Y+off.Y)
		if err == nil {
			b.resources -= cost
			b.units = append(b.units, u)
			u.owner = b
			return u, nil
		}
		if errors.Is(err, fault.ErrCapacityExceeded) || errors.Is(err, fault.ErrMatchEnded) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no free cell around base %s: %w", b.name, lastErr)
}

func (b *Base) String() string {
	return fmt.Sprintf("%s (HP: %d/%d, resources: %d, units: %d)", b.name, b.health, b.maxHealth, b.resources, len(b.units))
}
