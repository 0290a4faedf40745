package entity

import (
	"strings"

	"skirmish/internal/config"
)

// Stats are the fixed numbers of one unit kind.
type Stats struct {
	Name        string
	Health      int
	Armor       int
	Attack      int
	MoveRange   int
	AttackRange int
	HealPower   int
	Cost        int
}

var builtinStats = [kindCount]Stats{
	Swordsman:   {Name: "Swordsman", Health: 120, Armor: 15, Attack: 25, MoveRange: 1, AttackRange: 1, Cost: 100},
	Spearman:    {Name: "Spearman", Health: 100, Armor: 20, Attack: 20, MoveRange: 1, AttackRange: 1, Cost: 80},
	Crossbowman: {Name: "Crossbowman", Health: 80, Armor: 5, Attack: 35, MoveRange: 1, AttackRange: 4, Cost: 120},
	Ballista:    {Name: "Ballista", Health: 120, Armor: 15, Attack: 50, MoveRange: 1, AttackRange: 6, Cost: 150},
	Knight:      {Name: "Knight", Health: 150, Armor: 25, Attack: 30, MoveRange: 2, AttackRange: 1, Cost: 200},
	Horseman:    {Name: "Horseman", Health: 100, Armor: 10, Attack: 20, MoveRange: 3, AttackRange: 1, Cost: 180},
	Healer:      {Name: "Healer", Health: 60, Armor: 2, Attack: 5, MoveRange: 1, AttackRange: 1, HealPower: 25, Cost: 90},
}

var builtinObjects = [objectKindCount]ObjectStats{
	HealingFountain: {Name: "Healing Fountain", Symbol: 'F', Power: 50},
	ArmorSmith:      {Name: "Armor Smith", Symbol: 'K', Power: 10, Duration: 3},
	Trap:            {Name: "Trap", Symbol: 'T', Power: 30},
	TreasureChest:   {Name: "Treasure Chest", Symbol: 'S', Power: 15, Duration: 2},
}

// Factory builds units and neutral objects from the built-in tables,
// optionally overridden by a rules catalog.
type Factory struct {
	units   [kindCount]Stats
	objects [objectKindCount]ObjectStats
}

// NewFactory applies rules on top of the built-in tables. A nil rules
// catalog yields the built-ins. Keys are checked by config.Rules.Validate;
// any that slip through unvalidated are ignored here.
func NewFactory(rules *config.Rules) *Factory {
	f := &Factory{units: builtinStats, objects: builtinObjects}
	if rules == nil {
		return f
	}
	for key, def := range rules.Units {
		kind, err := ParseKind(key)
		if err != nil {
			continue
		}
		f.units[kind] = mergeStats(f.units[kind], def)
	}
	for key, def := range rules.Objects {
		kind, err := ParseObjectKind(key)
		if err != nil {
			continue
		}
		f.objects[kind] = mergeObject(f.objects[kind], def)
	}
	return f
}

func mergeStats(s Stats, def config.UnitDef) Stats {
	if def.Name != "" {
		s.Name = def.Name
	}
	if def.Health != nil {
		s.Health = *def.Health
	}
	if def.Armor != nil {
		s.Armor = *def.Armor
	}
	if def.Attack != nil {
		s.Attack = *def.Attack
	}
	if def.MoveRange != nil {
		s.MoveRange = *def.MoveRange
	}
	if def.AttackRange != nil {
		s.AttackRange = *def.AttackRange
	}
	if def.HealPower != nil {
		s.HealPower = *def.HealPower
	}
	if def.Cost != nil {
		s.Cost = *def.Cost
	}
	return s
}

func mergeObject(s ObjectStats, def config.ObjectDef) ObjectStats {
	if def.Name != "" {
		s.Name = def.Name
	}
	if r := []rune(strings.TrimSpace(def.Symbol)); len(r) > 0 {
		s.Symbol = r[0]
	}
	if def.Power != nil {
		s.Power = *def.Power
	}
	if def.Duration != nil {
		s.Duration = *def.Duration
	}
	return s
}

// Create builds a fresh, unplaced unit for a factory key.
func (f *Factory) Create(key string) (*Unit, error) {
	kind, err := ParseKind(key)
	if err != nil {
		return nil, err
	}
	return f.CreateKind(kind), nil
}

func (f *Factory) CreateKind(kind Kind) *Unit {
	return newUnit(kind, f.units[kind])
}

// Stats returns the table entry for kind.
func (f *Factory) Stats(kind Kind) Stats { return f.units[kind] }

// Cost is the resource price of kind.
func (f *Factory) Cost(kind Kind) int { return f.units[kind].Cost }

// Object builds an unplaced neutral object.
func (f *Factory) Object(kind ObjectKind) *Object {
	return newObject(kind, f.objects[kind])
}
