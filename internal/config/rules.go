package config

import (
	"fmt"
	"sort"
	"strings"

	"skirmish/internal/fault"
)

// UnitKeys are the unit types a rules catalog may override.
var UnitKeys = []string{"swordsman", "spearman", "crossbowman", "ballista", "knight", "horseman", "healer"}

// ObjectKeys are the neutral object types a rules catalog may override.
var ObjectKeys = []string{"healing_fountain", "armor_smith", "trap", "treasure_chest"}

// TerrainKeys are the landscapes terrain_weights may name.
var TerrainKeys = []string{"plain", "forest", "mountain", "swamp"}

// UnitDef overrides the built-in stats of one unit type. Omitted fields
// keep the built-in value; an explicit 0 is applied.
type UnitDef struct {
	Name        string `yaml:"name"`
	Health      *int   `yaml:"health"`
	Armor       *int   `yaml:"armor"`
	Attack      *int   `yaml:"attack"`
	MoveRange   *int   `yaml:"move_range"`
	AttackRange *int   `yaml:"attack_range"`
	HealPower   *int   `yaml:"heal_power"`
	Cost        *int   `yaml:"cost"`
}

// ObjectDef overrides a neutral object's effect strength.
type ObjectDef struct {
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	Power    *int   `yaml:"power"`
	Duration *int   `yaml:"duration"`
}

// Int returns a pointer to n for building UnitDef and ObjectDef values.
func Int(n int) *int { return &n }

// Rules is the gameplay data catalog: unit tables, object tables and the
// numbers the turn loop runs on.
type Rules struct {
	MaxUnits       int                  `yaml:"max_units"`
	Income         int                  `yaml:"income"`
	BaseHealth     int                  `yaml:"base_health"`
	TerrainWeights map[string]float64   `yaml:"terrain_weights"`
	Units          map[string]UnitDef   `yaml:"units"`
	Objects        map[string]ObjectDef `yaml:"objects"`
}

func DefaultRules() Rules {
	return Rules{
		MaxUnits:   20,
		Income:     50,
		BaseHealth: 500,
	}
}

// LoadRules reads a YAML rules catalog and fills unset numbers with the
// defaults. A missing file returns the defaults and an error wrapping
// fs.ErrNotExist.
func LoadRules(path string) (*Rules, error) {
	var r Rules
	if err := loadYAML(path, &r); err != nil {
		d := DefaultRules()
		return &d, fmt.Errorf("load rules %s: %w", path, err)
	}
	r.applyDefaults()
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("load rules %s: %w", path, err)
	}
	return &r, nil
}

func (r *Rules) applyDefaults() {
	d := DefaultRules()
	if r.MaxUnits == 0 {
		r.MaxUnits = d.MaxUnits
	}
	if r.Income == 0 {
		r.Income = d.Income
	}
	if r.BaseHealth == 0 {
		r.BaseHealth = d.BaseHealth
	}
}

func (r Rules) Validate() error {
	if r.MaxUnits <= 0 {
		return fmt.Errorf("max_units must be positive, got %d: %w", r.MaxUnits, fault.ErrInvalidArgument)
	}
	if r.Income < 0 {
		return fmt.Errorf("income must not be negative, got %d: %w", r.Income, fault.ErrInvalidArgument)
	}
	if r.BaseHealth <= 0 {
		return fmt.Errorf("base_health must be positive, got %d: %w", r.BaseHealth, fault.ErrInvalidArgument)
	}
	for _, key := range sortedKeys(r.TerrainWeights) {
		if !known(TerrainKeys, key) {
			return fmt.Errorf("terrain_weights.%s: unknown terrain: %w", key, fault.ErrInvalidArgument)
		}
		if r.TerrainWeights[key] < 0 {
			return fmt.Errorf("terrain_weights.%s is negative: %w", key, fault.ErrInvalidArgument)
		}
	}
	for _, key := range sortedKeys(r.Units) {
		if !known(UnitKeys, key) {
			return fmt.Errorf("units.%s: unknown unit type: %w", key, fault.ErrInvalidArgument)
		}
		u := r.Units[key]
		if u.Health != nil && *u.Health <= 0 {
			return fmt.Errorf("units.%s health must be positive: %w", key, fault.ErrInvalidArgument)
		}
		if negative(u.Armor, u.Attack, u.MoveRange, u.AttackRange, u.HealPower, u.Cost) {
			return fmt.Errorf("units.%s has a negative stat: %w", key, fault.ErrInvalidArgument)
		}
	}
	for _, key := range sortedKeys(r.Objects) {
		if !known(ObjectKeys, key) {
			return fmt.Errorf("objects.%s: unknown object type: %w", key, fault.ErrInvalidArgument)
		}
		o := r.Objects[key]
		if negative(o.Power, o.Duration) {
			return fmt.Errorf("objects.%s has a negative value: %w", key, fault.ErrInvalidArgument)
		}
	}
	return nil
}

// known matches key against names the way the entity parsers do.
func known(names []string, key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, n := range names {
		if n == key {
			return true
		}
	}
	return false
}

func negative(vals ...*int) bool {
	for _, v := range vals {
		if v != nil && *v < 0 {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
