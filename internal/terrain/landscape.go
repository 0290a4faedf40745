package terrain

import (
	"fmt"
	"strings"

	"skirmish/internal/fault"
)

// Kind classifies a single grid cell.
type Kind uint8

const (
	Plain    Kind = iota // open ground
	Forest               // cover for archers, hard for horses
	Mountain             // high ground, no cavalry
	Swamp                // slow for everyone
	kindCount
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Forest:
		return "forest"
	case Mountain:
		return "mountain"
	case Swamp:
		return "swamp"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText accepts the names MarshalText produces.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Traveler is what a landscape needs to know about a unit to rule on it.
type Traveler interface {
	Mounted() bool
	Ranged() bool
	MoveRange() int
}

// Landscape is the immutable rule set for one terrain kind. One value per
// kind is shared by every cell of that kind.
type Landscape struct {
	kind     Kind
	symbol   rune
	moveCost int
	modifier float64 // base attack modifier for units without a special case
}

var landscapes = [kindCount]*Landscape{
	Plain:    {kind: Plain, symbol: ' ', moveCost: 1, modifier: 1.0},
	Forest:   {kind: Forest, symbol: '♣', moveCost: 2, modifier: 1.0},
	Mountain: {kind: Mountain, symbol: '▲', moveCost: 3, modifier: 1.2},
	Swamp:    {kind: Swamp, symbol: '~', moveCost: 4, modifier: 0.8},
}

// Of returns the shared landscape for k, or nil for an unknown kind.
func Of(k Kind) *Landscape {
	if k >= kindCount {
		return nil
	}
	return landscapes[k]
}

// Kinds lists every terrain kind in declaration order.
func Kinds() []Kind {
	return []Kind{Plain, Forest, Mountain, Swamp}
}

// ParseKind resolves a terrain name such as "forest".
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown terrain %q: %w", name, fault.ErrInvalidArgument)
}

func (l *Landscape) Kind() Kind     { return l.kind }
func (l *Landscape) Symbol() rune   { return l.symbol }
func (l *Landscape) MoveCost() int  { return l.moveCost }
func (l *Landscape) String() string { return l.kind.String() }

// CanPass reports whether t may enter or stand on this landscape.
func (l *Landscape) CanPass(t Traveler) bool {
	switch l.kind {
	case Forest:
		if t.Mounted() {
			return t.MoveRange() >= 2
		}
		return true
	case Mountain:
		return !t.Mounted()
	default:
		return true
	}
}

// AttackBonus is the damage multiplier for an attacker standing here.
func (l *Landscape) AttackBonus(t Traveler) float64 {
	switch l.kind {
	case Forest:
		if t.Ranged() {
			return 1.3
		}
		return 1.0
	case Mountain:
		if t.Ranged() {
			return 1.5
		}
		return 1.2
	default:
		return l.modifier
	}
}
