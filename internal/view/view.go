// Package view renders field snapshots as plain text.
package view

import (
	"fmt"
	"strings"

	"skirmish/internal/entity"
	"skirmish/internal/field"
	"skirmish/internal/terrain"
)

const legend = "I infantry  A archer  B ballista  C cavalry  H healer  # base\n" +
	"F fountain  K armor smith  T trap  S chest\n" +
	"♣ forest  ▲ mountain  ~ swamp  (blank) plain\n"

// Render draws the grid with column and row numbers followed by a legend.
// Occupied cells are bracketed; empty cells show their terrain.
func Render(s field.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Field %dx%d  turn %d\n", s.Width, s.Height, s.Turn)
	fmt.Fprintf(&b, "Units: %d/%d, bases: %d, objects: %d\n", len(s.Units), s.MaxUnits, len(s.Bases), len(s.Objects))

	marks := make(map[entity.Position]string, len(s.Units)+len(s.Bases)+len(s.Objects))
	for _, u := range s.Units {
		marks[u.Position] = u.Symbol
	}
	for _, o := range s.Objects {
		marks[o.Position] = o.Symbol
	}
	for _, base := range s.Bases {
		marks[base.Position] = "#"
	}

	b.WriteString("   ")
	for x := 0; x < s.Width; x++ {
		fmt.Fprintf(&b, "%2d ", x)
	}
	b.WriteString("\n")
	for y, row := range s.Terrain {
		fmt.Fprintf(&b, "%2d ", y)
		for x, k := range row {
			if m, ok := marks[entity.Position{X: x, Y: y}]; ok {
				fmt.Fprintf(&b, "[%s]", m)
				continue
			}
			fmt.Fprintf(&b, " %c ", symbol(k))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(legend)
	return b.String()
}

func symbol(k terrain.Kind) rune {
	if l := terrain.Of(k); l != nil {
		return l.Symbol()
	}
	return '?'
}

// UnitList prints every registered unit, one entry per unit.
func UnitList(s field.Snapshot) string {
	if len(s.Units) == 0 {
		return "No units on the field.\n"
	}
	var b strings.Builder
	b.WriteString("Units on the field:\n")
	for _, u := range s.Units {
		status := "alive"
		if !u.Alive {
			status = "dead"
		}
		fmt.Fprintf(&b, "[%d] %s (%d, %d) %s\n", u.ID, u.Name, u.Position.X, u.Position.Y, status)
		fmt.Fprintf(&b, "    HP %d/%d  ATK %d  ARM %d\n", u.Health, u.MaxHealth, u.Attack, u.Armor)
	}
	return b.String()
}

// UnitCard describes one unit in detail, with the cells it can move to.
func UnitCard(u field.UnitView, land string, reachable []entity.Position) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [ID %d]\n", u.Name, u.ID)
	fmt.Fprintf(&b, "  position: (%d, %d) %s\n", u.Position.X, u.Position.Y, land)
	fmt.Fprintf(&b, "  health:   %d/%d\n", u.Health, u.MaxHealth)
	fmt.Fprintf(&b, "  armor:    %d\n", u.Armor)
	fmt.Fprintf(&b, "  attack:   %d (range %d)\n", u.Attack, u.AttackRange)
	fmt.Fprintf(&b, "  move:     %d\n", u.MoveRange)
	if u.Base != "" {
		fmt.Fprintf(&b, "  base:     %s\n", u.Base)
	}
	if len(reachable) == 0 {
		b.WriteString("  no cells to move to\n")
		return b.String()
	}
	b.WriteString("  can move to:")
	for _, p := range reachable {
		fmt.Fprintf(&b, " (%d,%d)", p.X, p.Y)
	}
	b.WriteString("\n")
	return b.String()
}

// Status summarizes the match: turn, counts and every base.
func Status(s field.Snapshot, state string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn %d (%s)\n", s.Turn, state)
	fmt.Fprintf(&b, "Units: %d/%d  bases: %d  objects: %d\n", len(s.Units), s.MaxUnits, len(s.Bases), len(s.Objects))
	for _, base := range s.Bases {
		status := "standing"
		if !base.Alive {
			status = "destroyed"
		}
		fmt.Fprintf(&b, "  %s: %d/%d HP, %d resources, %d units (%s)\n",
			base.Name, base.Health, base.MaxHealth, base.Resources, base.Units, status)
	}
	return b.String()
}
