package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"skirmish/internal/config"
	"skirmish/internal/entity"
	"skirmish/internal/fault"
	"skirmish/internal/field"
	"skirmish/internal/match"
	"skirmish/internal/view"
)

// shell turns command lines into engine calls. Every failure is printed
// and the loop goes on.
type shell struct {
	session  *match.Session
	game     *config.Game
	cfgPath  string
	out      io.Writer
	selected int
	copy     func(string) error

	commands map[string]command
}

type command struct {
	usage string
	help  string
	run   func(args []string) error
}

func newShell(session *match.Session, game *config.Game, cfgPath string, out io.Writer) *shell {
	s := &shell{
		session: session,
		game:    game,
		cfgPath: cfgPath,
		out:     out,
		copy:    clipboard.WriteAll,
	}
	s.commands = map[string]command{
		"show":     {"show", "draw the field", s.show},
		"units":    {"units", "list every unit", s.units},
		"status":   {"status", "turn, bases and counts", s.status},
		"select":   {"select <id>", "pick a unit for the commands below", s.selectUnit},
		"moves":    {"moves [id]", "unit details and reachable cells", s.moves},
		"move":     {"move [id] <x> <y>", "move a unit, or use the object on that cell", s.move},
		"attack":   {"attack [id] <x> <y>", "attack the unit on a cell", s.attack},
		"siege":    {"siege [id] <x> <y>", "attack the base on a cell", s.siege},
		"heal":     {"heal [id] <x> <y>", "heal the unit on a cell (healers only)", s.heal},
		"ability":  {"ability [id]", "use the unit's special ability", s.ability},
		"interact": {"interact [id] <x> <y>", "use the object on a cell", s.interact},
		"create":   {"create <type>", "train a unit at the main base", s.create},
		"collect":  {"collect <n>", "add resources to the main base", s.collect},
		"turn":     {"turn", "end the turn", s.turn},
		"config":   {"config [set <key> <value> | save [file]]", "show or change the game config", s.config},
		"copy":     {"copy", "copy the rendered field to the clipboard", s.copyField},
	}
	return s
}

// exec runs one line and reports whether the loop should stop.
func (s *shell) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "quit", "exit":
		return true
	case "help", "?":
		s.help()
		return false
	}
	cmd, ok := s.commands[name]
	if !ok {
		fmt.Fprintf(s.out, "unknown command %q, try help\n", name)
		return false
	}
	if err := cmd.run(args); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
	return false
}

func (s *shell) help() {
	names := make([]string, 0, len(s.commands))
	for n := range s.commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		c := s.commands[n]
		fmt.Fprintf(s.out, "  %-42s %s\n", c.usage, c.help)
	}
	fmt.Fprintf(s.out, "  %-42s %s\n", "quit", "leave")
}

func (s *shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *shell) snapshot() (snap field.Snapshot, state string) {
	_ = s.session.View(func(m *match.Match) error {
		snap = m.Field.Snapshot()
		state = m.Turns.State().String()
		return nil
	})
	return snap, state
}

func (s *shell) show(args []string) error {
	snap, _ := s.snapshot()
	s.printf("%s", view.Render(snap))
	return nil
}

func (s *shell) units(args []string) error {
	snap, _ := s.snapshot()
	s.printf("%s", view.UnitList(snap))
	return nil
}

func (s *shell) status(args []string) error {
	snap, state := s.snapshot()
	s.printf("%s", view.Status(snap, state))
	return nil
}

func atoi(name, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number: %w", name, v, fault.ErrInvalidArgument)
	}
	return n, nil
}

// unitArgs splits "[id] rest..." where rest has want values. Without an
// explicit id the selected unit is used.
func (s *shell) unitArgs(args []string, want int) (int, []int, error) {
	id := s.selected
	switch len(args) {
	case want + 1:
		n, err := atoi("unit id", args[0])
		if err != nil {
			return 0, nil, err
		}
		id, args = n, args[1:]
	case want:
		if id == 0 {
			return 0, nil, fmt.Errorf("no unit selected: %w", fault.ErrInvalidArgument)
		}
	default:
		return 0, nil, fmt.Errorf("expected %d coordinates: %w", want, fault.ErrInvalidArgument)
	}
	vals := make([]int, len(args))
	for i, a := range args {
		n, err := atoi("coordinate", a)
		if err != nil {
			return 0, nil, err
		}
		vals[i] = n
	}
	return id, vals, nil
}

func (s *shell) selectUnit(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("select takes a unit id: %w", fault.ErrInvalidArgument)
	}
	id, err := atoi("unit id", args[0])
	if err != nil {
		return err
	}
	if err := s.session.View(func(m *match.Match) error {
		_, err := m.Unit(id)
		return err
	}); err != nil {
		return err
	}
	s.selected = id
	return s.moves(nil)
}

func (s *shell) moves(args []string) error {
	id, _, err := s.unitArgs(args, 0)
	if err != nil {
		return err
	}
	return s.session.View(func(m *match.Match) error {
		u, err := m.Unit(id)
		if err != nil {
			return err
		}
		pos, _ := u.Position()
		land, _ := m.Field.TerrainAt(pos.X, pos.Y)
		s.printf("%s", view.UnitCard(field.ViewUnit(u), land.String(), m.Field.Reachable(u)))
		return nil
	})
}

// onUnit runs fn against a unit under the session's write lock.
func (s *shell) onUnit(args []string, coords int, fn func(m *match.Match, u *entity.Unit, xy []int) error) error {
	id, xy, err := s.unitArgs(args, coords)
	if err != nil {
		return err
	}
	return s.session.Do(func(m *match.Match) error {
		u, err := m.Unit(id)
		if err != nil {
			return err
		}
		return fn(m, u, xy)
	})
}

func (s *shell) move(args []string) error {
	return s.onUnit(args, 2, func(m *match.Match, u *entity.Unit, xy []int) error {
		out, err := m.Field.MoveUnit(u, xy[0], xy[1])
		if err != nil {
			return err
		}
		if out.Interaction != nil {
			s.printf("%s\n", out.Interaction.Description)
			return nil
		}
		s.printf("%s moves (%d,%d) -> (%d,%d) onto %s (attack x%.1f)\n",
			u.Name(), out.From.X, out.From.Y, out.To.X, out.To.Y, out.Terrain, out.AttackBonus)
		return nil
	})
}

func (s *shell) attack(args []string) error {
	return s.onUnit(args, 2, func(m *match.Match, u *entity.Unit, xy []int) error {
		out, err := m.Field.AttackUnit(u, xy[0], xy[1])
		if err != nil {
			return err
		}
		s.printf("%s hits %s for %d (%d before armor)", out.Attacker, out.Target, out.Dealt, out.Damage)
		if out.Killed {
			s.printf(", %s is destroyed\n", out.Target)
			return nil
		}
		s.printf(", %s has %d HP\n", out.Target, out.TargetHealth)
		return nil
	})
}

func (s *shell) siege(args []string) error {
	return s.onUnit(args, 2, func(m *match.Match, u *entity.Unit, xy []int) error {
		out, err := m.Field.AttackBase(u, xy[0], xy[1])
		if err != nil {
			return err
		}
		s.printf("%s strikes %s for %d, %d HP left\n", out.Attacker, out.Base, out.Damage, out.BaseHealth)
		if out.Destroyed {
			s.printf("%s is destroyed\n", out.Base)
		}
		return nil
	})
}

func (s *shell) heal(args []string) error {
	return s.onUnit(args, 2, func(m *match.Match, u *entity.Unit, xy []int) error {
		restored, err := m.Field.HealUnit(u, xy[0], xy[1])
		if err != nil {
			return err
		}
		s.printf("%s restores %d HP to the unit on (%d,%d)\n", u.Name(), restored, xy[0], xy[1])
		return nil
	})
}

func (s *shell) ability(args []string) error {
	return s.onUnit(args, 0, func(m *match.Match, u *entity.Unit, _ []int) error {
		if m.Field.Sealed() {
			return fmt.Errorf("ability: %w", fault.ErrMatchEnded)
		}
		a, err := u.SpecialAbility()
		if err != nil {
			return err
		}
		s.printf("%s uses %s: %s", u.Name(), a.Name, a.Effect)
		if a.Value != 0 {
			s.printf(" (%g)", a.Value)
		}
		s.printf("\n")
		return nil
	})
}

func (s *shell) interact(args []string) error {
	return s.onUnit(args, 2, func(m *match.Match, u *entity.Unit, xy []int) error {
		ef, err := m.Field.InteractWithObject(u, xy[0], xy[1])
		if err != nil {
			return err
		}
		s.printf("%s\n", ef.Description)
		return nil
	})
}

func (s *shell) create(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("create takes a unit type: %w", fault.ErrInvalidArgument)
	}
	return s.session.Do(func(m *match.Match) error {
		u, err := m.Base.CreateUnit(args[0], m.Field)
		if err != nil {
			return err
		}
		pos, _ := u.Position()
		s.printf("%s [ID %d] trained at (%d,%d), %d resources left\n", u.Name(), u.ID(), pos.X, pos.Y, m.Base.Resources())
		return nil
	})
}

func (s *shell) collect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("collect takes an amount: %w", fault.ErrInvalidArgument)
	}
	n, err := atoi("amount", args[0])
	if err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("amount must be positive: %w", fault.ErrInvalidArgument)
	}
	return s.session.Do(func(m *match.Match) error {
		if m.Field.Sealed() {
			return fmt.Errorf("collect: %w", fault.ErrMatchEnded)
		}
		m.Base.CollectResources(n)
		s.printf("%s now has %d resources\n", m.Base.Name(), m.Base.Resources())
		return nil
	})
}

func (s *shell) turn(args []string) error {
	return s.session.Do(func(m *match.Match) error {
		rep, err := m.Turns.Advance()
		if err != nil {
			return err
		}
		s.printf("Turn %d\n", rep.Turn)
		for _, b := range rep.Bases {
			if !b.Alive {
				s.printf("  %s lies in ruins\n", b.Base)
				continue
			}
			s.printf("  %s collects %d, %d resources", b.Base, b.Income, b.Resources)
			if b.Pruned > 0 {
				s.printf(", %d fallen units struck off", b.Pruned)
			}
			s.printf("\n")
		}
		if rep.Ended {
			s.printf("No base stands. The match is over.\n")
		}
		return nil
	})
}

func (s *shell) config(args []string) error {
	if len(args) == 0 {
		b, err := json.MarshalIndent(s.game, "", "    ")
		if err != nil {
			return err
		}
		s.printf("%s\n", b)
		return nil
	}
	switch args[0] {
	case "set":
		if len(args) < 3 {
			return fmt.Errorf("config set <key> <value>: %w", fault.ErrInvalidArgument)
		}
		if err := s.game.Set(args[1], strings.Join(args[2:], " ")); err != nil {
			return err
		}
		s.printf("%s updated; map size and resources apply to the next match\n", args[1])
		return nil
	case "save":
		path := s.cfgPath
		if len(args) > 1 {
			path = args[1]
		}
		if err := s.game.Save(path); err != nil {
			return err
		}
		s.printf("config saved to %s\n", path)
		return nil
	default:
		return fmt.Errorf("unknown config action %q: %w", args[0], fault.ErrInvalidArgument)
	}
}

func (s *shell) copyField(args []string) error {
	snap, _ := s.snapshot()
	if err := s.copy(view.Render(snap)); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	s.printf("field copied to the clipboard\n")
	return nil
}
