// Package turn drives the match state machine: Setup, InProgress, Ended.
package turn

import (
	"fmt"
	"log/slog"
	"strings"

	"skirmish/internal/field"
	"skirmish/internal/fault"
)

// DefaultIncome is what every standing base collects per turn.
const DefaultIncome = 50

type State uint8

const (
	Setup State = iota
	InProgress
	Ended
)

func (s State) String() string {
	switch s {
	case Setup:
		return "setup"
	case InProgress:
		return "in_progress"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	v, err := ParseState(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseState resolves a state name such as "in_progress".
func ParseState(name string) (State, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range []State{Setup, InProgress, Ended} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown match state %q: %w", name, fault.ErrInvalidArgument)
}

// BaseReport is one base's share of a turn.
type BaseReport struct {
	Base      string `json:"base"`
	Pruned    int    `json:"pruned"`
	Income    int    `json:"income"`
	Resources int    `json:"resources"`
	Alive     bool   `json:"alive"`
}

type Report struct {
	Turn  int          `json:"turn"`
	Bases []BaseReport `json:"bases"`
	Ended bool         `json:"ended"`
}

type Controller struct {
	field  *field.Field
	income int
	state  State
	turn   int
	log    *slog.Logger
}

// New wraps f. A non-positive income falls back to DefaultIncome.
func New(f *field.Field, income int, logger *slog.Logger) *Controller {
	if income <= 0 {
		income = DefaultIncome
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{field: f, income: income, log: logger}
}

func (c *Controller) State() State { return c.state }
func (c *Controller) Turn() int    { return c.turn }
func (c *Controller) Income() int  { return c.income }

// Start closes the setup phase. At least one base must be standing.
func (c *Controller) Start() error {
	if c.state != Setup {
		return fmt.Errorf("match is %s: %w", c.state, fault.ErrInvalidState)
	}
	if c.field.LivingBases() == 0 {
		return fmt.Errorf("no standing base: %w", fault.ErrInvalidState)
	}
	c.state = InProgress
	c.field.SetTurn(c.turn)
	c.log.Info("match started", "bases", len(c.field.Bases()), "units", len(c.field.Units()))
	c.field.Emit("MatchStarted", map[string]any{"bases": len(c.field.Bases()), "units": len(c.field.Units())})
	return nil
}

// Advance runs one turn: upkeep for every base, then income for those
// still standing. When none stands the match ends and the field is sealed.
func (c *Controller) Advance() (Report, error) {
	switch c.state {
	case Setup:
		return Report{}, fmt.Errorf("match has not started: %w", fault.ErrInvalidState)
	case Ended:
		return Report{}, fmt.Errorf("turn %d was the last: %w", c.turn, fault.ErrMatchEnded)
	}

	c.turn++
	c.field.SetTurn(c.turn)
	rep := Report{Turn: c.turn}
	for _, b := range c.field.Bases() {
		br := BaseReport{Base: b.Name(), Pruned: b.UpdateUnits()}
		if b.IsAlive() {
			b.CollectResources(c.income)
			br.Income = c.income
		}
		br.Resources = b.Resources()
		br.Alive = b.IsAlive()
		rep.Bases = append(rep.Bases, br)
	}
	c.log.Debug("turn advanced", "turn", c.turn, "bases", len(rep.Bases))
	c.field.Emit("TurnAdvanced", map[string]any{"turn": c.turn, "income": c.income})

	if c.field.LivingBases() == 0 {
		c.state = Ended
		rep.Ended = true
		c.field.Seal()
		c.log.Info("match ended", "turn", c.turn)
		c.field.Emit("MatchEnded", map[string]any{"turn": c.turn})
	}
	return rep, nil
}
