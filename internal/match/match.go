// Package match assembles a playable field from configuration and guards
// it for use from more than one goroutine.
package match

import (
	"fmt"
	"log/slog"
	"math/rand"

	"skirmish/internal/config"
	"skirmish/internal/entity"
	"skirmish/internal/fault"
	"skirmish/internal/field"
	"skirmish/internal/terrain"
	"skirmish/internal/turn"
	"skirmish/internal/util"
)

const (
	DefaultBaseName = "Main Base"
	objectAttempts  = 20
)

// StarterUnits are trained by the main base before the first turn.
var StarterUnits = []string{"swordsman", "crossbowman", "healer"}

type Options struct {
	Seed     int64
	BaseName string
	Logger   *slog.Logger
	Events   func(field.Event)
}

// Match is one game: the field, its turn controller and the player's base.
type Match struct {
	Game    config.Game
	Rules   config.Rules
	Field   *field.Field
	Turns   *turn.Controller
	Base    *entity.Base
	Factory *entity.Factory

	rng *rand.Rand
	log *slog.Logger
}

// New validates cfg and builds a started match. A nil rules catalog uses
// config.DefaultRules.
func New(cfg config.Game, rules *config.Rules, opts Options) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	r := config.DefaultRules()
	if rules != nil {
		r = *rules
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	weights, err := terrain.WeightsFrom(r.TerrainWeights)
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}

	rng := util.New(opts.Seed)
	w, h := cfg.MapSize.Width, cfg.MapSize.Height
	f, err := field.New(w, h, r.MaxUnits,
		field.WithRand(rng),
		field.WithWeights(weights),
		field.WithEvents(opts.Events),
		field.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	m := &Match{
		Game:    cfg,
		Rules:   r,
		Field:   f,
		Turns:   turn.New(f, r.Income, log),
		Factory: entity.NewFactory(&r),
		rng:     rng,
		log:     log,
	}
	name := opts.BaseName
	if name == "" {
		name = DefaultBaseName
	}
	m.Base = entity.NewBase(name, r.BaseHealth, cfg.StartingResources, m.Factory)
	if err := f.AddBase(m.Base, w/4, h/4); err != nil {
		return nil, fmt.Errorf("place base: %w", err)
	}
	for _, key := range StarterUnits {
		u, err := m.Base.CreateUnit(key, f)
		if err != nil {
			log.Warn("starter unit not trained", "type", key, "err", err)
			continue
		}
		log.Debug("starter unit trained", "unit", u.Name(), "id", u.ID())
	}
	placed := m.placeObjects()
	log.Info("match ready", "width", w, "height", h, "units", len(f.Units()), "objects", placed, "seed", opts.Seed)

	if err := m.Turns.Start(); err != nil {
		return nil, err
	}
	return m, nil
}

// placeObjects drops one of each neutral object on random empty cells.
// All objects share one budget of attempts, so a crowded field may end
// up with fewer of them.
func (m *Match) placeObjects() int {
	kinds := entity.ObjectKinds()
	placed := 0
	for attempt := 0; attempt < objectAttempts && placed < len(kinds); attempt++ {
		x := m.rng.Intn(m.Field.Width())
		y := m.rng.Intn(m.Field.Height())
		if !m.Field.IsCellEmpty(x, y) {
			continue
		}
		if err := m.Field.AddNeutralObject(m.Factory.Object(kinds[placed]), x, y); err != nil {
			m.log.Warn("object not placed", "kind", kinds[placed].String(), "err", err)
			continue
		}
		placed++
	}
	return placed
}

// Unit looks up a unit by id.
func (m *Match) Unit(id int) (*entity.Unit, error) {
	u, ok := m.Field.UnitByID(id)
	if !ok {
		return nil, fmt.Errorf("unit %d: %w", id, fault.ErrNotFound)
	}
	return u, nil
}
