// Package field owns the battle grid: terrain, occupancy and every rule
// that changes who stands where.
package field

import (
	"fmt"
	"log/slog"
	"math/rand"

	"skirmish/internal/entity"
	"skirmish/internal/fault"
	"skirmish/internal/terrain"
	"skirmish/internal/util"
)

// Field is the grid plus terrain plus every placed entity. Cells are an
// arena indexed y*width+x; each holds at most one occupant, and every
// occupant is also present in exactly one registry.
type Field struct {
	width    int
	height   int
	maxUnits int

	land  *terrain.Map
	cells []entity.Occupant

	units   []*entity.Unit
	bases   []*entity.Base
	objects []*entity.Object

	nextID int
	turn   int
	sealed bool

	emit func(Event)
	log  *slog.Logger
}

type options struct {
	land    *terrain.Map
	rng     *rand.Rand
	weights []terrain.Weight
	emit    func(Event)
	logger  *slog.Logger
}

// Option customizes a Field at construction.
type Option func(*options)

// WithTerrain uses a prebuilt terrain map instead of generating one.
func WithTerrain(m *terrain.Map) Option {
	return func(o *options) { o.land = m }
}

// WithRand sets the source used for terrain generation.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithWeights overrides the terrain distribution.
func WithWeights(w []terrain.Weight) Option {
	return func(o *options) { o.weights = w }
}

// WithEvents registers the sink every state change is reported to.
func WithEvents(emit func(Event)) Option {
	return func(o *options) { o.emit = emit }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New builds an empty field. Terrain is generated once here and never
// changes afterwards.
func New(width, height, maxUnits int, opts ...Option) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("field size %dx%d: %w", width, height, fault.ErrInvalidArgument)
	}
	if maxUnits <= 0 {
		return nil, fmt.Errorf("max units %d: %w", maxUnits, fault.ErrInvalidArgument)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.emit == nil {
		o.emit = func(Event) {}
	}

	land := o.land
	if land == nil {
		rng := o.rng
		if rng == nil {
			rng = util.New(util.Seed(0))
		}
		weights := o.weights
		if weights == nil {
			weights = terrain.DefaultWeights
		}
		var err error
		land, err = terrain.Generate(width, height, rng, weights)
		if err != nil {
			return nil, err
		}
	} else if land.Width() != width || land.Height() != height {
		return nil, fmt.Errorf("terrain is %dx%d, field is %dx%d: %w",
			land.Width(), land.Height(), width, height, fault.ErrInvalidArgument)
	}

	return &Field{
		width:    width,
		height:   height,
		maxUnits: maxUnits,
		land:     land,
		cells:    make([]entity.Occupant, width*height),
		nextID:   1,
		emit:     o.emit,
		log:      o.logger,
	}, nil
}

func (f *Field) Width() int    { return f.width }
func (f *Field) Height() int   { return f.height }
func (f *Field) MaxUnits() int { return f.maxUnits }
func (f *Field) Turn() int     { return f.turn }
func (f *Field) Sealed() bool  { return f.sealed }

// Terrain exposes the immutable terrain map.
func (f *Field) Terrain() *terrain.Map { return f.land }

// SetTurn records the current turn number used to stamp events.
func (f *Field) SetTurn(n int) { f.turn = n }

// Seal freezes the field. Every later mutation fails with ErrMatchEnded.
func (f *Field) Seal() {
	if f.sealed {
		return
	}
	f.sealed = true
	f.Emit("FieldSealed", nil)
	f.log.Info("field sealed", "turn", f.turn)
}

func (f *Field) index(x, y int) int { return y*f.width + x }

func (f *Field) checkOpen() error {
	if f.sealed {
		return fmt.Errorf("field is sealed: %w", fault.ErrMatchEnded)
	}
	return nil
}

func (f *Field) checkBounds(x, y int) error {
	if !f.InBounds(x, y) {
		return fmt.Errorf("(%d,%d) outside %dx%d: %w", x, y, f.width, f.height, fault.ErrOutOfBounds)
	}
	return nil
}

func (f *Field) checkEmpty(x, y int) error {
	if occ := f.cells[f.index(x, y)]; occ != nil {
		return fmt.Errorf("(%d,%d) holds %s: %w", x, y, occ.Name(), fault.ErrOccupied)
	}
	return nil
}

func (f *Field) tracked(u *entity.Unit) bool {
	for _, m := range f.units {
		if m == u {
			return true
		}
	}
	return false
}

func (f *Field) trackedOrErr(u *entity.Unit) error {
	if u == nil || !f.tracked(u) {
		return fmt.Errorf("unit is not on this field: %w", fault.ErrNotFound)
	}
	return nil
}
