package terrain

import (
	"fmt"
	"math/rand"

	"skirmish/internal/fault"
)

// Weight is the relative chance of a kind during generation.
type Weight struct {
	Kind   Kind
	Weight float64
}

// DefaultWeights: plain 60%, forest 20%, mountain 15%, swamp 5%.
var DefaultWeights = []Weight{
	{Kind: Plain, Weight: 0.60},
	{Kind: Forest, Weight: 0.20},
	{Kind: Mountain, Weight: 0.15},
	{Kind: Swamp, Weight: 0.05},
}

// WeightsFrom turns a name-keyed table into generation weights, in kind
// order. An empty table yields DefaultWeights.
func WeightsFrom(table map[string]float64) ([]Weight, error) {
	if len(table) == 0 {
		return DefaultWeights, nil
	}
	byKind := make(map[Kind]float64, len(table))
	for name, w := range table {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		byKind[k] = w
	}
	out := make([]Weight, 0, len(byKind))
	for _, k := range Kinds() {
		if w, ok := byKind[k]; ok {
			out = append(out, Weight{Kind: k, Weight: w})
		}
	}
	if _, err := validateWeights(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Map is the terrain layer of a field. It never changes after creation.
type Map struct {
	width  int
	height int
	cells  []Kind // row-major: cells[y*width+x]
}

// NewMap builds a map from explicit row-major kinds.
func NewMap(width, height int, kinds []Kind) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("terrain map %dx%d: %w", width, height, fault.ErrInvalidArgument)
	}
	if len(kinds) != width*height {
		return nil, fmt.Errorf("terrain map %dx%d needs %d cells, got %d: %w",
			width, height, width*height, len(kinds), fault.ErrInvalidArgument)
	}
	for i, k := range kinds {
		if Of(k) == nil {
			return nil, fmt.Errorf("terrain cell %d has kind %d: %w", i, k, fault.ErrInvalidArgument)
		}
	}
	cells := make([]Kind, len(kinds))
	copy(cells, kinds)
	return &Map{width: width, height: height, cells: cells}, nil
}

// Uniform returns a map where every cell is k.
func Uniform(width, height int, k Kind) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("terrain map %dx%d: %w", width, height, fault.ErrInvalidArgument)
	}
	kinds := make([]Kind, width*height)
	for i := range kinds {
		kinds[i] = k
	}
	return NewMap(width, height, kinds)
}

// Generate rolls every cell independently against weights.
// A nil or empty weights slice uses DefaultWeights.
func Generate(width, height int, rng *rand.Rand, weights []Weight) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("terrain map %dx%d: %w", width, height, fault.ErrInvalidArgument)
	}
	if len(weights) == 0 {
		weights = DefaultWeights
	}
	total, err := validateWeights(weights)
	if err != nil {
		return nil, err
	}
	cells := make([]Kind, width*height)
	for i := range cells {
		cells[i] = pick(weights, total, rng.Float64())
	}
	return &Map{width: width, height: height, cells: cells}, nil
}

func validateWeights(weights []Weight) (float64, error) {
	total := 0.0
	for _, w := range weights {
		if Of(w.Kind) == nil {
			return 0, fmt.Errorf("terrain weight for kind %d: %w", w.Kind, fault.ErrInvalidArgument)
		}
		if w.Weight < 0 {
			return 0, fmt.Errorf("terrain weight %s=%v: %w", w.Kind, w.Weight, fault.ErrInvalidArgument)
		}
		total += w.Weight
	}
	if total <= 0 {
		return 0, fmt.Errorf("terrain weights sum to %v: %w", total, fault.ErrInvalidArgument)
	}
	return total, nil
}

func pick(weights []Weight, total, roll float64) Kind {
	acc := 0.0
	target := roll * total
	for _, w := range weights {
		acc += w.Weight
		if target < acc {
			return w.Kind
		}
	}
	// roll == 1.0 or float drift: last non-zero bucket
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i].Weight > 0 {
			return weights[i].Kind
		}
	}
	return Plain
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

func (m *Map) inBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Kind returns the terrain kind at (x, y).
func (m *Map) Kind(x, y int) (Kind, bool) {
	if !m.inBounds(x, y) {
		return Plain, false
	}
	return m.cells[y*m.width+x], true
}

// At returns the landscape at (x, y); ok is false outside the map.
func (m *Map) At(x, y int) (*Landscape, bool) {
	k, ok := m.Kind(x, y)
	if !ok {
		return nil, false
	}
	return Of(k), true
}

// Counts tallies cells per kind.
func (m *Map) Counts() map[Kind]int {
	out := make(map[Kind]int, kindCount)
	for _, k := range m.cells {
		out[k]++
	}
	return out
}
