package terrain

import (
	"errors"
	"math/rand"
	"testing"

	"skirmish/internal/fault"
)

func TestNewMapAt(t *testing.T) {
	m, err := NewMap(3, 2, []Kind{
		Plain, Forest, Mountain,
		Swamp, Plain, Forest,
	})
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	tests := []struct {
		x, y int
		want Kind
	}{
		{0, 0, Plain},
		{1, 0, Forest},
		{2, 0, Mountain},
		{0, 1, Swamp},
		{2, 1, Forest},
	}
	for _, tc := range tests {
		got, ok := m.Kind(tc.x, tc.y)
		if !ok || got != tc.want {
			t.Errorf("Kind(%d, %d) = %s/%v, want %s", tc.x, tc.y, got, ok, tc.want)
		}
	}
	if _, ok := m.At(3, 0); ok {
		t.Error("At(3, 0) should be out of bounds")
	}
	if _, ok := m.At(0, -1); ok {
		t.Error("At(0, -1) should be out of bounds")
	}
}

func TestNewMapRejectsBadInput(t *testing.T) {
	if _, err := NewMap(0, 3, nil); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("zero width: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewMap(2, 2, []Kind{Plain}); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("short cells: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewMap(1, 1, []Kind{Kind(9)}); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("unknown kind: err = %v, want ErrInvalidArgument", err)
	}
}

func TestGenerateCoversFullWidth(t *testing.T) {
	// Wide, short map: every column must be generated, not just the first height columns.
	m, err := Generate(12, 2, rand.New(rand.NewSource(7)), []Weight{{Kind: Swamp, Weight: 1}})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 12; x++ {
			if k, _ := m.Kind(x, y); k != Swamp {
				t.Fatalf("Kind(%d, %d) = %s, want swamp", x, y, k)
			}
		}
	}
}

func TestGenerateDistribution(t *testing.T) {
	m, err := Generate(100, 100, rand.New(rand.NewSource(1)), nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	counts := m.Counts()
	want := map[Kind]float64{Plain: 0.60, Forest: 0.20, Mountain: 0.15, Swamp: 0.05}
	for k, share := range want {
		got := float64(counts[k]) / 10000
		if got < share-0.03 || got > share+0.03 {
			t.Errorf("%s share = %.3f, want about %.2f", k, got, share)
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a, _ := Generate(8, 8, rand.New(rand.NewSource(99)), nil)
	b, _ := Generate(8, 8, rand.New(rand.NewSource(99)), nil)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			ka, _ := a.Kind(x, y)
			kb, _ := b.Kind(x, y)
			if ka != kb {
				t.Fatalf("cell (%d,%d) differs between equal seeds", x, y)
			}
		}
	}
}

func TestGenerateRejectsBadWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := Generate(4, 4, rng, []Weight{{Kind: Plain, Weight: 0}}); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("zero total: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := Generate(4, 4, rng, []Weight{{Kind: Plain, Weight: -1}, {Kind: Forest, Weight: 2}}); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("negative weight: err = %v, want ErrInvalidArgument", err)
	}
}

func TestPickEdges(t *testing.T) {
	ws := []Weight{{Kind: Plain, Weight: 1}, {Kind: Forest, Weight: 1}, {Kind: Swamp, Weight: 0}}
	if got := pick(ws, 2, 0); got != Plain {
		t.Errorf("pick(0) = %s, want plain", got)
	}
	if got := pick(ws, 2, 0.75); got != Forest {
		t.Errorf("pick(0.75) = %s, want forest", got)
	}
	if got := pick(ws, 2, 1.0); got != Forest {
		t.Errorf("pick(1.0) = %s, want forest", got)
	}
}

func TestWeightsFrom(t *testing.T) {
	got, err := WeightsFrom(map[string]float64{"Swamp": 1, "plain": 3})
	if err != nil {
		t.Fatalf("WeightsFrom: %v", err)
	}
	want := []Weight{{Kind: Plain, Weight: 3}, {Kind: Swamp, Weight: 1}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, _ := WeightsFrom(nil); len(got) != len(DefaultWeights) {
		t.Errorf("empty table gave %v", got)
	}
	if _, err := WeightsFrom(map[string]float64{"lava": 1}); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("unknown terrain err = %v", err)
	}
	if _, err := WeightsFrom(map[string]float64{"plain": 0}); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("zero total err = %v", err)
	}
}
