package entity

import (
	"testing"

	"skirmish/internal/config"
)

func TestFactoryAppliesRules(t *testing.T) {
	rules := &config.Rules{
		Units: map[string]config.UnitDef{
			"Knight":   {Attack: config.Int(40), Cost: config.Int(260)},
			"healer":   {HealPower: config.Int(35), Name: "Medic"},
			"spearman": {Armor: config.Int(0)},
			"golem":    {Attack: config.Int(99)},
		},
		Objects: map[string]config.ObjectDef{
			"trap":           {Power: config.Int(45)},
			"treasure_chest": {Symbol: "$"},
		},
	}
	f := NewFactory(rules)

	k := f.CreateKind(Knight)
	if k.Attack() != 40 || k.Health() != 150 {
		t.Errorf("knight = %v, want attack 40 and stock health", k)
	}
	if f.Cost(Knight) != 260 {
		t.Errorf("knight cost = %d, want 260", f.Cost(Knight))
	}
	h := f.CreateKind(Healer)
	if h.Name() != "Medic" || h.HealPower() != 35 {
		t.Errorf("healer = %s/%d", h.Name(), h.HealPower())
	}
	if s := f.CreateKind(Spearman); s.Armor() != 0 || s.Attack() != 20 {
		t.Errorf("spearman armor %d attack %d, want 0 and 20", s.Armor(), s.Attack())
	}
	if f.Object(Trap).Power() != 45 {
		t.Errorf("trap power = %d, want 45", f.Object(Trap).Power())
	}
	if f.Object(TreasureChest).Symbol() != '$' {
		t.Errorf("chest symbol = %c", f.Object(TreasureChest).Symbol())
	}
	if NewFactory(nil).Cost(Knight) != 200 {
		t.Error("rules leaked into the built-in table")
	}
}

func TestBuiltinCosts(t *testing.T) {
	want := map[Kind]int{
		Swordsman: 100, Spearman: 80, Crossbowman: 120, Ballista: 150,
		Knight: 200, Horseman: 180, Healer: 90,
	}
	f := NewFactory(nil)
	for k, cost := range want {
		if got := f.Cost(k); got != cost {
			t.Errorf("%s cost = %d, want %d", k, got, cost)
		}
	}
}

func TestRuleKeysMatchKinds(t *testing.T) {
	if len(config.UnitKeys) != len(Kinds()) {
		t.Fatalf("config lists %d unit keys, %d kinds exist", len(config.UnitKeys), len(Kinds()))
	}
	for _, key := range config.UnitKeys {
		if _, err := ParseKind(key); err != nil {
			t.Errorf("unit key %q: %v", key, err)
		}
	}
	if len(config.ObjectKeys) != len(ObjectKinds()) {
		t.Fatalf("config lists %d object keys, %d kinds exist", len(config.ObjectKeys), len(ObjectKinds()))
	}
	for _, key := range config.ObjectKeys {
		if _, err := ParseObjectKind(key); err != nil {
			t.Errorf("object key %q: %v", key, err)
		}
	}
}
