package entity

import (
	"errors"
	"testing"

	"skirmish/internal/fault"
)

func mustCreate(t *testing.T, key string) *Unit {
	t.Helper()
	u, err := NewFactory(nil).Create(key)
	if err != nil {
		t.Fatalf("Create(%q): %v", key, err)
	}
	return u
}

func TestFactoryStats(t *testing.T) {
	tests := []struct {
		key    string
		health int
		armor  int
		attack int
		move   int
		reach  int
		class  Class
	}{
		{"swordsman", 120, 15, 25, 1, 1, ClassInfantry},
		{"spearman", 100, 20, 20, 1, 1, ClassInfantry},
		{"crossbowman", 80, 5, 35, 1, 4, ClassArcher},
		{"ballista", 120, 15, 50, 1, 6, ClassArcher},
		{"knight", 150, 25, 30, 2, 1, ClassCavalry},
		{"horseman", 100, 10, 20, 3, 1, ClassCavalry},
		{"healer", 60, 2, 5, 1, 1, ClassHealer},
	}
	for _, tc := range tests {
		u := mustCreate(t, tc.key)
		if u.Health() != tc.health || u.MaxHealth() != tc.health || u.Armor() != tc.armor ||
			u.Attack() != tc.attack || u.MoveRange() != tc.move || u.AttackRange() != tc.reach {
			t.Errorf("%s stats = %v", tc.key, u)
		}
		if u.Class() != tc.class {
			t.Errorf("%s class = %s, want %s", tc.key, u.Class(), tc.class)
		}
		if u.ID() != 0 {
			t.Errorf("%s has id %d before placement", tc.key, u.ID())
		}
		if _, placed := u.Position(); placed {
			t.Errorf("%s placed before placement", tc.key)
		}
	}
}

func TestFactoryKeysAreCaseInsensitive(t *testing.T) {
	u := mustCreate(t, "  KniGHT ")
	if u.Kind() != Knight {
		t.Fatalf("kind = %s, want knight", u.Kind())
	}
}

func TestFactoryUnknownKey(t *testing.T) {
	_, err := NewFactory(nil).Create("dragon")
	if !errors.Is(err, fault.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestTakeDamage(t *testing.T) {
	tests := []struct {
		amount    int
		wantDealt int
		wantHP    int
	}{
		{25, 5, 95},  // spearman armor 20
		{20, 0, 100}, // fully absorbed
		{5, 0, 100},  // never negative
		{300, 280, -180},
	}
	for _, tc := range tests {
		u := mustCreate(t, "spearman")
		if got := u.TakeDamage(tc.amount); got != tc.wantDealt {
			t.Errorf("TakeDamage(%d) = %d, want %d", tc.amount, got, tc.wantDealt)
		}
		if u.Health() != tc.wantHP {
			t.Errorf("after TakeDamage(%d) health = %d, want %d", tc.amount, u.Health(), tc.wantHP)
		}
		if u.IsAlive() != (u.Health() > 0) {
			t.Errorf("IsAlive() = %v with health %d", u.IsAlive(), u.Health())
		}
	}
}

func TestHealCapsAtMax(t *testing.T) {
	u := mustCreate(t, "swordsman")
	u.TakeDamage(45) // 30 after armor
	if got := u.Heal(100); got != 30 {
		t.Errorf("Heal(100) restored %d, want 30", got)
	}
	if u.Health() != u.MaxHealth() {
		t.Errorf("health = %d, want %d", u.Health(), u.MaxHealth())
	}
	if got := u.Heal(10); got != 0 {
		t.Errorf("Heal on full health restored %d", got)
	}
}

func TestHealDoesNotRevive(t *testing.T) {
	u := mustCreate(t, "healer")
	u.TakeDamage(1000)
	if got := u.Heal(50); got != 0 || u.IsAlive() {
		t.Fatalf("dead unit healed by %d, alive=%v", got, u.IsAlive())
	}
}

func TestMoveRange(t *testing.T) {
	u := mustCreate(t, "horseman")
	if err := u.Move(Position{X: 1, Y: 1}); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("unplaced move err = %v, want ErrNotFound", err)
	}
	u.Place(1, Position{X: 0, Y: 0})
	if err := u.Move(Position{X: 2, Y: 1}); err != nil {
		t.Fatalf("Move within range: %v", err)
	}
	if err := u.Move(Position{X: 6, Y: 1}); !errors.Is(err, fault.ErrTooFar) {
		t.Fatalf("Move too far err = %v, want ErrTooFar", err)
	}
	if pos, _ := u.Position(); pos != (Position{X: 2, Y: 1}) {
		t.Fatalf("position = %+v after failed move", pos)
	}
}

func TestBallistaNeverMoves(t *testing.T) {
	u := mustCreate(t, "ballista")
	u.Place(1, Position{X: 3, Y: 3})
	for _, to := range []Position{{X: 3, Y: 4}, {X: 3, Y: 3}, {X: 9, Y: 9}} {
		if err := u.Move(to); !errors.Is(err, fault.ErrImmobile) {
			t.Errorf("Move(%+v) err = %v, want ErrImmobile", to, err)
		}
	}
}

func TestSpecialAbilities(t *testing.T) {
	tests := []struct {
		key    string
		effect string
		value  float64
	}{
		{"swordsman", "double_damage", 50},
		{"spearman", "anti_cavalry", 1.5},
		{"crossbowman", "armor_piercing", 0},
		{"ballista", "area_attack", 3},
		{"knight", "charge", 45},
		{"horseman", "hit_and_run", 0},
		{"healer", "heal", 25},
	}
	for _, tc := range tests {
		ab, err := mustCreate(t, tc.key).SpecialAbility()
		if err != nil {
			t.Fatalf("%s SpecialAbility: %v", tc.key, err)
		}
		if ab.Effect != tc.effect || ab.Value != tc.value {
			t.Errorf("%s ability = %+v, want %s/%v", tc.key, ab, tc.effect, tc.value)
		}
	}
}

func TestCrossbowReloads(t *testing.T) {
	u := mustCreate(t, "crossbowman")
	want := []string{"armor_piercing", "reloading", "armor_piercing"}
	for i, w := range want {
		ab, _ := u.SpecialAbility()
		if ab.Effect != w {
			t.Fatalf("shot %d effect = %s, want %s", i, ab.Effect, w)
		}
	}
}

func TestAbilityRequiresLife(t *testing.T) {
	u := mustCreate(t, "knight")
	u.TakeDamage(1000)
	if _, err := u.SpecialAbility(); !errors.Is(err, fault.ErrDeadEntity) {
		t.Fatalf("err = %v, want ErrDeadEntity", err)
	}
}

func TestHealAlly(t *testing.T) {
	healer := mustCreate(t, "healer")
	ally := mustCreate(t, "crossbowman")
	ally.TakeDamage(15) // 10 after armor
	got, err := healer.HealAlly(ally)
	if err != nil || got != 10 {
		t.Fatalf("HealAlly = %d, %v; want 10", got, err)
	}
	if _, err := mustCreate(t, "knight").HealAlly(ally); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("non-healer err = %v, want ErrInvalidArgument", err)
	}
	ally.TakeDamage(1000)
	if _, err := healer.HealAlly(ally); !errors.Is(err, fault.ErrDeadEntity) {
		t.Errorf("dead target err = %v, want ErrDeadEntity", err)
	}
}

func TestInRange(t *testing.T) {
	u := mustCreate(t, "crossbowman")
	if u.InRange(Position{}) {
		t.Fatal("unplaced unit should have nothing in range")
	}
	u.Place(1, Position{X: 0, Y: 0})
	if !u.InRange(Position{X: 2, Y: 2}) {
		t.Error("(2,2) should be in range 4")
	}
	if u.InRange(Position{X: 3, Y: 2}) {
		t.Error("(3,2) should be out of range 4")
	}
}

func TestTerrainCapabilities(t *testing.T) {
	if !mustCreate(t, "knight").Mounted() || mustCreate(t, "knight").Ranged() {
		t.Error("knight should be mounted, not ranged")
	}
	if !mustCreate(t, "ballista").Ranged() || mustCreate(t, "ballista").Mounted() {
		t.Error("ballista should be ranged, not mounted")
	}
	if mustCreate(t, "healer").Mounted() || mustCreate(t, "healer").Ranged() {
		t.Error("healer is neither mounted nor ranged")
	}
}
