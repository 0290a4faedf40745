package field

import (
	"fmt"
	"math"

	"skirmish/internal/entity"
	"skirmish/internal/fault"
	"skirmish/internal/terrain"
)

// MoveOutcome reports what a move request did. When the destination held a
// neutral object the unit interacts with it instead of moving, Moved is
// false and Interaction is set.
type MoveOutcome struct {
	Moved       bool            `json:"moved"`
	From        entity.Position `json:"from"`
	To          entity.Position `json:"to"`
	Terrain     terrain.Kind    `json:"terrain"`
	AttackBonus float64         `json:"attack_bonus"`
	Interaction *entity.Effect  `json:"interaction,omitempty"`
}

type AttackOutcome struct {
	Attacker     string  `json:"attacker"`
	Target       string  `json:"target"`
	TargetID     int     `json:"target_id"`
	Bonus        float64 `json:"bonus"`
	Damage       int     `json:"damage"`
	Dealt        int     `json:"dealt"`
	TargetHealth int     `json:"target_health"`
	Killed       bool    `json:"killed"`
}

type BaseAttackOutcome struct {
	Attacker   string `json:"attacker"`
	Base       string `json:"base"`
	Damage     int    `json:"damage"`
	BaseHealth int    `json:"base_health"`
	Destroyed  bool   `json:"destroyed"`
}

// MoveUnit relocates u to (x, y). A unit may cover at most
// moveRange/moveCost cells (rounded down) of the destination terrain.
func (f *Field) MoveUnit(u *entity.Unit, x, y int) (MoveOutcome, error) {
	if err := f.checkOpen(); err != nil {
		return MoveOutcome{}, err
	}
	if err := f.trackedOrErr(u); err != nil {
		return MoveOutcome{}, err
	}
	if !u.IsAlive() {
		return MoveOutcome{}, fmt.Errorf("%s cannot move: %w", u.Name(), fault.ErrDeadEntity)
	}
	if !u.SelfPropelled() {
		return MoveOutcome{}, fmt.Errorf("%s cannot move on its own: %w", u.Name(), fault.ErrImmobile)
	}
	if err := f.checkBounds(x, y); err != nil {
		return MoveOutcome{}, err
	}
	from, _ := u.Position()
	to := entity.Position{X: x, Y: y}

	if _, ok := f.cells[f.index(x, y)].(*entity.Object); ok {
		ef, err := f.InteractWithObject(u, x, y)
		if err != nil {
			return MoveOutcome{}, err
		}
		return MoveOutcome{From: from, To: from, Interaction: &ef}, nil
	}
	if err := f.checkEmpty(x, y); err != nil {
		return MoveOutcome{}, err
	}
	land, _ := f.land.At(x, y)
	if !land.CanPass(u) {
		return MoveOutcome{}, fmt.Errorf("%s cannot enter %s at (%d,%d): %w", u.Name(), land, x, y, fault.ErrImpassable)
	}
	limit := u.MoveRange() / land.MoveCost()
	if d := from.Distance(to); d > limit {
		return MoveOutcome{}, fmt.Errorf("%s reaches %d cells into %s, distance is %d: %w",
			u.Name(), limit, land, d, fault.ErrTooFar)
	}
	if err := u.Move(to); err != nil {
		return MoveOutcome{}, err
	}
	f.cells[f.index(from.X, from.Y)] = nil
	f.cells[f.index(x, y)] = u

	out := MoveOutcome{
		Moved:       true,
		From:        from,
		To:          to,
		Terrain:     land.Kind(),
		AttackBonus: land.AttackBonus(u),
	}
	f.log.Debug("unit moved", "unit", u.Name(), "from", from, "to", to, "terrain", land.String())
	f.Emit("UnitMoved", map[string]any{
		"unit": u.Name(), "id": u.ID(),
		"from_x": from.X, "from_y": from.Y, "x": x, "y": y,
		"terrain": land.String(), "attack_bonus": out.AttackBonus,
	})
	return out, nil
}

// strike is the attacker's damage before the target's armor: attack times
// the modifier of the terrain the attacker stands on, rounded down.
func (f *Field) strike(u *entity.Unit) (int, float64) {
	pos, _ := u.Position()
	land, _ := f.land.At(pos.X, pos.Y)
	bonus := land.AttackBonus(u)
	return int(math.Floor(float64(u.Attack()) * bonus)), bonus
}

func (f *Field) checkActor(u *entity.Unit, verb string) error {
	if err := f.checkOpen(); err != nil {
		return err
	}
	if err := f.trackedOrErr(u); err != nil {
		return err
	}
	if !u.IsAlive() {
		return fmt.Errorf("%s cannot %s: %w", u.Name(), verb, fault.ErrDeadEntity)
	}
	return nil
}

// AttackUnit strikes the unit on (x, y). A lethal hit removes the target
// from the field and from its base.
func (f *Field) AttackUnit(attacker *entity.Unit, x, y int) (AttackOutcome, error) {
	if err := f.checkActor(attacker, "attack"); err != nil {
		return AttackOutcome{}, err
	}
	if err := f.checkBounds(x, y); err != nil {
		return AttackOutcome{}, err
	}
	target := f.UnitAt(x, y)
	if target == nil {
		return AttackOutcome{}, fmt.Errorf("no unit at (%d,%d): %w", x, y, fault.ErrNotFound)
	}
	if target == attacker {
		return AttackOutcome{}, fmt.Errorf("%s cannot attack itself: %w", attacker.Name(), fault.ErrInvalidArgument)
	}

	damage, bonus := f.strike(attacker)
	dealt := target.TakeDamage(damage)
	out := AttackOutcome{
		Attacker:     attacker.Name(),
		Target:       target.Name(),
		TargetID:     target.ID(),
		Bonus:        bonus,
		Damage:       damage,
		Dealt:        dealt,
		TargetHealth: target.Health(),
		Killed:       !target.IsAlive(),
	}
	f.log.Debug("unit attacked", "attacker", attacker.Name(), "target", target.Name(), "damage", damage, "dealt", dealt)
	f.Emit("UnitAttacked", map[string]any{
		"attacker": attacker.Name(), "attacker_id": attacker.ID(),
		"target": target.Name(), "target_id": target.ID(),
		"damage": damage, "dealt": dealt, "health": target.Health(),
	})
	if out.Killed {
		f.detach(target)
		f.log.Info("unit killed", "unit", target.Name(), "id", target.ID(), "by", attacker.Name())
		f.Emit("UnitKilled", map[string]any{"unit": target.Name(), "id": target.ID(), "x": x, "y": y})
	}
	return out, nil
}

// AttackBase strikes the base on (x, y). Bases have no armor and stay on
// their cell once destroyed.
func (f *Field) AttackBase(attacker *entity.Unit, x, y int) (BaseAttackOutcome, error) {
	if err := f.checkActor(attacker, "attack"); err != nil {
		return BaseAttackOutcome{}, err
	}
	if err := f.checkBounds(x, y); err != nil {
		return BaseAttackOutcome{}, err
	}
	b := f.BaseAt(x, y)
	if b == nil {
		return BaseAttackOutcome{}, fmt.Errorf("no base at (%d,%d): %w", x, y, fault.ErrNotFound)
	}
	if !b.IsAlive() {
		return BaseAttackOutcome{}, fmt.Errorf("base %s is already destroyed: %w", b.Name(), fault.ErrDeadEntity)
	}
	if attacker.Owner() == b {
		return BaseAttackOutcome{}, fmt.Errorf("%s cannot attack its own base: %w", attacker.Name(), fault.ErrInvalidArgument)
	}

	damage, _ := f.strike(attacker)
	b.TakeDamage(damage)
	out := BaseAttackOutcome{
		Attacker:   attacker.Name(),
		Base:       b.Name(),
		Damage:     damage,
		BaseHealth: b.Health(),
		Destroyed:  !b.IsAlive(),
	}
	f.log.Debug("base attacked", "attacker", attacker.Name(), "base", b.Name(), "damage", damage)
	f.Emit("BaseAttacked", map[string]any{
		"attacker": attacker.Name(), "base": b.Name(), "damage": damage, "health": b.Health(),
	})
	if out.Destroyed {
		f.log.Info("base destroyed", "base", b.Name())
		f.Emit("BaseDestroyed", map[string]any{"base": b.Name(), "x": x, "y": y})
	}
	return out, nil
}

// HealUnit has healer restore the unit on (x, y) and returns the health
// restored.
func (f *Field) HealUnit(healer *entity.Unit, x, y int) (int, error) {
	if err := f.checkActor(healer, "heal"); err != nil {
		return 0, err
	}
	if err := f.checkBounds(x, y); err != nil {
		return 0, err
	}
	target := f.UnitAt(x, y)
	if target == nil {
		return 0, fmt.Errorf("no unit at (%d,%d): %w", x, y, fault.ErrNotFound)
	}
	restored, err := healer.HealAlly(target)
	if err != nil {
		return 0, err
	}
	f.log.Debug("unit healed", "healer", healer.Name(), "target", target.Name(), "restored", restored)
	f.Emit("UnitHealed", map[string]any{
		"healer": healer.Name(), "target": target.Name(), "target_id": target.ID(),
		"restored": restored, "health": target.Health(),
	})
	return restored, nil
}

// InteractWithObject applies the object on (x, y) to u and takes the used
// object off the field. A unit killed by the object stays registered.
func (f *Field) InteractWithObject(u *entity.Unit, x, y int) (entity.Effect, error) {
	if err := f.checkActor(u, "interact"); err != nil {
		return entity.Effect{}, err
	}
	if err := f.checkBounds(x, y); err != nil {
		return entity.Effect{}, err
	}
	o := f.ObjectAt(x, y)
	if o == nil {
		return entity.Effect{}, fmt.Errorf("no object at (%d,%d): %w", x, y, fault.ErrNotFound)
	}
	ef, ok := o.Interact(u)
	if !ok {
		return entity.Effect{}, fmt.Errorf("%s cannot use %s: %w", u.Name(), o.Name(), fault.ErrDeadEntity)
	}

	f.cells[f.index(x, y)] = nil
	for i, m := range f.objects {
		if m == o {
			f.objects = append(f.objects[:i], f.objects[i+1:]...)
			break
		}
	}
	o.Consume()

	f.log.Debug("object used", "object", o.Name(), "unit", u.Name(), "amount", ef.Amount)
	f.Emit("ObjectUsed", map[string]any{
		"object": o.Name(), "kind": o.Kind().String(), "unit": u.Name(), "id": u.ID(),
		"amount": ef.Amount, "description": ef.Description, "x": x, "y": y,
	})
	return ef, nil
}
