package entity

// Ability is the outcome of a special ability. Effects are game content;
// the engine only reports them.
type Ability struct {
	Name   string  `json:"name"`
	Effect string  `json:"effect"`
	Value  float64 `json:"value,omitempty"`
}

func powerStrike(u *Unit) Ability {
	return Ability{Name: "power strike", Effect: "double_damage", Value: float64(u.attack * 2)}
}

func braceSpears(u *Unit) Ability {
	return Ability{Name: "brace spears", Effect: "anti_cavalry", Value: 1.5}
}

// heavyBolt alternates between a loaded armor-piercing shot and a reload.
func heavyBolt(u *Unit) Ability {
	if u.boltLoaded {
		u.boltLoaded = false
		return Ability{Name: "heavy bolt", Effect: "armor_piercing"}
	}
	u.boltLoaded = true
	return Ability{Name: "heavy bolt", Effect: "reloading"}
}

func volley(u *Unit) Ability {
	return Ability{Name: "volley", Effect: "area_attack", Value: 3}
}

func charge(u *Unit) Ability {
	return Ability{Name: "charge", Effect: "charge", Value: float64(u.attack) * 1.5}
}

func hitAndRun(u *Unit) Ability {
	return Ability{Name: "hit and run", Effect: "hit_and_run"}
}

func mend(u *Unit) Ability {
	return Ability{Name: "mend", Effect: "heal", Value: float64(u.healPower)}
}
