package core

// UnitKind identifies one of the six unit types. The set is closed; anything
// a board snapshot reports outside this set is a protocol error upstream.
type UnitKind int

const (
	Wall UnitKind = iota
	Turret
	Factory
	Scout
	Demolisher
	Interceptor
)

var unitKindNames = map[UnitKind]string{
	Wall:        "wall",
	Turret:      "turret",
	Factory:     "factory",
	Scout:       "scout",
	Demolisher:  "demolisher",
	Interceptor: "interceptor",
}

// String returns the lowercase name of the kind
func (k UnitKind) String() string {
	if name, ok := unitKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsStationary reports whether the kind is a structure that occupies a tile
func (k UnitKind) IsStationary() bool {
	return k == Wall || k == Turret || k == Factory
}

// IsMobile reports whether the kind is a mobile attacker
func (k UnitKind) IsMobile() bool {
	return k == Scout || k == Demolisher || k == Interceptor
}

// UnitStats holds the per-kind numbers. They are configuration, not state;
// a Unit only stores what varies per instance.
type UnitStats struct {
	Cost        float64
	MaxHealth   float64
	Damage      float64
	AttackRange float64
	Speed       float64 // mobile kinds: damage divisor while traversing a tile

	UpgradeCost    float64
	UpgradedHealth float64
	UpgradedDamage float64
	UpgradedRange  float64
}

// StatsTable maps every unit kind to its stats. It is built once from config
// and passed to constructors; nothing mutates it after that.
type StatsTable map[UnitKind]UnitStats

// DefaultStats returns the stock stats table. Config overrides feed through
// config.Load; tests use this directly.
func DefaultStats() StatsTable {
	return StatsTable{
		Wall: {
			Cost:           1,
			MaxHealth:      60,
			UpgradeCost:    1,
			UpgradedHealth: 120,
		},
		Turret: {
			Cost:           2,
			MaxHealth:      75,
			Damage:         5,
			AttackRange:    2.5,
			UpgradeCost:    4,
			UpgradedHealth: 75,
			UpgradedDamage: 15,
			UpgradedRange:  3.5,
		},
		Factory: {
			Cost:      9,
			MaxHealth: 30,
		},
		Scout:       {Cost: 1, MaxHealth: 15, Damage: 2, AttackRange: 3.5, Speed: 1},
		Demolisher:  {Cost: 3, MaxHealth: 5, Damage: 8, AttackRange: 4.5, Speed: 2},
		Interceptor: {Cost: 1, MaxHealth: 40, Damage: 20, AttackRange: 4.5, Speed: 4},
	}
}

// Unit is a structure or mobile unit on the board. The Grid owns every Unit
// value; regions and defenses only hold pointers refreshed on each scan.
type Unit struct {
	Kind     UnitKind
	Owner    int
	Pos      Coordinate
	Health   float64
	Upgraded bool
}

// MaxHealth returns the unit's full health given the stats table
func (u *Unit) MaxHealth(stats StatsTable) float64 {
	s := stats[u.Kind]
	if u.Upgraded && s.UpgradedHealth > 0 {
		return s.UpgradedHealth
	}
	return s.MaxHealth
}

// Damage returns damage dealt per frame to mobile units in range
func (u *Unit) Damage(stats StatsTable) float64 {
	s := stats[u.Kind]
	if u.Upgraded && s.UpgradedDamage > 0 {
		return s.UpgradedDamage
	}
	return s.Damage
}

// AttackRange returns the unit's attack radius
func (u *Unit) AttackRange(stats StatsTable) float64 {
	s := stats[u.Kind]
	if u.Upgraded && s.UpgradedRange > 0 {
		return s.UpgradedRange
	}
	return s.AttackRange
}

// Cost returns the structure points spent on the unit so far
func (u *Unit) Cost(stats StatsTable) float64 {
	s := stats[u.Kind]
	if u.Upgraded {
		return s.Cost + s.UpgradeCost
	}
	return s.Cost
}

// HealthFraction returns current health over max health
func (u *Unit) HealthFraction(stats StatsTable) float64 {
	max := u.MaxHealth(stats)
	if max == 0 {
		return 0
	}
	return u.Health / max
}
