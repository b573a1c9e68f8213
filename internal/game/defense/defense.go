// Package defense aggregates the six fixed regions tiling one player's half
// of the board: per-turn structure scans, cross-region weakest-region
// selection, and the fortification and rebuild control loops.
package defense

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tacticore/terminal-defense/internal/game/core"
	"github.com/tacticore/terminal-defense/internal/game/events"
	"github.com/tacticore/terminal-defense/internal/game/region"
)

var ErrNoCandidates = errors.New("weakest-region selection needs at least one candidate")

// NoRegion is returned by RegionOf for coordinates outside every region
const NoRegion = -1

// Tuning holds the defense-level control knobs
type Tuning struct {
	TurretToWallRatio  float64 // weight applied to turret power in DEFENSIVE_POWER
	MinTurnBackRegions int     // back regions join the candidate set after this turn
	MinTurnRebuild     int     // rebuild routine runs after this turn
	RebuildThreshold   float64 // health fraction below which a structure is rebuilt
	FortifyIterations  int     // runaway guard on the fortify loop
	Region             region.Tuning
}

// DefaultTuning mirrors the stock control constants
func DefaultTuning() Tuning {
	return Tuning{
		TurretToWallRatio:  0.75,
		MinTurnBackRegions: 5,
		MinTurnRebuild:     10,
		RebuildThreshold:   0.75,
		FortifyIterations:  15,
		Region:             region.DefaultTuning(),
	}
}

// Defense owns the six regions of one player's half. Constructed once at
// match start and mutated in place every turn; regions are never replaced.
type Defense struct {
	PlayerID int

	regions []*region.Region
	lookup  []int // board-sized coordinate -> region index table
	gridW   int
	gridH   int

	// units de-duplicates structures by tile across regions; regions sharing
	// a boundary tile both report its occupant, the Defense counts it once.
	units map[core.UnitKind]map[core.Coordinate]*core.Unit

	// field aggregates turret coverage over the whole half from the deduped
	// inventory; regions keep their own bounds-local fields for statistics.
	field *region.DamageField

	cachedStats []region.Statistics
	scannedGen  uint64
	everScanned bool

	rebuildQueue []rebuildEntry

	stats   core.StatsTable
	tuning  Tuning
	bus     *events.Bus
	matchID string
	logger  zerolog.Logger
}

// New builds the six-region defense for a player. The bus is optional; pass
// nil to disable event publishing.
func New(playerID int, g *core.Grid, stats core.StatsTable, tuning Tuning, bus *events.Bus, matchID string, logger zerolog.Logger) (*Defense, error) {
	if playerID != 0 && playerID != 1 {
		return nil, fmt.Errorf("defense for player %d: %w", playerID, core.ErrInvalidPlayer)
	}

	d := &Defense{
		PlayerID:    playerID,
		gridW:       g.W,
		gridH:       g.H,
		units:       make(map[core.UnitKind]map[core.Coordinate]*core.Unit),
		field:       region.NewDamageField(0, playerID*g.HalfHeight(), g.W, g.HalfHeight()),
		stats:       stats,
		tuning:      tuning,
		bus:         bus,
		matchID:     matchID,
		logger:      logger.With().Str("component", "defense").Int("player", playerID).Logger(),
		cachedStats: make([]region.Statistics, 0, 6),
	}

	for id, spec := range layoutFor(playerID) {
		r, err := region.New(id, playerID, spec.vertices, spec.incoming, spec.outgoing, spec.breach,
			stats, tuning.Region, nil)
		if err != nil {
			return nil, fmt.Errorf("defense for player %d: %w", playerID, err)
		}
		d.regions = append(d.regions, r)
	}

	d.buildLookup()
	return d, nil
}

// buildLookup fills the coordinate -> region table. Boundary tiles shared by
// two regions resolve to the lower region ID, which keeps the table
// deterministic.
func (d *Defense) buildLookup() {
	d.lookup = make([]int, d.gridW*d.gridH)
	for i := range d.lookup {
		d.lookup[i] = NoRegion
	}
	for id := len(d.regions) - 1; id >= 0; id-- {
		for _, c := range d.regions[id].Coordinates() {
			d.lookup[c.ToIndex(d.gridW)] = id
		}
	}
}

// RegionOf returns the region index containing the coordinate, NoRegion when
// the coordinate falls outside the tiling.
func (d *Defense) RegionOf(c core.Coordinate) int {
	if !c.IsValid(d.gridW, d.gridH) {
		return NoRegion
	}
	return d.lookup[c.ToIndex(d.gridW)]
}

// Region returns the region with the given index
func (d *Defense) Region(id int) *region.Region { return d.regions[id] }

// RegionCount returns the number of regions in the tiling
func (d *Defense) RegionCount() int { return len(d.regions) }

// Statistics returns the per-region summaries cached by the last Update
func (d *Defense) Statistics() []region.Statistics { return d.cachedStats }

// DamageAt reads the half-board aggregate damage field
func (d *Defense) DamageAt(c core.Coordinate) float64 { return d.field.At(c) }

// Update re-scans every region against the grid snapshot, rebuilds the
// de-duplicated structure inventory and the aggregate damage field, and
// refreshes the cached statistics. Cheap when the grid generation has not
// moved since the last update.
func (d *Defense) Update(g *core.Grid) {
	if d.everScanned && g.Generation() == d.scannedGen {
		return
	}

	for kind := range d.units {
		clear(d.units[kind])
	}

	d.cachedStats = d.cachedStats[:0]
	for _, r := range d.regions {
		r.UpdateStructures(g)
		for _, kind := range []core.UnitKind{core.Wall, core.Turret, core.Factory} {
			for _, u := range r.Units(kind) {
				if d.units[kind] == nil {
					d.units[kind] = make(map[core.Coordinate]*core.Unit)
				}
				d.units[kind][u.Pos] = u
			}
		}
		d.cachedStats = append(d.cachedStats, r.Statistics())
	}

	d.field.Reset()
	for _, turret := range d.units[core.Turret] {
		for _, c := range g.LocationsInRange(turret.Pos, turret.AttackRange(d.stats)) {
			d.field.Add(c, turret.Damage(d.stats))
		}
	}

	d.scannedGen = g.Generation()
	d.everScanned = true
}

// UnitCount returns the deduplicated structure count for a kind
func (d *Defense) UnitCount(kind core.UnitKind) int { return len(d.units[kind]) }

// TotalCost sums structure cost over the deduplicated inventory
func (d *Defense) TotalCost(prorated, defensiveOnly bool) float64 {
	cost := 0.0
	for kind, byPos := range d.units {
		if defensiveOnly && kind == core.Factory {
			continue
		}
		for _, u := range byPos {
			if prorated {
				cost += u.HealthFraction(d.stats) * u.Cost(d.stats)
			} else {
				cost += u.Cost(d.stats)
			}
		}
	}
	return cost
}

// UndefendedTiles returns each region's uncovered interior tiles keyed by
// region index.
func (d *Defense) UndefendedTiles() map[int][]core.Coordinate {
	tiles := make(map[int][]core.Coordinate, len(d.regions))
	for id, r := range d.regions {
		tiles[id] = r.UndefendedTiles()
	}
	return tiles
}
