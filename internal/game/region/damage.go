package region

import "github.com/tacticore/terminal-defense/internal/game/core"

// DamageField stores accumulated damage-per-frame for a rectangular window of
// board coordinates. A region allocates one sized to its own bounds; a
// Defense allocates a single half-board field and hands the same one to all
// of its regions as a read-only view.
type DamageField struct {
	xMin, yMin int
	w, h       int
	vals       []float64
}

// NewDamageField creates a zeroed field covering the given window
func NewDamageField(xMin, yMin, w, h int) *DamageField {
	return &DamageField{xMin: xMin, yMin: yMin, w: w, h: h, vals: make([]float64, w*h)}
}

// Covers reports whether the coordinate falls inside the field's window
func (f *DamageField) Covers(c core.Coordinate) bool {
	return c.X >= f.xMin && c.X < f.xMin+f.w && c.Y >= f.yMin && c.Y < f.yMin+f.h
}

// At returns the accumulated damage at the coordinate, zero outside the window
func (f *DamageField) At(c core.Coordinate) float64 {
	if !f.Covers(c) {
		return 0
	}
	return f.vals[(c.Y-f.yMin)*f.w+(c.X-f.xMin)]
}

// Add accumulates damage at the coordinate; out-of-window adds are dropped
func (f *DamageField) Add(c core.Coordinate, amount float64) {
	if !f.Covers(c) {
		return
	}
	f.vals[(c.Y-f.yMin)*f.w+(c.X-f.xMin)] += amount
}

// Reset zeroes the whole field. Turret removal makes incremental subtraction
// unreliable, so accumulation always starts from a clean field.
func (f *DamageField) Reset() {
	for i := range f.vals {
		f.vals[i] = 0
	}
}

// DamageAt returns the damage a mobile unit takes per frame on the tile
func (r *Region) DamageAt(c core.Coordinate) float64 {
	return r.damage.At(c)
}

// AccumulateDamage adds the attack coverage of every turret found by the last
// scan into the given field, clipped to this region's bounds.
func (r *Region) AccumulateDamage(g *core.Grid, field *DamageField) {
	for _, turret := range r.unitsByKind[core.Turret] {
		for _, c := range g.LocationsInRange(turret.Pos, turret.AttackRange(r.stats)) {
			if r.InBounds(c) {
				field.Add(c, turret.Damage(r.stats))
			}
		}
	}
}

// recomputeDamage rebuilds a region-local field from scratch. Regions sharing
// a Defense-owned field skip this; the Defense rebuilds that field once per
// scan cycle from its de-duplicated turret set.
func (r *Region) recomputeDamage(g *core.Grid) {
	if r.shared {
		return
	}
	r.damage.Reset()
	r.AccumulateDamage(g, r.damage)
}
