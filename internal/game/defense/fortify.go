package defense

import (
	"github.com/tacticore/terminal-defense/internal/game/core"
	"github.com/tacticore/terminal-defense/internal/game/events"
	"github.com/tacticore/terminal-defense/internal/game/region"
)

// Fortify spends resources above the floor improving whichever region scores
// weakest under the criterion, re-scanning the board between iterations so
// every pick sees the structures placed by the previous one. Back regions
// join the candidate set once the turn threshold passes. The iteration cap
// only guards against a build heuristic that stops making progress; it is
// not part of the budget model.
func (d *Defense) Fortify(g *core.Grid, b region.Builder, criterion Criterion, resourceFloor float64) {
	d.Update(g)

	for i := 0; i < d.tuning.FortifyIterations; i++ {
		if b.Resources() <= resourceFloor {
			return
		}

		candidates := frontRegionIDs
		if b.Turn() >= d.tuning.MinTurnBackRegions {
			candidates = allRegionIDs
		}

		id, err := d.WeakestRegion(criterion, candidates)
		if err != nil {
			d.logger.Error().Err(err).Msg("fortify aborted")
			return
		}

		before := b.Resources()
		d.regions[id].Fortify(b, d.logger)
		spent := before - b.Resources()

		d.logger.Debug().
			Int("region", id).
			Stringer("criterion", criterion).
			Float64("spent", spent).
			Float64("remaining", b.Resources()).
			Msg("fortified region")
		if d.bus != nil && spent > 0 {
			d.bus.Publish(events.NewRegionFortifiedEvent(d.matchID, d.PlayerID, id, criterion.String(), spent, b.Turn()))
		}

		d.Update(g)

		// A heuristic that spends nothing will spend nothing next
		// iteration too; one probe is enough.
		if spent == 0 {
			return
		}
	}
}
