package optimizer

import (
	"sort"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
)

// RankingCriteria are the request filters applied before ranking.
type RankingCriteria struct {
	MaxCost              float64
	MinProduction        float64 // tonnes/year
	RequireGridProximity bool
	GridThresholdKm      float64
}

// Rank filters candidates against the criteria and returns survivors sorted
// ascending by LCOH with dense 1-based ranks assigned. Ties on LCOH are
// broken by descending renewable score, then by original input order (the
// sort is stable). An empty result is valid, not an error.
//
// Rank never mutates its input slice; each call owns its own result.
func Rank(candidates []models.CandidateSite, crit RankingCriteria) []models.CandidateSite {
	ranked := make([]models.CandidateSite, 0, len(candidates))
	for _, c := range candidates {
		if c.LCOH > crit.MaxCost {
			continue
		}
		if c.AnnualProductionTonnes < crit.MinProduction {
			continue
		}
		if crit.RequireGridProximity && c.GridDistanceKm > crit.GridThresholdKm {
			continue
		}
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].LCOH != ranked[j].LCOH {
			return ranked[i].LCOH < ranked[j].LCOH
		}
		return ranked[i].RenewableScore > ranked[j].RenewableScore
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}
