package scoring

import (
	"fmt"
	"math"

	"MemeIQ/internal/domain/models"
)

// tailWeights are the relative shares of holders 2..10.
var tailWeights = []float64{0.19, 0.13, 0.10, 0.09, 0.08, 0.06, 0.05, 0.04, 0.02}

// EstimatedHolders spreads the top-10 share over ten synthetic ranks for display
// when no real holder list exists. The result is flagged non-authoritative.
func EstimatedHolders(m models.Metrics) *models.EstimatedHolders {
	top10 := m.Top10Pct
	if top10 <= 0 {
		top10 = 30
	}
	top10 = math.Max(1, math.Min(100, top10))

	top1 := 0.21
	switch m.ConcentrationLabel {
	case models.ConcentrationExtreme:
		top1 = 0.36
	case models.ConcentrationModerate:
		top1 = 0.27
	}

	weights := append([]float64{top1}, tailWeights...)
	sum := 0.0
	for _, w := range weights {
		sum += w
	}

	holders := make([]models.EstimatedHolder, len(weights))
	for i, w := range weights {
		holders[i] = models.EstimatedHolder{Rank: i + 1, Pct: round2(w / sum * top10)}
	}

	return &models.EstimatedHolders{
		Authoritative: false,
		Basis:         fmt.Sprintf("estimated from a %s top-10 share (%s concentration)", Pct(round1(top10)), m.ConcentrationLabel),
		Holders:       holders,
	}
}
