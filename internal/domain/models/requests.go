package models

import "strings"

// Requests for the HTTP endpoints. Defined in domain so the CLI can reuse them.

type AnalyzeRequest struct {
	Address string `query:"address" json:"address" validate:"required"`
}

func (r *AnalyzeRequest) Normalize() { r.Address = strings.TrimSpace(r.Address) }

type SentimentRequest struct {
	Text string `json:"text" validate:"required"`
}

func (r *SentimentRequest) Normalize() { r.Text = strings.TrimSpace(r.Text) }

type RugRiskRequest struct {
	Summary string `json:"summary" validate:"required"`
}

func (r *RugRiskRequest) Normalize() { r.Summary = strings.TrimSpace(r.Summary) }

type ChartVisionRequest struct {
	ImageDataURL string `json:"imageDataUrl" validate:"required"`
}

// Responses.

type SentimentPrediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ZeroShotResult is the bart-large-mnli response shape.
type ZeroShotResult struct {
	Sequence string    `json:"sequence,omitempty"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// Probability returns the score for the first label containing any of the needles.
func (z ZeroShotResult) Probability(needles ...string) (float64, bool) {
	for i, l := range z.Labels {
		l = strings.ToLower(l)
		for _, n := range needles {
			if strings.Contains(l, n) && i < len(z.Scores) {
				return z.Scores[i], true
			}
		}
	}
	return 0, false
}

// ClassLabel is one label/score pair from a text classifier.
type ClassLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AnalysisEvent is published for every successful analysis when events are enabled.
type AnalysisEvent struct {
	Address        string         `json:"address"`
	Symbol         string         `json:"symbol"`
	Overall        int            `json:"overall"`
	Recommendation Recommendation `json:"recommendation"`
	Scores         Scores         `json:"scores"`
	AnalyzedAt     int64          `json:"analyzedAt"`
}
