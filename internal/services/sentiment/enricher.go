package sentiment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"MemeIQ/internal/domain/models"
	"MemeIQ/internal/domain/repository"
	"MemeIQ/internal/domain/service"
	"MemeIQ/internal/services/huggingface"
	applogger "MemeIQ/pkg/logger"

	"golang.org/x/time/rate"
)

const (
	ErrNotConfigured = "HUGGINGFACE_API_KEY not configured"
	ErrUnavailable   = "Sentiment analysis unavailable"

	// unknownSymbol is what the normalizer yields when no provider names the token.
	unknownSymbol = "—"
)

type Config struct {
	Model        string
	SampleLimit  int
	CallInterval time.Duration
}

// Enricher classifies recent social posts about a symbol and tallies the labels.
type Enricher struct {
	feed       repository.SocialFeed
	classifier repository.TextClassifier
	cfg        Config
	logger     *applogger.Logger
}

var _ service.SentimentEnricher = (*Enricher)(nil)

func New(feed repository.SocialFeed, classifier repository.TextClassifier, cfg Config, l *applogger.Logger) *Enricher {
	if cfg.SampleLimit <= 0 {
		cfg.SampleLimit = 10
	}
	if cfg.Model == "" {
		cfg.Model = "ElKulako/cryptobert"
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &Enricher{feed: feed, classifier: classifier, cfg: cfg, logger: l}
}

// Enrich never fails: problems come back as Available=false with a reason.
func (e *Enricher) Enrich(ctx context.Context, symbol string) models.Sentiment {
	symbol = strings.TrimSpace(symbol)
	if e.classifier == nil || !e.classifier.Configured() || symbol == "" || symbol == unknownSymbol {
		return unavailable(ErrNotConfigured)
	}

	posts := e.posts(ctx, symbol)
	if len(posts) > e.cfg.SampleLimit {
		posts = posts[:e.cfg.SampleLimit]
	}

	// one call per interval within this sample
	pacer := rate.NewLimiter(rate.Every(e.cfg.CallInterval), 1)
	if e.cfg.CallInterval <= 0 {
		pacer = rate.NewLimiter(rate.Inf, 1)
	}

	labels := make([]string, 0, len(posts))
	for _, post := range posts {
		if err := pacer.Wait(ctx); err != nil {
			break
		}
		res, err := e.classifier.Classify(ctx, e.cfg.Model, post)
		if err != nil {
			e.logger.Warn("sentiment classification failed",
				applogger.String("provider", huggingface.Provider),
				applogger.String("model", e.cfg.Model),
				applogger.Error(err),
			)
			continue
		}
		if top := huggingface.TopLabel(res); top != "" {
			labels = append(labels, top)
		}
	}

	if len(labels) == 0 {
		return unavailable(ErrUnavailable)
	}
	return Tally(labels)
}

// posts falls back to canned sentences when the feed errors or finds nothing.
func (e *Enricher) posts(ctx context.Context, symbol string) []string {
	var posts []string
	if e.feed != nil {
		var err error
		posts, err = e.feed.SearchPosts(ctx, symbol, e.cfg.SampleLimit)
		if err != nil {
			e.logger.Warn("social feed unavailable",
				applogger.String("provider", "reddit"),
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
	}
	if len(posts) == 0 {
		return CannedPosts(symbol)
	}
	return posts
}

func CannedPosts(symbol string) []string {
	return []string{
		fmt.Sprintf("%s is looking bullish, great momentum!", symbol),
		fmt.Sprintf("Not sure about %s, volume seems low", symbol),
		fmt.Sprintf("Just bought more %s, love this project", symbol),
	}
}

// Tally turns top labels into percentages and a score in [0,100].
// Labels other than bullish/bearish/neutral count toward the total only.
func Tally(labels []string) models.Sentiment {
	var bull, bear, neutral int
	for _, l := range labels {
		switch strings.ToLower(strings.TrimSpace(l)) {
		case "bullish":
			bull++
		case "bearish":
			bear++
		case "neutral":
			neutral++
		}
	}
	total := float64(len(labels))
	if total == 0 {
		return unavailable(ErrUnavailable)
	}
	return models.Sentiment{
		Available:  true,
		Bullish:    pct(bull, total),
		Bearish:    pct(bear, total),
		Neutral:    pct(neutral, total),
		Score:      int(math.Round(float64(bull-bear)/total*50 + 50)),
		SampleSize: len(labels),
	}
}

func pct(n int, total float64) float64 {
	return math.Round(float64(n)/total*1000) / 10
}

func unavailable(reason string) models.Sentiment {
	return models.Sentiment{Score: 50, Error: &reason}
}
