package usecase

import (
	"context"
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"time"

	"MemeIQ/internal/domain/models"
	"MemeIQ/internal/domain/repository"
	"MemeIQ/internal/domain/service"
	"MemeIQ/internal/scoring"
	apimetrics "MemeIQ/internal/service/metrics"
	xhttp "MemeIQ/pkg/http"
	applogger "MemeIQ/pkg/logger"
	"MemeIQ/pkg/util"
)

const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"

	InvalidImageDataURL = "Invalid imageDataUrl format"

	// defaultRugProbability is used when the zero-shot answer has no rug label.
	defaultRugProbability = 0.25
	chartKeyPrefixLen     = 200
)

// RugRiskLabels are the zero-shot candidates for the rug-risk classifier.
var RugRiskLabels = []string{"rug pull", "legitimate", "high risk", "safe"}

var dataURLPattern = regexp.MustCompile(`^data:image/\w+;base64,(.+)$`)

type InferenceConfig struct {
	SentimentModel string
	ZeroShotModel  string
	VisionModel    string
	SentimentTTL   time.Duration
	RugRiskTTL     time.Duration
	VisionTTL      time.Duration
}

// InferenceUseCase backs the standalone sentiment, rug-risk and chart-vision endpoints.
// Successful answers are cached for a short TTL.
type InferenceUseCase struct {
	classifier repository.TextClassifier
	cache      repository.BytesCache
	metrics    repository.Metrics
	logger     *applogger.Logger
	cfg        InferenceConfig
}

var _ service.InferenceService = (*InferenceUseCase)(nil)

func NewInferenceUseCase(
	classifier repository.TextClassifier,
	cache repository.BytesCache,
	metrics repository.Metrics,
	l *applogger.Logger,
	cfg InferenceConfig,
) *InferenceUseCase {
	if l == nil {
		l = applogger.Nop()
	}
	return &InferenceUseCase{classifier: classifier, cache: cache, metrics: metrics, logger: l, cfg: cfg}
}

func (uc *InferenceUseCase) Sentiment(ctx context.Context, text string) ([]models.SentimentPrediction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, xhttp.MissingFieldError("text")
	}
	if err := uc.configured(); err != nil {
		return nil, err
	}

	key := "sentiment:" + util.HashKey(text)
	var preds []models.SentimentPrediction
	if uc.lookup(ctx, "sentiment", key, &preds) {
		return preds, nil
	}

	start := time.Now()
	labels, err := uc.classifier.Classify(ctx, uc.cfg.SentimentModel, text)
	uc.observe("inference_sentiment", start, err)
	if err != nil {
		return nil, err
	}
	preds = NormalizeSentiment(labels)
	uc.save(ctx, key, preds, uc.cfg.SentimentTTL)
	return preds, nil
}

type rugRiskResult struct {
	Data models.ZeroShotResult `json:"data"`
	Risk models.RugRisk        `json:"risk"`
}

// RugRisk classifies a token summary and derives a risk report from the rug-pull probability.
func (uc *InferenceUseCase) RugRisk(ctx context.Context, summary string) (interface{}, models.RugRisk, error) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, models.RugRisk{}, xhttp.MissingFieldError("summary")
	}
	if err := uc.configured(); err != nil {
		return nil, models.RugRisk{}, err
	}

	key := "rugrisk:" + util.HashKey(summary)
	var res rugRiskResult
	if uc.lookup(ctx, "rugrisk", key, &res) {
		return res.Data, res.Risk, nil
	}

	start := time.Now()
	zs, err := uc.classifier.ZeroShot(ctx, uc.cfg.ZeroShotModel, summary, RugRiskLabels)
	uc.observe("inference_rugrisk", start, err)
	if err != nil {
		return nil, models.RugRisk{}, err
	}

	p, ok := zs.Probability("rug", "scam")
	if !ok {
		p = defaultRugProbability
	}
	res = rugRiskResult{
		Data: zs,
		Risk: scoring.RugRiskFromScore(int(math.Round(p*100)), models.Metrics{}),
	}
	uc.save(ctx, key, res, uc.cfg.RugRiskTTL)
	return res.Data, res.Risk, nil
}

// ChartVision runs object detection over a base64 chart screenshot.
func (uc *InferenceUseCase) ChartVision(ctx context.Context, imageDataURL string) (interface{}, error) {
	if strings.TrimSpace(imageDataURL) == "" {
		return nil, xhttp.MissingFieldError("imageDataUrl")
	}
	if err := uc.configured(); err != nil {
		return nil, err
	}
	match := dataURLPattern.FindStringSubmatch(imageDataURL)
	if match == nil {
		return nil, xhttp.BadRequestError(InvalidImageDataURL)
	}

	key := "chart:" + util.HashKey(util.Truncate(imageDataURL, chartKeyPrefixLen))
	var data interface{}
	if uc.lookup(ctx, "chart_vision", key, &data) {
		return data, nil
	}

	start := time.Now()
	data, err := uc.classifier.Infer(ctx, uc.cfg.VisionModel, match[1])
	uc.observe("inference_vision", start, err)
	if err != nil {
		return nil, err
	}
	uc.save(ctx, key, data, uc.cfg.VisionTTL)
	return data, nil
}

// NormalizeSentiment maps model labels onto positive/neutral/negative (including the
// LABEL_0..2 aliases) and rescales the scores to sum to 1 when any is non-zero.
func NormalizeSentiment(labels []models.ClassLabel) []models.SentimentPrediction {
	scores := map[string]float64{}
	for _, l := range labels {
		switch strings.ToLower(strings.TrimSpace(l.Label)) {
		case "positive", "label_2":
			scores[LabelPositive] = l.Score
		case "neutral", "label_1":
			scores[LabelNeutral] = l.Score
		case "negative", "label_0":
			scores[LabelNegative] = l.Score
		}
	}
	total := scores[LabelPositive] + scores[LabelNeutral] + scores[LabelNegative]
	out := make([]models.SentimentPrediction, 0, 3)
	for _, name := range []string{LabelPositive, LabelNeutral, LabelNegative} {
		s := scores[name]
		if total > 0 {
			s /= total
		}
		out = append(out, models.SentimentPrediction{Label: name, Score: s})
	}
	return out
}

func (uc *InferenceUseCase) configured() error {
	if uc.classifier == nil || !uc.classifier.Configured() {
		return xhttp.ConfigError("HUGGINGFACE_API_KEY")
	}
	return nil
}

func (uc *InferenceUseCase) lookup(ctx context.Context, endpoint, key string, dest interface{}) bool {
	if uc.cache == nil {
		return false
	}
	b, ok, err := uc.cache.GetBytes(ctx, key)
	if err != nil {
		uc.logger.Warn("inference cache read failed", applogger.String("key", key), applogger.Error(err))
		apimetrics.ObserveCacheLookup(endpoint, apimetrics.CacheError)
		return false
	}
	if !ok {
		apimetrics.ObserveCacheLookup(endpoint, apimetrics.CacheMiss)
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		apimetrics.ObserveCacheLookup(endpoint, apimetrics.CacheError)
		return false
	}
	apimetrics.ObserveCacheLookup(endpoint, apimetrics.CacheHit)
	return true
}

func (uc *InferenceUseCase) save(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if uc.cache == nil || ttl <= 0 {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := uc.cache.SetBytes(ctx, key, b, ttl); err != nil {
		uc.logger.Warn("inference cache write failed", applogger.String("key", key), applogger.Error(err))
	}
}

func (uc *InferenceUseCase) observe(op string, start time.Time, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordLatency(op, time.Since(start).Seconds())
	if err != nil {
		uc.metrics.RecordError(op)
	}
}
