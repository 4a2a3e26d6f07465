package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"MemeIQ/internal/domain/models"
	"MemeIQ/internal/domain/repository"
	"MemeIQ/internal/services"
)

const Provider = "huggingface"

// ErrNotConfigured is returned by every call when no API key is set.
var ErrNotConfigured = errors.New("HUGGINGFACE_API_KEY not configured")

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client posts {inputs, parameters} to hosted inference models with Bearer auth.
type Client struct {
	*services.HTTPServiceBase
	apiKey string
}

var _ repository.TextClassifier = (*Client)(nil)

func New(cfg Config, opts ...services.BaseOption) *Client {
	return &Client{
		HTTPServiceBase: services.NewHTTPServiceBase(Provider, cfg.BaseURL, cfg.Timeout, opts...),
		apiKey:          cfg.APIKey,
	}
}

func (c *Client) Configured() bool { return c.apiKey != "" }

type request struct {
	Inputs     interface{}            `json:"inputs"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// Classify runs a text-classification model. Models answer either [[{label,score}]]
// or [{label,score}]; both come back as the flat label list.
func (c *Client) Classify(ctx context.Context, model, text string) ([]models.ClassLabel, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "classify", model, request{Inputs: text}, &raw); err != nil {
		return nil, err
	}

	var nested [][]models.ClassLabel
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}
	var flat []models.ClassLabel
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}
	return flat, nil
}

// ZeroShot scores text against candidate labels. The legacy {sequence, labels, scores}
// shape and the newer [{label, score}] list are both accepted.
func (c *Client) ZeroShot(ctx context.Context, model, text string, labels []string) (models.ZeroShotResult, error) {
	var raw json.RawMessage
	body := request{
		Inputs:     text,
		Parameters: map[string]interface{}{"candidate_labels": labels},
	}
	if err := c.post(ctx, "zero_shot", model, body, &raw); err != nil {
		return models.ZeroShotResult{}, err
	}

	var res models.ZeroShotResult
	if err := json.Unmarshal(raw, &res); err == nil && len(res.Labels) > 0 {
		return res, nil
	}
	var list []models.ClassLabel
	if err := json.Unmarshal(raw, &list); err != nil {
		return models.ZeroShotResult{}, fmt.Errorf("decode zero-shot: %w", err)
	}
	res = models.ZeroShotResult{Sequence: text}
	for _, l := range list {
		res.Labels = append(res.Labels, l.Label)
		res.Scores = append(res.Scores, l.Score)
	}
	return res, nil
}

// Infer posts arbitrary inputs and returns the decoded JSON untouched.
func (c *Client) Infer(ctx context.Context, model string, inputs interface{}) (interface{}, error) {
	var out interface{}
	if err := c.post(ctx, "infer", model, request{Inputs: inputs}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, resource, model string, body request, dest interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	return c.PostJSON(ctx, resource, "/"+strings.TrimLeft(model, "/"),
		map[string]string{"Authorization": "Bearer " + c.apiKey},
		body, dest)
}

// TopLabel returns the highest-scoring label, or "" for an empty list.
func TopLabel(labels []models.ClassLabel) string {
	best, top := -1.0, ""
	for _, l := range labels {
		if l.Score > best {
			best, top = l.Score, l.Label
		}
	}
	return top
}
