package sentiment

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"MemeIQ/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	posts []string
	err   error
}

func (f fakeFeed) SearchPosts(context.Context, string, int) ([]string, error) {
	return f.posts, f.err
}

type fakeClassifier struct {
	mu         sync.Mutex
	configured bool
	seen       []string
	label      func(text string) (string, error)
}

func (f *fakeClassifier) Configured() bool { return f.configured }

func (f *fakeClassifier) Classify(_ context.Context, _, text string) ([]models.ClassLabel, error) {
	f.mu.Lock()
	f.seen = append(f.seen, text)
	f.mu.Unlock()
	l, err := f.label(text)
	if err != nil {
		return nil, err
	}
	return []models.ClassLabel{{Label: "Other", Score: 0.1}, {Label: l, Score: 0.9}}, nil
}

func (f *fakeClassifier) ZeroShot(context.Context, string, string, []string) (models.ZeroShotResult, error) {
	return models.ZeroShotResult{}, nil
}

func (f *fakeClassifier) Infer(context.Context, string, interface{}) (interface{}, error) {
	return nil, nil
}

func TestTally(t *testing.T) {
	s := Tally([]string{"Bullish", "bullish", "Bearish", "Neutral"})
	assert.True(t, s.Available)
	assert.Equal(t, 50.0, s.Bullish)
	assert.Equal(t, 25.0, s.Bearish)
	assert.Equal(t, 25.0, s.Neutral)
	assert.Equal(t, 63, s.Score) // round(1/4*50+50) = 62.5 -> 63
	assert.Equal(t, 4, s.SampleSize)
	assert.Nil(t, s.Error)

	s = Tally([]string{"Bullish", "Bearish", "Bearish"})
	assert.Equal(t, 33.3, s.Bullish)
	assert.Equal(t, 66.7, s.Bearish)
	assert.Equal(t, 33, s.Score)
}

func TestEnrichNotConfigured(t *testing.T) {
	e := New(fakeFeed{}, &fakeClassifier{}, Config{}, nil)
	s := e.Enrich(context.Background(), "BONK")
	assert.False(t, s.Available)
	require.NotNil(t, s.Error)
	assert.Equal(t, ErrNotConfigured, *s.Error)
	assert.Equal(t, 50, s.Score)
}

func TestEnrichUnknownSymbol(t *testing.T) {
	c := &fakeClassifier{configured: true}
	s := New(fakeFeed{}, c, Config{}, nil).Enrich(context.Background(), "—")
	assert.False(t, s.Available)
	assert.Empty(t, c.seen)
}

func TestEnrichFallsBackToCannedPosts(t *testing.T) {
	c := &fakeClassifier{configured: true, label: func(text string) (string, error) {
		if strings.Contains(text, "bullish") {
			return "Bullish", nil
		}
		return "Neutral", nil
	}}
	e := New(fakeFeed{err: errors.New("blocked")}, c, Config{}, nil)

	s := e.Enrich(context.Background(), "BONK")
	assert.True(t, s.Available)
	assert.Equal(t, CannedPosts("BONK"), c.seen)
	assert.Equal(t, 3, s.SampleSize)
	assert.Equal(t, 67, s.Score)
}

func TestEnrichRespectsSampleLimit(t *testing.T) {
	posts := make([]string, 15)
	for i := range posts {
		posts[i] = "BONK post number that is long enough"
	}
	c := &fakeClassifier{configured: true, label: func(string) (string, error) { return "Bearish", nil }}
	s := New(fakeFeed{posts: posts}, c, Config{SampleLimit: 10}, nil).Enrich(context.Background(), "BONK")
	assert.Len(t, c.seen, 10)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 100.0, s.Bearish)
}

func TestEnrichAllCallsFail(t *testing.T) {
	c := &fakeClassifier{configured: true, label: func(string) (string, error) { return "", errors.New("503") }}
	s := New(fakeFeed{posts: []string{"some BONK chatter here"}}, c, Config{}, nil).Enrich(context.Background(), "BONK")
	assert.False(t, s.Available)
	require.NotNil(t, s.Error)
	assert.Equal(t, ErrUnavailable, *s.Error)
}
