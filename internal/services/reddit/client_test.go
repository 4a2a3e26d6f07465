package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPosts(t *testing.T) {
	long := strings.Repeat("x", 300)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/CryptoMoonShots/search.json", r.URL.Path)
		assert.Equal(t, "BONK", r.URL.Query().Get("q"))
		assert.Equal(t, "new", r.URL.Query().Get("sort"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "ua/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"children":[
			{"data":{"title":"BONK to the moon","selftext":"huge volume today"}},
			{"data":{"title":"hi","selftext":""}},
			{"data":{"title":"` + long + `"}}
		]}}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, UserAgent: "ua/1.0", Timeout: time.Second})
	posts, err := c.SearchPosts(context.Background(), "BONK", 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "BONK to the moon huge volume today", posts[0])
	assert.Len(t, posts[1], 128)
}

func TestSearchPostsNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>too many requests</html>"))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Timeout: time.Second})
	posts, err := c.SearchPosts(context.Background(), "BONK", 10)
	assert.Error(t, err)
	assert.Empty(t, posts)
}
