package reddit

import (
	"context"
	"strconv"
	"strings"
	"time"

	"MemeIQ/internal/domain/repository"
	"MemeIQ/internal/services"
	xhttp "MemeIQ/pkg/http"
	"MemeIQ/pkg/util"
)

const Provider = "reddit"

const (
	maxPostLen = 128
	minPostLen = 10
)

type Config struct {
	BaseURL   string
	Subreddit string
	UserAgent string
	Timeout   time.Duration
}

// Client searches one subreddit for recent posts.
type Client struct {
	*services.HTTPServiceBase
	cfg Config
}

var _ repository.SocialFeed = (*Client)(nil)

func New(cfg Config, opts ...services.BaseOption) *Client {
	if cfg.Subreddit == "" {
		cfg.Subreddit = "CryptoMoonShots"
	}
	// Reddit rejects requests without a descriptive User-Agent.
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout), xhttp.WithUserAgent(cfg.UserAgent))
	opts = append([]services.BaseOption{services.WithClient(client)}, opts...)
	return &Client{
		HTTPServiceBase: services.NewHTTPServiceBase(Provider, cfg.BaseURL, cfg.Timeout, opts...),
		cfg:             cfg,
	}
}

type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title    string `json:"title"`
				Selftext string `json:"selftext"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// SearchPosts returns up to limit post texts (title and body, cut to 128 chars)
// newest first. Posts of 10 characters or fewer are skipped.
func (c *Client) SearchPosts(ctx context.Context, symbol string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	var l listing
	err := c.GetJSON(ctx, "search", &xhttp.RequestOptions{
		URL: c.URL("/r/" + c.cfg.Subreddit + "/search.json"),
		QueryParams: map[string][]string{
			"q":     {symbol},
			"sort":  {"new"},
			"limit": {strconv.Itoa(limit)},
		},
	}, &l)
	if err != nil {
		return nil, err
	}

	posts := make([]string, 0, len(l.Data.Children))
	for _, ch := range l.Data.Children {
		text := strings.TrimSpace(util.Truncate(ch.Data.Title+" "+ch.Data.Selftext, maxPostLen))
		if len(text) > minPostLen {
			posts = append(posts, text)
		}
	}
	return posts, nil
}
