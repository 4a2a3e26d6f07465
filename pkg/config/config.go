package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"3000"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
		BodyLimit       string        `yaml:"body_limit" default:"15M"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
		// Digest batches repeated warn/error lines onto the events bus.
		Digest struct {
			Enabled   bool          `yaml:"enabled"`
			Interval  time.Duration `yaml:"interval" default:"30s"`
			MaxUnique int           `yaml:"max_unique" default:"200"`
			Topic     string        `yaml:"topic" default:"memeiq.log-digest"`
		} `yaml:"digest"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Providers struct {
		Birdeye struct {
			APIKey           string        `yaml:"api_key"`
			BaseURL          string        `yaml:"base_url" default:"https://public-api.birdeye.so"`
			Chain            string        `yaml:"chain" default:"solana"`
			Timeout          time.Duration `yaml:"timeout" default:"15s"`
			OverviewAttempts int           `yaml:"overview_attempts" default:"2"`
			RetryInterval    time.Duration `yaml:"retry_interval" default:"750ms"`
			OHLCVWindow      time.Duration `yaml:"ohlcv_window" default:"168h"`
		} `yaml:"birdeye"`
		HuggingFace struct {
			APIKey         string        `yaml:"api_key"`
			BaseURL        string        `yaml:"base_url" default:"https://api-inference.huggingface.co/models"`
			Timeout        time.Duration `yaml:"timeout" default:"20s"`
			CallInterval   time.Duration `yaml:"call_interval" default:"100ms"`
			SampleLimit    int           `yaml:"sample_limit" default:"10"`
			CryptoModel    string        `yaml:"crypto_model" default:"ElKulako/cryptobert"`
			SentimentModel string        `yaml:"sentiment_model" default:"cardiffnlp/twitter-roberta-base-sentiment-latest"`
			ZeroShotModel  string        `yaml:"zero_shot_model" default:"facebook/bart-large-mnli"`
			VisionModel    string        `yaml:"vision_model" default:"facebook/detr-resnet-50"`
		} `yaml:"huggingface"`
		Reddit struct {
			BaseURL   string        `yaml:"base_url" default:"https://www.reddit.com"`
			Subreddit string        `yaml:"subreddit" default:"CryptoMoonShots"`
			UserAgent string        `yaml:"user_agent" default:"Mozilla/5.0 (compatible; MemeCoinAnalyzer/1.0)"`
			Timeout   time.Duration `yaml:"timeout" default:"10s"`
		} `yaml:"reddit"`
		Helius struct {
			APIKey   string        `yaml:"api_key"`
			BaseURL  string        `yaml:"base_url" default:"https://api.helius.xyz"`
			TxLimit  int           `yaml:"tx_limit" default:"50"`
			Lookback time.Duration `yaml:"lookback" default:"168h"`
			Timeout  time.Duration `yaml:"timeout" default:"15s"`
		} `yaml:"helius"`
	} `yaml:"providers"`
	Breaker struct {
		MaxRequests         uint32        `yaml:"max_requests" default:"1"`
		Interval            time.Duration `yaml:"interval" default:"60s"`
		Timeout             time.Duration `yaml:"timeout" default:"30s"`
		ConsecutiveFailures uint32        `yaml:"consecutive_failures" default:"5"`
	} `yaml:"breaker"`
	Cache struct {
		AnalyzeTTL   time.Duration `yaml:"analyze_ttl" default:"0s"`
		SentimentTTL time.Duration `yaml:"sentiment_ttl" default:"60s"`
		RugRiskTTL   time.Duration `yaml:"rugrisk_ttl" default:"120s"`
		VisionTTL    time.Duration `yaml:"vision_ttl" default:"120s"`
		Redis        struct {
			Enabled   bool   `yaml:"enabled"`
			Addr      string `yaml:"addr"`
			Password  string `yaml:"password"`
			DB        int    `yaml:"db"`
			KeyPrefix string `yaml:"key_prefix" default:"memeiq:"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	RateLimit struct {
		Enabled bool    `yaml:"enabled" default:"true"`
		RPS     float64 `yaml:"rps" default:"2"`
		Burst   int     `yaml:"burst" default:"5"`
	} `yaml:"rate_limit"`
	Events struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"memeiq.analysis"`
		ClientID     string        `yaml:"client_id" default:"memeiq"`
		RequiredAcks int           `yaml:"required_acks" default:"1"`
		Compression  string        `yaml:"compression" default:"snappy"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"5s"`
		BatchTimeout time.Duration `yaml:"batch_timeout" default:"100ms"`
		Async        bool          `yaml:"async" default:"true"`
	} `yaml:"events"`
	KeepWarm struct {
		Interval time.Duration `yaml:"interval" default:"10m"`
	} `yaml:"keep_warm"`
	Debug struct {
		IncludeUpstreamPayload bool `yaml:"include_upstream_payload"`
	} `yaml:"debug"`
}

// Default returns a configuration populated only from struct defaults.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Load reads and parses a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// An empty path skips the file and starts from defaults.
func LoadWithEnv(path string) (*Config, error) {
	var c *Config
	if path == "" {
		c = Default()
	} else {
		var err error
		c, err = Load(path)
		if err != nil {
			return nil, err
		}
	}

	c.ApplyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides settings from the given lookup (usually os.Getenv).
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("APP_ENV"); v != "" {
		c.Environment = v
	}
	if v := getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("BIRDEYE_API_KEY"); v != "" {
		c.Providers.Birdeye.APIKey = v
	}
	if v := getenv("HUGGINGFACE_API_KEY"); v != "" {
		c.Providers.HuggingFace.APIKey = v
	} else if v := getenv("HF_API_KEY"); v != "" {
		c.Providers.HuggingFace.APIKey = v
	}
	if v := getenv("HELIUS_API_KEY"); v != "" {
		c.Providers.Helius.APIKey = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Enabled = true
		c.Events.Brokers = strings.Split(v, ",")
	}
	if v := getenv("KAFKA_TOPIC"); v != "" {
		c.Events.Topic = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return errors.New("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level is invalid: %q", c.Log.Level)
	}
	if c.Providers.Birdeye.OverviewAttempts < 1 {
		return errors.New("providers.birdeye.overview_attempts must be >= 1")
	}
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return errors.New("events.brokers is required when events are enabled")
	}
	if c.Log.Digest.Enabled && !c.Events.Enabled {
		return errors.New("log.digest requires events to be enabled")
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Addr == "" {
		return errors.New("cache.redis.addr is required when redis is enabled")
	}
	return nil
}

// Credential names a provider key and whether it is set.
type Credential struct {
	Env        string
	Configured bool
}

// Credentials lists provider keys in startup-report order.
func (c *Config) Credentials() []Credential {
	return []Credential{
		{Env: "BIRDEYE_API_KEY", Configured: c.Providers.Birdeye.APIKey != ""},
		{Env: "HUGGINGFACE_API_KEY", Configured: c.Providers.HuggingFace.APIKey != ""},
		{Env: "HELIUS_API_KEY", Configured: c.Providers.Helius.APIKey != ""},
	}
}
