// Package config loads service configuration from an optional YAML file,
// environment variables and defaults, in ascending precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mcuadros/go-defaults"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// PAGELENS_SERVER_LISTEN maps to server.listen.
const envPrefix = "PAGELENS_"

// Config holds all service configuration.
type Config struct {
	// Server holds HTTP server settings
	Server Server `koanf:"server" json:"server"`
	// Fetch holds page fetcher settings
	Fetch Fetch `koanf:"fetch" json:"fetch"`
	// Analyzer holds signal extraction settings
	Analyzer Analyzer `koanf:"analyzer" json:"analyzer"`
	// Rank holds rank lookup adapter settings
	Rank Rank `koanf:"rank" json:"rank"`
	// Storage holds persistence settings
	Storage Storage `koanf:"storage" json:"storage"`
	// Notify holds audit alert webhook settings
	Notify Notify `koanf:"notify" json:"notify"`
}

// Server holds HTTP server settings.
type Server struct {
	// Listen is the address the API server binds to
	Listen string `koanf:"listen" json:"listen" default:":8080"`
	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout time.Duration `koanf:"readtimeout" json:"readtimeout" default:"30s"`
	// WriteTimeout is the maximum duration for writing a response
	WriteTimeout time.Duration `koanf:"writetimeout" json:"writetimeout" default:"30s"`
	// ShutdownGracePeriod bounds graceful shutdown on SIGTERM
	ShutdownGracePeriod time.Duration `koanf:"shutdowngraceperiod" json:"shutdowngraceperiod" default:"30s"`
	// MaxBodySize caps request body size in bytes
	MaxBodySize int64 `koanf:"maxbodysize" json:"maxbodysize" default:"102400"`
	// Debug enables debug logging
	Debug bool `koanf:"debug" json:"debug"`
	// Pretty enables human readable logging output
	Pretty bool `koanf:"pretty" json:"pretty"`
}

// Fetch holds page fetcher settings.
type Fetch struct {
	// Timeout bounds a single page fetch end to end
	Timeout time.Duration `koanf:"timeout" json:"timeout" default:"15s"`
	// UserAgent identifies pagelens traffic to fetched sites
	UserAgent string `koanf:"useragent" json:"useragent" default:"pagelens/1.0 (+https://github.com/pagelens/pagelens)"`
}

// Analyzer holds signal extraction settings.
type Analyzer struct {
	// KeywordMinLength is the minimum rune length for a qualifying keyword
	KeywordMinLength int `koanf:"keywordminlength" json:"keywordminlength" default:"3"`
	// KeywordLimit caps the ranked keyword list
	KeywordLimit int `koanf:"keywordlimit" json:"keywordlimit" default:"20"`
	// LargeImageThreshold is the declared pixel dimension above which an image counts as large
	LargeImageThreshold int `koanf:"largeimagethreshold" json:"largeimagethreshold" default:"1200"`
	// StopWords replaces the built-in stop-word list when set
	StopWords []string `koanf:"stopwords" json:"stopwords"`
}

// Rank holds rank lookup adapter settings.
type Rank struct {
	// APIKey is the search API credential
	APIKey string `koanf:"apikey" json:"apikey" sensitive:"true"`
	// Endpoint is the search API endpoint
	Endpoint string `koanf:"endpoint" json:"endpoint" default:"https://google.serper.dev/search"`
	// RequestTimeout bounds a single search API call
	RequestTimeout time.Duration `koanf:"requesttimeout" json:"requesttimeout" default:"10s"`
	// RatePerSecond paces outbound search API calls
	RatePerSecond float64 `koanf:"ratepersecond" json:"ratepersecond" default:"1"`
	// RateBurst is the outbound rate limiter burst size
	RateBurst int `koanf:"rateburst" json:"rateburst" default:"3"`
}

// Storage holds persistence settings.
type Storage struct {
	// Path is the SQLite database file, ":memory:" for ephemeral storage
	Path string `koanf:"path" json:"path" default:"pagelens.db"`
}

// Notify holds audit alert webhook settings.
type Notify struct {
	// WebhookURL receives low-score audit alerts, empty disables alerts
	WebhookURL string `koanf:"webhookurl" json:"webhookurl"`
	// ScoreThreshold triggers an alert when an audit scores below it
	ScoreThreshold int `koanf:"scorethreshold" json:"scorethreshold" default:"50"`
	// RequestTimeout bounds a single webhook delivery
	RequestTimeout time.Duration `koanf:"requesttimeout" json:"requesttimeout" default:"10s"`
}

// Load builds the configuration from defaults, then the YAML file at path
// if it exists, then PAGELENS_* environment variables.
func Load(path *string) (*Config, error) {
	cfg := &Config{}
	defaults.SetDefaults(cfg)

	k := koanf.New(".")

	if path != nil && *path != "" {
		if _, err := os.Stat(*path); err == nil {
			if err := k.Load(file.Provider(*path), yaml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, ErrConfigUnmarshal
	}

	return cfg, nil
}
