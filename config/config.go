package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

const (
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultRateLimit      = 100 // per minute, per IP, on public routes
)

// New reads the JSON config at loc, then applies any PORTAL_* environment
// overrides (a .env file next to the binary is loaded first if present).
func New(loc string) (*Config, error) {
	var c Config

	f, err := os.Open(loc)
	if err != nil {
		log.Println("Config error", err)
		return nil, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&c); err != nil {
		log.Println("Config error", err)
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("Config error", err)
	}

	if err := env.ParseWithOptions(&c, env.Options{Prefix: "PORTAL_"}); err != nil {
		log.Println("Config error", err)
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

type Config struct {
	Host string `json:"host" env:"HOST"`
	Port string `json:"port" env:"PORT"`

	// Domain is used for the profile cookie.
	Domain  string `json:"domain" env:"DOMAIN"`
	Sandbox bool   `json:"sandbox" env:"SANDBOX"`

	APIBaseURL string `json:"apiBaseURL" env:"API_BASE_URL"`
	// APITimeout is in seconds, 0 waits for the transport.
	APITimeout int `json:"apiTimeout" env:"API_TIMEOUT"`

	DBPath string `json:"dbPath" env:"DB_PATH"`
	DBName string `json:"dbName" env:"DB_NAME"`

	SearchDebounce  int      `json:"searchDebounce" env:"SEARCH_DEBOUNCE"` // In milliseconds
	PublicRateLimit int      `json:"publicRateLimit" env:"PUBLIC_RATE_LIMIT"`
	AllowedOrigins  []string `json:"allowedOrigins" env:"ALLOWED_ORIGINS" envSeparator:","`

	Bucket struct {
		Referral    string `json:"referral"`
		Shortlist   string `json:"shortlist"`
		Credentials string `json:"credentials"`
	} `json:"bucket"`
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		log.Println("Config error: apiBaseURL is required")
		return ErrInvalidConfig
	}
	c.APIBaseURL = strings.TrimSuffix(c.APIBaseURL, "/")

	if c.Bucket.Referral == "" {
		c.Bucket.Referral = "referral"
	}
	if c.Bucket.Shortlist == "" {
		c.Bucket.Shortlist = "shortlist"
	}
	if c.Bucket.Credentials == "" {
		c.Bucket.Credentials = "credentials"
	}
	if c.DBName == "" {
		c.DBName = "portal"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	return nil
}

func (c *Config) Debounce() time.Duration {
	if c.SearchDebounce <= 0 {
		return DefaultSearchDebounce
	}
	return time.Duration(c.SearchDebounce) * time.Millisecond
}

func (c *Config) RateLimit() int {
	if c.PublicRateLimit <= 0 {
		return DefaultRateLimit
	}
	return c.PublicRateLimit
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.APITimeout) * time.Second
}

func (c *Config) Buckets() []string {
	return []string{c.Bucket.Referral, c.Bucket.Shortlist, c.Bucket.Credentials}
}
