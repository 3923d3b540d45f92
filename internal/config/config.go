// Package config loads and validates service configuration from a YAML file
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultServerPort      = 8060
	defaultServerTimeout   = 30
	defaultDatabasePort    = 5432
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5
	defaultRedisAddress    = "localhost:6379"

	defaultProviderBaseURL = "https://api.dataforseo.com"
	defaultMaxCrawlPages   = 100
	defaultKeywordLimit    = 1000

	defaultPageSpeedBaseURL = "https://www.googleapis.com/pagespeedonline/v5"
	defaultSlidesBaseURL    = "https://slides.googleapis.com/v1"
	defaultDriveBaseURL     = "https://www.googleapis.com/drive/v3"

	defaultPollInterval = 10 * time.Second
	defaultPollTimeout  = 30 * time.Minute
)

type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Provider  ProviderConfig  `yaml:"provider"`
	PageSpeed PageSpeedConfig `yaml:"pagespeed"`
	Slides    SlidesConfig    `yaml:"slides"`
	Poller    PollerConfig    `yaml:"poller"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"dbname"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// RedisConfig holds Redis connection settings for event publishing.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Enabled  bool   `yaml:"enabled"`
}

// ProviderConfig holds credentials and limits for the SEO data provider.
type ProviderConfig struct {
	BaseURL       string `yaml:"base_url"`
	Login         string `yaml:"login"`
	Password      string `yaml:"password"`
	MaxCrawlPages int    `yaml:"max_crawl_pages"`
	KeywordLimit  int    `yaml:"keyword_limit"`
}

type PageSpeedConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// SlidesConfig holds settings for the presentation rendering target and the
// image store used to host deck images.
type SlidesConfig struct {
	BaseURL      string `yaml:"base_url"`
	DriveBaseURL string `yaml:"drive_base_url"`
	AccessToken  string `yaml:"access_token"`
}

// PollerConfig controls the crawl-completion watcher.
type PollerConfig struct {
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
	Enabled  bool          `yaml:"enabled"`
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.Port <= 0 {
		return errors.New("database.port is required and must be positive")
	}
	if c.Database.User == "" {
		return errors.New("database.user is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.Provider.Login == "" || c.Provider.Password == "" {
		return errors.New("provider.login and provider.password are required")
	}
	return nil
}

// Load reads configuration from path (if it exists), applies environment
// overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the -config flag
	if err == nil {
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	applyEnv(cfg)
	setDefaults(cfg)

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("invalid config: %w", validateErr)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	envBool("APP_DEBUG", &cfg.Debug)
	envString("SERVER_HOST", &cfg.Server.Host)
	envInt("SERVER_PORT", &cfg.Server.Port)
	envStrings("CORS_ORIGINS", &cfg.Server.CORSOrigins)
	envString("DB_HOST", &cfg.Database.Host)
	envInt("DB_PORT", &cfg.Database.Port)
	envString("DB_USER", &cfg.Database.User)
	envString("DB_PASSWORD", &cfg.Database.Password)
	envString("DB_NAME", &cfg.Database.DBName)
	envString("DB_SSLMODE", &cfg.Database.SSLMode)
	envString("REDIS_ADDRESS", &cfg.Redis.Address)
	envString("REDIS_PASSWORD", &cfg.Redis.Password)
	envInt("REDIS_DB", &cfg.Redis.DB)
	envBool("REDIS_EVENTS_ENABLED", &cfg.Redis.Enabled)
	envString("PROVIDER_BASE_URL", &cfg.Provider.BaseURL)
	envString("PROVIDER_LOGIN", &cfg.Provider.Login)
	envString("PROVIDER_PASSWORD", &cfg.Provider.Password)
	envInt("PROVIDER_MAX_CRAWL_PAGES", &cfg.Provider.MaxCrawlPages)
	envInt("PROVIDER_KEYWORD_LIMIT", &cfg.Provider.KeywordLimit)
	envString("PAGESPEED_BASE_URL", &cfg.PageSpeed.BaseURL)
	envString("PAGESPEED_API_KEY", &cfg.PageSpeed.APIKey)
	envString("SLIDES_BASE_URL", &cfg.Slides.BaseURL)
	envString("DRIVE_BASE_URL", &cfg.Slides.DriveBaseURL)
	envString("SLIDES_ACCESS_TOKEN", &cfg.Slides.AccessToken)
	envBool("POLLER_ENABLED", &cfg.Poller.Enabled)
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout * time.Second
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultDatabasePort
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = defaultMaxOpenConns
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = defaultMaxIdleConns
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = defaultConnMaxLifetime * time.Minute
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = defaultProviderBaseURL
	}
	if cfg.Provider.MaxCrawlPages == 0 {
		cfg.Provider.MaxCrawlPages = defaultMaxCrawlPages
	}
	if cfg.Provider.KeywordLimit == 0 {
		cfg.Provider.KeywordLimit = defaultKeywordLimit
	}
	if cfg.PageSpeed.BaseURL == "" {
		cfg.PageSpeed.BaseURL = defaultPageSpeedBaseURL
	}
	if cfg.Slides.BaseURL == "" {
		cfg.Slides.BaseURL = defaultSlidesBaseURL
	}
	if cfg.Slides.DriveBaseURL == "" {
		cfg.Slides.DriveBaseURL = defaultDriveBaseURL
	}
	if cfg.Poller.Interval == 0 {
		cfg.Poller.Interval = defaultPollInterval
	}
	if cfg.Poller.Timeout == 0 {
		cfg.Poller.Timeout = defaultPollTimeout
	}
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envStrings(key string, dst *[]string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			*dst = out
		}
	}
}
