package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

const validConfig = `
debug: true
server:
  host: "0.0.0.0"
  port: 8060
database:
  host: "localhost"
  port: 5432
  user: "seo"
  password: "secret"
  dbname: "seo_audit"
provider:
  login: "api-user"
  password: "api-pass"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if !cfg.Debug {
		t.Error("Load() cfg.Debug = false, want true")
	}
	if cfg.Server.Port != 8060 {
		t.Errorf("Load() cfg.Server.Port = %v, want 8060", cfg.Server.Port)
	}
	if cfg.Database.DBName != "seo_audit" {
		t.Errorf("Load() cfg.Database.DBName = %v, want seo_audit", cfg.Database.DBName)
	}
	if cfg.Provider.Login != "api-user" {
		t.Errorf("Load() cfg.Provider.Login = %v, want api-user", cfg.Provider.Login)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("ReadTimeout = %v, want 30s", cfg.Server.ReadTimeout)
	}
	if cfg.Provider.BaseURL != "https://api.dataforseo.com" {
		t.Errorf("Provider.BaseURL = %v, want default", cfg.Provider.BaseURL)
	}
	if cfg.Provider.MaxCrawlPages != 100 {
		t.Errorf("MaxCrawlPages = %v, want 100", cfg.Provider.MaxCrawlPages)
	}
	if cfg.Provider.KeywordLimit != 1000 {
		t.Errorf("KeywordLimit = %v, want 1000", cfg.Provider.KeywordLimit)
	}
	if cfg.Poller.Interval != 10*time.Second {
		t.Errorf("Poller.Interval = %v, want 10s", cfg.Poller.Interval)
	}
	if cfg.Poller.Timeout != 30*time.Minute {
		t.Errorf("Poller.Timeout = %v, want 30m", cfg.Poller.Timeout)
	}
	if cfg.Redis.Address != "localhost:6379" {
		t.Errorf("Redis.Address = %v, want localhost:6379", cfg.Redis.Address)
	}
	if cfg.Slides.BaseURL != "https://slides.googleapis.com/v1" {
		t.Errorf("Slides.BaseURL = %v, want default", cfg.Slides.BaseURL)
	}
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "seo")
	t.Setenv("DB_NAME", "seo_audit")
	t.Setenv("PROVIDER_LOGIN", "env-user")
	t.Setenv("PROVIDER_PASSWORD", "env-pass")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %v, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %v, want db.internal", cfg.Database.Host)
	}
	if cfg.Provider.Login != "env-user" {
		t.Errorf("Provider.Login = %v, want env-user", cfg.Provider.Login)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test")

	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %v, want 9000", cfg.Server.Port)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://b.test" {
		t.Errorf("CORSOrigins = %v, want two trimmed origins", cfg.Server.CORSOrigins)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{
			name: "missing database user",
			config: `
server:
  host: "0.0.0.0"
database:
  host: "localhost"
  dbname: "seo_audit"
provider:
  login: "u"
  password: "p"
`,
		},
		{
			name: "missing provider credentials",
			config: `
server:
  host: "0.0.0.0"
database:
  host: "localhost"
  user: "seo"
  dbname: "seo_audit"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.config)); err == nil {
				t.Error("Load() error = nil, want validation error")
			}
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "server: [not a map")); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}
