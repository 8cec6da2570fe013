package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// chdirTemp isolates Load from any config.yaml or .env in the package directory.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SECRET_KEY", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:8000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Store.Driver != StoreMongo || cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("store = %q %q", cfg.Store.Driver, cfg.Mongo.URI)
	}
	if cfg.Auth.TokenTTL != time.Hour || cfg.Auth.RateLimit != 20 {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if cfg.Overpass.Timeout != 25*time.Second {
		t.Errorf("overpass timeout = %v", cfg.Overpass.Timeout)
	}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, []string{"http://localhost:5173"}) {
		t.Errorf("CORS = %v", cfg.Server.CORSOrigins)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SECRET_KEY", "k")
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/x")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("AUTH_RATE_LIMIT", "5")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Store.Driver != StorePostgres || cfg.Database.URL != "postgres://u:p@db/x" {
		t.Errorf("store = %q %q", cfg.Store.Driver, cfg.Database.URL)
	}
	if cfg.Auth.TokenTTL != 30*time.Minute || cfg.Auth.RateLimit != 5 {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Errorf("CORS = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Redis.URL != "redis://cache:6379/0" {
		t.Errorf("redis = %q", cfg.Redis.URL)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	yaml := "auth:\n  jwt_secret: from-file\nstore:\n  driver: memory\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-file" || cfg.Store.Driver != StoreMemory {
		t.Errorf("file values not applied: %+v %+v", cfg.Auth, cfg.Store)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("env should override file, level = %q", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, true},
		{"unknown driver", func(c *Config) { c.Store.Driver = "sqlite" }, true},
		{"postgres without url", func(c *Config) { c.Store.Driver = StorePostgres; c.Database.URL = "" }, true},
		{"memory", func(c *Config) { c.Store.Driver = StoreMemory; c.Mongo.URI = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Auth.JWTSecret = "x"
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
