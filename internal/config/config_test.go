package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("expected development env, got %q", cfg.Env)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("expected 1h token TTL, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("expected bcrypt cost 10, got %d", cfg.Auth.BcryptCost)
	}
	if !cfg.Auth.DistinctLoginErrors {
		t.Error("expected distinct login errors on by default")
	}
	if cfg.Auth.SecretKey == "" {
		t.Error("expected a dev fallback secret")
	}
	if cfg.Database.MigrationsPath != "./migrations" {
		t.Errorf("expected default migrations path, got %q", cfg.Database.MigrationsPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("DISTINCT_LOGIN_ERRORS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.Auth.TokenTTL != 30*time.Minute {
		t.Errorf("expected 30m token TTL, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("expected bcrypt cost 12, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.DistinctLoginErrors {
		t.Error("expected distinct login errors disabled")
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")

	if _, err := Load(); err == nil {
		t.Error("expected error for missing SECRET_KEY in production")
	}

	t.Setenv("SECRET_KEY", "too-short")
	if _, err := Load(); err == nil {
		t.Error("expected error for short SECRET_KEY in production")
	}

	t.Setenv("SECRET_KEY", strings.Repeat("k", 32))
	if _, err := Load(); err != nil {
		t.Errorf("expected 32-char secret to be accepted, got %v", err)
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		User:     "kindred",
		Password: "p@ss:word/",
		Name:     "kindred",
	}

	dsn := d.DSN()
	if !strings.Contains(dsn, "tcp(db.internal:3306)") {
		t.Errorf("expected default port appended, got %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("expected parseTime enabled, got %q", dsn)
	}
}

func TestDSN_Override(t *testing.T) {
	d := DatabaseConfig{dsnOverride: "user:pass@tcp(somewhere:3307)/db"}
	if got := d.DSN(); got != "user:pass@tcp(somewhere:3307)/db" {
		t.Errorf("expected DATABASE_URL to win, got %q", got)
	}
}

func TestIsDevelopment(t *testing.T) {
	for env, want := range map[string]bool{
		"development": true,
		"dev":         true,
		"Development": true,
		"production":  false,
		"staging":     false,
	} {
		c := &Config{Env: env}
		if got := c.IsDevelopment(); got != want {
			t.Errorf("IsDevelopment(%q) = %v, want %v", env, got, want)
		}
	}
}
