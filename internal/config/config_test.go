package config

import (
	"testing"
	"time"
)

func TestLoadDevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.Secret == "" {
		t.Error("development load left session secret empty")
	}
	if cfg.Admin.Username == "" || cfg.Admin.PasswordHash == "" {
		t.Error("development load left admin identity empty")
	}
	if cfg.Session.TTL() != 8*time.Hour {
		t.Errorf("session TTL = %v, want 8h", cfg.Session.TTL())
	}
	if cfg.Session.SecureCookies {
		t.Error("development must not require secure cookies")
	}
}

func TestLoadProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	if _, err := Load(); err == nil {
		t.Fatal("production load without secrets succeeded")
	}

	t.Setenv("SESSION_SECRET", "prod-secret")
	if _, err := Load(); err == nil {
		t.Fatal("production load without admin identity succeeded")
	}

	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Session.SecureCookies {
		t.Error("production must require secure cookies")
	}
}

func TestSessionTTLFallback(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_TTL_HOURS", "-4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.TTLHours != 8 {
		t.Errorf("TTLHours = %d, want fallback 8", cfg.Session.TTLHours)
	}
}
