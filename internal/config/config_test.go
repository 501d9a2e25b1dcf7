package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")
	cfg := Load()
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected sqlite default, got %q", cfg.Database.Driver)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Database.DSN() != "gestion_commandes.db" {
		t.Fatalf("unexpected sqlite DSN %q", cfg.Database.DSN())
	}
}

func TestLoadMySQL(t *testing.T) {
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_HOST", "db")
	cfg := Load()
	if cfg.Database.Port != 3306 {
		t.Fatalf("expected mysql default port, got %d", cfg.Database.Port)
	}
	want := "gestion:gestion123@tcp(db:3306)/gestion_commandes?charset=utf8mb4&parseTime=True&loc=Local"
	if got := cfg.Database.DSN(); got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("X_FLAG", "yes")
	if !getEnvBool("X_FLAG", false) {
		t.Fatalf("yes should be true")
	}
	t.Setenv("X_FLAG", "no")
	if getEnvBool("X_FLAG", true) {
		t.Fatalf("no should be false")
	}
}

func TestLoadClientFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gestion.yaml")
	content := "base_url: http://192.168.1.13/gestion_commandes_api\nlang: en\ntimeout: 5s\nemail: file@x.fr\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("GESTION_API_URL", "")
	t.Setenv("GESTION_LANG", "")
	t.Setenv("GESTION_HTTP_TIMEOUT", "")
	t.Setenv("GESTION_EMAIL", "env@x.fr")
	cfg, err := LoadClient(path)
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.BaseURL != "http://192.168.1.13/gestion_commandes_api" || cfg.Lang != "en" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}
	if cfg.Email != "env@x.fr" {
		t.Fatalf("env should override file, got %q", cfg.Email)
	}
}

func TestLoadClientBadTimeout(t *testing.T) {
	t.Setenv("GESTION_HTTP_TIMEOUT", "soon")
	if _, err := LoadClient(""); err == nil {
		t.Fatalf("expected error for bad timeout")
	}
}
