package config

import (
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/plu-backend/pkg/security"
)

func TestLoad_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Port != "8000" {
		t.Fatalf("expected default port 8000, got %q", cfg.App.Port)
	}
	if cfg.App.Title != "Cek Harga" {
		t.Fatalf("unexpected title %q", cfg.App.Title)
	}
	if cfg.DB.Driver != DriverMySQL {
		t.Fatalf("expected mysql driver, got %q", cfg.DB.Driver)
	}
	if !strings.Contains(cfg.DB.DSN, "tcp(db.local:3306)/plu") {
		t.Fatalf("unexpected mysql dsn %q", cfg.DB.DSN)
	}
	if !strings.Contains(cfg.DB.DSN, "parseTime=true") {
		t.Fatalf("expected parseTime in dsn %q", cfg.DB.DSN)
	}
	if got := cfg.HTTP.ReadTimeout; got != 15*time.Second {
		t.Fatalf("expected read timeout 15s, got %v", got)
	}
	if cfg.App.IsDev() {
		t.Fatal("expected production mode by default")
	}
}

func TestLoad_DecryptsPassword(t *testing.T) {
	setMinimalEnv(t)
	key, err := security.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	sealed, err := security.Encrypt(key, "rahasia")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	t.Setenv(EnvSecretKey, key)
	t.Setenv(EnvDBPassword, sealed)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !strings.Contains(cfg.DB.DSN, "kasir:rahasia@") {
		t.Fatalf("expected decrypted password in dsn, got %q", cfg.DB.DSN)
	}
}

func TestLoad_BadCiphertext(t *testing.T) {
	setMinimalEnv(t)
	key, _ := security.GenerateKey()
	t.Setenv(EnvSecretKey, key)
	t.Setenv(EnvDBPassword, "not-encrypted")

	if _, err := Load(); err == nil {
		t.Fatal("expected undecryptable password to return an error")
	}
}

func TestLoad_PostgresDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, "postgres")
	t.Setenv(EnvDBPort, "5432")
	t.Setenv(EnvDBPassword, "pw")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.DB.DSN != "postgres://kasir:pw@db.local:5432/plu?sslmode=disable" {
		t.Fatalf("unexpected postgres dsn %q", cfg.DB.DSN)
	}
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, "oracle")

	if _, err := Load(); err == nil {
		t.Fatal("expected unsupported driver to return an error")
	}
}

func TestLoad_SQLiteRequiresDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, "sqlite")

	if _, err := Load(); err == nil {
		t.Fatal("expected sqlite without dsn to return an error")
	}

	t.Setenv(EnvDBDSN, "file:plu.db")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.DB.DSN != "file:plu.db" {
		t.Fatalf("unexpected dsn %q", cfg.DB.DSN)
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("PLU_TIMEZONE", "Mars/Olympus")

	if _, err := Load(); err == nil {
		t.Fatal("expected invalid timezone to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvMode, "")
	t.Setenv(EnvDBDriver, "mysql")
	t.Setenv(EnvDBDSN, "")
	t.Setenv(EnvDBHost, "db.local")
	t.Setenv(EnvDBPort, "3306")
	t.Setenv(EnvDBName, "plu")
	t.Setenv(EnvDBUser, "kasir")
	t.Setenv(EnvDBPassword, "")
	t.Setenv(EnvSecretKey, "")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEVELOPMENT"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	modeConfig := AppConfig{Env: "production", Mode: "Dev-Local"}
	if !modeConfig.IsDev() {
		t.Fatalf("expected MODE %q to enable development mode", modeConfig.Mode)
	}

	prodConfig := AppConfig{Env: "production"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}

func TestAppConfigLocation(t *testing.T) {
	loc, err := AppConfig{Timezone: "Asia/Jakarta"}.Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.String() != "Asia/Jakarta" {
		t.Fatalf("unexpected location %s", loc)
	}

	local, err := AppConfig{}.Location()
	if err != nil || local != time.Local {
		t.Fatalf("expected time.Local for empty timezone, got %v (%v)", local, err)
	}
}
