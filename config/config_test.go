package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/DhavalSuthar-24/crease/internal/store"
)

func TestLoadConfigDefaults(t *testing.T) {
	// empty variables count as unset
	for _, k := range []string{"PORT", "APP_PORT", "STORE_DRIVER", "STORE_LIVE_TTL", "DB_ENABLED"} {
		t.Setenv(k, "")
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.App.Port != "8088" {
		t.Errorf("App.Port = %q, want 8088", cfg.App.Port)
	}
	if cfg.Store.Driver != StoreMemory {
		t.Errorf("Store.Driver = %q, want memory", cfg.Store.Driver)
	}
	if cfg.Store.LiveTTL != 24*time.Hour {
		t.Errorf("Store.LiveTTL = %v, want 24h", cfg.Store.LiveTTL)
	}
	if cfg.DB.Enabled {
		t.Error("DB should be disabled by default")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_NAME", "scores")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("STORE_LIVE_TTL", "90m")
	t.Setenv("SCORING_ALL_OUT_WICKETS", "10")
	t.Setenv("SCORING_ROTATE_STRIKE_AT_OVER_END", "true")
	t.Setenv("SCORING_COMMENTARY_SEED", "42")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Errorf("App.Port = %q, want 9090", cfg.App.Port)
	}
	if !cfg.DB.Enabled || cfg.DB.Name != "scores" {
		t.Errorf("DB = %+v", cfg.DB)
	}
	if cfg.Store.Driver != StoreSQLite || cfg.Store.LiveTTL != 90*time.Minute {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Scoring.AllOutWickets != 10 || !cfg.Scoring.RotateStrikeAtOverEnd || cfg.Scoring.CommentarySeed != 42 {
		t.Errorf("Scoring = %+v", cfg.Scoring)
	}

	opts := EngineOptions(*cfg)
	if opts.AllOutWickets != 10 || !opts.RotateStrikeAtOverEnd || opts.Commentary == nil {
		t.Errorf("EngineOptions = %+v", opts)
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "etcd")
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should reject an unknown store driver")
	}
}

func TestNewLogger(t *testing.T) {
	var cfg Config
	cfg.App.Env = "production"
	cfg.App.LogLevel = "warn"
	l := NewLogger(cfg)
	if l.GetLevel() != logrus.WarnLevel {
		t.Errorf("level = %v, want warn", l.GetLevel())
	}
	if _, ok := l.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T, want JSON in production", l.Formatter)
	}

	cfg.App.LogLevel = "chatty"
	if NewLogger(cfg).GetLevel() != logrus.InfoLevel {
		t.Error("an unknown level should fall back to info")
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	var cfg Config

	cfg.Store.Driver = StoreMemory
	s, closeFn, err := OpenStore(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*store.MemoryStore); !ok {
		t.Errorf("memory driver gave %T", s)
	}
	closeFn()

	cfg.Store.Driver = StoreSQLite
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "live.db")
	s, closeFn, err = OpenStore(ctx, cfg)
	if err != nil {
		t.Fatalf("OpenStore(sqlite) error = %v", err)
	}
	defer closeFn()
	if _, ok := s.(*store.SQLiteStore); !ok {
		t.Errorf("sqlite driver gave %T", s)
	}

	cfg.Store.Driver = "etcd"
	if _, _, err := OpenStore(ctx, cfg); err == nil {
		t.Error("OpenStore should reject an unknown driver")
	}
}
