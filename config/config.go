package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store drivers for the working copy of live matches.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Config struct {
	App struct {
		Env         string `mapstructure:"env"`
		Port        string `mapstructure:"port"`
		FrontendURL string `mapstructure:"frontend_url"`
		LogLevel    string `mapstructure:"log_level"`
	} `mapstructure:"app"`
	DB struct {
		Enabled  bool   `mapstructure:"enabled"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
		TimeZone string `mapstructure:"timezone"`
	} `mapstructure:"db"`
	JWT struct {
		AccessTokenSecret        string `mapstructure:"access_token_secret"`
		AccessTokenExpiryMinutes int    `mapstructure:"access_token_expiry_minutes"`
	} `mapstructure:"jwt"`
	Redis struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"redis"`
	Store struct {
		Driver     string        `mapstructure:"driver"`
		SQLitePath string        `mapstructure:"sqlite_path"`
		LiveTTL    time.Duration `mapstructure:"live_ttl"`
	} `mapstructure:"store"`
	Scoring struct {
		AllOutWickets         int    `mapstructure:"all_out_wickets"`
		RotateStrikeAtOverEnd bool   `mapstructure:"rotate_strike_at_over_end"`
		CommentarySeed        uint64 `mapstructure:"commentary_seed"`
	} `mapstructure:"scoring"`
}

const defaultJWTSecret = "your-very-strong-access-secret"

// Global DB instance, accessible after ConnectDB() is called via Initialize.
var DB *gorm.DB

// Global AppConfig instance, accessible after LoadConfig() is called via Initialize.
var appConfig *Config
var once sync.Once // Used for singleton pattern to load config only once

// newViper maps every key to its environment variable: app.env reads
// APP_ENV. A few keys keep their shorter historical names.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8088")
	v.SetDefault("app.frontend_url", "http://localhost:3000")
	v.SetDefault("app.log_level", "info")
	_ = v.BindEnv("app.port", "PORT", "APP_PORT")
	_ = v.BindEnv("app.frontend_url", "FRONTEND_URL", "APP_FRONTEND_URL")
	_ = v.BindEnv("app.log_level", "LOG_LEVEL", "APP_LOG_LEVEL")

	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "password")
	v.SetDefault("db.name", "crease_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")

	v.SetDefault("jwt.access_token_secret", defaultJWTSecret)
	v.SetDefault("jwt.access_token_expiry_minutes", 60*12)

	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("store.driver", StoreMemory)
	v.SetDefault("store.sqlite_path", "./data/crease.db")
	v.SetDefault("store.live_ttl", "24h")

	v.SetDefault("scoring.all_out_wickets", 0)
	v.SetDefault("scoring.rotate_strike_at_over_end", false)
	v.SetDefault("scoring.commentary_seed", 0)
	return v
}

// LoadConfig loads configuration from .env and the environment.
func LoadConfig() (*Config, error) {
	// It's okay if .env doesn't exist, especially in production
	// where env vars are set directly.
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, relying on system environment variables.")
	}

	cfg := &Config{}
	if err := newViper().Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	switch cfg.Store.Driver {
	case StoreMemory, StoreSQLite, StoreRedis:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: want memory, sqlite or redis", cfg.Store.Driver)
	}
	if cfg.Scoring.AllOutWickets < 0 {
		return nil, fmt.Errorf("invalid SCORING_ALL_OUT_WICKETS %d", cfg.Scoring.AllOutWickets)
	}
	if cfg.JWT.AccessTokenExpiryMinutes <= 0 {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY_MINUTES %d", cfg.JWT.AccessTokenExpiryMinutes)
	}

	// Basic validation for critical secrets
	if cfg.JWT.AccessTokenSecret == defaultJWTSecret {
		logrus.Warn("Using the default JWT secret. Set JWT_ACCESS_TOKEN_SECRET for production.")
	}
	if cfg.DB.Enabled && cfg.DB.Password == "password" && cfg.App.Env == "production" {
		logrus.Warn("Using default DB password in production. Please set DB_PASSWORD environment variable.")
	}

	appConfig = cfg
	return cfg, nil
}

// NewLogger builds the application logger: JSON in production, text otherwise.
func NewLogger(cfg Config) *logrus.Logger {
	l := logrus.New()
	level, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	if cfg.App.Env == "production" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// ConnectDB establishes a connection to the archive database.
// It sets the global DB variable.
func ConnectDB(dbCfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dbCfg.DB.Host,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
		dbCfg.DB.Port,
		dbCfg.DB.SSLMode,
		dbCfg.DB.TimeZone,
	)

	gormConfig := &gorm.Config{}
	if dbCfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info) // Log SQL queries in development
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent) // Less verbose in production
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	logrus.Info("Successfully connected to database!")
	return gormDB, nil
}

// Initialize loads all configurations and, when the archive is enabled,
// connects to the database. Call it once at startup.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg

		if !appConfig.DB.Enabled {
			return
		}
		if _, err = ConnectDB(*appConfig); err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
			return
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
// It panics if the configuration has not been loaded yet.
func GetConfig() *Config {
	if appConfig == nil {
		logrus.Fatal("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}
