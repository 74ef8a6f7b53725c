package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Game.applyDefaults()
	cfg.Web.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	DB     DBConfig     `toml:"db"`
	Web    WebConfig    `toml:"web"`
	Spaces SpacesConfig `toml:"spaces"`
	Game   GameConfig   `toml:"game"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type WebConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	CORSOrigins string `toml:"cors_origins"`
}

func (w *WebConfig) applyDefaults() {
	if w.Port == 0 {
		w.Port = DefaultHTTPPort
	}
	if w.CORSOrigins == "" {
		w.CORSOrigins = "*"
	}
}

// Addr returns the listen address for the HTTP server.
func (w WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}

type SpacesConfig struct {
	Key    string `toml:"key"`
	Secret string `toml:"secret"`
	Region string `toml:"region"`
	Bucket string `toml:"bucket"`
	Root   string `toml:"root"`
}

// Enabled reports whether object storage credentials are configured.
func (s SpacesConfig) Enabled() bool {
	return s.Key != "" && s.Secret != "" && s.Bucket != ""
}

type GameConfig struct {
	MaxActiveQuests     int `toml:"max_active_quests"`
	HistoryDefaultLimit int `toml:"history_default_limit"`
	HistoryMaxLimit     int `toml:"history_max_limit"`
	LockCacheSize       int `toml:"lock_cache_size"`
}

func (g *GameConfig) applyDefaults() {
	if g.MaxActiveQuests <= 0 {
		g.MaxActiveQuests = MaxActiveQuests
	}
	if g.HistoryDefaultLimit <= 0 {
		g.HistoryDefaultLimit = DefaultHistoryLimit
	}
	if g.HistoryMaxLimit <= 0 {
		g.HistoryMaxLimit = MaxHistoryLimit
	}
	if g.LockCacheSize <= 0 {
		g.LockCacheSize = CacheSize
	}
}

// DefaultGameConfig is used when no [game] section is present.
func DefaultGameConfig() GameConfig {
	var g GameConfig
	g.applyDefaults()
	return g
}
