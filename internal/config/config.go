// Package config loads dungeon settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"quiz-dungeon/internal/generate"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable of a dungeon run and its hosting binaries.
type Config struct {
	GridWidth      int           `env:"DUNGEON_GRID_WIDTH" envDefault:"7"`
	GridHeight     int           `env:"DUNGEON_GRID_HEIGHT" envDefault:"8"`
	WallDensity    float64       `env:"DUNGEON_WALL_DENSITY" envDefault:"0.25"`
	EncounterCount int           `env:"DUNGEON_ENCOUNTERS_PER_WAVE" envDefault:"3"`
	PlayerMaxHP    int           `env:"DUNGEON_PLAYER_MAX_HP" envDefault:"100"`
	Topic          string        `env:"DUNGEON_TOPIC" envDefault:"webdesign"`
	Seed           int64         `env:"DUNGEON_SEED" envDefault:"0"`
	InputCooldown  time.Duration `env:"DUNGEON_INPUT_COOLDOWN" envDefault:"120ms"`
	EventCooldown  time.Duration `env:"DUNGEON_EVENT_COOLDOWN" envDefault:"30s"`
	SpeedBoost     time.Duration `env:"DUNGEON_SPEED_BOOST_DURATION" envDefault:"10s"`
	TileReveal     time.Duration `env:"DUNGEON_TILE_REVEAL_DELAY" envDefault:"400ms"`
	EnableMystery  bool          `env:"DUNGEON_ENABLE_MYSTERY_TILES" envDefault:"false"`
	EnableTeleport bool          `env:"DUNGEON_ENABLE_TELEPORT_TILES" envDefault:"false"`
	DBPath         string        `env:"DUNGEON_DB_PATH" envDefault:"quiz-dungeon.db"`
	LogLevel       string        `env:"DUNGEON_LOG_LEVEL" envDefault:"info"`
	SSHPort        int           `env:"DUNGEON_SSH_PORT" envDefault:"2222"`
	SSHHostKey     string        `env:"DUNGEON_SSH_HOST_KEY" envDefault:"server_host_key"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the generator cannot work with.
func (c Config) Validate() error {
	if c.GridWidth < 3 || c.GridHeight < 3 {
		return fmt.Errorf("grid must be at least 3x3, got %dx%d", c.GridWidth, c.GridHeight)
	}
	if c.WallDensity < 0 || c.WallDensity >= 1 {
		return fmt.Errorf("wall density must be in [0,1), got %v", c.WallDensity)
	}
	if c.EncounterCount < 1 {
		return fmt.Errorf("encounters per wave must be positive, got %d", c.EncounterCount)
	}
	if c.PlayerMaxHP < 1 {
		return fmt.Errorf("player max HP must be positive, got %d", c.PlayerMaxHP)
	}
	return nil
}

// SlogLevel maps LogLevel onto slog, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Weights given to the optional tile kinds when switched on.
const (
	mysteryWeight  = 10
	teleportWeight = 5
)

// TilePool returns the weighted special-tile pool. Mystery and teleport
// stay at weight 0 unless enabled.
func (c Config) TilePool() []generate.TileWeight {
	pool := make([]generate.TileWeight, len(generate.DefaultTilePool))
	copy(pool, generate.DefaultTilePool)
	for i := range pool {
		switch {
		case pool[i].Kind == generate.TileMystery && c.EnableMystery:
			pool[i].Weight = mysteryWeight
		case pool[i].Kind == generate.TileTeleport && c.EnableTeleport:
			pool[i].Weight = teleportWeight
		}
	}
	return pool
}
