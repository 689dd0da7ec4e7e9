// Package config loads server configuration from an optional file plus
// defaults.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/fractalshard/game-api/internal/errors"
)

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// RedisConfig configures the Redis connection
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GameConfig carries the gameplay tunables
type GameConfig struct {
	// TypingIntervalMS is the story reveal speed in milliseconds per
	// character
	TypingIntervalMS int `mapstructure:"typing_interval_ms"`

	// EnemyTurnDelayMS is the pause before the enemy stage resolves
	EnemyTurnDelayMS int `mapstructure:"enemy_turn_delay_ms"`

	// LevelPolicy is "single" or "cascade"
	LevelPolicy string `mapstructure:"level_policy"`

	// StoryPath overrides the embedded story content when set
	StoryPath string `mapstructure:"story_path"`

	// SessionTTLHours is how long idle story sessions survive
	SessionTTLHours int `mapstructure:"session_ttl_hours"`
}

// Config is the full server configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Game   GameConfig   `mapstructure:"game"`
}

// TypingInterval returns the reveal speed as a duration
func (c *Config) TypingInterval() time.Duration {
	return time.Duration(c.Game.TypingIntervalMS) * time.Millisecond
}

// EnemyTurnDelay returns the enemy stage delay as a duration
func (c *Config) EnemyTurnDelay() time.Duration {
	return time.Duration(c.Game.EnemyTurnDelayMS) * time.Millisecond
}

// SessionTTL returns the story session lifetime
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Game.SessionTTLHours) * time.Hour
}

// Load reads configuration from the given file path. An empty path loads
// defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("game.typing_interval_ms", 30)
	v.SetDefault("game.enemy_turn_delay_ms", 1500)
	v.SetDefault("game.level_policy", "single")
	v.SetDefault("game.story_path", "")
	v.SetDefault("game.session_ttl_hours", 24)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	return cfg, nil
}
