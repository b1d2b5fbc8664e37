package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"gomoku/engine"
	"gomoku/game"
)

const configFile = "gomoku/backend.json"

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type Config struct {
	Addr             string     `json:"addr"`
	LogLevel         string     `json:"log_level"`
	TickIntervalMs   int        `json:"tick_interval_ms"`
	AiLogSearchStats bool       `json:"ai_log_search_stats"`
	AiCacheSize      int        `json:"ai_cache_size"`
	AiPersistCache   bool       `json:"ai_persist_cache"`
	AiCachePath      string     `json:"ai_cache_path"`
	Game             GameConfig `json:"game"`
}

type GameConfig struct {
	Difficulty         string `json:"difficulty"`
	TurnLimitMs        int    `json:"turn_limit_ms"`
	WarnRemainingMs    int    `json:"warn_remaining_ms"`
	ThinkDelayEasyMs   int    `json:"think_delay_easy_ms"`
	ThinkDelayMediumMs int    `json:"think_delay_medium_ms"`
	ThinkDelayHardMs   int    `json:"think_delay_hard_ms"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		LogLevel:       "info",
		TickIntervalMs: 50,

		AiLogSearchStats: false,
		AiCacheSize:      engine.CacheMaxSize,
		AiPersistCache:   false,
		AiCachePath:      "/cache_logs/position_cache.gob",

		Game: GameConfig{
			Difficulty:         "medium",
			TurnLimitMs:        30000,
			WarnRemainingMs:    10000,
			ThinkDelayEasyMs:   1200,
			ThinkDelayMediumMs: 800,
			ThinkDelayHardMs:   1800,
		},
	}
}

// LoadConfig starts from DefaultConfig, overlays the first
// gomoku/backend.json found in the XDG config directories, then the
// GOMOKU_* environment variables.
func LoadConfig() (Config, error) {
	config := DefaultConfig()
	if path, err := xdg.SearchConfigFile(configFile); err == nil {
		if err := readConfigFile(path, &config); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&config)
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func readConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, config); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", path, err)}
	}
	return nil
}

func applyEnv(config *Config) {
	config.Addr = getenv("GOMOKU_ADDR", config.Addr)
	config.LogLevel = getenv("GOMOKU_LOG_LEVEL", config.LogLevel)
	config.TickIntervalMs = getenvInt("GOMOKU_TICK_MS", config.TickIntervalMs)
	config.AiPersistCache = getenvBool("GOMOKU_PERSIST_CACHE", config.AiPersistCache)
	config.AiCachePath = getenv("GOMOKU_CACHE_PATH", config.AiCachePath)
	config.Game.Difficulty = getenv("GOMOKU_DIFFICULTY", config.Game.Difficulty)
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return &InvalidConfig{"addr must not be empty"}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	if c.TickIntervalMs <= 0 {
		return &InvalidConfig{"tick_interval_ms must be positive"}
	}
	if c.AiCacheSize <= 0 {
		return &InvalidConfig{"ai_cache_size must be positive"}
	}
	if c.AiPersistCache && c.AiCachePath == "" {
		return &InvalidConfig{"ai_cache_path is required when ai_persist_cache is set"}
	}
	if _, err := engine.ParseDifficulty(c.Game.Difficulty); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Game.TurnLimitMs <= 0 {
		return &InvalidConfig{"turn_limit_ms must be positive"}
	}
	if c.Game.WarnRemainingMs < 0 || c.Game.WarnRemainingMs >= c.Game.TurnLimitMs {
		return &InvalidConfig{"warn_remaining_ms must be in [0, turn_limit_ms)"}
	}
	for _, ms := range []int{c.Game.ThinkDelayEasyMs, c.Game.ThinkDelayMediumMs, c.Game.ThinkDelayHardMs} {
		if ms < 0 {
			return &InvalidConfig{"think delays must not be negative"}
		}
	}
	return nil
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// GameSettings converts the validated game section for the session.
func (c Config) GameSettings() game.Settings {
	difficulty, _ := engine.ParseDifficulty(c.Game.Difficulty)
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return game.Settings{
		Difficulty:    difficulty,
		TurnLimit:     ms(c.Game.TurnLimitMs),
		WarnRemaining: ms(c.Game.WarnRemainingMs),
		ThinkDelay: game.ThinkDelays{
			Easy:   ms(c.Game.ThinkDelayEasyMs),
			Medium: ms(c.Game.ThinkDelayMediumMs),
			Hard:   ms(c.Game.ThinkDelayHardMs),
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
