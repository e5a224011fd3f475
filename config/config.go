package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"uttt/game"
	"uttt/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Players PlayersConfig `yaml:"players"`
	AI      AIConfig      `yaml:"ai"`
	Match   MatchConfig   `yaml:"match"`
	Log     LogConfig     `yaml:"log"`
	Output  OutputConfig  `yaml:"output"`
	Board   BoardConfig   `yaml:"board"`
}

type PlayersConfig struct {
	X string `yaml:"x"`
	O string `yaml:"o"`
}

type AIConfig struct {
	Depth       int  `yaml:"depth"`
	SharedCache bool `yaml:"shared_cache"`
	CacheShards int  `yaml:"cache_shards"`
}

type MatchConfig struct {
	Games       int    `yaml:"games"`
	Concurrency int    `yaml:"concurrency"`
	Seed        uint64 `yaml:"seed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"` // no CSV output when empty
}

// BoardConfig resumes a game from a layout instead of the empty board.
type BoardConfig struct {
	Layout   string `yaml:"layout"`
	LastMove []int  `yaml:"last_move"` // [sub-board, cell]
}

func Default() Config {
	return Config{
		Players: PlayersConfig{X: "ai", O: "random"},
		AI:      AIConfig{Depth: meta.DefaultDepth, CacheShards: meta.DefaultCacheShards},
		Match:   MatchConfig{Games: meta.DefaultGames, Concurrency: meta.DefaultConcurrency, Seed: meta.DefaultSeed},
		Log:     LogConfig{Level: "info"},
	}
}

// Parse reads YAML on top of the defaults, so missing keys keep their
// default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.normalize()
	err = cfg.Validate()
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find looks for the settings file in the working directory, then in its
// parent.
func Find() (string, bool) {
	for _, dir := range []string{".", ".."} {
		path := filepath.Join(dir, meta.SettingsFile)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// LoadOrDefault never fails: a missing file is a warning and a broken one an
// error log, both falling back to the defaults. An empty path means Find.
func LoadOrDefault(path string) Config {
	if path == "" {
		found, ok := Find()
		if !ok {
			log.Warn().Msgf("no %s found, using defaults", meta.SettingsFile)
			return Default()
		}
		path = found
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Warn().Msgf("settings file %s does not exist, using defaults", path)
		return Default()
	}

	cfg, err := Load(path)
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings, using defaults")
		return Default()
	}
	log.Info().Msgf("loaded settings from %s", path)
	return cfg
}

func (c *Config) normalize() {
	c.Players.X = strings.ToLower(strings.TrimSpace(c.Players.X))
	c.Players.O = strings.ToLower(strings.TrimSpace(c.Players.O))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Board.Layout = strings.ToLower(c.Board.Layout)
}

func (c Config) Validate() error {
	if c.AI.Depth < 1 {
		return fmt.Errorf("%w: ai.depth must be positive, got %d", ErrInvalidConfig, c.AI.Depth)
	}
	if c.AI.CacheShards < 1 {
		return fmt.Errorf("%w: ai.cache_shards must be positive, got %d", ErrInvalidConfig, c.AI.CacheShards)
	}
	if c.Match.Games < 0 {
		return fmt.Errorf("%w: match.games must not be negative, got %d", ErrInvalidConfig, c.Match.Games)
	}
	if c.Match.Concurrency < 1 {
		return fmt.Errorf("%w: match.concurrency must be positive, got %d", ErrInvalidConfig, c.Match.Concurrency)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	if c.Board.Layout != "" {
		if _, err := c.StartBoard(); err != nil {
			return err
		}
	}
	return nil
}

// LogLevel returns the configured level, info if it does not parse.
func (c Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || c.Log.Level == "" {
		return zerolog.InfoLevel
	}
	return level
}

// StartBoard is the board every game of the match starts from.
func (c Config) StartBoard() (game.Board, error) {
	if c.Board.Layout == "" {
		return game.NewBoard(), nil
	}
	if len(c.Board.LastMove) != 2 {
		return game.Board{}, fmt.Errorf("%w: board.last_move needs [sub-board, cell]", ErrInvalidConfig)
	}
	last, err := game.NewMove(c.Board.LastMove[0], c.Board.LastMove[1])
	if err != nil {
		return game.Board{}, fmt.Errorf("%w: board.last_move: %w", ErrInvalidConfig, err)
	}
	board, err := game.ParseBoard(c.Board.Layout, last)
	if err != nil {
		return game.Board{}, fmt.Errorf("%w: board.layout: %w", ErrInvalidConfig, err)
	}
	return board, nil
}
