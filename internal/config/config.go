// Package config loads the engine configuration from file, environment and
// defaults. The loaded Config is an explicit value threaded through
// constructors; nothing reads configuration through package state.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/tacticore/terminal-defense/internal/game/core"
	"github.com/tacticore/terminal-defense/internal/game/defense"
	"github.com/tacticore/terminal-defense/internal/game/region"
)

// Config holds all configuration for the application
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Units   UnitsConfig   `mapstructure:"units"`
	Defense DefenseConfig `mapstructure:"defense"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`

	viper *viper.Viper
}

// GameConfig holds match mechanics configuration
type GameConfig struct {
	BoardWidth        int     `mapstructure:"board_width"`
	BoardHeight       int     `mapstructure:"board_height"`
	MaxTurns          int     `mapstructure:"max_turns"`
	StartingResources float64 `mapstructure:"starting_resources"`
	ResourcesPerTurn  float64 `mapstructure:"resources_per_turn"`
	TurnBudgetMillis  int     `mapstructure:"turn_budget_millis"`
}

// UnitsConfig holds the per-kind unit stats
type UnitsConfig struct {
	Wall        StructureConfig `mapstructure:"wall"`
	Turret      StructureConfig `mapstructure:"turret"`
	Factory     StructureConfig `mapstructure:"factory"`
	Scout       MobileConfig    `mapstructure:"scout"`
	Demolisher  MobileConfig    `mapstructure:"demolisher"`
	Interceptor MobileConfig    `mapstructure:"interceptor"`
}

// StructureConfig holds stats for a stationary unit kind
type StructureConfig struct {
	Cost           float64 `mapstructure:"cost"`
	Health         float64 `mapstructure:"health"`
	Damage         float64 `mapstructure:"damage"`
	Range          float64 `mapstructure:"range"`
	UpgradeCost    float64 `mapstructure:"upgrade_cost"`
	UpgradedHealth float64 `mapstructure:"upgraded_health"`
	UpgradedDamage float64 `mapstructure:"upgraded_damage"`
	UpgradedRange  float64 `mapstructure:"upgraded_range"`
}

// MobileConfig holds stats for a mobile unit kind
type MobileConfig struct {
	Cost   float64 `mapstructure:"cost"`
	Health float64 `mapstructure:"health"`
	Damage float64 `mapstructure:"damage"`
	Range  float64 `mapstructure:"range"`
	Speed  float64 `mapstructure:"speed"`
}

// DefenseConfig holds the fortification and rebuild tuning
type DefenseConfig struct {
	TurretToWallRatio   float64 `mapstructure:"turret_to_wall_ratio"`
	MinTurnBackRegions  int     `mapstructure:"min_turn_back_regions"`
	MinTurnUpgrade      int     `mapstructure:"min_turn_upgrade"`
	MaxTurretsPerRegion int     `mapstructure:"max_turrets_per_region"`
	MinTurnRebuild      int     `mapstructure:"min_turn_rebuild"`
	RebuildThreshold    float64 `mapstructure:"rebuild_threshold"`
	FortifyIterations   int     `mapstructure:"fortify_iterations"`
	ResourceFloor       float64 `mapstructure:"resource_floor"`
	Criterion           string  `mapstructure:"criterion"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig holds viewer configuration
type UIConfig struct {
	Window WindowConfig `mapstructure:"window"`
	Game   UIGameConfig `mapstructure:"game"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// UIGameConfig holds viewer pacing and layout settings
type UIGameConfig struct {
	TileSize     int  `mapstructure:"tile_size"`
	TurnInterval int  `mapstructure:"turn_interval"`
	ShowDamage   bool `mapstructure:"show_damage"`
}

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Match defaults
	v.SetDefault("game.board_width", 28)
	v.SetDefault("game.board_height", 28)
	v.SetDefault("game.max_turns", 100)
	v.SetDefault("game.starting_resources", 40.0)
	v.SetDefault("game.resources_per_turn", 5.0)
	v.SetDefault("game.turn_budget_millis", 5000)

	// Structure defaults
	v.SetDefault("units.wall.cost", 1.0)
	v.SetDefault("units.wall.health", 60.0)
	v.SetDefault("units.wall.upgrade_cost", 1.0)
	v.SetDefault("units.wall.upgraded_health", 120.0)

	v.SetDefault("units.turret.cost", 2.0)
	v.SetDefault("units.turret.health", 75.0)
	v.SetDefault("units.turret.damage", 5.0)
	v.SetDefault("units.turret.range", 2.5)
	v.SetDefault("units.turret.upgrade_cost", 4.0)
	v.SetDefault("units.turret.upgraded_health", 75.0)
	v.SetDefault("units.turret.upgraded_damage", 15.0)
	v.SetDefault("units.turret.upgraded_range", 3.5)

	v.SetDefault("units.factory.cost", 9.0)
	v.SetDefault("units.factory.health", 30.0)

	// Mobile unit defaults
	v.SetDefault("units.scout.cost", 1.0)
	v.SetDefault("units.scout.health", 15.0)
	v.SetDefault("units.scout.damage", 2.0)
	v.SetDefault("units.scout.range", 3.5)
	v.SetDefault("units.scout.speed", 1.0)

	v.SetDefault("units.demolisher.cost", 3.0)
	v.SetDefault("units.demolisher.health", 5.0)
	v.SetDefault("units.demolisher.damage", 8.0)
	v.SetDefault("units.demolisher.range", 4.5)
	v.SetDefault("units.demolisher.speed", 2.0)

	v.SetDefault("units.interceptor.cost", 1.0)
	v.SetDefault("units.interceptor.health", 40.0)
	v.SetDefault("units.interceptor.damage", 20.0)
	v.SetDefault("units.interceptor.range", 4.5)
	v.SetDefault("units.interceptor.speed", 4.0)

	// Defense tuning defaults
	v.SetDefault("defense.turret_to_wall_ratio", 0.75)
	v.SetDefault("defense.min_turn_back_regions", 5)
	v.SetDefault("defense.min_turn_upgrade", 8)
	v.SetDefault("defense.max_turrets_per_region", 5)
	v.SetDefault("defense.min_turn_rebuild", 10)
	v.SetDefault("defense.rebuild_threshold", 0.75)
	v.SetDefault("defense.fortify_iterations", 15)
	v.SetDefault("defense.resource_floor", 0.0)
	v.SetDefault("defense.criterion", "health")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Viewer defaults
	v.SetDefault("ui.window.width", 840)
	v.SetDefault("ui.window.height", 840)
	v.SetDefault("ui.window.title", "Terminal Defense")
	v.SetDefault("ui.game.tile_size", 30)
	v.SetDefault("ui.game.turn_interval", 30)
	v.SetDefault("ui.game.show_damage", true)
}

// Load reads configuration from the given path, falling back to the default
// search locations and then to built-in defaults when no file is found.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/terminal-defense")
	}

	v.SetEnvPrefix("TDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			// Specific file requested but unreadable; defaults still apply
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{viper: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration without touching the filesystem
func Default() *Config {
	v := viper.New()
	setViperDefaults(v)
	cfg := &Config{viper: v}
	if err := v.Unmarshal(cfg); err != nil {
		panic("decoding built-in defaults: " + err.Error())
	}
	return cfg
}

// FilePath returns the path of the loaded config file, if any
func (c *Config) FilePath() string {
	return c.viper.ConfigFileUsed()
}

// Watch enables hot-reloading of the config file. The callback receives the
// freshly decoded configuration; the receiver itself is not mutated.
func (c *Config) Watch(onChange func(*Config)) {
	c.viper.WatchConfig()
	c.viper.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{viper: c.viper}
		if err := c.viper.Unmarshal(next); err != nil {
			return
		}
		if err := next.Validate(); err != nil {
			return
		}
		if onChange != nil {
			onChange(next)
		}
	})
}

// StatsTable converts the unit configuration into the engine's lookup table
func (c *Config) StatsTable() core.StatsTable {
	structure := func(s StructureConfig) core.UnitStats {
		return core.UnitStats{
			Cost:           s.Cost,
			MaxHealth:      s.Health,
			Damage:         s.Damage,
			AttackRange:    s.Range,
			UpgradeCost:    s.UpgradeCost,
			UpgradedHealth: s.UpgradedHealth,
			UpgradedDamage: s.UpgradedDamage,
			UpgradedRange:  s.UpgradedRange,
		}
	}
	mobile := func(m MobileConfig) core.UnitStats {
		return core.UnitStats{
			Cost:        m.Cost,
			MaxHealth:   m.Health,
			Damage:      m.Damage,
			AttackRange: m.Range,
			Speed:       m.Speed,
		}
	}
	return core.StatsTable{
		core.Wall:        structure(c.Units.Wall),
		core.Turret:      structure(c.Units.Turret),
		core.Factory:     structure(c.Units.Factory),
		core.Scout:       mobile(c.Units.Scout),
		core.Demolisher:  mobile(c.Units.Demolisher),
		core.Interceptor: mobile(c.Units.Interceptor),
	}
}

// DefenseTuning converts the defense section into the engine's tuning value
func (c *Config) DefenseTuning() defense.Tuning {
	return defense.Tuning{
		TurretToWallRatio:  c.Defense.TurretToWallRatio,
		MinTurnBackRegions: c.Defense.MinTurnBackRegions,
		MinTurnRebuild:     c.Defense.MinTurnRebuild,
		RebuildThreshold:   c.Defense.RebuildThreshold,
		FortifyIterations:  c.Defense.FortifyIterations,
		Region: region.Tuning{
			MinTurnUpgrade: c.Defense.MinTurnUpgrade,
			MaxTurrets:     c.Defense.MaxTurretsPerRegion,
		},
	}
}

// Criterion resolves the configured weakest-region criterion name
func (c *Config) Criterion() (defense.Criterion, error) {
	switch strings.ToLower(c.Defense.Criterion) {
	case "health":
		return defense.ByHealth, nil
	case "undefended_tiles":
		return defense.ByUndefendedTiles, nil
	case "defensive_power":
		return defense.ByDefensivePower, nil
	case "turret_count":
		return defense.ByTurretCount, nil
	case "avg_tile_damage":
		return defense.ByAvgTileDamage, nil
	default:
		return defense.ByHealth, fmt.Errorf("unknown defense criterion %q", c.Defense.Criterion)
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Game.BoardWidth <= 0 || c.Game.BoardHeight <= 0 {
		return fmt.Errorf("game board dimensions must be positive")
	}
	if c.Game.BoardHeight%2 != 0 {
		return fmt.Errorf("game.board_height must be even to split into halves")
	}
	if c.Game.MaxTurns <= 0 {
		return fmt.Errorf("game.max_turns must be positive")
	}
	if c.Game.StartingResources < 0 || c.Game.ResourcesPerTurn < 0 {
		return fmt.Errorf("game resource settings must be non-negative")
	}
	if c.Game.TurnBudgetMillis <= 0 {
		return fmt.Errorf("game.turn_budget_millis must be positive")
	}

	for name, s := range map[string]StructureConfig{
		"wall": c.Units.Wall, "turret": c.Units.Turret, "factory": c.Units.Factory,
	} {
		if s.Cost <= 0 {
			return fmt.Errorf("units.%s.cost must be positive", name)
		}
		if s.Health <= 0 {
			return fmt.Errorf("units.%s.health must be positive", name)
		}
	}
	for name, m := range map[string]MobileConfig{
		"scout": c.Units.Scout, "demolisher": c.Units.Demolisher, "interceptor": c.Units.Interceptor,
	} {
		if m.Speed <= 0 {
			return fmt.Errorf("units.%s.speed must be positive", name)
		}
	}

	if c.Defense.TurretToWallRatio <= 0 {
		return fmt.Errorf("defense.turret_to_wall_ratio must be positive")
	}
	if c.Defense.RebuildThreshold <= 0 || c.Defense.RebuildThreshold > 1 {
		return fmt.Errorf("defense.rebuild_threshold must be between 0 and 1")
	}
	if c.Defense.MaxTurretsPerRegion <= 0 {
		return fmt.Errorf("defense.max_turrets_per_region must be positive")
	}
	if c.Defense.FortifyIterations <= 0 {
		return fmt.Errorf("defense.fortify_iterations must be positive")
	}
	if c.Defense.ResourceFloor < 0 {
		return fmt.Errorf("defense.resource_floor must be non-negative")
	}
	if _, err := c.Criterion(); err != nil {
		return err
	}

	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if c.UI.Game.TileSize <= 0 {
		return fmt.Errorf("ui.game.tile_size must be positive")
	}
	if c.UI.Game.TurnInterval <= 0 {
		return fmt.Errorf("ui.game.turn_interval must be positive")
	}

	return nil
}
