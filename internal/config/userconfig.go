package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/mindweave/mindweave/internal/gesture"
)

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Viewport ViewportConfig `toml:"viewport"`
	Gesture  GestureConfig  `toml:"gesture"`
}

// ViewportConfig holds zoom and animation settings
type ViewportConfig struct {
	MinZoom           float64 `toml:"min_zoom"`           // Lower zoom bound (default: 0.1)
	MaxZoom           float64 `toml:"max_zoom"`           // Upper zoom bound (default: 10)
	FitPadding        float64 `toml:"fit_padding"`        // Padding around content when fitting, in screen units (default: 50)
	AnimationsEnabled *bool   `toml:"animations_enabled"` // Enable animated transitions (default: true)
	AnimationMs       int     `toml:"animation_ms"`       // Transition duration in milliseconds (default: 300)
}

// GestureConfig holds gesture recognition thresholds
type GestureConfig struct {
	DragThreshold      float64 `toml:"drag_threshold"`       // Movement past which a press becomes a drag, screen units (default: 4)
	LongPressMs        int     `toml:"long_press_ms"`        // Long press delay in milliseconds (default: 500)
	DoubleTapMs        int     `toml:"double_tap_ms"`        // Double tap merge window in milliseconds (default: 300)
	DoubleTapTolerance float64 `toml:"double_tap_tolerance"` // Max distance between merged taps, screen units (default: 8)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Viewport: ViewportConfig{
			MinZoom:     MinZoom,
			MaxZoom:     MaxZoom,
			FitPadding:  ZoomToFitPadding,
			AnimationMs: int(DefaultAnimationDuration / time.Millisecond),
		},
		Gesture: GestureConfig{
			DragThreshold:      DragThreshold,
			LongPressMs:        int(LongPressDelay / time.Millisecond),
			DoubleTapMs:        int(DoubleTapWindow / time.Millisecond),
			DoubleTapTolerance: DoubleTapTolerance,
		},
	}
}

// GestureSettings converts the configured thresholds into a recognizer
// config.
func (c *UserConfig) GestureSettings() gesture.Config {
	return gesture.Config{
		DragThreshold:      float32(c.Gesture.DragThreshold),
		LongPressDelay:     time.Duration(c.Gesture.LongPressMs) * time.Millisecond,
		DoubleTapWindow:    time.Duration(c.Gesture.DoubleTapMs) * time.Millisecond,
		DoubleTapTolerance: float32(c.Gesture.DoubleTapTolerance),
	}
}

// AnimationDuration returns the configured transition duration, honoring the
// animations toggle.
func (c *UserConfig) AnimationDuration() time.Duration {
	if c.Viewport.AnimationsEnabled != nil && !*c.Viewport.AnimationsEnabled {
		return 0
	}
	return time.Duration(c.Viewport.AnimationMs) * time.Millisecond
}

// LoadUserConfig loads the user configuration from the XDG config directory,
// creating a commented default file on first run.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile("mindweave/config.toml")
	if err != nil {
		// Config doesn't exist, create default
		return createDefaultConfig()
	}

	// #nosec G304 - configPath is from XDG search, reading user config is intentional
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	fillMissing(&cfg, DefaultConfig())
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	if cfg.Viewport.AnimationsEnabled != nil {
		AnimationsEnabled = *cfg.Viewport.AnimationsEnabled
	}

	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile("mindweave/config.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# Mindweave Configuration File\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("#\n")
	sb.WriteString("# [viewport]\n")
	sb.WriteString("#   min_zoom / max_zoom: zoom bounds (defaults: 0.1 / 10)\n")
	sb.WriteString("#   fit_padding: padding around content when fitting (default: 50)\n")
	sb.WriteString("#   animations_enabled: animated transitions (default: true)\n")
	sb.WriteString("#   animation_ms: transition duration (default: 300)\n")
	sb.WriteString("#\n")
	sb.WriteString("# [gesture]\n")
	sb.WriteString("#   drag_threshold: movement before a press becomes a drag (default: 4)\n")
	sb.WriteString("#   long_press_ms: long press delay (default: 500)\n")
	sb.WriteString("#   double_tap_ms: double tap merge window (default: 300)\n")
	sb.WriteString("#   double_tap_tolerance: max distance between merged taps (default: 8)\n\n")
	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfg, nil
}

// fillMissing replaces zero values with defaults so a sparse user file works.
func fillMissing(cfg, defaults *UserConfig) {
	if cfg.Viewport.MinZoom == 0 {
		cfg.Viewport.MinZoom = defaults.Viewport.MinZoom
	}
	if cfg.Viewport.MaxZoom == 0 {
		cfg.Viewport.MaxZoom = defaults.Viewport.MaxZoom
	}
	if cfg.Viewport.FitPadding == 0 {
		cfg.Viewport.FitPadding = defaults.Viewport.FitPadding
	}
	if cfg.Viewport.AnimationMs == 0 {
		cfg.Viewport.AnimationMs = defaults.Viewport.AnimationMs
	}
	if cfg.Gesture.DragThreshold == 0 {
		cfg.Gesture.DragThreshold = defaults.Gesture.DragThreshold
	}
	if cfg.Gesture.LongPressMs == 0 {
		cfg.Gesture.LongPressMs = defaults.Gesture.LongPressMs
	}
	if cfg.Gesture.DoubleTapMs == 0 {
		cfg.Gesture.DoubleTapMs = defaults.Gesture.DoubleTapMs
	}
	if cfg.Gesture.DoubleTapTolerance == 0 {
		cfg.Gesture.DoubleTapTolerance = defaults.Gesture.DoubleTapTolerance
	}
}

// validate rejects configurations that would break the engine rather than
// silently clamping them.
func validate(cfg *UserConfig) error {
	if cfg.Viewport.MinZoom <= 0 {
		return fmt.Errorf("config error in [viewport]: min_zoom must be positive, got %v", cfg.Viewport.MinZoom)
	}
	if cfg.Viewport.MaxZoom < cfg.Viewport.MinZoom {
		return fmt.Errorf("config error in [viewport]: max_zoom %v below min_zoom %v", cfg.Viewport.MaxZoom, cfg.Viewport.MinZoom)
	}
	if cfg.Gesture.DragThreshold < 0 {
		return fmt.Errorf("config error in [gesture]: drag_threshold must not be negative, got %v", cfg.Gesture.DragThreshold)
	}
	if cfg.Gesture.LongPressMs < 0 || cfg.Gesture.DoubleTapMs < 0 {
		return fmt.Errorf("config error in [gesture]: delays must not be negative")
	}
	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile("mindweave/config.toml")
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile("mindweave/config.toml")
	}
	return path, nil
}
