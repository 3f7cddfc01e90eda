// Package config loads runtime configuration for the selection canvas.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	appName   = "selection-canvas"
	envPrefix = "SELCANVAS"
)

// Config holds runtime configuration values.
type Config struct {
	Canvas    CanvasConfig    `mapstructure:"canvas"`
	Window    WindowConfig    `mapstructure:"window"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	HotReload HotReloadConfig `mapstructure:"hotreload"`
}

// CanvasConfig controls box creation on the canvas.
type CanvasConfig struct {
	DefaultWidth         float64 `mapstructure:"default_width"`
	DefaultHeight        float64 `mapstructure:"default_height"`
	CreateOnSurfaceClick bool    `mapstructure:"create_on_surface_click"`
	InitialBox           bool    `mapstructure:"initial_box"`
	InitialX             float64 `mapstructure:"initial_x"`
	InitialY             float64 `mapstructure:"initial_y"`
}

// WindowConfig is the initial window size.
type WindowConfig struct {
	Width  float32 `mapstructure:"width"`
	Height float32 `mapstructure:"height"`
}

// LoggingConfig selects the logrus level and formatter.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// HotReloadConfig controls the binary watcher used during development.
type HotReloadConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Loader reads configuration from defaults, an optional config file, a
// .env file and SELCANVAS_* environment variables.
type Loader struct {
	v       *viper.Viper
	envFile string
}

// NewLoader creates a loader searching the user config dir and the working
// directory for config.yaml. Extra search paths are tried first.
func NewLoader(paths ...string) *Loader {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return &Loader{v: v, envFile: ".env"}
}

// SetEnvFile changes the dotenv file loaded before reading the environment.
func (l *Loader) SetEnvFile(path string) {
	l.envFile = path
}

// SetConfigFile reads an explicit file instead of searching.
func (l *Loader) SetConfigFile(path string) {
	l.v.SetConfigFile(path)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("canvas.default_width", 50.0)
	v.SetDefault("canvas.default_height", 50.0)
	v.SetDefault("canvas.create_on_surface_click", false)
	v.SetDefault("canvas.initial_box", true)
	v.SetDefault("canvas.initial_x", 150.0)
	v.SetDefault("canvas.initial_y", 150.0)
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("hotreload.enabled", false)
}

// Load resolves the configuration.
func (l *Loader) Load() (Config, error) {
	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", l.envFile, err)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the canvas cannot use.
func (c Config) Validate() error {
	if c.Canvas.DefaultWidth <= 0 || c.Canvas.DefaultHeight <= 0 {
		return fmt.Errorf("canvas default size must be positive, got %gx%g",
			c.Canvas.DefaultWidth, c.Canvas.DefaultHeight)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %gx%g", c.Window.Width, c.Window.Height)
	}
	return nil
}

// ConfigFileUsed returns the path of the file read by Load, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Dir returns ~/.config/selection-canvas (or the platform equivalent).
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		home := os.Getenv("HOME")
		if home == "" {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName), nil
}
