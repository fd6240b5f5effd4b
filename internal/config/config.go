package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/vkboot"
	"github.com/spf13/viper"
)

// Config holds process configuration for the vkboot command.
type Config struct {
	App         AppConfig
	Window      WindowConfig
	Driver      DriverConfig
	Diagnostics DiagnosticsConfig
	Log         LogConfig
}

// AppConfig holds application metadata sent to the driver.
type AppConfig struct {
	Name string
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

// DriverConfig selects a driver. An empty name means the registry default.
type DriverConfig struct {
	Name string
}

// DiagnosticsConfig overrides the build's diagnostics default.
type DiagnosticsConfig struct {
	Enabled     bool
	Portability bool
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix VKBOOT_.
// path, when non-empty, takes precedence over VKBOOT_CONFIG. A missing
// default config file is not an error; a missing explicit one is.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("app.name", vkboot.DefaultConfig().ApplicationName)
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.title", "vkboot")
	v.SetDefault("driver.name", "")
	v.SetDefault("diagnostics.enabled", vkboot.DiagnosticsDefault)
	v.SetDefault("diagnostics.portability", false)
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("VKBOOT_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "vkboot"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("VKBOOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// Only an explicit path must exist; a broken file is always an error.
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return Config{}, fmt.Errorf("%w: window size %dx%d", vkboot.ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// SlogLevel parses Level. Besides the slog names it accepts "trace".
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "trace":
		return vkboot.LevelTrace, nil
	case "", "info":
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", vkboot.ErrInvalidConfig, l.Level)
	}
	return level, nil
}

// Options converts the configuration into vkboot options.
func (c Config) Options() []vkboot.Option {
	return []vkboot.Option{
		vkboot.WithApplication(c.App.Name, vkboot.MakeVersion(1, 0, 0)),
		vkboot.WithDiagnostics(c.Diagnostics.Enabled),
		vkboot.WithPortability(c.Diagnostics.Portability),
	}
}
