package vkboot

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ApplicationName != "Cool Renderer" {
		t.Errorf("ApplicationName = %q", cfg.ApplicationName)
	}
	if cfg.EngineName != "No Engine" {
		t.Errorf("EngineName = %q", cfg.EngineName)
	}
	for name, v := range map[string]Version{
		"application": cfg.ApplicationVersion,
		"engine":      cfg.EngineVersion,
		"api":         cfg.APIVersion,
	} {
		if v != MakeVersion(1, 0, 0) {
			t.Errorf("%s version = %v, want 1.0.0", name, v)
		}
	}
	if cfg.Diagnostics != DiagnosticsDefault {
		t.Errorf("Diagnostics = %v, want build default %v", cfg.Diagnostics, DiagnosticsDefault)
	}
	if cfg.ValidationLayer != DefaultValidationLayer || cfg.DebugExtension != DefaultDebugExtension {
		t.Errorf("layer/extension = %q/%q", cfg.ValidationLayer, cfg.DebugExtension)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestVersion(t *testing.T) {
	v := MakeVersion(1, 2, 3)
	if got := v.String(); got != "1.2.3" {
		t.Errorf("String() = %q", got)
	}
	// VK_MAKE_API_VERSION(0, 1, 2, 3)
	if got, want := v.Packed(), uint32(1<<22|2<<12|3); got != want {
		t.Errorf("Packed() = %#x, want %#x", got, want)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no layer", func(c *Config) { c.Diagnostics = true; c.ValidationLayer = "" }, ErrInvalidConfig},
		{"no debug extension", func(c *Config) { c.Diagnostics = true; c.DebugExtension = "" }, ErrInvalidConfig},
		{"long app name", func(c *Config) { c.ApplicationName = strings.Repeat("a", MaxNameSize) }, ErrNameTooLong},
		{"zero api", func(c *Config) { c.APIVersion = Version{} }, ErrInvalidConfig},
		{"negative max bytes", func(c *Config) { c.MaxMessageBytes = -1 }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConfigValidateDiagnosticsOffIgnoresLayer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Diagnostics = false
	cfg.ValidationLayer = ""
	cfg.DebugExtension = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestMaxMessageBytes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxMessageBytes = 0
	if got := cfg.maxMessageBytes(); got != DefaultMaxMessageBytes {
		t.Errorf("maxMessageBytes() = %d, want %d", got, DefaultMaxMessageBytes)
	}
	cfg.MaxMessageBytes = 16
	if got := cfg.maxMessageBytes(); got != 16 {
		t.Errorf("maxMessageBytes() = %d, want 16", got)
	}
}

func TestOptions(t *testing.T) {
	app := NewApp(nil,
		WithDiagnostics(true),
		WithApplication("viewer", MakeVersion(0, 3, 0)),
		WithEngine("engine", MakeVersion(2, 0, 0)),
		WithAPIVersion(MakeVersion(1, 2, 0)),
		WithValidationLayer("VK_LAYER_custom"),
		WithDebugExtension("VK_EXT_debug_report"),
		WithPortability(true),
		WithMaxMessageBytes(64),
	)
	cfg := app.Config()

	if !cfg.Diagnostics || !cfg.Portability {
		t.Error("diagnostics and portability should be enabled")
	}
	if cfg.ApplicationName != "viewer" || cfg.ApplicationVersion != MakeVersion(0, 3, 0) {
		t.Errorf("application = %q %v", cfg.ApplicationName, cfg.ApplicationVersion)
	}
	if cfg.EngineName != "engine" || cfg.EngineVersion != MakeVersion(2, 0, 0) {
		t.Errorf("engine = %q %v", cfg.EngineName, cfg.EngineVersion)
	}
	if cfg.APIVersion != MakeVersion(1, 2, 0) {
		t.Errorf("api = %v", cfg.APIVersion)
	}
	if cfg.ValidationLayer != "VK_LAYER_custom" || cfg.DebugExtension != "VK_EXT_debug_report" {
		t.Errorf("layer/extension = %q/%q", cfg.ValidationLayer, cfg.DebugExtension)
	}
	if cfg.MaxMessageBytes != 64 {
		t.Errorf("MaxMessageBytes = %d", cfg.MaxMessageBytes)
	}
	if app.State() != StateUninitialized {
		t.Errorf("State() = %v, want uninitialized", app.State())
	}
}

func TestWithConfigReplacesDefaults(t *testing.T) {
	base := DefaultConfig()
	base.ApplicationName = "replaced"
	app := NewApp(nil, WithConfig(base), WithDiagnostics(false))
	if app.Config().ApplicationName != "replaced" || app.Config().Diagnostics {
		t.Errorf("config = %+v", app.Config())
	}
}
