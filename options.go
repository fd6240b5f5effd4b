package vkboot

import "fmt"

// Well-known names used by the default configuration.
const (
	// DefaultValidationLayer is the Khronos validation layer.
	DefaultValidationLayer = "VK_LAYER_KHRONOS_validation"

	// DefaultDebugExtension is the debug-utilities instance extension.
	DefaultDebugExtension = "VK_EXT_debug_utils"

	// PortabilityEnumerationExtension lets the loader expose portability
	// (non-conformant) implementations such as MoltenVK.
	PortabilityEnumerationExtension = "VK_KHR_portability_enumeration"

	// DefaultMaxMessageBytes caps the text of one diagnostics message.
	DefaultMaxMessageBytes = 4096
)

// Version is an API or application version triple.
type Version struct {
	Major, Minor, Patch uint32
}

// MakeVersion returns a Version.
func MakeVersion(major, minor, patch uint32) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Packed returns the version in the driver's packed 10/10/12 bit layout.
func (v Version) Packed() uint32 {
	return v.Major<<22 | v.Minor<<12 | v.Patch
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Config holds the bootstrap configuration. It replaces build-time
// constants so both diagnostics modes can run in one binary.
//
// Example:
//
//	cfg := vkboot.DefaultConfig()
//	cfg.Diagnostics = true
//	inst, err := vkboot.BuildInstance(drv, win, cfg)
type Config struct {
	ApplicationName    string
	ApplicationVersion Version
	EngineName         string
	EngineVersion      Version

	// APIVersion is the minimum API version requested from the driver.
	APIVersion Version

	// Diagnostics gates the validation layer and the debug channel.
	Diagnostics bool

	// ValidationLayer is requested when Diagnostics is set.
	ValidationLayer string

	// DebugExtension is appended when Diagnostics is set.
	DebugExtension string

	// Portability enables portability enumeration when the driver offers it.
	Portability bool

	// MaxMessageBytes truncates diagnostics message text. Zero means
	// DefaultMaxMessageBytes.
	MaxMessageBytes int
}

// DefaultConfig returns the default configuration. Diagnostics follow the
// build: enabled unless built with -tags release.
func DefaultConfig() Config {
	return Config{
		ApplicationName:    "Cool Renderer",
		ApplicationVersion: MakeVersion(1, 0, 0),
		EngineName:         "No Engine",
		EngineVersion:      MakeVersion(1, 0, 0),
		APIVersion:         MakeVersion(1, 0, 0),
		Diagnostics:        DiagnosticsDefault,
		ValidationLayer:    DefaultValidationLayer,
		DebugExtension:     DefaultDebugExtension,
		MaxMessageBytes:    DefaultMaxMessageBytes,
	}
}

// Validate reports configuration errors that would otherwise surface as
// confusing driver failures.
func (c Config) Validate() error {
	if c.Diagnostics {
		if c.ValidationLayer == "" {
			return fmt.Errorf("%w: diagnostics enabled without a validation layer", ErrInvalidConfig)
		}
		if c.DebugExtension == "" {
			return fmt.Errorf("%w: diagnostics enabled without a debug extension", ErrInvalidConfig)
		}
	}
	for _, s := range []string{c.ApplicationName, c.EngineName, c.ValidationLayer, c.DebugExtension} {
		if len(s) >= MaxNameSize {
			return fmt.Errorf("%w: %q", ErrNameTooLong, s)
		}
	}
	if c.APIVersion.Major == 0 {
		return fmt.Errorf("%w: API version %s", ErrInvalidConfig, c.APIVersion)
	}
	if c.MaxMessageBytes < 0 {
		return fmt.Errorf("%w: negative MaxMessageBytes", ErrInvalidConfig)
	}
	return nil
}

func (c Config) maxMessageBytes() int {
	if c.MaxMessageBytes == 0 {
		return DefaultMaxMessageBytes
	}
	return c.MaxMessageBytes
}

// Option configures an App during creation.
//
// Example:
//
//	app := vkboot.NewApp(drv,
//	    vkboot.WithDiagnostics(true),
//	    vkboot.WithApplication("viewer", vkboot.MakeVersion(0, 3, 0)))
type Option func(*Config)

// WithConfig replaces the whole configuration. Later options still apply.
func WithConfig(c Config) Option {
	return func(o *Config) {
		*o = c
	}
}

// WithDiagnostics enables or disables the validation layer and debug channel.
func WithDiagnostics(enabled bool) Option {
	return func(o *Config) {
		o.Diagnostics = enabled
	}
}

// WithApplication sets the application name and version reported to the driver.
func WithApplication(name string, v Version) Option {
	return func(o *Config) {
		o.ApplicationName = name
		o.ApplicationVersion = v
	}
}

// WithEngine sets the engine name and version reported to the driver.
func WithEngine(name string, v Version) Option {
	return func(o *Config) {
		o.EngineName = name
		o.EngineVersion = v
	}
}

// WithAPIVersion sets the minimum API version.
func WithAPIVersion(v Version) Option {
	return func(o *Config) {
		o.APIVersion = v
	}
}

// WithValidationLayer overrides the validation layer name.
func WithValidationLayer(name string) Option {
	return func(o *Config) {
		o.ValidationLayer = name
	}
}

// WithDebugExtension overrides the debug extension name.
func WithDebugExtension(name string) Option {
	return func(o *Config) {
		o.DebugExtension = name
	}
}

// WithPortability enables portability enumeration when available.
func WithPortability(enabled bool) Option {
	return func(o *Config) {
		o.Portability = enabled
	}
}

// WithMaxMessageBytes sets the diagnostics message truncation limit.
func WithMaxMessageBytes(n int) Option {
	return func(o *Config) {
		o.MaxMessageBytes = n
	}
}
