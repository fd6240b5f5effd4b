package vkboot

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// Instance owns a live driver connection and, optionally, its debug
// channel. It is created by BuildInstance and must be destroyed exactly
// once, after its debug channel has been uninstalled.
//
// Instance is not safe for concurrent use; it belongs to the control
// goroutine.
type Instance struct {
	id     string
	driver Driver
	raw    DriverInstance
	req    *CreateRequest
	cfg    Config

	// child is the installed debug channel, nil when none is alive.
	child *DebugChannel

	destroyed bool
}

// BuildInstance negotiates a creation request for w and creates the
// driver instance.
//
// With cfg.Diagnostics the validation layer must be present in the layer
// catalog, otherwise a *MissingLayerError is returned and the driver is
// never asked to create an instance. When the driver can enumerate
// extensions, every requested extension is checked the same way.
// Driver refusals are returned as *DriverRejectedError and are not retried.
func BuildInstance(d Driver, w Window, cfg Config) (*Instance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Step 1: Validation layer
	var layers []LayerName
	if cfg.Diagnostics {
		catalog, err := DiscoverLayers(d)
		if err != nil {
			return nil, err
		}
		if !catalog.Has(cfg.ValidationLayer) {
			return nil, &MissingLayerError{
				Layer:      cfg.ValidationLayer,
				Suggestion: catalog.Suggest(cfg.ValidationLayer),
			}
		}
		// Step 2: Requested layers
		n, err := NewLayerName(cfg.ValidationLayer)
		if err != nil {
			return nil, fmt.Errorf("%w: validation layer: %w", ErrInvalidConfig, err)
		}
		layers = append(layers, n)
	}

	// Step 3: Requested extensions
	extensions := RequiredExtensions(w)
	available, canCheck, err := DiscoverExtensions(d)
	if err != nil {
		return nil, err
	}
	if canCheck {
		for _, e := range extensions {
			if !available.Has(e.String()) {
				return nil, &MissingExtensionError{Extension: e.String(), Source: "window"}
			}
		}
	}
	if cfg.Diagnostics {
		if canCheck && !available.Has(cfg.DebugExtension) {
			return nil, &MissingExtensionError{Extension: cfg.DebugExtension, Source: "diagnostics"}
		}
		n, err := NewExtensionName(cfg.DebugExtension)
		if err != nil {
			return nil, fmt.Errorf("%w: debug extension: %w", ErrInvalidConfig, err)
		}
		extensions = appendUnique(extensions, n)
	}

	var flags CreateFlags
	if cfg.Portability && canCheck && available.Has(PortabilityEnumerationExtension) {
		extensions = appendUnique(extensions, MustExtensionName(PortabilityEnumerationExtension))
		flags |= CreateFlagEnumeratePortability
	}

	// Step 4: Metadata
	req := &CreateRequest{
		App: AppInfo{
			ApplicationName:    cfg.ApplicationName,
			ApplicationVersion: cfg.ApplicationVersion,
			EngineName:         cfg.EngineName,
			EngineVersion:      cfg.EngineVersion,
			APIVersion:         cfg.APIVersion,
		},
		Extensions: extensions,
		Layers:     layers,
		Flags:      flags,
	}

	Logger().Debug("vkboot: creating instance",
		"driver", d.Name(),
		"api", cfg.APIVersion.String(),
		"extensions", req.ExtensionNames(),
		"layers", req.LayerNames())

	// Step 5: Creation call
	raw, err := d.CreateInstance(req)
	if err != nil {
		return nil, rejected("create instance", err)
	}
	if raw == nil {
		return nil, rejected("create instance", fmt.Errorf("driver %s returned no instance", d.Name()))
	}

	inst := &Instance{
		id:     uuid.NewString(),
		driver: d,
		raw:    raw,
		req:    req,
		cfg:    cfg,
	}
	inst.logger().Info("vkboot: instance created", "driver", d.Name(), "diagnostics", cfg.Diagnostics)
	return inst, nil
}

func appendUnique(list []ExtensionName, n ExtensionName) []ExtensionName {
	if slices.Contains(list, n) {
		return list
	}
	return append(list, n)
}

// ID returns the session id used to correlate this instance's log lines.
func (i *Instance) ID() string { return i.id }

// Driver returns the driver that created the instance.
func (i *Instance) Driver() Driver { return i.driver }

// Request returns the creation request the instance was built from.
func (i *Instance) Request() *CreateRequest { return i.req }

// Config returns the configuration the instance was built with.
func (i *Instance) Config() Config { return i.cfg }

// Diagnostics returns the installed debug channel, or nil.
func (i *Instance) Diagnostics() *DebugChannel { return i.child }

// Destroyed reports whether Destroy has completed.
func (i *Instance) Destroyed() bool { return i.destroyed }

// Destroy releases the driver connection.
//
// Destroy refuses with ErrTeardownOrder while a debug channel is still
// installed and leaves the instance untouched. A second call returns
// ErrDestroyed.
func (i *Instance) Destroy() error {
	if i.destroyed {
		return ErrDestroyed
	}
	if i.child != nil {
		i.logger().Error("vkboot: instance destroy refused, debug channel still installed")
		return ErrTeardownOrder
	}
	i.raw.Destroy()
	i.destroyed = true
	i.logger().Info("vkboot: instance destroyed")
	return nil
}

func (i *Instance) logger() *slog.Logger {
	return Logger().With("instance", i.id)
}
