// Package wgpuhal implements the vkboot driver boundary on top of the
// pure-Go wgpu HAL Vulkan backend.
//
// The HAL owns its own extension and layer selection, so this driver
// offers no layers and no debug channel. It suits release builds where
// diagnostics are off. Importing the package registers it as
// vkboot.DriverWGPUHAL.
package wgpuhal

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vkboot"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // registers the HAL Vulkan backend
)

func init() {
	vkboot.RegisterDriver(vkboot.DriverWGPUHAL, func(unsafe.Pointer) (vkboot.Driver, error) {
		d, err := Open()
		if err != nil {
			return nil, err
		}
		return d, nil
	})
}

// ErrNoDebugChannel is returned when diagnostics are requested from the HAL.
var ErrNoDebugChannel = errors.New("wgpuhal: debug channel not supported")

// InstanceFactory creates HAL instances. hal.Backend implements it.
type InstanceFactory interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// Driver wraps a HAL backend.
type Driver struct {
	factory InstanceFactory
}

// Open returns a driver over the registered HAL Vulkan backend.
func Open() (*Driver, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan HAL backend not available", vkboot.ErrDriverLoad)
	}
	return New(backend), nil
}

// New returns a driver over factory.
func New(factory InstanceFactory) *Driver {
	return &Driver{factory: factory}
}

// Name implements vkboot.Driver.
func (d *Driver) Name() string { return vkboot.DriverWGPUHAL }

// Backend implements vkboot.Driver.
func (d *Driver) Backend() gputypes.Backend { return gputypes.BackendVulkan }

// SetLogger sets the logger for the driver package.
// Called by vkboot.SetLogger to propagate logging configuration.
func (d *Driver) SetLogger(l *slog.Logger) { setLogger(l) }

// EnumerateLayers implements vkboot.Driver. The HAL exposes no layers.
func (d *Driver) EnumerateLayers() ([]string, error) {
	return []string{}, nil
}

// CreateInstance implements vkboot.Driver. Requested layers are rejected;
// requested extensions are left to the HAL, which enables what it needs.
func (d *Driver) CreateInstance(req *vkboot.CreateRequest) (vkboot.DriverInstance, error) {
	if len(req.Layers) > 0 {
		return nil, fmt.Errorf("wgpuhal: layers not supported: %v", req.LayerNames())
	}

	instance, err := d.factory.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpuhal: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	for i := range adapters {
		slogger().Debug("wgpuhal: adapter", "index", i, "name", adapters[i].Info.Name)
	}
	slogger().Debug("wgpuhal: instance created",
		"application", req.App.ApplicationName,
		"extensions", req.ExtensionNames(),
		"adapters", len(adapters))
	return &driverInstance{raw: instance, adapters: len(adapters)}, nil
}

type driverInstance struct {
	raw      hal.Instance
	adapters int
}

// CreateDebugChannel implements vkboot.DriverInstance.
func (i *driverInstance) CreateDebugChannel(vkboot.DebugSubscription, vkboot.DebugCallback) (vkboot.DriverDebugChannel, error) {
	return nil, ErrNoDebugChannel
}

// Destroy implements vkboot.DriverInstance.
func (i *driverInstance) Destroy() {
	i.raw.Destroy()
	slogger().Debug("wgpuhal: instance destroyed")
}
