// Package vkng implements the vkboot driver boundary on top of Vulkan
// through vkngwrapper.
//
// The loader entry point comes from the windowing layer:
//
//	drv, err := vkng.Open(window.InstanceProcAddr())
//
// Importing the package also registers it as vkboot.DriverVulkan:
//
//	import _ "github.com/gogpu/vkboot/driver/vkng"
package vkng

import (
	"fmt"
	"log/slog"
	"sort"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vkboot"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
)

func init() {
	vkboot.RegisterDriver(vkboot.DriverVulkan, func(entry unsafe.Pointer) (vkboot.Driver, error) {
		d, err := Open(entry)
		if err != nil {
			return nil, err
		}
		return d, nil
	})
}

// Driver is a Vulkan driver loaded through vkGetInstanceProcAddr.
type Driver struct {
	global core1_0.GlobalDriver
}

// Open loads the Vulkan global driver from procAddr. A nil procAddr or a
// loader failure is reported as vkboot.ErrDriverLoad.
func Open(procAddr unsafe.Pointer) (*Driver, error) {
	if procAddr == nil {
		return nil, fmt.Errorf("%w: vkGetInstanceProcAddr not available", vkboot.ErrDriverLoad)
	}
	global, err := core.CreateDriverFromProcAddr(procAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vkboot.ErrDriverLoad, err)
	}
	slogger().Debug("vkng: global driver loaded")
	return &Driver{global: global}, nil
}

// Name implements vkboot.Driver.
func (d *Driver) Name() string { return vkboot.DriverVulkan }

// Backend implements vkboot.Driver.
func (d *Driver) Backend() gputypes.Backend { return gputypes.BackendVulkan }

// SetLogger sets the logger for the driver package.
// Called by vkboot.SetLogger to propagate logging configuration.
func (d *Driver) SetLogger(l *slog.Logger) { setLogger(l) }

// EnumerateLayers implements vkboot.Driver.
func (d *Driver) EnumerateLayers() ([]string, error) {
	layers, res, err := d.global.AvailableLayers()
	if err != nil {
		return nil, newResultError(res, err)
	}
	names := make([]string, 0, len(layers))
	for name := range layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// EnumerateExtensions implements vkboot.ExtensionEnumerator.
func (d *Driver) EnumerateExtensions() ([]string, error) {
	extensions, res, err := d.global.AvailableExtensions()
	if err != nil {
		return nil, newResultError(res, err)
	}
	names := make([]string, 0, len(extensions))
	for name := range extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// CreateInstance implements vkboot.Driver.
func (d *Driver) CreateInstance(req *vkboot.CreateRequest) (vkboot.DriverInstance, error) {
	app := req.App
	info := core1_0.InstanceCreateInfo{
		ApplicationName:       app.ApplicationName,
		ApplicationVersion:    createVersion(app.ApplicationVersion),
		EngineName:            app.EngineName,
		EngineVersion:         createVersion(app.EngineVersion),
		EnabledExtensionNames: req.ExtensionNames(),
		EnabledLayerNames:     req.LayerNames(),
	}

	switch {
	case app.APIVersion.Major > 1 || app.APIVersion.Minor >= 2:
		info.APIVersion = common.Vulkan1_2
	case app.APIVersion.Minor == 1:
		info.APIVersion = common.Vulkan1_1
	default:
		info.APIVersion = common.Vulkan1_0
	}

	if req.Flags&vkboot.CreateFlagEnumeratePortability != 0 {
		info.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	handle, res, err := d.global.CreateInstance(nil, info)
	if err != nil {
		return nil, newResultError(res, err)
	}
	instanceDriver, err := d.global.BuildInstanceDriver(handle)
	if err != nil {
		// No instance driver to destroy through; go straight to the loader.
		d.global.Loader().VkDestroyInstance(handle.Handle(), nil)
		return nil, fmt.Errorf("build instance driver: %w", err)
	}
	slogger().Debug("vkng: instance created",
		"extensions", len(info.EnabledExtensionNames),
		"layers", len(info.EnabledLayerNames))
	return &instance{driver: instanceDriver}, nil
}

func createVersion(v vkboot.Version) common.Version {
	return common.CreateVersion(v.Major, v.Minor, v.Patch)
}

// resultError carries the VkResult of a failed call.
type resultError struct {
	res common.VkResult
	err error
}

func newResultError(res common.VkResult, err error) *resultError {
	return &resultError{res: res, err: err}
}

func (e *resultError) Error() string { return fmt.Sprintf("%v: %v", e.res, e.err) }

func (e *resultError) Unwrap() error { return e.err }

// Code returns the VkResult as its native integer value.
func (e *resultError) Code() int32 { return int32(e.res) }
