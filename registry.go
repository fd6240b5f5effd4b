package vkboot

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"unsafe"
)

// DriverFactory opens a driver. entry is the loader entry point
// (vkGetInstanceProcAddr) supplied by the windowing layer; drivers that
// load themselves ignore it.
type DriverFactory func(entry unsafe.Pointer) (Driver, error)

// Driver names registered by the driver subpackages.
const (
	DriverVulkan  = "vulkan"
	DriverWGPUHAL = "wgpu-hal"
)

// registry holds registered drivers.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]DriverFactory)
	opened     []Driver
	// Priority order for driver selection (first that opens wins).
	driverPriority = []string{DriverVulkan, DriverWGPUHAL}
)

// RegisterDriver registers a driver factory with the given name.
// This is typically called from init() functions in driver packages.
// If a driver with the same name is already registered, it is replaced.
func RegisterDriver(name string, factory DriverFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// UnregisterDriver removes a driver from the registry.
// This is useful for testing.
func UnregisterDriver(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// AvailableDrivers returns the registered driver names.
func AvailableDrivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// IsDriverRegistered checks if a driver with the given name is registered.
func IsDriverRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// OpenDriver opens the named driver. Load failures match ErrDriverLoad.
func OpenDriver(name string, entry unsafe.Pointer) (Driver, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}

	d, err := factory(entry)
	if err != nil {
		if errors.Is(err, ErrDriverLoad) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrDriverLoad, name, err)
	}
	if d == nil {
		return nil, fmt.Errorf("%w: %s returned no driver", ErrDriverLoad, name)
	}

	registryMu.Lock()
	opened = append(opened, d)
	registryMu.Unlock()

	propagateLogger(d, Logger())
	Logger().Info("vkboot: driver opened", "driver", name)
	return d, nil
}

// OpenDefaultDriver opens the first registered driver in priority order
// (vulkan, then wgpu-hal, then any other) that loads successfully.
func OpenDefaultDriver(entry unsafe.Pointer) (Driver, error) {
	registryMu.RLock()
	var order []string
	for _, name := range driverPriority {
		if _, ok := factories[name]; ok {
			order = append(order, name)
		}
	}
	var rest []string
	for name := range factories {
		if !containsString(driverPriority, name) {
			rest = append(rest, name)
		}
	}
	registryMu.RUnlock()
	sort.Strings(rest)
	order = append(order, rest...)

	if len(order) == 0 {
		return nil, fmt.Errorf("%w: no drivers registered", ErrDriverLoad)
	}

	var errs []error
	for _, name := range order {
		d, err := OpenDriver(name, entry)
		if err == nil {
			return d, nil
		}
		Logger().Warn("vkboot: driver unavailable", "driver", name, "err", err)
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// openDrivers returns the drivers opened so far, for logger propagation.
func openDrivers() []Driver {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return append([]Driver(nil), opened...)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
