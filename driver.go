package vkboot

import "github.com/gogpu/gputypes"

// Driver is the boundary to a loaded graphics driver.
//
// Implementations live in driver subpackages and are usually obtained
// through OpenDriver or OpenDefaultDriver. All methods are called from
// the control goroutine.
type Driver interface {
	// Name returns the driver identifier (e.g., "vulkan", "wgpu-hal").
	Name() string

	// Backend reports which graphics API the driver talks to.
	Backend() gputypes.Backend

	// EnumerateLayers lists the layers the driver exposes.
	EnumerateLayers() ([]string, error)

	// CreateInstance issues the single creation call for req.
	CreateInstance(req *CreateRequest) (DriverInstance, error)
}

// ExtensionEnumerator is implemented by drivers that can list the
// instance extensions they offer. BuildInstance checks requested
// extensions against it when available.
type ExtensionEnumerator interface {
	EnumerateExtensions() ([]string, error)
}

// DriverInstance is a live driver connection returned by CreateInstance.
type DriverInstance interface {
	// CreateDebugChannel registers cb for the subscribed messages.
	CreateDebugChannel(sub DebugSubscription, cb DebugCallback) (DriverDebugChannel, error)

	// Destroy releases the connection. Child objects must be gone.
	Destroy()
}

// DriverDebugChannel is a registered debug callback.
type DriverDebugChannel interface {
	Destroy()
}

// DebugSubscription selects which messages a debug channel receives.
type DebugSubscription struct {
	Severities Severity
	Categories Category
}

// DebugCallback receives one driver message. Drivers call it on the
// goroutine or OS thread that issued the triggering driver call.
// The driver must not be asked to abort the call, so drivers ignore any
// outcome of the callback and always report "continue".
type DebugCallback func(Message)

// CreateFlags are instance creation flags.
type CreateFlags uint32

const (
	// CreateFlagEnumeratePortability exposes portability implementations.
	CreateFlagEnumeratePortability CreateFlags = 1 << 0
)

// AppInfo is the application and engine metadata sent to the driver.
type AppInfo struct {
	ApplicationName    string
	ApplicationVersion Version
	EngineName         string
	EngineVersion      Version
	APIVersion         Version
}

// CreateRequest is the negotiated instance creation request. The name
// slices are owned by the request and must not be modified once built.
type CreateRequest struct {
	App        AppInfo
	Extensions []ExtensionName
	Layers     []LayerName
	Flags      CreateFlags
}

// ExtensionNames returns the requested extensions as strings, in order.
func (r *CreateRequest) ExtensionNames() []string { return ExtensionStrings(r.Extensions) }

// LayerNames returns the requested layers as strings, in order.
func (r *CreateRequest) LayerNames() []string { return LayerStrings(r.Layers) }

// Window is the windowing collaborator as seen by the bootstrap.
type Window interface {
	// RequiredInstanceExtensions lists the extensions needed to present
	// to this window.
	RequiredInstanceExtensions() []string
}
