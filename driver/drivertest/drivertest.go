// Package drivertest provides an in-memory vkboot driver, window and event
// source for tests.
//
// The Driver records every boundary call in order, so tests can assert on
// acquisition and teardown sequences:
//
//	d := drivertest.NewDriver()
//	d.Layers = []string{vkboot.DefaultValidationLayer}
//	app := vkboot.NewApp(d, vkboot.WithDiagnostics(true))
//	_ = app.Create(drivertest.NewWindow())
//	app.Destroy()
//	// d.Ops() == [enumerate_layers enumerate_extensions create_instance
//	//             create_debug_channel destroy_debug_channel destroy_instance]
package drivertest

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vkboot"
)

// Recorded boundary operations.
const (
	OpEnumerateLayers     = "enumerate_layers"
	OpEnumerateExtensions = "enumerate_extensions"
	OpCreateInstance      = "create_instance"
	OpCreateDebugChannel  = "create_debug_channel"
	OpDestroyDebugChannel = "destroy_debug_channel"
	OpDestroyInstance     = "destroy_instance"
)

// ErrInjected is the default error returned by Fail.
var ErrInjected = errors.New("drivertest: injected failure")

// DefaultWindowExtensions is what NewWindow reports.
var DefaultWindowExtensions = []string{"VK_KHR_surface", "VK_KHR_xcb_surface"}

// ResultError is a driver error carrying a native result code.
type ResultError struct {
	Result int32
	Msg    string
}

func (e *ResultError) Error() string { return fmt.Sprintf("%s (%d)", e.Msg, e.Result) }

// Code returns the native result code.
func (e *ResultError) Code() int32 { return e.Result }

// Driver is a recording vkboot.Driver.
//
// Layers and Extensions are what the driver reports. Extensions are also
// the only extensions CreateInstance accepts unless AcceptAny is set.
type Driver struct {
	Layers     []string
	Extensions []string
	AcceptAny  bool

	mu         sync.Mutex
	ops        []string
	fail       map[string]error
	requests   []*vkboot.CreateRequest
	instances  []*Instance
	violations []string
}

// NewDriver returns a driver that offers the default window extensions
// and the debug extension, and no layers.
func NewDriver() *Driver {
	exts := slices.Clone(DefaultWindowExtensions)
	exts = append(exts, vkboot.DefaultDebugExtension)
	return &Driver{Extensions: exts}
}

// NewDiagnosticsDriver returns a driver that also offers the default
// validation layer.
func NewDiagnosticsDriver() *Driver {
	d := NewDriver()
	d.Layers = []string{vkboot.DefaultValidationLayer}
	return d
}

// Fail makes op return err (ErrInjected when err is nil) from now on.
func (d *Driver) Fail(op string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err == nil {
		err = ErrInjected
	}
	if d.fail == nil {
		d.fail = make(map[string]error)
	}
	d.fail[op] = err
}

func (d *Driver) record(op string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, op)
	return d.fail[op]
}

func (d *Driver) violate(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.violations = append(d.violations, fmt.Sprintf(format, args...))
}

// Ops returns the recorded operations in call order.
func (d *Driver) Ops() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.ops)
}

// Count returns how often op was called.
func (d *Driver) Count(op string) int {
	n := 0
	for _, o := range d.Ops() {
		if o == op {
			n++
		}
	}
	return n
}

// Requests returns every creation request received.
func (d *Driver) Requests() []*vkboot.CreateRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.requests)
}

// LastRequest returns the most recent creation request, or nil.
func (d *Driver) LastRequest() *vkboot.CreateRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.requests) == 0 {
		return nil
	}
	return d.requests[len(d.requests)-1]
}

// Instances returns every instance created.
func (d *Driver) Instances() []*Instance {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.instances)
}

// Violations lists contract violations the driver observed, such as an
// instance destroyed while a debug channel was alive.
func (d *Driver) Violations() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.violations)
}

// Live returns the number of instances and debug channels not destroyed.
func (d *Driver) Live() (instances, channels int) {
	for _, inst := range d.Instances() {
		if !inst.Destroyed() {
			instances++
		}
		channels += inst.LiveChannels()
	}
	return instances, channels
}

// Emit delivers m through every live debug channel.
func (d *Driver) Emit(m vkboot.Message) {
	for _, inst := range d.Instances() {
		inst.emit(m)
	}
}

// Name implements vkboot.Driver.
func (d *Driver) Name() string { return "drivertest" }

// Backend implements vkboot.Driver.
func (d *Driver) Backend() gputypes.Backend { return gputypes.BackendVulkan }

// EnumerateLayers implements vkboot.Driver.
func (d *Driver) EnumerateLayers() ([]string, error) {
	if err := d.record(OpEnumerateLayers); err != nil {
		return nil, err
	}
	return slices.Clone(d.Layers), nil
}

// EnumerateExtensions implements vkboot.ExtensionEnumerator.
func (d *Driver) EnumerateExtensions() ([]string, error) {
	if err := d.record(OpEnumerateExtensions); err != nil {
		return nil, err
	}
	return slices.Clone(d.Extensions), nil
}

// CreateInstance implements vkboot.Driver. It rejects unknown layers and,
// unless AcceptAny is set, unknown extensions, like a real driver would.
func (d *Driver) CreateInstance(req *vkboot.CreateRequest) (vkboot.DriverInstance, error) {
	if err := d.record(OpCreateInstance); err != nil {
		return nil, err
	}
	for _, l := range req.LayerNames() {
		if !slices.Contains(d.Layers, l) {
			return nil, &ResultError{Result: -6, Msg: "layer not present: " + l}
		}
	}
	if !d.AcceptAny {
		for _, e := range req.ExtensionNames() {
			if !slices.Contains(d.Extensions, e) {
				return nil, &ResultError{Result: -7, Msg: "extension not present: " + e}
			}
		}
	}

	inst := &Instance{driver: d, req: req}
	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.instances = append(d.instances, inst)
	d.mu.Unlock()
	return inst, nil
}

// NoExtensions wraps d so that it does not implement
// vkboot.ExtensionEnumerator.
func NoExtensions(d *Driver) vkboot.Driver {
	return noExtensions{d: d}
}

type noExtensions struct{ d *Driver }

func (n noExtensions) Name() string                       { return n.d.Name() }
func (n noExtensions) Backend() gputypes.Backend          { return n.d.Backend() }
func (n noExtensions) EnumerateLayers() ([]string, error) { return n.d.EnumerateLayers() }
func (n noExtensions) CreateInstance(req *vkboot.CreateRequest) (vkboot.DriverInstance, error) {
	return n.d.CreateInstance(req)
}

// Instance is a recorded vkboot.DriverInstance.
type Instance struct {
	driver *Driver
	req    *vkboot.CreateRequest

	mu        sync.Mutex
	channels  []*Channel
	destroyed bool
}

// Request returns the request the instance was created from.
func (i *Instance) Request() *vkboot.CreateRequest { return i.req }

// Destroyed reports whether Destroy was called.
func (i *Instance) Destroyed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.destroyed
}

// LiveChannels returns the number of channels not yet destroyed.
func (i *Instance) LiveChannels() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	n := 0
	for _, ch := range i.channels {
		if !ch.destroyed {
			n++
		}
	}
	return n
}

// Channels returns every debug channel created on the instance.
func (i *Instance) Channels() []*Channel {
	i.mu.Lock()
	defer i.mu.Unlock()
	return slices.Clone(i.channels)
}

// CreateDebugChannel implements vkboot.DriverInstance.
func (i *Instance) CreateDebugChannel(sub vkboot.DebugSubscription, cb vkboot.DebugCallback) (vkboot.DriverDebugChannel, error) {
	if err := i.driver.record(OpCreateDebugChannel); err != nil {
		return nil, err
	}
	if i.Destroyed() {
		i.driver.violate("debug channel created on destroyed instance")
	}
	ch := &Channel{inst: i, Subscription: sub, cb: cb}
	i.mu.Lock()
	i.channels = append(i.channels, ch)
	i.mu.Unlock()
	return ch, nil
}

// Destroy implements vkboot.DriverInstance.
func (i *Instance) Destroy() {
	_ = i.driver.record(OpDestroyInstance)
	if n := i.LiveChannels(); n > 0 {
		i.driver.violate("instance destroyed with %d live debug channel(s)", n)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.destroyed {
		i.driver.mu.Lock()
		i.driver.violations = append(i.driver.violations, "instance destroyed twice")
		i.driver.mu.Unlock()
	}
	i.destroyed = true
}

func (i *Instance) emit(m vkboot.Message) {
	i.mu.Lock()
	live := make([]*Channel, 0, len(i.channels))
	for _, ch := range i.channels {
		if !ch.destroyed {
			live = append(live, ch)
		}
	}
	i.mu.Unlock()
	for _, ch := range live {
		ch.Emit(m)
	}
}

// Channel is a recorded vkboot.DriverDebugChannel.
type Channel struct {
	inst         *Instance
	Subscription vkboot.DebugSubscription
	cb           vkboot.DebugCallback
	destroyed    bool
}

// Emit delivers m if it matches the subscription.
func (c *Channel) Emit(m vkboot.Message) {
	if m.Severity&c.Subscription.Severities == 0 || m.Category&c.Subscription.Categories == 0 {
		return
	}
	c.cb(m)
}

// Destroy implements vkboot.DriverDebugChannel.
func (c *Channel) Destroy() {
	_ = c.inst.driver.record(OpDestroyDebugChannel)
	c.inst.mu.Lock()
	defer c.inst.mu.Unlock()
	if c.inst.destroyed {
		c.inst.driver.mu.Lock()
		c.inst.driver.violations = append(c.inst.driver.violations, "debug channel destroyed after its instance")
		c.inst.driver.mu.Unlock()
	}
	c.destroyed = true
}

// Window is a fixed windowing collaborator.
type Window struct {
	Extensions []string
}

// NewWindow returns a window requiring DefaultWindowExtensions.
func NewWindow() *Window {
	return &Window{Extensions: slices.Clone(DefaultWindowExtensions)}
}

// RequiredInstanceExtensions implements vkboot.Window.
func (w *Window) RequiredInstanceExtensions() []string { return slices.Clone(w.Extensions) }
