package vkboot

import (
	"errors"
	"fmt"
)

// State is the application lifecycle state.
type State int

const (
	// StateUninitialized is the state before a successful Create.
	StateUninitialized State = iota
	// StateCreated holds a live instance.
	StateCreated
	// StateDestroyed is terminal.
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCreated:
		return "created"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// App owns the instance and its debug channel for the whole life of the
// application and guarantees reverse-order teardown.
//
// App has a single owner: the goroutine running the event loop.
type App struct {
	cfg    Config
	driver Driver

	state    State
	instance *Instance
	debug    *DebugChannel
	frames   uint64
}

// NewApp returns an uninitialized App that will bootstrap through d.
// Options are applied on top of DefaultConfig.
func NewApp(d Driver, opts ...Option) *App {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &App{cfg: cfg, driver: d}
}

// Config returns the effective configuration.
func (a *App) Config() Config { return a.cfg }

// State returns the lifecycle state.
func (a *App) State() State { return a.state }

// Instance returns the live instance, nil unless created.
func (a *App) Instance() *Instance { return a.instance }

// Diagnostics returns the installed debug channel, nil when diagnostics
// are disabled or the app is not created.
func (a *App) Diagnostics() *DebugChannel { return a.debug }

// Frames returns the number of Render calls that succeeded.
func (a *App) Frames() uint64 { return a.frames }

// Create bootstraps the driver connection for w: layer discovery,
// instance negotiation and, with diagnostics, the debug channel.
//
// On any failure nothing acquired so far is kept: a created instance is
// destroyed again and the app stays uninitialized.
func (a *App) Create(w Window) error {
	switch a.state {
	case StateCreated:
		return ErrAlreadyCreated
	case StateDestroyed:
		return ErrDestroyed
	}

	inst, err := BuildInstance(a.driver, w, a.cfg)
	if err != nil {
		return fmt.Errorf("vkboot: create: %w", err)
	}

	debug, err := InstallDiagnostics(inst, a.cfg)
	if err != nil {
		// Cleanup on failure
		if derr := inst.Destroy(); derr != nil {
			Logger().Warn("vkboot: error releasing instance after failed create", "err", derr)
		}
		return fmt.Errorf("vkboot: create: %w", err)
	}

	a.instance = inst
	a.debug = debug
	a.state = StateCreated
	return nil
}

// Render is the per-frame hook. It does no work until presentation
// exists, but enforces the lifecycle: ErrNotCreated before Create and
// ErrDestroyed after Destroy.
func (a *App) Render(w Window) error {
	switch a.state {
	case StateUninitialized:
		return ErrNotCreated
	case StateDestroyed:
		return ErrDestroyed
	}
	a.frames++
	return nil
}

// Destroy releases the debug channel, then the instance.
// Calling Destroy exactly once is the caller's responsibility; extra
// calls only log a warning.
func (a *App) Destroy() {
	switch a.state {
	case StateUninitialized:
		Logger().Warn("vkboot: destroy called before create")
		return
	case StateDestroyed:
		Logger().Warn("vkboot: destroy called twice")
		return
	}

	// Release resources in reverse order of creation
	if a.debug != nil {
		a.debug.Uninstall()
		a.debug = nil
	}
	if err := a.instance.Destroy(); err != nil && !errors.Is(err, ErrDestroyed) {
		Logger().Error("vkboot: instance destroy failed", "err", err)
	}
	a.instance = nil
	a.state = StateDestroyed
}
