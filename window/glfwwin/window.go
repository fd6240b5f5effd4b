// Package glfwwin provides the vkboot windowing collaborator on GLFW.
//
// GLFW must be driven from the main OS thread. Callers lock it in main
// before calling Init:
//
//	func init() { runtime.LockOSThread() }
//
//	if err := glfwwin.Init(); err != nil { ... }
//	defer glfwwin.Terminate()
//	win, err := glfwwin.NewWindow(glfwwin.DefaultOptions())
package glfwwin

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/vkboot"
)

// ErrWindowDestroyed is returned when a destroyed window is used.
var ErrWindowDestroyed = errors.New("glfwwin: window destroyed")

// Init initializes GLFW and checks that a Vulkan loader is reachable.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfwwin: init: %w", err)
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return fmt.Errorf("%w: no Vulkan loader found", vkboot.ErrDriverLoad)
	}
	return nil
}

// Terminate releases GLFW. Every window must be destroyed first.
func Terminate() {
	glfw.Terminate()
}

// InstanceProcAddr returns vkGetInstanceProcAddr as resolved by GLFW.
// It is the entry point passed to vkboot.OpenDriver.
func InstanceProcAddr() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

// Options configures a window.
type Options struct {
	Width  int
	Height int
	Title  string
}

// DefaultOptions returns an 800x600 window titled "vkboot".
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Title: "vkboot"}
}

// Window is a GLFW window without a client API. It is created hidden so
// that nothing is shown before the instance exists; call Show after a
// successful vkboot.App.Create.
type Window struct {
	win  *glfw.Window
	opts Options
}

// NewWindow creates a hidden, fixed-size window.
func NewWindow(opts Options) (*Window, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("glfwwin: invalid size %dx%d", opts.Width, opts.Height)
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfwwin: create window: %w", err)
	}
	vkboot.Logger().Debug("glfwwin: window created", "width", opts.Width, "height", opts.Height)
	return &Window{win: win, opts: opts}, nil
}

// Options returns the options the window was created with.
func (w *Window) Options() Options { return w.opts }

// RequiredInstanceExtensions implements vkboot.Window.
func (w *Window) RequiredInstanceExtensions() []string {
	if w.win == nil {
		return nil
	}
	return w.win.GetRequiredInstanceExtensions()
}

// Show makes the window visible.
func (w *Window) Show() error {
	if w.win == nil {
		return ErrWindowDestroyed
	}
	w.win.Show()
	return nil
}

// Destroy closes the window. It is safe to call more than once.
func (w *Window) Destroy() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
}
