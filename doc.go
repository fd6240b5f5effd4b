// Package vkboot bootstraps a graphics-driver instance for a native
// rendering application.
//
// # Overview
//
// vkboot covers the one-time sequence that connects an application to the
// graphics driver before any rendering happens:
//
//   - discovering the validation layers the driver exposes,
//   - gathering the presentation extensions the windowing layer requires,
//   - negotiating a single instance creation request,
//   - installing an optional diagnostics channel that routes driver
//     messages to the logger,
//   - tearing everything down again in reverse acquisition order.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/vkboot"
//	    "github.com/gogpu/vkboot/driver/vkng"
//	    "github.com/gogpu/vkboot/window/glfwwin"
//	)
//
//	win, _ := glfwwin.NewWindow(glfwwin.DefaultOptions())
//	drv, err := vkng.Open(glfwwin.InstanceProcAddr())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app := vkboot.NewApp(drv, vkboot.WithDiagnostics(true))
//	if err := app.Create(win); err != nil {
//	    log.Fatal(err)
//	}
//	err = vkboot.Run(ctx, app, win, win.Events())
//
// # Architecture
//
// The package is organized leaves first:
//   - Catalog: [DiscoverLayers], [DiscoverExtensions], [RequiredExtensions]
//   - Instance builder: [BuildInstance] producing an [Instance]
//   - Diagnostics channel: [InstallDiagnostics], [Route]
//   - Application lifecycle: [App] (create, render, destroy)
//   - Event-loop glue: [Run]
//
// Drivers implement the [Driver] boundary and live in subpackages
// (driver/vkng for Vulkan through vkngwrapper, driver/wgpuhal for the
// pure Go gogpu/wgpu HAL). Windowing is provided by window/glfwwin.
//
// # Ownership
//
// The debug channel is a child of the instance. [Instance.Destroy] refuses
// to run while a child channel is alive; [App.Destroy] always uninstalls
// the channel first.
//
// # Logging
//
// vkboot produces no log output by default. Call [SetLogger] to enable it.
package vkboot

// ModuleVersion is the current version of the library.
const ModuleVersion = "0.1.0"
