// Command vkboot opens a window, bootstraps a Vulkan instance with
// optional validation diagnostics and runs the event loop until the
// window is closed or the process is interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gogpu/vkboot"
	_ "github.com/gogpu/vkboot/driver/vkng"
	_ "github.com/gogpu/vkboot/driver/wgpuhal"
	"github.com/gogpu/vkboot/internal/config"
	"github.com/gogpu/vkboot/window/glfwwin"
)

func init() {
	// GLFW calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		cfgPath     = flag.String("config", "", "config file (TOML)")
		driverName  = flag.String("driver", "", "driver name (vulkan, wgpu-hal); empty picks the default")
		diagnostics = flag.Bool("diagnostics", vkboot.DiagnosticsDefault, "enable validation layer and debug messages")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vkboot: %v\n", err)
		return 1
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "driver":
			cfg.Driver.Name = *driverName
		case "diagnostics":
			cfg.Diagnostics.Enabled = *diagnostics
		}
	})

	level, _ := cfg.Log.SlogLevel()
	vkboot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := glfwwin.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "vkboot: %v\n", err)
		return 1
	}
	defer glfwwin.Terminate()

	win, err := glfwwin.NewWindow(glfwwin.Options{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "vkboot: %v\n", err)
		return 1
	}
	defer win.Destroy()

	drv, err := openDriver(cfg.Driver.Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vkboot: %v\n", err)
		return 1
	}

	app := vkboot.NewApp(drv, cfg.Options()...)
	if err := app.Create(win); err != nil {
		fmt.Fprintf(os.Stderr, "vkboot: %v\n", err)
		return 1
	}
	if err := win.Show(); err != nil {
		app.Destroy()
		fmt.Fprintf(os.Stderr, "vkboot: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := vkboot.Run(ctx, app, win, win.Events()); err != nil {
		fmt.Fprintf(os.Stderr, "vkboot: %v\n", err)
		return 1
	}

	vkboot.Logger().Info("vkboot: exit", "frames", app.Frames())
	return 0
}

func openDriver(name string) (vkboot.Driver, error) {
	entry := glfwwin.InstanceProcAddr()
	if name == "" {
		return vkboot.OpenDefaultDriver(entry)
	}
	return vkboot.OpenDriver(name, entry)
}
