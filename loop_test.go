package vkboot_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/gogpu/vkboot"
	"github.com/gogpu/vkboot/driver/drivertest"
)

func createdApp(t *testing.T, d *drivertest.Driver, w vkboot.Window) *vkboot.App {
	t.Helper()
	app := vkboot.NewApp(d, vkboot.WithDiagnostics(true))
	if err := app.Create(w); err != nil {
		t.Fatalf("Create() = %v", err)
	}
	return app
}

func TestRunCloseRequested(t *testing.T) {
	d := drivertest.NewDiagnosticsDriver()
	w := drivertest.NewWindow()
	app := createdApp(t, d, w)

	src := drivertest.NewEvents(
		drivertest.Batch(),
		drivertest.Batch(),
		drivertest.Batch(vkboot.EventCloseRequested),
	)
	if err := vkboot.Run(context.Background(), app, w, src); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if app.State() != vkboot.StateDestroyed {
		t.Errorf("State() = %v, want destroyed", app.State())
	}
	// Each of the first two batches requests a redraw that is delivered
	// at the start of the next batch.
	if app.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", app.Frames())
	}
	if n := d.Count(drivertest.OpDestroyDebugChannel); n != 1 {
		t.Errorf("uninstall called %d times, want 1", n)
	}
	if n := d.Count(drivertest.OpDestroyInstance); n != 1 {
		t.Errorf("destroy_instance called %d times, want 1", n)
	}
	ops := d.Ops()
	if i, j := slices.Index(ops, drivertest.OpDestroyDebugChannel), slices.Index(ops, drivertest.OpDestroyInstance); i > j {
		t.Errorf("ops = %v, debug channel must go first", ops)
	}
	if inst, ch := d.Live(); inst != 0 || ch != 0 {
		t.Errorf("leaked %d instances, %d channels", inst, ch)
	}
}

func TestRunNoRenderAfterClose(t *testing.T) {
	d := drivertest.NewDiagnosticsDriver()
	w := drivertest.NewWindow()
	app := createdApp(t, d, w)

	src := drivertest.NewEvents(
		drivertest.Batch(vkboot.EventCloseRequested, vkboot.EventRedrawRequested, vkboot.EventCloseRequested),
	)
	if err := vkboot.Run(context.Background(), app, w, src); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if app.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", app.Frames())
	}
	if n := d.Count(drivertest.OpDestroyInstance); n != 1 {
		t.Errorf("destroy_instance called %d times, want 1", n)
	}
	if src.RedrawRequests() != 0 {
		t.Error("no redraw should be requested while exiting")
	}
}

func TestRunCancelled(t *testing.T) {
	d := drivertest.NewDiagnosticsDriver()
	w := drivertest.NewWindow()
	app := createdApp(t, d, w)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	src := drivertest.NewEvents(drivertest.Batch(vkboot.EventRedrawRequested))
	if err := vkboot.Run(ctx, app, w, src); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if app.State() != vkboot.StateDestroyed {
		t.Errorf("State() = %v, want destroyed", app.State())
	}
	if app.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", app.Frames())
	}
	if inst, ch := d.Live(); inst != 0 || ch != 0 {
		t.Errorf("leaked %d instances, %d channels", inst, ch)
	}
}

type failingSource struct{ err error }

func (f failingSource) Wait(context.Context) ([]vkboot.Event, error) { return nil, f.err }
func (failingSource) RequestRedraw()                                 {}

func TestRunWaitError(t *testing.T) {
	d := drivertest.NewDiagnosticsDriver()
	w := drivertest.NewWindow()
	app := createdApp(t, d, w)
	boom := errors.New("display lost")

	err := vkboot.Run(context.Background(), app, w, failingSource{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("Run() = %v, want wrapped wait error", err)
	}
	if app.State() != vkboot.StateDestroyed {
		t.Errorf("State() = %v, want destroyed", app.State())
	}
}

func TestRunRequiresCreatedApp(t *testing.T) {
	d := drivertest.NewDiagnosticsDriver()
	app := vkboot.NewApp(d)

	err := vkboot.Run(context.Background(), app, drivertest.NewWindow(), drivertest.NewEvents())
	if !errors.Is(err, vkboot.ErrNotCreated) {
		t.Errorf("Run() = %v, want ErrNotCreated", err)
	}
	if len(d.Ops()) != 0 {
		t.Errorf("ops = %v, want none", d.Ops())
	}
}

func TestEventKindString(t *testing.T) {
	tests := map[vkboot.EventKind]string{
		vkboot.EventAboutToWait:     "about-to-wait",
		vkboot.EventRedrawRequested: "redraw-requested",
		vkboot.EventCloseRequested:  "close-requested",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
