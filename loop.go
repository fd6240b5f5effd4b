package vkboot

import (
	"context"
	"fmt"
)

// EventKind is a windowing lifecycle event the loop reacts to.
type EventKind int

const (
	// EventAboutToWait fires once the current event batch is drained.
	EventAboutToWait EventKind = iota
	// EventRedrawRequested asks for one frame.
	EventRedrawRequested
	// EventCloseRequested asks the application to exit.
	EventCloseRequested
)

func (k EventKind) String() string {
	switch k {
	case EventAboutToWait:
		return "about-to-wait"
	case EventRedrawRequested:
		return "redraw-requested"
	case EventCloseRequested:
		return "close-requested"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one windowing event.
type Event struct {
	Kind EventKind
}

// EventSource is the windowing collaborator's event pump.
type EventSource interface {
	// Wait blocks until at least one event is available or ctx is done,
	// and returns the drained batch in arrival order.
	Wait(ctx context.Context) ([]Event, error)

	// RequestRedraw schedules an EventRedrawRequested.
	RequestRedraw()
}

// Run drives app from src until a close request arrives or ctx is done.
//
// A redraw is requested once per drained batch. Redraws render a frame
// unless the loop is already exiting. A close request, or cancellation of
// ctx, destroys the app and ends the loop. A render error is fatal: the
// app is destroyed and the error is returned.
func Run(ctx context.Context, app *App, w Window, src EventSource) error {
	if app.State() != StateCreated {
		return ErrNotCreated
	}

	for {
		events, err := src.Wait(ctx)
		if ctx.Err() != nil {
			Logger().Info("vkboot: loop cancelled", "cause", context.Cause(ctx))
			app.Destroy()
			return nil
		}
		if err != nil {
			app.Destroy()
			return fmt.Errorf("vkboot: wait events: %w", err)
		}

		exiting := false
		for _, ev := range events {
			switch ev.Kind {
			case EventAboutToWait:
				if !exiting {
					src.RequestRedraw()
				}
			case EventRedrawRequested:
				if exiting {
					continue
				}
				if err := app.Render(w); err != nil {
					app.Destroy()
					return fmt.Errorf("vkboot: render: %w", err)
				}
			case EventCloseRequested:
				if !exiting {
					exiting = true
					app.Destroy()
				}
			}
		}
		if exiting {
			return nil
		}
	}
}
