package glfwwin

import (
	"context"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/vkboot"
)

// DefaultWaitTimeout bounds how long a Wait blocks so cancellation of the
// loop context is noticed.
const DefaultWaitTimeout = 100 * time.Millisecond

// Events adapts GLFW's event queue to vkboot.EventSource.
//
// Each Wait pumps the queue once, collects close and refresh callbacks,
// and ends the batch with EventAboutToWait. A pending redraw request
// makes the next Wait poll instead of block.
type Events struct {
	win     *Window
	timeout time.Duration

	pending []vkboot.Event
	redraw  bool
}

// Events returns the event source for w. Only one source per window
// should be used; it installs the window's close and refresh callbacks.
func (w *Window) Events() *Events {
	e := &Events{win: w, timeout: DefaultWaitTimeout}
	if w.win != nil {
		w.win.SetCloseCallback(func(*glfw.Window) {
			e.pending = append(e.pending, vkboot.Event{Kind: vkboot.EventCloseRequested})
		})
		w.win.SetRefreshCallback(func(*glfw.Window) {
			e.redraw = true
		})
	}
	return e
}

// SetTimeout changes the maximum blocking time of Wait.
func (e *Events) SetTimeout(d time.Duration) {
	if d > 0 {
		e.timeout = d
	}
}

// Wait implements vkboot.EventSource. It must be called on the main thread.
func (e *Events) Wait(ctx context.Context) ([]vkboot.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.win.win == nil {
		return nil, ErrWindowDestroyed
	}

	if e.redraw || len(e.pending) > 0 {
		glfw.PollEvents()
	} else {
		glfw.WaitEventsTimeout(e.timeout.Seconds())
	}

	batch := e.pending
	e.pending = nil
	if e.redraw {
		e.redraw = false
		batch = append(batch, vkboot.Event{Kind: vkboot.EventRedrawRequested})
	}
	return append(batch, vkboot.Event{Kind: vkboot.EventAboutToWait}), nil
}

// RequestRedraw implements vkboot.EventSource.
func (e *Events) RequestRedraw() {
	e.redraw = true
	glfw.PostEmptyEvent()
}
