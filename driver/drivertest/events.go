package drivertest

import (
	"context"
	"sync"

	"github.com/gogpu/vkboot"
)

// Events is a scripted vkboot.EventSource. Each Wait returns a pending
// redraw (if one was requested) followed by the next scripted batch with
// an EventAboutToWait appended, mirroring how a platform loop drains a
// batch. Once the script is exhausted Wait blocks until ctx is done, even
// with a redraw pending.
type Events struct {
	mu       sync.Mutex
	batches  [][]vkboot.Event
	redraw   bool
	requests int
	waits    int
}

// NewEvents returns a source that replays batches in order.
func NewEvents(batches ...[]vkboot.Event) *Events {
	return &Events{batches: batches}
}

// Batch is shorthand for a batch of events of the given kinds.
func Batch(kinds ...vkboot.EventKind) []vkboot.Event {
	out := make([]vkboot.Event, len(kinds))
	for i, k := range kinds {
		out[i] = vkboot.Event{Kind: k}
	}
	return out
}

// Wait implements vkboot.EventSource.
func (e *Events) Wait(ctx context.Context) ([]vkboot.Event, error) {
	e.mu.Lock()
	e.waits++
	var out []vkboot.Event
	more := len(e.batches) > 0
	if more {
		if e.redraw {
			out = append(out, vkboot.Event{Kind: vkboot.EventRedrawRequested})
			e.redraw = false
		}
		out = append(out, e.batches[0]...)
		e.batches = e.batches[1:]
	}
	e.mu.Unlock()

	if !more {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return append(out, vkboot.Event{Kind: vkboot.EventAboutToWait}), nil
}

// RequestRedraw implements vkboot.EventSource.
func (e *Events) RequestRedraw() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.redraw = true
	e.requests++
}

// RedrawRequests returns how many redraws were requested.
func (e *Events) RedrawRequests() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.requests
}

// Waits returns how many times Wait was called.
func (e *Events) Waits() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.waits
}
