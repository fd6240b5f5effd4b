package drivertest

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/gogpu/vkboot"
)

func kinds(events []vkboot.Event) []vkboot.EventKind {
	out := make([]vkboot.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestEventsReplay(t *testing.T) {
	e := NewEvents(Batch(vkboot.EventCloseRequested), Batch())
	ctx := context.Background()

	got, err := e.Wait(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []vkboot.EventKind{vkboot.EventCloseRequested, vkboot.EventAboutToWait}; !slices.Equal(kinds(got), want) {
		t.Errorf("first batch = %v, want %v", kinds(got), want)
	}

	e.RequestRedraw()
	got, err = e.Wait(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []vkboot.EventKind{vkboot.EventRedrawRequested, vkboot.EventAboutToWait}; !slices.Equal(kinds(got), want) {
		t.Errorf("second batch = %v, want %v", kinds(got), want)
	}
	if e.RedrawRequests() != 1 || e.Waits() != 2 {
		t.Errorf("requests=%d waits=%d", e.RedrawRequests(), e.Waits())
	}
}

func TestEventsExhaustedBlocks(t *testing.T) {
	e := NewEvents()
	e.RequestRedraw()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := e.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() = %v, want DeadlineExceeded", err)
	}
}

func TestDriverRejectsUnknownNames(t *testing.T) {
	d := NewDriver()
	req := &vkboot.CreateRequest{Layers: []vkboot.LayerName{vkboot.MustLayerName("VK_LAYER_missing")}}
	_, err := d.CreateInstance(req)
	var re *ResultError
	if !errors.As(err, &re) || re.Code() != -6 {
		t.Errorf("error = %v, want layer-not-present result", err)
	}

	req = &vkboot.CreateRequest{Extensions: []vkboot.ExtensionName{vkboot.MustExtensionName("VK_EXT_missing")}}
	if _, err := d.CreateInstance(req); !errors.As(err, &re) || re.Code() != -7 {
		t.Errorf("error = %v, want extension-not-present result", err)
	}

	d.AcceptAny = true
	if _, err := d.CreateInstance(req); err != nil {
		t.Errorf("AcceptAny: %v", err)
	}
}

func TestViolations(t *testing.T) {
	d := NewDriver()
	raw, err := d.CreateInstance(&vkboot.CreateRequest{})
	if err != nil {
		t.Fatal(err)
	}
	ch, err := raw.CreateDebugChannel(vkboot.DebugSubscription{Severities: vkboot.SeverityAll, Categories: vkboot.CategoryAll}, func(vkboot.Message) {})
	if err != nil {
		t.Fatal(err)
	}
	raw.Destroy()
	ch.Destroy()

	if got := len(d.Violations()); got != 2 {
		t.Errorf("violations = %v, want instance-with-live-channel and channel-after-instance", d.Violations())
	}
}

func TestChannelFiltersBySubscription(t *testing.T) {
	d := NewDriver()
	raw, _ := d.CreateInstance(&vkboot.CreateRequest{})
	var got []string
	_, _ = raw.CreateDebugChannel(vkboot.DebugSubscription{Severities: vkboot.SeverityError, Categories: vkboot.CategoryValidation},
		func(m vkboot.Message) { got = append(got, m.Text) })

	d.Emit(vkboot.Message{Severity: vkboot.SeverityError, Category: vkboot.CategoryValidation, Text: "kept"})
	d.Emit(vkboot.Message{Severity: vkboot.SeverityInfo, Category: vkboot.CategoryValidation, Text: "dropped severity"})
	d.Emit(vkboot.Message{Severity: vkboot.SeverityError, Category: vkboot.CategoryGeneral, Text: "dropped category"})

	if !slices.Equal(got, []string{"kept"}) {
		t.Errorf("delivered = %v", got)
	}
}
