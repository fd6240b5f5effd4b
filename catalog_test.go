package vkboot_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/vkboot"
	"github.com/gogpu/vkboot/driver/drivertest"
)

func TestLayerCatalog(t *testing.T) {
	c := vkboot.NewLayerCatalog("VK_LAYER_b", "VK_LAYER_a", "VK_LAYER_b")

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (duplicates collapse)", c.Len())
	}
	if !c.Has("VK_LAYER_a") || c.Has("VK_LAYER_c") {
		t.Error("Has() mismatch")
	}
	if got := c.Names(); !slices.Equal(got, []string{"VK_LAYER_a", "VK_LAYER_b"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestDiscoverLayersIdempotent(t *testing.T) {
	d := drivertest.NewDriver()
	d.Layers = []string{vkboot.DefaultValidationLayer, "VK_LAYER_MESA_overlay"}

	first, err := vkboot.DiscoverLayers(d)
	if err != nil {
		t.Fatalf("DiscoverLayers() = %v", err)
	}
	second, err := vkboot.DiscoverLayers(d)
	if err != nil {
		t.Fatalf("DiscoverLayers() = %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("catalogs differ: %v vs %v", first.Names(), second.Names())
	}
	if d.Count(drivertest.OpEnumerateLayers) != 2 {
		t.Errorf("enumerate calls = %d, want 2", d.Count(drivertest.OpEnumerateLayers))
	}
}

func TestDiscoverLayersEmpty(t *testing.T) {
	c, err := vkboot.DiscoverLayers(drivertest.NewDriver())
	if err != nil {
		t.Fatalf("DiscoverLayers() = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestDiscoverLayersQueryError(t *testing.T) {
	d := drivertest.NewDriver()
	d.Fail(drivertest.OpEnumerateLayers, nil)

	_, err := vkboot.DiscoverLayers(d)
	if !errors.Is(err, vkboot.ErrDriverQuery) {
		t.Errorf("error = %v, want ErrDriverQuery", err)
	}
	if !errors.Is(err, drivertest.ErrInjected) {
		t.Errorf("error = %v, want wrapped cause", err)
	}
	var qe *vkboot.DriverQueryError
	if !errors.As(err, &qe) || qe.Op != "enumerate layers" {
		t.Errorf("error = %#v, want *DriverQueryError for enumerate layers", err)
	}
}

func TestDiscoverExtensions(t *testing.T) {
	d := drivertest.NewDriver()

	c, ok, err := vkboot.DiscoverExtensions(d)
	if err != nil || !ok {
		t.Fatalf("DiscoverExtensions() = %v, %v", ok, err)
	}
	if !c.Has(vkboot.DefaultDebugExtension) {
		t.Error("debug extension should be offered")
	}

	_, ok, err = vkboot.DiscoverExtensions(drivertest.NoExtensions(d))
	if ok || err != nil {
		t.Errorf("without enumerator: ok=%v err=%v, want false, nil", ok, err)
	}

	d.Fail(drivertest.OpEnumerateExtensions, nil)
	if _, _, err := vkboot.DiscoverExtensions(d); !errors.Is(err, vkboot.ErrDriverQuery) {
		t.Errorf("error = %v, want ErrDriverQuery", err)
	}
}

func TestSuggest(t *testing.T) {
	c := vkboot.NewLayerCatalog("VK_LAYER_LUNARG_standard_validation", "VK_LAYER_MESA_overlay")

	tests := []struct {
		name string
		want string
	}{
		{"VK_LAYER_LUNARG_standard_validatio", "VK_LAYER_LUNARG_standard_validation"},
		{"VK_LAYER_MESA_overly", "VK_LAYER_MESA_overlay"},
		{"something_else_entirely_unrelated", ""},
	}
	for _, tt := range tests {
		if got := c.Suggest(tt.name); got != tt.want {
			t.Errorf("Suggest(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
	if got := vkboot.NewLayerCatalog().Suggest("x"); got != "" {
		t.Errorf("empty catalog Suggest() = %q", got)
	}
}

func TestRequiredExtensions(t *testing.T) {
	w := &drivertest.Window{Extensions: []string{"VK_KHR_surface", "", "VK_KHR_wayland_surface"}}

	got := vkboot.ExtensionStrings(vkboot.RequiredExtensions(w))
	if !slices.Equal(got, []string{"VK_KHR_surface", "VK_KHR_wayland_surface"}) {
		t.Errorf("RequiredExtensions() = %v", got)
	}
}
