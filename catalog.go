package vkboot

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds the edit distance for Suggest.
const maxSuggestDistance = 8

// nameSet is an unordered set of driver identifiers.
type nameSet map[string]struct{}

func newNameSet(names []string) nameSet {
	s := make(nameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s nameSet) sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s nameSet) equal(o nameSet) bool {
	if len(s) != len(o) {
		return false
	}
	for n := range s {
		if _, ok := o[n]; !ok {
			return false
		}
	}
	return true
}

// LayerCatalog is the set of layers a driver exposes.
// It is queried once and read-only afterwards.
type LayerCatalog struct {
	names nameSet
}

// NewLayerCatalog builds a catalog from names. Duplicates collapse.
func NewLayerCatalog(names ...string) LayerCatalog {
	return LayerCatalog{names: newNameSet(names)}
}

// Has reports whether the layer is available.
func (c LayerCatalog) Has(name string) bool {
	_, ok := c.names[name]
	return ok
}

// Len returns the number of distinct layers.
func (c LayerCatalog) Len() int { return len(c.names) }

// Names returns the layer names in sorted order.
func (c LayerCatalog) Names() []string { return c.names.sorted() }

// Equal reports whether both catalogs hold the same names.
func (c LayerCatalog) Equal(o LayerCatalog) bool { return c.names.equal(o.names) }

// Suggest returns the available layer closest to name, or "" if none is
// reasonably close. Ties resolve to the lexically smallest name.
func (c LayerCatalog) Suggest(name string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, n := range c.Names() {
		d := levenshtein.ComputeDistance(name, n)
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// ExtensionCatalog is the set of instance extensions a driver offers.
type ExtensionCatalog struct {
	names nameSet
}

// NewExtensionCatalog builds a catalog from names.
func NewExtensionCatalog(names ...string) ExtensionCatalog {
	return ExtensionCatalog{names: newNameSet(names)}
}

// Has reports whether the extension is offered.
func (c ExtensionCatalog) Has(name string) bool {
	_, ok := c.names[name]
	return ok
}

// Len returns the number of distinct extensions.
func (c ExtensionCatalog) Len() int { return len(c.names) }

// Names returns the extension names in sorted order.
func (c ExtensionCatalog) Names() []string { return c.names.sorted() }

// DiscoverLayers enumerates the layers d exposes. A failing query is
// returned as a *DriverQueryError, never as an empty catalog.
func DiscoverLayers(d Driver) (LayerCatalog, error) {
	names, err := d.EnumerateLayers()
	if err != nil {
		return LayerCatalog{}, &DriverQueryError{Op: "enumerate layers", Err: err}
	}
	c := NewLayerCatalog(names...)
	Logger().Debug("vkboot: layers discovered", "driver", d.Name(), "count", c.Len())
	return c, nil
}

// DiscoverExtensions enumerates the instance extensions d offers. ok is
// false when d does not implement ExtensionEnumerator.
func DiscoverExtensions(d Driver) (c ExtensionCatalog, ok bool, err error) {
	e, ok := d.(ExtensionEnumerator)
	if !ok {
		return ExtensionCatalog{}, false, nil
	}
	names, err := e.EnumerateExtensions()
	if err != nil {
		return ExtensionCatalog{}, true, &DriverQueryError{Op: "enumerate extensions", Err: err}
	}
	return NewExtensionCatalog(names...), true, nil
}

// RequiredExtensions asks the windowing collaborator which extensions
// presenting to w needs. Order follows the collaborator. Names that do not
// fit an ExtensionName are logged and skipped.
func RequiredExtensions(w Window) []ExtensionName {
	raw := w.RequiredInstanceExtensions()
	out := make([]ExtensionName, 0, len(raw))
	for _, s := range raw {
		n, err := NewExtensionName(s)
		if err != nil {
			Logger().Warn("vkboot: skipping window extension", "name", s, "err", err)
			continue
		}
		out = append(out, n)
	}
	return out
}
