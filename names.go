package vkboot

import (
	"bytes"
	"fmt"
	"strings"
)

// MaxNameSize is the capacity of a layer or extension identifier,
// including the NUL terminator (VK_MAX_EXTENSION_NAME_SIZE).
const MaxNameSize = 256

// LayerName is a fixed-capacity, NUL-terminated layer identifier.
// Drivers receive pointers into the array, so a CreateRequest keeps its
// names alive for the duration of the creation call.
type LayerName [MaxNameSize]byte

// ExtensionName is a fixed-capacity, NUL-terminated extension identifier.
type ExtensionName [MaxNameSize]byte

// NewLayerName encodes s as a LayerName.
func NewLayerName(s string) (LayerName, error) {
	var n LayerName
	if err := encodeName(n[:], s); err != nil {
		return LayerName{}, err
	}
	return n, nil
}

// MustLayerName is like NewLayerName but panics on error.
// Use it only for compile-time constant names.
func MustLayerName(s string) LayerName {
	n, err := NewLayerName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the name without its terminator.
func (n LayerName) String() string { return decodeName(n[:]) }

// CString returns a pointer to the NUL-terminated backing storage.
func (n *LayerName) CString() *byte { return &n[0] }

// NewExtensionName encodes s as an ExtensionName.
func NewExtensionName(s string) (ExtensionName, error) {
	var n ExtensionName
	if err := encodeName(n[:], s); err != nil {
		return ExtensionName{}, err
	}
	return n, nil
}

// MustExtensionName is like NewExtensionName but panics on error.
func MustExtensionName(s string) ExtensionName {
	n, err := NewExtensionName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the name without its terminator.
func (n ExtensionName) String() string { return decodeName(n[:]) }

// CString returns a pointer to the NUL-terminated backing storage.
func (n *ExtensionName) CString() *byte { return &n[0] }

func encodeName(dst []byte, s string) error {
	if s == "" {
		return fmt.Errorf("vkboot: empty name")
	}
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("vkboot: name %q contains NUL", s)
	}
	// One byte is reserved for the terminator.
	if len(s) >= len(dst) {
		return fmt.Errorf("%w: %d bytes", ErrNameTooLong, len(s))
	}
	copy(dst, s)
	return nil
}

func decodeName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// LayerStrings converts names to strings, preserving order.
func LayerStrings(names []LayerName) []string {
	out := make([]string, len(names))
	for i := range names {
		out[i] = names[i].String()
	}
	return out
}

// ExtensionStrings converts names to strings, preserving order.
func ExtensionStrings(names []ExtensionName) []string {
	out := make([]string, len(names))
	for i := range names {
		out[i] = names[i].String()
	}
	return out
}
