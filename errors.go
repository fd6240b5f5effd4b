package vkboot

import (
	"errors"
	"fmt"
)

// Package errors. Structured errors below match these with errors.Is.
var (
	// ErrDriverLoad is returned when the driver entry point cannot be
	// located or loaded.
	ErrDriverLoad = errors.New("vkboot: driver load failed")

	// ErrMissingValidationLayer is returned when diagnostics are requested
	// but the validation layer is not installed.
	ErrMissingValidationLayer = errors.New("vkboot: validation layer not available")

	// ErrMissingExtension is returned when a required instance extension is
	// not offered by the driver.
	ErrMissingExtension = errors.New("vkboot: instance extension not available")

	// ErrDriverRejected is returned when the driver refuses instance or
	// debug channel creation.
	ErrDriverRejected = errors.New("vkboot: driver rejected request")

	// ErrDriverQuery is returned when an enumeration call fails.
	ErrDriverQuery = errors.New("vkboot: driver query failed")

	// ErrNotCreated is returned when a lifecycle operation needs a created app.
	ErrNotCreated = errors.New("vkboot: app not created")

	// ErrAlreadyCreated is returned by Create on an app that is already created.
	ErrAlreadyCreated = errors.New("vkboot: app already created")

	// ErrDestroyed is returned when an operation is attempted after destroy.
	ErrDestroyed = errors.New("vkboot: already destroyed")

	// ErrTeardownOrder is returned when an instance is destroyed while its
	// debug channel is still installed.
	ErrTeardownOrder = errors.New("vkboot: debug channel must be uninstalled before its instance")

	// ErrNameTooLong is returned when a layer or extension name does not fit
	// the fixed-capacity identifier.
	ErrNameTooLong = errors.New("vkboot: name exceeds identifier capacity")

	// ErrUnknownDriver is returned when no driver is registered under a name.
	ErrUnknownDriver = errors.New("vkboot: unknown driver")

	// ErrInvalidConfig is returned by Config.Validate and when diagnostics
	// are requested on an instance built without them.
	ErrInvalidConfig = errors.New("vkboot: invalid config")
)

// MissingLayerError names the validation layer that was requested but not
// found in the layer catalog.
type MissingLayerError struct {
	Layer string
	// Suggestion is the closest available layer name, if any.
	Suggestion string
}

func (e *MissingLayerError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("vkboot: validation layer %q not available (did you mean %q?); install the Vulkan SDK or disable diagnostics",
			e.Layer, e.Suggestion)
	}
	return fmt.Sprintf("vkboot: validation layer %q not available; install the Vulkan SDK or disable diagnostics", e.Layer)
}

func (e *MissingLayerError) Is(target error) bool { return target == ErrMissingValidationLayer }

// MissingExtensionError names an instance extension the driver does not offer.
type MissingExtensionError struct {
	Extension string
	// Source is who asked for it: "window" or "diagnostics".
	Source string
}

func (e *MissingExtensionError) Error() string {
	return fmt.Sprintf("vkboot: instance extension %q required by %s not available", e.Extension, e.Source)
}

func (e *MissingExtensionError) Is(target error) bool { return target == ErrMissingExtension }

// DriverRejectedError wraps a driver-level refusal.
type DriverRejectedError struct {
	// Op is the refused operation, e.g. "create instance".
	Op string
	// Code is the driver's native result code, zero if unknown.
	Code int32
	Err  error
}

func (e *DriverRejectedError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("vkboot: driver rejected %s (code %d): %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("vkboot: driver rejected %s: %v", e.Op, e.Err)
}

func (e *DriverRejectedError) Unwrap() error { return e.Err }

func (e *DriverRejectedError) Is(target error) bool { return target == ErrDriverRejected }

// DriverQueryError wraps a failed enumeration call.
type DriverQueryError struct {
	Op  string
	Err error
}

func (e *DriverQueryError) Error() string {
	return fmt.Sprintf("vkboot: %s: %v", e.Op, e.Err)
}

func (e *DriverQueryError) Unwrap() error { return e.Err }

func (e *DriverQueryError) Is(target error) bool { return target == ErrDriverQuery }

// CodedError is implemented by driver errors that carry a native result code.
type CodedError interface {
	error
	Code() int32
}

// rejected builds a DriverRejectedError, lifting the native code if the
// driver error carries one.
func rejected(op string, err error) *DriverRejectedError {
	e := &DriverRejectedError{Op: op, Err: err}
	var coded CodedError
	if errors.As(err, &coded) {
		e.Code = coded.Code()
	}
	return e
}
