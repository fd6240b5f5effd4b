//go:build !release

package vkboot

// DiagnosticsDefault is the build's default for Config.Diagnostics.
// Debug builds enable the validation layer and debug channel.
const DiagnosticsDefault = true
