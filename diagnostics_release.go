//go:build release

package vkboot

// DiagnosticsDefault is the build's default for Config.Diagnostics.
// Release builds skip the validation layer and debug channel.
const DiagnosticsDefault = false
