package vkboot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

// Severity is a bit set of driver message severities.
type Severity uint32

// Message severities, least to most severe.
const (
	SeverityVerbose Severity = 1 << iota
	SeverityInfo
	SeverityWarning
	SeverityError

	// SeverityAll subscribes to every severity.
	SeverityAll = SeverityVerbose | SeverityInfo | SeverityWarning | SeverityError
)

// String returns the name of the highest set severity.
func (s Severity) String() string {
	switch {
	case s&SeverityError != 0:
		return "error"
	case s&SeverityWarning != 0:
		return "warning"
	case s&SeverityInfo != 0:
		return "info"
	case s&SeverityVerbose != 0:
		return "verbose"
	default:
		return "none"
	}
}

// Category is a bit set of driver message categories.
type Category uint32

// Message categories.
const (
	CategoryGeneral Category = 1 << iota
	CategoryValidation
	CategoryPerformance

	// CategoryAll subscribes to every category.
	CategoryAll = CategoryGeneral | CategoryValidation | CategoryPerformance
)

// String joins the set category names with "|".
func (c Category) String() string {
	var parts []string
	if c&CategoryGeneral != 0 {
		parts = append(parts, "general")
	}
	if c&CategoryValidation != 0 {
		parts = append(parts, "validation")
	}
	if c&CategoryPerformance != 0 {
		parts = append(parts, "performance")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Message is one driver diagnostics message.
type Message struct {
	Severity Severity
	Category Category
	// ID is the driver's message identifier, e.g. a validation VUID.
	ID   string
	Text string
}

// SeverityLevel maps a severity to its log level:
// error→error, warning→warn, info→info, anything else→trace.
func SeverityLevel(s Severity) slog.Level {
	switch {
	case s&SeverityError != 0:
		return slog.LevelError
	case s&SeverityWarning != 0:
		return slog.LevelWarn
	case s&SeverityInfo != 0:
		return slog.LevelInfo
	default:
		return LevelTrace
	}
}

// Route returns the log levels a message is emitted at, in order. The
// first entry comes from the severity regardless of category.
// Performance messages are emitted a second time at warn.
func Route(s Severity, c Category) []slog.Level {
	levels := []slog.Level{SeverityLevel(s)}
	if c&CategoryPerformance != 0 {
		levels = append(levels, slog.LevelWarn)
	}
	return levels
}

// ChannelStats counts messages delivered through a debug channel.
type ChannelStats struct {
	Verbose, Info, Warning, Error uint64
	// Truncated counts messages whose text was cut to the size limit.
	Truncated uint64
}

// Total returns the number of delivered messages.
func (s ChannelStats) Total() uint64 { return s.Verbose + s.Info + s.Warning + s.Error }

// DebugChannel is an installed diagnostics callback. It is a child of its
// Instance and must be uninstalled before the instance is destroyed.
type DebugChannel struct {
	inst     *Instance
	raw      DriverDebugChannel
	maxBytes int

	verbose, info, warning, errs, truncated atomic.Uint64
}

// InstallDiagnostics registers the diagnostics callback on inst.
//
// It returns nil, nil without touching the driver when diagnostics are
// disabled in cfg. Otherwise it subscribes to all severities and to the
// general, validation and performance categories. Asking for diagnostics
// on an instance built without them, and so without the validation layer
// and debug extension, is an ErrInvalidConfig. A driver refusal is
// returned as *DriverRejectedError.
func InstallDiagnostics(inst *Instance, cfg Config) (*DebugChannel, error) {
	if !cfg.Diagnostics {
		return nil, nil
	}
	if inst.destroyed {
		return nil, ErrDestroyed
	}
	if inst.child != nil {
		return inst.child, nil
	}
	if !inst.cfg.Diagnostics {
		return nil, fmt.Errorf("%w: instance %s was built without diagnostics", ErrInvalidConfig, inst.id)
	}

	ch := &DebugChannel{inst: inst, maxBytes: cfg.maxMessageBytes()}
	sub := DebugSubscription{Severities: SeverityAll, Categories: CategoryAll}
	raw, err := inst.raw.CreateDebugChannel(sub, ch.deliver)
	if err != nil {
		return nil, rejected("create debug channel", err)
	}
	ch.raw = raw
	inst.child = ch

	inst.logger().Debug("vkboot: debug channel installed",
		"severities", sub.Severities.String(),
		"categories", sub.Categories.String())
	return ch, nil
}

// Uninstall destroys the driver channel and detaches it from its
// instance. Calling it again is a no-op.
func (ch *DebugChannel) Uninstall() {
	if ch == nil || ch.raw == nil {
		return
	}
	ch.raw.Destroy()
	ch.raw = nil
	if ch.inst.child == ch {
		ch.inst.child = nil
	}
	ch.inst.logger().Debug("vkboot: debug channel uninstalled", "messages", ch.Stats().Total())
}

// Installed reports whether the channel is still registered.
func (ch *DebugChannel) Installed() bool { return ch != nil && ch.raw != nil }

// Instance returns the owning instance.
func (ch *DebugChannel) Instance() *Instance { return ch.inst }

// Stats returns a snapshot of the delivery counters.
// Stats is safe for concurrent use.
func (ch *DebugChannel) Stats() ChannelStats {
	return ChannelStats{
		Verbose:   ch.verbose.Load(),
		Info:      ch.info.Load(),
		Warning:   ch.warning.Load(),
		Error:     ch.errs.Load(),
		Truncated: ch.truncated.Load(),
	}
}

// deliver is the callback handed to the driver. It runs on whatever thread
// issued the triggering driver call, so it only touches atomics and the
// atomically loaded logger, and never blocks on its own.
func (ch *DebugChannel) deliver(m Message) {
	switch SeverityLevel(m.Severity) {
	case slog.LevelError:
		ch.errs.Add(1)
	case slog.LevelWarn:
		ch.warning.Add(1)
	case slog.LevelInfo:
		ch.info.Add(1)
	default:
		ch.verbose.Add(1)
	}

	text := m.Text
	if len(text) > ch.maxBytes {
		text = truncateUTF8(text, ch.maxBytes)
		ch.truncated.Add(1)
	}

	l := Logger()
	ctx := context.Background()
	for _, level := range Route(m.Severity, m.Category) {
		if !l.Enabled(ctx, level) {
			continue
		}
		l.LogAttrs(ctx, level, text,
			slog.String("category", m.Category.String()),
			slog.String("severity", m.Severity.String()),
			slog.String("id", m.ID),
			slog.String("instance", ch.inst.id))
	}
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for i := n; i > 0 && i > n-utf8.UTFMax; i-- {
		if utf8.RuneStart(s[i]) {
			return s[:i]
		}
	}
	// Not valid UTF-8 around the cut.
	return s[:n]
}
