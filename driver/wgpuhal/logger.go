package wgpuhal

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/vkboot"
)

var silent = slog.New(slog.DiscardHandler)

// active holds the logger for HAL instance creation and the adapters it
// reports.
var active atomic.Pointer[slog.Logger]

func init() { active.Store(silent) }

func slogger() *slog.Logger { return active.Load() }

func setLogger(l *slog.Logger) {
	if l == nil {
		active.Store(silent)
		return
	}
	active.Store(l.With("driver", vkboot.DriverWGPUHAL))
}
