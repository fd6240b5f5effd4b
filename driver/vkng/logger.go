package vkng

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/vkboot"
)

// logger receives loader, instance and messenger lifecycle records, tagged
// driver=vulkan. Validation messages go through vkboot's debug channel.
var logger atomic.Pointer[slog.Logger]

func init() { setLogger(nil) }

func slogger() *slog.Logger { return logger.Load() }

// setLogger backs Driver.SetLogger. A nil logger silences the package.
func setLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l.With("driver", vkboot.DriverVulkan))
}
