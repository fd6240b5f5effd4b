package vkng

import (
	"strings"

	"github.com/gogpu/vkboot"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
)

// instance is a live VkInstance.
type instance struct {
	driver core1_0.CoreInstanceDriver
	debug  ext_debug_utils.ExtensionDriver
}

// CreateDebugChannel implements vkboot.DriverInstance with a
// VK_EXT_debug_utils messenger.
func (i *instance) CreateDebugChannel(sub vkboot.DebugSubscription, cb vkboot.DebugCallback) (vkboot.DriverDebugChannel, error) {
	if i.debug == nil {
		i.debug = ext_debug_utils.CreateExtensionDriverFromCoreDriver(i.driver)
	}

	info := ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: severityFlags(sub.Severities),
		MessageType:     typeFlags(sub.Categories),
		UserCallback: func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
			var text string
			if data != nil {
				text = data.Message
			}
			cb(vkboot.Message{
				Severity: fromSeverityFlags(severity),
				Category: fromTypeFlags(msgType),
				ID:       messageID(text),
				Text:     text,
			})
			// Never ask the driver to abort the triggering call.
			return false
		},
	}

	messenger, res, err := i.debug.CreateDebugUtilsMessenger(nil, info)
	if err != nil {
		return nil, newResultError(res, err)
	}
	return &channel{ext: i.debug, messenger: messenger}, nil
}

// Destroy implements vkboot.DriverInstance.
func (i *instance) Destroy() {
	i.driver.DestroyInstance(nil)
	slogger().Debug("vkng: instance destroyed")
}

// channel is a live debug-utils messenger.
type channel struct {
	ext       ext_debug_utils.ExtensionDriver
	messenger ext_debug_utils.DebugUtilsMessenger
}

// Destroy implements vkboot.DriverDebugChannel.
func (c *channel) Destroy() {
	c.ext.DestroyDebugUtilsMessenger(c.messenger, nil)
}

func severityFlags(s vkboot.Severity) ext_debug_utils.DebugUtilsMessageSeverityFlags {
	var f ext_debug_utils.DebugUtilsMessageSeverityFlags
	if s&vkboot.SeverityVerbose != 0 {
		f |= ext_debug_utils.SeverityVerbose
	}
	if s&vkboot.SeverityInfo != 0 {
		f |= ext_debug_utils.SeverityInfo
	}
	if s&vkboot.SeverityWarning != 0 {
		f |= ext_debug_utils.SeverityWarning
	}
	if s&vkboot.SeverityError != 0 {
		f |= ext_debug_utils.SeverityError
	}
	return f
}

func fromSeverityFlags(f ext_debug_utils.DebugUtilsMessageSeverityFlags) vkboot.Severity {
	var s vkboot.Severity
	if f&ext_debug_utils.SeverityVerbose != 0 {
		s |= vkboot.SeverityVerbose
	}
	if f&ext_debug_utils.SeverityInfo != 0 {
		s |= vkboot.SeverityInfo
	}
	if f&ext_debug_utils.SeverityWarning != 0 {
		s |= vkboot.SeverityWarning
	}
	if f&ext_debug_utils.SeverityError != 0 {
		s |= vkboot.SeverityError
	}
	return s
}

func typeFlags(c vkboot.Category) ext_debug_utils.DebugUtilsMessageTypeFlags {
	var f ext_debug_utils.DebugUtilsMessageTypeFlags
	if c&vkboot.CategoryGeneral != 0 {
		f |= ext_debug_utils.TypeGeneral
	}
	if c&vkboot.CategoryValidation != 0 {
		f |= ext_debug_utils.TypeValidation
	}
	if c&vkboot.CategoryPerformance != 0 {
		f |= ext_debug_utils.TypePerformance
	}
	return f
}

func fromTypeFlags(f ext_debug_utils.DebugUtilsMessageTypeFlags) vkboot.Category {
	var c vkboot.Category
	if f&ext_debug_utils.TypeGeneral != 0 {
		c |= vkboot.CategoryGeneral
	}
	if f&ext_debug_utils.TypeValidation != 0 {
		c |= vkboot.CategoryValidation
	}
	if f&ext_debug_utils.TypePerformance != 0 {
		c |= vkboot.CategoryPerformance
	}
	return c
}

// messageID extracts the bracketed identifier validation messages start
// with, e.g. "Validation Error: [ VUID-vkDestroyInstance-instance-00629 ] ...".
func messageID(text string) string {
	open := strings.IndexByte(text, '[')
	if open < 0 {
		return ""
	}
	end := strings.IndexByte(text[open:], ']')
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(text[open+1 : open+end])
}
