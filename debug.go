package termvk

import (
	"sync/atomic"
	"unsafe"

	"github.com/rs/zerolog"
	vk "github.com/vulkan-go/vulkan"
)

// debugLog receives validation layer reports. The callback is a plain
// function handed to the loader, so it cannot close over a renderer.
var debugLog atomic.Pointer[zerolog.Logger]

// SetDebugLogger routes Vulkan debug reports to l.
func SetDebugLogger(l zerolog.Logger) {
	debugLog.Store(&l)
}

func debugReport(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	l := debugLog.Load()
	if l == nil {
		return vk.Bool32(vk.False)
	}
	debugEvent(l, flags).
		Str("layer", pLayerPrefix).
		Int32("code", messageCode).
		Msg(pMessage)
	return vk.Bool32(vk.False)
}

func debugEvent(l *zerolog.Logger, flags vk.DebugReportFlags) *zerolog.Event {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		return l.Error()
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		return l.Warn()
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		return l.Warn().Bool("performance", true)
	case flags&vk.DebugReportFlags(vk.DebugReportDebugBit) != 0:
		return l.Debug()
	}
	return l.Info()
}
