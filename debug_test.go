package termvk

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestDebugReportLevels(t *testing.T) {
	tests := []struct {
		flags vk.DebugReportFlagBits
		level string
	}{
		{vk.DebugReportErrorBit, `"level":"error"`},
		{vk.DebugReportWarningBit, `"level":"warn"`},
		{vk.DebugReportPerformanceWarningBit, `"performance":true`},
		{vk.DebugReportDebugBit, `"level":"debug"`},
		{vk.DebugReportInformationBit, `"level":"info"`},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		SetDebugLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))
		ret := debugReport(vk.DebugReportFlags(tt.flags), 0, 0, 0, 7, "Validation", "bad thing", nil)

		assert.Equal(t, vk.Bool32(vk.False), ret)
		assert.Contains(t, buf.String(), tt.level)
		assert.Contains(t, buf.String(), `"layer":"Validation"`)
		assert.Contains(t, buf.String(), `"code":7`)
		assert.Contains(t, buf.String(), `"message":"bad thing"`)
	}
	debugLog.Store(nil)
}
