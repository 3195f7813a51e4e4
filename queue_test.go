package termvk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestPickGPU(t *testing.T) {
	cpu := GPU{Name: "cpu", Type: vk.PhysicalDeviceTypeCpu, Graphics: true}
	integrated := GPU{Name: "integrated", Type: vk.PhysicalDeviceTypeIntegratedGpu, Graphics: true}
	discrete := GPU{Name: "discrete", Type: vk.PhysicalDeviceTypeDiscreteGpu, Graphics: true}
	computeOnly := GPU{Name: "compute", Type: vk.PhysicalDeviceTypeDiscreteGpu}

	tests := []struct {
		name       string
		candidates []GPU
		discrete   bool
		want       string
		err        error
	}{
		{name: "discrete wins", candidates: []GPU{integrated, discrete}, discrete: true, want: "discrete"},
		{name: "first when not preferring", candidates: []GPU{integrated, discrete}, want: "integrated"},
		{name: "fallback without discrete", candidates: []GPU{cpu, integrated}, discrete: true, want: "cpu"},
		{name: "skips no graphics", candidates: []GPU{computeOnly, integrated}, discrete: true, want: "integrated"},
		{name: "none", err: ErrNoGPU},
		{name: "no graphics", candidates: []GPU{computeOnly}, discrete: true, err: ErrNoGraphicsGPU},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pickGPU(tt.candidates, tt.discrete)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestDeviceTypeName(t *testing.T) {
	assert.Equal(t, "discrete", deviceTypeName(vk.PhysicalDeviceTypeDiscreteGpu))
	assert.Equal(t, "integrated", deviceTypeName(vk.PhysicalDeviceTypeIntegratedGpu))
	assert.Equal(t, "other", deviceTypeName(vk.PhysicalDeviceTypeOther))
}
