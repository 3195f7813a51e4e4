package termvk

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// graphicsQueueFamily finds the first queue family of gpu with graphics support.
func graphicsQueueFamily(gpu vk.PhysicalDevice) (uint32, bool) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, nil)
	if count == 0 {
		return 0, false
	}
	properties := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, properties)
	required := vk.QueueFlags(vk.QueueGraphicsBit)
	for i := range properties {
		properties[i].Deref()
		if properties[i].QueueFlags&required == required {
			return uint32(i), true
		}
	}
	return 0, false
}

// pickGPU chooses among candidates. Devices without a graphics queue are
// never chosen. With preferDiscrete the first discrete GPU wins, otherwise
// (or when there is none) the first usable device in enumeration order.
func pickGPU(candidates []GPU, preferDiscrete bool) (GPU, error) {
	if len(candidates) == 0 {
		return GPU{}, ErrNoGPU
	}
	var fallback *GPU
	for i := range candidates {
		c := &candidates[i]
		if !c.Graphics {
			continue
		}
		if !preferDiscrete || c.Type == vk.PhysicalDeviceTypeDiscreteGpu {
			return *c, nil
		}
		if fallback == nil {
			fallback = c
		}
	}
	if fallback == nil {
		return GPU{}, fmt.Errorf("%w (%d candidates)", ErrNoGraphicsGPU, len(candidates))
	}
	return *fallback, nil
}

func deviceTypeName(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	}
	return "other"
}
