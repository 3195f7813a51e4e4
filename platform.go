package termvk

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/rs/zerolog"
	vk "github.com/vulkan-go/vulkan"
)

const portabilityEnumeration = "VK_KHR_portability_enumeration"

// vkDriver is the Driver backed by the vulkan-go bindings. vk.Init must
// have been called (see InitVulkan) before any method is used.
type vkDriver struct {
	log       zerolog.Logger
	callbacks map[vk.Instance]vk.DebugReportCallback
}

// NewVulkanDriver returns the Driver that talks to the system Vulkan loader.
func NewVulkanDriver(log zerolog.Logger) Driver {
	return &vkDriver{
		log:       log,
		callbacks: make(map[vk.Instance]vk.DebugReportCallback),
	}
}

func (d *vkDriver) InstanceExtensions() ([]string, error) {
	return InstanceExtensions()
}

func (d *vkDriver) ValidationLayers() ([]string, error) {
	return ValidationLayers()
}

func (d *vkDriver) DeviceExtensions(gpu vk.PhysicalDevice) ([]string, error) {
	return DeviceExtensions(gpu)
}

func (d *vkDriver) CreateInstance(info InstanceInfo) (vk.Instance, error) {
	var flags vk.InstanceCreateFlags
	if runtime.GOOS == "darwin" && slices.Contains(info.Extensions, portabilityEnumeration) {
		flags = vk.InstanceCreateFlags(0x00000001) // VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR
	}

	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         info.APIVersion,
			ApplicationVersion: info.AppVersion,
			PApplicationName:   safeString(info.AppName),
			PEngineName:        safeString("termvk"),
		},
		EnabledExtensionCount:   uint32(len(info.Extensions)),
		PpEnabledExtensionNames: safeStrings(info.Extensions),
		EnabledLayerCount:       uint32(len(info.Layers)),
		PpEnabledLayerNames:     safeStrings(info.Layers),
		Flags:                   flags,
	}, nil, &instance)
	if err := NewError(ret); err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, fmt.Errorf("init instance: %w", err)
	}

	if info.Debug {
		var callback vk.DebugReportCallback
		ret := vk.CreateDebugReportCallback(instance, &vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit),
			PfnCallback: debugReport,
		}, nil, &callback)
		if err := NewError(ret); err != nil {
			d.log.Warn().Err(err).Msg("debug report callback unavailable")
		} else {
			d.callbacks[instance] = callback
		}
	}
	return instance, nil
}

func (d *vkDriver) DestroyInstance(instance vk.Instance) {
	if instance == nil {
		return
	}
	if callback, ok := d.callbacks[instance]; ok {
		vk.DestroyDebugReportCallback(instance, callback, nil)
		delete(d.callbacks, instance)
	}
	vk.DestroyInstance(instance, nil)
}

func (d *vkDriver) PhysicalDevices(instance vk.Instance) ([]GPU, error) {
	var count uint32
	if err := NewError(vk.EnumeratePhysicalDevices(instance, &count, nil)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoGPU
	}
	gpus := make([]vk.PhysicalDevice, count)
	if err := NewError(vk.EnumeratePhysicalDevices(instance, &count, gpus)); err != nil {
		return nil, err
	}

	candidates := make([]GPU, 0, len(gpus))
	for _, gpu := range gpus {
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(gpu, &props)
		props.Deref()
		queue, ok := graphicsQueueFamily(gpu)
		candidates = append(candidates, GPU{
			Handle:        gpu,
			Name:          vk.ToString(props.DeviceName[:]),
			Type:          props.DeviceType,
			GraphicsQueue: queue,
			Graphics:      ok,
		})
	}
	return candidates, nil
}

func (d *vkDriver) CreateDevice(info DeviceInfo) (vk.Device, error) {
	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: info.GPU.GraphicsQueue,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}}

	var device vk.Device
	ret := vk.CreateDevice(info.GPU.Handle, &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(info.Extensions)),
		PpEnabledExtensionNames: safeStrings(info.Extensions),
		EnabledLayerCount:       uint32(len(info.Layers)),
		PpEnabledLayerNames:     safeStrings(info.Layers),
	}, nil, &device)
	if err := NewError(ret); err != nil {
		return nil, fmt.Errorf("create device on %s: %w", info.GPU.Name, err)
	}
	return device, nil
}

func (d *vkDriver) DestroyDevice(device vk.Device) {
	if device == nil {
		return
	}
	vk.DeviceWaitIdle(device)
	vk.DestroyDevice(device, nil)
}

func (d *vkDriver) DestroySurface(instance vk.Instance, surface vk.Surface) {
	if instance == nil || surface == vk.NullSurface {
		return
	}
	vk.DestroySurface(instance, surface, nil)
}
