package termvk

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// pinned keeps fake handles reachable; surfaces round-trip through uintptr.
var pinned []unsafe.Pointer

func handle() unsafe.Pointer {
	p := unsafe.Pointer(new(byte))
	pinned = append(pinned, p)
	return p
}

func fakeSurface() vk.Surface {
	return vk.SurfaceFromPointer(uintptr(handle()))
}

// fakeDriver records create and destroy calls instead of talking to a loader.
type fakeDriver struct {
	instanceExts []string
	layers       []string
	deviceExts   []string
	gpus         []GPU

	failInstance  error
	failGPUs      error
	failDevice    error
	failSwapchain error

	calls         []string
	instances     int
	devices       int
	swapchains    int
	lastInstance  InstanceInfo
	lastDevice    DeviceInfo
	lastSwapchain SwapchainInfo
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		instanceExts: []string{"VK_KHR_surface", "VK_KHR_xcb_surface", "VK_EXT_debug_report"},
		layers:       []string{"VK_LAYER_KHRONOS_validation"},
		deviceExts:   []string{"VK_KHR_swapchain"},
		gpus: []GPU{
			{Handle: vk.PhysicalDevice(handle()), Name: "llvmpipe", Type: vk.PhysicalDeviceTypeCpu, Graphics: true},
			{Handle: vk.PhysicalDevice(handle()), Name: "igpu", Type: vk.PhysicalDeviceTypeIntegratedGpu, Graphics: true},
			{Handle: vk.PhysicalDevice(handle()), Name: "dgpu", Type: vk.PhysicalDeviceTypeDiscreteGpu, Graphics: true, GraphicsQueue: 1},
		},
	}
}

func (d *fakeDriver) reset() {
	d.calls = nil
}

func (d *fakeDriver) InstanceExtensions() ([]string, error) { return d.instanceExts, nil }

func (d *fakeDriver) ValidationLayers() ([]string, error) { return d.layers, nil }

func (d *fakeDriver) CreateInstance(info InstanceInfo) (vk.Instance, error) {
	d.lastInstance = info
	if d.failInstance != nil {
		return nil, d.failInstance
	}
	d.calls = append(d.calls, "create instance")
	d.instances++
	return vk.Instance(handle()), nil
}

func (d *fakeDriver) DestroyInstance(instance vk.Instance) {
	d.calls = append(d.calls, "destroy instance")
	d.instances--
}

func (d *fakeDriver) PhysicalDevices(instance vk.Instance) ([]GPU, error) {
	if d.failGPUs != nil {
		return nil, d.failGPUs
	}
	return d.gpus, nil
}

func (d *fakeDriver) DeviceExtensions(gpu vk.PhysicalDevice) ([]string, error) {
	return d.deviceExts, nil
}

func (d *fakeDriver) CreateDevice(info DeviceInfo) (vk.Device, error) {
	d.lastDevice = info
	if d.failDevice != nil {
		return nil, d.failDevice
	}
	d.calls = append(d.calls, "create device")
	d.devices++
	return vk.Device(handle()), nil
}

func (d *fakeDriver) DestroyDevice(device vk.Device) {
	d.calls = append(d.calls, "destroy device")
	d.devices--
}

func (d *fakeDriver) CreateSwapchain(info SwapchainInfo) (SwapchainDesc, error) {
	d.lastSwapchain = info
	if d.failSwapchain != nil {
		return SwapchainDesc{}, d.failSwapchain
	}
	d.calls = append(d.calls, "create swapchain")
	if info.Old != vk.NullSwapchain {
		d.calls = append(d.calls, "retire swapchain")
		d.swapchains--
	}
	d.swapchains++
	return SwapchainDesc{
		Handle: vk.Swapchain(handle()),
		Extent: info.Extent,
		Format: info.Format,
		Images: info.Frames,
	}, nil
}

func (d *fakeDriver) DestroySwapchain(device vk.Device, swapchain vk.Swapchain) {
	d.calls = append(d.calls, "destroy swapchain")
	d.swapchains--
}

func (d *fakeDriver) DestroySurface(instance vk.Instance, surface vk.Surface) {
	d.calls = append(d.calls, "destroy surface")
}
