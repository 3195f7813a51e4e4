package termvk

import vk "github.com/vulkan-go/vulkan"

// GPU describes one physical device candidate.
type GPU struct {
	Handle vk.PhysicalDevice
	Name   string
	Type   vk.PhysicalDeviceType
	// GraphicsQueue is the first queue family with graphics support,
	// valid only when Graphics is true.
	GraphicsQueue uint32
	Graphics      bool
}

type InstanceInfo struct {
	AppName    string
	AppVersion uint32
	APIVersion uint32
	Extensions []string
	Layers     []string
	Debug      bool
}

type DeviceInfo struct {
	GPU        GPU
	Extensions []string
	Layers     []string
}

type SwapchainInfo struct {
	Device  vk.Device
	GPU     GPU
	Surface vk.Surface
	// Extent is used when the surface leaves the size to the swapchain.
	Extent vk.Extent2D
	Frames uint32
	Format vk.Format
	// Old is retired by the new swapchain and destroyed on success.
	Old vk.Swapchain
}

// SwapchainDesc is what the driver actually created.
type SwapchainDesc struct {
	Handle vk.Swapchain
	Extent vk.Extent2D
	Format vk.Format
	Images uint32
}

// Driver performs the native create and destroy calls for each stage.
// The renderer decides when to call them; a Driver never tracks ordering.
type Driver interface {
	InstanceExtensions() ([]string, error)
	ValidationLayers() ([]string, error)
	CreateInstance(info InstanceInfo) (vk.Instance, error)
	DestroyInstance(instance vk.Instance)

	PhysicalDevices(instance vk.Instance) ([]GPU, error)
	DeviceExtensions(gpu vk.PhysicalDevice) ([]string, error)
	CreateDevice(info DeviceInfo) (vk.Device, error)
	DestroyDevice(device vk.Device)

	CreateSwapchain(info SwapchainInfo) (SwapchainDesc, error)
	DestroySwapchain(device vk.Device, swapchain vk.Swapchain)

	DestroySurface(instance vk.Instance, surface vk.Surface)
}
