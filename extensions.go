package termvk

import vk "github.com/vulkan-go/vulkan"

// InstanceExtensions gets a list of instance extensions available on the platform.
func InstanceExtensions() ([]string, error) {
	var count uint32
	if err := NewError(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, err
	}
	list := make([]vk.ExtensionProperties, count)
	if err := NewError(vk.EnumerateInstanceExtensionProperties("", &count, list)); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list))
	for _, ext := range list {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// DeviceExtensions gets a list of extensions available on the provided physical device.
func DeviceExtensions(gpu vk.PhysicalDevice) ([]string, error) {
	var count uint32
	if err := NewError(vk.EnumerateDeviceExtensionProperties(gpu, "", &count, nil)); err != nil {
		return nil, err
	}
	list := make([]vk.ExtensionProperties, count)
	if err := NewError(vk.EnumerateDeviceExtensionProperties(gpu, "", &count, list)); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list))
	for _, ext := range list {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// ValidationLayers gets a list of validation layers available on the platform.
func ValidationLayers() ([]string, error) {
	var count uint32
	if err := NewError(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, err
	}
	list := make([]vk.LayerProperties, count)
	if err := NewError(vk.EnumerateInstanceLayerProperties(&count, list)); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list))
	for _, layer := range list {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

// checkExisting splits wanted into the names present in actual and the
// names that are missing. Both keep the order of wanted.
func checkExisting(actual, wanted []string) (existing, missing []string) {
	have := make(map[string]bool, len(actual))
	for _, name := range actual {
		have[name] = true
	}
	for _, name := range wanted {
		if have[name] {
			existing = append(existing, name)
		} else {
			missing = append(missing, name)
		}
	}
	return existing, missing
}
