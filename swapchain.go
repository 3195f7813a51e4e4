package termvk

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// swapchainStage (re)creates the swapchain whenever the device, the surface
// or the requested extent changes.
type swapchainStage struct{ r *Renderer }

func (s swapchainStage) Update() (bool, error) {
	r := s.r
	if r.extent.Width == 0 || r.extent.Height == 0 {
		r.log.Debug().Msg("zero extent, swapchain deferred")
		return false, nil
	}
	old := r.swapchain.Handle
	if old != vk.NullSwapchain && r.swapchainSurface == r.surface && sameExtent(r.swapchainRequested, r.extent) {
		return false, nil
	}
	desc, err := r.drv.CreateSwapchain(SwapchainInfo{
		Device:  r.device,
		GPU:     r.gpu,
		Surface: r.surface,
		Extent:  r.extent,
		Frames:  r.cfg.Swapchain.Frames,
		Format:  r.format,
		Old:     old,
	})
	if err != nil {
		return false, err
	}
	r.swapchain = desc
	r.swapchainSurface = r.surface
	r.swapchainRequested = r.extent
	r.log.Info().
		Uint32("width", desc.Extent.Width).
		Uint32("height", desc.Extent.Height).
		Uint32("images", desc.Images).
		Bool("recreated", old != vk.NullSwapchain).
		Msg("swapchain created")
	return true, nil
}

func (s swapchainStage) Destroy() {
	r := s.r
	if r.swapchain.Handle == vk.NullSwapchain {
		return
	}
	r.drv.DestroySwapchain(r.device, r.swapchain.Handle)
	r.swapchain = SwapchainDesc{Handle: vk.NullSwapchain}
	r.swapchainSurface = vk.NullSurface
	r.swapchainRequested = vk.Extent2D{}
}

func (s swapchainStage) IsDestroyed() bool { return s.r.swapchain.Handle == vk.NullSwapchain }

// CreateSwapchain builds a FIFO swapchain for the surface, retiring info.Old.
func (d *vkDriver) CreateSwapchain(info SwapchainInfo) (SwapchainDesc, error) {
	gpu := info.GPU.Handle

	var supportsPresent vk.Bool32
	vk.GetPhysicalDeviceSurfaceSupport(gpu, info.GPU.GraphicsQueue, info.Surface, &supportsPresent)
	if !supportsPresent.B() {
		return SwapchainDesc{}, ErrNoPresentQueue
	}

	var caps vk.SurfaceCapabilities
	if err := NewError(vk.GetPhysicalDeviceSurfaceCapabilities(gpu, info.Surface, &caps)); err != nil {
		return SwapchainDesc{}, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()

	var formatCount uint32
	vk.GetPhysicalDeviceSurfaceFormats(gpu, info.Surface, &formatCount, nil)
	formats := make([]vk.SurfaceFormat, formatCount)
	vk.GetPhysicalDeviceSurfaceFormats(gpu, info.Surface, &formatCount, formats)
	for i := range formats {
		formats[i].Deref()
	}
	format, err := pickSurfaceFormat(formats, info.Format)
	if err != nil {
		return SwapchainDesc{}, err
	}

	extent := chooseExtent(caps.CurrentExtent, caps.MinImageExtent, caps.MaxImageExtent, info.Extent)
	images := clampImageCount(info.Frames, caps.MinImageCount, caps.MaxImageCount)

	// Prefer a non-rotated transform
	preTransform := caps.CurrentTransform
	if vk.SurfaceTransformFlagBits(caps.SupportedTransforms)&vk.SurfaceTransformIdentityBit != 0 {
		preTransform = vk.SurfaceTransformIdentityBit
	}

	var swapchain vk.Swapchain
	ret := vk.CreateSwapchain(info.Device, &vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          info.Surface,
		MinImageCount:    images,
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      extent,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:     preTransform,
		CompositeAlpha:   pickCompositeAlpha(caps.SupportedCompositeAlpha),
		ImageArrayLayers: 1,
		ImageSharingMode: vk.SharingModeExclusive,
		// FIFO is the only present mode every implementation must support
		PresentMode:  vk.PresentModeFifo,
		OldSwapchain: info.Old,
		Clipped:      vk.True,
	}, nil, &swapchain)
	if err := NewError(ret); err != nil {
		return SwapchainDesc{}, fmt.Errorf("create swapchain %dx%d: %w", extent.Width, extent.Height, err)
	}
	if info.Old != vk.NullSwapchain {
		vk.DestroySwapchain(info.Device, info.Old, nil)
	}

	var imageCount uint32
	vk.GetSwapchainImages(info.Device, swapchain, &imageCount, nil)
	return SwapchainDesc{
		Handle: swapchain,
		Extent: extent,
		Format: format.Format,
		Images: imageCount,
	}, nil
}

func (d *vkDriver) DestroySwapchain(device vk.Device, swapchain vk.Swapchain) {
	if swapchain == vk.NullSwapchain {
		return
	}
	vk.DeviceWaitIdle(device)
	vk.DestroySwapchain(device, swapchain, nil)
}

// pickSurfaceFormat returns the surface format matching want, or the first
// one offered. A single undefined entry means any format may be used.
func pickSurfaceFormat(formats []vk.SurfaceFormat, want vk.Format) (vk.SurfaceFormat, error) {
	if len(formats) == 0 {
		return vk.SurfaceFormat{}, ErrNoSurfaceFormat
	}
	if len(formats) == 1 && formats[0].Format == vk.FormatUndefined {
		f := formats[0]
		f.Format = want
		return f, nil
	}
	for _, f := range formats {
		if f.Format == want {
			return f, nil
		}
	}
	return formats[0], nil
}

// chooseExtent uses the surface's current extent unless the surface lets
// the swapchain decide, in which case the requested size is clamped.
func chooseExtent(current, lo, hi, requested vk.Extent2D) vk.Extent2D {
	if current.Width != vk.MaxUint32 {
		return current
	}
	return vk.Extent2D{
		Width:  clamp(requested.Width, lo.Width, hi.Width),
		Height: clamp(requested.Height, lo.Height, hi.Height),
	}
}

// clampImageCount bounds the requested image count by the surface limits.
// A max of zero means there is no upper limit.
func clampImageCount(want, lo, hi uint32) uint32 {
	if want < lo {
		return lo
	}
	if hi > 0 && want > hi {
		return hi
	}
	return want
}

func sameExtent(a, b vk.Extent2D) bool {
	return a.Width == b.Width && a.Height == b.Height
}

func clamp(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pickCompositeAlpha returns the first supported mode, opaque first.
// One of these is always supported.
func pickCompositeAlpha(supported vk.CompositeAlphaFlags) vk.CompositeAlphaFlagBits {
	for _, bit := range []vk.CompositeAlphaFlagBits{
		vk.CompositeAlphaOpaqueBit,
		vk.CompositeAlphaPreMultipliedBit,
		vk.CompositeAlphaPostMultipliedBit,
		vk.CompositeAlphaInheritBit,
	} {
		if supported&vk.CompositeAlphaFlags(bit) != 0 {
			return bit
		}
	}
	return vk.CompositeAlphaOpaqueBit
}
