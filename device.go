package termvk

import "fmt"

// gpuStage picks the physical device. Physical devices are owned by the
// instance, so destroying only forgets the choice.
type gpuStage struct{ r *Renderer }

func (s gpuStage) Update() (bool, error) {
	r := s.r
	if r.gpuLive {
		return false, nil
	}
	candidates, err := r.drv.PhysicalDevices(r.instance)
	if err != nil {
		return false, fmt.Errorf("enumerate physical devices: %w", err)
	}
	gpu, err := pickGPU(candidates, r.cfg.PreferDiscrete)
	if err != nil {
		return false, err
	}
	r.gpu = gpu
	r.gpuLive = true
	r.log.Info().
		Str("gpu", gpu.Name).
		Str("type", deviceTypeName(gpu.Type)).
		Uint32("queue_family", gpu.GraphicsQueue).
		Msg("physical device selected")
	return true, nil
}

func (s gpuStage) Destroy() {
	s.r.gpu = GPU{}
	s.r.gpuLive = false
}

func (s gpuStage) IsDestroyed() bool { return !s.r.gpuLive }

// deviceStage creates the logical device with one graphics queue.
type deviceStage struct{ r *Renderer }

func (s deviceStage) Update() (bool, error) {
	r := s.r
	if r.device != nil {
		return false, nil
	}
	available, err := r.drv.DeviceExtensions(r.gpu.Handle)
	if err != nil {
		return false, fmt.Errorf("query device extensions on %s: %w", r.gpu.Name, err)
	}
	enabled, missing := checkExisting(available, r.cfg.DeviceExtensions)
	if len(missing) > 0 {
		r.log.Warn().Strs("missing", missing).Str("gpu", r.gpu.Name).Msg("device extensions not supported, skipping")
	}
	device, err := r.drv.CreateDevice(DeviceInfo{
		GPU:        r.gpu,
		Extensions: enabled,
		Layers:     r.layers,
	})
	if err != nil {
		return false, err
	}
	r.device = device
	r.deviceExts = enabled
	r.log.Info().Strs("extensions", enabled).Msg("device created")
	return true, nil
}

func (s deviceStage) Destroy() {
	r := s.r
	if r.device == nil {
		return
	}
	r.drv.DestroyDevice(r.device)
	r.device = nil
	r.deviceExts = nil
}

func (s deviceStage) IsDestroyed() bool { return s.r.device == nil }
