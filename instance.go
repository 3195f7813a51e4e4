package termvk

import (
	"fmt"
	"runtime"
	"slices"
)

const debugReportExtension = "VK_EXT_debug_report"

// extensionsStage holds the requested instance extension names. It is an
// input: nothing upstream rebuilds it.
type extensionsStage struct{ r *Renderer }

func (s extensionsStage) Update() (bool, error) { return false, nil }

func (s extensionsStage) Destroy() {
	s.r.requested = nil
	s.r.extensionsLive = false
}

func (s extensionsStage) IsDestroyed() bool { return !s.r.extensionsLive }

// instanceStage creates the vk.Instance from the requested extensions.
type instanceStage struct{ r *Renderer }

// NeedsRebuild reports whether the requested extensions would enable a
// different set than the live instance has. Names the loader does not
// offer never force a rebuild.
func (s instanceStage) NeedsRebuild() bool {
	r := s.r
	if r.instance == nil {
		return false
	}
	enabled, _ := checkExisting(r.availableExts, s.wanted())
	return !slices.Equal(enabled, r.enabledExts)
}

// wanted is the requested list plus the extensions the config implies.
func (s instanceStage) wanted() []string {
	r := s.r
	wanted := slices.Clone(r.requested)
	if r.cfg.Debug {
		wanted = appendUnique(wanted, debugReportExtension)
	}
	if runtime.GOOS == "darwin" {
		wanted = appendUnique(wanted, portabilityEnumeration)
	}
	return wanted
}

func (s instanceStage) Update() (bool, error) {
	r := s.r
	if r.instance != nil {
		if !s.NeedsRebuild() {
			return false, nil
		}
		r.log.Info().Strs("extensions", r.requested).Msg("instance extensions changed, rebuilding")
		s.Destroy()
	}

	wanted := s.wanted()
	available, err := r.drv.InstanceExtensions()
	if err != nil {
		return false, fmt.Errorf("query instance extensions: %w", err)
	}
	enabled, missing := checkExisting(available, wanted)
	if len(missing) > 0 {
		r.log.Warn().Strs("missing", missing).Msg("instance extensions not supported, skipping")
	}

	var layers []string
	if r.cfg.Validation {
		available, err := r.drv.ValidationLayers()
		if err != nil {
			return false, fmt.Errorf("query validation layers: %w", err)
		}
		var missing []string
		layers, missing = checkExisting(available, r.cfg.Layers)
		if len(missing) > 0 {
			r.log.Warn().Strs("missing", missing).Msg("validation layers not installed, skipping")
		}
	}

	instance, err := r.drv.CreateInstance(InstanceInfo{
		AppName:    r.cfg.AppName,
		AppVersion: r.appVersion,
		APIVersion: r.version,
		Extensions: enabled,
		Layers:     layers,
		Debug:      r.cfg.Debug && slices.Contains(enabled, debugReportExtension),
	})
	if err != nil {
		return false, err
	}
	r.instance = instance
	r.availableExts = available
	r.enabledExts = enabled
	r.layers = layers
	r.log.Info().
		Strs("extensions", enabled).
		Strs("layers", layers).
		Msg("instance created")
	return true, nil
}

func (s instanceStage) Destroy() {
	r := s.r
	if r.instance == nil {
		return
	}
	r.drv.DestroyInstance(r.instance)
	r.instance = nil
	r.availableExts = nil
	r.enabledExts = nil
	r.layers = nil
}

func (s instanceStage) IsDestroyed() bool { return s.r.instance == nil }
