package termvk

import (
	"fmt"

	"github.com/andewx/termvk/stage"
	"github.com/rs/zerolog"
	vk "github.com/vulkan-go/vulkan"
)

// Renderer owns one staged chain of Vulkan objects. Inputs are fed through
// AddExtensions, SetSurface and Resize; Update advances the chain one hop.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	cfg        Config
	version    uint32
	appVersion uint32
	format     vk.Format
	drv        Driver
	log        zerolog.Logger
	engine     *stage.Engine[State]

	destroyed bool

	// Extensions
	requested      []string
	extensionsLive bool

	// Surface
	surface vk.Surface
	extent  vk.Extent2D

	// Instance
	instance     vk.Instance
	availableExts []string
	enabledExts  []string
	layers       []string

	// PhysicalDevice
	gpu     GPU
	gpuLive bool

	// Device
	device     vk.Device
	deviceExts []string

	// Swapchain
	swapchain          SwapchainDesc
	swapchainSurface   vk.Surface
	swapchainRequested vk.Extent2D
}

type RendererOption func(*Renderer)

func WithLogger(l zerolog.Logger) RendererOption {
	return func(r *Renderer) {
		r.log = l
	}
}

// WithDriver replaces the Vulkan driver, mostly for tests.
func WithDriver(d Driver) RendererOption {
	return func(r *Renderer) {
		r.drv = d
	}
}

// NewRenderer validates cfg and registers the state graph. No Vulkan object
// is created until the first Update.
func NewRenderer(cfg Config, opts ...RendererOption) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	version, _ := cfg.Version()
	appVersion, _ := cfg.ApplicationVersion()
	format, _ := cfg.Swapchain.VkFormat()

	r := &Renderer{
		cfg:            cfg,
		version:        version,
		appVersion:     appVersion,
		format:         format,
		log:            zerolog.Nop(),
		requested:      appendUnique(nil, cfg.InstanceExtensions...),
		extensionsLive: true,
		surface:        vk.NullSurface,
		swapchain:      SwapchainDesc{Handle: vk.NullSwapchain},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.drv == nil {
		r.drv = NewVulkanDriver(r.log)
	}

	resources := make(map[State]stage.Resource, len(States))
	for _, s := range States {
		resources[s] = r.resource(s)
	}
	engine, err := stage.New(Graph(), resources, stage.WithLogger(r.log))
	if err != nil {
		return nil, fmt.Errorf("register renderer states: %w", err)
	}
	r.engine = engine
	return r, nil
}

func (r *Renderer) resource(s State) stage.Resource {
	switch s {
	case Extensions:
		return extensionsStage{r}
	case Surface:
		return surfaceStage{r}
	case Instance:
		return instanceStage{r}
	case PhysicalDevice:
		return gpuStage{r}
	case Device:
		return deviceStage{r}
	case Swapchain:
		return swapchainStage{r}
	}
	panic(fmt.Sprintf("termvk: no resource for %v", s))
}

// AddExtensions accumulates instance extension names. Extensions is marked
// dirty even when nothing new was added.
func (r *Renderer) AddExtensions(names ...string) error {
	if r.destroyed {
		return ErrDestroyed
	}
	r.requested = appendUnique(r.requested, names...)
	return r.engine.MarkDirty(Extensions)
}

// SetSurface supplies the window surface, created from Instance(), and its
// framebuffer size. It fails with ErrNoInstance until the instance is live.
// Once a surface is live only the same handle may be set again; a new one is
// accepted after the old one has been released.
func (r *Renderer) SetSurface(surface vk.Surface, width, height uint32) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if !r.engine.Live(Instance) {
		return ErrNoInstance
	}
	if r.surface != vk.NullSurface && surface != r.surface {
		return ErrSurfaceLive
	}
	r.surface = surface
	r.extent = vk.Extent2D{Width: width, Height: height}
	return r.engine.MarkDirty(Surface)
}

// Resize records a new framebuffer size. The swapchain is recreated on the
// next Update; a zero size leaves the current swapchain alone.
func (r *Renderer) Resize(width, height uint32) error {
	if r.destroyed {
		return ErrDestroyed
	}
	r.extent = vk.Extent2D{Width: width, Height: height}
	return r.engine.MarkDirty(Surface)
}

// Update runs one propagation pass.
func (r *Renderer) Update() error {
	if r.destroyed {
		return ErrDestroyed
	}
	return r.engine.Update()
}

func (r *Renderer) IsUpdated() bool {
	return r.destroyed || r.engine.IsUpdated()
}

// Converge calls Update until nothing changes or maxPasses is reached.
func (r *Renderer) Converge(maxPasses int) (int, error) {
	if r.destroyed {
		return 0, ErrDestroyed
	}
	return r.engine.Converge(maxPasses)
}

func (r *Renderer) Dirty() []State {
	return r.engine.Dirty()
}

func (r *Renderer) Live(s State) bool {
	return r.engine.Live(s)
}

func (r *Renderer) TeardownOrder() []State {
	return r.engine.TeardownOrder()
}

// Extensions returns the requested instance extensions.
func (r *Renderer) Extensions() []string {
	return append([]string(nil), r.requested...)
}

// EnabledExtensions returns the instance extensions the live instance was
// created with.
func (r *Renderer) EnabledExtensions() []string {
	return append([]string(nil), r.enabledExts...)
}

func (r *Renderer) Instance() vk.Instance { return r.instance }

func (r *Renderer) PhysicalDevice() GPU { return r.gpu }

func (r *Renderer) Device() vk.Device { return r.device }

func (r *Renderer) Swapchain() SwapchainDesc { return r.swapchain }

func (r *Renderer) Surface() vk.Surface { return r.surface }

func (r *Renderer) Extent() vk.Extent2D { return r.extent }

// Destroy releases every live object in teardown order. Calling it again
// is a no-op.
func (r *Renderer) Destroy() error {
	if r.destroyed {
		return nil
	}
	err := r.engine.Dispose()
	if err != nil {
		return fmt.Errorf("renderer teardown: %w", err)
	}
	r.destroyed = true
	r.log.Debug().Msg("renderer destroyed")
	return nil
}
