package termvk

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// InitVulkan initializes glfw and loads the Vulkan entry points through it.
// Must be called on the main thread before any window or renderer is created.
func InitVulkan() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return fmt.Errorf("glfw: vulkan loader not found")
	}
	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		glfw.Terminate()
		return fmt.Errorf("vulkan init: %w", err)
	}
	return nil
}

// TerminateVulkan shuts glfw down. Call it last, on the main thread.
func TerminateVulkan() {
	glfw.Terminate()
}

// Display is a glfw window that supplies a renderer with its surface.
type Display struct {
	window *glfw.Window
}

// NewDisplay opens a resizable window without a client API.
func NewDisplay(title string, width, height int) (*Display, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.True)
	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	return &Display{window: window}, nil
}

func (d *Display) Window() *glfw.Window { return d.window }

// RequiredExtensions returns the instance extensions glfw needs for surfaces.
func (d *Display) RequiredExtensions() []string {
	return d.window.GetRequiredInstanceExtensions()
}

// Size returns the framebuffer size in pixels.
func (d *Display) Size() (uint32, uint32) {
	w, h := d.window.GetFramebufferSize()
	return uint32(max(w, 0)), uint32(max(h, 0))
}

// CreateSurface creates a window surface owned by instance.
func (d *Display) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	ptr, err := d.window.CreateWindowSurface(instance, nil)
	if err != nil {
		return vk.NullSurface, fmt.Errorf("create window surface: %w", err)
	}
	return vk.SurfaceFromPointer(ptr), nil
}

// Attach hands r a surface once its instance is live and it has none.
// It reports whether a surface was attached.
func (d *Display) Attach(r *Renderer) (bool, error) {
	if !r.Live(Instance) || r.Live(Surface) {
		return false, nil
	}
	surface, err := d.CreateSurface(r.Instance())
	if err != nil {
		return false, err
	}
	w, h := d.Size()
	if err := r.SetSurface(surface, w, h); err != nil {
		vk.DestroySurface(r.Instance(), surface, nil)
		return false, err
	}
	return true, nil
}

// OnResize forwards framebuffer size changes to r.
func (d *Display) OnResize(r *Renderer) {
	d.window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		if err := r.Resize(uint32(max(w, 0)), uint32(max(h, 0))); err != nil {
			r.log.Debug().Err(err).Msg("resize ignored")
		}
	})
}

func (d *Display) ShouldClose() bool { return d.window.ShouldClose() }

func (d *Display) Close() {
	d.window.Destroy()
}

// surfaceStage holds the surface supplied through SetSurface. It is
// destroyed through the instance it was created from, so it must go first.
type surfaceStage struct{ r *Renderer }

func (s surfaceStage) Update() (bool, error) { return false, nil }

func (s surfaceStage) Destroy() {
	r := s.r
	if r.surface == vk.NullSurface {
		return
	}
	r.drv.DestroySurface(r.instance, r.surface)
	r.surface = vk.NullSurface
}

func (s surfaceStage) IsDestroyed() bool { return s.r.surface == vk.NullSurface }
