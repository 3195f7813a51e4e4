package termvk

import (
	"errors"
	"fmt"
	"runtime"

	vk "github.com/vulkan-go/vulkan"
)

var (
	ErrNoGPU           = errors.New("vulkan error: no GPU devices found")
	ErrNoGraphicsGPU   = errors.New("vulkan error: no GPU with a graphics queue family")
	ErrNoPresentQueue  = errors.New("vulkan error: graphics queue cannot present to surface")
	ErrNoSurfaceFormat = errors.New("vulkan error: surface has no pixel formats")
	ErrSurfaceLive     = errors.New("a different surface is already attached")
	ErrDestroyed       = errors.New("renderer already destroyed")
	ErrNoInstance      = errors.New("no live instance to own the surface")
)

func isError(ret vk.Result) bool {
	return ret != vk.Success
}

// NewError converts a Vulkan result into an error carrying the calling
// function, or nil on success.
func NewError(ret vk.Result) error {
	if !isError(ret) {
		return nil
	}
	pc, _, line, ok := runtime.Caller(1)
	if !ok {
		return fmt.Errorf("vulkan error: %s (%d)", vk.Error(ret).Error(), ret)
	}
	name := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
	}
	return fmt.Errorf("vulkan error: %s (%d) on %s:%d", vk.Error(ret).Error(), ret, name, line)
}
