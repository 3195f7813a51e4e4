package test

import (
	"os"
	"runtime"
	"testing"

	"github.com/andewx/termvk"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	WIDTH  = 500
	HEIGHT = 500
)

// TestRender drives a real renderer against the installed Vulkan driver.
// It needs a display and an ICD, so it only runs with TERMVK_VULKAN_TEST=1.
func TestRender(t *testing.T) {
	if os.Getenv("TERMVK_VULKAN_TEST") != "1" {
		t.Skip("set TERMVK_VULKAN_TEST=1 to run against a real Vulkan driver")
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	require.NoError(t, termvk.InitVulkan())
	defer termvk.TerminateVulkan()

	display, err := termvk.NewDisplay("termvk test", WIDTH, HEIGHT)
	require.NoError(t, err)
	defer display.Close()

	log := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	termvk.SetDebugLogger(log)

	cfg := termvk.DefaultConfig()
	cfg.Validation = true
	r, err := termvk.NewRenderer(cfg, termvk.WithLogger(log))
	require.NoError(t, err)
	require.NoError(t, r.AddExtensions(display.RequiredExtensions()...))
	display.OnResize(r)

	for pass := 0; pass < 32 && !r.Live(termvk.Swapchain); pass++ {
		_, err := display.Attach(r)
		require.NoError(t, err)
		require.NoError(t, r.Update())
		glfw.PollEvents()
	}
	require.True(t, r.Live(termvk.Swapchain), "swapchain never created")
	require.NotZero(t, r.Swapchain().Images)

	require.NoError(t, r.Destroy())
	for _, s := range termvk.States {
		require.False(t, r.Live(s), s.String())
	}
}
