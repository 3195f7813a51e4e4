package termvk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestPickSurfaceFormat(t *testing.T) {
	srgb := vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	unorm := vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}

	f, err := pickSurfaceFormat([]vk.SurfaceFormat{srgb, unorm}, vk.FormatB8g8r8a8Unorm)
	require.NoError(t, err)
	assert.Equal(t, vk.FormatB8g8r8a8Unorm, f.Format)

	f, err = pickSurfaceFormat([]vk.SurfaceFormat{srgb}, vk.FormatR8g8b8a8Unorm)
	require.NoError(t, err)
	assert.Equal(t, vk.FormatB8g8r8a8Srgb, f.Format, "first offered")

	f, err = pickSurfaceFormat([]vk.SurfaceFormat{{Format: vk.FormatUndefined}}, vk.FormatR8g8b8a8Unorm)
	require.NoError(t, err)
	assert.Equal(t, vk.FormatR8g8b8a8Unorm, f.Format, "undefined means any")

	_, err = pickSurfaceFormat(nil, vk.FormatB8g8r8a8Unorm)
	assert.ErrorIs(t, err, ErrNoSurfaceFormat)
}

func TestChooseExtent(t *testing.T) {
	lo := vk.Extent2D{Width: 64, Height: 64}
	hi := vk.Extent2D{Width: 4096, Height: 2048}

	fixed := chooseExtent(vk.Extent2D{Width: 800, Height: 600}, lo, hi, vk.Extent2D{Width: 1, Height: 1})
	assert.Equal(t, uint32(800), fixed.Width)
	assert.Equal(t, uint32(600), fixed.Height)

	free := vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32}
	got := chooseExtent(free, lo, hi, vk.Extent2D{Width: 8000, Height: 32})
	assert.Equal(t, uint32(4096), got.Width)
	assert.Equal(t, uint32(64), got.Height)
}

func TestClampImageCount(t *testing.T) {
	assert.Equal(t, uint32(2), clampImageCount(1, 2, 8))
	assert.Equal(t, uint32(3), clampImageCount(3, 2, 8))
	assert.Equal(t, uint32(8), clampImageCount(16, 2, 8))
	assert.Equal(t, uint32(16), clampImageCount(16, 2, 0), "zero max is unbounded")
}

func TestPickCompositeAlpha(t *testing.T) {
	assert.Equal(t, vk.CompositeAlphaOpaqueBit,
		pickCompositeAlpha(vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit|vk.CompositeAlphaInheritBit)))
	assert.Equal(t, vk.CompositeAlphaInheritBit,
		pickCompositeAlpha(vk.CompositeAlphaFlags(vk.CompositeAlphaInheritBit)))
	assert.Equal(t, vk.CompositeAlphaOpaqueBit, pickCompositeAlpha(0))
}

func TestSameExtent(t *testing.T) {
	assert.True(t, sameExtent(vk.Extent2D{Width: 1, Height: 2}, vk.Extent2D{Width: 1, Height: 2}))
	assert.False(t, sameExtent(vk.Extent2D{Width: 1, Height: 2}, vk.Extent2D{Width: 2, Height: 1}))
}
