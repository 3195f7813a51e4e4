package termvk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeString(t *testing.T) {
	assert.Equal(t, "\x00", safeString(""))
	assert.Equal(t, "VK_KHR_surface\x00", safeString("VK_KHR_surface"))
	assert.Equal(t, "done\x00", safeString("done\x00"))
}

func TestSafeStringsCopies(t *testing.T) {
	in := []string{"a", "b\x00"}
	out := safeStrings(in)
	assert.Equal(t, []string{"a\x00", "b\x00"}, out)
	assert.Equal(t, []string{"a", "b\x00"}, in)
}

func TestAppendUnique(t *testing.T) {
	got := appendUnique([]string{"a"}, "b", "a", "", "c", "b")
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Nil(t, appendUnique(nil))
}

func TestCheckExisting(t *testing.T) {
	existing, missing := checkExisting(
		[]string{"VK_KHR_surface", "VK_KHR_xcb_surface"},
		[]string{"VK_KHR_xcb_surface", "VK_EXT_nope", "VK_KHR_surface"},
	)
	assert.Equal(t, []string{"VK_KHR_xcb_surface", "VK_KHR_surface"}, existing)
	assert.Equal(t, []string{"VK_EXT_nope"}, missing)
}
