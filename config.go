package termvk

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	vk "github.com/vulkan-go/vulkan"
)

// Config describes the instance, device and swapchain a Renderer builds.
type Config struct {
	AppName            string          `toml:"app_name"`
	AppVersion         string          `toml:"app_version"`
	APIVersion         string          `toml:"api_version"`
	PreferDiscrete     bool            `toml:"prefer_discrete"`
	Validation         bool            `toml:"validation"`
	Debug              bool            `toml:"debug"`
	Layers             []string        `toml:"layers"`
	InstanceExtensions []string        `toml:"instance_extensions"`
	DeviceExtensions   []string        `toml:"device_extensions"`
	Swapchain          SwapchainConfig `toml:"swapchain"`
	Log                LogConfig       `toml:"log"`
}

// SwapchainConfig describes the size and format of the swapchain.
type SwapchainConfig struct {
	// Width and Height size the window at startup. The swapchain follows
	// the framebuffer after that.
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
	Frames uint32 `toml:"frames"`
	// Format is one of the names in formats, e.g. "b8g8r8a8_unorm".
	Format string `toml:"format"`
}

type LogConfig struct {
	Level   string `toml:"level"`
	NoColor bool   `toml:"no_color"`
}

var formats = map[string]vk.Format{
	"b8g8r8a8_unorm": vk.FormatB8g8r8a8Unorm,
	"b8g8r8a8_srgb":  vk.FormatB8g8r8a8Srgb,
	"r8g8b8a8_unorm": vk.FormatR8g8b8a8Unorm,
	"r8g8b8a8_srgb":  vk.FormatR8g8b8a8Srgb,
}

func DefaultConfig() Config {
	return Config{
		AppName:          "termvk",
		AppVersion:       "1.0.0",
		APIVersion:       "1.1.0",
		PreferDiscrete:   true,
		Layers:           []string{"VK_LAYER_KHRONOS_validation"},
		DeviceExtensions: []string{"VK_KHR_swapchain"},
		Swapchain: SwapchainConfig{
			Width:  640,
			Height: 480,
			Frames: 3,
			Format: "b8g8r8a8_unorm",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads a TOML file over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.AppName) == "" {
		return fmt.Errorf("app_name is required")
	}
	if _, err := c.Version(); err != nil {
		return err
	}
	if _, err := c.ApplicationVersion(); err != nil {
		return err
	}
	if _, err := c.Swapchain.VkFormat(); err != nil {
		return err
	}
	if c.Swapchain.Width == 0 || c.Swapchain.Height == 0 {
		return fmt.Errorf("swapchain.width and swapchain.height must be non-zero")
	}
	if c.Swapchain.Frames == 0 {
		return fmt.Errorf("swapchain.frames must be at least 1")
	}
	if _, ok := parseLevel(c.Log.Level); !ok && strings.TrimSpace(c.Log.Level) != "" {
		return fmt.Errorf("log.level %q unknown", c.Log.Level)
	}
	return nil
}

// Version parses APIVersion ("major.minor[.patch]") into a packed Vulkan version.
func (c Config) Version() (uint32, error) {
	return parseVersion("api_version", c.APIVersion)
}

// ApplicationVersion packs AppVersion the same way. Empty means 1.0.0.
func (c Config) ApplicationVersion() (uint32, error) {
	if strings.TrimSpace(c.AppVersion) == "" {
		return uint32(vk.MakeVersion(1, 0, 0)), nil
	}
	return parseVersion("app_version", c.AppVersion)
}

func parseVersion(key, s string) (uint32, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%s %q: want major.minor[.patch]", key, s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%s %q: bad component %q", key, s, p)
		}
		v[i] = n
	}
	return uint32(vk.MakeVersion(v[0], v[1], v[2])), nil
}

func (s SwapchainConfig) VkFormat() (vk.Format, error) {
	name := strings.ToLower(strings.TrimSpace(s.Format))
	if name == "" {
		return vk.FormatB8g8r8a8Unorm, nil
	}
	f, ok := formats[name]
	if !ok {
		return vk.FormatUndefined, fmt.Errorf("swapchain.format %q unknown", s.Format)
	}
	return f, nil
}
