package main

import (
	"fmt"

	"github.com/andewx/termvk"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const maxOncePasses = 32

var rootCmd = &cobra.Command{
	Use:   "termvk",
	Short: "Open a window and drive a staged Vulkan renderer",
	Long: `termvk creates a Vulkan instance, picks a GPU, creates a logical device
and a swapchain for a glfw window, one stage per update pass. Resizing the
window recreates the swapchain. Closing it tears everything down in reverse
dependency order.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "TOML config file (defaults are used when empty)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.Flags().Bool("once", false, "exit as soon as the swapchain is created")
}

func loadConfig(cmd *cobra.Command) (termvk.Config, error) {
	cfg := termvk.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := termvk.LoadConfig(path)
		if err != nil {
			return termvk.Config{}, err
		}
		cfg = loaded
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return termvk.Config{}, err
	}
	return cfg, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	once, _ := cmd.Flags().GetBool("once")

	log := termvk.NewLogger(cmd.ErrOrStderr(), cfg.Log)
	termvk.SetDebugLogger(log.With().Str("component", "vulkan").Logger())

	if err := termvk.InitVulkan(); err != nil {
		return err
	}
	defer termvk.TerminateVulkan()

	display, err := termvk.NewDisplay(cfg.AppName, int(cfg.Swapchain.Width), int(cfg.Swapchain.Height))
	if err != nil {
		return err
	}
	defer display.Close()

	r, err := termvk.NewRenderer(cfg, termvk.WithLogger(log))
	if err != nil {
		return err
	}
	defer func() {
		if err := r.Destroy(); err != nil {
			log.Error().Err(err).Msg("teardown incomplete")
		}
	}()

	if err := r.AddExtensions(display.RequiredExtensions()...); err != nil {
		return err
	}
	display.OnResize(r)

	return loop(log, display, r, once)
}

func loop(log zerolog.Logger, display *termvk.Display, r *termvk.Renderer, once bool) error {
	passes := 0
	for !display.ShouldClose() {
		if _, err := display.Attach(r); err != nil {
			return err
		}
		if !r.IsUpdated() {
			passes++
			if err := r.Update(); err != nil {
				if once {
					return err
				}
				log.Error().Err(err).Msg("update failed")
			}
		} else if once {
			if !r.Live(termvk.Swapchain) {
				return fmt.Errorf("renderer settled after %d passes without a swapchain", passes)
			}
			log.Info().Int("passes", passes).Msg("swapchain ready")
			return nil
		}
		if once && passes > maxOncePasses {
			return fmt.Errorf("renderer did not settle after %d passes", passes)
		}
		attachPending := r.Live(termvk.Instance) && !r.Live(termvk.Surface)
		if shouldWait(once, r.IsUpdated(), attachPending) {
			glfw.WaitEvents()
		} else {
			glfw.PollEvents()
		}
	}
	return nil
}

// shouldWait reports whether the loop can block for window events. It polls
// while the renderer has work queued or a surface still has to be attached.
func shouldWait(once, updated, attachPending bool) bool {
	return !once && updated && !attachPending
}
