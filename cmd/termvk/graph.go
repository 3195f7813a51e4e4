package main

import (
	"fmt"
	"strings"

	"github.com/andewx/termvk"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the renderer's state graph and teardown order",
	Args:  cobra.NoArgs,
	RunE:  runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r, err := termvk.NewRenderer(cfg)
	if err != nil {
		return err
	}
	defer r.Destroy()

	out := cmd.OutOrStdout()
	g := termvk.Graph()
	fmt.Fprintln(out, "influences:")
	for _, s := range termvk.States {
		deps := g.Influences[s]
		if len(deps) == 0 {
			continue
		}
		fmt.Fprintf(out, "  %s -> %s\n", s, join(deps))
	}
	fmt.Fprintln(out, "teardown:")
	fmt.Fprintf(out, "  %s\n", join(r.TeardownOrder()))
	return nil
}

func join(states []termvk.State) string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}
