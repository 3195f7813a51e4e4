package termvk

import (
	"fmt"

	"github.com/andewx/termvk/stage"
)

// State identifies one staged Vulkan resource slot.
type State uint8

const (
	// Extensions holds the accumulated instance extension names.
	Extensions State = iota
	// Surface holds the window surface supplied by the display.
	Surface
	Instance
	PhysicalDevice
	Device
	Swapchain
)

// States lists every state in creation order.
var States = []State{Extensions, Surface, Instance, PhysicalDevice, Device, Swapchain}

func (s State) String() string {
	switch s {
	case Extensions:
		return "extensions"
	case Surface:
		return "surface"
	case Instance:
		return "instance"
	case PhysicalDevice:
		return "physical-device"
	case Device:
		return "device"
	case Swapchain:
		return "swapchain"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Graph returns the influence and teardown graph for the renderer.
// A surface is created from an instance outside the influence graph, so
// the instance must additionally wait for the surface on teardown.
func Graph() stage.Graph[State] {
	return stage.Graph[State]{
		States: States,
		Influences: map[State][]State{
			Extensions:     {Instance},
			Instance:       {PhysicalDevice},
			PhysicalDevice: {Device},
			Device:         {Swapchain},
			Surface:        {Swapchain},
		},
		Teardown: map[State][]State{
			Instance: {Surface},
		},
		Roots: []State{Extensions},
	}
}
