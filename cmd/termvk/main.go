package main

import (
	"fmt"
	"os"
	"runtime"
)

func init() {
	// glfw and the Vulkan loader must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
