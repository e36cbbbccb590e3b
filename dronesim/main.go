// Command dronesim simulates a fleet of drones that share a packet stream.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/sarchlab/dronesim/dronesim/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
