// Command planner runs place discovery and itinerary generation from the
// terminal using the same services as the HTTP API.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(loadServices).Execute(); err != nil {
		os.Exit(1)
	}
}
