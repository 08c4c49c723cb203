// Command feedctl drives the feed API through the interaction store: it loads
// the feed, applies optimistic likes, saves and double taps, and prints the
// reconciled state.
package main

import (
	"log"
	"os"

	"instafeed/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
