package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/storesearch/internal/config"
	"github.com/handiism/storesearch/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file (.json or .toml)")
	verboseFlag := flag.Bool("verbose", false, "Show debug log lines")
	flag.Parse()

	path := *configFlag
	if path == "" {
		path = config.DefaultPath()
	}
	settings, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings, *verboseFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
