package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/orgoj/recordlog/internal/config"
	"github.com/orgoj/recordlog/internal/logger"
	"github.com/orgoj/recordlog/internal/templater"
)

func main() {
	// Parse command line flags
	flag.Parse()

	if len(flag.Args()) < 1 {
		fmt.Println("Error: Config file path is required")
		fmt.Println("Usage: config-validator <config-file>")
		os.Exit(1)
	}
	// Get config path from arguments
	configPath := flag.Args()[0]

	// Load and validate configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Perform additional validation
	if err := config.ValidateConfig(cfg); err != nil {
		fmt.Printf("Validation error: %v\n", err)
		os.Exit(1)
	}

	// Report settings that are valid but suspicious
	for _, warning := range warnings(cfg) {
		fmt.Printf("Warning: %s\n", warning)
	}

	fmt.Println("Configuration is valid!")
}

// warnings reports settings that are valid but likely to fail or surprise at runtime.
func warnings(cfg *config.Config) []string {
	var out []string

	// Check the destination folder
	destFolder := cfg.DestFolder
	if destFolder == "" {
		destFolder = logger.DefaultDestFolder
	}
	parent := filepath.Dir(filepath.Clean(destFolder))
	if _, err := os.Stat(parent); err != nil {
		out = append(out, fmt.Sprintf("parent of dest_folder '%s' is not accessible (%v); the folder is created without parents", destFolder, err))
	}

	// Check the record template
	if cfg.Template != "" && !templateHasMessage(cfg.Template) {
		out = append(out, "template has no {{message}} placeholder; records will not include the message")
	}

	// Check buffering
	if cfg.Stack {
		out = append(out, "stack is enabled; nothing reaches the log file until the buffer is dumped")
	}

	return out
}

func templateHasMessage(tmpl string) bool {
	for _, key := range templater.Keys(tmpl) {
		if key == "message" {
			return true
		}
	}
	return false
}
