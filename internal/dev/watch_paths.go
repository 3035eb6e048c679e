package dev

import (
	"path/filepath"
	"time"

	"github.com/vango-dev/docsite/internal/config"
)

// DefaultPollInterval is used when dev.pollInterval is unset or invalid.
const DefaultPollInterval = 200 * time.Millisecond

// CollectWatchPaths returns the docs directory, the static directory and the
// config file, cleaned and without duplicates.
func CollectWatchPaths(cfg *config.Config) []string {
	paths := []string{
		cfg.DocsPath(),
		cfg.StaticPath(),
		cfg.Path(),
	}

	unique := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		unique = append(unique, clean)
	}

	return unique
}

// pollInterval parses dev.pollInterval.
func pollInterval(cfg *config.Config) time.Duration {
	d, err := time.ParseDuration(cfg.Dev.PollInterval)
	if err != nil || d <= 0 {
		return DefaultPollInterval
	}
	return d
}
