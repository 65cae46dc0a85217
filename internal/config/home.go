package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the config file looked up by ResolvePath.
const FileName = "progress.yaml"

// EnvConfigPath overrides config file discovery when set.
const EnvConfigPath = "PROGRESS_CONFIG"

// ResolvePath returns the config file to load
// Priority order:
//  1. PROGRESS_CONFIG environment variable (if set)
//  2. The nearest progress.yaml in the working directory or one of its parents
//  3. progress.yaml in the working directory (fallback, may not exist)
func ResolvePath() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	if found, ok := findUpwards(cwd, FileName); ok {
		return found, nil
	}
	return filepath.Join(cwd, FileName), nil
}

// findUpwards looks for name in dir and each of its parents up to the
// filesystem root.
func findUpwards(dir, name string) (string, bool) {
	current := dir
	for {
		candidate := filepath.Join(current, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root
			return "", false
		}
		current = parent
	}
}
