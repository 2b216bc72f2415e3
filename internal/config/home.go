package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the per-project settings directory.
const DirName = ".linekit"

// FileName is the config file inside DirName.
const FileName = "config.yaml"

// FindConfigFile returns the nearest .linekit/config.yaml at or above dir.
// When none exists it returns the path it would have in dir, which
// LoadConfig treats as "use defaults".
func FindConfigFile(dir string) (string, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	current := start
	for {
		candidate := filepath.Join(current, DirName, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return filepath.Join(start, DirName, FileName), nil
}

// LoadConfigFromDir loads the nearest config file at or above dir.
func LoadConfigFromDir(dir string) (*Config, error) {
	path, err := FindConfigFile(dir)
	if err != nil {
		return nil, err
	}
	return LoadConfig(path)
}
