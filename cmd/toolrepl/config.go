package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional on-disk configuration. Every field has a
// working default; a missing file is not an error.
type fileConfig struct {
	// GoPath is the directory packages are installed into. Defaults to a
	// per-user cache directory.
	GoPath string `yaml:"gopath"`

	// GoBin is the toolchain binary used for installs. Defaults to "go"
	// resolved from PATH.
	GoBin string `yaml:"gobin"`

	// SeedImports are packages imported into every fresh session.
	SeedImports []string `yaml:"seed_imports"`
}

// loadConfig reads path if it exists. An empty path or absent file yields
// the zero config.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// defaultGoPath picks the per-user install directory, falling back to a
// temp directory when no user cache is available.
func defaultGoPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir + "/toolrepl/gopath"
	}
	return os.TempDir() + "/toolrepl-gopath"
}
