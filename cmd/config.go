package cmd

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional defaults file at <trust-dir>/config.yaml. The
// trust directory itself cannot be set here, since the file lives under it.
// Anything set here loses to environment variables and flags.
type fileConfig struct {
	Region     string `yaml:"region"`
	Profile    string `yaml:"profile"`
	Address    string `yaml:"address"`
	SSHCommand string `yaml:"ssh_command"`
}

// loadFileConfig reads and validates the defaults file. A missing file is
// not an error; a file that exists but does not parse is, so typos fail
// loudly instead of being silently ignored.
func loadFileConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	fc := &fileConfig{}
	if err := yamlUnmarshal(b, fc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if fc.Address != "" && fc.Address != "public" && fc.Address != "private" {
		return nil, fmt.Errorf("%s: address must be \"public\" or \"private\", got %q", path, fc.Address)
	}
	return fc, nil
}

// yamlUnmarshal is a small wrapper so the yaml dependency is imported in one
// place.
func yamlUnmarshal(b []byte, out any) error {
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	return nil
}
