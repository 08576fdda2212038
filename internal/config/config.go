package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version int      `yaml:"version"`
	Schemas []Schema `yaml:"schemas"`
	Output  Output   `yaml:"output"`
}

// Schema is a glob of `.zcm` files relative to the config file.
type Schema struct {
	Path string `yaml:"path"`
}

type Output struct {
	// Dir is the directory generated packages are written to, relative to
	// the config file.
	Dir     string  `yaml:"dir"`
	Package Package `yaml:"package"`
}

// Package is the Go import path that corresponds to `Output.Dir`.
type Package struct {
	Path string `yaml:"path"`
}

func Read(configPath string) (*Config, error) {
	fileData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf(`failed to read config file "%s": %w`, configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(fileData, &config); err != nil {
		return nil, fmt.Errorf(`failed to unmarshal config file "%s": %w`, configPath, err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf(`invalid config file "%s": %w`, configPath, err)
	}

	return &config, nil
}

func (c *Config) validate() error {
	if len(c.Schemas) == 0 {
		return fmt.Errorf("no schemas configured")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}

	if c.Output.Package.Path == "" {
		return fmt.Errorf("output.package.path is required")
	}

	return nil
}
