package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// KernelConfig represents the configuration for one named interpreter.
type KernelConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// ConfigFile represents the structure of kernels.yaml
type ConfigFile struct {
	Kernels []KernelConfig `yaml:"kernels" json:"kernels"`
}

// DefaultKernels returns the built-in interpreter registry.
// A config file extends or overrides these entries.
func DefaultKernels() map[string]Kernel {
	return map[string]Kernel{
		"python3": {Command: "python3", Args: []string{"-"}},
		"sh":      {Command: "sh", Args: []string{"-s"}},
	}
}

// LoadKernels reads a configuration file (YAML or JSON) and returns a map of
// kernel names to definitions, merged over the built-in defaults.
// A missing file yields the defaults alone; callers that require the file to
// exist must check that themselves.
func LoadKernels(path string) (map[string]Kernel, error) {
	kernels := DefaultKernels()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file means defaults only.
			return kernels, nil
		}
		return nil, fmt.Errorf("failed to read kernels config: %w", err)
	}

	var cfg ConfigFile
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse kernels.json: %w", err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse kernels.yaml: %w", err)
		}
	}

	for _, k := range cfg.Kernels {
		if k.Name == "" {
			continue
		}
		kernels[k.Name] = Kernel{
			Command: k.Command,
			Args:    k.Args,
			Env:     k.Environment,
		}
	}

	return kernels, nil
}
