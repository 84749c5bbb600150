package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrNoLocalConfig is returned by LoadLocal when no config file is present.
var ErrNoLocalConfig = errors.New("no local config")

// FileConfig is the on-disk YAML or TOML configuration shape for offlinegate.
// Every field is optional; nil or empty means "use the built-in default".
type FileConfig struct {
	Roots      []string `yaml:"roots" toml:"roots"`
	Extensions []string `yaml:"extensions" toml:"extensions"`
	Exclude    []string `yaml:"exclude" toml:"exclude"`
	MaxBytes   *int64   `yaml:"max_bytes" toml:"max_bytes"`
	NoColor    *bool    `yaml:"no_color" toml:"no_color"`
	Strict     *bool    `yaml:"strict" toml:"strict"`

	// Appended to the built-in policy before the registry is built.
	ExtraBinaryPatterns []string `yaml:"extra_binary_patterns" toml:"extra_binary_patterns"`
	ExtraSourcePatterns []string `yaml:"extra_source_patterns" toml:"extra_source_patterns"`

	Tools *ToolsConfig `yaml:"tools" toml:"tools"`
}

// ToolsConfig overrides the executables used for symbol extraction.
type ToolsConfig struct {
	// Nm is the dynamic-symbol reader, invoked as `<nm> -D <binary>`.
	Nm *string `yaml:"nm" toml:"nm"`
	// Objdump is the fallback symbol-table reader, invoked as `<objdump> -t <binary>`.
	Objdump *string `yaml:"objdump" toml:"objdump"`
}

// LocalNames lists the file names LoadLocal looks for, in order.
var LocalNames = []string{
	".offlinegate.yml", ".offlinegate.yaml", ".offlinegate.toml",
	"offlinegate.yml", "offlinegate.yaml", "offlinegate.toml",
}

// LoadFile reads a config file from the provided path. Files ending in
// .toml are decoded as TOML, anything else as YAML.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches dir for a config file named in LocalNames.
func LoadLocal(dir string) (FileConfig, error) {
	for _, name := range LocalNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, ErrNoLocalConfig
}

// GetTools returns the tool overrides, never nil.
func (fc FileConfig) GetTools() ToolsConfig {
	if fc.Tools == nil {
		return ToolsConfig{}
	}
	return *fc.Tools
}

// GetNm returns the nm executable, defaulting to "nm".
func (tc ToolsConfig) GetNm() string {
	if tc.Nm == nil || *tc.Nm == "" {
		return "nm"
	}
	return *tc.Nm
}

// GetObjdump returns the objdump executable, defaulting to "objdump".
func (tc ToolsConfig) GetObjdump() string {
	if tc.Objdump == nil || *tc.Objdump == "" {
		return "objdump"
	}
	return *tc.Objdump
}
