// Package config loads the wafctl configuration from defaults, config files
// and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the wafctl CLI tool configuration. All file paths
// except Root are interpreted relative to Root.
type Configuration struct {
	Root         string `koanf:"root" validate:"required"`
	Template     string `koanf:"template" validate:"required"`
	WafDir       string `koanf:"waf_dir" validate:"required"`
	Labels       string `koanf:"labels" validate:"required"`
	Validations  string `koanf:"validations" validate:"required"`
	Resources    string `koanf:"resources" validate:"required"`
	OutputDir    string `koanf:"output_dir" validate:"required"`
	Pattern      string `koanf:"pattern" validate:"required"`
	ShowProgress bool   `koanf:"show_progress"`
}

// Load loads configuration from global, local, and environment sources.
// Priority: environment variables > local config > global config > defaults.
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		globalPath := filepath.Join(homeDir, ".wafctl", "config.json")
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	// Environment variables win over everything else.
	if err := k.Load(env.Provider("WAFCTL_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.Root = expandHomePath(cfg.Root)

	return &cfg, nil
}

// TemplatePath returns the absolute template file path.
func (c *Configuration) TemplatePath() string { return c.resolve(c.Template) }

// WafDirPath returns the absolute WAF document directory.
func (c *Configuration) WafDirPath() string { return c.resolve(c.WafDir) }

// LabelsPath returns the absolute labels file path.
func (c *Configuration) LabelsPath() string { return c.resolve(c.Labels) }

// ValidationsPath returns the absolute validations file path.
func (c *Configuration) ValidationsPath() string { return c.resolve(c.Validations) }

// ResourcesPath returns the absolute epic resources file path.
func (c *Configuration) ResourcesPath() string { return c.resolve(c.Resources) }

// OutputDirPath returns the absolute workbook output directory.
func (c *Configuration) OutputDirPath() string { return c.resolve(c.OutputDir) }

func (c *Configuration) resolve(path string) string {
	path = expandHomePath(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// envTransform converts environment variable names to config keys.
// Example: WAFCTL_WAF_DIR -> waf_dir
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "WAFCTL_"))
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
