package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/mcostanzo/cmdmock/errors"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project configuration file cmdmock looks for.
const ConfigFileName = "cmdmock.yml"

// DefaultTimeout bounds how long a capture may run when no override is given.
const DefaultTimeout = 2 * time.Minute

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Config holds the cmdmock configuration loaded from cmdmock.yml.
type Config struct {
	// Version is the configuration schema version.
	Version string `yaml:"version"`

	// OutputDir is where generated mock scripts are written.
	// Defaults to the current working directory.
	OutputDir string `yaml:"output_dir"`

	// Timeout bounds the capture of the target command, e.g. "30s".
	Timeout string `yaml:"timeout"`

	// Shell is the interpreter line used in generated scripts.
	// Defaults to /bin/sh.
	Shell string `yaml:"shell"`

	// Extensions holds free-form sections for tooling built on cmdmock.
	Extensions map[string]interface{} `yaml:"extensions,omitempty"`
}

// Load reads and parses a cmdmock configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigInvalid(fmt.Sprintf("configuration file not found: %s", path))
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration data, expanding ${VAR} references from
// the environment before unmarshalling.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

// parse unmarshals configuration data without applying defaults, so that
// layered configs can be merged before defaults fill the gaps.
func parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file")
	}

	return &cfg, nil
}

// LoadDefault finds and loads the configuration starting from the current
// working directory. A missing config file is not an error; defaults apply.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical layering:
// 1. Global config (<user config dir>/cmdmock/cmdmock.yml) - base layer
// 2. Project config (cmdmock.yml, found by walking up from startDir) - overrides global
// When neither file exists a default configuration is returned. An
// unreadable or malformed global file is skipped; the project file is
// authoritative and its errors are reported.
func LoadFrom(startDir string) (*Config, error) {
	merged := &Config{}

	if globalPath := GlobalConfigPath(); globalPath != "" {
		if data, err := os.ReadFile(globalPath); err == nil {
			if global, perr := parse(data); perr == nil {
				merged = global
			}
		}
	}

	if path, err := FindConfigFile(startDir); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
				WithDetail("path", path)
		}
		project, err := parse(data)
		if err != nil {
			return nil, err
		}
		merged = merge(merged, project)
	}

	merged.applyDefaults()
	return merged, nil
}

// GlobalConfigPath returns the location of the user-level config file, or
// empty when the user config dir cannot be determined.
func GlobalConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cmdmock", ConfigFileName)
}

// merge overlays project values onto a base config. Set fields win;
// extension sections are merged by key with the overlay taking precedence.
func merge(base, overlay *Config) *Config {
	out := *base
	if overlay.Version != "" {
		out.Version = overlay.Version
	}
	if overlay.OutputDir != "" {
		out.OutputDir = overlay.OutputDir
	}
	if overlay.Timeout != "" {
		out.Timeout = overlay.Timeout
	}
	if overlay.Shell != "" {
		out.Shell = overlay.Shell
	}
	if len(overlay.Extensions) > 0 {
		exts := make(map[string]interface{}, len(base.Extensions)+len(overlay.Extensions))
		for k, v := range base.Extensions {
			exts[k] = v
		}
		for k, v := range overlay.Extensions {
			exts[k] = v
		}
		out.Extensions = exts
	}
	return &out
}

// FindConfigFile searches for cmdmock.yml in dir and its parents.
func FindConfigFile(dir string) (string, error) {
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in %s or any parent directory", ConfigFileName, dir)
		}
		dir = parent
	}
}

// CaptureTimeout returns the configured capture timeout, or DefaultTimeout
// when unset or unparseable.
func (c *Config) CaptureTimeout() time.Duration {
	if c.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// UnmarshalExtension decodes a specific extension's configuration into the
// provided target struct. The target must be a pointer. A missing key leaves
// the target zero-valued.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Shell == "" {
		c.Shell = "/bin/sh"
	}
}

// expandEnvVars replaces ${VAR} references with environment values. Unset
// variables expand to the empty string.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		name := envVarRegex.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}
