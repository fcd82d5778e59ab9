package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "MATCHEDGE"
	defaultConfigPath = "config/config.yaml"
)

// newViper creates a viper instance bound to MATCHEDGE_* environment variables
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(envPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

// readExpanded reads a YAML file into v after expanding ${VAR} placeholders
func readExpanded(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	if err := readExpanded(v, configPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setConfigDefaults(v)

	if err := readExpanded(v, configPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// setConfigDefaults registers defaults so every key is also reachable from the environment
func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "matchedge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("engine.profile_path", "")
	v.SetDefault("engine.factor_workers", 4)
	v.SetDefault("engine.batch_workers", 4)
	v.SetDefault("engine.rate_per_second", 50.0)
	v.SetDefault("engine.rate_burst", 10)
	v.SetDefault("engine.memo_ttl_seconds", 300)
	v.SetDefault("engine.memo_max_entries", 10000)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("watch.input_dir", "")
	v.SetDefault("watch.output_dir", "")
	v.SetDefault("watch.sweep_schedule", "@every 1m")
	v.SetDefault("watch.reload_schedule", "@every 5m")
}

// LoadProfile reads a profile file layered over DefaultProfile. Keys absent
// from the file keep their default; lists in the file replace the default list.
func LoadProfile(path string) (*Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}

	v := newViper()
	if err := readExpanded(v, path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("profile file not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	replaceLists := func(dc *mapstructure.DecoderConfig) {
		dc.ZeroFields = true
	}
	if err := v.Unmarshal(profile, replaceLists); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return profile, nil
}

// LoadAndValidateProfile loads a profile and rejects it unless it validates
func LoadAndValidateProfile(path string) (*Profile, error) {
	profile, err := LoadProfile(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
