package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/newbery/pyenv-uv-plugin/internal/pyenv"
)

// Configuration keys.
const (
	KeyPrefix       = "prefix"
	KeyProbeTimeout = "probe_timeout"
	KeyPythonDir    = "python_dir"
)

// Defaults applied when the config file or key is absent.
const (
	DefaultPrefix       = "uv-"
	DefaultProbeTimeout = 10 * time.Second
)

const envPrefix = "PYENV_UV"

// Load initializes Viper with defaults, the optional config file, and the
// PYENV_UV_* environment overrides. A present-but-invalid config file is an
// error; a missing file is not.
func Load() error {
	viper.SetDefault(KeyPrefix, DefaultPrefix)
	viper.SetDefault(KeyProbeTimeout, DefaultProbeTimeout.String())
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	path, err := pyenv.ConfigPath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return fmt.Errorf("validating config file %s: %w", path, err)
	}
	if !result.Valid {
		return fmt.Errorf("config file %s is invalid: %s", path, result.Issues[0].Message)
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

// Prefix returns the naming prefix for registered installation links.
func Prefix() string {
	return viper.GetString(KeyPrefix)
}

// ProbeTimeout returns the bound applied to interpreter version probes.
// Falls back to the default if the configured value does not parse.
func ProbeTimeout() time.Duration {
	d, err := time.ParseDuration(viper.GetString(KeyProbeTimeout))
	if err != nil || d <= 0 {
		return DefaultProbeTimeout
	}
	return d
}

// PythonDir returns the configured provenance root override, or "" when the
// uv-managed python directory should be discovered from uv itself.
func PythonDir() string {
	return viper.GetString(KeyPythonDir)
}
