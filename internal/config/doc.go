// Package config manages plugin settings stored at $PYENV_ROOT/uv-config.yaml.
// Settings cover the registered-link naming prefix, the interpreter probe
// timeout, and an optional override for the uv-managed python directory.
// The file is optional; when present it is validated against an embedded
// JSON schema before use.
package config
