// Package config handles configuration management for dotgen.
// It layers the embedded defaults, an optional user TOML file and DOTGEN_*
// environment variables, then decodes the result into a Config.
package config
