// Package config defines the YAML/JSON configuration of the coala server:
// engine settings, the descriptors registered at startup and logging. It
// also loads, defaults and validates the configuration file.
package config
