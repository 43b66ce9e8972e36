// Package config defines the engine configuration: logging, topic map
// behaviour and metrics. It is read from YAML; command-line flags override
// file values through Merge.
package config
