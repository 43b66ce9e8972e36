package app

import (
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/config"
)

// ResolveConfig builds the effective configuration: the defaults, or the
// file at path when it is set, with overrides applied on top. The result is
// validated.
func ResolveConfig(path string, overrides *config.Config) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if overrides != nil {
		cfg.Merge(overrides)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
