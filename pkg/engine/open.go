package engine

import (
	"fmt"

	"github.com/dd0wney/cluso-wayfind/pkg/config"
	"github.com/dd0wney/cluso-wayfind/pkg/snapshot"
	"github.com/dd0wney/cluso-wayfind/pkg/validation"
)

// Open loads the building named by cfg. A feed is preferred over a snapshot
// when both are configured. The configured worker count applies unless ec
// sets its own.
func Open(cfg config.Config, ec *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	merged := Config{Workers: cfg.Workers}
	if ec != nil {
		merged.Logger = ec.Logger
		merged.Metrics = ec.Metrics
		merged.Workers = validation.DefaultOr(ec.Workers, cfg.Workers)
	}

	if cfg.FeedPath != "" {
		return LoadFile(cfg.FeedPath, &merged)
	}

	snap, err := snapshot.ReadFile(cfg.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", cfg.SnapshotPath, err)
	}
	return FromSnapshot(snap, &merged)
}
