package core

import (
	"fmt"
	"time"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/config"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/datetime"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/optimistic"
)

// ConfigOptions returns the options set by the loaded configuration.
func ConfigOptions() ([]Option, error) {
	policy, err := optimistic.ParsePolicy(config.Get("rollback_policy", "keep"))
	if err != nil {
		return nil, fmt.Errorf("rollback_policy: %w", err)
	}
	codec, err := datetime.NewForZone(config.Get("timezone", ""))
	if err != nil {
		return nil, err
	}
	return []Option{
		WithPageSize(config.GetInt("page_size", 10)),
		WithSearchDelay(config.GetDuration("search_debounce_ms", time.Millisecond, 500*time.Millisecond)),
		WithRollback(policy),
		WithCodec(codec),
	}, nil
}
