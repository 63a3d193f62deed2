package file

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every override variable.
const EnvPrefix = "TGCORE"

// Overrides lists the settings that may be supplied through the
// environment. Unset variables leave the pointer nil.
type Overrides struct {
	Cassette *string  `envconfig:"CASSETTE"`
	Rate     *float64 `envconfig:"RATE"`
	PageSize *int     `envconfig:"PAGE_SIZE"`
	Policy   *string  `envconfig:"POLICY"`
	SelfID   *int64   `envconfig:"SELF_ID"`
	LogLevel *string  `envconfig:"LOG_LEVEL"`
}

// LoadOverrides reads TGCORE_* variables and returns them keyed by
// their config key.
func LoadOverrides() (map[string]any, error) {
	var env Overrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return env.Keys(), nil
}

// Keys maps the set overrides to config keys.
func (o Overrides) Keys() map[string]any {
	out := make(map[string]any)
	if o.Cassette != nil {
		out["transport.cassette"] = *o.Cassette
	}
	if o.Rate != nil {
		out["transport.rate"] = *o.Rate
	}
	if o.PageSize != nil {
		out["pagination.page_size"] = int64(*o.PageSize)
	}
	if o.Policy != nil {
		out["decode.policy"] = *o.Policy
	}
	if o.SelfID != nil {
		out["decode.self_id"] = *o.SelfID
	}
	if o.LogLevel != nil {
		out["log.level"] = *o.LogLevel
	}
	return out
}
