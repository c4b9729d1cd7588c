package config

import "time"

// CacheConfig controls the Redis response cache on the search endpoint.
// Identical queries inside the TTL are answered without touching the
// upstream, which also spares the outbound rate-limit slot.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 2*time.Minute),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 2 * time.Minute
	}
	return cfg
}
