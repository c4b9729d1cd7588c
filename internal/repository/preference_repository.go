package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// PreferenceRepo remembers each sender's home city so that "events this
// weekend" can be answered without asking where they are every time.  The
// city is passed into the resolver as a request-scoped location hint; the
// resolver itself stays free of per-sender state.
type PreferenceRepo struct {
	rdb    *redis.Client
	prefix string
}

// NewPreferenceRepo accepts a nil client; every lookup then misses and
// every write is a silent no-op, matching how the rest of the service
// degrades without Redis.
func NewPreferenceRepo(rdb *redis.Client) *PreferenceRepo {
	return &PreferenceRepo{rdb: rdb, prefix: "pref:city:"}
}

// City returns the remembered city for a sender, or "" when none is set.
func (r *PreferenceRepo) City(ctx context.Context, sender string) (string, error) {
	if r.rdb == nil || sender == "" {
		return "", nil
	}
	v, err := r.rdb.Get(ctx, r.prefix+sender).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// SetCity stores the sender's city.  No expiry: a home city stays valid
// until the sender changes it.
func (r *PreferenceRepo) SetCity(ctx context.Context, sender, city string) error {
	if r.rdb == nil || sender == "" {
		return nil
	}
	return r.rdb.Set(ctx, r.prefix+sender, city, 0).Err()
}

// ClearCity forgets the sender's city.
func (r *PreferenceRepo) ClearCity(ctx context.Context, sender string) error {
	if r.rdb == nil || sender == "" {
		return nil
	}
	return r.rdb.Del(ctx, r.prefix+sender).Err()
}
