package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
	"skincare-advisor/internal/telemetry"
)

// Store is the byte-level cache the typed caches sit on. *Client satisfies it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// Recommendations caches engine results keyed by the normalized request.
type Recommendations struct {
	store Store
	ttl   time.Duration
}

func NewRecommendations(store Store, ttl time.Duration) *Recommendations {
	return &Recommendations{store: store, ttl: ttl}
}

// Key hashes the request JSON. Callers must normalize the request first so
// equivalent filters share an entry.
func Key(req *models.RecommendationRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	return "recs:" + strconv.FormatUint(xxhash.Sum64(b), 16), nil
}

func (c *Recommendations) Get(ctx context.Context, req *models.RecommendationRequest) (*models.RecommendationResult, bool) {
	key, err := Key(req)
	if err != nil {
		return nil, false
	}

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrMiss) {
			telemetry.CacheLookups.WithLabelValues("miss").Inc()
		} else {
			telemetry.CacheLookups.WithLabelValues("error").Inc()
			logging.Ctx(ctx).Warn().Err(err).Msg("Recommendation cache read failed")
		}
		return nil, false
	}

	var res models.RecommendationResult
	if err := json.Unmarshal(data, &res); err != nil {
		telemetry.CacheLookups.WithLabelValues("error").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Discarding corrupt cache entry")
		return nil, false
	}

	telemetry.CacheLookups.WithLabelValues("hit").Inc()
	return &res, true
}

func (c *Recommendations) Set(ctx context.Context, req *models.RecommendationRequest, res *models.RecommendationResult) {
	key, err := Key(req)
	if err != nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Recommendation cache write failed")
	}
}
