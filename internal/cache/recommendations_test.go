package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"skincare-advisor/internal/models"
	"skincare-advisor/internal/telemetry"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return b, nil
}

func (m *memStore) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = data
	m.ttls[key] = ttl
	return nil
}

func TestKeyIsStable(t *testing.T) {
	a := &models.RecommendationRequest{SkinType: "dry", Limit: 20}
	b := &models.RecommendationRequest{SkinType: "dry", Limit: 20}
	c := &models.RecommendationRequest{SkinType: "oily", Limit: 20}

	ka, _ := Key(a)
	kb, _ := Key(b)
	kc, _ := Key(c)
	if ka != kb {
		t.Errorf("equal requests produced %q and %q", ka, kb)
	}
	if ka == kc {
		t.Errorf("different requests share key %q", ka)
	}
}

func TestRecommendationsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	c := NewRecommendations(store, time.Minute)
	req := &models.RecommendationRequest{SkinType: "dry", Limit: 20}

	misses := testutil.ToFloat64(telemetry.CacheLookups.WithLabelValues("miss"))
	if _, ok := c.Get(ctx, req); ok {
		t.Fatal("unexpected hit on empty cache")
	}
	if got := testutil.ToFloat64(telemetry.CacheLookups.WithLabelValues("miss")); got != misses+1 {
		t.Errorf("miss counter = %v, want %v", got, misses+1)
	}

	want := &models.RecommendationResult{
		Products:    []models.ScoredProduct{{Product: models.Product{ID: 3, Name: "Cream"}, MatchScore: 100}},
		Ingredients: []models.Ingredient{{Name: "Ceramides", Benefit: "Barrier"}},
	}
	c.Set(ctx, req, want)

	key, _ := Key(req)
	if store.ttls[key] != time.Minute {
		t.Errorf("ttl = %v", store.ttls[key])
	}

	got, ok := c.Get(ctx, req)
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got.Products) != 1 || got.Products[0].ID != 3 || got.Products[0].MatchScore != 100 {
		t.Errorf("products = %+v", got.Products)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].Name != "Ceramides" {
		t.Errorf("ingredients = %+v", got.Ingredients)
	}
}

func TestRecommendationsStoreErrors(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.err = errors.New("connection refused")
	c := NewRecommendations(store, time.Minute)
	req := &models.RecommendationRequest{Limit: 20}

	before := testutil.ToFloat64(telemetry.CacheLookups.WithLabelValues("error"))
	if _, ok := c.Get(ctx, req); ok {
		t.Fatal("expected miss")
	}
	c.Set(ctx, req, &models.RecommendationResult{})
	if got := testutil.ToFloat64(telemetry.CacheLookups.WithLabelValues("error")); got != before+1 {
		t.Errorf("error counter = %v, want %v", got, before+1)
	}
}

func TestRecommendationsCorruptEntry(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	req := &models.RecommendationRequest{Limit: 20}
	key, _ := Key(req)
	store.data[key] = []byte("{not json")

	if _, ok := NewRecommendations(store, time.Minute).Get(ctx, req); ok {
		t.Fatal("corrupt entry should be a miss")
	}
}
