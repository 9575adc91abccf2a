// Package recommend builds product recommendations for a skin profile.
//
// One request runs a fixed pipeline over a catalog snapshot:
//
//	catalog -> Filter -> ContentScorer ----------\
//	                  \-> CollaborativeScorer ----> Merge -> MatchScores
//
// plus an ingredient list from the ingredients package. Scoring is pure and
// in-memory; the only I/O is the catalog and feedback fetch at the start, so
// one Engine can serve concurrent requests without locking.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skincare-advisor/internal/ingredients"
	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
	"skincare-advisor/internal/telemetry"
)

// Catalog supplies the product snapshot for one request.
type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// FeedbackSource supplies every rating record for collaborative scoring.
type FeedbackSource interface {
	ListFeedback(ctx context.Context) ([]models.Feedback, error)
}

type Config struct {
	DefaultLimit int
	MaxNeighbors int
}

func DefaultConfig() Config {
	return Config{
		DefaultLimit: 20,
		MaxNeighbors: defaultMaxNeighbors,
	}
}

type Engine struct {
	catalog  Catalog
	feedback FeedbackSource
	content  ContentScorer
	collab   *CollaborativeScorer
	cfg      Config
}

// NewEngine wires the pipeline. feedback may be nil, which disables
// collaborative scoring.
func NewEngine(catalog Catalog, feedback FeedbackSource, cfg Config) *Engine {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultConfig().DefaultLimit
	}
	return &Engine{
		catalog:  catalog,
		feedback: feedback,
		collab:   NewCollaborativeScorer(cfg.MaxNeighbors),
		cfg:      cfg,
	}
}

// Recommend validates req, filters and ranks the catalog and returns the
// scored products with ingredient suggestions. Errors wrap ErrInvalidRequest
// or ErrCatalogUnavailable where they apply.
func (e *Engine) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResult, error) {
	start := time.Now()
	result, err := e.recommend(ctx, req)
	telemetry.RecommendationDuration.Observe(time.Since(start).Seconds())
	telemetry.RecommendationsTotal.WithLabelValues(outcome(err)).Inc()
	return result, err
}

func (e *Engine) recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResult, error) {
	req, err := Normalize(req, e.cfg.DefaultLimit)
	if err != nil {
		return nil, err
	}

	products, err := e.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: catalog returned no products", ErrCatalogUnavailable)
	}

	candidates := Filter(products, CriteriaFrom(req))
	concernNames := ConcernNames(req.SkinConcerns)
	contentRanked := e.content.Rank(ctx, candidates, req.SkinType, concernNames)

	var collabRanked []models.Product
	if req.UserID != nil && e.feedback != nil {
		feedback, err := e.feedback.ListFeedback(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: load feedback: %w", ErrCatalogUnavailable, err)
		}
		collabRanked = e.collab.Rank(*req.UserID, feedback, candidates)
		if len(collabRanked) == 0 {
			logging.Ctx(ctx).Debug().Int64("user_id", *req.UserID).Msg("No collaborative neighbours")
		}
	}

	scored := MatchScores(Merge(collabRanked, contentRanked), req.Limit)

	logging.Ctx(ctx).Info().
		Int("catalog", len(products)).
		Int("candidates", len(candidates)).
		Int("collaborative", len(collabRanked)).
		Int("returned", len(scored)).
		Msg("Recommendations generated")

	return &models.RecommendationResult{
		Products:    scored,
		Ingredients: ingredients.Recommend(req.SkinType, req.SkinConcerns),
	}, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid"
	case errors.Is(err, ErrCatalogUnavailable):
		return "catalog_unavailable"
	default:
		return "error"
	}
}
