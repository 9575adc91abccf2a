// Package catalog owns products and the feedback users leave on them.
//
// Every feedback write recomputes the product's rating (mean of all ratings,
// one decimal) and review count in the same unit of work, so readers never see
// a rating that disagrees with the stored feedback.
package catalog

import (
	"context"
	"errors"
	"math"

	"skincare-advisor/internal/models"
)

var ErrNotFound = errors.New("not found")

// RatingSummary is a product's aggregate after a feedback write.
type RatingSummary struct {
	Rating      float64
	ReviewCount int
}

type Store interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	// GetProduct returns ErrNotFound for unknown IDs.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	// CreateProducts inserts products, assigning IDs to those without one.
	CreateProducts(ctx context.Context, products []models.Product) error

	ListFeedback(ctx context.Context) ([]models.Feedback, error)
	ListUserFeedback(ctx context.Context, userID int64) ([]models.Feedback, error)
	// UpsertFeedback stores one rating per (user, product); a second
	// submission replaces the first. Unknown products yield ErrNotFound.
	UpsertFeedback(ctx context.Context, fb models.Feedback) (RatingSummary, error)
}

func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
