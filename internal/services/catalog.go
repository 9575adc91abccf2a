package services

import (
	"context"
	"fmt"
	"net/http"

	"skincare-advisor/internal/config"
	"skincare-advisor/internal/models"
)

// CatalogClient reads products and feedback from catalog-service. It is the
// gateway's recommend.Catalog and recommend.FeedbackSource.
type CatalogClient struct {
	*ServiceClient
}

func NewCatalogClient(cfg config.ServicesConfig) *CatalogClient {
	return &CatalogClient{newServiceClient("catalog-service", cfg.CatalogURL, cfg)}
}

func (c *CatalogClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *CatalogClient) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *CatalogClient) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	var fb []models.Feedback
	if err := c.getJSON(ctx, "/feedback", &fb); err != nil {
		return nil, err
	}
	return fb, nil
}

// SubmitFeedback upserts the user's rating and returns the new aggregate.
func (c *CatalogClient) SubmitFeedback(ctx context.Context, fb models.Feedback) (*models.FeedbackResponse, error) {
	var resp models.FeedbackResponse
	if err := c.doJSON(ctx, http.MethodPost, "/feedback", fb, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
