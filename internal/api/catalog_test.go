package api

import (
	"context"
	"net/http"
	"testing"

	"skincare-advisor/internal/catalog"
	"skincare-advisor/internal/models"
)

func newCatalogHandler(t *testing.T) http.Handler {
	t.Helper()
	store := catalog.NewMemoryStore()
	if err := catalog.Seed(context.Background(), store); err != nil {
		t.Fatal(err)
	}
	return NewCatalogHandler(store).Routes()
}

func TestCatalogFeedbackUpdatesRating(t *testing.T) {
	h := newCatalogHandler(t)

	for _, body := range []string{
		`{"userId":1,"productId":2,"rating":5}`,
		`{"userId":2,"productId":2,"rating":4,"feedback":"works"}`,
	} {
		if rec := do(t, h, http.MethodPost, "/feedback", body, nil); rec.Code != http.StatusOK {
			t.Fatalf("POST %s = %d: %s", body, rec.Code, rec.Body.String())
		}
	}

	rec := do(t, h, http.MethodPost, "/feedback", `{"userId":1,"productId":2,"rating":3}`, nil)
	res := decode[models.FeedbackResponse](t, rec)
	if res.AvgRating != 3.5 || res.ReviewCount != 2 || res.Rating != 3 {
		t.Errorf("response = %+v", res)
	}

	p := decode[models.Product](t, do(t, h, http.MethodGet, "/products/2", "", nil))
	if p.Rating != 3.5 || p.ReviewCount != 2 {
		t.Errorf("product aggregate = %.1f/%d", p.Rating, p.ReviewCount)
	}

	all := decode[[]models.Feedback](t, do(t, h, http.MethodGet, "/feedback", "", nil))
	if len(all) != 2 {
		t.Errorf("feedback = %+v", all)
	}
	mine := decode[[]models.Feedback](t, do(t, h, http.MethodGet, "/feedback/users/2", "", nil))
	if len(mine) != 1 || mine[0].Text != "works" {
		t.Errorf("user feedback = %+v", mine)
	}
}

func TestCatalogFeedbackRejects(t *testing.T) {
	h := newCatalogHandler(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"rating too high", `{"userId":1,"productId":2,"rating":6}`, http.StatusBadRequest},
		{"missing user", `{"productId":2,"rating":4}`, http.StatusBadRequest},
		{"unknown product", `{"userId":1,"productId":999,"rating":4}`, http.StatusNotFound},
		{"not json", `rating=4`, http.StatusBadRequest},
		{"two objects", `{"userId":1,"productId":2,"rating":4}{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, h, http.MethodPost, "/feedback", tt.body, nil); rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestCatalogProducts(t *testing.T) {
	h := newCatalogHandler(t)

	products := decode[[]models.Product](t, do(t, h, http.MethodGet, "/products", "", nil))
	if len(products) != len(catalog.DemoProducts()) {
		t.Errorf("got %d products", len(products))
	}
	if rec := do(t, h, http.MethodGet, "/products/0", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("id 0 status = %d", rec.Code)
	}
}
