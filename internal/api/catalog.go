package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skincare-advisor/internal/catalog"
	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
	"skincare-advisor/internal/telemetry"
	"skincare-advisor/internal/validation"
)

// CatalogHandler serves catalog-service. It is internal and unauthenticated;
// only the gateway calls it.
type CatalogHandler struct {
	store catalog.Store
}

func NewCatalogHandler(store catalog.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

func (h *CatalogHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(telemetry.Middleware("catalog-service"))

	r.Get("/health", health)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Get("/feedback", h.listFeedback)
	r.Get("/feedback/users/{id}", h.listUserFeedback)
	r.Post("/feedback", h.upsertFeedback)
	return r
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) listFeedback(w http.ResponseWriter, r *http.Request) {
	fb, err := h.store.ListFeedback(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, fb)
}

func (h *CatalogHandler) listUserFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	fb, err := h.store.ListUserFeedback(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, fb)
}

func (h *CatalogHandler) upsertFeedback(w http.ResponseWriter, r *http.Request) {
	var fb models.Feedback
	if err := decodeJSON(w, r, &fb); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := validation.Struct(&fb); err != nil {
		respondServiceError(w, r, err)
		return
	}

	summary, err := h.store.UpsertFeedback(r.Context(), fb)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int64("product_id", fb.ProductID).
		Float64("rating", summary.Rating).
		Int("review_count", summary.ReviewCount).
		Msg("Product rating updated")

	respondJSON(w, http.StatusOK, models.FeedbackResponse{
		Message:     "Feedback submitted successfully",
		ProductID:   fb.ProductID,
		Rating:      fb.Rating,
		AvgRating:   summary.Rating,
		ReviewCount: summary.ReviewCount,
	})
}
