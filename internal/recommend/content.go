package recommend

import (
	"context"
	"sort"
	"strings"

	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
	"skincare-advisor/internal/telemetry"
)

// ContentScorer ranks products by TF-IDF cosine similarity between a
// product feature string and a profile string built from the skin type and
// concern names.
type ContentScorer struct{}

// Rank never fails. With an empty profile, or when vectorisation is
// impossible, it returns the products ordered by rating, highest first.
// Equal similarities are ordered by rating, then by input position.
func (ContentScorer) Rank(ctx context.Context, products []models.Product, skinType string, concerns []string) []models.Product {
	if len(products) == 0 {
		return []models.Product{}
	}

	profile := profileString(skinType, concerns)
	if profile == "" {
		telemetry.ContentFallbackTotal.WithLabelValues("empty_profile").Inc()
		logging.Ctx(ctx).Debug().Msg("No skin profile, ranking by rating")
		return ByRating(products)
	}

	docs := make([]string, 0, len(products)+1)
	for i := range products {
		docs = append(docs, featureString(&products[i]))
	}
	docs = append(docs, profile)

	model, err := fitTransform(docs)
	if err != nil {
		telemetry.ContentFallbackTotal.WithLabelValues("vectorize_failed").Inc()
		logging.Ctx(ctx).Warn().Err(err).Msg("Content scoring degraded to rating order")
		return ByRating(products)
	}

	user := model.vectors[len(products)]
	type scored struct {
		product    models.Product
		similarity float64
	}
	ranked := make([]scored, len(products))
	for i := range products {
		ranked[i] = scored{product: products[i], similarity: cosine(user, model.vectors[i])}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].similarity != ranked[j].similarity {
			return ranked[i].similarity > ranked[j].similarity
		}
		return ranked[i].product.Rating > ranked[j].product.Rating
	})

	out := make([]models.Product, len(ranked))
	for i := range ranked {
		out[i] = ranked[i].product
	}
	return out
}

// ByRating returns a copy of products sorted by rating descending, stable on ties.
func ByRating(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}

func featureString(p *models.Product) string {
	parts := make([]string, 0, 1+len(p.SuitableSkinTypes)+len(p.Concerns)+len(p.KeyIngredients))
	if p.ProductType != "" {
		parts = append(parts, p.ProductType)
	}
	parts = append(parts, p.SuitableSkinTypes...)
	parts = append(parts, p.Concerns...)
	parts = append(parts, p.KeyIngredients...)
	return strings.ToLower(strings.Join(parts, " "))
}

func profileString(skinType string, concerns []string) string {
	parts := make([]string, 0, 1+len(concerns))
	if s := strings.TrimSpace(skinType); s != "" {
		parts = append(parts, s)
	}
	for _, c := range concerns {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
