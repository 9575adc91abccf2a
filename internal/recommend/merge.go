package recommend

import (
	"math"

	"skincare-advisor/internal/models"
)

// Merge emits the collaborative list first, then every content-based
// product not already emitted. Both lists keep their own order and products
// are deduplicated by ID. Scores are not blended.
func Merge(collaborative, content []models.Product) []models.Product {
	seen := make(map[int64]struct{}, len(collaborative)+len(content))
	out := make([]models.Product, 0, len(collaborative)+len(content))

	for _, list := range [][]models.Product{collaborative, content} {
		for i := range list {
			if _, ok := seen[list[i].ID]; ok {
				continue
			}
			seen[list[i].ID] = struct{}{}
			out = append(out, list[i])
		}
	}
	return out
}

// MatchScores truncates products to limit and assigns a position-based
// score: item i of N gets floor(100 - i*100/N). The first item is always 100.
// A non-positive limit keeps every product.
func MatchScores(products []models.Product, limit int) []models.ScoredProduct {
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}

	n := len(products)
	out := make([]models.ScoredProduct, n)
	if n == 0 {
		return out
	}

	step := 100 / float64(n)
	for i := range products {
		out[i] = models.ScoredProduct{
			Product:    products[i],
			MatchScore: int(math.Floor(100 - float64(i)*step)),
		}
	}
	return out
}
