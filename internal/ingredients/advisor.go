// Package ingredients maps a skin type and concerns to suggested actives.
package ingredients

import (
	"strings"

	"skincare-advisor/internal/models"
)

const (
	maxResults        = 8
	perSkinType       = 3
	concernsConsulted = 3
	perConcern        = 2
)

// Recommend starts from the top entries for the skin type, then adds the
// top entries for each of the first concerns, skipping names already
// present. Concern names match table keys exactly ("Acne", "Dark Spots");
// unknown skin types and concerns contribute nothing.
func Recommend(skinType string, concerns []models.SkinConcern) []models.Ingredient {
	out := make([]models.Ingredient, 0, maxResults)
	seen := make(map[string]struct{}, maxResults)

	add := func(list []models.Ingredient, n int) {
		if len(list) > n {
			list = list[:n]
		}
		for _, ing := range list {
			if _, ok := seen[ing.Name]; ok {
				continue
			}
			seen[ing.Name] = struct{}{}
			out = append(out, ing)
		}
	}

	add(bySkinType[strings.ToLower(strings.TrimSpace(skinType))], perSkinType)

	if len(concerns) > concernsConsulted {
		concerns = concerns[:concernsConsulted]
	}
	for _, c := range concerns {
		add(byConcern[c.Name], perConcern)
	}

	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

// KnownConcern reports whether name has an ingredient table entry.
func KnownConcern(name string) bool {
	_, ok := byConcern[name]
	return ok
}
