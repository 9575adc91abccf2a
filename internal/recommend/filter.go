package recommend

import (
	"strings"

	"skincare-advisor/internal/models"
)

// Criteria is a conjunctive set of product predicates. Zero-valued fields
// are no-ops, so Criteria{} keeps every product.
type Criteria struct {
	SkinType          string
	SkinConcerns      []string
	Allergies         []string
	ProductTypes      []string
	Concerns          []string
	Brands            []string
	Ingredients       []string
	MinPrice          *float64
	MaxPrice          *float64
	AdditionalFilters []string
}

// additionalFilterPhrases maps a front-end flag to the phrase searched for
// in product descriptions. Unlisted flags search for the flag with
// underscores replaced by spaces.
var additionalFilterPhrases = map[string]string{
	"cruelty_free":   "cruelty free",
	"vegan":          "vegan",
	"fragrance_free": "fragrance free",
	"paraben_free":   "paraben free",
	"oil_free":       "oil free",
}

type predicate func(p *models.Product) bool

// Filter returns the products satisfying every criterion, in input order.
// The input slice is not modified.
func Filter(products []models.Product, c Criteria) []models.Product {
	preds := c.predicates()

	out := make([]models.Product, 0, len(products))
	for i := range products {
		if matchesAll(&products[i], preds) {
			out = append(out, products[i])
		}
	}
	return out
}

func matchesAll(p *models.Product, preds []predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

func (c Criteria) predicates() []predicate {
	var preds []predicate

	if c.SkinType != "" {
		skinType := strings.ToLower(c.SkinType)
		preds = append(preds, func(p *models.Product) bool {
			return len(p.SuitableSkinTypes) == 0 || containsFold(p.SuitableSkinTypes, skinType)
		})
	}

	if len(c.SkinConcerns) > 0 {
		wanted := lowerSet(c.SkinConcerns)
		preds = append(preds, func(p *models.Product) bool {
			return len(p.Concerns) == 0 || intersects(p.Concerns, wanted)
		})
	}

	if len(c.Allergies) > 0 {
		allergens := lowerAll(c.Allergies)
		preds = append(preds, func(p *models.Product) bool {
			text := strings.ToLower(p.Ingredients)
			for _, a := range allergens {
				if strings.Contains(text, a) {
					return false
				}
			}
			return true
		})
	}

	if len(c.ProductTypes) > 0 {
		types := lowerSet(c.ProductTypes)
		preds = append(preds, func(p *models.Product) bool {
			_, ok := types[strings.ToLower(p.ProductType)]
			return ok
		})
	}

	if len(c.Concerns) > 0 {
		wanted := lowerSet(c.Concerns)
		preds = append(preds, func(p *models.Product) bool {
			return len(p.Concerns) == 0 || intersects(p.Concerns, wanted)
		})
	}

	if len(c.Brands) > 0 {
		brands := lowerSet(c.Brands)
		preds = append(preds, func(p *models.Product) bool {
			_, ok := brands[strings.ToLower(p.Brand)]
			return ok
		})
	}

	if len(c.Ingredients) > 0 {
		required := lowerAll(c.Ingredients)
		preds = append(preds, func(p *models.Product) bool {
			text := strings.ToLower(p.Ingredients)
			for _, ing := range required {
				if !strings.Contains(text, ing) {
					return false
				}
			}
			return true
		})
	}

	if c.MinPrice != nil || c.MaxPrice != nil {
		lo, hi := c.MinPrice, c.MaxPrice
		preds = append(preds, func(p *models.Product) bool {
			if p.Price == nil {
				return true
			}
			if lo != nil && *p.Price < *lo {
				return false
			}
			if hi != nil && *p.Price > *hi {
				return false
			}
			return true
		})
	}

	for _, flag := range c.AdditionalFilters {
		phrase := descriptionPhrase(flag)
		preds = append(preds, func(p *models.Product) bool {
			return strings.Contains(strings.ToLower(p.Description), phrase)
		})
	}

	return preds
}

func descriptionPhrase(flag string) string {
	flag = strings.ToLower(flag)
	if phrase, ok := additionalFilterPhrases[flag]; ok {
		return phrase
	}
	return strings.ReplaceAll(flag, "_", " ")
}

func containsFold(values []string, lowered string) bool {
	for _, v := range values {
		if strings.ToLower(v) == lowered {
			return true
		}
	}
	return false
}

func intersects(values []string, set map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := set[strings.ToLower(v)]; ok {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, strings.ToLower(v))
		}
	}
	return out
}
