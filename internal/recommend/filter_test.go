package recommend

import (
	"testing"

	"skincare-advisor/internal/models"
)

func price(v float64) *float64 { return &v }

func ids(products []models.Product) []int64 {
	out := make([]int64, len(products))
	for i := range products {
		out[i] = products[i].ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sampleCatalog() []models.Product {
	return []models.Product{
		{
			ID: 1, Name: "Gentle Foam", Brand: "CeraVe", ProductType: "cleanser",
			SuitableSkinTypes: []string{"Oily", "combination"},
			Ingredients:       "Water, Glycerin, Niacinamide, Fragrance",
			Price:             price(12.5),
			Description:       "A cruelty free foaming cleanser.",
			KeyIngredients:    []string{"niacinamide"},
			Concerns:          []string{"acne", "oiliness"},
			Rating:            4.5,
		},
		{
			ID: 2, Name: "Hydra Serum", Brand: "The Ordinary", ProductType: "serum",
			SuitableSkinTypes: []string{"dry", "normal"},
			Ingredients:       "Water, Sodium Hyaluronate, Panthenol",
			Price:             price(8),
			Description:       "Vegan, fragrance free hydration.",
			KeyIngredients:    []string{"hyaluronic acid"},
			Concerns:          []string{"dryness"},
			Rating:            4.2,
		},
		{
			ID: 3, Name: "Barrier Cream", Brand: "CeraVe", ProductType: "moisturizer",
			Ingredients:    "Water, Ceramides, Hyaluronic Acid, Parfum",
			Price:          price(19.99),
			Description:    "Rich cream, cruelty free and vegan.",
			KeyIngredients: []string{"ceramides"},
			Rating:         4.7,
		},
		{
			ID: 4, Name: "Mystery Toner", Brand: "Indie", ProductType: "toner",
			SuitableSkinTypes: []string{"sensitive"},
			Ingredients:       "Water, Centella Asiatica",
			Description:       "Calming toner.",
			Concerns:          []string{"redness"},
			Rating:            3.9,
		},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []int64
	}{
		{"no criteria keeps everything", Criteria{}, []int64{1, 2, 3, 4}},
		{"skin type is case insensitive and untyped products pass", Criteria{SkinType: "oily"}, []int64{1, 3}},
		{"skin concerns intersect, empty concerns pass", Criteria{SkinConcerns: []string{"Acne"}}, []int64{1, 3}},
		{"concerns filter", Criteria{Concerns: []string{"redness", "dryness"}}, []int64{2, 3, 4}},
		{"allergen substring excludes", Criteria{Allergies: []string{"fragrance"}}, []int64{2, 3, 4}},
		{"allergen matches anywhere in text", Criteria{Allergies: []string{"PARF"}}, []int64{1, 2, 4}},
		{"product type allow-list", Criteria{ProductTypes: []string{"Serum", "toner"}}, []int64{2, 4}},
		{"brand allow-list", Criteria{Brands: []string{"cerave"}}, []int64{1, 3}},
		{"required ingredients are conjunctive", Criteria{Ingredients: []string{"water", "hyaluronic"}}, []int64{3}},
		{"min price keeps unpriced products", Criteria{MinPrice: price(10)}, []int64{1, 3, 4}},
		{"price range is inclusive", Criteria{MinPrice: price(8), MaxPrice: price(12.5)}, []int64{1, 2, 4}},
		{"known flag phrase", Criteria{AdditionalFilters: []string{"cruelty_free"}}, []int64{1, 3}},
		{"flags are conjunctive", Criteria{AdditionalFilters: []string{"cruelty_free", "vegan"}}, []int64{3}},
		{"unknown flag uses spaced phrase", Criteria{AdditionalFilters: []string{"Calming_toner"}}, []int64{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(sampleCatalog(), tt.criteria))
			if !equalIDs(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterCommutes(t *testing.T) {
	criteria := []Criteria{
		{SkinType: "dry"},
		{Allergies: []string{"fragrance"}},
		{Brands: []string{"CeraVe"}},
		{MaxPrice: price(15)},
		{AdditionalFilters: []string{"vegan"}},
		{Concerns: []string{"acne"}},
	}
	catalog := sampleCatalog()

	for i, a := range criteria {
		for j, b := range criteria {
			ab := ids(Filter(Filter(catalog, a), b))
			ba := ids(Filter(Filter(catalog, b), a))
			both := ids(Filter(catalog, combine(a, b)))
			if !equalIDs(ab, ba) || !equalIDs(ab, both) {
				t.Errorf("criteria %d and %d: A then B %v, B then A %v, A and B %v", i, j, ab, ba, both)
			}
		}
	}
}

func combine(a, b Criteria) Criteria {
	c := a
	if b.SkinType != "" {
		c.SkinType = b.SkinType
	}
	c.Allergies = append(append([]string{}, a.Allergies...), b.Allergies...)
	c.AdditionalFilters = append(append([]string{}, a.AdditionalFilters...), b.AdditionalFilters...)
	if b.Brands != nil {
		c.Brands = b.Brands
	}
	if b.Concerns != nil {
		c.Concerns = b.Concerns
	}
	if b.MaxPrice != nil {
		c.MaxPrice = b.MaxPrice
	}
	return c
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	catalog := sampleCatalog()
	_ = Filter(catalog, Criteria{SkinType: "dry"})
	if got := ids(catalog); !equalIDs(got, []int64{1, 2, 3, 4}) {
		t.Errorf("input reordered: %v", got)
	}
}
