package catalog

import (
	"context"
	"fmt"

	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
)

// Seed inserts the demo catalog into an empty store and is a no-op otherwise.
func Seed(ctx context.Context, s Store) error {
	n, err := s.CountProducts(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logging.Ctx(ctx).Debug().Int64("products", n).Msg("Catalog already populated, skipping seed")
		return nil
	}

	products := DemoProducts()
	if err := s.CreateProducts(ctx, products); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	logging.Ctx(ctx).Info().Int("products", len(products)).Msg("Seeded demo catalog")
	return nil
}

func usd(v float64) *float64 { return &v }

// DemoProducts is a small catalog covering every product type and skin type.
func DemoProducts() []models.Product {
	return []models.Product{
		{
			Name: "Hydrating Facial Cleanser", Brand: "CeraVe", ProductType: "cleanser",
			SuitableSkinTypes: []string{"dry", "normal", "sensitive"},
			Ingredients:       "Aqua, Glycerin, Ceramide NP, Ceramide AP, Ceramide EOP, Hyaluronic Acid, Cholesterol",
			Price:             usd(15.99), Size: "355ml",
			Description:    "Gentle non-foaming cleanser that hydrates while it cleans. Fragrance free.",
			Benefits:       []string{"Removes dirt without stripping", "Restores the skin barrier"},
			HowToUse:       "Massage onto wet skin morning and evening, then rinse.",
			KeyIngredients: []string{"ceramides", "hyaluronic acid", "glycerin"},
			Concerns:       []string{"dryness", "sensitivity"},
			Rating:         4.5,
		},
		{
			Name: "Salicylic Acid Cleanser", Brand: "CeraVe", ProductType: "cleanser",
			SuitableSkinTypes: []string{"oily", "combination"},
			Ingredients:       "Aqua, Cocamidopropyl Hydroxysultaine, Salicylic Acid, Niacinamide, Ceramide NP",
			Price:             usd(13.49), Size: "237ml",
			Description:    "Renewing cleanser that exfoliates and softens rough skin. Fragrance free and non-comedogenic.",
			KeyIngredients: []string{"salicylic acid", "niacinamide", "ceramides"},
			Concerns:       []string{"acne", "oiliness", "large pores"},
			Rating:         4.3,
		},
		{
			Name: "Niacinamide 10% + Zinc 1%", Brand: "The Ordinary", ProductType: "serum",
			SuitableSkinTypes: []string{"oily", "combination", "normal"},
			Ingredients:       "Aqua, Niacinamide, Pentylene Glycol, Zinc PCA, Tamarindus Indica Seed Gum",
			Price:             usd(6.5), Size: "30ml",
			Description:    "High-strength vitamin and mineral blemish formula. Vegan and cruelty free.",
			KeyIngredients: []string{"niacinamide", "zinc pca"},
			Concerns:       []string{"acne", "oiliness", "large pores", "dark spots"},
			Rating:         4.2,
		},
		{
			Name: "Hyaluronic Acid 2% + B5", Brand: "The Ordinary", ProductType: "serum",
			SuitableSkinTypes: []string{"dry", "normal", "combination", "oily", "sensitive"},
			Ingredients:       "Aqua, Sodium Hyaluronate, Pentylene Glycol, Panthenol",
			Price:             usd(8.9), Size: "30ml",
			Description:    "Multi-depth hydration serum. Vegan, cruelty free and oil free.",
			KeyIngredients: []string{"hyaluronic acid", "panthenol"},
			Concerns:       []string{"dryness", "wrinkles"},
			Rating:         4.4,
		},
		{
			Name: "C-Firma Fresh Day Serum", Brand: "Drunk Elephant", ProductType: "serum",
			SuitableSkinTypes: []string{"normal", "dry", "combination"},
			Ingredients:       "Ascorbic Acid, Ferulic Acid, Tocopherol, Pumpkin Ferment Extract, Fragrance",
			Price:             usd(78), Size: "28ml",
			Description:    "Potent vitamin C day serum for brightness and firmness.",
			KeyIngredients: []string{"vitamin c", "ferulic acid", "vitamin e"},
			Concerns:       []string{"dullness", "dark spots", "wrinkles"},
			Rating:         4.1,
		},
		{
			Name: "Toleriane Double Repair Moisturizer", Brand: "La Roche-Posay", ProductType: "moisturizer",
			SuitableSkinTypes: []string{"sensitive", "normal", "dry"},
			Ingredients:       "Aqua, Glycerin, Ceramide NP, Niacinamide, Thermal Spring Water",
			Price:             usd(21.99), Size: "75ml",
			Description:    "Oil free face moisturizer that restores the barrier within an hour. Fragrance free.",
			KeyIngredients: []string{"ceramides", "niacinamide"},
			Concerns:       []string{"dryness", "redness", "sensitivity"},
			Rating:         4.7,
		},
		{
			Name: "Water Cream", Brand: "Tatcha", ProductType: "moisturizer",
			SuitableSkinTypes: []string{"oily", "combination"},
			Ingredients:       "Water, Saccharomyces Ferment, Glycerin, Japanese Wild Rose, Fragrance",
			Price:             usd(72), Size: "50ml",
			Description:    "Oil free water cream that refines pores.",
			KeyIngredients: []string{"japanese wild rose", "green tea"},
			Concerns:       []string{"oiliness", "large pores", "dullness"},
			Rating:         4.0,
		},
		{
			Name: "Anthelios Melt-in Milk SPF 60", Brand: "La Roche-Posay", ProductType: "sunscreen",
			SuitableSkinTypes: []string{"dry", "normal", "combination", "oily", "sensitive"},
			Ingredients:       "Avobenzone, Homosalate, Octisalate, Octocrylene, Glycerin",
			Price:             usd(36.99), Size: "150ml",
			Description:    "Broad spectrum sunscreen for face and body. Paraben free.",
			KeyIngredients: []string{"avobenzone", "antioxidants"},
			Concerns:       []string{"dark spots", "wrinkles"},
			Rating:         4.6,
		},
		{
			Name: "Glycolic Acid 7% Toning Solution", Brand: "The Ordinary", ProductType: "toner",
			SuitableSkinTypes: []string{"normal", "oily", "combination"},
			Ingredients:       "Aqua, Glycolic Acid, Rosa Damascena Flower Water, Aloe Barbadensis Leaf Water",
			Price:             usd(12.7), Size: "240ml",
			Description:    "Exfoliating toner for radiance and texture. Vegan and cruelty free.",
			KeyIngredients: []string{"glycolic acid", "aloe vera"},
			Concerns:       []string{"dullness", "dark spots"},
			Rating:         3.9,
		},
		{
			Name: "Retinol 0.5% in Squalane", Brand: "The Ordinary", ProductType: "treatment",
			SuitableSkinTypes: []string{"normal", "dry", "combination", "oily"},
			Ingredients:       "Squalane, Caprylic/Capric Triglyceride, Retinol, Solanum Lycopersicum Fruit Extract",
			Price:             usd(7.6), Size: "30ml",
			Description:    "Water-free retinol solution for signs of aging. Vegan and cruelty free.",
			KeyIngredients: []string{"retinol", "squalane"},
			Concerns:       []string{"wrinkles", "dark spots", "acne"},
			Rating:         4.0,
		},
		{
			Name: "Cicapair Calming Mask", Brand: "Dr. Jart+", ProductType: "mask",
			SuitableSkinTypes: []string{"sensitive", "dry", "normal"},
			Ingredients:       "Water, Centella Asiatica Extract, Glycerin, Madecassoside",
			Price:             usd(8), Size: "25g",
			Description:    "Soothing sheet mask for redness.",
			KeyIngredients: []string{"centella asiatica"},
			Concerns:       []string{"redness", "sensitivity"},
			Rating:         4.3,
		},
	}
}
