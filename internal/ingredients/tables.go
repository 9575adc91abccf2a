package ingredients

import "skincare-advisor/internal/models"

type ing = models.Ingredient

var bySkinType = map[string][]ing{
	models.SkinTypeDry: {
		{Name: "Hyaluronic Acid", Benefit: "Hydration and moisture retention"},
		{Name: "Glycerin", Benefit: "Hydration and moisture barrier support"},
		{Name: "Ceramides", Benefit: "Strengthens moisture barrier"},
		{Name: "Squalane", Benefit: "Lightweight, non-greasy hydration"},
		{Name: "Shea Butter", Benefit: "Rich moisturization for dry skin"},
	},
	models.SkinTypeOily: {
		{Name: "Niacinamide", Benefit: "Regulates sebum production"},
		{Name: "Salicylic Acid", Benefit: "Unclogs pores and reduces oil"},
		{Name: "Tea Tree Oil", Benefit: "Natural antibacterial properties"},
		{Name: "Kaolin Clay", Benefit: "Absorbs excess oil"},
		{Name: "Zinc PCA", Benefit: "Controls shine and oil production"},
	},
	models.SkinTypeCombination: {
		{Name: "Niacinamide", Benefit: "Balances oil production in T-zone"},
		{Name: "Hyaluronic Acid", Benefit: "Hydrates dry areas without oiliness"},
		{Name: "Green Tea Extract", Benefit: "Soothes and balances skin"},
		{Name: "Glycolic Acid", Benefit: "Gentle exfoliation for both areas"},
		{Name: "Squalane", Benefit: "Lightweight hydration for all skin types"},
	},
	models.SkinTypeNormal: {
		{Name: "Peptides", Benefit: "Maintains skin health and elasticity"},
		{Name: "Antioxidants", Benefit: "Protects against environmental damage"},
		{Name: "Vitamin E", Benefit: "Nourishes and protects skin"},
		{Name: "Glycerin", Benefit: "Maintains optimal hydration"},
		{Name: "Aloe Vera", Benefit: "Soothes and hydrates skin"},
	},
	models.SkinTypeSensitive: {
		{Name: "Centella Asiatica", Benefit: "Calms and soothes sensitive skin"},
		{Name: "Allantoin", Benefit: "Reduces irritation and redness"},
		{Name: "Oat Extract", Benefit: "Gentle anti-inflammatory properties"},
		{Name: "Aloe Vera", Benefit: "Soothes and reduces sensitivity"},
		{Name: "Bisabolol", Benefit: "Calms irritation and redness"},
	},
}

var byConcern = map[string][]ing{
	"Acne": {
		{Name: "Salicylic Acid", Benefit: "Unclogs pores and reduces breakouts"},
		{Name: "Benzoyl Peroxide", Benefit: "Kills acne-causing bacteria"},
		{Name: "Tea Tree Oil", Benefit: "Natural antibacterial properties"},
		{Name: "Niacinamide", Benefit: "Reduces inflammation and redness"},
		{Name: "Zinc", Benefit: "Reduces sebum and helps heal blemishes"},
	},
	"Wrinkles": {
		{Name: "Retinol", Benefit: "Reduces fine lines and wrinkles"},
		{Name: "Peptides", Benefit: "Boosts collagen production"},
		{Name: "Vitamin C", Benefit: "Brightens and firms skin"},
		{Name: "Coenzyme Q10", Benefit: "Protects against premature aging"},
		{Name: "Hyaluronic Acid", Benefit: "Plumps skin and reduces wrinkle appearance"},
	},
	"Dullness": {
		{Name: "Vitamin C", Benefit: "Brightens and evens skin tone"},
		{Name: "AHAs (Glycolic Acid)", Benefit: "Exfoliates and reveals brighter skin"},
		{Name: "Niacinamide", Benefit: "Improves radiance and texture"},
		{Name: "Arbutin", Benefit: "Brightens and reduces dark spots"},
		{Name: "Licorice Root Extract", Benefit: "Natural brightening properties"},
	},
	"Dark Spots": {
		{Name: "Vitamin C", Benefit: "Fades hyperpigmentation"},
		{Name: "Tranexamic Acid", Benefit: "Reduces dark spots and discoloration"},
		{Name: "Kojic Acid", Benefit: "Inhibits melanin production"},
		{Name: "Arbutin", Benefit: "Brightens and evens skin tone"},
		{Name: "Niacinamide", Benefit: "Reduces appearance of dark spots"},
	},
	"Redness": {
		{Name: "Centella Asiatica", Benefit: "Reduces redness and inflammation"},
		{Name: "Green Tea Extract", Benefit: "Calms and soothes irritated skin"},
		{Name: "Azelaic Acid", Benefit: "Reduces redness and inflammation"},
		{Name: "Licorice Root Extract", Benefit: "Anti-inflammatory properties"},
		{Name: "Aloe Vera", Benefit: "Soothes and calms redness"},
	},
	"Dryness": {
		{Name: "Hyaluronic Acid", Benefit: "Intense hydration"},
		{Name: "Ceramides", Benefit: "Restores moisture barrier"},
		{Name: "Glycerin", Benefit: "Attracts and retains moisture"},
		{Name: "Squalane", Benefit: "Lightweight, non-greasy hydration"},
		{Name: "Fatty Acids", Benefit: "Nourishes and prevents moisture loss"},
	},
	"Oiliness": {
		{Name: "Niacinamide", Benefit: "Regulates sebum production"},
		{Name: "Salicylic Acid", Benefit: "Controls oil and unclogs pores"},
		{Name: "Kaolin Clay", Benefit: "Absorbs excess oil"},
		{Name: "Witch Hazel", Benefit: "Natural astringent properties"},
		{Name: "Zinc PCA", Benefit: "Reduces sebum production"},
	},
	"Large Pores": {
		{Name: "Niacinamide", Benefit: "Reduces pore appearance"},
		{Name: "Retinol", Benefit: "Tightens pores over time"},
		{Name: "BHAs (Salicylic Acid)", Benefit: "Cleans deep within pores"},
		{Name: "Clay", Benefit: "Draws out impurities from pores"},
		{Name: "Vitamin C", Benefit: "Tightens and refines pore appearance"},
	},
	"Dark Circles": {
		{Name: "Vitamin K", Benefit: "Reduces dark circles"},
		{Name: "Caffeine", Benefit: "Reduces puffiness and dark circles"},
		{Name: "Peptides", Benefit: "Strengthens delicate under-eye skin"},
		{Name: "Vitamin C", Benefit: "Brightens under-eye area"},
		{Name: "Hyaluronic Acid", Benefit: "Hydrates and plumps under-eye area"},
	},
}
