package services

import "brand-intel/models"

// Built-in brand configurations. Custom configurations registered through
// the generator take precedence over these.
func defaultBrandConfigurations() map[string]models.BrandConfig {
	return map[string]models.BrandConfig{
		"SAÏDA": {
			Name:        "SAÏDA",
			Industry:    "Agroalimentaire",
			Competitors: []string{},
			ProductCategories: []models.ProductCategory{
				{
					Rayon:        "Épicerie",
					Famille:      "Huiles",
					SousFamilles: []string{"Huile d'olive", "Huile de tournesol", "Huile de maïs"},
					Products: []models.ProductTemplate{
						{Name: "Huile d'olive extra vierge", GrammageOptions: []float64{250, 500, 1000}, BasePrice: 8.5, PriceVariation: 0.3},
						{Name: "Huile d'olive vierge", GrammageOptions: []float64{500, 1000}, BasePrice: 6.2, PriceVariation: 0.25},
						{Name: "Huile de tournesol", GrammageOptions: []float64{500, 1000}, BasePrice: 4.8, PriceVariation: 0.2},
					},
				},
				{
					Rayon:        "Épicerie",
					Famille:      "Conserves",
					SousFamilles: []string{"Tomates", "Poissons", "Légumes"},
					Products: []models.ProductTemplate{
						{Name: "Concentré de tomate", GrammageOptions: []float64{200, 400, 800}, BasePrice: 2.1, PriceVariation: 0.4},
						{Name: "Thon à l'huile", GrammageOptions: []float64{160, 320}, BasePrice: 4.2, PriceVariation: 0.3},
						{Name: "Sardines à l'huile", GrammageOptions: []float64{125, 250}, BasePrice: 3.1, PriceVariation: 0.25},
					},
				},
			},
			PriceRange:    models.PriceRange{Min: 1.5, Max: 15.0},
			PromotionRate: 0.25,
		},
		"CARTHAGE": {
			Name:        "CARTHAGE",
			Industry:    "Agroalimentaire",
			Competitors: []string{"SAÏDA", "SICAM", "GOULETTE", "DELICE"},
			ProductCategories: []models.ProductCategory{
				{
					Rayon:        "Épicerie",
					Famille:      "Huiles",
					SousFamilles: []string{"Huile d'olive", "Huile végétale"},
					Products: []models.ProductTemplate{
						{Name: "Huile d'olive premium", GrammageOptions: []float64{500, 1000}, BasePrice: 9.2, PriceVariation: 0.2},
						{Name: "Huile végétale", GrammageOptions: []float64{1000}, BasePrice: 5.5, PriceVariation: 0.15},
					},
				},
			},
			PriceRange:    models.PriceRange{Min: 2.0, Max: 18.0},
			PromotionRate: 0.15,
		},
		"SICAM": {
			Name:        "SICAM",
			Industry:    "Agroalimentaire",
			Competitors: []string{"SAÏDA", "CARTHAGE", "GOULETTE"},
			ProductCategories: []models.ProductCategory{
				{
					Rayon:        "Épicerie",
					Famille:      "Conserves",
					SousFamilles: []string{"Tomates", "Poissons"},
					Products: []models.ProductTemplate{
						{Name: "Concentré de tomate double", GrammageOptions: []float64{400, 800}, BasePrice: 2.8, PriceVariation: 0.3},
						{Name: "Thon naturel", GrammageOptions: []float64{160}, BasePrice: 5.1, PriceVariation: 0.2},
					},
				},
			},
			PriceRange:    models.PriceRange{Min: 1.8, Max: 12.0},
			PromotionRate: 0.2,
		},
	}
}

// Industry-level fallbacks used when no explicit brand configuration exists.
func defaultIndustryConfigurations() map[string]models.BrandConfig {
	return map[string]models.BrandConfig{
		"Agroalimentaire": {
			Industry: "Agroalimentaire",
			ProductCategories: []models.ProductCategory{
				{
					Rayon:        "Épicerie",
					Famille:      "Huiles",
					SousFamilles: []string{"Huile d'olive", "Huile de tournesol", "Huile de maïs"},
					Products: []models.ProductTemplate{
						{Name: "Huile d'olive", GrammageOptions: []float64{250, 500, 1000}, BasePrice: 7.5, PriceVariation: 0.4},
						{Name: "Huile de tournesol", GrammageOptions: []float64{500, 1000}, BasePrice: 4.5, PriceVariation: 0.3},
					},
				},
				{
					Rayon:        "Épicerie",
					Famille:      "Conserves",
					SousFamilles: []string{"Tomates", "Poissons", "Légumes"},
					Products: []models.ProductTemplate{
						{Name: "Concentré de tomate", GrammageOptions: []float64{200, 400}, BasePrice: 2.2, PriceVariation: 0.5},
						{Name: "Thon", GrammageOptions: []float64{160, 320}, BasePrice: 4.0, PriceVariation: 0.4},
					},
				},
			},
			PriceRange:    models.PriceRange{Min: 1.0, Max: 20.0},
			PromotionRate: 0.2,
		},
		"Cosmétique": {
			Industry: "Cosmétique",
			ProductCategories: []models.ProductCategory{
				{
					Rayon:        "Beauté",
					Famille:      "Soins visage",
					SousFamilles: []string{"Crèmes", "Nettoyants", "Sérums"},
					Products: []models.ProductTemplate{
						{Name: "Crème hydratante", GrammageOptions: []float64{50, 100}, BasePrice: 25.0, PriceVariation: 0.6},
						{Name: "Nettoyant visage", GrammageOptions: []float64{150, 250}, BasePrice: 18.0, PriceVariation: 0.4},
					},
				},
			},
			PriceRange:    models.PriceRange{Min: 8.0, Max: 80.0},
			PromotionRate: 0.3,
		},
	}
}
