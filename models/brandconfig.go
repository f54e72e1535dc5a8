package models

// BrandConfig holds the per-brand tuning used both as a generation parameter
// set and as a display filter. Persisted as a JSON blob per brand.
type BrandConfig struct {
	Name              string            `json:"name"`
	Industry          string            `json:"industry"`
	Competitors       []string          `json:"competitors"`
	ProductCategories []ProductCategory `json:"productCategories"`
	PriceRange        PriceRange        `json:"priceRange"`
	PromotionRate     float64           `json:"promotionRate"`
}

// PriceRange bounds the prices a brand's catalog is expected to cover.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ProductCategory is one branch of a brand's taxonomy: a rayon/famille pair,
// its sub-families and the product templates drawn from during generation.
type ProductCategory struct {
	Rayon        string            `json:"rayon"`
	Famille      string            `json:"famille"`
	SousFamilles []string          `json:"sousFamilles"`
	Products     []ProductTemplate `json:"products"`
}

// ProductTemplate parameterizes one synthetic product line.
type ProductTemplate struct {
	Name            string    `json:"name"`
	GrammageOptions []float64 `json:"grammageOptions"`
	BasePrice       float64   `json:"basePrice"`
	PriceVariation  float64   `json:"priceVariation"`
}
