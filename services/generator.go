package services

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"brand-intel/models"
	"brand-intel/utils"
)

// retailers a generated record can be sourced from.
var possibleSources = []string{"Carrefour", "Aziza", "Géant", "Monoprix", "Magasin Général"}

// defaultCompetitors is used when the caller supplies no competitor list.
var defaultCompetitors = []string{"CONCURRENT_A", "CONCURRENT_B", "CONCURRENT_C"}

// referenceYear anchors generated promotion windows.
const referenceYear = 2024

// Generator produces a statistically-parameterized catalog for brands that
// have no real data yet. Shape is deterministic, values are random; tests
// use NewGeneratorWithSeed for reproducible draws.
type Generator struct {
	logger   *utils.Logger
	rng      *rand.Rand
	brands   map[string]models.BrandConfig
	industry map[string]models.BrandConfig
}

// NewGenerator creates a Generator seeded from the wall clock.
func NewGenerator(logger *utils.Logger) *Generator {
	return NewGeneratorWithSeed(logger, time.Now().UnixNano())
}

// NewGeneratorWithSeed creates a Generator with a fixed seed.
func NewGeneratorWithSeed(logger *utils.Logger, seed int64) *Generator {
	return &Generator{
		logger:   logger,
		rng:      rand.New(rand.NewSource(seed)),
		brands:   defaultBrandConfigurations(),
		industry: defaultIndustryConfigurations(),
	}
}

// RegisterConfig installs or replaces a custom brand configuration. It takes
// precedence over the built-in ones on the next Generate call.
func (g *Generator) RegisterConfig(cfg models.BrandConfig) {
	g.brands[cfg.Name] = cfg
}

// BrandConfiguration returns the explicit configuration for a brand, if any.
// Lookup is by exact key, case-sensitive.
func (g *Generator) BrandConfiguration(name string) (models.BrandConfig, bool) {
	cfg, ok := g.brands[name]
	return cfg, ok
}

// resolveConfig walks the fallback chain: explicit brand config, then the
// industry configuration, then a generic default taxonomy.
func (g *Generator) resolveConfig(userBrand, industry string, competitors []string) models.BrandConfig {
	if cfg, ok := g.brands[userBrand]; ok {
		return cfg
	}

	if industry != "" {
		if ind, ok := g.industry[industry]; ok {
			return models.BrandConfig{
				Name:              userBrand,
				Industry:          industry,
				Competitors:       orDefault(competitors),
				ProductCategories: ind.ProductCategories,
				PriceRange:        ind.PriceRange,
				PromotionRate:     ind.PromotionRate,
			}
		}
	}

	generic := g.industry["Agroalimentaire"]
	if industry == "" {
		industry = "Général"
	}
	return models.BrandConfig{
		Name:              userBrand,
		Industry:          industry,
		Competitors:       orDefault(competitors),
		ProductCategories: generic.ProductCategories,
		PriceRange:        models.PriceRange{Min: 2.0, Max: 25.0},
		PromotionRate:     0.2,
	}
}

func orDefault(competitors []string) []string {
	if len(competitors) > 0 {
		return competitors
	}
	return defaultCompetitors
}

// Generate produces productCount records split across the user's brand and
// its competitors. The user's brand gets ceil(40%) of the records; the
// remaining 60% is divided evenly (ceiling) across the competitor list.
func (g *Generator) Generate(userBrand, industry string, competitors []string, productCount int) []*models.ProductRecord {
	if productCount <= 0 {
		productCount = 50
	}

	cfg := g.resolveConfig(userBrand, industry, competitors)
	if len(cfg.ProductCategories) == 0 {
		g.logger.Warn("[generator] No product categories for %q, nothing to generate", userBrand)
		return nil
	}

	allBrands := append([]string{userBrand}, cfg.Competitors...)
	var records []*models.ProductRecord

	for _, brand := range allBrands {
		var count int
		if brand == userBrand {
			count = int(math.Ceil(float64(productCount) * 0.4))
		} else {
			count = int(math.Ceil(float64(productCount) * 0.6 / float64(len(cfg.Competitors))))
		}

		for i := 0; i < count; i++ {
			records = append(records, g.generateOne(brand, cfg))
		}
	}

	g.logger.Info("[generator] Generated %d records for %q (+%d competitors)",
		len(records), userBrand, len(cfg.Competitors))
	return records
}

func (g *Generator) generateOne(brand string, cfg models.BrandConfig) *models.ProductRecord {
	category := cfg.ProductCategories[g.rng.Intn(len(cfg.ProductCategories))]
	template := category.Products[g.rng.Intn(len(category.Products))]
	sousFamille := category.SousFamilles[g.rng.Intn(len(category.SousFamilles))]
	grammage := template.GrammageOptions[g.rng.Intn(len(template.GrammageOptions))]

	variation := (g.rng.Float64() - 0.5) * 2 * template.PriceVariation
	basePrice := template.BasePrice * (grammage / 500)
	priceBefore := math.Max(1, basePrice+basePrice*variation)

	hasPromo := g.rng.Float64() < cfg.PromotionRate
	priceAfter := priceBefore
	var promoStart, promoEnd string
	if hasPromo {
		discount := 0.1 + g.rng.Float64()*0.3
		priceAfter = priceBefore * (1 - discount)

		start := time.Date(referenceYear, time.Month(g.rng.Intn(12)+1), g.rng.Intn(28)+1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, g.rng.Intn(30)+7)
		promoStart = start.Format("02/01/2006")
		promoEnd = end.Format("02/01/2006")
	}

	unit := "g"
	if grammage < 1000 {
		unit = "ml"
	}

	return &models.ProductRecord{
		Product:     fmt.Sprintf("%s %.0f%s", template.Name, grammage, unit),
		Brand:       brand,
		Source:      possibleSources[g.rng.Intn(len(possibleSources))],
		Rayon:       category.Rayon,
		Famille:     category.Famille,
		SousFamille: sousFamille,
		Grammage:    grammage,
		PriceBefore: Round2(priceBefore),
		PriceAfter:  Round2(priceAfter),
		URL:         fmt.Sprintf("https://example.com/%s-%s", strings.ToLower(brand), slugify(template.Name)),
		PromoStart:  promoStart,
		PromoEnd:    promoEnd,
	}
}

func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
