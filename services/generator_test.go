package services

import (
	"math"
	"testing"
	"time"

	"brand-intel/models"
)

func TestGenerateAllocation(t *testing.T) {
	g := NewGeneratorWithSeed(newTestLogger(), 42)

	records := g.Generate("CARTHAGE", "Agroalimentaire", nil, 50)
	if len(records) == 0 {
		t.Fatal("no records generated")
	}

	own, competitors := Partition(records, "CARTHAGE")
	wantOwn := int(math.Ceil(50 * 0.4))
	if len(own) != wantOwn {
		t.Errorf("own records = %d; want %d", len(own), wantOwn)
	}

	cfg, ok := g.BrandConfiguration("CARTHAGE")
	if !ok {
		t.Fatal("CARTHAGE should have a built-in configuration")
	}

	brands := DistinctBrands(records)
	if len(brands) != len(cfg.Competitors)+1 {
		t.Errorf("distinct brands = %d; want %d", len(brands), len(cfg.Competitors)+1)
	}

	perCompetitor := int(math.Ceil(50 * 0.6 / float64(len(cfg.Competitors))))
	counts := make(map[string]int)
	for _, r := range competitors {
		counts[NormalizeBrand(r.Brand)]++
	}
	for brand, n := range counts {
		if n != perCompetitor {
			t.Errorf("competitor %q got %d records; want %d", brand, n, perCompetitor)
		}
	}
}

func TestGenerateOwnBrandOnlyConfig(t *testing.T) {
	g := NewGeneratorWithSeed(newTestLogger(), 3)

	// the SAÏDA configuration carries no competitor list
	records := g.Generate("SAÏDA", "Agroalimentaire", nil, 50)
	own, competitors := Partition(records, "SAÏDA")
	if len(own) != 20 {
		t.Errorf("own records = %d; want 20", len(own))
	}
	if len(competitors) != 0 {
		t.Errorf("expected no competitor records, got %d", len(competitors))
	}
}

func TestGenerateDefaultCount(t *testing.T) {
	g := NewGeneratorWithSeed(newTestLogger(), 1)
	records := g.Generate("SAÏDA", "", nil, 0)
	own, _ := Partition(records, "SAÏDA")
	if len(own) != 20 {
		t.Errorf("default product count should yield 20 own records, got %d", len(own))
	}
}

func TestGeneratePriceFloor(t *testing.T) {
	g := NewGeneratorWithSeed(newTestLogger(), 7)
	records := g.Generate("SAÏDA", "Agroalimentaire", nil, 500)

	for _, r := range records {
		if r.PriceBefore < 1 {
			t.Fatalf("price %v below the 1 TND floor (%s)", r.PriceBefore, r.Product)
		}
		if r.PriceAfter > r.PriceBefore {
			t.Fatalf("promo price %v above base price %v (%s)", r.PriceAfter, r.PriceBefore, r.Product)
		}
	}
}

func TestGeneratePromoWindows(t *testing.T) {
	g := NewGeneratorWithSeed(newTestLogger(), 99)
	records := g.Generate("SAÏDA", "Agroalimentaire", nil, 500)

	promoCount := 0
	for _, r := range records {
		if !r.OnPromotion() {
			if r.PriceAfter != r.PriceBefore {
				t.Fatalf("non-promo record has a discounted price: %s", r.Product)
			}
			continue
		}
		promoCount++

		start, err := time.Parse("02/01/2006", r.PromoStart)
		if err != nil {
			t.Fatalf("bad promo start %q: %v", r.PromoStart, err)
		}
		end, err := time.Parse("02/01/2006", r.PromoEnd)
		if err != nil {
			t.Fatalf("bad promo end %q: %v", r.PromoEnd, err)
		}

		days := end.Sub(start).Hours() / 24
		if days < 7 || days > 36 {
			t.Errorf("promo window of %v days outside [7, 36] (%s)", days, r.Product)
		}

		// prices are rounded to two decimals, so allow a little slack
		discount := r.DiscountPercent()
		if discount < 9 || discount > 41 {
			t.Errorf("discount %v%% outside the configured range (%s)", discount, r.Product)
		}
	}

	if promoCount == 0 {
		t.Error("expected some promotional records in a large sample")
	}
}

func TestGeneratePromoRateApproximation(t *testing.T) {
	g := NewGeneratorWithSeed(newTestLogger(), 123)
	cfg, _ := g.BrandConfiguration("SAÏDA")

	records := g.Generate("SAÏDA", "Agroalimentaire", nil, 2000)
	own, _ := Partition(records, "SAÏDA")

	promo := 0
	for _, r := range own {
		if r.OnPromotion() {
			promo++
		}
	}
	rate := float64(promo) / float64(len(own))
	if math.Abs(rate-cfg.PromotionRate) > 0.08 {
		t.Errorf("observed promo rate %v too far from configured %v", rate, cfg.PromotionRate)
	}
}

func TestGenerateUnknownBrandFallsBack(t *testing.T) {
	g := NewGeneratorWithSeed(newTestLogger(), 5)
	records := g.Generate("MARQUE_X", "", nil, 10)
	if len(records) == 0 {
		t.Fatal("generic fallback should still generate records")
	}

	competitors := CompetitorBrands(records, "MARQUE_X")
	if len(competitors) != len(defaultCompetitors) {
		t.Errorf("expected the default competitor set, got %v", competitors)
	}
}

func TestRegisterConfigOverrides(t *testing.T) {
	g := NewGeneratorWithSeed(newTestLogger(), 11)
	g.RegisterConfig(models.BrandConfig{
		Name:        "SAÏDA",
		Industry:    "Test",
		Competitors: []string{"SEUL"},
		ProductCategories: []models.ProductCategory{{
			Rayon:        "Épicerie",
			Famille:      "Huiles",
			SousFamilles: []string{"Huile"},
			Products: []models.ProductTemplate{{
				Name:            "Huile",
				GrammageOptions: []float64{500},
				BasePrice:       5,
				PriceVariation:  0.1,
			}},
		}},
		PriceRange:    models.PriceRange{Min: 1, Max: 10},
		PromotionRate: 0,
	})

	records := g.Generate("SAÏDA", "", nil, 10)
	for _, r := range records {
		if r.OnPromotion() {
			t.Fatal("zero promotion rate should yield no promos")
		}
		if r.SousFamille != "Huile" {
			t.Fatalf("unexpected sub-family %q from overridden config", r.SousFamille)
		}
	}

	competitors := CompetitorBrands(records, "SAÏDA")
	if len(competitors) != 1 || competitors[0] != "SEUL" {
		t.Errorf("competitors = %v; want [SEUL]", competitors)
	}
}
