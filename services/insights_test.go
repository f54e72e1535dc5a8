package services

import (
	"math"
	"testing"

	"brand-intel/models"
)

func promoRecord(brand, sousFamille string, price float64) *models.ProductRecord {
	return &models.ProductRecord{
		Brand:       brand,
		SousFamille: sousFamille,
		PriceBefore: price * 1.2,
		PriceAfter:  price,
		PromoStart:  "01/03/2024",
		PromoEnd:    "15/03/2024",
	}
}

func plainRecord(brand, sousFamille string, price float64) *models.ProductRecord {
	return &models.ProductRecord{
		Brand:       brand,
		SousFamille: sousFamille,
		PriceBefore: price,
		PriceAfter:  price,
	}
}

func TestCompetitorInsightsEmptyDataset(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	insights := svc.CompetitorInsights(nil, "SAÏDA")
	if len(insights) != 0 {
		t.Errorf("expected empty insights, got %d", len(insights))
	}
}

func TestCompetitorInsightsAggregates(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	records := []*models.ProductRecord{
		plainRecord("SAÏDA", "Huile", 10),
		plainRecord("SAÏDA", "Couscous", 10),
		promoRecord("CARTHAGE", "Huile", 8),
		plainRecord("CARTHAGE", "Lait", 12),
	}

	insights := svc.CompetitorInsights(records, "SAÏDA")
	c, ok := insights["CARTHAGE"]
	if !ok {
		t.Fatalf("CARTHAGE missing from insights: %v", insights)
	}

	if c.TotalProducts != 2 {
		t.Errorf("TotalProducts = %d; want 2", c.TotalProducts)
	}
	if c.MarketShare != 50 {
		t.Errorf("MarketShare = %v; want 50", c.MarketShare)
	}
	if c.PromoRate != 50 {
		t.Errorf("PromoRate = %v; want 50", c.PromoRate)
	}
	if c.AvgPrice != 10 {
		t.Errorf("AvgPrice = %v; want 10", c.AvgPrice)
	}
	if c.MinPrice != 8 || c.MaxPrice != 12 {
		t.Errorf("price bounds = %v/%v; want 8/12", c.MinPrice, c.MaxPrice)
	}
	if c.CategoriesCount != 2 {
		t.Errorf("CategoriesCount = %d; want 2", c.CategoriesCount)
	}
}

func TestCompetitorInsightsIgnoresInvalidPrices(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	records := []*models.ProductRecord{
		plainRecord("SAÏDA", "Huile", 10),
		plainRecord("CARTHAGE", "Huile", 6),
		{Brand: "CARTHAGE", SousFamille: "Lait", PriceAfter: 0},
		{Brand: "CARTHAGE", SousFamille: "Lait", PriceAfter: math.NaN()},
	}

	insights := svc.CompetitorInsights(records, "SAÏDA")
	c := insights["CARTHAGE"]
	if c == nil {
		t.Fatal("CARTHAGE missing")
	}
	if c.AvgPrice != 6 {
		t.Errorf("AvgPrice should skip zero/NaN prices: got %v; want 6", c.AvgPrice)
	}
}

func TestClassifyThreatBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		insight models.CompetitorInsight
		want    models.ThreatLevel
	}{
		{"share exactly 25 is medium", models.CompetitorInsight{MarketShare: 25}, models.ThreatMedium},
		{"share above 25 is high", models.CompetitorInsight{MarketShare: 25.01}, models.ThreatHigh},
		{"cheap and promo-heavy is high", models.CompetitorInsight{PriceCompetitiveness: -16, PromoRate: 31}, models.ThreatHigh},
		{"share above 15 is medium", models.CompetitorInsight{MarketShare: 15.5}, models.ThreatMedium},
		{"three categories is medium", models.CompetitorInsight{CategoriesCount: 3}, models.ThreatMedium},
		{"small player is low", models.CompetitorInsight{MarketShare: 5, CategoriesCount: 1}, models.ThreatLow},
	}

	for _, tt := range tests {
		got := classifyThreat(&tt.insight)
		if got != tt.want {
			t.Errorf("%s: got %v; want %v", tt.name, got, tt.want)
		}
	}
}

func TestCompetitorTags(t *testing.T) {
	svc := NewInsightService(newTestLogger())

	c := &models.CompetitorInsight{
		PriceCompetitiveness: -12,
		PromoRate:            30,
		CategoriesCount:      1,
		MarketShare:          22,
	}
	categories := map[string]bool{"Huile": true, "Lait": true}
	own := map[string]bool{"Huile": true}

	svc.tagCompetitor(c, categories, own)

	if len(c.Strengths) != 3 {
		t.Errorf("Strengths = %v; want 3 entries", c.Strengths)
	}
	if len(c.Weaknesses) != 1 || c.Weaknesses[0] != "Gamme limitée" {
		t.Errorf("Weaknesses = %v; want [Gamme limitée]", c.Weaknesses)
	}
	if len(c.Opportunities) != 1 || c.Opportunities[0] != "Absent en Lait" {
		t.Errorf("Opportunities = %v; want [Absent en Lait]", c.Opportunities)
	}
}

func TestKPIs(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	records := []*models.ProductRecord{
		{Brand: "SAÏDA", PriceBefore: 10, PriceAfter: 8},
		{Brand: "SAÏDA", PriceBefore: 12, PriceAfter: 12},
		{Brand: "CARTHAGE", PriceBefore: 10, PriceAfter: 10},
		{Brand: "SICAM", PriceBefore: 15, PriceAfter: 10},
	}

	kpi := svc.KPIs(records, "SAÏDA")
	if kpi.TotalProducts != 4 || kpi.OwnProducts != 2 {
		t.Errorf("counts = %d/%d; want 4/2", kpi.TotalProducts, kpi.OwnProducts)
	}
	if kpi.MarketShare != 50 {
		t.Errorf("MarketShare = %v; want 50", kpi.MarketShare)
	}
	if kpi.OwnPromoProducts != 1 {
		t.Errorf("OwnPromoProducts = %d; want 1", kpi.OwnPromoProducts)
	}
	if kpi.OwnPromoRate != 50 {
		t.Errorf("OwnPromoRate = %v; want 50", kpi.OwnPromoRate)
	}
	if kpi.CompetitorPromoRate != 50 {
		t.Errorf("CompetitorPromoRate = %v; want 50", kpi.CompetitorPromoRate)
	}
	if math.Abs(kpi.AvgDiscount-20) > 1e-9 {
		t.Errorf("AvgDiscount = %v; want 20", kpi.AvgDiscount)
	}
	if kpi.OwnAvgPrice != 10 {
		t.Errorf("OwnAvgPrice = %v; want 10", kpi.OwnAvgPrice)
	}
}

func TestKPIsEmptyDataset(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	kpi := svc.KPIs(nil, "SAÏDA")
	if kpi.TotalProducts != 0 || kpi.MarketShare != 0 || kpi.AvgDiscount != 0 {
		t.Errorf("empty dataset should yield zero KPIs: %+v", kpi)
	}
}

func TestPositioning(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	records := []*models.ProductRecord{
		plainRecord("SAÏDA", "Huile", 8),
		plainRecord("SAÏDA", "Huile", 8),
		plainRecord("CARTHAGE", "Huile", 10),
		plainRecord("CARTHAGE", "Lait", 5),
		{Brand: "", SousFamille: "Huile", PriceAfter: 99},
	}

	positions := svc.Positioning(records, "SAÏDA")
	if len(positions) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(positions))
	}

	huile := positions["Huile"]
	if huile == nil {
		t.Fatal("Huile category missing")
	}
	if huile.TotalProducts != 3 {
		t.Errorf("unbranded record should be excluded: total = %d; want 3", huile.TotalProducts)
	}
	if !huile.HasPresence {
		t.Error("own brand is present in Huile")
	}
	if huile.PriceCompetitiveness <= 0 {
		t.Errorf("own products are cheaper, competitiveness should be positive: %v", huile.PriceCompetitiveness)
	}

	lait := positions["Lait"]
	if lait.HasPresence {
		t.Error("own brand has no Lait products")
	}
	if lait.MarketShare != 0 {
		t.Errorf("absent category share = %v; want 0", lait.MarketShare)
	}
}

func TestPositioningScoreBounds(t *testing.T) {
	pos := &models.CategoryPositioning{
		MarketShare:          100,
		PriceCompetitiveness: 50,
		OwnPromoRate:         100,
		HasPresence:          true,
	}
	if got := positioningScore(pos); got != 100 {
		t.Errorf("score should cap at 100, got %v", got)
	}

	empty := &models.CategoryPositioning{PriceCompetitiveness: -100}
	if got := positioningScore(empty); got < 0 {
		t.Errorf("score should never go negative, got %v", got)
	}
}

func TestBrandMarketSharesSumTo100(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	records := []*models.ProductRecord{
		plainRecord("SAÏDA", "Huile", 8),
		plainRecord("CARTHAGE", "Huile", 10),
		plainRecord("SICAM", "Lait", 5),
		{Brand: "", PriceAfter: 1},
	}

	shares := svc.BrandMarketShares(records)
	if len(shares) != 3 {
		t.Fatalf("expected 3 brands, got %d", len(shares))
	}

	var sum float64
	for _, share := range shares {
		sum += share
	}
	if math.Abs(sum-100) > 1e-6 {
		t.Errorf("shares sum to %v; want 100", sum)
	}
}
