package services

import (
	"fmt"
	"sort"
	"strings"

	"brand-intel/models"
	"brand-intel/utils"
)

// InsightService derives the competitive aggregates from a brand-partitioned
// dataset. Everything here is recomputed on every call and never persisted;
// malformed numeric input degrades (see stats.go) instead of aborting.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// CompetitorInsights computes the per-competitor aggregates keyed by the
// competitor's display brand name.
func (s *InsightService) CompetitorInsights(records []*models.ProductRecord, ownBrand string) map[string]*models.CompetitorInsight {
	insights := make(map[string]*models.CompetitorInsight)

	own, competitors := Partition(records, ownBrand)
	totalMarket := len(own) + len(competitors)
	if totalMarket == 0 {
		return insights
	}

	ownAvgPrice := PositiveMean(pricesAfter(own))
	ownCategories := subFamilySet(own)

	byBrand := make(map[string][]*models.ProductRecord)
	display := make(map[string]string)
	for _, r := range competitors {
		key := NormalizeBrand(r.Brand)
		byBrand[key] = append(byBrand[key], r)
		if _, ok := display[key]; !ok {
			display[key] = strings.TrimSpace(r.Brand)
		}
	}

	for key, products := range byBrand {
		c := &models.CompetitorInsight{
			Brand:         display[key],
			TotalProducts: len(products),
		}

		prices := pricesAfter(products)
		c.AvgPrice = PositiveMean(prices)
		c.MinPrice, c.MaxPrice = priceBounds(prices)

		promoCount := 0
		for _, p := range products {
			if p.OnPromotion() {
				promoCount++
			}
		}
		c.PromoRate = SafeRatio(float64(promoCount), float64(len(products))) * 100

		categories := subFamilySet(products)
		c.CategoriesCount = len(categories)

		c.MarketShare = SafeRatio(float64(len(products)), float64(totalMarket)) * 100

		if ownAvgPrice > 0 && c.AvgPrice > 0 {
			c.PriceCompetitiveness = (c.AvgPrice - ownAvgPrice) / c.AvgPrice * 100
		}

		c.ThreatLevel = classifyThreat(c)
		s.tagCompetitor(c, categories, ownCategories)

		insights[c.Brand] = c
	}

	s.logger.Debug("[insights] Generated insights for %d competitors of %q", len(insights), ownBrand)
	return insights
}

// classifyThreat applies the fixed threat thresholds. The cut points are
// exact: a market share of 25 is medium, 25.01 is high.
func classifyThreat(c *models.CompetitorInsight) models.ThreatLevel {
	switch {
	case c.MarketShare > 25 || (c.PriceCompetitiveness < -15 && c.PromoRate > 30):
		return models.ThreatHigh
	case c.MarketShare > 15 || c.CategoriesCount >= 3:
		return models.ThreatMedium
	default:
		return models.ThreatLow
	}
}

func (s *InsightService) tagCompetitor(c *models.CompetitorInsight, categories, ownCategories map[string]bool) {
	if c.PriceCompetitiveness < -10 {
		c.Strengths = append(c.Strengths, "Prix compétitifs")
	}
	if c.PromoRate > 25 {
		c.Strengths = append(c.Strengths, "Activité promotionnelle élevée")
	}
	if c.CategoriesCount >= 4 {
		c.Strengths = append(c.Strengths, "Large gamme de produits")
	}
	if c.MarketShare > 20 {
		c.Strengths = append(c.Strengths, "Forte présence marché")
	}

	if c.PriceCompetitiveness > 15 {
		c.Weaknesses = append(c.Weaknesses, "Prix élevés")
	}
	if c.PromoRate < 10 {
		c.Weaknesses = append(c.Weaknesses, "Peu d'activité promotionnelle")
	}
	if c.CategoriesCount <= 2 {
		c.Weaknesses = append(c.Weaknesses, "Gamme limitée")
	}

	var absent []string
	for category := range categories {
		if !ownCategories[category] {
			absent = append(absent, category)
		}
	}
	sort.Strings(absent)
	for _, category := range absent {
		c.Opportunities = append(c.Opportunities, "Absent en "+category)
	}
}

// KPIs summarizes the user's brand position over the whole dataset.
func (s *InsightService) KPIs(records []*models.ProductRecord, ownBrand string) *models.KPIReport {
	report := &models.KPIReport{}

	own, competitors := Partition(records, ownBrand)
	report.TotalProducts = len(own) + len(competitors)
	report.OwnProducts = len(own)
	report.MarketShare = SafeRatio(float64(len(own)), float64(report.TotalProducts)) * 100

	report.OwnAvgPrice = PositiveMean(pricesAfter(own))
	report.CompetitorAvgPrice = PositiveMean(pricesAfter(competitors))
	if report.CompetitorAvgPrice > 0 && report.OwnAvgPrice > 0 {
		report.PriceCompetitiveness = (report.CompetitorAvgPrice - report.OwnAvgPrice) / report.CompetitorAvgPrice * 100
	}

	var ownPromo, compPromo int
	var discounts []float64
	for _, p := range own {
		if p.HasPriceCut() {
			ownPromo++
			discounts = append(discounts, p.DiscountPercent())
		}
	}
	for _, p := range competitors {
		if p.HasPriceCut() {
			compPromo++
		}
	}

	report.OwnPromoProducts = ownPromo
	report.OwnPromoRate = SafeRatio(float64(ownPromo), float64(len(own))) * 100
	report.CompetitorPromoRate = SafeRatio(float64(compPromo), float64(len(competitors))) * 100
	report.AvgDiscount = SafeMean(discounts)

	return report
}

// Positioning builds the per-sub-family summaries, keyed by sub-family.
func (s *InsightService) Positioning(records []*models.ProductRecord, ownBrand string) map[string]*models.CategoryPositioning {
	type bucket struct {
		own  []*models.ProductRecord
		comp []*models.ProductRecord
	}
	buckets := make(map[string]*bucket)

	norm := NormalizeBrand(ownBrand)
	for _, r := range records {
		brand := NormalizeBrand(r.Brand)
		if brand == "" {
			continue
		}
		b := buckets[r.SousFamille]
		if b == nil {
			b = &bucket{}
			buckets[r.SousFamille] = b
		}
		if brand == norm {
			b.own = append(b.own, r)
		} else {
			b.comp = append(b.comp, r)
		}
	}

	result := make(map[string]*models.CategoryPositioning, len(buckets))
	for family, b := range buckets {
		pos := &models.CategoryPositioning{
			Family:             family,
			TotalProducts:      len(b.own) + len(b.comp),
			OwnProducts:        len(b.own),
			CompetitorProducts: len(b.comp),
			HasPresence:        len(b.own) > 0,
		}

		pos.OwnAvgPrice = PositiveMean(pricesAfter(b.own))
		pos.CompetitorAvgPrice = PositiveMean(pricesAfter(b.comp))
		pos.MarketShare = SafeRatio(float64(len(b.own)), float64(pos.TotalProducts)) * 100
		pos.OwnPromoRate = promoDateRate(b.own)
		pos.CompetitorPromoRate = promoDateRate(b.comp)
		if pos.CompetitorAvgPrice > 0 {
			pos.PriceCompetitiveness = (pos.CompetitorAvgPrice - pos.OwnAvgPrice) / pos.CompetitorAvgPrice * 100
		}

		pos.PositioningScore = positioningScore(pos)
		pos.Status = positionStatus(pos.PositioningScore)
		result[family] = pos
	}

	return result
}

// positioningScore blends share, price and promotion pressure into a 0-100
// composite.
func positioningScore(pos *models.CategoryPositioning) float64 {
	shareComponent := pos.MarketShare * 0.6
	if pos.MarketShare > 50 {
		shareComponent = 30
	}

	priceComponent := 25.0
	if pos.PriceCompetitiveness <= 0 {
		priceComponent = 25 + pos.PriceCompetitiveness
		if priceComponent < 0 {
			priceComponent = 0
		}
	}

	promoComponent := 15.0
	if pos.OwnPromoRate >= pos.CompetitorPromoRate {
		promoComponent = 25
	}

	presenceComponent := 0.0
	if pos.HasPresence {
		presenceComponent = 20
	}

	score := shareComponent + priceComponent + promoComponent + presenceComponent
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func positionStatus(score float64) string {
	switch {
	case score >= 70:
		return "Leader"
	case score >= 50:
		return "Compétitif"
	case score >= 30:
		return "Challenger"
	default:
		return "En retrait"
	}
}

// BrandMarketShares returns each brand's share of the dataset in percent.
// Records without a brand are excluded; the shares of the remaining brands
// sum to 100 (or the map is empty for an empty dataset).
func (s *InsightService) BrandMarketShares(records []*models.ProductRecord) map[string]float64 {
	counts := make(map[string]int)
	display := make(map[string]string)
	total := 0
	for _, r := range records {
		key := NormalizeBrand(r.Brand)
		if key == "" {
			continue
		}
		counts[key]++
		total++
		if _, ok := display[key]; !ok {
			display[key] = strings.TrimSpace(r.Brand)
		}
	}

	shares := make(map[string]float64, len(counts))
	for key, n := range counts {
		shares[display[key]] = SafeRatio(float64(n), float64(total)) * 100
	}
	return shares
}

func pricesAfter(records []*models.ProductRecord) []float64 {
	prices := make([]float64, 0, len(records))
	for _, r := range records {
		prices = append(prices, r.PriceAfter)
	}
	return prices
}

func priceBounds(prices []float64) (min, max float64) {
	for _, p := range prices {
		if p <= 0 {
			continue
		}
		if min == 0 || p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max
}

func subFamilySet(records []*models.ProductRecord) map[string]bool {
	set := make(map[string]bool)
	for _, r := range records {
		if r.SousFamille != "" {
			set[r.SousFamille] = true
		}
	}
	return set
}

func promoDateRate(records []*models.ProductRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	count := 0
	for _, r := range records {
		if r.OnPromotion() {
			count++
		}
	}
	return float64(count) / float64(len(records)) * 100
}

// Print renders the competitive report to the terminal.
func (s *InsightService) Print(ownBrand string, kpi *models.KPIReport, insights map[string]*models.CompetitorInsight) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 COMPETITIVE INTELLIGENCE — %s\033[0m\n", ownBrand)
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total products   : \033[1m%d\033[0m\n", kpi.TotalProducts)
	fmt.Printf("  Own products     : \033[1m%d\033[0m (%.1f%% market share)\n", kpi.OwnProducts, kpi.MarketShare)
	fmt.Printf("  Competitors      : \033[1m%d\033[0m\n", len(insights))
	fmt.Println()

	fmt.Printf("\033[1;33m  Price Position\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if kpi.OwnAvgPrice > 0 {
		fmt.Printf("  Own avg price        : \033[1;32m%.2f TND\033[0m\n", kpi.OwnAvgPrice)
		fmt.Printf("  Competitor avg price : \033[1;32m%.2f TND\033[0m\n", kpi.CompetitorAvgPrice)
		if kpi.PriceCompetitiveness > 0 {
			fmt.Printf("  Position             : %.1f%% cheaper than competitors\n", kpi.PriceCompetitiveness)
		} else {
			fmt.Printf("  Position             : %.1f%% pricier than competitors\n", -kpi.PriceCompetitiveness)
		}
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Promotions\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Own promo rate   : %.1f%% (%d products, avg discount %.1f%%)\n",
		kpi.OwnPromoRate, kpi.OwnPromoProducts, kpi.AvgDiscount)
	fmt.Printf("  Competitor rate  : %.1f%%\n", kpi.CompetitorPromoRate)
	fmt.Println()

	fmt.Printf("\033[1;33m  Competitors by Threat\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(insights) == 0 {
		fmt.Printf("  No competitors found in the dataset\n")
	} else {
		for _, c := range sortByThreat(insights) {
			fmt.Printf("  %-20s %s  %3d products | %.1f%% share | %.2f TND avg\n",
				truncate(c.Brand, 20), threatBadge(c.ThreatLevel), c.TotalProducts, c.MarketShare, c.AvgPrice)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func sortByThreat(insights map[string]*models.CompetitorInsight) []*models.CompetitorInsight {
	order := map[models.ThreatLevel]int{models.ThreatHigh: 3, models.ThreatMedium: 2, models.ThreatLow: 1}
	list := make([]*models.CompetitorInsight, 0, len(insights))
	for _, c := range insights {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		if order[list[i].ThreatLevel] != order[list[j].ThreatLevel] {
			return order[list[i].ThreatLevel] > order[list[j].ThreatLevel]
		}
		return list[i].TotalProducts > list[j].TotalProducts
	})
	return list
}

func threatBadge(level models.ThreatLevel) string {
	switch level {
	case models.ThreatHigh:
		return "\033[1;31mHIGH  \033[0m"
	case models.ThreatMedium:
		return "\033[1;33mMEDIUM\033[0m"
	default:
		return "\033[1;32mLOW   \033[0m"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
