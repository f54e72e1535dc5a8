package models

// ThreatLevel classifies a competitor's pressure on the user's brand.
type ThreatLevel string

const (
	ThreatLow    ThreatLevel = "low"
	ThreatMedium ThreatLevel = "medium"
	ThreatHigh   ThreatLevel = "high"
)

// CompetitorInsight is the per-competitor aggregate computed by the insight
// engine. Derived on every query, never persisted.
type CompetitorInsight struct {
	Brand                string
	TotalProducts        int
	AvgPrice             float64
	PromoRate            float64
	CategoriesCount      int
	MinPrice             float64
	MaxPrice             float64
	MarketShare          float64
	PriceCompetitiveness float64
	ThreatLevel          ThreatLevel
	Strengths            []string
	Weaknesses           []string
	Opportunities        []string
}

// KPIReport summarizes the user's brand against the whole dataset.
type KPIReport struct {
	TotalProducts      int
	OwnProducts        int
	MarketShare        float64
	OwnAvgPrice        float64
	CompetitorAvgPrice float64
	// PriceCompetitiveness is positive when competitors are pricier on average.
	PriceCompetitiveness float64
	OwnPromoProducts     int
	OwnPromoRate         float64
	CompetitorPromoRate  float64
	AvgDiscount          float64
}

// CategoryPositioning is the per-sub-family summary consumed by the
// positioning views.
type CategoryPositioning struct {
	Family               string
	TotalProducts        int
	OwnProducts          int
	CompetitorProducts   int
	OwnAvgPrice          float64
	CompetitorAvgPrice   float64
	MarketShare          float64
	OwnPromoRate         float64
	CompetitorPromoRate  float64
	PriceCompetitiveness float64
	PositioningScore     float64
	Status               string
	HasPresence          bool
}

// Point is a product projected into weight-price space for clustering.
type Point struct {
	Weight float64
	Price  float64
}

// ClusteredPoint is a Point with its assigned cluster label.
type ClusteredPoint struct {
	Point
	Cluster int
}
