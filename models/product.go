package models

import "time"

// ProductRecord is the canonical unit flowing through the pipeline. It is
// produced by the CSV parser, the OCR ingester or the synthetic generator,
// and consumed by the data-source manager and the insight engine.
//
// The JSON tags carry the display-facing field names used by the OCR
// collaborator and the persisted snapshots; inside the pipeline only the
// typed fields are used.
type ProductRecord struct {
	Product     string  `json:"Product"`
	Brand       string  `json:"Brand"`
	Source      string  `json:"Source,omitempty"`
	Rayon       string  `json:"Rayon"`
	Famille     string  `json:"Famille"`
	SousFamille string  `json:"Sous-famille"`
	Grammage    float64 `json:"Grammage"`
	PriceBefore float64 `json:"Price Before (TND)"`
	PriceAfter  float64 `json:"Price After (TND)"`
	URL         string  `json:"URL"`
	PromoStart  string  `json:"promo_date_debut"`
	PromoEnd    string  `json:"promo_date_fin"`
}

// OnPromotion reports whether the record carries a full promotion window.
func (p *ProductRecord) OnPromotion() bool {
	return p.PromoStart != "" && p.PromoEnd != ""
}

// HasPriceCut reports whether the promotional price undercuts the permanent one.
func (p *ProductRecord) HasPriceCut() bool {
	return p.PriceBefore > p.PriceAfter
}

// DiscountPercent returns the discount depth in percent, 0 when the record
// has no price cut or an unusable permanent price.
func (p *ProductRecord) DiscountPercent() float64 {
	if !p.HasPriceCut() || p.PriceBefore <= 0 {
		return 0
	}
	return (p.PriceBefore - p.PriceAfter) / p.PriceBefore * 100
}

// DataSource identifies where a dataset came from.
type DataSource string

const (
	SourceCache  DataSource = "cache"
	SourceUpload DataSource = "upload"
	SourceAPI    DataSource = "api"
	SourceNone   DataSource = "none"
)

// DataResult is what the data-source manager hands back to callers.
type DataResult struct {
	Data   []*ProductRecord
	Source DataSource
}

// CachedSnapshot is a full-replacement copy of a brand's dataset at a point
// in time. The same shape is serialized into the persisted store.
type CachedSnapshot struct {
	Data      []*ProductRecord `json:"data"`
	Timestamp time.Time        `json:"timestamp"`
	BrandName string           `json:"brandName"`
	Industry  string           `json:"industry,omitempty"`
}
