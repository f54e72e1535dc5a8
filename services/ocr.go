package services

import (
	"fmt"

	"github.com/tidwall/gjson"

	"brand-intel/models"
)

// ParseOCRProducts reads the JSON array produced by the external OCR
// collaborator. The shape uses display-facing keys ("Price Before (TND)",
// "Sous-famille") and prices may arrive as strings with comma decimal
// separators. The records are passed through with numeric coercion only;
// anything further is left to the metrics engine's tolerance.
func ParseOCRProducts(jsonText string) ([]*models.ProductRecord, error) {
	parsed := gjson.Parse(jsonText)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("ocr: expected a JSON array of products")
	}

	var records []*models.ProductRecord
	parsed.ForEach(func(_, item gjson.Result) bool {
		records = append(records, &models.ProductRecord{
			Product:     item.Get("Product").String(),
			Brand:       item.Get("Brand").String(),
			Source:      item.Get("Source").String(),
			Rayon:       item.Get("Rayon").String(),
			Famille:     item.Get("Famille").String(),
			SousFamille: item.Get("Sous-famille").String(),
			Grammage:    ocrNumber(item.Get("Grammage")),
			PriceBefore: ocrNumber(item.Get(`Price Before (TND)`)),
			PriceAfter:  ocrNumber(item.Get(`Price After (TND)`)),
			URL:         item.Get("URL").String(),
			PromoStart:  item.Get("promo_date_debut").String(),
			PromoEnd:    item.Get("promo_date_fin").String(),
		})
		return true
	})
	return records, nil
}

// ocrNumber coerces a field that may be a JSON number, a numeric string
// with a comma decimal separator, or null. Same degrade-to-zero policy as
// the CSV parser.
func ocrNumber(r gjson.Result) float64 {
	switch r.Type {
	case gjson.Number:
		return r.Float()
	case gjson.String:
		return CoerceNumber(r.String())
	default:
		return 0
	}
}
