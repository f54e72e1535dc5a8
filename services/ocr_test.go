package services

import "testing"

func TestParseOCRProducts(t *testing.T) {
	payload := `[
		{
			"Product": "Huile d'olive 500ml",
			"Brand": "SAÏDA",
			"Rayon": "Épicerie",
			"Famille": "Huiles",
			"Sous-famille": "Huile d'olive",
			"Grammage": 500,
			"Price Before (TND)": "8,5",
			"Price After (TND)": 7.2,
			"URL": "https://example.com/huile",
			"promo_date_debut": "01/03/2024",
			"promo_date_fin": "15/03/2024"
		},
		{
			"Product": "Lait",
			"Brand": "CARTHAGE",
			"Grammage": "1000",
			"Price Before (TND)": null,
			"Price After (TND)": "n/a"
		}
	]`

	records, err := ParseOCRProducts(payload)
	if err != nil {
		t.Fatalf("ParseOCRProducts returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	huile := records[0]
	if huile.PriceBefore != 8.5 {
		t.Errorf("comma string price = %v; want 8.5", huile.PriceBefore)
	}
	if huile.PriceAfter != 7.2 {
		t.Errorf("numeric price = %v; want 7.2", huile.PriceAfter)
	}
	if huile.SousFamille != "Huile d'olive" {
		t.Errorf("SousFamille = %q", huile.SousFamille)
	}
	if !huile.OnPromotion() {
		t.Error("record with both promo dates should be on promotion")
	}

	lait := records[1]
	if lait.Grammage != 1000 {
		t.Errorf("numeric string grammage = %v; want 1000", lait.Grammage)
	}
	if lait.PriceBefore != 0 || lait.PriceAfter != 0 {
		t.Errorf("null and unparsable prices should degrade to 0, got %v/%v",
			lait.PriceBefore, lait.PriceAfter)
	}
}

func TestParseOCRProductsRejectsNonArray(t *testing.T) {
	if _, err := ParseOCRProducts(`{"Product": "Huile"}`); err == nil {
		t.Error("object payload should be rejected")
	}
	if _, err := ParseOCRProducts(`not json`); err == nil {
		t.Error("garbage payload should be rejected")
	}
}

func TestParseOCRProductsEmptyArray(t *testing.T) {
	records, err := ParseOCRProducts(`[]`)
	if err != nil {
		t.Fatalf("empty array should parse: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
