package services

import (
	"sort"
	"strings"

	"brand-intel/models"
)

// NormalizeBrand canonicalizes a brand name for equality comparisons.
// Display strings keep their original casing; every comparison in the
// pipeline goes through this form.
func NormalizeBrand(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameBrand reports whether two raw brand strings name the same brand.
func SameBrand(a, b string) bool {
	return NormalizeBrand(a) == NormalizeBrand(b)
}

// Partition splits records into the user's own products and competitor
// products. Records with an empty brand belong to neither side.
func Partition(records []*models.ProductRecord, ownBrand string) (own, competitors []*models.ProductRecord) {
	norm := NormalizeBrand(ownBrand)
	for _, r := range records {
		brand := NormalizeBrand(r.Brand)
		if brand == "" {
			continue
		}
		if brand == norm {
			own = append(own, r)
		} else {
			competitors = append(competitors, r)
		}
	}
	return own, competitors
}

// DistinctBrands returns the display names of every brand in the dataset,
// deduplicated on the normalized form, sorted for stable output.
func DistinctBrands(records []*models.ProductRecord) []string {
	seen := make(map[string]string)
	for _, r := range records {
		norm := NormalizeBrand(r.Brand)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; !ok {
			seen[norm] = strings.TrimSpace(r.Brand)
		}
	}

	brands := make([]string, 0, len(seen))
	for _, display := range seen {
		brands = append(brands, display)
	}
	sort.Strings(brands)
	return brands
}

// CompetitorBrands returns every distinct brand except the user's own.
func CompetitorBrands(records []*models.ProductRecord, ownBrand string) []string {
	var out []string
	for _, brand := range DistinctBrands(records) {
		if !SameBrand(brand, ownBrand) {
			out = append(out, brand)
		}
	}
	return out
}
