package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"brand-intel/models"
	"brand-intel/utils"
)

// RequiredColumns are the logical columns an import must provide, in
// canonical export order. Extra columns are ignored.
var RequiredColumns = []string{
	"product",
	"brand",
	"rayon",
	"famille",
	"sous_famille",
	"grammage",
	"price_before_tnd",
	"price_after_tnd",
	"url",
	"promo_date_debut",
	"promo_date_fin",
}

// numericColumns degrade to 0 on unparsable cells instead of failing the row.
var numericColumns = map[string]bool{
	"grammage":         true,
	"price_before_tnd": true,
	"price_after_tnd":  true,
}

var (
	lineSplitRegexp = regexp.MustCompile(`\r\n|\n|\r`)
	headerRunRegexp = regexp.MustCompile(`[^a-z0-9]+`)
)

// ValidationError is fatal to the whole import: the file is structurally
// unusable (missing required columns, or no row survived parsing).
type ValidationError struct {
	Reason  string
	Missing []string
	Headers []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("csv: missing required columns: %s (headers found: %s)",
			strings.Join(e.Missing, ", "), strings.Join(e.Headers, ", "))
	}
	return "csv: " + e.Reason
}

// RowError describes one dropped row. Collected, never fatal.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Parser turns raw CSV text into ProductRecords. Pure: text in,
// records and error descriptors out.
type Parser struct {
	logger *utils.Logger
}

// NewParser creates a Parser with the given logger.
func NewParser(logger *utils.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse processes the raw CSV text. Row-level failures are collected into
// the returned RowError slice; a missing required column or an import with
// zero valid rows returns a *ValidationError.
func (p *Parser) Parse(text string) ([]*models.ProductRecord, []RowError, error) {
	var lines []string
	for _, line := range lineSplitRegexp.Split(text, -1) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return nil, nil, &ValidationError{Reason: "file must contain a header line and at least one data row"}
	}

	delimiter := DetectDelimiter(lines[0])

	headers := parseLine(lines[0], delimiter)
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	var missing []string
	for _, field := range RequiredColumns {
		found := false
		for _, h := range normalized {
			if h == field {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &ValidationError{Missing: missing, Headers: headers}
	}

	var records []*models.ProductRecord
	var rowErrors []RowError

	for i := 1; i < len(lines); i++ {
		values := parseLine(lines[i], delimiter)
		if len(values) != len(headers) {
			rowErrors = append(rowErrors, RowError{
				Line:   i + 1,
				Reason: fmt.Sprintf("wrong column count (%d instead of %d)", len(values), len(headers)),
			})
			continue
		}

		record := &models.ProductRecord{}
		for j, header := range normalized {
			setField(record, header, values[j])
		}
		records = append(records, record)
	}

	if len(rowErrors) > 0 {
		p.logger.Warn("[parser] %d rows dropped during import", len(rowErrors))
		for _, re := range rowErrors {
			p.logger.Debug("[parser] %s", re)
		}
	}

	if len(records) == 0 {
		return nil, rowErrors, &ValidationError{Reason: "no valid rows found, check the file format"}
	}

	p.logger.Info("[parser] Parsed %d records (%d rows dropped)", len(records), len(rowErrors))
	return records, rowErrors, nil
}

// DetectDelimiter counts candidate delimiters in the header line and picks
// the most frequent one. Comma wins ties and empty headers.
func DetectDelimiter(headerLine string) string {
	candidates := []string{",", ";", "\t", "|"}

	best := ","
	bestCount := 0
	tied := false
	for _, d := range candidates {
		count := strings.Count(headerLine, d)
		if count > bestCount {
			best = d
			bestCount = count
			tied = false
		} else if count == bestCount && count > 0 {
			tied = true
		}
	}
	if bestCount == 0 || tied {
		return ","
	}
	return best
}

// parseLine splits one CSV line on the delimiter, honoring double-quoted
// fields: a quote toggles the in-quotes state so delimiters inside quotes
// do not split. Boundary quotes are stripped after splitting.
func parseLine(line, delimiter string) []string {
	var result []string
	var current strings.Builder
	inQuotes := false
	delim := rune(delimiter[0])

	for _, char := range line {
		switch {
		case char == '"':
			inQuotes = !inQuotes
		case char == delim && !inQuotes:
			result = append(result, cleanField(current.String()))
			current.Reset()
		default:
			current.WriteRune(char)
		}
	}
	result = append(result, cleanField(current.String()))
	return result
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return s
}

// NormalizeHeader lowercases a header and collapses every non-alphanumeric
// run into a single underscore: "Price Before (TND)" -> "price_before_tnd".
func NormalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = headerRunRegexp.ReplaceAllString(h, "_")
	return strings.Trim(h, "_")
}

// CoerceNumber parses a numeric cell, accepting a comma decimal separator.
// Unparsable cells degrade to 0 rather than failing the row.
func CoerceNumber(value string) float64 {
	v := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func setField(r *models.ProductRecord, header, value string) {
	if numericColumns[header] {
		n := CoerceNumber(value)
		switch header {
		case "grammage":
			r.Grammage = n
		case "price_before_tnd":
			r.PriceBefore = n
		case "price_after_tnd":
			r.PriceAfter = n
		}
		return
	}

	switch header {
	case "product":
		r.Product = value
	case "brand":
		r.Brand = value
	case "source":
		r.Source = value
	case "rayon":
		r.Rayon = value
	case "famille":
		r.Famille = value
	case "sous_famille":
		r.SousFamille = value
	case "url":
		r.URL = value
	case "promo_date_debut":
		r.PromoStart = value
	case "promo_date_fin":
		r.PromoEnd = value
	}
}

// Marshal serializes records back into canonical CSV: the required columns,
// comma-delimited, fields quoted only when they contain a comma.
func (p *Parser) Marshal(records []*models.ProductRecord) string {
	var b strings.Builder
	b.WriteString(strings.Join(RequiredColumns, ","))
	b.WriteByte('\n')

	for _, r := range records {
		fields := []string{
			r.Product,
			r.Brand,
			r.Rayon,
			r.Famille,
			r.SousFamille,
			formatNumber(r.Grammage),
			formatNumber(r.PriceBefore),
			formatNumber(r.PriceAfter),
			r.URL,
			r.PromoStart,
			r.PromoEnd,
		}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			if strings.Contains(f, ",") {
				b.WriteByte('"')
				b.WriteString(f)
				b.WriteByte('"')
			} else {
				b.WriteString(f)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
