package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"brand-intel/models"
)

// csvHeader is the canonical export column order, matching the parser's
// required-field set.
var csvHeader = []string{
	"product", "brand", "rayon", "famille", "sous_famille", "grammage",
	"price_before_tnd", "price_after_tnd", "url", "promo_date_debut", "promo_date_fin",
}

// CSVWriter exports a dataset to a CSV file the parser can re-import.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteRecords appends the full dataset to the file.
func (c *CSVWriter) WriteRecords(records []*models.ProductRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		row := []string{
			r.Product,
			r.Brand,
			r.Rayon,
			r.Famille,
			r.SousFamille,
			strconv.FormatFloat(r.Grammage, 'f', -1, 64),
			strconv.FormatFloat(r.PriceBefore, 'f', -1, 64),
			strconv.FormatFloat(r.PriceAfter, 'f', -1, 64),
			r.URL,
			r.PromoStart,
			r.PromoEnd,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
