package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brand-intel/config"
	"brand-intel/datasource"
	"brand-intel/models"
	"brand-intel/services"
	"brand-intel/storage"
	"brand-intel/utils"
	"brand-intel/watcher"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Brand Intelligence Pipeline starting ===")
	logger.Info("Config — brand: %s | industry: %s | storage: %s | cache TTL: %ds",
		cfg.BrandName, cfg.Industry, cfg.StorageDriver, cfg.CacheTTLSeconds)

	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to open snapshot store: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	manager := datasource.NewManager(store, logger)
	manager.SetTTLs(
		time.Duration(cfg.CacheTTLSeconds)*time.Second,
		time.Duration(cfg.SnapshotTTLHours)*time.Hour,
	)

	parser := services.NewParser(logger)

	imported := loadInput(cfg, parser, logger)

	result, err := manager.GetData(cfg.BrandName, cfg.Industry, imported, false)
	if err != nil {
		logger.Error("Data resolution failed: %v", err)
		os.Exit(1)
	}

	records := result.Data
	if len(records) == 0 {
		logger.Info("No data for %q — generating a synthetic catalog (%d products)",
			cfg.BrandName, cfg.ProductCount)

		generator := services.NewGenerator(logger)
		records = generator.Generate(cfg.BrandName, cfg.Industry, nil, cfg.ProductCount)
		if len(records) == 0 {
			logger.Error("Nothing to analyze. Exiting.")
			os.Exit(1)
		}

		own, _ := services.Partition(records, cfg.BrandName)
		competitors := services.CompetitorBrands(records, cfg.BrandName)
		if err := manager.ImportCSV(cfg.BrandName, records, own, competitors); err != nil {
			logger.Error("Failed to persist generated dataset: %v", err)
		}
		result = &models.DataResult{Data: records, Source: models.SourceAPI}
	}

	logger.Info("Dataset ready: %d products (source: %s)", len(records), result.Source)

	insightSvc := services.NewInsightService(logger)
	kpi := insightSvc.KPIs(records, cfg.BrandName)
	insights := insightSvc.CompetitorInsights(records, cfg.BrandName)
	insightSvc.Print(cfg.BrandName, kpi, insights)

	printPositioning(insightSvc, records, cfg.BrandName)
	printClusters(records, logger)

	if cfg.CSVExportPath != "" {
		exportCSV(cfg.CSVExportPath, records, logger)
	}

	if cfg.WatchDir != "" {
		runWatcher(cfg, parser, manager, logger)
	}
}

func openStore(cfg *config.Config, logger *utils.Logger) (storage.SnapshotStore, error) {
	switch cfg.StorageDriver {
	case "postgres":
		return storage.NewPostgresStore(cfg.DSN(), logger)
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return storage.NewSQLiteStore(cfg.SQLitePath)
	}
}

// loadInput reads the configured input file, if any. A CSV input takes
// priority over an OCR JSON export; with neither configured the datasource
// manager resolves from cache or persisted snapshots.
func loadInput(cfg *config.Config, parser *services.Parser, logger *utils.Logger) []*models.ProductRecord {
	if cfg.CSVInputPath != "" {
		content, err := os.ReadFile(cfg.CSVInputPath)
		if err != nil {
			logger.Error("Failed to read CSV input %s: %v", cfg.CSVInputPath, err)
			return nil
		}
		records, rowErrs, err := parser.Parse(string(content))
		if err != nil {
			logger.Error("CSV parse failed: %v", err)
			return nil
		}
		for _, rowErr := range rowErrs {
			logger.Warn("CSV line %d skipped: %s", rowErr.Line, rowErr.Reason)
		}
		logger.Info("Parsed %d products from %s", len(records), cfg.CSVInputPath)
		return records
	}

	if cfg.OCRInputPath != "" {
		content, err := os.ReadFile(cfg.OCRInputPath)
		if err != nil {
			logger.Error("Failed to read OCR input %s: %v", cfg.OCRInputPath, err)
			return nil
		}
		records, err := services.ParseOCRProducts(string(content))
		if err != nil {
			logger.Error("OCR parse failed: %v", err)
			return nil
		}
		logger.Info("Parsed %d products from OCR export %s", len(records), cfg.OCRInputPath)
		return records
	}

	return nil
}

func printPositioning(svc *services.InsightService, records []*models.ProductRecord, ownBrand string) {
	positions := svc.Positioning(records, ownBrand)
	if len(positions) == 0 {
		return
	}

	fmt.Printf("\033[1;33m  Category Positioning\033[0m\n")
	for family, pos := range positions {
		fmt.Printf("  %-24s %-10s score %5.1f | %.1f%% share | %d/%d products\n",
			family, pos.Status, pos.PositioningScore, pos.MarketShare, pos.OwnProducts, pos.TotalProducts)
	}
	fmt.Println()
}

func printClusters(records []*models.ProductRecord, logger *utils.Logger) {
	points := services.PricePoints(records)
	clustered := services.NewClusterer().Cluster(points, 3)
	if len(clustered) == 0 {
		return
	}

	counts := make(map[int]int)
	for _, p := range clustered {
		counts[p.Cluster]++
	}
	logger.Info("Price/weight segments: %d points in %d clusters", len(clustered), len(counts))
}

func exportCSV(path string, records []*models.ProductRecord, logger *utils.Logger) {
	writer, err := storage.NewCSVWriter(path)
	if err != nil {
		logger.Error("Failed to create CSV export: %v", err)
		return
	}
	if err := exportDataset(writer, records); err != nil {
		logger.Error("CSV export failed: %v", err)
		return
	}
	logger.Info("Dataset exported to %s", path)
}

func exportDataset(w storage.DatasetWriter, records []*models.ProductRecord) error {
	defer w.Close()
	return w.WriteRecords(records)
}

func runWatcher(cfg *config.Config, parser *services.Parser, manager *datasource.Manager, logger *utils.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(cfg.WatchDir, cfg.BrandName, parser, manager, logger, cfg.MaxConcurrency)
	if err := w.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("Watcher stopped: %v", err)
		os.Exit(1)
	}
	logger.Info("Watcher shut down")
}
