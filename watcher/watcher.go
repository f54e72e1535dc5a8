// Package watcher imports CSV files dropped into a directory as they appear.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"brand-intel/datasource"
	"brand-intel/services"
	"brand-intel/utils"
)

// Watcher monitors a directory and imports every .csv file written into it
// as the session brand's new dataset.
type Watcher struct {
	dir      string
	brand    string
	parser   *services.Parser
	manager  *datasource.Manager
	logger   *utils.Logger
	pool     *utils.WorkerPool
	inFlight *utils.StringSet
}

// New creates a Watcher over dir importing into the given brand. maxWorkers
// bounds how many files are parsed concurrently.
func New(dir, brand string, parser *services.Parser, manager *datasource.Manager, logger *utils.Logger, maxWorkers int) *Watcher {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Watcher{
		dir:      dir,
		brand:    brand,
		parser:   parser,
		manager:  manager,
		logger:   logger,
		pool:     utils.NewWorkerPool(maxWorkers, 0),
		inFlight: utils.NewStringSet(),
	}
}

// Run blocks watching the directory until the context is cancelled. Files
// already present when the watch starts are imported once at startup.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: init: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watcher: watch %q: %w", w.dir, err)
	}
	w.logger.Info("[watcher] Watching %s for CSV drops", w.dir)

	w.importExisting()

	for {
		select {
		case <-ctx.Done():
			w.pool.Wait()
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				w.pool.Wait()
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isCSV(event.Name) {
				continue
			}
			w.enqueue(event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				w.pool.Wait()
				return nil
			}
			w.logger.Error("[watcher] %v", err)
		}
	}
}

func (w *Watcher) importExisting() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Error("[watcher] Failed to list %s: %v", w.dir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !isCSV(entry.Name()) {
			continue
		}
		w.enqueue(filepath.Join(w.dir, entry.Name()))
	}
}

// enqueue schedules a file for import. Write events arrive in bursts for
// the same file, so a path already in flight is skipped.
func (w *Watcher) enqueue(path string) {
	if !w.inFlight.Add(path) {
		return
	}
	w.pool.Submit(func() {
		defer w.inFlight.Remove(path)
		if err := w.importFile(path); err != nil {
			w.logger.Error("[watcher] Import %s failed: %v", filepath.Base(path), err)
		}
	})
}

func (w *Watcher) importFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}

	records, rowErrs, err := w.parser.Parse(string(content))
	if err != nil {
		return err
	}
	for _, rowErr := range rowErrs {
		w.logger.Warn("[watcher] %s line %d: %s", filepath.Base(path), rowErr.Line, rowErr.Reason)
	}

	own, _ := services.Partition(records, w.brand)
	competitors := services.CompetitorBrands(records, w.brand)
	if err := w.manager.ImportCSV(w.brand, records, own, competitors); err != nil {
		return err
	}

	w.logger.Info("[watcher] Imported %s: %d products (%d skipped rows)",
		filepath.Base(path), len(records), len(rowErrs))
	return nil
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
