package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/erpdash/internal/config"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/report"
	"github.com/Veraticus/erpdash/internal/service"
	"github.com/Veraticus/erpdash/internal/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"
)

// progressThreshold is the record count above which evaluation shows a progress bar.
const progressThreshold = 200

// loadSettings returns the validated settings of the global viper instance.
func loadSettings() (config.Settings, error) {
	return config.Load(viper.GetViper())
}

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context, settings config.Settings) (service.Storage, error) {
	if dir := filepath.Dir(settings.DatabasePath); dir != "" && settings.DatabasePath != ":memory:" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	store, err := storage.NewSQLiteStorage(settings.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}

// buildReport evaluates records, drawing a progress bar on w for large batches.
func buildReport(ctx context.Context, w io.Writer, records []model.Record, settings config.Settings, quiet bool) (*model.Report, error) {
	opts := report.Options{
		Locale:  settings.Locale,
		Workers: settings.Workers,
	}

	if !quiet && len(records) > progressThreshold {
		bar := progressbar.NewOptions(len(records),
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("Avaliando registros"),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		// The bar serializes concurrent Adds.
		opts.OnEvaluated = func() { _ = bar.Add(1) }
		defer func() { _ = bar.Finish() }()
	}

	return report.Build(ctx, records, opts)
}

// parseDate parses a YYYY-MM-DD flag value.
func parseDate(name, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", name, value)
	}
	return t, nil
}

// expandFiles expands glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}
