package main

import (
	"fmt"
	"os"

	"cafe-insights/config"
	"cafe-insights/models"
	"cafe-insights/services"
	"cafe-insights/storage"
	"cafe-insights/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Cafe Feedback Insights starting ===")
	logger.Info("Config — input: %s | clean out: %s | rejects out: %s",
		cfg.InputCSVPath, cfg.CleanCSVPath, cfg.RejectionCSVPath)

	analysis, err := config.LoadAnalysis(cfg.AnalysisConfigPath)
	if err != nil {
		logger.Error("Failed to load analysis config: %v", err)
		os.Exit(1)
	}

	raw, err := storage.ReadRawFile(cfg.InputCSVPath)
	if err != nil {
		// Fatal ingestion error: the source itself is unreadable or
		// structurally broken. Nothing was processed.
		logger.Error("Ingestion failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Ingested %d raw records", len(raw))

	pipeline := services.NewPipeline(logger)
	cache := &services.Cache{}
	clean, rejections := pipeline.CleanCached(cache, raw)

	logger.Info("Canonical dataset: %d records | rejected: %d", len(clean), len(rejections))

	cleanWriter, err := storage.NewCSVWriter(cfg.CleanCSVPath)
	if err != nil {
		logger.Error("Failed to create clean CSV writer: %v", err)
		os.Exit(1)
	}
	defer cleanWriter.Close()

	if err := cleanWriter.WriteClean(clean); err != nil {
		logger.Error("Clean CSV write failed: %v", err)
	} else {
		logger.Info("Clean dataset saved to %s", cfg.CleanCSVPath)
	}

	rejectionWriter, err := storage.NewCSVWriter(cfg.RejectionCSVPath)
	if err != nil {
		logger.Error("Failed to create rejection CSV writer: %v", err)
		os.Exit(1)
	}
	defer rejectionWriter.Close()

	if err := rejectionWriter.WriteRejections(rejections); err != nil {
		logger.Error("Rejection CSV write failed: %v", err)
	} else {
		logger.Info("Rejection log saved to %s", cfg.RejectionCSVPath)
	}

	aggregator := services.NewAggregator(logger,
		analysis.Words.StopWords, analysis.Words.MinTokenLength, analysis.Words.TopN)
	narrator := services.NewNarrator(
		analysis.Narrative.StrongThreshold, analysis.Narrative.MixedThreshold,
		analysis.Narrative.TopWords)

	spec := models.AllRecords()
	subset := services.ApplyFilter(clean, spec)
	snapshot := aggregator.Snapshot(subset)
	narrative := narrator.Narrate(snapshot, spec)

	services.NewReporter().Print(snapshot, narrative, rejections)

	fmt.Printf("  Done. Clean data → %s | Rejection log → %s\n\n",
		cfg.CleanCSVPath, cfg.RejectionCSVPath)
}
