package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/courseatlas/atlas-engine/pkg/config"
	"github.com/courseatlas/atlas-engine/pkg/export"
	"github.com/courseatlas/atlas-engine/pkg/loader"
	"github.com/courseatlas/atlas-engine/pkg/logging"
	"github.com/courseatlas/atlas-engine/pkg/schema"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// A missing .env is fine; env vars may come from the shell.
	_ = godotenv.Load()

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	if err := run(cfg, logger, runID); err != nil {
		// Connection errors can echo DSN fragments.
		logger.Error("pipeline failed", zap.String("error", logging.SanitizeError(err)))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, runID string) error {
	logger.Info("starting atlas-engine",
		zap.String("version", cfg.Version),
		zap.String("env", cfg.Env),
		zap.String("dialect", cfg.Export.Dialect))

	professors, err := schema.LoadProfessors(cfg.Sources.Professors)
	if err != nil {
		return err
	}
	courses, err := schema.LoadCourses(cfg.Sources.Courses)
	if err != nil {
		return err
	}
	ratings, err := schema.LoadRatings(cfg.Sources.Ratings)
	if err != nil {
		return err
	}
	logger.Info("source documents loaded",
		zap.Int("professors", len(professors)),
		zap.Int("courses", len(courses)),
		zap.Int("rating_groups", len(ratings)))

	builder := schema.NewBuilder(logger)
	builder.AddProfessors(professors)
	builder.AddCourses(courses)
	builder.AddRatings(ratings)

	ds := builder.Dataset()
	filled := schema.NormalizeFields(ds)
	logger.Info("schema built", zap.Int("fields_filled", filled))

	dialect := export.Dialects[cfg.Export.Dialect]
	opts := export.ScriptOptions{
		Dialect:   dialect,
		BatchSize: cfg.Export.BatchSize,
		RunID:     runID,
	}
	if err := export.WriteScriptFile(cfg.Export.ScriptPath, ds, opts); err != nil {
		return err
	}
	logger.Info("sql script written", zap.String("path", cfg.Export.ScriptPath))

	if err := export.WriteTabular(cfg.Export.TabularDir, ds); err != nil {
		return err
	}
	logger.Info("tabular export written", zap.String("dir", cfg.Export.TabularDir))

	if cfg.Load.DSN != "" {
		if err := applyScript(cfg, logger); err != nil {
			return err
		}
	}

	stats := builder.Stats()
	logger.Info("pipeline complete",
		zap.Int("professors_added", stats.ProfessorsAdded),
		zap.Int("professors_skipped", stats.ProfessorsSkipped),
		zap.Int("courses_added", stats.CoursesAdded),
		zap.Int("courses_duplicate", stats.CoursesDuplicate),
		zap.Int("sections_added", stats.SectionsAdded),
		zap.Int("sections_skipped", stats.SectionsSkipped),
		zap.Int("sections_duplicate", stats.SectionsDuplicate),
		zap.Int("section_times_added", stats.TimesAdded),
		zap.Int("ratings_added", stats.RatingsAdded),
		zap.Int("ratings_dropped", stats.RatingsDropped),
		zap.Int("tags_added", stats.TagsAdded),
		zap.Int("names_matched", stats.NamesMatched),
		zap.Int("names_unmatched", stats.NamesUnmatched))
	return nil
}

func applyScript(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	ldr, err := loader.New(ctx, cfg.Export.Dialect, cfg.Load.DSN, logger)
	if err != nil {
		return err
	}
	defer ldr.Close()

	script, err := os.Open(cfg.Export.ScriptPath)
	if err != nil {
		return err
	}
	defer script.Close()

	if _, err := ldr.Apply(ctx, script); err != nil {
		return err
	}
	return nil
}
