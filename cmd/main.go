package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"corpus-converter/internal/audio"
	"corpus-converter/internal/config"
	"corpus-converter/internal/db"
	"corpus-converter/internal/logger"
	"corpus-converter/internal/service"
)

func main() {
	envFile := flag.String("env", ".env", "path to .env file")
	format := flag.String("format", "", "corpus format: transcripts or tsv (overrides CORPUS_FORMAT)")
	source := flag.String("source", "", "source corpus root (overrides SOURCE_DIR)")
	target := flag.String("target", "", "output root (overrides TARGET_DIR)")
	variant := flag.String("variant", "", "TSV index variant, e.g. wylie (overrides TSV_VARIANT)")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*envFile)
	if err != nil {
		log := logger.New("info", logger.FormatConsole, os.Stdout)
		log.Error().Err(err).Msg("Config error")
		return
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	applyFlags(&cfg.Corpus, *format, *source, *target, *variant)
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("Invalid configuration, nothing converted")
		return
	}

	ctx := context.Background()

	// Catalog (optional)
	var catalog *db.DB
	if cfg.Catalog.Enabled {
		catalog = openCatalog(ctx, log, cfg)
		if catalog != nil {
			defer catalog.Close()
		}
	}

	var conv *service.Converter
	if catalog != nil {
		conv = service.NewConverter(cfg.Corpus, log, catalog)
		if cfg.Catalog.ProbeMetadata {
			conv.SetProber(audio.GetMetadata)
		}
	} else {
		conv = service.NewConverter(cfg.Corpus, log, nil)
	}

	sum := conv.Run(ctx)

	if catalog != nil {
		n, err := catalog.CountByRun(ctx, sum.RunID)
		if err != nil {
			log.Warn().Err(err).Msg("Catalog count failed")
		} else {
			log.Info().Str("run_id", sum.RunID).Int64("rows", n).Msg("✓ Catalog updated")
		}
	}
}

func applyFlags(c *config.CorpusConfig, format, source, target, variant string) {
	if format != "" {
		c.Format = format
	}
	if source != "" {
		c.SourceDir = source
	}
	if target != "" {
		c.TargetDir = target
	}
	if variant != "" {
		c.TSVVariant = variant
	}
}

// openCatalog connects to MariaDB; on failure the run continues without a
// catalog.
func openCatalog(ctx context.Context, log zerolog.Logger, cfg *config.Config) *db.DB {
	database, err := db.New(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
	)
	if err != nil {
		log.Warn().Err(err).Str("host", cfg.Database.Host).Msg("⚠ Catalog unavailable, continuing without it")
		return nil
	}
	if err := database.EnsureSchema(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠ Catalog schema error, continuing without it")
		database.Close()
		return nil
	}
	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.Name).Msg("✓ Connected to MariaDB")
	return database
}
