package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/rss-drafter/app/cfg"
	"github.com/lysyi3m/rss-drafter/app/database"
	"github.com/lysyi3m/rss-drafter/app/drafts"
	"github.com/lysyi3m/rss-drafter/app/extract"
	"github.com/lysyi3m/rss-drafter/app/feed"
	"github.com/lysyi3m/rss-drafter/app/pipeline"
	"github.com/lysyi3m/rss-drafter/app/profile"
	"github.com/lysyi3m/rss-drafter/app/state"
	"github.com/lysyi3m/rss-drafter/app/summary"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Run failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	appCfg, err := cfg.Load()
	if err != nil {
		return err
	}
	if appCfg == nil {
		// Help was requested, exit gracefully
		return nil
	}

	setupLogger(appCfg.Debug)
	slog.Info("Starting rss-drafter", "version", appCfg.Version)

	jobProfile, err := profile.Load(appCfg.Profile)
	if err != nil {
		return err
	}

	feedURL := appCfg.FeedURL
	if feedURL == "" {
		feedURL = jobProfile.FeedURL
	}
	if err := validateFeedURL(feedURL); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	httpClient := &http.Client{}

	var archive pipeline.DraftArchive
	if appCfg.DBPath != "" {
		db, err := database.NewConnection(appCfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		version, dirty, err := database.RunMigrations(db)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

		archive = database.NewDraftRepository(db)
	}

	seen := state.NewSeenStore(appCfg.StateFile, appCfg.SeenCap)
	if err := seen.Load(); err != nil {
		return fmt.Errorf("failed to load seen state: %w", err)
	}

	summarizer, err := buildSummarizer(ctx, appCfg, jobProfile)
	if err != nil {
		return err
	}

	feedFetcher := feed.NewFetcher(httpClient, feed.NewParser(), feedURL, appCfg.UserAgent,
		time.Duration(appCfg.FeedTimeout)*time.Second)
	extractor := extract.NewExtractor(httpClient, jobProfile.ExtractMinWords, appCfg.UserAgent,
		time.Duration(appCfg.PageTimeout)*time.Second)
	writer := drafts.NewWriter(appCfg.DraftsDir, jobProfile.Author, jobProfile.Tags, appCfg.DryRun)

	p := pipeline.New(pipeline.Deps{
		Fetcher:    feedFetcher,
		Normalizer: feed.NewNormalizer(),
		Filterer:   feed.NewFilterer(jobProfile.LookbackHours, jobProfile.MinWords),
		Ranker:     feed.NewRanker(jobProfile.MaxPosts),
		Extractor:  extractor,
		Summarizer: summarizer,
		Writer:     writer,
		Seen:       seen,
		Archive:    archive,
	}, pipeline.Options{
		TargetWords:     jobProfile.TargetWords,
		ExtractMinWords: jobProfile.ExtractMinWords,
		WorkerCount:     appCfg.WorkerCount,
		DryRun:          appCfg.DryRun,
	})

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	output, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode run summary: %w", err)
	}
	fmt.Println(string(output))

	slog.Info("Run complete", "created", len(result.Created), "skipped", result.Skipped)
	return nil
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// validateFeedURL rejects a missing or relative feed URL before any
// network traffic happens.
func validateFeedURL(feedURL string) error {
	if feedURL == "" {
		return fmt.Errorf("no feed URL configured: set feed_url in the profile or pass --feed-url")
	}
	parsed, err := url.Parse(feedURL)
	if err != nil {
		return fmt.Errorf("invalid feed URL %q: %w", feedURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("invalid feed URL %q: expected an absolute http(s) URL", feedURL)
	}
	return nil
}

func buildSummarizer(ctx context.Context, appCfg *cfg.Cfg, jobProfile *profile.Profile) (summary.Summarizer, error) {
	extractive := summary.NewExtractive(jobProfile.WordTolerance)

	switch appCfg.Summarizer {
	case "gemini":
		if appCfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini summarizer selected but no API key set (GEMINI_API_KEY)")
		}
		gemini, err := summary.NewGemini(ctx, appCfg.GeminiAPIKey, appCfg.GeminiModel, extractive)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini summarizer: %w", err)
		}
		return gemini, nil
	default:
		return extractive, nil
	}
}
