package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Job configuration
	Profile string `long:"profile" env:"PROFILE" default:"./profile.yaml" description:"Path to the YAML job profile"`
	FeedURL string `long:"feed-url" env:"FEED_URL" description:"Source feed URL, overrides the profile"`

	// Output configuration
	DraftsDir string `long:"drafts-dir" env:"DRAFTS_DIR" default:"./drafts" description:"Directory the draft documents are written to"`
	StateFile string `long:"state-file" env:"STATE_FILE" default:"./state/seen.json" description:"Path of the persisted seen-item state"`
	SeenCap   int    `long:"seen-cap" env:"SEEN_CAP" default:"2000" description:"Maximum number of seen item ids retained"`
	DBPath    string `long:"db-path" env:"DB_PATH" description:"SQLite database for draft history (optional)"`
	DryRun    bool   `long:"dry-run" env:"DRY_RUN" description:"Compute drafts without writing files or state"`

	// Summarization
	Summarizer   string `long:"summarizer" env:"SUMMARIZER" default:"extractive" choice:"extractive" choice:"gemini" description:"Summarization strategy"`
	GeminiModel  string `long:"gemini-model" env:"GEMINI_MODEL" default:"gemini-2.5-flash" description:"Model used by the gemini summarizer"`
	GeminiAPIKey string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"API key for the gemini summarizer"`

	// Network
	UserAgent   string `long:"user-agent" env:"USER_AGENT" default:"rss-drafter/1.0 (+https://github.com/lysyi3m/rss-drafter)" description:"User agent string for HTTP requests"`
	FeedTimeout int    `long:"feed-timeout" env:"FEED_TIMEOUT" default:"30" description:"Feed fetch timeout in seconds"`
	PageTimeout int    `long:"page-timeout" env:"PAGE_TIMEOUT" default:"20" description:"Article page fetch timeout in seconds"`
	WorkerCount int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of workers processing selected items"`

	// Application metadata
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Profile:      raw.Profile,
		FeedURL:      raw.FeedURL,
		DraftsDir:    raw.DraftsDir,
		StateFile:    raw.StateFile,
		SeenCap:      raw.SeenCap,
		DBPath:       raw.DBPath,
		DryRun:       raw.DryRun,
		Summarizer:   raw.Summarizer,
		GeminiModel:  raw.GeminiModel,
		GeminiAPIKey: raw.GeminiAPIKey,
		UserAgent:    raw.UserAgent,
		FeedTimeout:  raw.FeedTimeout,
		PageTimeout:  raw.PageTimeout,
		WorkerCount:  raw.WorkerCount,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
