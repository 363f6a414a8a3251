package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile holds the job-level knobs: which feed to draft from and the
// selection/summarization thresholds. Operational settings (paths,
// timeouts, workers) live in the flag/env configuration instead.
type Profile struct {
	FeedURL         string   `yaml:"feed_url"`
	LookbackHours   int      `yaml:"lookback_hours"`
	MaxPosts        int      `yaml:"max_posts"`
	MinWords        int      `yaml:"min_words"`
	ExtractMinWords int      `yaml:"extract_min_words"`
	TargetWords     int      `yaml:"target_words"`
	WordTolerance   int      `yaml:"word_tolerance"`
	Author          string   `yaml:"author"`
	Tags            []string `yaml:"tags"`
}

// Load reads and validates a profile file. A missing file yields the
// defaults, so a feed URL passed via flag/env is enough to run.
func Load(path string) (*Profile, error) {
	profile := &Profile{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read profile: %w", err)
			}
		} else if err := yaml.Unmarshal(data, profile); err != nil {
			return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
		}
	}

	setDefaults(profile)

	if err := validate(profile); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	return profile, nil
}

func setDefaults(profile *Profile) {
	if profile.LookbackHours == 0 {
		profile.LookbackHours = 6
	}
	if profile.MaxPosts == 0 {
		profile.MaxPosts = 3
	}
	if profile.MinWords == 0 {
		profile.MinWords = 40
	}
	if profile.ExtractMinWords == 0 {
		profile.ExtractMinWords = profile.MinWords
	}
	if profile.TargetWords == 0 {
		profile.TargetWords = 150
	}
	if profile.WordTolerance == 0 {
		profile.WordTolerance = 30
	}
	if profile.Author == "" {
		profile.Author = "newsdesk"
	}
}

func validate(profile *Profile) error {
	if profile.LookbackHours < 0 {
		return fmt.Errorf("lookback_hours must be non-negative")
	}
	if profile.MaxPosts < 0 {
		return fmt.Errorf("max_posts must be non-negative")
	}
	if profile.MinWords < 0 || profile.ExtractMinWords < 0 {
		return fmt.Errorf("word thresholds must be non-negative")
	}
	if profile.TargetWords <= 0 {
		return fmt.Errorf("target_words must be positive")
	}
	if profile.WordTolerance < 0 {
		return fmt.Errorf("word_tolerance must be non-negative")
	}
	return nil
}
