package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ticker-scout/internal/sentiment"
)

// Config holds all application configuration.
// Every numeric threshold the pipeline consumes lives here so it can be
// tuned without rebuilding.
type Config struct {
	Capture struct {
		Display int     `yaml:"display"` // display index for screen capture
		Scale   float64 `yaml:"scale"`   // downscale factor, 1.0 = native
	} `yaml:"capture"`
	OCR struct {
		MatchThreshold float64 `yaml:"match_threshold"` // template acceptance, [0,1]
		MinCharWidth   int     `yaml:"min_char_width"`
		MaxCharWidth   int     `yaml:"max_char_width"`
		MinCharHeight  int     `yaml:"min_char_height"`
		MaxCharHeight  int     `yaml:"max_char_height"`
	} `yaml:"ocr"`
	Chart struct {
		HoughVotes      int     `yaml:"hough_votes"`
		MinLineLength   int     `yaml:"min_line_length"`
		MaxLineGap      int     `yaml:"max_line_gap"`
		MinSegments     int     `yaml:"min_segments"`
		HorizontalFrac  float64 `yaml:"horizontal_frac"`
		VerticalFrac    float64 `yaml:"vertical_frac"`
		GridEpsilonPct  float64 `yaml:"grid_epsilon_pct"`
		GridRectCount   int     `yaml:"grid_rect_count"`
		GridBoost       int     `yaml:"grid_boost"`
		ConfidenceFloor int     `yaml:"confidence_floor"`
	} `yaml:"chart"`
	Sentiment struct {
		PositiveKeywords []string `yaml:"positive_keywords"`
		NegativeKeywords []string `yaml:"negative_keywords"`
		PositiveCutoff   float64  `yaml:"positive_cutoff"`
		NegativeCutoff   float64  `yaml:"negative_cutoff"`
	} `yaml:"sentiment"`
	Strategy struct {
		TrendThresholdPct    float64 `yaml:"trend_threshold_pct"`
		VolumeThresholdPct   float64 `yaml:"volume_threshold_pct"`
		SentimentThreshold   float64 `yaml:"sentiment_threshold"`
		TrendDelta           int     `yaml:"trend_delta"`
		VolumeDelta          int     `yaml:"volume_delta"`
		SentimentDelta       int     `yaml:"sentiment_delta"`
		AgreementDelta       int     `yaml:"agreement_delta"`
		ContradictionPenalty int     `yaml:"contradiction_penalty"`
	} `yaml:"strategy"`
	DataSource struct {
		NewsAPIKey string `yaml:"news_api_key"`
		Proxy      string `yaml:"proxy"`
	} `yaml:"data_source"`
	Trigger struct {
		CooldownSeconds float64 `yaml:"cooldown_seconds"`
		CronSpec        string  `yaml:"cron_spec"` // empty disables the periodic trigger
	} `yaml:"trigger"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty disables the recorder
	} `yaml:"database"`
	Overlay struct {
		Enabled bool `yaml:"enabled"`
		Width   int  `yaml:"width"`
		Height  int  `yaml:"height"`
	} `yaml:"overlay"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and fills in defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		cfg.DataSource.NewsAPIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CAPTURE_DISPLAY"); v != "" {
		var d int
		if _, err := fmt.Sscanf(v, "%d", &d); err == nil {
			cfg.Capture.Display = d
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Capture.Scale == 0 {
		c.Capture.Scale = 1.0
	}
	if c.OCR.MatchThreshold == 0 {
		c.OCR.MatchThreshold = 0.7
	}
	if c.OCR.MinCharWidth == 0 {
		c.OCR.MinCharWidth = 20
	}
	if c.OCR.MaxCharWidth == 0 {
		c.OCR.MaxCharWidth = 50
	}
	if c.OCR.MinCharHeight == 0 {
		c.OCR.MinCharHeight = 30
	}
	if c.OCR.MaxCharHeight == 0 {
		c.OCR.MaxCharHeight = 60
	}
	if c.Chart.HoughVotes == 0 {
		c.Chart.HoughVotes = 100
	}
	if c.Chart.MinLineLength == 0 {
		c.Chart.MinLineLength = 100
	}
	if c.Chart.MaxLineGap == 0 {
		c.Chart.MaxLineGap = 10
	}
	if c.Chart.MinSegments == 0 {
		c.Chart.MinSegments = 5
	}
	if c.Chart.HorizontalFrac == 0 {
		c.Chart.HorizontalFrac = 0.6
	}
	if c.Chart.VerticalFrac == 0 {
		c.Chart.VerticalFrac = 0.3
	}
	if c.Chart.GridEpsilonPct == 0 {
		c.Chart.GridEpsilonPct = 0.04
	}
	if c.Chart.GridRectCount == 0 {
		c.Chart.GridRectCount = 5
	}
	if c.Chart.GridBoost == 0 {
		c.Chart.GridBoost = 20
	}
	if c.Chart.ConfidenceFloor == 0 {
		c.Chart.ConfidenceFloor = 60
	}
	if len(c.Sentiment.PositiveKeywords) == 0 {
		c.Sentiment.PositiveKeywords = DefaultPositiveKeywords()
	}
	if len(c.Sentiment.NegativeKeywords) == 0 {
		c.Sentiment.NegativeKeywords = DefaultNegativeKeywords()
	}
	if c.Sentiment.PositiveCutoff == 0 {
		c.Sentiment.PositiveCutoff = 20
	}
	if c.Sentiment.NegativeCutoff == 0 {
		c.Sentiment.NegativeCutoff = -20
	}
	if c.Strategy.TrendThresholdPct == 0 {
		c.Strategy.TrendThresholdPct = 2
	}
	if c.Strategy.VolumeThresholdPct == 0 {
		c.Strategy.VolumeThresholdPct = 20
	}
	if c.Strategy.SentimentThreshold == 0 {
		c.Strategy.SentimentThreshold = 20
	}
	if c.Strategy.TrendDelta == 0 {
		c.Strategy.TrendDelta = 10
	}
	if c.Strategy.VolumeDelta == 0 {
		c.Strategy.VolumeDelta = 10
	}
	if c.Strategy.SentimentDelta == 0 {
		c.Strategy.SentimentDelta = 15
	}
	if c.Strategy.AgreementDelta == 0 {
		c.Strategy.AgreementDelta = 15
	}
	if c.Strategy.ContradictionPenalty == 0 {
		c.Strategy.ContradictionPenalty = 10
	}
	if c.Trigger.CooldownSeconds == 0 {
		c.Trigger.CooldownSeconds = 1.0
	}
	if c.Overlay.Width == 0 {
		c.Overlay.Width = 400
	}
	if c.Overlay.Height == 0 {
		c.Overlay.Height = 300
	}
}

// DefaultPositiveKeywords returns the built-in positive sentiment keyword set.
func DefaultPositiveKeywords() []string {
	return sentiment.DefaultPositiveKeywords()
}

// DefaultNegativeKeywords returns the built-in negative sentiment keyword set.
func DefaultNegativeKeywords() []string {
	return sentiment.DefaultNegativeKeywords()
}

// Validate checks that tunables are in sane ranges.
func (c *Config) Validate() error {
	if c.OCR.MatchThreshold <= 0 || c.OCR.MatchThreshold > 1 {
		return fmt.Errorf("ocr.match_threshold must be in (0, 1]")
	}
	if c.OCR.MinCharWidth >= c.OCR.MaxCharWidth {
		return fmt.Errorf("ocr char width bounds inverted: min %d >= max %d",
			c.OCR.MinCharWidth, c.OCR.MaxCharWidth)
	}
	if c.OCR.MinCharHeight >= c.OCR.MaxCharHeight {
		return fmt.Errorf("ocr char height bounds inverted: min %d >= max %d",
			c.OCR.MinCharHeight, c.OCR.MaxCharHeight)
	}
	if c.Chart.HorizontalFrac <= 0 || c.Chart.HorizontalFrac > 1 {
		return fmt.Errorf("chart.horizontal_frac must be in (0, 1]")
	}
	if c.Chart.VerticalFrac <= 0 || c.Chart.VerticalFrac > 1 {
		return fmt.Errorf("chart.vertical_frac must be in (0, 1]")
	}
	if c.Capture.Scale <= 0 || c.Capture.Scale > 1 {
		return fmt.Errorf("capture.scale must be in (0, 1]")
	}
	if c.Trigger.CooldownSeconds < 0 {
		return fmt.Errorf("trigger.cooldown_seconds must not be negative")
	}
	return nil
}
