package sentiment

import (
	"testing"

	"ticker-scout/internal/model"
)

func TestScoreEmptyBatch(t *testing.T) {
	s := NewScorer(DefaultOptions())
	got := s.Score(nil)
	if got.Score != 0 || got.Label != model.SentimentNeutral {
		t.Errorf("empty batch: got %+v, want neutral zero", got)
	}
}

func TestScorePositiveBatch(t *testing.T) {
	s := NewScorer(DefaultOptions())
	// Three positive hits in one headline: 3 / (3*1) * 100 = 100.
	got := s.Score([]string{"Shares surge on strong profit"})
	if got.Score != 100 {
		t.Errorf("got score %.2f, want 100", got.Score)
	}
	if got.Label != model.SentimentPositive {
		t.Errorf("got label %q, want positive", got.Label)
	}
}

func TestScoreNegativeBatch(t *testing.T) {
	s := NewScorer(DefaultOptions())
	got := s.Score([]string{"Shares drop on weak results and a big loss"})
	if got.Score != -100 {
		t.Errorf("got score %.2f, want -100", got.Score)
	}
	if got.Label != model.SentimentNegative {
		t.Errorf("got label %q, want negative", got.Label)
	}
}

func TestScoreMixedCancelsOut(t *testing.T) {
	s := NewScorer(DefaultOptions())
	got := s.Score([]string{"Early gain evaporates", "Late session loss deepens"})
	if got.Score != 0 || got.Label != model.SentimentNeutral {
		t.Errorf("got %+v, want neutral zero", got)
	}
}

func TestScoreCutoffIsExclusive(t *testing.T) {
	s := NewScorer(DefaultOptions())
	// 3 single-hit headlines out of 5: 3 / (3*5) * 100 = 20, exactly the
	// positive cutoff. The label only flips above it.
	headlines := []string{
		"Profit announced",
		"Quarterly gain reported",
		"Prices rise in early trading",
		"Board meets today",
		"New chairman named",
	}
	got := s.Score(headlines)
	if got.Score != 20 {
		t.Fatalf("got score %.2f, want exactly 20", got.Score)
	}
	if got.Label != model.SentimentNeutral {
		t.Errorf("score at the cutoff must stay neutral, got %q", got.Label)
	}
}

func TestScoreClampedToRange(t *testing.T) {
	s := NewScorer(DefaultOptions())
	got := s.Score([]string{
		"Analysts say buy as shares surge, jump and rise on strong profit, record gain and growth",
	})
	if got.Score != 100 {
		t.Errorf("got score %.2f, want clamp at 100", got.Score)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	s := NewScorer(DefaultOptions())
	got := s.Score([]string{"BULLISH UPGRADE EXPECTED"})
	if got.Label != model.SentimentPositive {
		t.Errorf("uppercase headline: got %+v, want positive", got)
	}
}

func TestNewScorerFillsEmptyOptions(t *testing.T) {
	s := NewScorer(Options{})
	got := s.Score([]string{"Shares surge on strong profit"})
	if got.Label != model.SentimentPositive {
		t.Errorf("zero-value options must fall back to defaults, got %+v", got)
	}
}
