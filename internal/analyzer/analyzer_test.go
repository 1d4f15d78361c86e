package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"ticker-scout/internal/chart"
	"ticker-scout/internal/collector"
	"ticker-scout/internal/model"
	"ticker-scout/internal/notifier"
	"ticker-scout/internal/sentiment"
	"ticker-scout/internal/strategy"
)

type fakeSource struct {
	err error
}

func (f *fakeSource) Capture() (gocv.Mat, error) {
	if f.err != nil {
		return gocv.NewMat(), f.err
	}
	return gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8UC3), nil
}

type fakeDetector struct {
	ticker string
}

func (f *fakeDetector) DetectTicker(_ gocv.Mat) string { return f.ticker }

type recordingSink struct {
	statuses  []string
	published []*model.AnalysisResult
}

func (s *recordingSink) UpdateStatus(status string)            { s.statuses = append(s.statuses, status) }
func (s *recordingSink) Publish(res *model.AnalysisResult)     { s.published = append(s.published, res) }

func fixedChart(v chart.Verdict) ChartDetectFunc {
	return func(_ gocv.Mat) chart.Verdict { return v }
}

func risingBars() []model.OHLCV {
	closes := []float64{100, 101, 102, 103, 104, 106}
	volumes := []float64{1000, 1000, 1000, 1000, 1000, 1500}
	bars := make([]model.OHLCV, len(closes))
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := range closes {
		bars[i] = model.OHLCV{Time: day.AddDate(0, 0, i), Close: closes[i], Volume: volumes[i]}
	}
	return bars
}

func newTestAnalyzer(src *fakeSource, det *fakeDetector, quotes collector.QuoteFetcher,
	news collector.HeadlineFetcher, sink *recordingSink, opts Options) *Analyzer {
	return New(
		src, det,
		fixedChart(chart.Verdict{IsChart: true, Confidence: 80}),
		quotes, news,
		sentiment.NewScorer(sentiment.DefaultOptions()),
		strategy.NewEngine(strategy.DefaultOptions()),
		nil,
		[]notifier.Sink{sink},
		opts,
	)
}

func TestAnalyzeFullPipeline(t *testing.T) {
	sink := &recordingSink{}
	a := newTestAnalyzer(
		&fakeSource{}, &fakeDetector{ticker: "AMD"},
		&collector.MockQuoteFetcher{Bars: risingBars()},
		&collector.MockHeadlineFetcher{Headlines: []string{"Shares surge on strong profit"}},
		sink, Options{Cooldown: 0, HeadlineLimit: 10},
	)

	res, err := a.Analyze(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Ticker != "AMD" {
		t.Errorf("ticker: got %q", res.Ticker)
	}
	if res.Snapshot == nil {
		t.Fatal("expected a price snapshot")
	}
	want := model.Recommendation{Action: model.ActionBuy, Confidence: 100}
	if res.Recommendation != want {
		t.Errorf("recommendation: got %+v, want %+v", res.Recommendation, want)
	}
	if got, ok := res.Metadata["chart_confidence"]; !ok || got != 80 {
		t.Errorf("chart confidence metadata: got %v", got)
	}
	if len(sink.published) != 1 {
		t.Errorf("expected 1 published result, got %d", len(sink.published))
	}
}

func TestAnalyzeCooldown(t *testing.T) {
	sink := &recordingSink{}
	a := newTestAnalyzer(
		&fakeSource{}, &fakeDetector{ticker: "AMD"},
		&collector.MockQuoteFetcher{Bars: risingBars()},
		&collector.MockHeadlineFetcher{},
		sink, Options{Cooldown: time.Hour, HeadlineLimit: 10},
	)

	if _, err := a.Analyze(context.Background()); err != nil {
		t.Fatalf("first trigger failed: %v", err)
	}
	if _, err := a.Analyze(context.Background()); !errors.Is(err, ErrCoolingDown) {
		t.Errorf("second trigger: got %v, want ErrCoolingDown", err)
	}
	if len(sink.published) != 1 {
		t.Errorf("cooldown trigger must not publish, got %d results", len(sink.published))
	}
}

func TestAnalyzeNoTicker(t *testing.T) {
	sink := &recordingSink{}
	a := newTestAnalyzer(
		&fakeSource{}, &fakeDetector{ticker: ""},
		&collector.MockQuoteFetcher{}, &collector.MockHeadlineFetcher{},
		sink, Options{Cooldown: 0, HeadlineLimit: 10},
	)

	if _, err := a.Analyze(context.Background()); !errors.Is(err, ErrNoTicker) {
		t.Fatalf("got %v, want ErrNoTicker", err)
	}
	if len(sink.published) != 0 {
		t.Error("no-ticker frame must not publish a result")
	}
	found := false
	for _, s := range sink.statuses {
		if s == "no ticker found" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a no-ticker status, got %v", sink.statuses)
	}
}

func TestAnalyzeProviderFailuresDegrade(t *testing.T) {
	sink := &recordingSink{}
	boom := errors.New("provider down")
	a := newTestAnalyzer(
		&fakeSource{}, &fakeDetector{ticker: "TSLA"},
		&collector.MockQuoteFetcher{Err: boom},
		&collector.MockHeadlineFetcher{Err: boom},
		sink, Options{Cooldown: 0, HeadlineLimit: 10},
	)

	res, err := a.Analyze(context.Background())
	if err != nil {
		t.Fatalf("provider failures must not fail the analysis: %v", err)
	}
	if res.Snapshot != nil {
		t.Error("expected a nil snapshot when quotes are unavailable")
	}
	want := model.Recommendation{Action: model.ActionHold, Confidence: 50}
	if res.Recommendation != want {
		t.Errorf("recommendation: got %+v, want %+v", res.Recommendation, want)
	}
	if res.Sentiment.Label != model.SentimentNeutral {
		t.Errorf("sentiment: got %+v, want neutral", res.Sentiment)
	}
}

func TestAnalyzeCaptureFailure(t *testing.T) {
	sink := &recordingSink{}
	a := newTestAnalyzer(
		&fakeSource{err: errors.New("no display")}, &fakeDetector{ticker: "AMD"},
		&collector.MockQuoteFetcher{}, &collector.MockHeadlineFetcher{},
		sink, Options{Cooldown: 0, HeadlineLimit: 10},
	)

	if _, err := a.Analyze(context.Background()); err == nil {
		t.Fatal("expected an error when capture fails")
	}
	if len(sink.published) != 0 {
		t.Error("capture failure must not publish a result")
	}
}
